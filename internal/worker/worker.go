// Package worker runs periodic maintenance against the session store.
// Sessions that sit unused past the idle limit are pruned so abandoned
// tokens cannot be replayed indefinitely.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// SessionStore is the storage surface the maintenance worker needs.
type SessionStore interface {
	DeleteSessionsIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}

// Worker prunes idle sessions on a fixed interval.
type Worker struct {
	store    SessionStore
	interval time.Duration
	maxIdle  time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
}

// Option is a functional option for configuring Worker.
type Option func(*Worker)

// WithInterval sets how often the prune cycle runs.
func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		w.interval = d
	}
}

// WithMaxIdle sets how long a session may stay unused before it is pruned.
func WithMaxIdle(d time.Duration) Option {
	return func(w *Worker) {
		w.maxIdle = d
	}
}

// New creates a maintenance worker with the given store and options.
func New(store SessionStore, opts ...Option) *Worker {
	w := &Worker{
		store:    store,
		interval: 1 * time.Hour,
		maxIdle:  30 * 24 * time.Hour,
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start runs the prune loop until the context is cancelled or Stop is
// called. A cycle runs immediately on startup.
func (w *Worker) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "maintenance worker started",
		"interval", w.interval, "max_idle", w.maxIdle)

	if err := w.RunOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "startup prune cycle failed", "error", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				if err := w.RunOnce(ctx); err != nil {
					slog.ErrorContext(ctx, "prune cycle failed", "error", err)
				}
			}()
		case <-ctx.Done():
			slog.Info("maintenance worker context cancelled, shutting down")
			w.wg.Wait()
			return ctx.Err()
		case <-w.done:
			slog.Info("maintenance worker stopped")
			w.wg.Wait()
			return nil
		}
	}
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() error {
	close(w.done)
	return nil
}

// RunOnce executes a single prune cycle.
func (w *Worker) RunOnce(ctx context.Context) error {
	cutoff := time.Now().Add(-w.maxIdle)

	deleted, err := w.store.DeleteSessionsIdleSince(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune idle sessions: %w", err)
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "pruned idle sessions", "count", deleted, "cutoff", cutoff)
	}
	return nil
}
