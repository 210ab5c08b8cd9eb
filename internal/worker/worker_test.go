package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
	deleted int64
	err     error
}

func (s *memSessionStore) DeleteSessionsIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.deleted, s.err
}

func TestRunOnce_UsesMaxIdleCutoff(t *testing.T) {
	store := &memSessionStore{deleted: 3}
	w := New(store, WithMaxIdle(24*time.Hour))

	before := time.Now().Add(-24 * time.Hour)
	require.NoError(t, w.RunOnce(context.Background()))
	after := time.Now().Add(-24 * time.Hour)

	require.Len(t, store.cutoffs, 1)
	cutoff := store.cutoffs[0]
	assert.False(t, cutoff.Before(before))
	assert.False(t, cutoff.After(after))
}

func TestRunOnce_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	w := New(&memSessionStore{err: storeErr})

	err := w.RunOnce(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestStart_RunsImmediatelyAndStops(t *testing.T) {
	store := &memSessionStore{}
	w := New(store, WithInterval(time.Hour))

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.cutoffs) == 1
	}, time.Second, 10*time.Millisecond, "startup cycle must run without waiting for the ticker")

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestStart_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := New(&memSessionStore{}, WithInterval(time.Hour))

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not observe cancellation")
	}
}
