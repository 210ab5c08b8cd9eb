package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rezkam/taskmaster/internal/config"
	"github.com/rezkam/taskmaster/internal/storage/sqlite"
	"github.com/rezkam/taskmaster/internal/worker"
)

// Standalone session maintenance process. It shares the SQLite database with
// the server, so run it against the same TASKMASTER_DB_PATH.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := sqlite.NewStore(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	w := worker.New(sqlite.NewAuthRepository(store),
		worker.WithInterval(cfg.SessionPruneInterval),
		worker.WithMaxIdle(cfg.SessionMaxIdle),
	)

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	slog.Info("worker shut down gracefully")
	return nil
}
