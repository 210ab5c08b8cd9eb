package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rezkam/taskmaster/internal/application/auth"
	"github.com/rezkam/taskmaster/internal/application/task"
	"github.com/rezkam/taskmaster/internal/config"
	taskhttp "github.com/rezkam/taskmaster/internal/http"
	"github.com/rezkam/taskmaster/internal/http/handler"
	"github.com/rezkam/taskmaster/internal/storage/archive"
	"github.com/rezkam/taskmaster/internal/storage/sqlite"
	"github.com/rezkam/taskmaster/pkg/observability"
)

const (
	serviceName     = "taskmaster"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		// slog may not be configured yet when config loading fails.
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers, err := observability.Init(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	defer func() {
		// Bounded so an unreachable collector cannot hang shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown telemetry providers", "error", err)
		}
	}()
	slog.SetDefault(providers.Logger)

	slog.InfoContext(ctx, "starting taskmaster service", "env", cfg.Env)

	store, err := sqlite.NewStore(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()
	slog.InfoContext(ctx, "storage initialized", "path", cfg.DBPath)

	snapshotArchive, err := newArchive(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init snapshot archive: %w", err)
	}

	authenticator := auth.NewAuthenticator(ctx, sqlite.NewAuthRepository(store), auth.Config{
		BcryptCost:       cfg.BcryptCost,
		OperationTimeout: cfg.AuthTimeout,
	})
	defer authenticator.Shutdown()

	registry := task.NewRegistry(sqlite.NewTaskRepository(store))

	srv := handler.NewServer(authenticator, registry, snapshotArchive)
	router := taskhttp.NewRouter(srv, authenticator)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errResult := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "HTTP server shutdown complete")
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// newArchive builds the snapshot archive backend selected by configuration.
func newArchive(ctx context.Context, cfg *config.Config) (archive.Archive, error) {
	switch cfg.ArchiveType {
	case "gcs":
		return archive.NewGCS(ctx, cfg.GCSBucket)
	default:
		return archive.NewFS(cfg.ArchiveDir)
	}
}
