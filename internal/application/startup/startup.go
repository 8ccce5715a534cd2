// Package startup owns process initialization and shutdown ordering.
package startup

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamatunited-sudo/Hamatunited/internal/application/container"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/logging"
	"github.com/hamatunited-sudo/Hamatunited/internal/infrastructure/observability/performance"
	"github.com/hamatunited-sudo/Hamatunited/internal/presentation/http/server"
	"github.com/hamatunited-sudo/Hamatunited/pkg/config"
)

// Initialize builds the dependency graph, warms the content cache,
// starts the HTTP server and blocks until a shutdown signal arrives.
func Initialize() error {
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	perfTracker := performance.NewTracker()
	deps := container.New(logger, perfTracker)

	logger.Startup().Info("Starting content server",
		"port", config.Port,
		"storageConfigured", deps.Storage.Configured())

	go deps.Hub.Run()

	// A publish from any editor drops the cached document so readers
	// pick up the new revision on the next request.
	events, cancel := deps.Bus.Subscribe()
	defer cancel()
	go func() {
		for range events {
			deps.Content.Invalidate()
		}
	}()

	// Warm the cache so the first request does not pay for resolution.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), config.StorageTimeout)
	_, source := deps.Content.Resolve(warmCtx)
	warmCancel()
	logger.Startup().Info("Content cache warmed", "source", source)

	srv := server.New(config.Port, deps)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-sigCh:
		logger.Shutdown().Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Shutdown().Info("Server stopped", "uptime", perfTracker.Uptime().String())
	return logger.Close()
}
