package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/jobimport/internal/config"
	"github.com/JonMunkholm/jobimport/internal/core"
	"github.com/JonMunkholm/jobimport/internal/logging"
	"github.com/JonMunkholm/jobimport/internal/schema"
	"github.com/JonMunkholm/jobimport/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"import_max_file_size", cfg.Import.MaxFileSize,
		"skip_incomplete_jobs", cfg.Import.SkipIncompleteJobs,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	registry, err := schema.NewRegistry(schema.Options{
		SchemaDir:      cfg.Import.SchemaDir,
		SkipIncomplete: cfg.Import.SkipIncompleteJobs,
	})
	if err != nil {
		slog.Error("failed to load schemas", "error", err, "schema_dir", cfg.Import.SchemaDir)
		os.Exit(1)
	}

	schemaSource := "embedded"
	if cfg.Import.SchemaDir != "" {
		schemaSource = cfg.Import.SchemaDir
	}
	slog.Info("formats registered", "count", registry.Count(), "formats", registry.Keys(), "schemas", schemaSource)

	service := core.NewService(registry, core.ServiceOptions{
		MaxFileSize:   cfg.Import.MaxFileSize,
		MaxConcurrent: cfg.Import.MaxConcurrent,
		MaxWait:       cfg.Import.MaxWaitTime,
		HistorySize:   cfg.Import.HistorySize,
	})
	server := web.NewServer(cfg, service)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(server.Start)

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if status := service.LimiterStatus(); status.Active > 0 {
			slog.Info("waiting for imports to complete", "active", status.Active)
		}
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
