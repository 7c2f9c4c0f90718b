// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Stellar HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the store: SQLite or PostgreSQL (pgxpool), then apply migrations.
//  4. Register Prometheus collectors.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/stellar/internal/api"
	"github.com/taibuivan/stellar/internal/core/space"
	"github.com/taibuivan/stellar/internal/platform/config"
	"github.com/taibuivan/stellar/internal/platform/constants"
	"github.com/taibuivan/stellar/internal/platform/middleware"
	"github.com/taibuivan/stellar/internal/platform/migration"
	pgstore "github.com/taibuivan/stellar/internal/platform/postgres"
	"github.com/taibuivan/stellar/internal/platform/sqlite"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Stellar] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("production", cfg.IsProduction()),
	)

	if cfg.IsProduction() && cfg.UsesSQLite() {
		log.Warn("sqlite_store_in_production", slog.String("database_url", cfg.DatabaseURL))
	}

	// Startup deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Store ──────────────────────────────────────────────────────────
	repository, health, closeStore, err := openStore(startupCtx, cfg, log)
	must(log, err, "open store")
	defer closeStore()

	// ── 4. Metrics ────────────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(health, log)

	spaceService := space.NewService(repository, log)
	spaceHandler := space.NewHandler(spaceService)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Space:     spaceHandler,
	}

	// Cancelled on shutdown to stop the rate limiter sweeper.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, metrics, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// openStore connects to the database selected by DATABASE_URL and returns
// the repository, its readiness check and a close function.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (space.Repository, api.HealthDependencies, func(), error) {
	if cfg.UsesSQLite() {
		db, err := sqlite.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, api.HealthDependencies{}, nil, err
		}

		if err := migration.RunUpSQLite(db, cfg.MigrationPath, log); err != nil {
			_ = db.Close()
			return nil, api.HealthDependencies{}, nil, err
		}

		health := api.HealthDependencies{
			DatabaseName:  "sqlite",
			CheckDatabase: func() error { return sqlite.Ping(context.Background(), db) },
		}
		closeStore := func() {
			log.Info("closing sqlite database")
			if err := db.Close(); err != nil {
				log.Error("sqlite close error", slog.Any("error", err))
			}
		}
		return space.NewSQLiteRepository(db), health, closeStore, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, api.HealthDependencies{}, nil, err
	}

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		pool.Close()
		return nil, api.HealthDependencies{}, nil, err
	}

	health := api.HealthDependencies{
		DatabaseName:  "postgres",
		CheckDatabase: func() error { return pgstore.Ping(context.Background(), pool) },
	}
	closeStore := func() {
		log.Info("closing postgres pool")
		pool.Close()
	}
	return space.NewPostgresRepository(pool), health, closeStore, nil
}

// newLogger builds the JSON logger with the global app attribute.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only for startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
