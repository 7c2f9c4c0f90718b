// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration provides a thin wrapper around golang-migrate for
// running the schema migrations in data/migrations.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. It enforces schema
// idempotency during application startup, ensuring the scientists, planets
// and missions tables exist before traffic is served. Each dialect has its
// own migrations directory; both are embedded in the binary and can be
// replaced by a directory on disk through MIGRATION_PATH.
package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/stellar/data/migrations"
)

// Dialects, named after their directory under data/migrations.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// RunUp applies all pending PostgreSQL UP migrations.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - migrationsPath: Directory holding one subdirectory per dialect. Empty
//     selects the embedded migrations.
//   - logger: Structured logger for migration events.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	sourceName, sourceDriver, err := openSource(migrationsPath, DialectPostgres)
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithSourceInstance(sourceName, sourceDriver, toPgx5DSN(dsn))
	if err != nil {
		_ = sourceDriver.Close()
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	return up(migrator, logger)
}

// RunUpSQLite applies all pending SQLite UP migrations on an open handle.
// Working on the caller's handle keeps :memory: databases usable; the
// handle stays open afterwards.
func RunUpSQLite(db *sql.DB, migrationsPath string, logger *slog.Logger) error {
	sourceName, sourceDriver, err := openSource(migrationsPath, DialectSQLite)
	if err != nil {
		return err
	}
	defer func() {
		if err := sourceDriver.Close(); err != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", err))
		}
	}()

	databaseDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration: failed to initialize sqlite driver: %w", err)
	}

	// migrator.Close would close db as well, so it is never called here.
	migrator, err := migrate.NewWithInstance(sourceName, sourceDriver, DialectSQLite, databaseDriver)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}

	return up(migrator, logger)
}

// openSource returns the embedded migrations for dialect, or the files in
// <migrationsPath>/<dialect> when a path is configured.
func openSource(migrationsPath, dialect string) (string, source.Driver, error) {
	if migrationsPath == "" {
		driver, err := iofs.New(migrations.FS, dialect)
		if err != nil {
			return "", nil, fmt.Errorf("migration: failed to open embedded %s migrations: %w", dialect, err)
		}
		return "iofs", driver, nil
	}

	driver, err := (&file.File{}).Open("file://" + filepath.Join(migrationsPath, dialect))
	if err != nil {
		return "", nil, fmt.Errorf("migration: failed to open %s: %w", filepath.Join(migrationsPath, dialect), err)
	}
	return "file", driver, nil
}

func up(migrator *migrate.Migrate, logger *slog.Logger) error {
	migrator.Log = &migrateLogger{
		logger:  logger,
		verbose: logger.Enabled(context.Background(), slog.LevelDebug),
	}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// toPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5://
// scheme that golang-migrate's pgx/v5 driver registers.
func toPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
