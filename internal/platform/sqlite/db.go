// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite provides the embedded SQLite database used for local
// development and tests.
//
// # Architecture
//
// This package is part of the Infrastructure layer, the counterpart of
// package postgres. It opens a [database/sql] handle on the pure Go
// modernc.org/sqlite driver and enforces foreign keys. The schema is applied
// by package migration. SQLite serialises writers, so the pool holds a single
// connection; callers must never issue a query while holding open rows.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	// pure go sqlite driver, registers "sqlite"
	_ "modernc.org/sqlite"

	"github.com/taibuivan/stellar/internal/platform/constants"
)

const (
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
	// memoryPath keeps the database in process memory.
	memoryPath = ":memory:"
)

// Open creates (if needed) and validates the SQLite database behind url.
//
// # Parameters
//   - ctx: Context for the initial connection.
//   - url: "sqlite://<path>" or "sqlite://:memory:".
//   - logger: Structured logger for connection events.
func Open(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	path := strings.TrimPrefix(url, constants.SchemeSQLite)
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty database path in %q", url)
	}

	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// A single long-lived connection keeps :memory: databases alive and the
	// foreign_keys pragma in effect.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := bootstrap(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite database opened", slog.String("path", path))
	return db, nil
}

// bootstrap enables foreign keys and checks the connection.
func bootstrap(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}
	return Ping(ctx, db)
}

// Ping verifies that the SQLite handle is healthy.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// InTx runs fn inside a transaction. The transaction commits only when fn
// returns nil; any error rolls it back.
func InTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	transaction, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = transaction.Rollback()
		}
	}()

	if err = fn(transaction); err != nil {
		return err
	}

	return transaction.Commit()
}
