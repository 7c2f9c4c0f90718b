// Copyright (c) 2026 Stellar. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Both supported drivers are classified here: pgx (SQLSTATE codes) and
// modernc SQLite (extended result codes).
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/taibuivan/stellar/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified (e.g. returned from a nested helper)
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Relational integrity failures surface as 422
	if message, ok := constraintMessage(err); ok {
		return apperr.ConstraintViolation(message, fmt.Errorf("%s: %w", action, err))
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err is the generic missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// constraintMessage returns a client-safe description for integrity errors.
func constraintMessage(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return "FOREIGN KEY constraint failed: " + pgErr.ConstraintName, true
		case pgerrcode.UniqueViolation:
			return "UNIQUE constraint failed: " + pgErr.ConstraintName, true
		case pgerrcode.NotNullViolation:
			return "NOT NULL constraint failed: " + pgErr.ColumnName, true
		case pgerrcode.CheckViolation:
			return "CHECK constraint failed: " + pgErr.ConstraintName, true
		}
		return "", false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return "FOREIGN KEY constraint failed", true
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return "UNIQUE constraint failed", true
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return "NOT NULL constraint failed", true
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return "CHECK constraint failed", true
		}
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return "constraint failed", true
		}
	}

	return "", false
}
