// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr bridges pgx driver errors and [apperr.AppError] values.
//
// Classification is done on typed driver values (pgx.ErrNoRows, the
// Postgres SQLSTATE carried by *pgconn.PgError), never on message text.
package dberr

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrConflict is returned when an insert hits a unique constraint.
	ErrConflict = apperr.Conflict("Resource already exists")
)

// Wrap inspects a database error and converts it into an [apperr.AppError].
// action names the failed operation and ends up in the server-side log only.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if apperr.As(err) != nil {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	if IsUniqueViolation(err) {
		conflict := apperr.Conflict("Resource already exists")
		conflict.Cause = err
		return conflict
	}

	return apperr.Internal(&actionError{action: action, err: err})
}

// IsUniqueViolation reports whether err is a Postgres unique_violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsTransient reports whether err is worth a single retry: the statement was
// never sent to the server, or the connection timed out.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Caller cancellation is final.
	if errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsConnectionException(pgErr.Code) ||
			pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected
	}

	return pgconn.SafeToRetry(err) || pgconn.Timeout(err)
}

// actionError tags a driver error with the repository operation that raised it.
type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }

func (e *actionError) Unwrap() error { return e.err }
