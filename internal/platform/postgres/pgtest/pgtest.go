// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pgtest opens a migrated PostgreSQL pool for store integration tests.

Tests that call [Open] are skipped unless INKPOST_TEST_DATABASE_URL points at
a disposable database. Every test holds an advisory lock for its lifetime,
so packages running in parallel never truncate each other's rows.
*/
package pgtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/migration"
	"github.com/taibuivan/inkpost/internal/platform/postgres"
)

// EnvDatabaseURL names the variable holding the test database DSN.
const EnvDatabaseURL = "INKPOST_TEST_DATABASE_URL"

// lockKey serializes integration tests across test binaries.
const lockKey = 0x1b7c05

/*
Open returns a pool on an empty, fully migrated schema.

The pool is closed and the lock released when t finishes.
*/
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(EnvDatabaseURL)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDatabaseURL)
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pool, err := postgres.NewPool(ctx, dsn, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	lockConn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = lockConn.Exec(ctx, "SELECT pg_advisory_lock($1)", lockKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = lockConn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", lockKey)
		lockConn.Release()
	})

	require.NoError(t, migration.RunUp(dsn, logger))
	Reset(t, pool)
	return pool
}

// Reset empties every table written by the stores.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	tables := []string{
		schema.CoreBlogTag.Table,
		schema.CoreBlog.Table,
		schema.CoreTag.Table,
		schema.UserAccount.Table,
	}
	_, err := pool.Exec(context.Background(), fmt.Sprintf("TRUNCATE %s", strings.Join(tables, ", ")))
	require.NoError(t, err)
}
