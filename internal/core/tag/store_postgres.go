// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx. On a Tx, Begin
// opens a savepoint.
type querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements [Repository] and [Upserter].
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository returns a repository on the shared pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: pool}
}

// NewTxRepository returns a repository bound to an open transaction, used
// by the blog store to link tags atomically with the blog row.
func NewTxRepository(transaction pgx.Tx) *PostgresRepository {
	return &PostgresRepository{db: transaction}
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.CoreTag.Columns(), ", "), schema.CoreTag.Table, schema.CoreTag.Name)

	var tags []*Tag
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		rows, err := repository.db.Query(ctx, query)
		if err != nil {
			return dberr.Wrap(err, "list_tags")
		}

		collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Tag, error) {
			t := &Tag{}
			return t, row.Scan(&t.ID, &t.Name)
		})
		if err != nil {
			return dberr.Wrap(err, "scan_tag")
		}

		tags = collected
		return nil
	})
	if err != nil {
		return nil, err
	}

	if tags == nil {
		tags = make([]*Tag, 0)
	}
	return tags, nil
}

func (repository *PostgresRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreTag.Columns(), ", "), schema.CoreTag.Table, schema.CoreTag.Name)

	t := &Tag{}
	if err := repository.db.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name); err != nil {
		return nil, dberr.Wrap(err, "find_tag_by_name")
	}
	return t, nil
}

// Insert runs inside a savepoint so that a unique violation leaves the
// surrounding transaction usable for the follow-up lookup.
func (repository *PostgresRepository) Insert(ctx context.Context, tag *Tag) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2)`,
		schema.CoreTag.Table, strings.Join(schema.CoreTag.Columns(), ", "))

	savepoint, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_tag_savepoint")
	}
	defer savepoint.Rollback(ctx)

	if _, err := savepoint.Exec(ctx, query, tag.ID, tag.Name); err != nil {
		return dberr.Wrap(err, "insert_tag")
	}

	if err := savepoint.Commit(ctx); err != nil {
		return dberr.Wrap(err, "release_tag_savepoint")
	}
	return nil
}
