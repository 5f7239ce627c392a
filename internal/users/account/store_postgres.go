// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres"
	"github.com/taibuivan/inkpost/internal/users/auth"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// FindByID retrieves an account by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*auth.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UserAccount.Columns(), ", "), schema.UserAccount.Table, schema.UserAccount.ID)

	account := &auth.Account{}
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		err := repository.pool.QueryRow(ctx, query, id).Scan(
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.CreatedAt,
		)
		return dberr.Wrap(err, "find_account_by_id")
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

/*
UpdatePasswordHash overwrites the bcrypt hash of an account.

Parameters:
  - ctx: context.Context
  - id: string
  - passwordHash: string

Returns:
  - error: dberr.ErrNotFound when no row matched, otherwise database errors
*/
func (repository *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.ID)

	return postgres.WithRetry(ctx, func(ctx context.Context) error {
		tag, err := repository.pool.Exec(ctx, query, id, passwordHash)
		if err != nil {
			return dberr.Wrap(err, "update_account_password")
		}
		if tag.RowsAffected() == 0 {
			return dberr.ErrNotFound
		}
		return nil
	})
}
