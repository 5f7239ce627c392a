// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkpost/internal/platform/database/schema"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres"
)

// # Account Repository

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of [AccountRepository].
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

/*
FindByEmail retrieves an account by its unique email address.

Parameters:
  - ctx: context.Context
  - email: string (normalized)

Returns:
  - *Account: Hydrated account entity
  - error: dberr.ErrNotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UserAccount.Columns(), ", "), schema.UserAccount.Table, schema.UserAccount.Email)

	account := &Account{}
	err := postgres.WithRetry(ctx, func(ctx context.Context) error {
		err := repository.pool.QueryRow(ctx, query, email).Scan(
			&account.ID,
			&account.Email,
			&account.PasswordHash,
			&account.CreatedAt,
		)
		return dberr.Wrap(err, "find_account_by_email")
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

/*
Create persists a new account into the users.account table.

Parameters:
  - ctx: context.Context
  - account: *Account (CreatedAt is filled from the database default)

Returns:
  - error: dberr.ErrConflict on a duplicate email, otherwise database errors
*/
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *Account) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.CreatedAt)

	return postgres.WithRetry(ctx, func(ctx context.Context) error {
		err := repository.pool.QueryRow(ctx, query, account.ID, account.Email, account.PasswordHash).
			Scan(&account.CreatedAt)
		return dberr.Wrap(err, "create_account")
	})
}
