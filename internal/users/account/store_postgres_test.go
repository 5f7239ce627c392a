// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres/pgtest"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/users/account"
	"github.com/taibuivan/inkpost/internal/users/auth"
	"github.com/taibuivan/inkpost/pkg/uuid"
)

/*
TestPostgres_ChangePassword verifies a password change is persisted and that
missing accounts surface as not found.
*/
func TestPostgres_ChangePassword(t *testing.T) {
	pool := pgtest.Open(t)
	ctx := context.Background()

	hash, err := sec.HashPassword(currentPassword)
	require.NoError(t, err)

	stored := &auth.Account{ID: uuid.New(), Email: "admin@inkpost.dev", PasswordHash: hash}
	require.NoError(t, auth.NewAccountRepository(pool).Create(ctx, stored))

	repo := account.NewPostgresRepository(pool)
	service := account.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err = service.ChangePassword(ctx, stored.ID, account.ChangePasswordInput{
		CurrentPassword: currentPassword,
		NewPassword:     "a much longer passphrase",
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@inkpost.dev", reloaded.Email)
	assert.True(t, sec.CheckPasswordHash("a much longer passphrase", reloaded.PasswordHash))

	missing := uuid.New()
	_, err = repo.FindByID(ctx, missing)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, missing, hash), dberr.ErrNotFound)
}
