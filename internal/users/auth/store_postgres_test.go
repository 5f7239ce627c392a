// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/postgres/pgtest"
	"github.com/taibuivan/inkpost/internal/users/auth"
	"github.com/taibuivan/inkpost/pkg/uuid"
)

/*
TestPostgres_AccountRepository verifies create, lookup and the unique email.
*/
func TestPostgres_AccountRepository(t *testing.T) {
	repo := auth.NewAccountRepository(pgtest.Open(t))
	ctx := context.Background()

	created := &auth.Account{ID: uuid.New(), Email: "writer@inkpost.dev", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Create(ctx, created))
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "writer@inkpost.dev")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "$2a$10$hash", found.PasswordHash)
	assert.WithinDuration(t, created.CreatedAt, found.CreatedAt, 0)

	duplicate := &auth.Account{ID: uuid.New(), Email: "writer@inkpost.dev", PasswordHash: "x"}
	assert.ErrorIs(t, repo.Create(ctx, duplicate), dberr.ErrConflict)

	_, err = repo.FindByEmail(ctx, "nobody@inkpost.dev")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
