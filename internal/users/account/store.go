// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"

	"github.com/taibuivan/inkpost/internal/users/auth"
)

// Repository defines the data access contract for account maintenance.
type Repository interface {
	// FindByID returns the account or dberr.ErrNotFound.
	FindByID(context context.Context, id string) (*auth.Account, error)

	// UpdatePasswordHash replaces the stored hash. A missing account is dberr.ErrNotFound.
	UpdatePasswordHash(context context.Context, id, passwordHash string) error
}
