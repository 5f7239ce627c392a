// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// AccountRepository defines the data access contract for admin accounts.
type AccountRepository interface {

	/*
		FindByEmail returns the account with the given normalized email.

		Returns:
		  - *Account: Hydrated entity
		  - error: dberr.ErrNotFound or database failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		Create persists a new account.

		Returns:
		  - error: dberr.ErrConflict when the email is taken
	*/
	Create(context context.Context, account *Account) error
}

// SessionRepository defines the data access contract for login sessions.
type SessionRepository interface {

	// Create stores a session that expires after ttl.
	Create(context context.Context, session *Session, ttl time.Duration) error

	// Get returns the live session with the given ID or dberr.ErrNotFound.
	Get(context context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(context context.Context, id string) error
}
