// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements admin sign-in and the session lifecycle.

# Architecture

  - Accounts live in Postgres (users.account) with bcrypt password hashes.
  - Sessions live in Redis under a random ID and expire on their own.
  - The browser holds a signed token whose "jti" is that session ID, so
    deleting the Redis key signs the browser out even though the token is
    still cryptographically valid.
*/
package auth

import (
	"strings"
	"time"
)

// # Domain Entities

// Account is an admin login.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the server-side record of a signed-in browser.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
