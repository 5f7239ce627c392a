// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account lets the signed-in admin read their profile and rotate
their password.

Sign-in itself lives in package auth; this package only acts on the account
named by the current session.
*/
package account

import "time"

// Profile is the public view of the signed-in account.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChangePasswordInput carries the current password for re-authentication.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// # Field Identifiers

const (
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)
