// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// MinPasswordLength applies whenever an admin password is set.
	MinPasswordLength = 12

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)
