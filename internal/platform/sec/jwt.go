// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and session token handling.
//
// # Architecture
//
// Security-sensitive code (hashing, signing) is isolated here and injected
// into the auth service, which owns the session lifecycle.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any session token that fails verification.
var ErrInvalidToken = errors.New("sec: invalid session token")

// SessionClaims is the payload of the signed session cookie.
//
// The registered "jti" claim carries the server-side session ID, so a token
// is only honored while that session still exists in the session store.
type SessionClaims struct {
	jwt.RegisteredClaims

	AccountID string `json:"aid"`
	Email     string `json:"eml"`
}

// SessionID returns the server-side session identifier.
func (c *SessionClaims) SessionID() string { return c.ID }

// SessionTokens signs and verifies session cookies with HMAC-SHA256.
type SessionTokens struct {
	secret []byte
	issuer string
}

// NewSessionTokens creates a signer for the given secret.
func NewSessionTokens(secret, issuer string) (*SessionTokens, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("sec: session secret must be at least 32 bytes")
	}
	return &SessionTokens{secret: []byte(secret), issuer: issuer}, nil
}

/*
Sign issues a session token bound to sessionID.

Parameters:
  - sessionID: string (server-side session key)
  - accountID: string
  - email: string
  - issuedAt: time.Time
  - timeToLive: time.Duration

Returns:
  - string: Compact JWS
  - error: Signing failures
*/
func (tokens *SessionTokens) Sign(sessionID, accountID, email string, issuedAt time.Time, timeToLive time.Duration) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   accountID,
			Issuer:    tokens.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
		},
		AccountID: accountID,
		Email:     email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokens.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer and expiry of a session token.
func (tokens *SessionTokens) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return tokens.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokens.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
