// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
	"github.com/taibuivan/inkpost/pkg/uuid"
)

// errInvalidCredentials is shared by every login failure so responses do not
// reveal which emails exist.
var errInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// dummyHash is compared against when the email is unknown, keeping the
// response time close to that of a wrong password.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := sec.HashPassword("inkpost-timing-equalizer")
	return hash
})

// # Contracts & Types

// TokenProvider signs and verifies session tokens. *sec.SessionTokens satisfies it.
type TokenProvider interface {
	Sign(sessionID, accountID, email string, issuedAt time.Time, timeToLive time.Duration) (string, error)
	Verify(token string) (*sec.SessionClaims, error)
}

// Service implements admin authentication use cases.
type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
	now      func() time.Time
	logger   *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		now:      time.Now,
		logger:   logger,
	}
}

// # Authentication Flow

// LoginResult is a freshly established session and its signed token.
type LoginResult struct {
	Token   string
	Session *Session
}

/*
Login verifies credentials and opens a new session.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *LoginResult: Signed token and session record
  - error: VALIDATION_ERROR, Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*LoginResult, error) {
	email = NormalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	account, err := service.accounts.FindByEmail(context, email)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			sec.CheckPasswordHash(password, dummyHash())
			return nil, errInvalidCredentials
		}
		return nil, apperr.InternalMsg("Failed to sign in", err)
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.logger.WarnContext(context, "login_rejected", slog.String("account_id", account.ID))
		return nil, errInvalidCredentials
	}

	sessionID, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return nil, apperr.InternalMsg("Failed to sign in", err)
	}

	now := service.now().UTC()
	session := &Session{
		ID:        sessionID,
		AccountID: account.ID,
		Email:     account.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(constants.SessionTTL),
	}

	token, err := service.tokens.Sign(session.ID, account.ID, account.Email, now, constants.SessionTTL)
	if err != nil {
		return nil, apperr.InternalMsg("Failed to sign in", err)
	}

	if err := service.sessions.Create(context, session, constants.SessionTTL); err != nil {
		return nil, apperr.InternalMsg("Failed to sign in", err)
	}

	service.logger.InfoContext(context, "login_succeeded", slog.String("account_id", account.ID))
	return &LoginResult{Token: token, Session: session}, nil
}

/*
Resolve turns a session token into claims if its session is still live.

Description: The signature, issuer and expiry are checked first, then the
session named by the token's jti must exist and belong to the same account.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.SessionClaims: Verified claims
  - error: Any failure; callers treat the request as anonymous
*/
func (service *Service) Resolve(context context.Context, token string) (*sec.SessionClaims, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	session, err := service.sessions.Get(context, claims.SessionID())
	if err != nil {
		return nil, fmt.Errorf("auth_session_lookup_failed: %w", err)
	}

	if session.AccountID != claims.AccountID {
		return nil, sec.ErrInvalidToken
	}
	return claims, nil
}

// Logout ends the session named by token. Invalid or already ended sessions
// are treated as signed out.
func (service *Service) Logout(context context.Context, token string) error {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		return nil
	}

	if err := service.sessions.Delete(context, claims.SessionID()); err != nil {
		return apperr.InternalMsg("Failed to sign out", err)
	}

	service.logger.InfoContext(context, "logout_succeeded", slog.String("account_id", claims.AccountID))
	return nil
}

// # Account Bootstrap

/*
EnsureAccount creates the admin account if its email is not registered yet.

Description: Runs at startup with ADMIN_EMAIL and ADMIN_PASSWORD. An existing
account is left untouched, so rotating the password in the environment does
not overwrite a password changed elsewhere.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - bool: true if the account was created
  - error: Validation or persistence failures
*/
func (service *Service) EnsureAccount(context context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Custom(FieldPassword, len(password) < MinPasswordLength, fmt.Sprintf("Minimum %d characters", MinPasswordLength))
	validator.Custom(FieldPassword, len(password) > MaxPasswordBytes, fmt.Sprintf("Maximum %d bytes", MaxPasswordBytes))
	if err := validator.Err(); err != nil {
		return false, err
	}

	_, err := service.accounts.FindByEmail(context, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, dberr.ErrNotFound) {
		return false, err
	}

	hash, err := sec.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	account := &Account{ID: uuid.New(), Email: email, PasswordHash: hash}
	if err := service.accounts.Create(context, account); err != nil {
		if errors.Is(err, dberr.ErrConflict) {
			return false, nil
		}
		return false, err
	}

	service.logger.InfoContext(context, "admin_account_created", slog.String("account_id", account.ID))
	return true, nil
}
