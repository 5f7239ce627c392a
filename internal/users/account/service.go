// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
	"github.com/taibuivan/inkpost/internal/users/auth"
)

// # Service Layer

// Service orchestrates profile reads and password rotation.
type Service struct {
	accountRepository Repository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo Repository, logger *slog.Logger) *Service {
	return &Service{accountRepository: accountRepo, logger: logger}
}

/*
GetProfile retrieves the profile of the signed-in account.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *Profile: The account's public fields
  - error: "Account not found" or execution failures
*/
func (service *Service) GetProfile(context context.Context, accountID string) (*Profile, error) {
	account, err := service.find(context, accountID)
	if err != nil {
		return nil, err
	}
	return &Profile{ID: account.ID, Email: account.Email, CreatedAt: account.CreatedAt}, nil
}

/*
ChangePassword re-verifies the current password and stores a new hash.

Description: Existing sessions stay valid; only future sign-ins use the new
password.

Parameters:
  - context: context.Context
  - accountID: string
  - input: ChangePasswordInput

Returns:
  - error: VALIDATION_ERROR, 422 for a wrong current password, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, accountID string, input ChangePasswordInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	validator.Custom(FieldNewPassword, len(input.NewPassword) < auth.MinPasswordLength,
		fmt.Sprintf("Minimum %d characters", auth.MinPasswordLength))
	validator.Custom(FieldNewPassword, len(input.NewPassword) > auth.MaxPasswordBytes,
		fmt.Sprintf("Maximum %d bytes", auth.MaxPasswordBytes))
	validator.Custom(FieldNewPassword, input.NewPassword != "" && input.NewPassword == input.CurrentPassword,
		"Must differ from the current password")
	if err := validator.Err(); err != nil {
		return err
	}

	account, err := service.find(context, accountID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, account.PasswordHash) {
		return apperr.Unprocessable("Current password is incorrect")
	}

	hash, err := sec.HashPassword(input.NewPassword)
	if err != nil {
		return apperr.InternalMsg("Failed to change password", err)
	}

	if err := service.accountRepository.UpdatePasswordHash(context, account.ID, hash); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Account")
		}
		return apperr.InternalMsg("Failed to change password", err)
	}

	service.logger.InfoContext(context, "account_password_changed", slog.String("account_id", account.ID))
	return nil
}

func (service *Service) find(context context.Context, accountID string) (*auth.Account, error) {
	account, err := service.accountRepository.FindByID(context, accountID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Account")
		}
		return nil, apperr.InternalMsg("Failed to fetch account", err)
	}
	return account, nil
}
