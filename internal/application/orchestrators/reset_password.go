package orchestrators

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"attendci/internal/adapters/storage"
	"attendci/internal/domain/account"
)

// AccountStoreForPasswordUpdate writes a new password hash by email.
type AccountStoreForPasswordUpdate interface {
	UpdatePasswordByEmail(ctx context.Context, emailAddr, passwordHash string) error
}

// ResetPasswordInput carries the reset form payload. IssuedCode is the code
// stashed in the reset session; Code is what the user typed.
type ResetPasswordInput struct {
	Email           string
	Code            string
	IssuedCode      string
	NewPassword     string
	ConfirmPassword string
}

// ResetPasswordDeps holds dependencies for ResetPassword.
type ResetPasswordDeps struct {
	AccountStore AccountStoreForPasswordUpdate
}

var (
	// ErrResetCodeMismatch signals the typed code does not match the issued one.
	ErrResetCodeMismatch = errors.New("reset code is incorrect")
	// ErrResetCodeExpired signals no code is pending for this session.
	ErrResetCodeExpired = errors.New("reset code has expired, request a new one")
	// ErrPasswordMismatch signals the two password fields differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ExecuteResetPassword verifies the emailed code and replaces the password.
// PRE: IssuedCode came from the caller's reset session, not the request
// POST: The account's hash is replaced, or no state changes
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetPasswordDeps) error {
	if input.IssuedCode == "" {
		return ErrResetCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(input.Code), []byte(input.IssuedCode)) != 1 {
		return ErrResetCodeMismatch
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if len(input.NewPassword) < account.MinPasswordLength {
		return account.ErrPasswordTooShort
	}

	var acct account.Account
	if err := acct.SetPassword(input.NewPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := deps.AccountStore.UpdatePasswordByEmail(ctx, input.Email, acct.PasswordHash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}

	slog.Info("password_reset", "email", input.Email)
	return nil
}
