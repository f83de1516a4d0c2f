package orchestrators

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"attendci/internal/adapters/email"
	"attendci/internal/adapters/storage"
	"attendci/internal/domain/account"
	domainOutbox "attendci/internal/domain/outbox"
	"attendci/internal/domain/student"
)

// AccountStoreForReset looks up the account a reset code is issued for.
type AccountStoreForReset interface {
	GetByEmail(ctx context.Context, emailAddr string) (account.Account, error)
}

// ForgotPasswordInput carries the requesting email address.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordDeps holds dependencies for ForgotPassword.
type ForgotPasswordDeps struct {
	AccountStore AccountStoreForReset
	Email        *Dispatcher
}

// ForgotPasswordResult carries the issued code so the caller can stash it in
// the reset session.
type ForgotPasswordResult struct {
	Code string
}

var (
	// ErrInvalidEmail signals a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrAccountNotFound signals no account exists for the email.
	ErrAccountNotFound = errors.New("no account found for this email")
)

// ExecuteForgotPassword issues a 6-digit reset code and queues it by email.
// PRE: Caller has enforced the resend cooldown
// POST: A fresh code is returned and the email is queued; any previously
// issued code for the email is superseded by the caller
func ExecuteForgotPassword(ctx context.Context, input ForgotPasswordInput, deps ForgotPasswordDeps) (ForgotPasswordResult, error) {
	if !student.ValidEmail(input.Email) {
		return ForgotPasswordResult{}, ErrInvalidEmail
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ForgotPasswordResult{}, ErrAccountNotFound
		}
		return ForgotPasswordResult{}, fmt.Errorf("look up account: %w", err)
	}

	code, err := resetCode()
	if err != nil {
		return ForgotPasswordResult{}, fmt.Errorf("generate reset code: %w", err)
	}

	body, err := email.RenderMarkdown(email.ResetCodeBody(code))
	if err != nil {
		return ForgotPasswordResult{}, fmt.Errorf("render reset email: %w", err)
	}
	req := email.SendRequest{
		To:      []string{input.Email},
		Subject: "Your attendci password reset code",
		HTML:    body,
	}
	if err := deps.Email.Enqueue(ctx, domainOutbox.ActionResetEmail, req); err != nil {
		return ForgotPasswordResult{}, fmt.Errorf("queue reset email: %w", err)
	}

	slog.Info("reset_code_issued", "email", input.Email)
	return ForgotPasswordResult{Code: code}, nil
}

// resetCode returns a zero-padded 6-digit code from crypto/rand.
func resetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
