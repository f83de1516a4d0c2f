package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"attendci/internal/adapters/storage"
	"attendci/internal/domain/account"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	Create(ctx context.Context, a account.Account) (int64, error)
	Count(ctx context.Context) (int, error)
}

// CreateAccountInput carries input for the public signup.
type CreateAccountInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
}

// Signup errors.
var (
	ErrAdminSignupForbidden = errors.New("admin registration is not allowed from this form")
	ErrDuplicateAccount     = errors.New("username or email is already registered")
)

// ExecuteCreateAccount creates a bare login account from the public signup
// form. Admin accounts cannot be created this way.
// PRE: Input fields are present
// POST: Account row created; returns its ID
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (int64, error) {
	if input.Role == "" {
		input.Role = account.RoleStudent
	}
	if input.Role == account.RoleAdmin {
		return 0, ErrAdminSignupForbidden
	}
	if !account.IsSelfServeRole(input.Role) {
		return 0, account.ErrInvalidRole
	}

	a := account.Account{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
	}
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := a.SetPassword(input.Password); err != nil {
		return 0, err
	}

	id, err := deps.AccountStore.Create(ctx, a)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return 0, ErrDuplicateAccount
		}
		return 0, fmt.Errorf("create account: %w", err)
	}

	slog.Info("account_created", "username", input.Username, "role", input.Role)
	return id, nil
}

// ExecuteSeedAdmin creates the initial admin account when the login table is
// empty. Idempotent: a populated table is left untouched.
// PRE: Store reachable
// POST: Exactly one admin exists after first boot
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, username, email, password string) error {
	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if n > 0 {
		return nil
	}

	a := account.Account{
		Username: username,
		Email:    email,
		Role:     account.RoleAdmin,
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if err := a.SetPassword(password); err != nil {
		return err
	}
	if _, err := deps.AccountStore.Create(ctx, a); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("admin_seeded", "username", username)
	return nil
}
