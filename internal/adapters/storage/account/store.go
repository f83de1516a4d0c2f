package account

import (
	"context"

	domain "attendci/internal/domain/account"
)

// Store persists login accounts (clients_login).
type Store interface {
	// GetByID retrieves an account by its numeric row ID.
	// PRE: id > 0
	// POST: Returns the account or storage.ErrNotFound
	GetByID(ctx context.Context, id int64) (domain.Account, error)

	// GetByUsername retrieves an account by username.
	// PRE: username is non-empty
	// POST: Returns the account or storage.ErrNotFound
	GetByUsername(ctx context.Context, username string) (domain.Account, error)

	// GetByEmail retrieves an account by email.
	// PRE: email is non-empty
	// POST: Returns the account or storage.ErrNotFound
	GetByEmail(ctx context.Context, email string) (domain.Account, error)

	// Create inserts a new account and returns its assigned ID.
	// PRE: a has been validated and PasswordHash set
	// POST: Row inserted; storage.ErrDuplicate on username/email collision
	Create(ctx context.Context, a domain.Account) (int64, error)

	// UpdatePasswordByEmail replaces the stored password hash.
	// PRE: email is non-empty, hash is a bcrypt hash
	// POST: Hash updated; storage.ErrNotFound if no such account
	UpdatePasswordByEmail(ctx context.Context, email, hash string) error

	// Count returns the number of accounts.
	Count(ctx context.Context) (int, error)
}
