package account

import (
	"context"
	"database/sql"
	"errors"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/account"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new account store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

const selectColumns = "id, username, email, password, role"

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, storage.ErrNotFound
	}
	return a, err
}

// GetByID retrieves an account by its numeric row ID.
// PRE: id > 0
// POST: Returns the account or storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM clients_login WHERE id = ?", id)
	return scanAccount(row)
}

// GetByUsername retrieves an account by username.
// PRE: username is non-empty
// POST: Returns the account or storage.ErrNotFound
func (s *SQLStore) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM clients_login WHERE username = ?", username)
	return scanAccount(row)
}

// GetByEmail retrieves an account by email.
// PRE: email is non-empty
// POST: Returns the account or storage.ErrNotFound
func (s *SQLStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM clients_login WHERE email = ?", email)
	return scanAccount(row)
}

// Create inserts a new account and returns its assigned ID.
// PRE: a has been validated and PasswordHash set
// POST: Row inserted; storage.ErrDuplicate on username/email collision
func (s *SQLStore) Create(ctx context.Context, a domain.Account) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO clients_login (username, email, password, role) VALUES (?, ?, ?, ?)",
		a.Username, a.Email, a.PasswordHash, a.Role)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, storage.DuplicateError(err)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpdatePasswordByEmail replaces the stored password hash.
// PRE: email is non-empty, hash is a bcrypt hash
// POST: Hash updated; storage.ErrNotFound if no such account
func (s *SQLStore) UpdatePasswordByEmail(ctx context.Context, email, hash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE clients_login SET password = ? WHERE email = ?", hash, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the number of accounts.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients_login").Scan(&n)
	return n, err
}
