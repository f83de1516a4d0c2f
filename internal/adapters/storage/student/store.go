package student

import (
	"context"

	accountDomain "attendci/internal/domain/account"
	domain "attendci/internal/domain/student"
)

// Store persists student profiles (studentregister).
type Store interface {
	// GetByID retrieves a student profile by student ID.
	// PRE: id is non-empty
	// POST: Returns the profile or storage.ErrNotFound
	GetByID(ctx context.Context, id string) (domain.Student, error)

	// CreateWithAccount inserts the profile row and its login row inside one
	// transaction: either both commit or neither is persisted.
	// PRE: s and a validated; a.Username == s.StudentID
	// POST: Both rows committed, account ID returned; storage.ErrDuplicate
	// (field-tagged) on any natural key collision
	CreateWithAccount(ctx context.Context, s domain.Student, a accountDomain.Account) (int64, error)

	// Count returns the number of registered students.
	Count(ctx context.Context) (int, error)
}
