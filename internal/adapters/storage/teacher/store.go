package teacher

import (
	"context"

	domain "attendci/internal/domain/teacher"
)

// Store persists teachers (teacherregister).
type Store interface {
	// GetByID retrieves a teacher by teacher ID.
	// PRE: id is non-empty
	// POST: Returns the teacher or storage.ErrNotFound
	GetByID(ctx context.Context, id string) (domain.Teacher, error)

	// Create inserts a new teacher.
	// PRE: t has been validated
	// POST: Row inserted; storage.ErrDuplicate on TeacherID collision
	Create(ctx context.Context, t domain.Teacher) error

	// Count returns the number of registered teachers.
	Count(ctx context.Context) (int, error)
}
