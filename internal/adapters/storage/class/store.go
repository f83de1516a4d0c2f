package class

import (
	"context"

	domain "attendci/internal/domain/class"
)

// ClassWithTeacher is a class row joined with its teacher's display name.
type ClassWithTeacher struct {
	domain.Class
	TeacherName string
}

// Store persists classes (classregister).
type Store interface {
	// GetByID retrieves a class by class ID.
	// PRE: id is non-empty
	// POST: Returns the class or storage.ErrNotFound
	GetByID(ctx context.Context, id string) (domain.Class, error)

	// Create inserts a new class.
	// PRE: c has been validated and the teacher exists
	// POST: Row inserted; storage.ErrDuplicate on ClassID collision
	Create(ctx context.Context, c domain.Class) error

	// ListWithTeacher returns all classes with the owning teacher's name.
	// POST: Rows in ClassID order; TeacherName empty if teacher row is gone
	ListWithTeacher(ctx context.Context) ([]ClassWithTeacher, error)

	// Count returns the number of registered classes.
	Count(ctx context.Context) (int, error)
}
