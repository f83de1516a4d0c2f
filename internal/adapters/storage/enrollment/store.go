package enrollment

import (
	"context"
	"time"

	domain "attendci/internal/domain/enrollment"
)

// StudentClass is an enrollment joined with class and teacher details, the
// shape the student dashboard consumes.
type StudentClass struct {
	ClassID      string
	RegisterDate time.Time
	ClassName    string
	ClassSubject string
	ClassPrice   float64
	TeacherName  string
}

// Store persists enrollments (studentclasses).
type Store interface {
	// Create inserts an enrollment row. The (StudentID, ClassID) unique
	// constraint is the duplicate-enrollment guarantee; callers treat
	// storage.ErrDuplicate as "already enrolled".
	// PRE: e has been validated
	// POST: Row inserted, or storage.ErrDuplicate
	Create(ctx context.Context, e domain.Enrollment) error

	// Exists reports whether the student is already enrolled in the class.
	// Used only for the friendlier pre-check message, never as the guard.
	Exists(ctx context.Context, studentID, classID string) (bool, error)

	// ListByStudent returns the student's enrollments with class and teacher
	// details, newest first.
	ListByStudent(ctx context.Context, studentID string) ([]StudentClass, error)

	// Count returns the number of enrollment rows.
	Count(ctx context.Context) (int, error)
}
