package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"attendci/internal/adapters/storage"
	classDomain "attendci/internal/domain/class"
	domain "attendci/internal/domain/enrollment"
	studentDomain "attendci/internal/domain/student"
)

// EnrollmentStoreForEnroll defines the store interface needed by
// EnrollStudent.
type EnrollmentStoreForEnroll interface {
	Create(ctx context.Context, e domain.Enrollment) error
}

// StudentStoreForEnroll looks up the enrolling student.
type StudentStoreForEnroll interface {
	GetByID(ctx context.Context, studentID string) (studentDomain.Student, error)
}

// ClassStoreForEnroll looks up the target class.
type ClassStoreForEnroll interface {
	GetByID(ctx context.Context, classID string) (classDomain.Class, error)
}

// EnrollStudentInput names the student and class to join.
type EnrollStudentInput struct {
	StudentID string
	ClassID   string
}

// EnrollStudentDeps holds dependencies for EnrollStudent.
type EnrollStudentDeps struct {
	EnrollmentStore EnrollmentStoreForEnroll
	StudentStore    StudentStoreForEnroll
	ClassStore      ClassStoreForEnroll
	Now             func() time.Time
}

// EnrollStudentResult describes the created enrollment.
type EnrollStudentResult struct {
	StudentName  string
	ClassName    string
	RegisterDate time.Time
}

var (
	// ErrStudentNotFound signals the student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrClassNotFound signals the class does not exist.
	ErrClassNotFound = errors.New("class not found")
	// ErrAlreadyEnrolled signals a duplicate enrollment attempt.
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this class")
)

// ExecuteEnrollStudent enrolls a student in a class.
// PRE: Student and class IDs are non-empty
// POST: An enrollment row exists at most once per (student, class) pair;
// repeats return ErrAlreadyEnrolled from the unique constraint
func ExecuteEnrollStudent(ctx context.Context, input EnrollStudentInput, deps EnrollStudentDeps) (EnrollStudentResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	e := domain.Enrollment{
		StudentID:    input.StudentID,
		ClassID:      input.ClassID,
		RegisterDate: now(),
	}
	if err := e.Validate(); err != nil {
		return EnrollStudentResult{}, err
	}

	st, err := deps.StudentStore.GetByID(ctx, e.StudentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return EnrollStudentResult{}, ErrStudentNotFound
		}
		return EnrollStudentResult{}, fmt.Errorf("look up student: %w", err)
	}
	cls, err := deps.ClassStore.GetByID(ctx, e.ClassID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return EnrollStudentResult{}, ErrClassNotFound
		}
		return EnrollStudentResult{}, fmt.Errorf("look up class: %w", err)
	}

	// The unique constraint, not a pre-check, decides duplicates.
	if err := deps.EnrollmentStore.Create(ctx, e); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return EnrollStudentResult{}, ErrAlreadyEnrolled
		}
		return EnrollStudentResult{}, fmt.Errorf("enroll student: %w", err)
	}

	slog.Info("student_enrolled", "student_id", e.StudentID, "class_id", e.ClassID)
	return EnrollStudentResult{
		StudentName:  st.FullName(),
		ClassName:    cls.ClassName,
		RegisterDate: e.RegisterDate,
	}, nil
}
