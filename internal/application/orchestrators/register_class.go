package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/class"
	teacherDomain "attendci/internal/domain/teacher"
)

// ClassStoreForRegister defines the store interface needed by RegisterClass.
type ClassStoreForRegister interface {
	Create(ctx context.Context, c domain.Class) error
}

// TeacherStoreForClass looks up the teacher a class is assigned to.
type TeacherStoreForClass interface {
	GetByID(ctx context.Context, teacherID string) (teacherDomain.Teacher, error)
}

// RegisterClassInput carries the registration payload.
type RegisterClassInput struct {
	ClassID      string
	ClassName    string
	ClassSubject string
	ClassBatch   string
	ClassPrice   float64
	TeacherID    string
}

// RegisterClassDeps holds dependencies for RegisterClass.
type RegisterClassDeps struct {
	ClassStore   ClassStoreForRegister
	TeacherStore TeacherStoreForClass
}

var (
	// ErrClassIDTaken signals a class ID collision.
	ErrClassIDTaken = errors.New("class ID is already registered")
	// ErrTeacherNotFound signals the assigned teacher does not exist.
	ErrTeacherNotFound = errors.New("teacher not found")
)

// ExecuteRegisterClass creates a class assigned to an existing teacher.
// PRE: Input validated at the HTTP boundary
// POST: Class row exists referencing the teacher, or an error is returned
func ExecuteRegisterClass(ctx context.Context, input RegisterClassInput, deps RegisterClassDeps) error {
	c := domain.Class{
		ClassID:      input.ClassID,
		ClassName:    input.ClassName,
		ClassSubject: input.ClassSubject,
		ClassBatch:   input.ClassBatch,
		ClassPrice:   input.ClassPrice,
		TeacherID:    input.TeacherID,
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if _, err := deps.TeacherStore.GetByID(ctx, c.TeacherID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("look up teacher: %w", err)
	}

	if err := deps.ClassStore.Create(ctx, c); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return ErrClassIDTaken
		}
		return fmt.Errorf("register class: %w", err)
	}

	slog.Info("class_registered", "class_id", c.ClassID, "teacher_id", c.TeacherID)
	return nil
}
