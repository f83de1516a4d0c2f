package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/teacher"
)

// TeacherStoreForRegister defines the store interface needed by
// RegisterTeacher.
type TeacherStoreForRegister interface {
	Create(ctx context.Context, t domain.Teacher) error
}

// RegisterTeacherInput carries the registration payload.
type RegisterTeacherInput struct {
	TeacherID     string
	FirstName     string
	LastName      string
	Subject       string
	Email         string
	ContactNumber string
}

// RegisterTeacherDeps holds dependencies for RegisterTeacher.
type RegisterTeacherDeps struct {
	TeacherStore TeacherStoreForRegister
}

// ErrTeacherIDTaken signals a teacher ID collision.
var ErrTeacherIDTaken = errors.New("teacher ID is already registered")

// ExecuteRegisterTeacher creates a teacher record.
// PRE: Input validated at the HTTP boundary
// POST: Teacher row exists, or a conflict/validation error is returned
func ExecuteRegisterTeacher(ctx context.Context, input RegisterTeacherInput, deps RegisterTeacherDeps) error {
	t := domain.Teacher{
		TeacherID:     input.TeacherID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Subject:       input.Subject,
		Email:         input.Email,
		ContactNumber: input.ContactNumber,
	}
	if err := t.Validate(); err != nil {
		return err
	}

	if err := deps.TeacherStore.Create(ctx, t); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return ErrTeacherIDTaken
		}
		return fmt.Errorf("register teacher: %w", err)
	}

	slog.Info("teacher_registered", "teacher_id", t.TeacherID)
	return nil
}
