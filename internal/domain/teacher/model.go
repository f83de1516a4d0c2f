package teacher

import (
	"errors"
	"strings"

	"attendci/internal/domain/student"
)

// Domain errors
var (
	ErrEmptyTeacherID = errors.New("teacher ID cannot be empty")
	ErrInvalidName    = errors.New("name must be between 2 and 50 characters")
	ErrEmptySubject   = errors.New("subject cannot be empty")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrInvalidPhone   = errors.New("contact number must be 10 digits starting with 0")
)

// Teacher holds one row of the teacherregister table.
type Teacher struct {
	TeacherID     string
	FirstName     string
	LastName      string
	Subject       string
	Email         string
	ContactNumber string
}

// Validate checks required fields and formats.
// PRE: Teacher struct is populated from registration input
// POST: Returns nil if valid, error otherwise
func (t *Teacher) Validate() error {
	if strings.TrimSpace(t.TeacherID) == "" {
		return ErrEmptyTeacherID
	}
	if !validName(t.FirstName) || !validName(t.LastName) {
		return ErrInvalidName
	}
	if strings.TrimSpace(t.Subject) == "" {
		return ErrEmptySubject
	}
	if !student.ValidEmail(t.Email) {
		return ErrInvalidEmail
	}
	if t.ContactNumber != "" && !student.ValidPhone(t.ContactNumber) {
		return ErrInvalidPhone
	}
	return nil
}

// FullName returns "FirstName LastName".
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

func validName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 50
}
