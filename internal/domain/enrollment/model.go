package enrollment

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyStudentID = errors.New("student ID cannot be empty")
	ErrEmptyClassID   = errors.New("class ID cannot be empty")
)

// Enrollment holds one row of the studentclasses join table. The
// (StudentID, ClassID) pair is unique.
type Enrollment struct {
	StudentID    string
	ClassID      string
	RegisterDate time.Time
}

// Validate checks that both sides of the enrollment are present.
// PRE: Enrollment struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Enrollment) Validate() error {
	if strings.TrimSpace(e.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if strings.TrimSpace(e.ClassID) == "" {
		return ErrEmptyClassID
	}
	return nil
}
