package class

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyClassID   = errors.New("class ID cannot be empty")
	ErrEmptyClassName = errors.New("class name cannot be empty")
	ErrEmptySubject   = errors.New("class subject cannot be empty")
	ErrEmptyBatch     = errors.New("class batch cannot be empty")
	ErrInvalidPrice   = errors.New("class price must be a valid positive number")
	ErrEmptyTeacherID = errors.New("teacher ID cannot be empty")
)

// Class holds one row of the classregister table.
type Class struct {
	ClassID      string
	ClassName    string
	ClassSubject string
	ClassBatch   string
	ClassPrice   float64
	TeacherID    string
}

// Validate checks required fields and price bounds.
// PRE: Class struct is populated from registration input
// POST: Returns nil if valid, error otherwise
func (c *Class) Validate() error {
	if strings.TrimSpace(c.ClassID) == "" {
		return ErrEmptyClassID
	}
	if strings.TrimSpace(c.ClassName) == "" {
		return ErrEmptyClassName
	}
	if strings.TrimSpace(c.ClassSubject) == "" {
		return ErrEmptySubject
	}
	if strings.TrimSpace(c.ClassBatch) == "" {
		return ErrEmptyBatch
	}
	if c.ClassPrice < 0 {
		return ErrInvalidPrice
	}
	if strings.TrimSpace(c.TeacherID) == "" {
		return ErrEmptyTeacherID
	}
	return nil
}
