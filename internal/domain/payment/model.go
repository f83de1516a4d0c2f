package payment

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyStudentID = errors.New("student ID cannot be empty")
	ErrEmptyClassID   = errors.New("class ID cannot be empty")
	ErrInvalidAmount  = errors.New("payment amount must be greater than zero")
	ErrInvalidPeriod  = errors.New("payment year/month is out of range")
)

// Payment holds one row of the payment table.
type Payment struct {
	PaymentID   int64
	StudentID   string
	ClassID     string
	Amount      float64
	Year        int
	Month       int
	PaymentDate time.Time
}

// Validate checks amount and billing period bounds.
// PRE: Payment struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Payment) Validate() error {
	if strings.TrimSpace(p.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if strings.TrimSpace(p.ClassID) == "" {
		return ErrEmptyClassID
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.Year < 2000 || p.Year > 2100 {
		return ErrInvalidPeriod
	}
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}
