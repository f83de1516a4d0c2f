package payment

import (
	"context"
	"time"

	domain "attendci/internal/domain/payment"
)

// HistoryRow is a payment joined with its class name and subject.
type HistoryRow struct {
	PaymentID    int64
	ClassID      string
	Amount       float64
	PaymentDate  time.Time
	Year         int
	Month        int
	ClassName    string
	ClassSubject string
}

// Store persists payments.
type Store interface {
	// Create inserts a payment row and returns its assigned ID.
	// PRE: p has been validated and student/class existence checked
	// POST: Row inserted
	Create(ctx context.Context, p domain.Payment) (int64, error)

	// ListByStudent returns the student's payments joined with class details,
	// newest first. limit <= 0 means unbounded.
	ListByStudent(ctx context.Context, studentID string, limit int) ([]HistoryRow, error)

	// RevenueForMonth sums payment amounts recorded for the given period.
	RevenueForMonth(ctx context.Context, year, month int) (float64, error)
}
