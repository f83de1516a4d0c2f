package projections

import (
	"context"
	"fmt"
	"time"

	paymentStore "attendci/internal/adapters/storage/payment"
)

// RecentPaymentsLimit is how many rows the default (non-full) history shows.
const RecentPaymentsLimit = 3

// GetPaymentHistoryPaymentStore defines the payment store interface for the
// history projection.
type GetPaymentHistoryPaymentStore interface {
	ListByStudent(ctx context.Context, studentID string, limit int) ([]paymentStore.HistoryRow, error)
}

// GetPaymentHistoryInput names the student and whether to return the full
// history or only the most recent payments.
type GetPaymentHistoryInput struct {
	StudentID string
	All       bool
}

// GetPaymentHistoryDeps holds dependencies for the history projection.
type GetPaymentHistoryDeps struct {
	PaymentStore GetPaymentHistoryPaymentStore
}

// PaymentRow is one payment in the history, newest first.
type PaymentRow struct {
	PaymentID    int64   `json:"PaymentID"`
	ClassID      string  `json:"ClassID"`
	ClassName    string  `json:"ClassName"`
	ClassSubject string  `json:"ClassSubject"`
	Amount       float64 `json:"Amount"`
	Year         int     `json:"Year"`
	Month        int     `json:"Month"`
	PaymentDate  string  `json:"PaymentDate"`
}

// QueryGetPaymentHistory lists a student's payments, newest first. Without
// All only the three most recent rows are returned.
// PRE: StudentID comes from the caller's authenticated session when the
// caller is a student
func QueryGetPaymentHistory(ctx context.Context, input GetPaymentHistoryInput, deps GetPaymentHistoryDeps) ([]PaymentRow, error) {
	limit := RecentPaymentsLimit
	if input.All {
		limit = 0
	}

	payments, err := deps.PaymentStore.ListByStudent(ctx, input.StudentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list payment history: %w", err)
	}

	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			PaymentID:    p.PaymentID,
			ClassID:      p.ClassID,
			ClassName:    p.ClassName,
			ClassSubject: p.ClassSubject,
			Amount:       p.Amount,
			Year:         p.Year,
			Month:        p.Month,
			PaymentDate:  p.PaymentDate.Format(time.DateOnly),
		})
	}
	return rows, nil
}
