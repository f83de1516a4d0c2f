package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/payment"
)

// PaymentStoreForRecord defines the store interface needed by RecordPayment.
type PaymentStoreForRecord interface {
	Create(ctx context.Context, p domain.Payment) (int64, error)
}

// RecordPaymentInput carries the payment payload. Amount of zero means
// "charge the class price".
type RecordPaymentInput struct {
	StudentID string
	ClassID   string
	Amount    float64
	Year      int
	Month     int
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	PaymentStore PaymentStoreForRecord
	StudentStore StudentStoreForEnroll
	ClassStore   ClassStoreForEnroll
	Now          func() time.Time
}

// RecordPaymentResult reports the stored payment.
type RecordPaymentResult struct {
	PaymentID int64
	Amount    float64
}

// ExecuteRecordPayment stores a monthly class fee payment for a student.
// PRE: Student and class exist; year/month default to the current period
// POST: A payment row exists with the charged amount
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (RecordPaymentResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	at := now()

	if _, err := deps.StudentStore.GetByID(ctx, input.StudentID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return RecordPaymentResult{}, ErrStudentNotFound
		}
		return RecordPaymentResult{}, fmt.Errorf("look up student: %w", err)
	}

	cls, err := deps.ClassStore.GetByID(ctx, input.ClassID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return RecordPaymentResult{}, ErrClassNotFound
		}
		return RecordPaymentResult{}, fmt.Errorf("look up class: %w", err)
	}

	p := domain.Payment{
		StudentID:   input.StudentID,
		ClassID:     input.ClassID,
		Amount:      input.Amount,
		Year:        input.Year,
		Month:       input.Month,
		PaymentDate: at,
	}
	if p.Amount == 0 {
		p.Amount = cls.ClassPrice
	}
	if p.Year == 0 {
		p.Year = at.Year()
	}
	if p.Month == 0 {
		p.Month = int(at.Month())
	}
	if err := p.Validate(); err != nil {
		return RecordPaymentResult{}, err
	}

	id, err := deps.PaymentStore.Create(ctx, p)
	if err != nil {
		return RecordPaymentResult{}, fmt.Errorf("record payment: %w", err)
	}

	slog.Info("payment_recorded",
		"payment_id", id,
		"student_id", p.StudentID,
		"class_id", p.ClassID,
		"amount", p.Amount,
	)
	return RecordPaymentResult{PaymentID: id, Amount: p.Amount}, nil
}
