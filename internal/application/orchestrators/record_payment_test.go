package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	classDomain "attendci/internal/domain/class"
	"attendci/internal/domain/payment"
	studentDomain "attendci/internal/domain/student"
)

type mockPaymentStore struct {
	created []payment.Payment
}

func (m *mockPaymentStore) Create(ctx context.Context, p payment.Payment) (int64, error) {
	m.created = append(m.created, p)
	return int64(len(m.created)), nil
}

func paymentDeps(store *mockPaymentStore) RecordPaymentDeps {
	return RecordPaymentDeps{
		PaymentStore: store,
		StudentStore: &mockStudentLookup{students: map[string]studentDomain.Student{
			"S1": {StudentID: "S1", FirstName: "John", LastName: "Perera"},
		}},
		ClassStore: &mockClassLookup{classes: map[string]classDomain.Class{
			"C1": {ClassID: "C1", ClassName: "Physics 2026", ClassPrice: 2500},
		}},
		Now: func() time.Time { return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func TestExecuteRecordPaymentDefaultsToClassPrice(t *testing.T) {
	store := &mockPaymentStore{}
	input := RecordPaymentInput{StudentID: "S1", ClassID: "C1"}

	result, err := ExecuteRecordPayment(context.Background(), input, paymentDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Amount != 2500 {
		t.Fatalf("amount %v, want class price 2500", result.Amount)
	}
	p := store.created[0]
	if p.Year != 2026 || p.Month != 8 {
		t.Fatalf("period defaulted to %d-%d", p.Year, p.Month)
	}
}

func TestExecuteRecordPaymentExplicitAmount(t *testing.T) {
	store := &mockPaymentStore{}
	input := RecordPaymentInput{StudentID: "S1", ClassID: "C1", Amount: 1000, Year: 2026, Month: 7}

	result, err := ExecuteRecordPayment(context.Background(), input, paymentDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Amount != 1000 || store.created[0].Month != 7 {
		t.Fatalf("unexpected payment: %+v", store.created[0])
	}
}

func TestExecuteRecordPaymentUnknownClassWritesNothing(t *testing.T) {
	store := &mockPaymentStore{}
	input := RecordPaymentInput{StudentID: "S1", ClassID: "ghost"}

	if _, err := ExecuteRecordPayment(context.Background(), input, paymentDeps(store)); !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("got %v, want ErrClassNotFound", err)
	}
	if len(store.created) != 0 {
		t.Fatal("payment row written for unknown class")
	}
}

func TestExecuteRecordPaymentInvalidPeriod(t *testing.T) {
	store := &mockPaymentStore{}
	input := RecordPaymentInput{StudentID: "S1", ClassID: "C1", Year: 1990, Month: 1}

	if _, err := ExecuteRecordPayment(context.Background(), input, paymentDeps(store)); !errors.Is(err, payment.ErrInvalidPeriod) {
		t.Fatalf("got %v, want ErrInvalidPeriod", err)
	}
}
