package payment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/payment"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db, storage.DriverSQLite); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return db
}

func seedPayments(t *testing.T, store *SQLStore, studentID string, count int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		p := domain.Payment{
			StudentID:   studentID,
			ClassID:     "C1",
			Amount:      2500,
			Year:        2026,
			Month:       i + 1,
			PaymentDate: base.AddDate(0, i, 0),
		}
		if _, err := store.Create(context.Background(), p); err != nil {
			t.Fatalf("seed payment %d: %v", i, err)
		}
	}
}

func TestListByStudentLimitAndOrder(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	seedPayments(t, store, "S1", 5)

	recent, err := store.ListByStudent(ctx, "S1", 3)
	if err != nil {
		t.Fatalf("ListByStudent limited: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("limited rows: %d", len(recent))
	}
	// Newest first: May, April, March.
	if recent[0].Month != 5 || recent[2].Month != 3 {
		t.Fatalf("order: months %d..%d", recent[0].Month, recent[2].Month)
	}

	all, err := store.ListByStudent(ctx, "S1", 0)
	if err != nil {
		t.Fatalf("ListByStudent unbounded: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("unbounded rows: %d", len(all))
	}
}

func TestListByStudentScopedToStudent(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	seedPayments(t, store, "S1", 2)
	seedPayments(t, store, "S2", 1)

	rows, err := store.ListByStudent(ctx, "S1", 0)
	if err != nil {
		t.Fatalf("ListByStudent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows for S1: %d", len(rows))
	}
}

func TestListByStudentJoinsClassDetails(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	if _, err := db.Exec(
		`INSERT INTO classregister (ClassID, ClassName, ClassSubject, ClassBatch, ClassPrice, TeacherID)
		 VALUES ('C1', 'Physics 2026', 'Physics', '2026', 2500, 'T1')`); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	seedPayments(t, store, "S1", 1)

	rows, err := store.ListByStudent(ctx, "S1", 0)
	if err != nil || len(rows) != 1 {
		t.Fatalf("rows %d, %v", len(rows), err)
	}
	if rows[0].ClassName != "Physics 2026" || rows[0].ClassSubject != "Physics" {
		t.Fatalf("join fields: %+v", rows[0])
	}
	if rows[0].Amount != 2500 {
		t.Fatalf("amount %v", rows[0].Amount)
	}
}

func TestRevenueForMonth(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	seedPayments(t, store, "S1", 2) // months 1 and 2
	seedPayments(t, store, "S2", 1) // month 1

	total, err := store.RevenueForMonth(ctx, 2026, 1)
	if err != nil {
		t.Fatalf("RevenueForMonth: %v", err)
	}
	if total != 5000 {
		t.Fatalf("month 1 revenue %v, want 5000", total)
	}

	// Empty period sums to zero, not an error.
	total, err = store.RevenueForMonth(ctx, 2026, 12)
	if err != nil || total != 0 {
		t.Fatalf("empty period: %v, %v", total, err)
	}
}
