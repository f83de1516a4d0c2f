package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/enrollment"
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

func seedClass(t *testing.T, db *sql.DB, classID, teacherID string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO teacherregister (TeacherID, FirstName, LastName, Subject, Email, ContactNumber)
		 VALUES (?, 'Anna', 'Silva', 'Physics', ?, '0712223334')`,
		teacherID, teacherID+"@example.com")
	if err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	_, err = db.Exec(
		`INSERT INTO classregister (ClassID, ClassName, ClassSubject, ClassBatch, ClassPrice, TeacherID)
		 VALUES (?, 'Physics 2026', 'Physics', '2026', 2500, ?)`,
		classID, teacherID)
	if err != nil {
		t.Fatalf("seed class: %v", err)
	}
}

func TestCreateRejectsDuplicatePair(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	seedClass(t, db, "C1", "T1")

	e := domain.Enrollment{StudentID: "S1", ClassID: "C1", RegisterDate: time.Now()}
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("first enrollment: %v", err)
	}
	if err := store.Create(ctx, e); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("got %v, want ErrDuplicate", err)
	}

	// A different class for the same student is fine.
	seedClass(t, db, "C2", "T2")
	e.ClassID = "C2"
	if err := store.Create(ctx, e); err != nil {
		t.Fatalf("second class enrollment: %v", err)
	}
}

func TestListByStudentNewestFirstWithJoins(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	seedClass(t, db, "C1", "T1")
	seedClass(t, db, "C2", "T2")

	older := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	if err := store.Create(ctx, domain.Enrollment{StudentID: "S1", ClassID: "C1", RegisterDate: older}); err != nil {
		t.Fatalf("enroll C1: %v", err)
	}
	if err := store.Create(ctx, domain.Enrollment{StudentID: "S1", ClassID: "C2", RegisterDate: newer}); err != nil {
		t.Fatalf("enroll C2: %v", err)
	}
	// Another student's enrollment must not leak in.
	if err := store.Create(ctx, domain.Enrollment{StudentID: "S2", ClassID: "C1", RegisterDate: newer}); err != nil {
		t.Fatalf("enroll other student: %v", err)
	}

	got, err := store.ListByStudent(ctx, "S1")
	if err != nil {
		t.Fatalf("ListByStudent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows: %d", len(got))
	}
	if got[0].ClassID != "C2" || got[1].ClassID != "C1" {
		t.Fatalf("order: %s then %s", got[0].ClassID, got[1].ClassID)
	}
	if got[0].ClassName != "Physics 2026" || got[0].TeacherName != "Anna Silva" || got[0].ClassPrice != 2500 {
		t.Fatalf("join fields: %+v", got[0])
	}
	if !got[0].RegisterDate.Equal(newer) {
		t.Fatalf("register date %v, want %v", got[0].RegisterDate, newer)
	}
}

func TestExistsAndCount(t *testing.T) {
	db := openTestDB(t)
	store := NewSQLStore(db)
	ctx := context.Background()
	seedClass(t, db, "C1", "T1")

	found, err := store.Exists(ctx, "S1", "C1")
	if err != nil || found {
		t.Fatalf("Exists before enrollment = %v, %v", found, err)
	}
	if err := store.Create(ctx, domain.Enrollment{StudentID: "S1", ClassID: "C1", RegisterDate: time.Now()}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	found, err = store.Exists(ctx, "S1", "C1")
	if err != nil || !found {
		t.Fatalf("Exists after enrollment = %v, %v", found, err)
	}
	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}
