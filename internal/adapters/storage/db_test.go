package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"
)

func TestSchemaSupportsBothDrivers(t *testing.T) {
	for _, driver := range []string{DriverMySQL, DriverSQLite} {
		stmts, err := Schema(driver)
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if len(stmts) == 0 {
			t.Fatalf("%s: no statements", driver)
		}
	}
	if _, err := Schema("oracle"); err == nil {
		t.Fatal("unsupported driver accepted")
	}
}

func TestInitDBCreatesSchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitDB(db, DriverSQLite); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	// Idempotent: CREATE TABLE IF NOT EXISTS.
	if err := InitDB(db, DriverSQLite); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}

	for _, table := range []string{
		"clients_login", "studentregister", "teacherregister",
		"classregister", "studentclasses", "payment", "outbox",
	} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	sqliteErr := errors.New("constraint failed: UNIQUE constraint failed: clients_login.username (2067)")
	if !IsUniqueViolation(sqliteErr) {
		t.Fatal("sqlite unique violation not recognized")
	}
	if IsUniqueViolation(errors.New("syntax error")) {
		t.Fatal("unrelated error flagged as unique violation")
	}
	if IsUniqueViolation(nil) {
		t.Fatal("nil flagged as unique violation")
	}
}

func TestUniqueFieldExtraction(t *testing.T) {
	cases := map[string]string{
		"UNIQUE constraint failed: studentregister.studentID": "studentid",
		"UNIQUE constraint failed: clients_login.username":    "username",
		"UNIQUE constraint failed: clients_login.email":       "email",
		"Duplicate entry '077' for key 'contactNum'":          "contactnum",
		"something else entirely":                             "",
	}
	for msg, want := range cases {
		if got := UniqueField(errors.New(msg)); got != want {
			t.Errorf("UniqueField(%q) = %q, want %q", msg, got, want)
		}
	}
}

func TestDuplicateErrorWrapsSentinel(t *testing.T) {
	err := DuplicateError(errors.New("UNIQUE constraint failed: clients_login.email"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("%v does not wrap ErrDuplicate", err)
	}
	if got := UniqueField(err); got != "email" {
		t.Fatalf("field %q survived wrapping, want email", got)
	}
	if err := DuplicateError(fmt.Errorf("no field info")); !errors.Is(err, ErrDuplicate) {
		t.Fatal("fieldless duplicate lost the sentinel")
	}
}
