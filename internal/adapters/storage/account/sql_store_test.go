package account

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/account"
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

func seedAccount(t *testing.T, store *SQLStore, username, email string) int64 {
	t.Helper()
	a := domain.Account{Username: username, Email: email, Role: domain.RoleStudent}
	if err := a.SetPassword("initial-password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	id, err := store.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return id
}

func TestCreateAndLookups(t *testing.T) {
	store := NewSQLStore(openTestDB(t))
	ctx := context.Background()
	id := seedAccount(t, store, "S1", "s1@example.com")

	byID, err := store.GetByID(ctx, id)
	if err != nil || byID.Username != "S1" {
		t.Fatalf("GetByID: %+v, %v", byID, err)
	}
	byName, err := store.GetByUsername(ctx, "S1")
	if err != nil || byName.ID != id {
		t.Fatalf("GetByUsername: %+v, %v", byName, err)
	}
	byEmail, err := store.GetByEmail(ctx, "s1@example.com")
	if err != nil || byEmail.ID != id {
		t.Fatalf("GetByEmail: %+v, %v", byEmail, err)
	}
	if err := byName.CheckPassword("initial-password"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestCreateDuplicateUsernameAndEmail(t *testing.T) {
	store := NewSQLStore(openTestDB(t))
	ctx := context.Background()
	seedAccount(t, store, "S1", "s1@example.com")

	dupName := domain.Account{Username: "S1", Email: "other@example.com", Role: domain.RoleStudent, PasswordHash: "x"}
	if _, err := store.Create(ctx, dupName); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("duplicate username: got %v", err)
	}
	dupEmail := domain.Account{Username: "S2", Email: "s1@example.com", Role: domain.RoleStudent, PasswordHash: "x"}
	if _, err := store.Create(ctx, dupEmail); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("duplicate email: got %v", err)
	}
}

func TestUpdatePasswordByEmail(t *testing.T) {
	store := NewSQLStore(openTestDB(t))
	ctx := context.Background()
	seedAccount(t, store, "S1", "s1@example.com")

	fresh := domain.Account{}
	if err := fresh.SetPassword("brand-new-pass"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := store.UpdatePasswordByEmail(ctx, "s1@example.com", fresh.PasswordHash); err != nil {
		t.Fatalf("UpdatePasswordByEmail: %v", err)
	}

	got, err := store.GetByUsername(ctx, "S1")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if err := got.CheckPassword("brand-new-pass"); err != nil {
		t.Fatalf("new password does not verify: %v", err)
	}
	if err := got.CheckPassword("initial-password"); err == nil {
		t.Fatal("old password still verifies")
	}
}

func TestUpdatePasswordByEmailUnknown(t *testing.T) {
	store := NewSQLStore(openTestDB(t))
	if err := store.UpdatePasswordByEmail(context.Background(), "ghost@example.com", "hash"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestGetByUsernameNotFound(t *testing.T) {
	store := NewSQLStore(openTestDB(t))
	if _, err := store.GetByUsername(context.Background(), "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
