package account

import (
	"errors"
	"testing"
)

func TestSetAndCheckPassword(t *testing.T) {
	a := Account{Username: "S2024001", Email: "s@example.com", Role: RoleStudent}
	if err := a.SetPassword("secret-pass"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if a.PasswordHash == "secret-pass" {
		t.Fatal("password stored in plain text")
	}
	if err := a.CheckPassword("secret-pass"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := a.CheckPassword("wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("got %v, want ErrWrongPassword", err)
	}
}

func TestSetPasswordRejectsShort(t *testing.T) {
	var a Account
	if err := a.SetPassword("12345"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("got %v, want ErrPasswordTooShort", err)
	}
}

func TestRoleChecks(t *testing.T) {
	if !IsValidRole(RoleAdmin) || !IsValidRole(RoleEmployee) || !IsValidRole(RoleStudent) {
		t.Fatal("known roles rejected")
	}
	if IsValidRole("Superuser") {
		t.Fatal("unknown role accepted")
	}
	if IsSelfServeRole(RoleAdmin) {
		t.Fatal("admin must not be self-serve")
	}
	if !IsSelfServeRole(RoleStudent) || !IsSelfServeRole(RoleEmployee) {
		t.Fatal("student/employee should be self-serve")
	}
}
