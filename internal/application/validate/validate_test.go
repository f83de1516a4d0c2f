package validate

import (
	"strings"
	"testing"
)

type enrollRequest struct {
	StudentID string `json:"studentID" validate:"required"`
	ClassID   string `json:"classID" validate:"required"`
}

type contactRequest struct {
	Phone string `validate:"required,lkphone"`
	DOB   string `validate:"required,pastdate"`
}

func TestStructOK(t *testing.T) {
	err := Struct(contactRequest{Phone: "0771234567", DOB: "2008-03-14"})
	if err != nil {
		t.Fatalf("Struct: %v", err)
	}
}

func TestLKPhone(t *testing.T) {
	bad := []string{"771234567", "07712345678", "7712345670", "077-123456", "+94771234567"}
	for _, phone := range bad {
		err := Struct(contactRequest{Phone: phone, DOB: "2008-03-14"})
		if err == nil {
			t.Errorf("phone %q accepted", phone)
			continue
		}
		if !strings.Contains(err.Error(), "10 digits starting with 0") {
			t.Errorf("phone %q: message %q", phone, err)
		}
	}
}

func TestPastDate(t *testing.T) {
	for _, dob := range []string{"3000-01-01", "14-03-2008", "2008/03/14", "yesterday"} {
		if err := Struct(contactRequest{Phone: "0771234567", DOB: dob}); err == nil {
			t.Errorf("dob %q accepted", dob)
		}
	}
	// Today is not in the future.
	if err := Struct(contactRequest{Phone: "0771234567", DOB: "2000-01-01"}); err != nil {
		t.Fatalf("past dob rejected: %v", err)
	}
}

func TestStructJoinsFieldMessages(t *testing.T) {
	err := Struct(enrollRequest{})
	if err == nil {
		t.Fatal("empty request accepted")
	}
	msg := err.Error()
	if !strings.Contains(msg, "StudentID is required") || !strings.Contains(msg, "ClassID is required") {
		t.Fatalf("message %q", msg)
	}
}
