package student

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validStudent() Student {
	return Student{
		StudentID:  "S2024001",
		FirstName:  "John",
		LastName:   "Perera",
		ContactNum: "0771234567",
		Email:      "john@example.com",
		DOB:        "2008-03-14",
	}
}

func TestStudentValidate(t *testing.T) {
	s := validStudent()
	if err := s.Validate(); err != nil {
		t.Fatalf("valid student rejected: %v", err)
	}
}

func TestStudentValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Student)
		want   error
	}{
		{"empty id", func(s *Student) { s.StudentID = "" }, ErrEmptyStudentID},
		{"short first name", func(s *Student) { s.FirstName = "J" }, ErrInvalidName},
		{"long last name", func(s *Student) { s.LastName = strings.Repeat("a", 51) }, ErrInvalidName},
		{"bad email", func(s *Student) { s.Email = "not-an-email" }, ErrInvalidEmail},
		{"short phone", func(s *Student) { s.ContactNum = "077123" }, ErrInvalidPhone},
		{"phone not starting with 0", func(s *Student) { s.ContactNum = "7712345678" }, ErrInvalidPhone},
		{"bad dob format", func(s *Student) { s.DOB = "14-03-2008" }, ErrInvalidDOB},
		{"future dob", func(s *Student) { s.DOB = time.Now().AddDate(1, 0, 0).Format(DOBFormat) }, ErrDOBInFuture},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validStudent()
			tc.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDefaultPassword(t *testing.T) {
	got, err := DefaultPassword("abc@x.com", "John", "2000-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc@John20000101" {
		t.Fatalf("got %q, want %q", got, "abc@John20000101")
	}
}

func TestDefaultPasswordRejectsBadInput(t *testing.T) {
	if _, err := DefaultPassword("no-at-sign", "John", "2000-01-01"); !errors.Is(err, ErrNoEmailLocal) {
		t.Fatalf("got %v, want ErrNoEmailLocal", err)
	}
	if _, err := DefaultPassword("abc@x.com", "", "2000-01-01"); !errors.Is(err, ErrEmptyFirstName) {
		t.Fatalf("got %v, want ErrEmptyFirstName", err)
	}
}

func TestFullName(t *testing.T) {
	s := validStudent()
	if got := s.FullName(); got != "John Perera" {
		t.Fatalf("got %q", got)
	}
}
