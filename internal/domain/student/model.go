package student

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Field length bounds for registration input.
const (
	MinNameLength = 2
	MaxNameLength = 50
)

// DOBFormat is the wire format for dates of birth.
const DOBFormat = "2006-01-02"

// phonePattern matches local ten-digit numbers starting with 0 (e.g. 0712345678).
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

// emailPattern is the same loose shape the registration form enforces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Domain errors
var (
	ErrEmptyStudentID  = errors.New("student ID cannot be empty")
	ErrInvalidName     = errors.New("name must be between 2 and 50 characters")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidPhone    = errors.New("contact number must be 10 digits starting with 0")
	ErrInvalidDOB      = errors.New("date of birth must be in YYYY-MM-DD format")
	ErrDOBInFuture     = errors.New("date of birth cannot be in the future")
	ErrNoEmailLocal    = errors.New("email has no local part")
	ErrEmptyFirstName  = errors.New("first name cannot be empty")
)

// Student holds one row of the studentregister table. StudentID doubles as the
// login username of the matching clients_login row.
type Student struct {
	StudentID    string
	FirstName    string
	LastName     string
	ContactNum   string
	Email        string
	DOB          string
	Address      string
	ParentName   string
	ParentTelNum string
	Relationship string
	PhotoPath    string
	QRPath       string
}

// Validate checks required fields and formats.
// PRE: Student struct is populated from registration input
// POST: Returns nil if valid, error otherwise
func (s *Student) Validate() error {
	if strings.TrimSpace(s.StudentID) == "" {
		return ErrEmptyStudentID
	}
	if !validName(s.FirstName) || !validName(s.LastName) {
		return ErrInvalidName
	}
	if !emailPattern.MatchString(s.Email) {
		return ErrInvalidEmail
	}
	if s.ContactNum != "" && !phonePattern.MatchString(s.ContactNum) {
		return ErrInvalidPhone
	}
	if s.ParentTelNum != "" && !phonePattern.MatchString(s.ParentTelNum) {
		return ErrInvalidPhone
	}
	dob, err := time.Parse(DOBFormat, s.DOB)
	if err != nil {
		return ErrInvalidDOB
	}
	if dob.After(time.Now()) {
		return ErrDOBInFuture
	}
	return nil
}

// FullName returns "FirstName LastName".
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// DefaultPassword derives the initial login password from the email local
// part, the first name and the DOB with dashes stripped:
// abc@x.com / John / 2000-01-01 -> "abc@John20000101".
// PRE: email contains '@', firstName non-empty, dob is YYYY-MM-DD
// POST: Returns the derived password
func DefaultPassword(email, firstName, dob string) (string, error) {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "", ErrNoEmailLocal
	}
	if firstName == "" {
		return "", ErrEmptyFirstName
	}
	return email[:at] + "@" + firstName + strings.ReplaceAll(dob, "-", ""), nil
}

// ValidPhone reports whether tel matches the local phone pattern.
func ValidPhone(tel string) bool {
	return phonePattern.MatchString(tel)
}

// ValidEmail reports whether email has a plausible address shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= MinNameLength && n <= MaxNameLength
}
