package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"attendci/internal/adapters/email"
	"attendci/internal/adapters/storage"
	accountDomain "attendci/internal/domain/account"
	domainOutbox "attendci/internal/domain/outbox"
	domain "attendci/internal/domain/student"
)

// StudentStoreForRegister defines the store interface needed by
// RegisterStudent.
type StudentStoreForRegister interface {
	CreateWithAccount(ctx context.Context, s domain.Student, a accountDomain.Account) (int64, error)
}

// ArtifactDir writes and removes registration artifacts.
type ArtifactDir interface {
	SavePhoto(studentID, photoBase64 string) (string, error)
	GenerateQR(studentID string) (string, error)
	Remove(relPath string)
	ReadRel(relPath string) ([]byte, string, error)
}

// RegisterStudentInput carries the full registration payload.
type RegisterStudentInput struct {
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
	PhotoBase64  string
}

// RegisterStudentDeps holds dependencies for RegisterStudent.
type RegisterStudentDeps struct {
	StudentStore StudentStoreForRegister
	Artifacts    ArtifactDir
	Email        *Dispatcher
}

// RegisterStudentResult reports the created artifact paths.
type RegisterStudentResult struct {
	PhotoPath string
	QRPath    string
}

// Conflict errors carry the field that collided so the handler can keep the
// field-specific messages the registration form shows.
var (
	ErrStudentIDTaken = errors.New("student ID is already registered")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrUsernameTaken  = errors.New("username is already taken")
	ErrContactTaken   = errors.New("contact number is already registered")
	ErrDuplicateKey   = errors.New("a record with the same value already exists")
)

// ExecuteRegisterStudent coordinates student registration: artifacts first,
// then one transaction for profile + login rows, then the welcome email.
// PRE: Input validated at the HTTP boundary; domain validation re-checked here
// POST: Both rows committed and welcome email queued, or nothing persisted
// and any written files removed
// INVARIANT: Username of the login row equals the student ID
func ExecuteRegisterStudent(ctx context.Context, input RegisterStudentInput, deps RegisterStudentDeps) (RegisterStudentResult, error) {
	st := domain.Student{
		StudentID:    input.StudentID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		ContactNum:   input.ContactNum,
		Email:        input.Email,
		DOB:          input.DOB,
		Address:      input.Address,
		ParentName:   input.ParentName,
		ParentTelNum: input.ParentTelNum,
		Relationship: input.Relationship,
	}
	if err := st.Validate(); err != nil {
		return RegisterStudentResult{}, err
	}

	password, err := domain.DefaultPassword(st.Email, st.FirstName, st.DOB)
	if err != nil {
		return RegisterStudentResult{}, err
	}

	acct := accountDomain.Account{
		Username: st.StudentID, // username is the student ID
		Email:    st.Email,
		Role:     accountDomain.RoleStudent,
	}
	if err := acct.SetPassword(password); err != nil {
		return RegisterStudentResult{}, err
	}

	// Artifacts are written before the transaction and removed if it fails.
	if input.PhotoBase64 != "" {
		st.PhotoPath, err = deps.Artifacts.SavePhoto(st.StudentID, input.PhotoBase64)
		if err != nil {
			return RegisterStudentResult{}, err
		}
	}
	st.QRPath, err = deps.Artifacts.GenerateQR(st.StudentID)
	if err != nil {
		deps.Artifacts.Remove(st.PhotoPath)
		return RegisterStudentResult{}, err
	}

	if _, err := deps.StudentStore.CreateWithAccount(ctx, st, acct); err != nil {
		deps.Artifacts.Remove(st.PhotoPath)
		deps.Artifacts.Remove(st.QRPath)
		if errors.Is(err, storage.ErrDuplicate) {
			return RegisterStudentResult{}, duplicateFieldError(err)
		}
		return RegisterStudentResult{}, fmt.Errorf("register student: %w", err)
	}

	slog.Info("student_registered", "student_id", st.StudentID)

	sendWelcomeEmail(ctx, deps, st, password)

	return RegisterStudentResult{PhotoPath: st.PhotoPath, QRPath: st.QRPath}, nil
}

// sendWelcomeEmail queues the credentials email with the QR code attached.
// Failures are logged only: registration has already committed.
func sendWelcomeEmail(ctx context.Context, deps RegisterStudentDeps, st domain.Student, password string) {
	body, err := email.RenderMarkdown(email.WelcomeBody(st.FullName(), st.StudentID, password))
	if err != nil {
		slog.Error("welcome_email_render_failed", "student_id", st.StudentID, "error", err)
		return
	}

	req := email.SendRequest{
		To:      []string{st.Email},
		Subject: "Welcome to attendci — your login details",
		HTML:    body,
	}
	if qr, _, err := deps.Artifacts.ReadRel(st.QRPath); err == nil {
		req.Attachments = append(req.Attachments, email.Attachment{
			Filename: "attendance-qr.png",
			Content:  qr,
		})
	} else {
		slog.Warn("welcome_email_qr_missing", "student_id", st.StudentID, "error", err)
	}

	if err := deps.Email.Enqueue(ctx, domainOutbox.ActionWelcomeEmail, req); err != nil {
		slog.Error("welcome_email_enqueue_failed", "student_id", st.StudentID, "error", err)
	}
}

// duplicateFieldError maps a field-tagged storage.ErrDuplicate to the
// matching conflict error.
func duplicateFieldError(err error) error {
	switch storage.UniqueField(err) {
	case "studentid":
		return ErrStudentIDTaken
	case "email":
		return ErrEmailTaken
	case "username":
		return ErrUsernameTaken
	case "contactnum":
		return ErrContactTaken
	default:
		return ErrDuplicateKey
	}
}
