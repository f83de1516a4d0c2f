package projections

import (
	"context"
	"errors"
	"fmt"

	"attendci/internal/adapters/storage"
	"attendci/internal/domain/student"
)

// GetStudentProfileStudentStore defines the student store interface for the
// profile projection.
type GetStudentProfileStudentStore interface {
	GetByID(ctx context.Context, studentID string) (student.Student, error)
}

// GetStudentProfileInput names the student.
type GetStudentProfileInput struct {
	StudentID string
}

// GetStudentProfileDeps holds dependencies for the profile projection.
type GetStudentProfileDeps struct {
	StudentStore GetStudentProfileStudentStore
}

// StudentProfile is the full registration record returned to the student or
// an administrator.
type StudentProfile struct {
	StudentID    string `json:"StudentID"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	ContactNum   string `json:"ContactNum"`
	Email        string `json:"Email"`
	DOB          string `json:"DOB"`
	Address      string `json:"Address"`
	ParentName   string `json:"ParentName"`
	ParentTelNum string `json:"ParentTelNum"`
	Relationship string `json:"Relationship"`
	PhotoPath    string `json:"PhotoPath"`
	QRPath       string `json:"QRPath"`
}

// ErrProfileNotFound signals no student exists for the ID.
var ErrProfileNotFound = errors.New("student profile not found")

// QueryGetStudentProfile returns a student's registration record.
// PRE: StudentID comes from the caller's authenticated session when the
// caller is a student
func QueryGetStudentProfile(ctx context.Context, input GetStudentProfileInput, deps GetStudentProfileDeps) (StudentProfile, error) {
	st, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return StudentProfile{}, ErrProfileNotFound
		}
		return StudentProfile{}, fmt.Errorf("get student profile: %w", err)
	}

	return StudentProfile{
		StudentID:    st.StudentID,
		FirstName:    st.FirstName,
		LastName:     st.LastName,
		ContactNum:   st.ContactNum,
		Email:        st.Email,
		DOB:          st.DOB,
		Address:      st.Address,
		ParentName:   st.ParentName,
		ParentTelNum: st.ParentTelNum,
		Relationship: st.Relationship,
		PhotoPath:    st.PhotoPath,
		QRPath:       st.QRPath,
	}, nil
}
