package projections

import (
	"context"
	"fmt"
	"time"

	enrollmentStore "attendci/internal/adapters/storage/enrollment"
)

// GetStudentClassesEnrollmentStore defines the enrollment store interface for
// a student's class list.
type GetStudentClassesEnrollmentStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]enrollmentStore.StudentClass, error)
}

// GetStudentClassesInput names the student whose classes are listed.
type GetStudentClassesInput struct {
	StudentID string
}

// GetStudentClassesDeps holds dependencies for the student class projection.
type GetStudentClassesDeps struct {
	EnrollmentStore GetStudentClassesEnrollmentStore
}

// StudentClassRow is one enrolled class with its enrollment date.
type StudentClassRow struct {
	ClassID      string  `json:"ClassID"`
	ClassName    string  `json:"ClassName"`
	ClassSubject string  `json:"ClassSubject"`
	ClassPrice   float64 `json:"ClassPrice"`
	TeacherName  string  `json:"TeacherName"`
	RegisterDate string  `json:"RegisterDate"`
}

// QueryGetStudentClasses lists the classes a student is enrolled in, newest
// enrollment first.
// PRE: StudentID comes from the caller's authenticated session when the
// caller is a student
func QueryGetStudentClasses(ctx context.Context, input GetStudentClassesInput, deps GetStudentClassesDeps) ([]StudentClassRow, error) {
	enrollments, err := deps.EnrollmentStore.ListByStudent(ctx, input.StudentID)
	if err != nil {
		return nil, fmt.Errorf("list student classes: %w", err)
	}

	rows := make([]StudentClassRow, 0, len(enrollments))
	for _, e := range enrollments {
		rows = append(rows, StudentClassRow{
			ClassID:      e.ClassID,
			ClassName:    e.ClassName,
			ClassSubject: e.ClassSubject,
			ClassPrice:   e.ClassPrice,
			TeacherName:  e.TeacherName,
			RegisterDate: e.RegisterDate.Format(time.DateOnly),
		})
	}
	return rows, nil
}
