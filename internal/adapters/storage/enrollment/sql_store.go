package enrollment

import (
	"context"
	"database/sql"
	"time"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/enrollment"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new enrollment store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Create inserts an enrollment row.
// PRE: e has been validated
// POST: Row inserted, or storage.ErrDuplicate for a repeated pair
func (s *SQLStore) Create(ctx context.Context, e domain.Enrollment) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO studentclasses (StudentID, ClassID, RegisterDate) VALUES (?, ?, ?)",
		e.StudentID, e.ClassID, e.RegisterDate.Format(storage.TimeLayout))
	if err != nil && storage.IsUniqueViolation(err) {
		return storage.DuplicateError(err)
	}
	return err
}

// Exists reports whether the student is already enrolled in the class.
func (s *SQLStore) Exists(ctx context.Context, studentID, classID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM studentclasses WHERE StudentID = ? AND ClassID = ?",
		studentID, classID).Scan(&n)
	return n > 0, err
}

// ListByStudent returns the student's enrollments with class and teacher
// details, newest first.
func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]StudentClass, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sc.ClassID, sc.RegisterDate, cr.ClassName, cr.ClassSubject, cr.ClassPrice,
		        tr.FirstName, tr.LastName
		 FROM studentclasses sc
		 LEFT JOIN classregister cr ON sc.ClassID = cr.ClassID
		 LEFT JOIN teacherregister tr ON cr.TeacherID = tr.TeacherID
		 WHERE sc.StudentID = ?
		 ORDER BY sc.RegisterDate DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StudentClass
	for rows.Next() {
		var sc StudentClass
		var registered string
		var name, subject sql.NullString
		var price sql.NullFloat64
		var first, last sql.NullString
		if err := rows.Scan(&sc.ClassID, &registered, &name, &subject, &price, &first, &last); err != nil {
			return nil, err
		}
		if t, err := time.Parse(storage.TimeLayout, registered); err == nil {
			sc.RegisterDate = t
		}
		sc.ClassName = name.String
		sc.ClassSubject = subject.String
		sc.ClassPrice = price.Float64
		if first.Valid {
			sc.TeacherName = first.String + " " + last.String
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// Count returns the number of enrollment rows.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM studentclasses").Scan(&n)
	return n, err
}
