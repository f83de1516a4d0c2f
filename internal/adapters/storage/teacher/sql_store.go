package teacher

import (
	"context"
	"database/sql"
	"errors"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/teacher"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new teacher store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// GetByID retrieves a teacher by teacher ID.
// PRE: id is non-empty
// POST: Returns the teacher or storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id string) (domain.Teacher, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT TeacherID, FirstName, LastName, Subject, Email, ContactNumber
		 FROM teacherregister WHERE TeacherID = ?`, id)

	var entity domain.Teacher
	var contact sql.NullString
	err := row.Scan(&entity.TeacherID, &entity.FirstName, &entity.LastName,
		&entity.Subject, &entity.Email, &contact)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Teacher{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Teacher{}, err
	}
	entity.ContactNumber = contact.String
	return entity, nil
}

// Create inserts a new teacher.
// PRE: t has been validated
// POST: Row inserted; storage.ErrDuplicate on TeacherID collision
func (s *SQLStore) Create(ctx context.Context, t domain.Teacher) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teacherregister (TeacherID, FirstName, LastName, Subject, Email, ContactNumber)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.TeacherID, t.FirstName, t.LastName, t.Subject, t.Email, t.ContactNumber)
	if err != nil && storage.IsUniqueViolation(err) {
		return storage.DuplicateError(err)
	}
	return err
}

// Count returns the number of registered teachers.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM teacherregister").Scan(&n)
	return n, err
}
