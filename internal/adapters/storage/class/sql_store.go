package class

import (
	"context"
	"database/sql"
	"errors"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/class"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new class store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// GetByID retrieves a class by class ID.
// PRE: id is non-empty
// POST: Returns the class or storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id string) (domain.Class, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT ClassID, ClassName, ClassSubject, ClassBatch, ClassPrice, TeacherID
		 FROM classregister WHERE ClassID = ?`, id)

	var entity domain.Class
	err := row.Scan(&entity.ClassID, &entity.ClassName, &entity.ClassSubject,
		&entity.ClassBatch, &entity.ClassPrice, &entity.TeacherID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Class{}, storage.ErrNotFound
	}
	return entity, err
}

// Create inserts a new class.
// PRE: c has been validated and the teacher exists
// POST: Row inserted; storage.ErrDuplicate on ClassID collision
func (s *SQLStore) Create(ctx context.Context, c domain.Class) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classregister (ClassID, ClassName, ClassSubject, ClassBatch, ClassPrice, TeacherID)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ClassID, c.ClassName, c.ClassSubject, c.ClassBatch, c.ClassPrice, c.TeacherID)
	if err != nil && storage.IsUniqueViolation(err) {
		return storage.DuplicateError(err)
	}
	return err
}

// ListWithTeacher returns all classes with the owning teacher's name.
// POST: Rows in ClassID order; TeacherName empty if teacher row is gone
func (s *SQLStore) ListWithTeacher(ctx context.Context) ([]ClassWithTeacher, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.ClassID, c.ClassName, c.ClassSubject, c.ClassBatch, c.ClassPrice, c.TeacherID,
		        t.FirstName, t.LastName
		 FROM classregister c
		 LEFT JOIN teacherregister t ON c.TeacherID = t.TeacherID
		 ORDER BY c.ClassID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ClassWithTeacher
	for rows.Next() {
		var cw ClassWithTeacher
		var first, last sql.NullString
		if err := rows.Scan(&cw.ClassID, &cw.ClassName, &cw.ClassSubject,
			&cw.ClassBatch, &cw.ClassPrice, &cw.TeacherID, &first, &last); err != nil {
			return nil, err
		}
		if first.Valid {
			cw.TeacherName = first.String + " " + last.String
		}
		result = append(result, cw)
	}
	return result, rows.Err()
}

// Count returns the number of registered classes.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM classregister").Scan(&n)
	return n, err
}
