package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendci/internal/adapters/storage"
	accountDomain "attendci/internal/domain/account"
	domain "attendci/internal/domain/student"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new student store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

const selectColumns = `studentID, FirstName, LastName, ContactNum, Email, DOB,
	Address, ParentName, ParentTelNum, Relationship, PhotoPath, QRPath`

// GetByID retrieves a student profile by student ID.
// PRE: id is non-empty
// POST: Returns the profile or storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id string) (domain.Student, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM studentregister WHERE studentID = ?", id)

	var entity domain.Student
	var contact, address, pName, pTel, rel, photo, qr sql.NullString
	err := row.Scan(
		&entity.StudentID,
		&entity.FirstName,
		&entity.LastName,
		&contact,
		&entity.Email,
		&entity.DOB,
		&address,
		&pName,
		&pTel,
		&rel,
		&photo,
		&qr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, storage.ErrNotFound
	}
	if err != nil {
		return domain.Student{}, err
	}
	entity.ContactNum = contact.String
	entity.Address = address.String
	entity.ParentName = pName.String
	entity.ParentTelNum = pTel.String
	entity.Relationship = rel.String
	entity.PhotoPath = photo.String
	entity.QRPath = qr.String
	return entity, nil
}

// CreateWithAccount inserts the profile row and its login row inside one
// transaction: either both commit or neither is persisted.
// PRE: st and acct validated; acct.Username == st.StudentID
// POST: Both rows committed, account ID returned; storage.ErrDuplicate
// (field-tagged) on any natural key collision
func (s *SQLStore) CreateWithAccount(ctx context.Context, st domain.Student, acct accountDomain.Account) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin registration tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO studentregister
		 (studentID, FirstName, LastName, ContactNum, Email, DOB, Address, ParentName, ParentTelNum, Relationship, PhotoPath, QRPath)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		st.StudentID, st.FirstName, st.LastName, st.ContactNum, st.Email, st.DOB,
		st.Address, st.ParentName, st.ParentTelNum, st.Relationship, st.PhotoPath, st.QRPath)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, storage.DuplicateError(err)
		}
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO clients_login (username, email, password, role) VALUES (?, ?, ?, ?)",
		acct.Username, acct.Email, acct.PasswordHash, acct.Role)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, storage.DuplicateError(err)
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit registration tx: %w", err)
	}
	return id, nil
}

// Count returns the number of registered students.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM studentregister").Scan(&n)
	return n, err
}
