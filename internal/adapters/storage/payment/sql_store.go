package payment

import (
	"context"
	"database/sql"
	"time"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/payment"
)

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new payment store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Create inserts a payment row and returns its assigned ID.
// PRE: p has been validated and student/class existence checked
// POST: Row inserted
func (s *SQLStore) Create(ctx context.Context, p domain.Payment) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payment (StudentID, ClassID, Payment, Year, Month, PaymentDate)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.StudentID, p.ClassID, p.Amount, p.Year, p.Month,
		p.PaymentDate.Format(storage.TimeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListByStudent returns the student's payments joined with class details,
// newest first. limit <= 0 means unbounded.
func (s *SQLStore) ListByStudent(ctx context.Context, studentID string, limit int) ([]HistoryRow, error) {
	query := `SELECT p.PaymentID, p.ClassID, p.Payment, p.PaymentDate, p.Year, p.Month,
	                 c.ClassName, c.ClassSubject
	          FROM payment p
	          LEFT JOIN classregister c ON p.ClassID = c.ClassID
	          WHERE p.StudentID = ?
	          ORDER BY p.PaymentDate DESC`
	args := []any{studentID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []HistoryRow
	for rows.Next() {
		var h HistoryRow
		var paid string
		var name, subject sql.NullString
		if err := rows.Scan(&h.PaymentID, &h.ClassID, &h.Amount, &paid, &h.Year, &h.Month, &name, &subject); err != nil {
			return nil, err
		}
		if t, err := time.Parse(storage.TimeLayout, paid); err == nil {
			h.PaymentDate = t
		}
		h.ClassName = name.String
		h.ClassSubject = subject.String
		result = append(result, h)
	}
	return result, rows.Err()
}

// RevenueForMonth sums payment amounts recorded for the given period.
func (s *SQLStore) RevenueForMonth(ctx context.Context, year, month int) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(Payment) FROM payment WHERE Year = ? AND Month = ?",
		year, month).Scan(&total)
	return total.Float64, err
}
