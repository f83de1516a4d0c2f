package outbox

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"attendci/internal/adapters/storage"
	domain "attendci/internal/domain/outbox"
)

// dateLayout keeps nanosecond precision for attempt bookkeeping.
const dateLayout = time.RFC3339Nano

// SQLStore implements Store over database/sql.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new outbox store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

const selectColumns = `id, action_type, payload, status, attempts, max_attempts,
	last_attempted_at, created_at, external_id, error_message`

// GetByID retrieves an outbox entry by its ID.
// PRE: id is non-empty
// POST: Returns the entry or storage.ErrNotFound
func (s *SQLStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM outbox WHERE id = ?", id)
	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Entry{}, storage.ErrNotFound
	}
	return e, err
}

// Save persists an outbox entry (insert or update). Update-then-insert keeps
// the statement portable across both drivers.
// PRE: e has been validated
// POST: Entry is persisted
func (s *SQLStore) Save(ctx context.Context, e domain.Entry) error {
	lastAttempted := ""
	if !e.LastAttemptedAt.IsZero() {
		lastAttempted = e.LastAttemptedAt.Format(dateLayout)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE outbox SET action_type = ?, payload = ?, status = ?, attempts = ?,
		 max_attempts = ?, last_attempted_at = ?, external_id = ?, error_message = ?
		 WHERE id = ?`,
		e.ActionType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
		lastAttempted, e.ExternalID, e.ErrorMessage, e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO outbox (id, action_type, payload, status, attempts, max_attempts,
		 last_attempted_at, created_at, external_id, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ActionType, e.Payload, e.Status, e.Attempts, e.MaxAttempts,
		lastAttempted, e.CreatedAt.Format(dateLayout), e.ExternalID, e.ErrorMessage)
	return err
}

// ListPending returns entries awaiting delivery, oldest first.
// PRE: limit > 0
func (s *SQLStore) ListPending(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+` FROM outbox
		 WHERE status IN (?, ?) AND attempts < max_attempts
		 ORDER BY created_at LIMIT ?`,
		domain.StatusPending, domain.StatusRetrying, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// ListFailed returns permanently failed entries, most recent attempt first.
// PRE: limit > 0
func (s *SQLStore) ListFailed(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+` FROM outbox
		 WHERE status = ?
		 ORDER BY last_attempted_at DESC LIMIT ?`,
		domain.StatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

// Delete removes an entry.
// PRE: id is non-empty
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM outbox WHERE id = ?", id)
	return err
}

func scanEntry(scan func(dest ...any) error) (domain.Entry, error) {
	var e domain.Entry
	var lastAttempted, created sql.NullString
	var externalID, errorMessage sql.NullString
	err := scan(&e.ID, &e.ActionType, &e.Payload, &e.Status, &e.Attempts,
		&e.MaxAttempts, &lastAttempted, &created, &externalID, &errorMessage)
	if err != nil {
		return domain.Entry{}, err
	}
	if lastAttempted.String != "" {
		if t, err := time.Parse(dateLayout, lastAttempted.String); err == nil {
			e.LastAttemptedAt = t
		}
	}
	if created.Valid {
		if t, err := time.Parse(dateLayout, created.String); err == nil {
			e.CreatedAt = t
		}
	}
	e.ExternalID = externalID.String
	e.ErrorMessage = errorMessage.String
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var result []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
