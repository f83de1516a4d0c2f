package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"attendci/internal/adapters/email"
	outboxStore "attendci/internal/adapters/storage/outbox"
	domainOutbox "attendci/internal/domain/outbox"
)

// Dispatcher submits emails through the outbox: the entry is persisted first,
// then an immediate send is attempted. A failed attempt leaves the entry for
// the background worker, so the calling request never fails because of email.
type Dispatcher struct {
	Store  outboxStore.Store
	Sender email.Sender

	// ReplyTo is applied to outgoing mail that does not set its own.
	ReplyTo string
}

// Enqueue persists the request and tries to send it once.
// PRE: actionType is a known outbox action; req has recipients and a subject
// POST: Outbox entry exists in done, pending or retrying state
func (d *Dispatcher) Enqueue(ctx context.Context, actionType string, req email.SendRequest) error {
	if req.ReplyTo == "" {
		req.ReplyTo = d.ReplyTo
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	entry := domainOutbox.Entry{
		ID:          uuid.New().String(),
		ActionType:  actionType,
		Payload:     string(payload),
		Status:      domainOutbox.StatusPending,
		MaxAttempts: domainOutbox.DefaultMaxAttempts,
		CreatedAt:   time.Now(),
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := d.Store.Save(ctx, entry); err != nil {
		return fmt.Errorf("save outbox entry: %w", err)
	}

	// First attempt inline; the worker owns every retry after this.
	entry.MarkAttempt()
	result, sendErr := d.Sender.Send(ctx, req)
	if sendErr != nil {
		entry.MarkFailed(sendErr)
		slog.Warn("email_first_attempt_failed", "entry_id", entry.ID, "action", actionType, "error", sendErr)
	} else {
		entry.MarkSuccess(result.MessageID)
	}
	if err := d.Store.Save(ctx, entry); err != nil {
		slog.Error("outbox_save_failed", "entry_id", entry.ID, "error", err)
	}
	return nil
}
