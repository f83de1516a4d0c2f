package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"attendci/internal/adapters/email"
	outboxStore "attendci/internal/adapters/storage/outbox"
	domainOutbox "attendci/internal/domain/outbox"
)

// OutboxRetryDeps provides the dependencies for retrying outbox entries.
type OutboxRetryDeps struct {
	OutboxStore outboxStore.Store
	Sender      email.Sender
}

// OutboxRetryConfig holds configuration for the retry scheduler.
type OutboxRetryConfig struct {
	Interval  time.Duration
	BaseDelay time.Duration
	MaxDelay  time.Duration
	BatchSize int
}

// DefaultOutboxRetryConfig returns the defaults used by the server.
func DefaultOutboxRetryConfig() OutboxRetryConfig {
	return OutboxRetryConfig{
		Interval:  1 * time.Minute,
		BaseDelay: 1 * time.Minute,
		MaxDelay:  1 * time.Hour,
		BatchSize: 50,
	}
}

// ExecuteOutboxRetry processes pending and retryable outbox entries with
// exponential backoff.
// PRE: Deps are valid and the store is connected
// POST: Every eligible entry has been attempted once and its status saved
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) error {
	entries, err := deps.OutboxStore.ListPending(ctx, cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("list retryable outbox entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	var processed, succeeded, failed int
	for _, entry := range entries {
		// Backoff: skip entries whose retry window has not opened yet.
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(cfg.BaseDelay, cfg.MaxDelay))
			if time.Now().Before(nextRetry) {
				continue
			}
		}
		processed++

		entry.MarkAttempt()
		messageID, err := executeEntry(ctx, deps.Sender, entry)
		if err != nil {
			entry.MarkFailed(err)
			failed++
			slog.Error("outbox_retry_failed",
				"entry_id", entry.ID,
				"action", entry.ActionType,
				"attempt", entry.Attempts,
				"error", err,
			)
		} else {
			entry.MarkSuccess(messageID)
			succeeded++
			slog.Info("outbox_retry_succeeded", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_retry_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	if processed > 0 {
		slog.Info("outbox_retry_complete", "processed", processed, "succeeded", succeeded, "failed", failed)
	}
	return nil
}

// executeEntry dispatches a single entry by action type. Both current action
// types carry an email.SendRequest payload.
func executeEntry(ctx context.Context, sender email.Sender, entry domainOutbox.Entry) (string, error) {
	switch entry.ActionType {
	case domainOutbox.ActionWelcomeEmail, domainOutbox.ActionResetEmail:
		var req email.SendRequest
		if err := json.Unmarshal([]byte(entry.Payload), &req); err != nil {
			return "", fmt.Errorf("unmarshal email payload: %w", err)
		}
		res, err := sender.Send(ctx, req)
		if err != nil {
			return "", err
		}
		return res.MessageID, nil
	default:
		return "", fmt.Errorf("unknown action type: %s", entry.ActionType)
	}
}

// StartOutboxRetryScheduler runs ExecuteOutboxRetry on a ticker until the
// returned cancel function is called or the context ends.
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) func() {
	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("outbox_retry_scheduler_stopped")
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps, cfg); err != nil {
					slog.Error("outbox_retry_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
