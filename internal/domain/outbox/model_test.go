package outbox

import (
	"errors"
	"testing"
	"time"
)

func pendingEntry() Entry {
	return Entry{
		ID:          "entry-1",
		ActionType:  ActionWelcomeEmail,
		Payload:     `{"to":["a@example.com"]}`,
		Status:      StatusPending,
		MaxAttempts: DefaultMaxAttempts,
		CreatedAt:   time.Now(),
	}
}

func TestEntryLifecycle(t *testing.T) {
	e := pendingEntry()
	if !e.CanRetry() {
		t.Fatal("pending entry should be retryable")
	}

	e.MarkAttempt()
	if e.Attempts != 1 || e.Status != StatusRetrying {
		t.Fatalf("after attempt: attempts=%d status=%s", e.Attempts, e.Status)
	}

	e.MarkFailed(errors.New("smtp down"))
	if e.Status == StatusFailed {
		t.Fatal("entry failed terminally before reaching max attempts")
	}

	e.MarkSuccess("msg-42")
	if e.Status != StatusDone || e.ExternalID != "msg-42" || e.ErrorMessage != "" {
		t.Fatalf("after success: %+v", e)
	}
	if !e.IsTerminal() {
		t.Fatal("done entry should be terminal")
	}
}

func TestEntryFailsTerminallyAtMaxAttempts(t *testing.T) {
	e := pendingEntry()
	for i := 0; i < e.MaxAttempts; i++ {
		e.MarkAttempt()
		e.MarkFailed(errors.New("still down"))
	}
	if e.Status != StatusFailed {
		t.Fatalf("status %s after exhausting attempts", e.Status)
	}
	if e.CanRetry() {
		t.Fatal("exhausted entry must not retry")
	}
}

func TestNextRetryDelayBackoff(t *testing.T) {
	e := pendingEntry()
	base := time.Minute
	max := time.Hour

	e.Attempts = 1
	if got := e.NextRetryDelay(base, max); got != 2*time.Minute {
		t.Fatalf("attempt 1: got %v", got)
	}
	e.Attempts = 3
	if got := e.NextRetryDelay(base, max); got != 8*time.Minute {
		t.Fatalf("attempt 3: got %v", got)
	}
	e.Attempts = 10
	if got := e.NextRetryDelay(base, max); got != max {
		t.Fatalf("capped delay: got %v", got)
	}
}
