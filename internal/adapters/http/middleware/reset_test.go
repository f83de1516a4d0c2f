package middleware

import (
	"testing"
	"time"
)

func TestResetStoreIssueAndGet(t *testing.T) {
	rs := NewResetStore()

	token, err := rs.Issue("john@example.com", "123456")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	sess, found := rs.Get(token)
	if !found || sess.Email != "john@example.com" || sess.Code != "123456" {
		t.Fatalf("Get: %+v, %v", sess, found)
	}

	rs.Clear(token)
	if _, found := rs.Get(token); found {
		t.Fatal("session survived Clear")
	}
}

func TestResetStoreCooldown(t *testing.T) {
	rs := NewResetStore()
	if remaining := rs.CooldownRemaining("john@example.com"); remaining != 0 {
		t.Fatalf("cooldown before any issue: %v", remaining)
	}

	if _, err := rs.Issue("john@example.com", "123456"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	remaining := rs.CooldownRemaining("john@example.com")
	if remaining <= 0 || remaining > ResetCooldown {
		t.Fatalf("cooldown after issue: %v", remaining)
	}

	// Other addresses are unaffected.
	if remaining := rs.CooldownRemaining("other@example.com"); remaining != 0 {
		t.Fatalf("cooldown leaked to other email: %v", remaining)
	}
}

func TestResetStoreLatestCodeWins(t *testing.T) {
	rs := NewResetStore()
	first, err := rs.Issue("john@example.com", "111111")
	if err != nil {
		t.Fatalf("first Issue: %v", err)
	}
	second, err := rs.Issue("john@example.com", "222222")
	if err != nil {
		t.Fatalf("second Issue: %v", err)
	}

	if _, found := rs.Get(first); found {
		t.Fatal("superseded code still valid")
	}
	sess, found := rs.Get(second)
	if !found || sess.Code != "222222" {
		t.Fatalf("latest code: %+v, %v", sess, found)
	}
}

func TestResetStoreExpiry(t *testing.T) {
	rs := NewResetStore()
	token, err := rs.Issue("john@example.com", "123456")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	rs.mu.Lock()
	sess := rs.sessions[token]
	sess.IssuedAt = time.Now().Add(-ResetCodeLifetime - time.Minute)
	rs.sessions[token] = sess
	rs.mu.Unlock()

	if _, found := rs.Get(token); found {
		t.Fatal("expired reset code returned")
	}
}
