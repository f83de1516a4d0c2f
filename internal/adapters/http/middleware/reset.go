package middleware

import (
	"net/http"
	"sync"
	"time"
)

// ResetCookieName carries the opaque token tying a browser to its pending
// password-reset code.
const ResetCookieName = "attendci_reset"

// Reset state windows.
const (
	ResetCodeLifetime = 15 * time.Minute
	ResetCooldown     = 60 * time.Second
)

// ResetSession is a pending password-reset code for one email address.
type ResetSession struct {
	Email    string
	Code     string
	IssuedAt time.Time
}

// ResetStore holds pending reset codes in memory, keyed by opaque token. It
// also tracks per-email issue times so codes cannot be requested more often
// than the cooldown allows.
type ResetStore struct {
	mu       sync.Mutex
	sessions map[string]ResetSession
	lastSent map[string]time.Time
}

// NewResetStore creates an empty reset store.
func NewResetStore() *ResetStore {
	return &ResetStore{
		sessions: make(map[string]ResetSession),
		lastSent: make(map[string]time.Time),
	}
}

// CooldownRemaining reports how long until a new code may be issued for the
// email. Zero means a code may be issued now.
func (rs *ResetStore) CooldownRemaining(email string) time.Duration {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	last, ok := rs.lastSent[email]
	if !ok {
		return 0
	}
	remaining := ResetCooldown - time.Since(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Issue stores a fresh code for the email and returns the token to put in the
// reset cookie. Any earlier code for the same email is invalidated: only the
// newest issued code verifies.
// PRE: The caller has checked CooldownRemaining
// POST: Exactly one live reset session exists for the email
func (rs *ResetStore) Issue(email, code string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for t, s := range rs.sessions {
		if s.Email == email {
			delete(rs.sessions, t)
		}
	}
	rs.sessions[token] = ResetSession{
		Email:    email,
		Code:     code,
		IssuedAt: time.Now(),
	}
	rs.lastSent[email] = time.Now()
	return token, nil
}

// Get retrieves the reset session for a token, expiring stale ones.
func (rs *ResetStore) Get(token string) (ResetSession, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	session, ok := rs.sessions[token]
	if !ok {
		return ResetSession{}, false
	}
	if time.Since(session.IssuedAt) > ResetCodeLifetime {
		delete(rs.sessions, token)
		return ResetSession{}, false
	}
	return session, true
}

// Clear removes the reset session for a token.
func (rs *ResetStore) Clear(token string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.sessions, token)
}

// SetResetCookie sets the reset cookie for the code's lifetime.
func SetResetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ResetCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(ResetCodeLifetime / time.Second),
	})
}

// ClearResetCookie removes the reset cookie.
func ClearResetCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     ResetCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
