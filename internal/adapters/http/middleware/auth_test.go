package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendci/internal/domain/account"
)

func TestSessionStoreLifecycle(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create(7, "S1", account.RoleStudent)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	sess, found := ss.Get(token)
	if !found || sess.AccountID != 7 || sess.Username != "S1" {
		t.Fatalf("Get: %+v, %v", sess, found)
	}

	ss.Delete(token)
	if _, found := ss.Get(token); found {
		t.Fatal("session survived Delete")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	ss := NewSessionStore()
	token, err := ss.Create(1, "S1", account.RoleStudent)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Age the session past its lifetime.
	ss.mu.Lock()
	sess := ss.sessions[token]
	sess.CreatedAt = time.Now().Add(-SessionLifetime - time.Minute)
	ss.sessions[token] = sess
	ss.mu.Unlock()

	if _, found := ss.Get(token); found {
		t.Fatal("expired session returned")
	}
	if _, stillThere := ss.sessions[token]; stillThere {
		t.Fatal("expired session not removed from store")
	}
}

func TestAuthMiddlewareSetsContext(t *testing.T) {
	ss := NewSessionStore()
	token, _ := ss.Create(7, "S1", account.RoleStudent)

	var got Session
	var found bool
	handler := Auth(ss)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found || got.Username != "S1" {
		t.Fatalf("session from context: %+v, %v", got, found)
	}
}

func TestRequireAuthRejectsWithJSON401(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Success {
		t.Fatal("success true on 401")
	}
}

func TestRequireRole(t *testing.T) {
	adminOnly := RequireRole(account.RoleAdmin)
	handler := adminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No session: 401.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status %d", rec.Code)
	}

	// Student session: 403.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: 1, Username: "S1", Role: account.RoleStudent}))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student: status %d", rec.Code)
	}

	// Admin session: allowed.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: 2, Username: "admin", Role: account.RoleAdmin}))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: status %d", rec.Code)
	}
}

func TestSetSessionCookieLifetime(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", false)
	session := rec.Result().Cookies()[0]
	if session.MaxAge != 0 {
		t.Fatalf("browser-session cookie has MaxAge %d", session.MaxAge)
	}

	rec = httptest.NewRecorder()
	SetSessionCookie(rec, "tok", true)
	remembered := rec.Result().Cookies()[0]
	if remembered.MaxAge != int(SessionLifetime/time.Second) {
		t.Fatalf("remember-me cookie MaxAge %d", remembered.MaxAge)
	}
}
