package web

import (
	"errors"
	"net/http"

	"attendci/internal/adapters/http/middleware"
	"attendci/internal/application/orchestrators"
	"attendci/internal/application/validate"
	"attendci/internal/domain/account"
)

// sessionUser is the user block returned by login and validate-session.
type sessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// handleLogin handles POST /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Username   string `json:"username" validate:"required"`
		Password   string `json:"password" validate:"required"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.LoginInput{Username: req.Username, Password: req.Password}
	deps := orchestrators.LoginDeps{AccountStore: stores.AccountStore}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			fail(w, http.StatusUnauthorized, err.Error())
			return
		}
		internalError(w, err)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Username, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token, req.RememberMe)

	ok(w, "login successful", map[string]any{
		"user": sessionUser{ID: result.AccountID, Username: result.Username, Role: result.Role},
	})
}

// handleLogout handles POST /logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	ok(w, "logged out", nil)
}

// handleValidateSession handles GET /validate-session. A session whose
// account has been deleted since login is invalidated here.
func handleValidateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	session, found := middleware.GetSessionFromContext(r.Context())
	if !found {
		respond(w, http.StatusUnauthorized, false, "not authenticated", map[string]any{
			"authenticated": false,
		})
		return
	}

	if _, err := stores.AccountStore.GetByID(r.Context(), session.AccountID); err != nil {
		if cookie, cerr := r.Cookie(middleware.SessionCookieName); cerr == nil {
			sessions.Delete(cookie.Value)
		}
		middleware.ClearSessionCookie(w)
		respond(w, http.StatusUnauthorized, false, "session no longer valid", map[string]any{
			"authenticated": false,
		})
		return
	}

	ok(w, "session valid", map[string]any{
		"authenticated": true,
		"user":          sessionUser{ID: session.AccountID, Username: session.Username, Role: session.Role},
	})
}

// handleRegister handles POST /register, the public signup for bare login
// accounts. Admin accounts cannot be created here.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Username string `json:"username" validate:"required,min=3,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role" validate:"omitempty,oneof=Employee Student Admin"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	input := orchestrators.CreateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	deps := orchestrators.CreateAccountDeps{AccountStore: stores.AccountStore}

	id, err := orchestrators.ExecuteCreateAccount(r.Context(), input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAdminSignupForbidden):
			fail(w, http.StatusForbidden, err.Error())
		case errors.Is(err, orchestrators.ErrDuplicateAccount):
			fail(w, http.StatusConflict, err.Error())
		case errors.Is(err, account.ErrInvalidRole), errors.Is(err, account.ErrPasswordTooShort):
			fail(w, http.StatusBadRequest, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	ok(w, "account created", map[string]any{"id": id})
}
