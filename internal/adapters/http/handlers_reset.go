package web

import (
	"errors"
	"fmt"
	"net/http"

	"attendci/internal/adapters/http/middleware"
	"attendci/internal/application/orchestrators"
	"attendci/internal/application/validate"
	"attendci/internal/domain/account"
)

// handleForgotPassword handles POST /forgot_password. Issues a 6-digit code
// by email and ties it to the browser through the reset cookie. At most one
// code per email per cooldown window.
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	if remaining := resets.CooldownRemaining(req.Email); remaining > 0 {
		fail(w, http.StatusTooManyRequests,
			fmt.Sprintf("please wait %d seconds before requesting another code", int(remaining.Seconds())+1))
		return
	}

	input := orchestrators.ForgotPasswordInput{Email: req.Email}
	deps := orchestrators.ForgotPasswordDeps{
		AccountStore: stores.AccountStore,
		Email:        dispatcher,
	}

	result, err := orchestrators.ExecuteForgotPassword(r.Context(), input, deps)
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrInvalidEmail):
			fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, orchestrators.ErrAccountNotFound):
			fail(w, http.StatusNotFound, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	token, err := resets.Issue(req.Email, result.Code)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetResetCookie(w, token)

	ok(w, "reset code sent to your email", nil)
}

// handleResetPassword handles POST /reset_password. The emailed code must
// match the newest one issued for the cookie's reset state.
func handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		fail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		ResetCode       string `json:"resetCode" validate:"required,len=6,numeric"`
		NewPassword     string `json:"newPassword" validate:"required,min=6"`
		ConfirmPassword string `json:"confirmPassword" validate:"required"`
	}
	if err := strictDecode(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}

	cookie, err := r.Cookie(middleware.ResetCookieName)
	if err != nil || cookie.Value == "" {
		fail(w, http.StatusUnauthorized, "no pending password reset, request a code first")
		return
	}
	state, found := resets.Get(cookie.Value)
	if !found {
		middleware.ClearResetCookie(w)
		fail(w, http.StatusUnauthorized, "reset code has expired, request a new one")
		return
	}

	input := orchestrators.ResetPasswordInput{
		Email:           state.Email,
		Code:            req.ResetCode,
		IssuedCode:      state.Code,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}
	deps := orchestrators.ResetPasswordDeps{AccountStore: stores.AccountStore}

	if err := orchestrators.ExecuteResetPassword(r.Context(), input, deps); err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrResetCodeMismatch):
			fail(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, orchestrators.ErrResetCodeExpired):
			fail(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, orchestrators.ErrPasswordMismatch),
			errors.Is(err, account.ErrPasswordTooShort):
			fail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, orchestrators.ErrAccountNotFound):
			fail(w, http.StatusNotFound, err.Error())
		default:
			internalError(w, err)
		}
		return
	}

	resets.Clear(cookie.Value)
	middleware.ClearResetCookie(w)

	ok(w, "password updated, you can now log in", nil)
}
