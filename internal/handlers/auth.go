package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/httpx"
	"github.com/diewo77/go-complaints/internal/metrics"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/internal/services"
	"github.com/diewo77/go-complaints/validation"
)

type AuthHandler struct {
	*Responder
	accounts *services.AccountService
	sessions *auth.Manager
	metrics  *metrics.Metrics
}

func NewAuthHandler(rs *Responder, accounts *services.AccountService, sessions *auth.Manager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{Responder: rs, accounts: accounts, sessions: sessions, metrics: m}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "register.html", map[string]any{"Form": RegisterForm{}})
		return
	}

	form := parseRegister(r)
	if v := validate(form); !v.Empty() {
		h.registerFailed(w, r, form, http.StatusUnprocessableEntity, "form_invalid", v)
		return
	}

	u, err := h.accounts.Register(r.Context(), services.Registration{
		StudentID: form.StudentID,
		Name:      form.Name,
		Email:     form.Email,
		Password:  form.Password,
	})
	switch {
	case errors.Is(err, services.ErrDuplicateStudentID):
		h.registerFailed(w, r, form, http.StatusConflict, "duplicate_student_id", validation.Violations{})
		return
	case errors.Is(err, services.ErrDuplicateEmail):
		h.registerFailed(w, r, form, http.StatusConflict, "duplicate_email", validation.Violations{})
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		h.registerFailed(w, r, form, http.StatusUnprocessableEntity, "form_invalid", validation.Violations{"password": "too_long"})
		return
	case err != nil:
		h.ServerError(w, r, err)
		return
	}

	h.metrics.UserRegistered()
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, u)
		return
	}
	h.flash(w, r, middleware.FlashSuccess, "registration_success")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// registerFailed re-renders the form with the entered values; the password is never echoed.
func (h *AuthHandler) registerFailed(w http.ResponseWriter, r *http.Request, form RegisterForm, jsonStatus int, notice string, v validation.Violations) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, jsonStatus, notice, v)
		return
	}
	form.Password = ""
	h.render(w, r, http.StatusOK, "register.html", map[string]any{
		"Form":   form,
		"Errors": v,
		"Notice": notice,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "login.html", map[string]any{"Form": LoginForm{}})
		return
	}

	form := parseLogin(r)
	if v := validate(form); !v.Empty() {
		h.loginFailed(w, r, form, "form_invalid", v)
		return
	}

	u, err := h.accounts.Authenticate(r.Context(), form.StudentID, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.metrics.LoginFailed()
		h.loginFailed(w, r, form, "invalid_credentials", validation.Violations{})
		return
	}
	if err != nil {
		h.ServerError(w, r, err)
		return
	}

	p := services.PrincipalOf(u)
	if err := h.sessions.Login(w, p, form.Remember); err != nil {
		h.ServerError(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	http.Redirect(w, r, DashboardPath(p), http.StatusSeeOther)
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, form LoginForm, notice string, v validation.Violations) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnauthorized, notice, v)
		return
	}
	form.Password = ""
	h.render(w, r, http.StatusOK, "login.html", map[string]any{
		"Form":   form,
		"Errors": v,
		"Notice": notice,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(w, r)
	if httpx.WantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.flash(w, r, middleware.FlashInfo, "logged_out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
