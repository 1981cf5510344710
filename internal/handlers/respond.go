package handlers

import (
	"net/http"
	"strconv"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/httpx"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/view"
	"github.com/rs/zerolog"
)

// Responder bundles the rendering and notice plumbing shared by all handlers.
type Responder struct {
	View    *view.Renderer
	Flashes *middleware.Flashes
}

func NewResponder(v *view.Renderer, f *middleware.Flashes) *Responder {
	return &Responder{View: v, Flashes: f}
}

func (rs *Responder) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if err := rs.View.RenderStatus(w, r, status, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound answers 404 with the not-found page, or JSON for API clients.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	rs.render(w, r, http.StatusNotFound, "not_found.html", nil)
}

// ServerError logs err and answers 500.
func (rs *Responder) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	rs.render(w, r, http.StatusInternalServerError, "error.html", map[string]any{
		"RequestID": middleware.RequestID(w),
	})
}

// Panic is the recover middleware's fallback.
func (rs *Responder) Panic(w http.ResponseWriter, r *http.Request) {
	rs.ServerError(w, r, errPanic)
}

func (rs *Responder) flash(w http.ResponseWriter, r *http.Request, kind, code string) {
	if rs.Flashes != nil {
		rs.Flashes.Add(w, r, kind, code)
	}
}

// deny sends the principal back to its own dashboard with a notice.
func (rs *Responder) deny(w http.ResponseWriter, r *http.Request, p auth.Principal) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusForbidden, "permission_denied", nil)
		return
	}
	rs.flash(w, r, middleware.FlashDanger, "permission_denied")
	http.Redirect(w, r, DashboardPath(p), http.StatusSeeOther)
}

// DashboardPath is the landing page for p.
func DashboardPath(p auth.Principal) string {
	switch {
	case !p.IsAuthenticated():
		return "/login"
	case p.IsAdmin:
		return "/admin/dashboard"
	default:
		return "/student/dashboard"
	}
}

// pathID parses the {id} wildcard; zero and garbage are rejected.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
