package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
	"github.com/diewo77/go-complaints/httpx"
	"github.com/diewo77/go-complaints/i18n"
	"github.com/diewo77/go-complaints/internal/metrics"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/diewo77/go-complaints/internal/policy"
	"github.com/diewo77/go-complaints/internal/receipt"
	"github.com/diewo77/go-complaints/internal/services"
	"github.com/diewo77/go-complaints/validation"
	"github.com/rs/zerolog"
)

type ComplaintHandler struct {
	*Responder
	complaints *services.ComplaintService
	gate       *gate.Gate[auth.Principal]
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewComplaintHandler(rs *Responder, complaints *services.ComplaintService, g *gate.Gate[auth.Principal], m *metrics.Metrics) *ComplaintHandler {
	return &ComplaintHandler{Responder: rs, complaints: complaints, gate: g, metrics: m, now: time.Now}
}

func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())
	if !h.gate.Can(r.Context(), p, gate.ActionCreate, policy.ResourceComplaint, nil) {
		h.deny(w, r, p)
		return
	}
	if r.Method == http.MethodGet {
		h.renderSubmit(w, r, ComplaintForm{}, nil, "")
		return
	}

	form := parseComplaint(r)
	if v := validate(form); !v.Empty() {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "form_invalid", v)
			return
		}
		h.renderSubmit(w, r, form, v, "form_invalid")
		return
	}

	c, err := h.complaints.Submit(r.Context(), p.ID, services.Submission{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
	})
	if err != nil {
		h.ServerError(w, r, err)
		return
	}
	h.metrics.ComplaintSubmitted()
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, c)
		return
	}
	h.flash(w, r, middleware.FlashSuccess, "complaint_submitted")
	http.Redirect(w, r, "/student/dashboard", http.StatusSeeOther)
}

func (h *ComplaintHandler) renderSubmit(w http.ResponseWriter, r *http.Request, form ComplaintForm, v validation.Violations, notice string) {
	h.render(w, r, http.StatusOK, "submit_complaint.html", map[string]any{
		"Form":        form,
		"Errors":      v,
		"Notice":      notice,
		"Suggestions": CategorySuggestions,
	})
}

// load resolves {id} and checks that the current principal may perform action on it.
// It writes the response and returns nil when the request cannot proceed.
func (h *ComplaintHandler) load(w http.ResponseWriter, r *http.Request, action gate.Action) *models.Complaint {
	id, ok := pathID(r)
	if !ok {
		h.NotFound(w, r)
		return nil
	}
	c, err := h.complaints.Get(r.Context(), id)
	if errors.Is(err, services.ErrComplaintNotFound) {
		h.NotFound(w, r)
		return nil
	}
	if err != nil {
		h.ServerError(w, r, err)
		return nil
	}
	p := auth.FromContext(r.Context())
	if err := h.gate.Authorize(r.Context(), p, action, policy.ResourceComplaint, c); err != nil {
		h.deny(w, r, p)
		return nil
	}
	return c
}

func (h *ComplaintHandler) View(w http.ResponseWriter, r *http.Request) {
	c := h.load(w, r, gate.ActionView)
	if c == nil {
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, c)
		return
	}
	h.renderView(w, r, c, nil, "")
}

func (h *ComplaintHandler) renderView(w http.ResponseWriter, r *http.Request, c *models.Complaint, v validation.Violations, notice string) {
	h.render(w, r, http.StatusOK, "view_complaint.html", map[string]any{
		"Complaint": c,
		"Statuses":  models.Statuses,
		"Errors":    v,
		"Notice":    notice,
	})
}

// Receipt streams a PDF acknowledgement to anyone allowed to view the complaint.
func (h *ComplaintHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	c := h.load(w, r, gate.ActionView)
	if c == nil {
		return
	}
	var buf bytes.Buffer
	if err := receipt.Write(&buf, c, i18n.LangFrom(r.Context()), h.now()); err != nil {
		h.ServerError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.Filename(c)))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	c := h.load(w, r, gate.ActionUpdate)
	if c == nil {
		return
	}

	form := parseStatus(r)
	if v := validate(form); !v.Empty() {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusUnprocessableEntity, "form_invalid", v)
			return
		}
		h.renderView(w, r, c, v, "form_invalid")
		return
	}

	updated, err := h.complaints.UpdateStatus(r.Context(), c.ID, statusOf(form), form.Remarks)
	switch {
	case errors.Is(err, services.ErrComplaintNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.ServerError(w, r, err)
		return
	}
	h.metrics.StatusUpdated(updated.Status.String())
	zerolog.Ctx(r.Context()).Info().
		Uint("complaint_id", updated.ID).
		Str("status", updated.Status.String()).
		Uint("admin_id", auth.FromContext(r.Context()).ID).
		Msg("complaint status updated")

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, updated)
		return
	}
	h.flash(w, r, middleware.FlashSuccess, "status_updated")
	http.Redirect(w, r, fmt.Sprintf("/complaint/%d", updated.ID), http.StatusSeeOther)
}
