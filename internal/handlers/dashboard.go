package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
	"github.com/diewo77/go-complaints/httpx"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/diewo77/go-complaints/internal/policy"
	"github.com/diewo77/go-complaints/internal/services"
)

type DashboardHandler struct {
	*Responder
	complaints *services.ComplaintService
	gate       *gate.Gate[auth.Principal]
}

func NewDashboardHandler(rs *Responder, complaints *services.ComplaintService, g *gate.Gate[auth.Principal]) *DashboardHandler {
	return &DashboardHandler{Responder: rs, complaints: complaints, gate: g}
}

// Root sends everyone to the page that fits them.
func (h *DashboardHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	http.Redirect(w, r, DashboardPath(auth.FromContext(r.Context())), http.StatusSeeOther)
}

func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())
	if err := h.gate.Authorize(r.Context(), p, gate.ActionList, policy.ResourceComplaint, policy.Owner(p.ID)); err != nil {
		h.deny(w, r, p)
		return
	}
	list, err := h.complaints.ListByOwner(r.Context(), p.ID)
	if err != nil {
		h.ServerError(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"complaints": list})
		return
	}
	h.render(w, r, http.StatusOK, "student_dashboard.html", map[string]any{"Complaints": list})
}

// filterFrom reads the admin filters; an unknown status is dropped rather than matching nothing.
func filterFrom(r *http.Request) services.Filter {
	q := r.URL.Query()
	f := services.Filter{
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	if st := models.ComplaintStatus(strings.TrimSpace(q.Get("status"))); st.Valid() {
		f.Status = st
	}
	return f
}

func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())
	if err := h.gate.Authorize(r.Context(), p, gate.ActionList, policy.ResourceComplaint, nil); err != nil {
		h.deny(w, r, p)
		return
	}
	ctx := r.Context()
	f := filterFrom(r)
	list, err := h.complaints.List(ctx, f)
	if err != nil {
		h.ServerError(w, r, err)
		return
	}
	categories, err := h.complaints.Categories(ctx)
	if err != nil {
		h.ServerError(w, r, err)
		return
	}
	counts, err := h.complaints.CountByStatus(ctx)
	if err != nil {
		h.ServerError(w, r, err)
		return
	}
	var total int64
	for _, c := range counts {
		total += c.Count
	}

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"complaints": list,
			"categories": categories,
			"counts":     counts,
			"total":      total,
		})
		return
	}
	h.render(w, r, http.StatusOK, "admin_dashboard.html", map[string]any{
		"Complaints": list,
		"Categories": categories,
		"Statuses":   models.Statuses,
		"Filter":     f,
		"Counts":     counts,
		"Total":      total,
	})
}
