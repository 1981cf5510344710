package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
	"github.com/diewo77/go-complaints/internal/config"
	"github.com/diewo77/go-complaints/internal/db"
	"github.com/diewo77/go-complaints/internal/metrics"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/diewo77/go-complaints/internal/policy"
	"github.com/diewo77/go-complaints/internal/services"
	"github.com/diewo77/go-complaints/view"
	"github.com/diewo77/go-complaints/web"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type harness struct {
	db         *gorm.DB
	accounts   *services.AccountService
	complaints *services.ComplaintService
	sessions   *auth.Manager
	gate       *gate.Gate[auth.Principal]
	metrics    *metrics.Metrics
	rs         *Responder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	d, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))

	accounts := services.NewAccountService(d)
	return &harness{
		db:         d,
		accounts:   accounts,
		complaints: services.NewComplaintService(d),
		sessions:   auth.NewManager(auth.Config{Secret: []byte("test-secret")}, accounts.Principal, nil),
		gate:       policy.NewGate(),
		metrics:    metrics.New(),
		rs:         NewResponder(view.New(web.Templates(), false), middleware.NewFlashes([]byte("0123456789abcdef0123456789abcdef"), false)),
	}
}

func (h *harness) authHandler() *AuthHandler {
	return NewAuthHandler(h.rs, h.accounts, h.sessions, h.metrics)
}

func (h *harness) dashboardHandler() *DashboardHandler {
	return NewDashboardHandler(h.rs, h.complaints, h.gate)
}

func (h *harness) complaintHandler() *ComplaintHandler {
	return NewComplaintHandler(h.rs, h.complaints, h.gate, h.metrics)
}

func (h *harness) student(t *testing.T, studentID string) auth.Principal {
	t.Helper()
	u, err := h.accounts.Register(context.Background(), services.Registration{
		StudentID: studentID,
		Name:      "Student " + studentID,
		Email:     strings.ToLower(studentID) + "@example.com",
		Password:  "pw1",
	})
	require.NoError(t, err)
	return services.PrincipalOf(u)
}

func (h *harness) admin(t *testing.T) auth.Principal {
	t.Helper()
	_, err := db.EnsureAdmin(context.Background(), h.db, config.Defaults().Admin)
	require.NoError(t, err)
	u, err := h.accounts.Authenticate(context.Background(), "admin001", "admin123")
	require.NoError(t, err)
	return services.PrincipalOf(u)
}

func (h *harness) submit(t *testing.T, owner auth.Principal, title, category string) *models.Complaint {
	t.Helper()
	c, err := h.complaints.Submit(context.Background(), owner.ID, services.Submission{
		Title: title, Description: "details", Category: category,
	})
	require.NoError(t, err)
	return c
}

// request builds a request as p; form values turn it into a urlencoded POST.
func request(method, target string, p auth.Principal, form url.Values) *http.Request {
	var r *http.Request
	if form != nil {
		r = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(auth.WithPrincipal(r.Context(), p))
}

func asJSON(r *http.Request) *http.Request {
	r.Header.Set("Accept", "application/json")
	return r
}

// withID sets the {id} wildcard the way the mux would.
func withID(r *http.Request, id uint) *http.Request {
	r.SetPathValue("id", fmt.Sprint(id))
	return r
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}
