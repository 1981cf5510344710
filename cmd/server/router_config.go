package main

import (
	"net/http"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/gate"
	"github.com/diewo77/go-complaints/internal/handlers"
	"github.com/diewo77/go-complaints/internal/metrics"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/internal/policy"
	"github.com/diewo77/go-complaints/internal/services"
	"github.com/diewo77/go-complaints/view"
	"gorm.io/gorm"
)

// RouterConfig holds the configured handlers and the collaborators they share.
type RouterConfig struct {
	Gate     *gate.Gate[auth.Principal]
	Sessions *auth.Manager
	Metrics  *metrics.Metrics
	Flashes  *middleware.Flashes
	View     *view.Renderer

	Responder        *handlers.Responder
	AuthHandler      *handlers.AuthHandler
	DashboardHandler *handlers.DashboardHandler
	ComplaintHandler *handlers.ComplaintHandler
}

// SessionOptions configures the session manager built by NewRouterConfig.
type SessionOptions struct {
	Auth    auth.Config
	Revoker auth.Revoker // nil keeps revocations in memory
}

// NewRouterConfig wires services, the authorization gate and handlers around db.
func NewRouterConfig(db *gorm.DB, v *view.Renderer, flashes *middleware.Flashes, sess SessionOptions, m *metrics.Metrics) *RouterConfig {
	accounts := services.NewAccountService(db)
	complaints := services.NewComplaintService(db)
	g := policy.NewGate()
	sessions := auth.NewManager(sess.Auth, accounts.Principal, sess.Revoker)

	v.Use(func(r *http.Request, data map[string]any) func(http.ResponseWriter) {
		if _, ok := data["Flashes"]; ok {
			return nil
		}
		data["Flashes"] = flashes.Peek(r)
		return func(w http.ResponseWriter) { flashes.Clear(w, r) }
	})

	rs := handlers.NewResponder(v, flashes)
	return &RouterConfig{
		Gate:             g,
		Sessions:         sessions,
		Metrics:          m,
		Flashes:          flashes,
		View:             v,
		Responder:        rs,
		AuthHandler:      handlers.NewAuthHandler(rs, accounts, sessions, m),
		DashboardHandler: handlers.NewDashboardHandler(rs, complaints, g),
		ComplaintHandler: handlers.NewComplaintHandler(rs, complaints, g, m),
	}
}
