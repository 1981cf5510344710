package main

import (
	"net/http"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/httpx"
	"github.com/diewo77/go-complaints/internal/db"
	"github.com/diewo77/go-complaints/internal/handlers"
	"github.com/diewo77/go-complaints/internal/middleware"
	"github.com/diewo77/go-complaints/web"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	handler   http.Handler
	db        *gorm.DB
	routerCfg *RouterConfig
}

// NewApp creates a new application with all routes configured.
func NewApp(dbConn *gorm.DB, routerCfg *RouterConfig, log zerolog.Logger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        dbConn,
		routerCfg: routerCfg,
	}
	app.setupRoutes()

	// outermost first: panics are caught with the request logger already in context
	var h http.Handler = app.mux
	h = http.NewCrossOriginProtection().Handler(h)
	h = routerCfg.Sessions.Middleware(h)
	h = middleware.Prefs(h)
	h = middleware.Recover(routerCfg.Responder.Panic)(h)
	h = middleware.RequestLogger(log)(h)
	app.handler = h
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// handle registers h under pattern, instrumented with the pattern as route label.
func (a *App) handle(pattern string, h http.Handler) {
	a.mux.Handle(pattern, a.routerCfg.Metrics.Instrument(pattern, h))
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ah := a.routerCfg.AuthHandler
	dh := a.routerCfg.DashboardHandler
	ch := a.routerCfg.ComplaintHandler

	// Public
	a.handle("GET /", http.HandlerFunc(dh.Root))
	a.handle("GET /login", a.anonymousOnly(http.HandlerFunc(ah.Login)))
	a.handle("POST /login", a.anonymousOnly(http.HandlerFunc(ah.Login)))
	a.handle("GET /register", a.anonymousOnly(http.HandlerFunc(ah.Register)))
	a.handle("POST /register", a.anonymousOnly(http.HandlerFunc(ah.Register)))
	a.handle("GET /logout", auth.RequireAuth(http.HandlerFunc(ah.Logout)))
	a.handle("POST /logout", auth.RequireAuth(http.HandlerFunc(ah.Logout)))

	// Students
	a.handle("GET /student/dashboard", a.studentOnly(http.HandlerFunc(dh.Student)))
	a.handle("GET /complaint/submit", a.studentOnly(http.HandlerFunc(ch.Submit)))
	a.handle("POST /complaint/submit", a.studentOnly(http.HandlerFunc(ch.Submit)))

	// Owners and admins; ownership is checked by the handler
	a.handle("GET /complaint/{id}", auth.RequireAuth(http.HandlerFunc(ch.View)))
	a.handle("GET /complaint/{id}/receipt.pdf", auth.RequireAuth(http.HandlerFunc(ch.Receipt)))

	// Admins
	a.handle("GET /admin/dashboard", a.adminOnly(http.HandlerFunc(dh.Admin)))
	a.handle("POST /admin/update_status/{id}", a.adminOnly(http.HandlerFunc(ch.UpdateStatus)))

	// Operations
	a.mux.HandleFunc("GET /healthz", a.healthz)
	a.mux.Handle("GET /metrics", a.routerCfg.Metrics.Handler())
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

// studentOnly requires a logged-in non-admin; admins go to their dashboard.
func (a *App) studentOnly(next http.Handler) http.Handler {
	return auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.FromContext(r.Context()).IsAdmin {
			a.redirectRole(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// adminOnly requires a logged-in admin; students go back to their dashboard.
func (a *App) adminOnly(next http.Handler) http.Handler {
	return auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsAdmin {
			a.redirectRole(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *App) redirectRole(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusForbidden, "permission_denied", nil)
		return
	}
	http.Redirect(w, r, handlers.DashboardPath(auth.FromContext(r.Context())), http.StatusSeeOther)
}

// anonymousOnly sends logged-in users to their landing page.
func (a *App) anonymousOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.FromContext(r.Context()).IsAuthenticated() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if err := db.Ping(a.db); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
