package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/diewo77/go-complaints/httpx"
	"github.com/rs/zerolog"
)

const defaultCookieName = "session"

// Config controls session token issuing.
type Config struct {
	Secret      []byte
	TTL         time.Duration // lifetime of a browser-session login
	RememberTTL time.Duration // lifetime when "remember me" is ticked
	Issuer      string
	CookieName  string
	Secure      bool
}

// ErrUnknownUser is returned by a Loader when the token's user no longer exists.
var ErrUnknownUser = errors.New("session user no longer exists")

// Loader resolves a user id from a valid token into a Principal.
// It must return an error wrapping ErrUnknownUser when the user no longer exists;
// any other error is treated as a transient backend failure.
type Loader func(ctx context.Context, userID uint) (Principal, error)

// Manager issues, verifies and revokes session cookies.
type Manager struct {
	cfg     Config
	load    Loader
	revoker Revoker
	now     func() time.Time
}

// NewManager builds a Manager. A nil revoker falls back to an in-memory one.
func NewManager(cfg Config, load Loader, revoker Revoker) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = 30 * 24 * time.Hour
	}
	if revoker == nil {
		revoker = NewMemoryRevoker()
	}
	return &Manager{cfg: cfg, load: load, revoker: revoker, now: time.Now}
}

// Login establishes a session for p. With remember set the cookie outlives the browser session.
func (m *Manager) Login(w http.ResponseWriter, p Principal, remember bool) error {
	if !p.IsAuthenticated() {
		return errors.New("auth: cannot log in anonymous principal")
	}
	ttl := m.cfg.TTL
	if remember {
		ttl = m.cfg.RememberTTL
	}
	token, claims, err := m.issue(p.ID, ttl)
	if err != nil {
		return err
	}
	c := m.cookie(token)
	if remember {
		c.Expires = claims.ExpiresAt.Time
	}
	http.SetCookie(w, c)
	return nil
}

// Logout revokes the current token and deletes the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(m.cfg.CookieName); err == nil && c.Value != "" {
		if claims, err := m.parse(c.Value); err == nil {
			if err := m.revoker.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Str("jti", claims.ID).Msg("session revoke failed")
			}
		}
	}
	m.ClearSession(w)
}

// ClearSession deletes the session cookie.
func (m *Manager) ClearSession(w http.ResponseWriter) {
	c := m.cookie("")
	c.Expires = time.Unix(0, 0)
	c.MaxAge = -1
	http.SetCookie(w, c)
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Authenticate resolves the principal behind the request cookie.
// Any failure yields Anonymous together with the reason.
func (m *Manager) Authenticate(r *http.Request) (Principal, error) {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil || c.Value == "" {
		return Anonymous, http.ErrNoCookie
	}
	claims, err := m.parse(c.Value)
	if err != nil {
		return Anonymous, err
	}
	revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		return Anonymous, fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return Anonymous, ErrInvalidToken
	}
	uid, err := claims.UserID()
	if err != nil {
		return Anonymous, err
	}
	p, err := m.load(r.Context(), uid)
	if err != nil {
		return Anonymous, err
	}
	return p, nil
}

// Middleware attaches the principal to the request context. Cookies whose token
// is invalid or whose user is gone are cleared. When the revocation store or the
// user lookup fails the request proceeds anonymously and the cookie is kept.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := m.Authenticate(r)
		switch {
		case err == nil, errors.Is(err, http.ErrNoCookie):
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnknownUser):
			zerolog.Ctx(r.Context()).Debug().Err(err).Msg("discarding session cookie")
			m.ClearSession(w)
		default:
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("session check unavailable")
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAuth redirects to /login if not authenticated (HTML) or returns 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).IsAuthenticated() {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
