package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	flashSession = "flash"
	flashKey     = "notices"
)

// Flash kinds, used as CSS modifiers.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashInfo    = "info"
)

// Notice is a one-shot message shown on the next rendered page.
// Code is an i18n key.
type Notice struct {
	Kind string
	Code string
}

// Flashes stores notices in a signed cookie between a redirect and the next page.
type Flashes struct {
	store *sessions.CookieStore
}

// NewFlashes signs flash cookies with key.
func NewFlashes(key []byte, secure bool) *Flashes {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flashes{store: store}
}

// Add queues a notice. It must be called before the response header is written.
func (f *Flashes) Add(w http.ResponseWriter, r *http.Request, kind, code string) {
	s, _ := f.store.Get(r, flashSession) // a tampered cookie yields a fresh session
	s.AddFlash(kind+":"+code, flashKey)
	if err := s.Save(r, w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("save flash")
	}
}

// Peek returns the pending notices without consuming them, so a page that
// fails to render can still show them after the next redirect.
func (f *Flashes) Peek(r *http.Request) []Notice {
	s, err := f.store.Get(r, flashSession)
	if err != nil {
		return nil
	}
	raw, _ := s.Values[flashKey].([]any)
	out := make([]Notice, 0, len(raw))
	for _, v := range raw {
		str, ok := v.(string)
		if !ok {
			continue
		}
		kind, code, found := strings.Cut(str, ":")
		if !found {
			kind, code = FlashInfo, str
		}
		out = append(out, Notice{Kind: kind, Code: code})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Clear expires the flash cookie if the request carried one, including a
// cookie that no longer decodes under the current key.
func (f *Flashes) Clear(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(flashSession); err != nil {
		return
	}
	s, _ := f.store.Get(r, flashSession)
	opts := *f.store.Options
	opts.MaxAge = -1
	s.Options = &opts
	if err := s.Save(r, w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("clear flash")
	}
}
