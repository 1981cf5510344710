package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/i18n"
)

// DataHook adds request-scoped values to the template data before rendering.
// The returned commit, if any, runs only once the page has rendered, just before
// the header is written; it may set headers (e.g. cookies) but not the body.
type DataHook func(r *http.Request, data map[string]any) (commit func(w http.ResponseWriter))

// Renderer executes page templates wrapped in layout.html with the shared partials.
type Renderer struct {
	fsys  fs.FS
	dev   bool
	hooks []DataHook

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// New returns a Renderer reading templates from fsys. In dev mode templates are
// re-parsed on every request.
func New(fsys fs.FS, dev bool) *Renderer {
	return &Renderer{fsys: fsys, dev: dev, cache: map[string]*template.Template{}}
}

// Use registers a data hook.
func (v *Renderer) Use(h DataHook) {
	v.hooks = append(v.hooks, h)
}

// Funcs returns the standard func map including i18n and simple helpers.
func Funcs(r *http.Request) template.FuncMap {
	lang := i18n.Default
	var p auth.Principal
	if r != nil {
		lang = i18n.LangFrom(r.Context())
		p = auth.FromContext(r.Context())
	}
	return template.FuncMap{
		"t":       func(code string) string { return i18n.T(lang, code) },
		"lang":    func() string { return lang },
		"isAdmin": func() bool { return p.IsAdmin },
		"year":    func() int { return time.Now().Year() },
		// statusLabel translates a complaint status value
		"statusLabel": func(s fmt.Stringer) string { return i18n.T(lang, "status_"+s.String()) },
		"fmtTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2006-01-02 15:04")
		},
		"truncate": func(n int, s string) string {
			rs := []rune(s)
			if len(rs) <= n {
				return s
			}
			return string(rs[:n]) + "…"
		},
		// dict creates a map from key-value pairs for passing to sub-templates.
		// Usage: {{ template "partial" (dict "Key1" val1 "Key2" val2) }}
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// load parses layout, partials and the page. The result is never executed
// directly, only cloned, so it can be cached and shared between requests.
func (v *Renderer) load(name string) (*template.Template, error) {
	if !v.dev {
		v.mu.RLock()
		t, ok := v.cache[name]
		v.mu.RUnlock()
		if ok {
			return t, nil
		}
	}
	files := []string{"layout.html"}
	partials, err := fs.Glob(v.fsys, "partials/*.html")
	if err != nil {
		return nil, err
	}
	files = append(files, partials...)
	files = append(files, name)
	t, err := template.New(path.Base(name)).Funcs(Funcs(nil)).ParseFS(v.fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if !v.dev {
		v.mu.Lock()
		v.cache[name] = t
		v.mu.Unlock()
	}
	return t, nil
}

// Render writes the page with status 200.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return v.RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus executes name into a buffer and only then writes status and body,
// so a template error never produces a half-written page.
func (v *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	base, err := v.load(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(Funcs(r))

	if data == nil {
		data = map[string]any{}
	}
	p := auth.FromContext(r.Context())
	setDefault(data, "Principal", p)
	setDefault(data, "IsLoggedIn", p.IsAuthenticated())
	setDefault(data, "Year", time.Now().Year())
	setDefault(data, "Lang", i18n.LangFrom(r.Context()))
	setDefault(data, "Path", r.URL.Path)
	var commits []func(http.ResponseWriter)
	for _, h := range v.hooks {
		if c := h(r, data); c != nil {
			commits = append(commits, c)
		}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	for _, c := range commits {
		c(w)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

func setDefault(data map[string]any, key string, value any) {
	if _, exists := data[key]; !exists {
		data[key] = value
	}
}

// Pages lists the page templates available in fsys, for startup checks.
func Pages(fsys fs.FS) ([]string, error) {
	all, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, n := range all {
		if !strings.EqualFold(n, "layout.html") {
			out = append(out, n)
		}
	}
	return out, nil
}

// Precompile parses every page so template errors surface at startup.
func (v *Renderer) Precompile() error {
	pages, err := Pages(v.fsys)
	if err != nil {
		return err
	}
	for _, p := range pages {
		if _, err := v.load(p); err != nil {
			return err
		}
	}
	return nil
}
