package i18n

import (
	"context"

	"golang.org/x/text/language"
)

// Default is used when nothing better can be negotiated.
const Default = "en"

var supported = []language.Tag{language.English, language.French}

var matcher = language.NewMatcher(supported)

type ctxKey struct{}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// DetectLanguage picks the best supported language for an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// LangFrom returns the language stored in ctx, or Default.
func LangFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v
	}
	return Default
}

// T translates code. Unknown languages fall back to Default; unknown codes are returned as-is.
func T(lang, code string) string {
	if m, ok := catalog[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalog[Default][code]; ok {
		return s
	}
	return code
}
