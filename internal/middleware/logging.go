package middleware

import (
	"net/http"
	"time"

	"github.com/diewo77/go-complaints/httpx"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger carrying a request id and
// logs one line per request once it completes.
func RequestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			l := base.With().Str("request_id", reqID).Logger()
			rec := httpx.NewStatusRecorder(w)
			next.ServeHTTP(rec, r.WithContext(l.WithContext(r.Context())))

			ev := l.Info()
			if rec.Status >= http.StatusInternalServerError {
				ev = l.Error()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.Status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// RequestID returns the id assigned by RequestLogger.
func RequestID(w http.ResponseWriter) string {
	return w.Header().Get(requestIDHeader)
}
