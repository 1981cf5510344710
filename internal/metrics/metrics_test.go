package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument(t *testing.T) {
	m := New()
	h := m.Instrument("GET /complaint/{id}", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/complaint/7", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/complaint/8", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET /complaint/{id}", "GET", "404")))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.ComplaintSubmitted()
	m.ComplaintSubmitted()
	m.StatusUpdated("resolved")
	m.UserRegistered()
	m.LoginFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusUpdated.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginFailures))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ComplaintSubmitted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "complaints_submitted_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}
