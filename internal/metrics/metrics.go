// Package metrics exposes Prometheus collectors for HTTP traffic and complaint activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-complaints/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	submitted     prometheus.Counter
	statusUpdated *prometheus.CounterVec
	registrations prometheus.Counter
	loginFailures prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complaints",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "complaints",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "complaints",
			Name:      "submitted_total",
			Help:      "Complaints filed by students.",
		}),
		statusUpdated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complaints",
			Name:      "status_updates_total",
			Help:      "Status changes applied by administrators, by new status.",
		}, []string{"status"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "complaints",
			Name:      "registrations_total",
			Help:      "Student accounts created.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "complaints",
			Name:      "login_failures_total",
			Help:      "Rejected login attempts.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.submitted, m.statusUpdated, m.registrations, m.loginFailures,
	)
	return m
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records count and latency for h under the route label.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := httpx.NewStatusRecorder(w)
		h.ServeHTTP(rec, r)
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.Status)).Inc()
	})
}

func (m *Metrics) ComplaintSubmitted()         { m.submitted.Inc() }
func (m *Metrics) StatusUpdated(status string) { m.statusUpdated.WithLabelValues(status).Inc() }
func (m *Metrics) UserRegistered()             { m.registrations.Inc() }
func (m *Metrics) LoginFailed()                { m.loginFailures.Inc() }
