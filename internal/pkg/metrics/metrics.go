package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "zurbo"

// Rate limit decision results
const (
	ResultAllowed  = "allowed"
	ResultRejected = "rejected"
	ResultFailOpen = "fail_open"
)

// Escrow release outcomes
const (
	ReleaseSucceeded  = "succeeded"
	ReleaseFailed     = "failed"
	ReleaseNoEscrow   = "no_escrow"
	ReleaseInProgress = "in_progress"
)

// Metrics methods are nil-safe so callers never guard on configuration.
type Metrics struct {
	registry           *prometheus.Registry
	rateLimitDecisions *prometheus.CounterVec
	activeReleases     *prometheus.CounterVec
	escrowReleases     *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		rateLimitDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "decisions_total",
			Help:      "Service request limit decisions by result and reason.",
		}, []string{"result", "reason"}),
		activeReleases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ratelimit",
			Name:      "active_releases_total",
			Help:      "Active request slot releases by outcome.",
		}, []string{"outcome"}),
		escrowReleases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "escrow",
			Name:      "releases_total",
			Help:      "Escrow payment release attempts by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rateLimitDecisions,
		m.activeReleases,
		m.escrowReleases,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRateLimit(result, reason string) {
	if m == nil {
		return
	}
	m.rateLimitDecisions.WithLabelValues(result, reason).Inc()
}

func (m *Metrics) ObserveActiveRelease(outcome string) {
	if m == nil {
		return
	}
	m.activeReleases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveEscrowRelease(outcome string) {
	if m == nil {
		return
	}
	m.escrowReleases.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
