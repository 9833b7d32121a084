// Package metrics exposes Prometheus instrumentation for the scout services.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/naijascout/scout-services/shared/apperr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so only the collectors registered here are exported.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	playerWrites *prometheus.CounterVec
}

// New registers the service collectors under namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		playerWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "players",
			Name:      "writes_total",
			Help:      "Player write operations by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.playerWrites,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveHTTPRequest records one finished request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordPlayerWrite counts a create/update/delete by how it ended.
func (m *Metrics) RecordPlayerWrite(op string, err error) {
	if m == nil {
		return
	}
	m.playerWrites.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome classifies an error into a low-cardinality label value.
func Outcome(err error) string {
	var (
		validationErr *apperr.ValidationError
		notFoundErr   *apperr.NotFoundError
		conflictErr   *apperr.ConflictError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &conflictErr):
		return "conflict"
	default:
		return "error"
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// PlayerWrites returns the write counter for one op/outcome pair.
func (m *Metrics) PlayerWrites(op, outcome string) prometheus.Counter {
	return m.playerWrites.WithLabelValues(op, outcome)
}

// HTTPRequests returns the request counter for one method/route/status triple.
func (m *Metrics) HTTPRequests(method, route string, status int) prometheus.Counter {
	return m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status))
}
