// Package metrics records submission, validation and render failure counts
// in a dedicated Prometheus registry.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "authform"

// Submission outcomes.
const (
	OutcomeSubmitted = "submitted"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// Metrics owns the collectors. The zero value is not usable; call New.
type Metrics struct {
	registry         *prometheus.Registry
	submissions      *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	renderFailures   *prometheus.CounterVec
	requests         *prometheus.CounterVec
}

// New registers every collector on a fresh registry, plus the Go and process
// collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Form submissions by outcome.",
		}, []string{"form", "outcome"}),
		validationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Fields rejected by validation.",
		}, []string{"form", "field"}),
		renderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Error boundary trips by route.",
		}, []string{"route"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
	}
	m.registry.MustRegister(
		m.submissions,
		m.validationErrors,
		m.renderFailures,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Submission counts one submission of form with outcome.
func (m *Metrics) Submission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
}

// ValidationErrors counts every field carried by errs.
func (m *Metrics) ValidationErrors(form string, errs map[string]string) {
	if m == nil {
		return
	}
	for field := range errs {
		m.validationErrors.WithLabelValues(form, field).Inc()
	}
}

// RenderFailure counts a tripped boundary on route.
func (m *Metrics) RenderFailure(route string) {
	if m == nil {
		return
	}
	m.renderFailures.WithLabelValues(route).Inc()
}

// Request counts one served request.
func (m *Metrics) Request(route, method string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
