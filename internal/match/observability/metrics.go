// Package observability holds the Prometheus metrics of the matching service.
//
// Every Metrics value owns its own registry, so tests and multiple servers in
// one process never collide on registration. The registry is exposed at
// /metrics through Handler.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "mutual"

// Outcome label values.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultTaken   = "taken"
	ResultDenied  = "denied"
	ResultError   = "error"
)

type Metrics struct {
	Registry *prometheus.Registry

	// RegistrationsTotal counts register attempts.
	// Labels: result (success, invalid, taken, error)
	RegistrationsTotal *prometheus.CounterVec

	// LoginsTotal counts login attempts.
	// Labels: result (success, invalid, denied, error)
	LoginsTotal *prometheus.CounterVec

	// InterestsTotal counts recorded crushes.
	InterestsTotal prometheus.Counter

	// MatchesFormedTotal counts crushes that completed a mutual pair when
	// they were recorded.
	MatchesFormedTotal prometheus.Counter

	// MatchQueriesTotal counts match resolutions.
	// Labels: result (success, error)
	MatchQueriesTotal *prometheus.CounterVec

	// HTTPRequestsTotal and HTTPRequestDuration are fed by Instrument.
	// Labels: route, code, method
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the metrics on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RegistrationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "users",
				Name:      "registrations_total",
				Help:      "Registration attempts by result",
			},
			[]string{"result"},
		),
		LoginsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "users",
				Name:      "logins_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"},
		),
		InterestsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "interests",
				Name:      "recorded_total",
				Help:      "Crushes recorded",
			},
		),
		MatchesFormedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "interests",
				Name:      "matches_formed_total",
				Help:      "Crushes that were already reciprocated when recorded",
			},
		),
		MatchQueriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "matches",
				Name:      "queries_total",
				Help:      "Match resolutions by result",
			},
			[]string{"result"},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, status code and method",
			},
			[]string{"route", "code", "method"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route, status code and method",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "code", "method"},
		),
	}
}

// Instrument wraps h so its requests are counted and timed under route.
// route should be the mux pattern, never the raw path, to keep label
// cardinality bounded.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerCounter(
		m.HTTPRequestsTotal.MustCurryWith(labels),
		promhttp.InstrumentHandlerDuration(
			m.HTTPRequestDuration.MustCurryWith(labels),
			h,
		),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		Registry: m.Registry,
	})
}
