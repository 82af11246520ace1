package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for evaluations
const (
	OutcomeDefined   = "defined"
	OutcomeUndefined = "undefined"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Evaluation metrics
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec

	// Sweep metrics
	SweepsTotal   *prometheus.CounterVec
	SweepSamples  *prometheus.HistogramVec
	SweepDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
}

// NewMetrics creates a metrics collector with a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funcsys_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funcsys_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		EvaluationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funcsys_evaluations_total",
				Help: "Total number of function evaluations by outcome",
			},
			[]string{"function", "outcome"},
		),
		EvaluationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funcsys_evaluation_duration_seconds",
				Help:    "Function evaluation duration in seconds",
				Buckets: []float64{.000001, .00001, .0001, .001, .01, .1},
			},
			[]string{"function"},
		),

		SweepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funcsys_sweeps_total",
				Help: "Total number of range sweeps",
			},
			[]string{"function", "status"},
		),
		SweepSamples: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funcsys_sweep_samples",
				Help:    "Number of samples per sweep",
				Buckets: prometheus.ExponentialBuckets(1, 10, 7),
			},
			[]string{"function"},
		),
		SweepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "funcsys_sweep_duration_seconds",
				Help:    "Sweep duration in seconds",
				Buckets: []float64{.001, .01, .1, .5, 1, 5, 30},
			},
			[]string{"function"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "funcsys_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "funcsys_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// Registry returns the registry backing this collector
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordEvaluation records one function evaluation
func (m *Metrics) RecordEvaluation(function string, defined bool, duration time.Duration) {
	outcome := OutcomeDefined
	if !defined {
		outcome = OutcomeUndefined
	}
	m.EvaluationsTotal.WithLabelValues(function, outcome).Inc()
	m.EvaluationDuration.WithLabelValues(function).Observe(duration.Seconds())
}

// RecordSweep records a completed or failed sweep
func (m *Metrics) RecordSweep(function, status string, samples int, duration time.Duration) {
	m.SweepsTotal.WithLabelValues(function, status).Inc()
	if status == "success" {
		m.SweepSamples.WithLabelValues(function).Observe(float64(samples))
	}
	m.SweepDuration.WithLabelValues(function).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
