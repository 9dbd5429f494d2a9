package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// =============================================================================
// Metrics Registry
// =============================================================================

// Metrics holds the prometheus collectors for the HTTP server and the
// pipeline stages running behind it. Each Server owns its own registry,
// so tests can spin up servers without collector name collisions.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Pipeline metrics, fed through the observability hooks
	PipelineRunsTotal     *prometheus.CounterVec
	PipelineStageDuration *prometheus.HistogramVec

	// Cache metrics
	CacheOpsTotal *prometheus.CounterVec
}

// NewMetrics creates a metrics registry with all collectors registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coachtree_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coachtree_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "coachtree_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		PipelineRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coachtree_pipeline_runs_total",
				Help: "Pipeline stage executions by stage and result",
			},
			[]string{"stage", "result"},
		),
		PipelineStageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coachtree_pipeline_stage_duration_seconds",
				Help:    "Pipeline stage latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),

		CacheOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coachtree_cache_ops_total",
				Help: "Cache operations by key type and outcome",
			},
			[]string{"key_type", "outcome"},
		),
	}
}

// Registry returns the underlying prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordStage records one pipeline stage execution.
func (m *Metrics) RecordStage(stage string, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.PipelineRunsTotal.WithLabelValues(stage, result).Inc()
	m.PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
