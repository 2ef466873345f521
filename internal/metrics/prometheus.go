// Package metrics exposes Prometheus counters for the ingestion pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"LottoSync/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector; a nil *Manager is a valid no-op.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	fetchFailures   *prometheus.CounterVec
	drawsFetched    *prometheus.CounterVec
	drawsInserted   *prometheus.CounterVec
	resultsInserted *prometheus.CounterVec
	ingestRuns      *prometheus.CounterVec
	ingestDuration  *prometheus.HistogramVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

type Option func(*Manager)

// WithRegistry registers collectors on the given registry instead of a fresh one
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: "lottosync"}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "source",
		Name:      "fetch_failures_total",
		Help:      "Source fetches that failed and resolved to an empty batch",
	}, []string{"source", "lotto_type"})

	m.drawsFetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "draws_fetched_total",
		Help:      "Normalized draws handed to the persistence step",
	}, []string{"lotto_type"})

	m.drawsInserted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "draws_inserted_total",
		Help:      "Draw rows newly inserted",
	}, []string{"lotto_type"})

	m.resultsInserted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "results_inserted_total",
		Help:      "Result rows newly inserted",
	}, []string{"lotto_type"})

	m.ingestRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "runs_total",
		Help:      "Orchestrator runs by outcome (ok/empty/failed)",
	}, []string{"lotto_type", "status"})

	m.ingestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ingest",
		Name:      "run_duration_seconds",
		Help:      "Wall time of one orchestrator run",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"lotto_type"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served",
	}, []string{"method", "path", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})
}

// FetchFailed counts one failed source fetch
func (m *Manager) FetchFailed(source string, t model.LottoType) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(source, string(t)).Inc()
}

// RecordRun counts the outcome of one orchestrator run
func (m *Manager) RecordRun(t model.LottoType, status string, fetched, draws, results int, took time.Duration) {
	if m == nil {
		return
	}
	label := string(t)
	m.ingestRuns.WithLabelValues(label, status).Inc()
	m.drawsFetched.WithLabelValues(label).Add(float64(fetched))
	m.drawsInserted.WithLabelValues(label).Add(float64(draws))
	m.resultsInserted.WithLabelValues(label).Add(float64(results))
	m.ingestDuration.WithLabelValues(label).Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry underlying registry (tests)
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// GinMiddleware records request count and latency by route template
func (m *Manager) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
