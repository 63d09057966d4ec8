// Package metrics exports stepviz activity to Prometheus by implementing
// the observability hooks.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/stepviz/pkg/observability"
)

// Metrics holds the collectors. It implements observability.RunHooks,
// CacheHooks and HTTPHooks.
type Metrics struct {
	registry *prometheus.Registry

	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	runEvents   *prometheus.HistogramVec
	cacheOps    *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec
	requests    *prometheus.CounterVec
	reqDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepviz",
			Name:      "runs_total",
			Help:      "Recorded runs by algorithm and outcome.",
		}, []string{"algorithm", "outcome"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stepviz",
			Name:      "run_duration_seconds",
			Help:      "Time spent collecting a run's events.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"algorithm"}),
		runEvents: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stepviz",
			Name:      "run_events",
			Help:      "Events per recorded run.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		}, []string{"algorithm"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepviz",
			Name:      "cache_operations_total",
			Help:      "Cache lookups and writes by entry kind.",
		}, []string{"kind", "op"}),
		cacheBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepviz",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"kind"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stepviz",
			Name:      "http_requests_total",
			Help:      "API requests by route and status.",
		}, []string{"method", "route", "status"}),
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stepviz",
			Name:      "http_request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.runs, m.runDuration, m.runEvents,
		m.cacheOps, m.cacheBytes,
		m.requests, m.reqDuration,
	)
	return m
}

// Install registers m as the process-wide hooks.
func (m *Metrics) Install() {
	observability.SetRunHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the registry holding m's collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnRunStart(context.Context, string) {}

func (m *Metrics) OnRunComplete(_ context.Context, algorithm string, events int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.runs.WithLabelValues(algorithm, outcome).Inc()
	m.runDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	m.runEvents.WithLabelValues(algorithm).Observe(float64(events))
}

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.cacheOps.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.cacheOps.WithLabelValues(kind, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.cacheOps.WithLabelValues(kind, "set").Inc()
	m.cacheBytes.WithLabelValues(kind).Add(float64(size))
}

func (m *Metrics) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.RunHooks   = (*Metrics)(nil)
	_ observability.CacheHooks = (*Metrics)(nil)
	_ observability.HTTPHooks  = (*Metrics)(nil)
)
