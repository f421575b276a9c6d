// Package metrics exposes Prometheus instrumentation for query evaluation and the HTTP API.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/michal-shasha/bayesnet/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Query Metrics
	QueriesTotal     *prometheus.CounterVec
	QueryDuration    *prometheus.HistogramVec
	FactorOperations *prometheus.HistogramVec
	CacheHitsTotal   prometheus.Counter

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
// Go runtime and process collectors are registered alongside.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
	}
	r.initQueryMetrics()
	r.initHTTPMetrics()
	return r
}

func (r *Registry) initQueryMetrics() {
	r.QueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bayesnet_queries_total",
			Help: "Total number of queries answered",
		},
		[]string{"kind", "status"},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bayesnet_query_duration_seconds",
			Help:    "Query evaluation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"kind"},
	)

	r.FactorOperations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bayesnet_factor_operations",
			Help:    "Arithmetic operations spent per probability query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"op"},
	)

	r.CacheHitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "bayesnet_cache_hits_total",
			Help: "Total number of answers served from the result cache",
		},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bayesnet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bayesnet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordQuery records one finished query.
func (r *Registry) RecordQuery(e *domain.QueryEvent) {
	status := "ok"
	if e.Err != nil {
		status = "error"
	}
	r.QueriesTotal.WithLabelValues(e.Kind, status).Inc()
	r.QueryDuration.WithLabelValues(e.Kind).Observe(e.Duration.Seconds())

	if e.Cached {
		r.CacheHitsTotal.Inc()
		return
	}
	if e.Result != nil {
		r.FactorOperations.WithLabelValues("add").Observe(float64(e.Result.Additions))
		r.FactorOperations.WithLabelValues("mul").Observe(float64(e.Result.Multiplications))
	}
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Hooks returns lifecycle hooks that feed the registry.
// If next is given, its callback runs after the metric is recorded.
func (r *Registry) Hooks(next ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			r.RecordQuery(e)
			for _, h := range next {
				if h.OnQuery != nil {
					h.OnQuery(ctx, e)
				}
			}
		},
	}
}
