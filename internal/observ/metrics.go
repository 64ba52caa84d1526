package observ

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bslint"

// Metrics holds the analysis counters. Each instance owns a private
// registry so tests and several engines in one process do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	RuleRuns     *prometheus.CounterVec
	RuleFailures *prometheus.CounterVec
	RuleDuration *prometheus.HistogramVec
	Diagnostics  *prometheus.CounterVec
	CacheHits    prometheus.Counter
}

// NewMetrics registers the analysis metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RuleRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_runs_total",
			Help:      "Rule executions by rule id",
		}, []string{"rule"}),
		RuleFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rule_failures_total",
			Help:      "Rule executions that panicked, by rule id",
		}, []string{"rule"}),
		RuleDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rule_duration_seconds",
			Help:      "Rule execution time in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"rule"}),
		Diagnostics: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Reported diagnostics by rule id",
		}, []string{"rule"}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Analyses answered from the result cache",
		}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
