// Package metrics holds the Prometheus collectors for exports and translations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "owlgraph"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups every collector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	ExportRuns          *prometheus.CounterVec
	ExportMutations     *prometheus.CounterVec
	Translations        *prometheus.CounterVec
	TranslationDuration prometheus.Histogram
	Queries             *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		ExportRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "runs_total",
				Help:      "Total number of ontology export runs",
			},
			[]string{"outcome"},
		),

		ExportMutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "mutations_total",
				Help:      "Total number of merge statements applied per export stage",
			},
			[]string{"stage", "outcome"},
		),

		Translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "translate",
				Name:      "requests_total",
				Help:      "Total number of natural-language translations by final stage reached",
			},
			[]string{"outcome", "stage"},
		),

		TranslationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "translate",
				Name:      "duration_seconds",
				Help:      "Translation latency in seconds, including the model call",
				Buckets:   prometheus.DefBuckets,
			},
		),

		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "requests_total",
				Help:      "Total number of query operations by mode",
			},
			[]string{"mode", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.ExportRuns,
		m.ExportMutations,
		m.Translations,
		m.TranslationDuration,
		m.Queries,
	)
	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nil-safe recorders, so components can run without metrics.

func (m *Metrics) RecordExport(err error) {
	if m == nil {
		return
	}
	m.ExportRuns.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) RecordMutation(stage string, err error) {
	if m == nil {
		return
	}
	m.ExportMutations.WithLabelValues(stage, outcome(err)).Inc()
}

func (m *Metrics) RecordTranslation(stage string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Translations.WithLabelValues(outcome(err), stage).Inc()
	m.TranslationDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordQuery(mode string, err error) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(mode, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
