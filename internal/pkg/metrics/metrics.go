// Package metrics exposes enrichment counters and latencies to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/place-discovery/internal/domain"
)

const namespace = "place_discovery"

// EnrichmentMetrics реализует usecase.EnrichmentObserver
type EnrichmentMetrics struct {
	lookups       *prometheus.CounterVec
	lookupLatency *prometheus.HistogramVec
	runs          prometheus.Counter
	runPages      prometheus.Histogram
	runLatency    prometheus.Histogram
}

// NewEnrichmentMetrics регистрирует метрики в reg
func NewEnrichmentMetrics(reg prometheus.Registerer) *EnrichmentMetrics {
	m := &EnrichmentMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrichment",
			Name:      "lookups_total",
			Help:      "Content page lookups by outcome.",
		}, []string{"status"}),
		lookupLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "enrichment",
			Name:      "lookup_duration_seconds",
			Help:      "Content page lookup latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrichment",
			Name:      "runs_total",
			Help:      "Nearby enrichment runs.",
		}),
		runPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "enrichment",
			Name:      "run_pages",
			Help:      "Pages returned per enrichment run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		runLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "enrichment",
			Name:      "run_duration_seconds",
			Help:      "Nearby enrichment run latency.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.lookups, m.lookupLatency, m.runs, m.runPages, m.runLatency)
	return m
}

func (m *EnrichmentMetrics) ObserveLookup(_ string, outcome domain.LookupOutcome) {
	status := string(outcome.Status)
	m.lookups.WithLabelValues(status).Inc()
	m.lookupLatency.WithLabelValues(status).Observe(outcome.Elapsed.Seconds())
}

func (m *EnrichmentMetrics) ObserveRun(result *domain.EnrichmentResult, elapsed time.Duration) {
	m.runs.Inc()
	m.runPages.Observe(float64(len(result.Pages)))
	m.runLatency.Observe(elapsed.Seconds())
}
