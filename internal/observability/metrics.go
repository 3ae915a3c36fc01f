package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// beach safety service.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // labels: outcome={ok,not_found,malformed,upstream_error}
	VerdictsIssued     *prometheus.CounterVec // labels: verdict={GOOD,CAUTION,POOR,DANGEROUS}
	AssessmentDuration prometheus.Histogram

	// Upstream fetch metrics.
	UpstreamRequests *prometheus.CounterVec // labels: outcome={success,error}
	UpstreamDuration prometheus.Histogram
	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss,error}

	// Report publishing metrics.
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublishEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beach_safety",
			Name:      "assessments_total",
			Help:      "Safety assessments by outcome.",
		}, []string{"outcome"}),
		VerdictsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beach_safety",
			Name:      "verdicts_issued_total",
			Help:      "Safety verdicts issued by tier.",
		}, []string{"verdict"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beach_safety",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete resolve-fetch-classify cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beach_safety",
			Name:      "upstream_requests_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beach_safety",
			Name:      "upstream_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "beach_safety",
			Name:      "observation_cache_total",
			Help:      "Observation cache lookups by result.",
		}, []string{"result"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beach_safety",
			Name:      "reports_published_total",
			Help:      "Safety reports published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "beach_safety",
			Name:      "publish_errors_total",
			Help:      "Failed report publish attempts.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "beach_safety",
			Name:      "publish_enabled",
			Help:      "1 when Kafka report publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.VerdictsIssued,
		m.AssessmentDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.CacheLookups,
		m.ReportsPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "beach_safety", Name: "assessments_total"}, []string{"outcome"}),
		VerdictsIssued:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "beach_safety", Name: "verdicts_issued_total"}, []string{"verdict"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "beach_safety", Name: "assessment_duration_seconds"}),
		UpstreamRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "beach_safety", Name: "upstream_requests_total"}, []string{"outcome"}),
		UpstreamDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "beach_safety", Name: "upstream_duration_seconds"}),
		CacheLookups:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "beach_safety", Name: "observation_cache_total"}, []string{"result"}),
		ReportsPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "beach_safety", Name: "reports_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "beach_safety", Name: "publish_errors_total"}),
		PublishEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "beach_safety", Name: "publish_enabled"}),
	}
}
