package advisor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
	"github.com/couchcryptid/beach-safety-advisor/internal/observability"
)

// ReportPublisher emits finished safety reports to a downstream sink.
type ReportPublisher interface {
	PublishReport(ctx context.Context, report domain.SafetyReport) error
}

// Advisor orchestrates the resolve-fetch-normalize-classify sequence and
// assembles the final safety report. Publishing is best effort: a sink
// failure is logged and counted but never fails the assessment.
type Advisor struct {
	locations *domain.LocationTable
	source    domain.ObservationSource
	publisher ReportPublisher
	timezone  *time.Location
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates an Advisor. publisher may be nil when no report sink is
// configured.
func New(locations *domain.LocationTable, source domain.ObservationSource, publisher ReportPublisher, timezone *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Advisor {
	return &Advisor{
		locations: locations,
		source:    source,
		publisher: publisher,
		timezone:  timezone,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one assessment has completed,
// or an error describing why the service is not yet ready.
func (a *Advisor) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("advisor has not completed an assessment yet")
	}
	return nil
}

// Beaches returns the entries the advisor can assess, ordered by key.
func (a *Advisor) Beaches() []domain.LocationEntry {
	return a.locations.Entries()
}

// Assess produces a safety report for the named beach. The name is matched
// case and whitespace insensitively against the location table.
func (a *Advisor) Assess(ctx context.Context, name string) (domain.SafetyReport, error) {
	start := time.Now()

	loc, err := a.locations.Resolve(name)
	if err != nil {
		a.metrics.AssessmentsTotal.WithLabelValues("not_found").Inc()
		return domain.SafetyReport{}, err
	}

	payload, err := a.source.CurrentConditions(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		a.metrics.AssessmentsTotal.WithLabelValues("upstream_error").Inc()
		a.logger.Error("observation fetch failed", "beach", loc.Key, "error", err)
		return domain.SafetyReport{}, err
	}

	localHour := domain.Now().In(a.timezone).Hour()
	obs, err := domain.NormalizeObservation(payload, localHour)
	if err != nil {
		a.metrics.AssessmentsTotal.WithLabelValues("malformed").Inc()
		a.logger.Error("observation payload rejected", "beach", loc.Key, "error", err)
		return domain.SafetyReport{}, err
	}

	assessment := domain.Classify(obs)
	report := domain.BuildReport(loc, obs, assessment)

	a.metrics.AssessmentsTotal.WithLabelValues("ok").Inc()
	a.metrics.VerdictsIssued.WithLabelValues(assessment.Verdict.String()).Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.ready.Store(true)

	a.logger.Info("assessment complete",
		"beach", loc.Key,
		"verdict", assessment.Verdict.String(),
		"recommendations", len(assessment.Recommendations),
	)

	a.publish(ctx, report)
	return report, nil
}

func (a *Advisor) publish(ctx context.Context, report domain.SafetyReport) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishReport(ctx, report); err != nil {
		a.metrics.PublishErrors.Inc()
		a.logger.Warn("report publish failed", "beach", report.BeachKey, "error", err)
		return
	}
	a.metrics.ReportsPublished.Inc()
}
