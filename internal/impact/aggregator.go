// Package impact assembles impact reports from the blast model, a nearby
// feature source, and the feature classifier.
package impact

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/neo-impact-service/internal/domain"
	"github.com/couchcryptid/neo-impact-service/internal/observability"
)

// FeatureSource returns the OSM elements within radiusMeters of a point.
// Implementations absorb upstream failures and return an empty list.
type FeatureSource interface {
	Nearby(ctx context.Context, lat, lng float64, radiusMeters int) []domain.OSMElement
}

// Aggregator builds impact reports.
type Aggregator struct {
	features FeatureSource
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewAggregator creates an Aggregator backed by the given feature source.
func NewAggregator(features FeatureSource, metrics *observability.Metrics, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		features: features,
		metrics:  metrics,
		logger:   logger,
	}
}

// Report computes the impact report for (lat, lng) and a positive kinetic
// energy in joules. Inputs are assumed validated. It never fails: without
// features the report keeps its radii and has zero counts.
func (a *Aggregator) Report(ctx context.Context, lat, lng, energyJoules float64) domain.ImpactReport {
	report := domain.NewImpactReport(lat, lng, energyJoules)
	radius := int(domain.EffectiveSearchRadius(report.ShrapnelRadiusKm))

	elements := a.features.Nearby(ctx, lat, lng, radius)
	report = report.WithInfrastructure(domain.ClassifyAll(elements, lat, lng))

	a.metrics.ImpactReports.Inc()
	a.metrics.InfrastructureItems.Observe(float64(len(report.Infrastructure)))

	a.logger.Info("impact report generated",
		"lat", lat,
		"lng", lng,
		"energy_j", energyJoules,
		"radius_m", radius,
		"elements", len(elements),
		"hospitals", report.HospitalsAffected,
		"schools", report.SchoolsAffected,
		"industrial", report.IndustrialAffected,
		"farmland", report.FarmlandAffected,
	)
	return report
}
