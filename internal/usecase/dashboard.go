package usecase

import (
	"context"
	"math"
	"time"

	"MacroBoard/internal/domain/models"
	drepo "MacroBoard/internal/domain/repository"
	"MacroBoard/internal/services/macro"
	"MacroBoard/pkg/config"
)

// DashboardBuilder turns one acquisition pass into the full render model.
// Everything is recomputed per call; only the collector's fetch cache
// survives between renders.
type DashboardBuilder struct {
	collector *SeriesCollector
	th        config.Thresholds
	metrics   drepo.Metrics
}

// NewDashboardBuilder creates a builder over an immutable threshold set.
func NewDashboardBuilder(collector *SeriesCollector, th config.Thresholds, metrics drepo.Metrics) *DashboardBuilder {
	return &DashboardBuilder{collector: collector, th: th, metrics: metrics}
}

// Build runs fetch, merge, resolve, tile computation and classification.
// Only the all-sources-failed case is an error; partial failures surface
// as warnings on the dashboard.
func (b *DashboardBuilder) Build(ctx context.Context) (*models.Dashboard, error) {
	table, err := b.collector.Collect(ctx)
	if err != nil {
		return nil, err
	}

	ind := macro.Resolve(table)
	for name, iv := range ind {
		if !math.IsNaN(iv.Value) {
			b.metrics.RecordSeriesLatest(name, iv.Value)
		}
	}

	scalars := macro.Scalars(ind)
	return &models.Dashboard{
		Tiles:     macro.ComputeTiles(scalars, b.th),
		AsOf:      ind[models.SeriesY10].Date,
		Signals:   macro.ClassifyAll(scalars, b.th),
		Warnings:  table.Warnings,
		Generated: time.Now(),
	}, nil
}

// Invalidate drops cached fetch results ahead of a forced refresh.
func (b *DashboardBuilder) Invalidate(ctx context.Context) error {
	return b.collector.Invalidate(ctx)
}
