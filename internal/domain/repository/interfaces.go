package repository

import (
	"context"

	"MacroBoard/internal/domain/models"
)

// SeriesSource fetches every observation of one series from an external
// provider. Implementations own retry and fallback; callers own caching.
type SeriesSource interface {
	Fetch(ctx context.Context, id string) ([]models.Observation, error)
}

// Metrics abstracts operational metrics recording.
type Metrics interface {
	RecordFetchAttempt(series, source string)
	RecordError(kind string)
	RecordSeriesLatest(series string, value float64)
	RecordLatency(op string, seconds float64)
}
