package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchAttempts *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	seriesLatest  *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macroboard_fetch_attempts_total",
				Help: "Total number of upstream fetch attempts",
			},
			[]string{"series", "source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macroboard_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		seriesLatest: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macroboard_series_latest",
				Help: "Latest resolved value for a series",
			},
			[]string{"series"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macroboard_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetchAttempt records one attempt against an upstream source.
func (r *Recorder) RecordFetchAttempt(series, source string) {
	r.fetchAttempts.WithLabelValues(series, source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordSeriesLatest records the latest resolved value for a series.
func (r *Recorder) RecordSeriesLatest(series string, value float64) {
	r.seriesLatest.WithLabelValues(series).Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
