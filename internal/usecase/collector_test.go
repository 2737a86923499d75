package usecase

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"MacroBoard/internal/domain/models"
	"MacroBoard/pkg/cache"
	xlogger "MacroBoard/pkg/logger"
)

type fakeSource struct {
	calls int32
	fetch func(id string) ([]models.Observation, error)
}

func (f *fakeSource) Fetch(_ context.Context, id string) ([]models.Observation, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.fetch(id)
}

type noopMetrics struct{}

func (noopMetrics) RecordFetchAttempt(string, string)  {}
func (noopMetrics) RecordError(string)                 {}
func (noopMetrics) RecordSeriesLatest(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)      {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func obs(id string, d time.Time, v float64) models.Observation {
	return models.Observation{Date: d, Name: id, Value: v}
}

func TestCollectPartialFailure(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{fetch: func(id string) ([]models.Observation, error) {
		if id == models.SeriesPMI {
			return nil, errors.New("upstream 500")
		}
		return []models.Observation{obs(id, day, 4.2)}, nil
	}}

	c := NewSeriesCollector(src, nil,
		[]string{models.SeriesY10, models.SeriesY2, models.SeriesPMI},
		false, nil, 0, 2, testLogger(t), noopMetrics{})

	table, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not be fatal: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(table.Rows))
	}
	if len(table.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(table.Warnings), table.Warnings)
	}
	if want := models.SeriesPMI + ": upstream 500"; table.Warnings[0] != want {
		t.Errorf("warning = %q, want %q", table.Warnings[0], want)
	}
}

func TestCollectAllFailed(t *testing.T) {
	src := &fakeSource{fetch: func(string) ([]models.Observation, error) {
		return nil, errors.New("network down")
	}}

	c := NewSeriesCollector(src, nil,
		[]string{models.SeriesY10, models.SeriesY2},
		false, nil, 0, 2, testLogger(t), noopMetrics{})

	_, err := c.Collect(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestCollectDropsMissingValues(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{fetch: func(id string) ([]models.Observation, error) {
		return []models.Observation{
			obs(id, day.AddDate(0, 0, -1), 4.1),
			obs(id, day, math.NaN()), // "." marker upstream
		}, nil
	}}

	c := NewSeriesCollector(src, nil, []string{models.SeriesY10},
		false, nil, 0, 1, testLogger(t), noopMetrics{})

	table, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want NaN row dropped", len(table.Rows))
	}
	if table.Rows[0].Value != 4.1 {
		t.Errorf("kept value = %v, want 4.1", table.Rows[0].Value)
	}
}

func TestCollectIncludesTermPremium(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	fredSrc := &fakeSource{fetch: func(id string) ([]models.Observation, error) {
		return []models.Observation{obs(id, day, 4.2)}, nil
	}}
	nyfedSrc := &fakeSource{fetch: func(id string) ([]models.Observation, error) {
		return []models.Observation{obs(id, day, 0.65)}, nil
	}}

	c := NewSeriesCollector(fredSrc, nyfedSrc, []string{models.SeriesY10},
		true, nil, 0, 4, testLogger(t), noopMetrics{})

	table, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&nyfedSrc.calls) != 1 {
		t.Errorf("term premium source called %d times, want 1", nyfedSrc.calls)
	}
	found := false
	for _, o := range table.Rows {
		if o.Name == models.SeriesTP10 {
			found = true
		}
	}
	if !found {
		t.Error("TP10 rows missing from merged table")
	}
}

func TestCollectUsesCacheOnSecondPass(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{fetch: func(id string) ([]models.Observation, error) {
		return []models.Observation{obs(id, day, 4.2)}, nil
	}}
	mem := cache.NewMemoryCache()
	defer mem.Close()

	c := NewSeriesCollector(src, nil, []string{models.SeriesY10},
		false, mem, time.Minute, 1, testLogger(t), noopMetrics{})

	ctx := context.Background()
	if _, err := c.Collect(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Collect(ctx); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&src.calls); got != 1 {
		t.Errorf("source called %d times across two passes, want 1 (second served from cache)", got)
	}

	// A forced refresh drops the cache and hits the source again.
	if err := c.Invalidate(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Collect(ctx); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&src.calls); got != 2 {
		t.Errorf("source called %d times after invalidate, want 2", got)
	}
}

func TestCollectBoundedConcurrency(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	var inFlight, peak int32
	src := &fakeSource{fetch: func(id string) ([]models.Observation, error) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return []models.Observation{obs(id, day, 1)}, nil
	}}

	series := []string{"A", "B", "C", "D", "E", "F"}
	c := NewSeriesCollector(src, nil, series, false, nil, 0, 2, testLogger(t), noopMetrics{})

	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", p)
	}
}
