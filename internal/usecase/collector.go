package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"MacroBoard/internal/domain/models"
	drepo "MacroBoard/internal/domain/repository"
	"MacroBoard/pkg/cache"
	xlogger "MacroBoard/pkg/logger"
)

// ErrNoData is the fatal all-sources-failed condition; a partial failure
// only produces warnings.
var ErrNoData = errors.New("no series data available")

const cacheKeyPrefix = "series"

// SeriesCollector runs one acquisition pass: every configured series is
// fetched (bounded concurrency, join barrier) and the results merged into
// a single table. Individual failures become warnings; only the
// everything-failed case is an error.
type SeriesCollector struct {
	fred    drepo.SeriesSource
	nyfed   drepo.SeriesSource
	series  []string
	tp10    bool
	cache   cache.Service
	ttl     time.Duration
	maxConc int
	logger  *xlogger.Logger
	metrics drepo.Metrics
}

// NewSeriesCollector creates a collector. cacheSvc may be nil to disable
// fetch-result caching; nyfed may be nil when the term premium series is
// not configured.
func NewSeriesCollector(
	fred drepo.SeriesSource,
	nyfed drepo.SeriesSource,
	series []string,
	tp10 bool,
	cacheSvc cache.Service,
	ttl time.Duration,
	maxConc int,
	logger *xlogger.Logger,
	metrics drepo.Metrics,
) *SeriesCollector {
	if maxConc < 1 {
		maxConc = 1
	}
	return &SeriesCollector{
		fred:    fred,
		nyfed:   nyfed,
		series:  series,
		tp10:    tp10,
		cache:   cacheSvc,
		ttl:     ttl,
		maxConc: maxConc,
		logger:  logger,
		metrics: metrics,
	}
}

type fetchJob struct {
	id  string
	src drepo.SeriesSource
}

type fetchOutcome struct {
	id  string
	obs []models.Observation
	err error
}

// Collect fetches all configured series and merges the outcomes. The
// merge waits for every fetch to finish, success or failure, before
// assembling the table.
func (c *SeriesCollector) Collect(ctx context.Context) (*models.Table, error) {
	jobs := make([]fetchJob, 0, len(c.series)+1)
	for _, id := range c.series {
		jobs = append(jobs, fetchJob{id: id, src: c.fred})
	}
	if c.tp10 && c.nyfed != nil {
		jobs = append(jobs, fetchJob{id: models.SeriesTP10, src: c.nyfed})
	}

	start := time.Now()
	outcomes := make([]fetchOutcome, len(jobs))
	sem := make(chan struct{}, c.maxConc)
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job fetchJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			obs, err := c.fetchCached(ctx, job)
			outcomes[i] = fetchOutcome{id: job.id, obs: obs, err: err}
		}(i, job)
	}
	wg.Wait()
	c.metrics.RecordLatency("acquisition_pass", time.Since(start).Seconds())

	table := &models.Table{}
	succeeded := 0
	for _, out := range outcomes {
		if out.err != nil {
			table.Warnings = append(table.Warnings, fmt.Sprintf("%s: %v", out.id, out.err))
			continue
		}
		succeeded++
		for _, o := range out.obs {
			if math.IsNaN(o.Value) {
				continue
			}
			table.Rows = append(table.Rows, o)
		}
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("%w: all %d fetches failed", ErrNoData, len(jobs))
	}
	if len(table.Warnings) > 0 {
		c.logger.Warn("some series failed to load",
			xlogger.Strings("failures", table.Warnings))
	}
	return table, nil
}

// Invalidate drops the cached fetch results, forcing the next pass to hit
// the network.
func (c *SeriesCollector) Invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	keys := make([]string, 0, len(c.series)+1)
	for _, id := range c.series {
		keys = append(keys, cache.GenerateKey(cacheKeyPrefix, id))
	}
	if c.tp10 {
		keys = append(keys, cache.GenerateKey(cacheKeyPrefix, models.SeriesTP10))
	}
	return c.cache.Delete(ctx, keys...)
}

func (c *SeriesCollector) fetchCached(ctx context.Context, job fetchJob) ([]models.Observation, error) {
	key := cache.GenerateKey(cacheKeyPrefix, job.id)
	if c.cache != nil {
		var cached []models.Observation
		if err := c.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	obs, err := job.src.Fetch(ctx, job.id)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		// JSON cannot carry NaN; the merge discards those rows anyway.
		if cerr := c.cache.Set(ctx, key, dropMissing(obs), c.ttl); cerr != nil {
			c.logger.Debug("cache set failed", xlogger.String("series", job.id), xlogger.Error(cerr))
		}
	}
	return obs, nil
}

func dropMissing(obs []models.Observation) []models.Observation {
	out := make([]models.Observation, 0, len(obs))
	for _, o := range obs {
		if math.IsNaN(o.Value) {
			continue
		}
		out = append(out, o)
	}
	return out
}
