package fred

import (
	"context"
	"fmt"
	"time"

	"MacroBoard/internal/domain/models"
	drepo "MacroBoard/internal/domain/repository"
	"MacroBoard/internal/service/ratelimit"
	"MacroBoard/internal/service/seriescsv"
	xhttp "MacroBoard/pkg/http"
	xlogger "MacroBoard/pkg/logger"
)

// FRED serves its CSVs to browsers only; a bare Go User-Agent gets 403.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"

// Template URLs, tried in order: the downloaddata CSV first, fredgraph as
// fallback. Each takes the series id.
var defaultTemplates = []string{
	"https://fred.stlouisfed.org/series/%[1]s/downloaddata/%[1]s.csv",
	"https://fred.stlouisfed.org/graph/fredgraph.csv?id=%[1]s",
}

// Client fetches FRED series as CSV without an API key.
type Client struct {
	http      *xhttp.Client
	logger    *xlogger.Logger
	metrics   drepo.Metrics
	limiter   *ratelimit.Limiter
	templates []string
	attempts  int
	delay     time.Duration
}

// Option configures Client.
type Option func(*Client)

// WithAttempts sets the per-URL attempt count.
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryDelay sets the fixed inter-attempt delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithTemplates overrides the URL templates (used by tests).
func WithTemplates(templates []string) Option {
	return func(c *Client) {
		if len(templates) > 0 {
			c.templates = templates
		}
	}
}

// WithLimiter throttles outbound requests against the host.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New creates a FRED series source.
func New(httpClient *xhttp.Client, logger *xlogger.Logger, metrics drepo.Metrics, opts ...Option) drepo.SeriesSource {
	c := &Client{
		http:      httpClient,
		logger:    logger,
		metrics:   metrics,
		templates: defaultTemplates,
		attempts:  2,
		delay:     time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves all observations for id. Every template URL is retried
// up to the attempt count before the next is tried; success on any
// attempt returns normally. The returned error wraps the last failure.
func (c *Client) Fetch(ctx context.Context, id string) ([]models.Observation, error) {
	var lastErr error
	for _, tmpl := range c.templates {
		url := fmt.Sprintf(tmpl, id)
		for attempt := 1; attempt <= c.attempts; attempt++ {
			obs, err := c.fetchOnce(ctx, id, url)
			if err == nil {
				return obs, nil
			}
			lastErr = err
			c.metrics.RecordError("fred_fetch")
			c.logger.Warn("fred fetch attempt failed",
				xlogger.String("series", id),
				xlogger.Int("attempt", attempt),
				xlogger.Error(err),
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch %s: %w", id, ctx.Err())
			case <-time.After(c.delay):
			}
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", id, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, id, url string) ([]models.Observation, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, "fred", 5, 2); err != nil {
			return nil, err
		}
	}
	c.metrics.RecordFetchAttempt(id, "fred")

	start := time.Now()
	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     url,
		Headers: map[string]string{"User-Agent": userAgent},
	}, &body)
	if err != nil {
		return nil, err
	}

	obs, err := seriescsv.Parse(id, body)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordLatency("fred_fetch", time.Since(start).Seconds())
	return obs, nil
}
