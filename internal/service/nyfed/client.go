package nyfed

import (
	"context"
	"fmt"
	"time"

	"MacroBoard/internal/domain/models"
	drepo "MacroBoard/internal/domain/repository"
	"MacroBoard/internal/service/seriescsv"
	xhttp "MacroBoard/pkg/http"
	xlogger "MacroBoard/pkg/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124 Safari/537.36"

// SeriesID is the only series this source serves.
const SeriesID = models.SeriesTP10

// Candidate URLs for the ACM term premium CSV, tried once each in order.
// The body sometimes carries explanatory text ahead of the header row.
var defaultURLs = []string{
	"https://www.newyorkfed.org/medialibrary/media/research/data_indicators/ACMTP.csv",
	"https://www.newyorkfed.org/medialibrary/media/research/data_indicators/ACMTP.csv?download=true",
	"https://www.newyorkfed.org/research/data_indicators/ACMTP.csv",
	"https://nyfed.org/medialibrary/media/research/data_indicators/ACMTP.csv",
}

// Client fetches the NY Fed ACM 10-year term premium series.
type Client struct {
	http    *xhttp.Client
	logger  *xlogger.Logger
	metrics drepo.Metrics
	urls    []string
}

// Option configures Client.
type Option func(*Client)

// WithURLs overrides the candidate URL list (used by tests).
func WithURLs(urls []string) Option {
	return func(c *Client) {
		if len(urls) > 0 {
			c.urls = urls
		}
	}
}

// New creates a NY Fed term premium source.
func New(httpClient *xhttp.Client, logger *xlogger.Logger, metrics drepo.Metrics, opts ...Option) drepo.SeriesSource {
	c := &Client{
		http:    httpClient,
		logger:  logger,
		metrics: metrics,
		urls:    defaultURLs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch tries each candidate URL once; the id argument is ignored because
// this source serves a single series. The header row is located by
// scanning for a line carrying both the date and TP10 column markers.
func (c *Client) Fetch(ctx context.Context, _ string) ([]models.Observation, error) {
	var lastErr error
	for _, url := range c.urls {
		c.metrics.RecordFetchAttempt(SeriesID, "nyfed")
		start := time.Now()

		var body []byte
		err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
			Method:  xhttp.MethodGet,
			URL:     url,
			Headers: map[string]string{"User-Agent": userAgent},
		}, &body)
		if err == nil {
			var table []byte
			table, err = seriescsv.StripPreamble(body, "date", "tp10")
			if err == nil {
				var obs []models.Observation
				obs, err = seriescsv.Parse(SeriesID, table)
				if err == nil {
					c.metrics.RecordLatency("nyfed_fetch", time.Since(start).Seconds())
					return obs, nil
				}
			}
		}

		lastErr = err
		c.metrics.RecordError("nyfed_fetch")
		c.logger.Warn("nyfed fetch failed",
			xlogger.String("url", url),
			xlogger.Error(err),
		)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("fetch %s: %w", SeriesID, ctx.Err())
		default:
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", SeriesID, lastErr)
}
