package di

import (
    "MacroBoard/internal/domain/repository"
    "MacroBoard/internal/handler/api"
    "MacroBoard/internal/service/fred"
    "MacroBoard/internal/service/nyfed"
    "MacroBoard/internal/service/ratelimit"
    "MacroBoard/internal/usecase"
    "MacroBoard/pkg/cache"
    "MacroBoard/pkg/config"
    xhttp "MacroBoard/pkg/http"
    "MacroBoard/pkg/logger"
    "MacroBoard/pkg/metrics"
    "MacroBoard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return logger.New(&logger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the outbound HTTP client with the per-attempt
// fetch timeout.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(cfg.Fetch.Timeout))
}

// ProvideFetchCache creates the fetch-result cache: in-memory always,
// layered over Redis when configured.
func ProvideFetchCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, err
	}
	return cache.NewLayeredCache(rc), nil
}

// FredSource and NYFedSource are distinct names for the two source
// roles; wire cannot bind two providers to one interface type.
type FredSource repository.SeriesSource

type NYFedSource repository.SeriesSource

// ProvideFredSource creates the FRED series source.
func ProvideFredSource(cfg *config.Config, httpClient *xhttp.Client, l *logger.Logger, m repository.Metrics) FredSource {
	return fred.New(httpClient, l, m,
		fred.WithAttempts(cfg.Fetch.Attempts),
		fred.WithRetryDelay(cfg.Fetch.RetryDelay),
		fred.WithLimiter(ratelimit.New()),
	)
}

// ProvideNYFedSource creates the NY Fed term premium source.
func ProvideNYFedSource(httpClient *xhttp.Client, l *logger.Logger, m repository.Metrics) NYFedSource {
	return nyfed.New(httpClient, l, m)
}

// ProvideCollector creates the acquisition-pass collector.
func ProvideCollector(
	cfg *config.Config,
	fredSrc FredSource,
	nyfedSrc NYFedSource,
	cacheSvc cache.Service,
	l *logger.Logger,
	m repository.Metrics,
) *usecase.SeriesCollector {
	return usecase.NewSeriesCollector(
		fredSrc,
		nyfedSrc,
		cfg.Series.Fred,
		cfg.Series.NYFedTP10,
		cacheSvc,
		cfg.Fetch.CacheTTL,
		cfg.Fetch.MaxConcurrency,
		l,
		m,
	)
}

// ProvideDashboardBuilder creates the render use case.
func ProvideDashboardBuilder(collector *usecase.SeriesCollector, cfg *config.Config, m repository.Metrics) *usecase.DashboardBuilder {
	return usecase.NewDashboardBuilder(collector, cfg.Tiles, m)
}

// ProvideDashboardHandler creates the Echo handler.
func ProvideDashboardHandler(l *logger.Logger, builder *usecase.DashboardBuilder) xhttp.Handler {
	return api.NewDashboardEchoHandler(l, builder)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	cacheSvc cache.Service,
	l *logger.Logger,
) *server.App {
	return server.New(cfg, handler, cacheSvc, l)
}
