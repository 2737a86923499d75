package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"MacroBoard/pkg/cache"
	"MacroBoard/pkg/config"
	xhttp "MacroBoard/pkg/http"
	applogger "MacroBoard/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	cacheSvc   cache.Service
	logger     *applogger.Logger
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, handler xhttp.Handler, cacheSvc cache.Service, logger *applogger.Logger) *App {
	return &App{
		cfg:      cfg,
		handler:  handler,
		cacheSvc: cacheSvc,
		logger:   logger,
	}
}

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("dashboard up",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Strings("series", a.cfg.Series.Fred),
		applogger.Bool("nyfed_tp10", a.cfg.Series.NYFedTP10),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if closer, ok := a.cacheSvc.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
