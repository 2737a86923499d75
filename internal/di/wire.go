//go:build wireinject
// +build wireinject

package di

import (
	"MacroBoard/pkg/config"
	"MacroBoard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Outbound infrastructure
		ProvideHTTPClient,
		ProvideFetchCache,
		ProvideFredSource,
		ProvideNYFedSource,

		// Use cases
		ProvideCollector,
		ProvideDashboardBuilder,

		// HTTP surface
		ProvideDashboardHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
