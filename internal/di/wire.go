//go:build wireinject
// +build wireinject

package di

import (
	"SentiPull/pkg/config"
	"SentiPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics and shared infrastructure
		ProvideMetrics,
		ProvideRateLimiter,
		ProvidePublisher,
		ProvideLogger,
		ProvideCache,

		// Source adapters and scorer
		ProvideNewsSource,
		ProvideSocialSource,
		ProvideScorer,

		// Use cases
		ProvideAnalyzer,
		ProvideCollector,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
