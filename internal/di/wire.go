//go:build wireinject
// +build wireinject

package di

import (
	"CourtPulse/pkg/config"
	"CourtPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideWarmCache,

		// Stores and publishers
		ProvidePerformanceStore,
		ProvideRosterStore,
		ProvideEventPublisher,

		// Upstream services
		ProvideLimiter,
		ProvideOddsClient,
		ProvideESPNClient,
		ProvideStatsClient,
		ProvideResolver,

		// Use cases
		ProvideTrendsSection,
		ProvideInjuriesSection,
		ProvideScheduleSection,
		ProvideOrchestrator,
		ProvideRefresher,

		// HTTP surface and application
		ProvideRouter,
		ProvideApp,
	)
	return &server.App{}, nil
}
