package di

import (
	"context"
	"fmt"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
	"CourtPulse/internal/handler/api"
	internalrepo "CourtPulse/internal/repository"
	"CourtPulse/internal/service/espn"
	"CourtPulse/internal/service/nbastats"
	"CourtPulse/internal/service/oddsapi"
	"CourtPulse/internal/service/ratelimit"
	"CourtPulse/internal/service/roster"
	"CourtPulse/internal/usecase"
	"CourtPulse/pkg/cache"
	pkgch "CourtPulse/pkg/clickhouse"
	"CourtPulse/pkg/config"
	pkgkafka "CourtPulse/pkg/kafka"
	"CourtPulse/pkg/logger"
	"CourtPulse/pkg/metrics"
	"CourtPulse/pkg/server"
)

// Per-domain scan limits for the snapshot reads.
const (
	trendsScanLimit   = 200
	injuriesScanLimit = 250
	scheduleScanLimit = 100
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient connects to ClickHouse and applies the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema()); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates the producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher wraps the producer, or a no-op when disabled.
func ProvideEventPublisher(producer *pkgkafka.Producer) repository.EventPublisher {
	if producer == nil {
		return internalrepo.NopEventPublisher{}
	}
	return internalrepo.NewKafkaEventPublisher(producer)
}

// ProvideWarmCache creates the layered roster cache, or nil when Redis is
// disabled.
func ProvideWarmCache(cfg *config.Config) (*cache.LayeredCache, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix("courtpulse"),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideStores builds the three ClickHouse-backed stores.
func ProvidePerformanceStore(chClient *pkgch.Client) repository.PerformanceStore {
	return internalrepo.NewPerformanceStore(chClient.DB())
}

func ProvideRosterStore(chClient *pkgch.Client) repository.RosterStore {
	return internalrepo.NewRosterStore(chClient.DB())
}

// ProvideLimiter creates the shared upstream token bucket.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideOddsClient creates the odds board client.
func ProvideOddsClient(cfg *config.Config) *oddsapi.Client {
	return oddsapi.NewClient(cfg.Odds.BaseURL, cfg.Odds.APIKey, cfg.Odds.Regions, cfg.Odds.Timeout)
}

// ProvideESPNClient creates the ESPN site API client.
func ProvideESPNClient(cfg *config.Config) *espn.Client {
	return espn.NewClient(cfg.ESPN.BaseURL, cfg.ESPN.Timeout)
}

// ProvideStatsClient creates the NBA stats client.
func ProvideStatsClient(cfg *config.Config, limiter *ratelimit.Limiter) *nbastats.Client {
	return nbastats.NewClient(cfg.NBAStats.BaseURL, cfg.NBAStats.Timeout, limiter, cfg.NBAStats.RateCapacity, cfg.NBAStats.RatePerSec)
}

// ProvideResolver creates the two-tier identity resolver.
func ProvideResolver(warmCache *cache.LayeredCache, store repository.RosterStore, stats *nbastats.Client, log *logger.Logger, m repository.Metrics, cfg *config.Config) *roster.Resolver {
	var c cache.Service
	if warmCache != nil {
		c = warmCache
	}
	return roster.NewResolver(c, store, stats, log, m, cfg.Roster.TTL, cfg.Roster.FuzzyThreshold)
}

// ProvideTrendsSection wires the trends domain: odds board reduced to
// best lines and scored against stored performance samples.
func ProvideTrendsSection(odds *oddsapi.Client, perf repository.PerformanceStore, events repository.EventPublisher, log *logger.Logger, m repository.Metrics, chClient *pkgch.Client, cfg *config.Config) *usecase.Section[models.TrendSignal] {
	computer := usecase.NewTrendsComputer(odds, perf, log, cfg.TrackedPlayers, cfg.Sections.MinSampleSize)
	store := internalrepo.NewSnapshotStore[models.TrendSignal](chClient.DB(), cfg.Sport, usecase.DomainTrends)
	return usecase.NewSection[models.TrendSignal](usecase.DomainTrends, store, computer.Compute, log, m,
		usecase.WithWindow[models.TrendSignal](cfg.Sections.FreshnessWindow),
		usecase.WithScanLimit[models.TrendSignal](trendsScanLimit),
		usecase.WithEvents[models.TrendSignal](events),
	)
}

// ProvideInjuriesSection wires the injuries domain on the ESPN feed.
func ProvideInjuriesSection(espnClient *espn.Client, events repository.EventPublisher, log *logger.Logger, m repository.Metrics, chClient *pkgch.Client, cfg *config.Config) *usecase.Section[models.InjuryReport] {
	store := internalrepo.NewSnapshotStore[models.InjuryReport](chClient.DB(), cfg.Sport, usecase.DomainInjuries)
	return usecase.NewSection[models.InjuryReport](usecase.DomainInjuries, store, espnClient.Injuries, log, m,
		usecase.WithWindow[models.InjuryReport](cfg.Sections.FreshnessWindow),
		usecase.WithScanLimit[models.InjuryReport](injuriesScanLimit),
		usecase.WithEvents[models.InjuryReport](events),
	)
}

// ProvideScheduleSection wires the schedule domain on today's scoreboard.
func ProvideScheduleSection(espnClient *espn.Client, events repository.EventPublisher, log *logger.Logger, m repository.Metrics, chClient *pkgch.Client, cfg *config.Config) *usecase.Section[models.ScheduledGame] {
	store := internalrepo.NewSnapshotStore[models.ScheduledGame](chClient.DB(), cfg.Sport, usecase.DomainSchedule)
	fetch := func(ctx context.Context) ([]models.ScheduledGame, error) {
		return espnClient.Scoreboard(ctx, espn.TodayKey(time.Now()))
	}
	return usecase.NewSection[models.ScheduledGame](usecase.DomainSchedule, store, fetch, log, m,
		usecase.WithWindow[models.ScheduledGame](cfg.Sections.FreshnessWindow),
		usecase.WithScanLimit[models.ScheduledGame](scheduleScanLimit),
		usecase.WithEvents[models.ScheduledGame](events),
	)
}

// ProvideOrchestrator assembles the home feed orchestrator.
func ProvideOrchestrator(trends *usecase.Section[models.TrendSignal], injuries *usecase.Section[models.InjuryReport], schedule *usecase.Section[models.ScheduledGame], log *logger.Logger, cfg *config.Config) *usecase.Orchestrator {
	return usecase.NewOrchestrator(trends, injuries, schedule, cfg.Sections.Deadline, cfg.Sections.TrendsLimit, log)
}

// ProvideRefresher assembles the player performance refresher.
func ProvideRefresher(resolver *roster.Resolver, stats *nbastats.Client, perf repository.PerformanceStore, log *logger.Logger, cfg *config.Config) *usecase.PlayerRefresher {
	return usecase.NewPlayerRefresher(resolver, stats, perf, log, cfg.TrackedPlayers, cfg.Refresh.PlayerDelay, cfg.Refresh.GamesPerRun)
}

// ProvideRouter assembles all HTTP handlers.
func ProvideRouter(log *logger.Logger, orch *usecase.Orchestrator, resolver *roster.Resolver, trends *usecase.Section[models.TrendSignal], injuries *usecase.Section[models.InjuryReport], schedule *usecase.Section[models.ScheduledGame], refresher *usecase.PlayerRefresher, chClient *pkgch.Client, cfg *config.Config) *api.Router {
	return api.NewRouter(
		api.NewHomeHandler(log, orch),
		api.NewPlayersHandler(log, resolver),
		api.NewCronHandler(log, trends, injuries, schedule, refresher, cfg.Cron.Secret),
		api.NewHealthHandler(log, chClient),
	)
}

// ProvideApp assembles the application.
func ProvideApp(cfg *config.Config, log *logger.Logger, router *api.Router, chClient *pkgch.Client, producer *pkgkafka.Producer, warmCache *cache.LayeredCache) *server.App {
	if producer != nil {
		log.AddCollector(&logger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          internalrepo.LogTopic,
			Publisher:      internalrepo.NewKafkaEventPublisher(producer),
		})
	}
	return server.New(cfg, log, router, chClient, producer, warmCache)
}
