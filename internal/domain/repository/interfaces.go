package repository

import (
	"context"
	"time"

	"CourtPulse/internal/domain/models"
)

// SnapshotRow is one persisted cache row: a batch timestamp plus payload.
type SnapshotRow[T any] struct {
	AsOf    time.Time
	Payload T
}

// SnapshotStore is the durable read/write contract for one section domain.
// Writes are appends; the "current" batch is the subset of the most recent
// rows sharing the maximum as_of. No update or delete is ever required.
type SnapshotStore[T any] interface {
	// ReadRecent returns up to limit rows ordered by as_of descending.
	ReadRecent(ctx context.Context, limit int) ([]SnapshotRow[T], error)
	// AppendBatch inserts rows stamped with a single shared as_of.
	AppendBatch(ctx context.Context, asOf time.Time, payload []T) error
}

// PerformanceStore serves per-game stat lines for the trends pipeline.
type PerformanceStore interface {
	// RecentGames returns up to n games for the player from the newest
	// fetched batch, most recent game first.
	RecentGames(ctx context.Context, playerName string, n int) ([]models.PlayerGame, error)
	// AppendGames stores a freshly fetched batch for one player.
	AppendGames(ctx context.Context, fetchedAt time.Time, games []models.PlayerGame) error
}

// RosterStore is the durable layer under the warm roster cache.
type RosterStore interface {
	// Current returns the newest synced roster batch, alphabetical by name.
	Current(ctx context.Context) ([]models.PlayerIdentity, error)
	// ReplaceAll appends a wholesale roster sync batch.
	ReplaceAll(ctx context.Context, syncedAt time.Time, players []models.PlayerIdentity) error
}

// EventPublisher emits best-effort notifications after live refreshes.
type EventPublisher interface {
	PublishRefresh(ctx context.Context, domain string, asOf time.Time, count int) error
}

// Metrics records operational counters for the aggregation core.
type Metrics interface {
	SectionServed(domain, source string, stale bool)
	SectionDuration(domain string, d time.Duration)
	UpstreamError(kind string)
	ResolverLookup(result string)
	RosterSize(n int)
}
