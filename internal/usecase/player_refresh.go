package usecase

import (
	"context"
	"fmt"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
	"CourtPulse/internal/service/roster"
	"CourtPulse/pkg/logger"
)

const defaultGamesPerRun = 20

// GameLogSource fetches a player's recent game log from the league API.
type GameLogSource interface {
	GameLog(ctx context.Context, playerID, playerName string) ([]models.PlayerGame, error)
}

// NameResolver resolves a free-text player name to a roster identity.
type NameResolver interface {
	Resolve(ctx context.Context, name string) (*roster.Match, error)
}

// PlayerRefreshResult is the per-player outcome of a bulk refresh.
type PlayerRefreshResult struct {
	Player string `json:"player"`
	Games  int    `json:"games,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PlayerRefresher pulls fresh game logs into the performance store. Bulk
// runs are strictly serialized with a fixed delay between players so the
// upstream rate limit is never tripped by a burst.
type PlayerRefresher struct {
	resolver    NameResolver
	source      GameLogSource
	perf        repository.PerformanceStore
	log         *logger.Logger
	tracked     []string
	delay       time.Duration
	gamesPerRun int
	now         func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewPlayerRefresher(resolver NameResolver, source GameLogSource, perf repository.PerformanceStore, log *logger.Logger, tracked []string, delay time.Duration, gamesPerRun int) *PlayerRefresher {
	if delay <= 0 {
		delay = time.Second
	}
	if gamesPerRun <= 0 {
		gamesPerRun = defaultGamesPerRun
	}
	return &PlayerRefresher{
		resolver:    resolver,
		source:      source,
		perf:        perf,
		log:         log,
		tracked:     tracked,
		delay:       delay,
		gamesPerRun: gamesPerRun,
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// UpdatePlayer resolves the player, fetches the latest game log rows and
// appends them as a new batch. Returns the number of games stored.
func (r *PlayerRefresher) UpdatePlayer(ctx context.Context, name string) (int, error) {
	match, err := r.resolver.Resolve(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("refresh %s: %w", name, err)
	}

	games, err := r.source.GameLog(ctx, match.Player.ID, match.Player.Name)
	if err != nil {
		return 0, fmt.Errorf("refresh %s: %w", name, err)
	}
	if len(games) > r.gamesPerRun {
		games = games[:r.gamesPerRun]
	}
	if len(games) == 0 {
		return 0, fmt.Errorf("refresh %s: no games in log", name)
	}

	if err := r.perf.AppendGames(ctx, r.now(), games); err != nil {
		return 0, fmt.Errorf("refresh %s: %w", name, err)
	}
	r.log.Info("player performance refreshed",
		logger.String("player", match.Player.Name),
		logger.Int("games", len(games)))
	return len(games), nil
}

// UpdateTracked refreshes every tracked player in order, pausing between
// players. One player's failure is recorded and the run continues.
func (r *PlayerRefresher) UpdateTracked(ctx context.Context) []PlayerRefreshResult {
	results := make([]PlayerRefreshResult, 0, len(r.tracked))
	for i, name := range r.tracked {
		if i > 0 {
			if err := r.sleep(ctx, r.delay); err != nil {
				results = append(results, PlayerRefreshResult{Player: name, Error: err.Error()})
				continue
			}
		}
		count, err := r.UpdatePlayer(ctx, name)
		if err != nil {
			r.log.Warn("player refresh failed",
				logger.String("player", name), logger.Error(err))
			results = append(results, PlayerRefreshResult{Player: name, Error: err.Error()})
			continue
		}
		results = append(results, PlayerRefreshResult{Player: name, Games: count})
	}
	return results
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
