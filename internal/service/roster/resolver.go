// Package roster maintains the player identity directory and resolves
// free-text player names against it.
package roster

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/strutil"
	strmetrics "github.com/adrg/strutil/metrics"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
	"CourtPulse/pkg/cache"
	"CourtPulse/pkg/logger"
)

var cacheKey = cache.GenerateKey("roster", "players")

const (
	matchExact = "exact"
	matchFuzzy = "fuzzy"
	matchMiss  = "miss"

	placeholderPhoto = "/placeholder-player.svg"
	headshotCDN      = "https://cdn.nba.com/headshots/nba/latest/1040x760/%s.png"
)

// DirectorySource fetches the live league player directory.
type DirectorySource interface {
	ActivePlayers(ctx context.Context) ([]models.PlayerIdentity, error)
}

// Match is a successful name resolution.
type Match struct {
	Player     models.PlayerIdentity `json:"player"`
	MatchType  string                `json:"matchType"`
	Confidence float64               `json:"confidence"`
	PhotoURL   string                `json:"photoUrl"`
}

// Resolver resolves player names in two tiers: exact case-insensitive
// match first, then a Sorensen-Dice fuzzy match above the configured
// threshold. The warm roster comes from cache, then the durable store,
// and is synced from the live directory when missing or older than ttl.
type Resolver struct {
	cache     cache.Service
	store     repository.RosterStore
	directory DirectorySource
	log       *logger.Logger
	metrics   repository.Metrics
	ttl       time.Duration
	threshold float64
	dice      *strmetrics.SorensenDice
	now       func() time.Time
}

// NewResolver builds a resolver. The cache is optional and may be nil.
func NewResolver(c cache.Service, store repository.RosterStore, directory DirectorySource, log *logger.Logger, m repository.Metrics, ttl time.Duration, threshold float64) *Resolver {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if threshold <= 0 {
		threshold = 0.5
	}
	return &Resolver{
		cache:     c,
		store:     store,
		directory: directory,
		log:       log,
		metrics:   m,
		ttl:       ttl,
		threshold: threshold,
		dice:      strmetrics.NewSorensenDice(),
		now:       time.Now,
	}
}

// SetClock overrides the clock, for tests.
func (r *Resolver) SetClock(now func() time.Time) { r.now = now }

// Resolve finds the roster entry for a free-text player name. When the
// warm roster has no acceptable match the live directory is tried once
// before reporting a miss.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Match, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, fmt.Errorf("roster: empty player name")
	}

	players, err := r.warmRoster(ctx)
	if err != nil {
		r.log.Warn("warm roster unavailable, falling back to live directory", logger.Error(err))
		players = nil
	}

	if m := r.match(query, players); m != nil {
		r.metrics.ResolverLookup(m.MatchType)
		return m, nil
	}

	live, err := r.syncFromDirectory(ctx)
	if err != nil {
		if len(players) == 0 {
			return nil, fmt.Errorf("roster: resolve %q: %w", query, err)
		}
		r.metrics.ResolverLookup(matchMiss)
		return nil, fmt.Errorf("roster: no match for %q", query)
	}
	if m := r.match(query, live); m != nil {
		r.metrics.ResolverLookup(m.MatchType)
		return m, nil
	}

	r.metrics.ResolverLookup(matchMiss)
	return nil, fmt.Errorf("roster: no match for %q", query)
}

// Players returns the warm roster, syncing from the live directory when
// the stored copy is missing or expired.
func (r *Resolver) Players(ctx context.Context) ([]models.PlayerIdentity, error) {
	return r.warmRoster(ctx)
}

func (r *Resolver) warmRoster(ctx context.Context) ([]models.PlayerIdentity, error) {
	if r.cache != nil {
		var cached []models.PlayerIdentity
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	stored, err := r.store.Current(ctx)
	if err != nil {
		r.log.Warn("roster store read failed", logger.Error(err))
	}
	if len(stored) > 0 && r.now().Sub(stored[0].LastUpdated) < r.ttl {
		r.fillCache(ctx, stored)
		return stored, nil
	}

	live, err := r.syncFromDirectory(ctx)
	if err != nil {
		if len(stored) > 0 {
			return stored, nil
		}
		return nil, err
	}
	return live, nil
}

func (r *Resolver) syncFromDirectory(ctx context.Context) ([]models.PlayerIdentity, error) {
	players, err := r.directory.ActivePlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("roster sync: %w", err)
	}
	if err := r.store.ReplaceAll(ctx, r.now(), players); err != nil {
		r.log.Error("roster store write failed", logger.Error(err))
	}
	r.fillCache(ctx, players)
	r.metrics.RosterSize(len(players))
	r.log.Info("roster synced", logger.Int("players", len(players)))
	return players, nil
}

func (r *Resolver) fillCache(ctx context.Context, players []models.PlayerIdentity) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey, players, r.ttl); err != nil {
		r.log.Warn("roster cache write failed", logger.Error(err))
	}
}

func (r *Resolver) match(query string, players []models.PlayerIdentity) *Match {
	if len(players) == 0 {
		return nil
	}
	lowered := strings.ToLower(query)

	for _, p := range players {
		if strings.ToLower(p.Name) == lowered {
			return &Match{Player: p, MatchType: matchExact, Confidence: 1, PhotoURL: PhotoURL(p.ID)}
		}
	}

	var best *models.PlayerIdentity
	bestScore := r.threshold
	for i := range players {
		score := strutil.Similarity(lowered, strings.ToLower(players[i].Name), r.dice)
		if score > bestScore {
			bestScore = score
			best = &players[i]
		}
	}
	if best == nil {
		return nil
	}
	return &Match{Player: *best, MatchType: matchFuzzy, Confidence: bestScore, PhotoURL: PhotoURL(best.ID)}
}

// PhotoURL returns the headshot URL for a player id, or the placeholder
// asset when the id is unknown.
func PhotoURL(id string) string {
	if id == "" {
		return placeholderPhoto
	}
	return fmt.Sprintf(headshotCDN, id)
}
