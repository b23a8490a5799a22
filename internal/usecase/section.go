// Package usecase holds the aggregation core: freshness-gated sections,
// the home feed orchestrator, and the player performance refresh jobs.
package usecase

import (
	"context"
	"time"

	"CourtPulse/internal/domain/repository"
	"CourtPulse/pkg/logger"
)

// Source labels for a section result.
const (
	SourceCache = "cache"
	SourceLive  = "live"
)

// FetchFunc produces a fresh batch from the live upstream.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// SectionResult is what a section serves. It never carries an error: a
// failed or empty live fetch degrades to the prior cache marked stale.
type SectionResult[T any] struct {
	Items     []T
	UpdatedAt time.Time
	Source    string
	Stale     bool
}

// Section serves one domain with cache-or-refresh semantics. The durable
// store is the cache; the newest batch within the freshness window is
// served as-is, anything older triggers a live fetch.
type Section[T any] struct {
	domain  string
	store   repository.SnapshotStore[T]
	fetch   FetchFunc[T]
	window  time.Duration
	scan    int
	log     *logger.Logger
	metrics repository.Metrics
	events  repository.EventPublisher
	now     func() time.Time
}

// SectionOption configures a Section.
type SectionOption[T any] func(*Section[T])

func WithWindow[T any](window time.Duration) SectionOption[T] {
	return func(s *Section[T]) { s.window = window }
}

func WithScanLimit[T any](scan int) SectionOption[T] {
	return func(s *Section[T]) { s.scan = scan }
}

func WithClock[T any](now func() time.Time) SectionOption[T] {
	return func(s *Section[T]) { s.now = now }
}

func WithEvents[T any](events repository.EventPublisher) SectionOption[T] {
	return func(s *Section[T]) { s.events = events }
}

// NewSection builds a section for one domain.
func NewSection[T any](domain string, store repository.SnapshotStore[T], fetch FetchFunc[T], log *logger.Logger, m repository.Metrics, opts ...SectionOption[T]) *Section[T] {
	s := &Section[T]{
		domain:  domain,
		store:   store,
		fetch:   fetch,
		window:  15 * time.Minute,
		scan:    200,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Domain returns the section's domain label.
func (s *Section[T]) Domain() string { return s.domain }

// Get serves the section. With force false a fresh cached batch is served
// directly; otherwise a live fetch runs and, on success, is appended as
// the new current batch. limit <= 0 means no truncation.
func (s *Section[T]) Get(ctx context.Context, force bool, limit int) SectionResult[T] {
	started := s.now()
	defer func() {
		s.metrics.SectionDuration(s.domain, s.now().Sub(started))
	}()

	cached, cachedAt := s.currentBatch(ctx)
	fresh := len(cached) > 0 && s.now().Sub(cachedAt) < s.window

	if !force && fresh {
		return s.serve(cached, cachedAt, SourceCache, false, limit)
	}

	live, err := s.fetch(ctx)
	if err != nil || len(live) == 0 {
		if err != nil {
			s.metrics.UpstreamError(s.domain)
			s.log.Warn("live fetch failed, serving stale cache",
				logger.String("domain", s.domain), logger.Error(err))
		} else {
			s.log.Warn("live fetch returned nothing, serving stale cache",
				logger.String("domain", s.domain))
		}
		return s.serve(cached, cachedAt, SourceCache, true, limit)
	}

	asOf := s.now()
	if err := s.store.AppendBatch(ctx, asOf, live); err != nil {
		s.log.Error("batch write failed",
			logger.String("domain", s.domain), logger.Error(err))
	} else if s.events != nil {
		if err := s.events.PublishRefresh(ctx, s.domain, asOf, len(live)); err != nil {
			s.log.Warn("refresh event publish failed",
				logger.String("domain", s.domain), logger.Error(err))
		}
	}
	return s.serve(live, asOf, SourceLive, false, limit)
}

func (s *Section[T]) serve(items []T, at time.Time, source string, stale bool, limit int) SectionResult[T] {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	s.metrics.SectionServed(s.domain, source, stale)
	return SectionResult[T]{Items: items, UpdatedAt: at, Source: source, Stale: stale}
}

// currentBatch reads recent rows and keeps only those sharing the newest
// as_of. A read failure is logged and treated as an empty cache.
func (s *Section[T]) currentBatch(ctx context.Context) ([]T, time.Time) {
	rows, err := s.store.ReadRecent(ctx, s.scan)
	if err != nil {
		s.log.Warn("cache read failed",
			logger.String("domain", s.domain), logger.Error(err))
		return nil, time.Time{}
	}
	if len(rows) == 0 {
		return nil, time.Time{}
	}
	newest := rows[0].AsOf
	for _, r := range rows[1:] {
		if r.AsOf.After(newest) {
			newest = r.AsOf
		}
	}
	var items []T
	for _, r := range rows {
		if r.AsOf.Equal(newest) {
			items = append(items, r.Payload)
		}
	}
	return items, newest
}
