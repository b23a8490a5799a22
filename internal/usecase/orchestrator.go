package usecase

import (
	"context"
	"sync"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/pkg/logger"
)

// Section domain labels.
const (
	DomainTrends   = "trends"
	DomainInjuries = "injuries"
	DomainSchedule = "schedule"
)

// Orchestrator assembles the home payload from the three sections, each
// raced against a shared per-domain deadline.
type Orchestrator struct {
	trends      *Section[models.TrendSignal]
	injuries    *Section[models.InjuryReport]
	schedule    *Section[models.ScheduledGame]
	deadline    time.Duration
	trendsLimit int
	log         *logger.Logger
	now         func() time.Time
}

func NewOrchestrator(trends *Section[models.TrendSignal], injuries *Section[models.InjuryReport], schedule *Section[models.ScheduledGame], deadline time.Duration, trendsLimit int, log *logger.Logger) *Orchestrator {
	if deadline <= 0 {
		deadline = 7 * time.Second
	}
	if trendsLimit <= 0 {
		trendsLimit = 12
	}
	return &Orchestrator{
		trends:      trends,
		injuries:    injuries,
		schedule:    schedule,
		deadline:    deadline,
		trendsLimit: trendsLimit,
		log:         log,
		now:         time.Now,
	}
}

// SetClock overrides the clock, for tests.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// Aggregate runs all three sections concurrently and assembles the home
// payload. A domain that exceeds the deadline or panics degrades to an
// empty stale result; the other domains are unaffected.
func (o *Orchestrator) Aggregate(ctx context.Context, force bool) *models.HomePayload {
	var (
		wg          sync.WaitGroup
		trendsRes   SectionResult[models.TrendSignal]
		injuriesRes SectionResult[models.InjuryReport]
		scheduleRes SectionResult[models.ScheduledGame]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		trendsRes = raceSection(ctx, o.trends, force, o.trendsLimit, o.deadline, o.log)
	}()
	go func() {
		defer wg.Done()
		injuriesRes = raceSection(ctx, o.injuries, force, 0, o.deadline, o.log)
	}()
	go func() {
		defer wg.Done()
		scheduleRes = raceSection(ctx, o.schedule, force, 0, o.deadline, o.log)
	}()
	wg.Wait()

	return &models.HomePayload{
		Trends:      emptyNotNil(trendsRes.Items),
		ArcadeGames: BuildArcadeGames(scheduleRes.Items, trendsRes.Items),
		Injuries:    emptyNotNil(injuriesRes.Items),
		Schedule:    emptyNotNil(scheduleRes.Items),
		UpdatedAt:   o.now().UTC().Format(time.RFC3339),
		Health: models.PayloadHealth{
			Trends:   healthFor(trendsRes.Source, trendsRes.Stale),
			Injuries: healthFor(injuriesRes.Source, injuriesRes.Stale),
			Schedule: healthFor(scheduleRes.Source, scheduleRes.Stale),
		},
	}
}

// raceSection runs the section get in its own goroutine and waits at most
// deadline for it. A late result is dropped, not cancelled: the fetch
// keeps running and its eventual cache write stays visible to later
// readers. A panic in the section degrades to the same fallback.
func raceSection[T any](ctx context.Context, s *Section[T], force bool, limit int, deadline time.Duration, log *logger.Logger) SectionResult[T] {
	done := make(chan SectionResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("section panicked",
					logger.String("domain", s.Domain()),
					logger.Any("panic", r))
				done <- SectionResult[T]{Source: SourceCache, Stale: true}
			}
		}()
		done <- s.Get(ctx, force, limit)
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()
	select {
	case res := <-done:
		return res
	case <-timer.C:
		log.Warn("section exceeded deadline, serving fallback",
			logger.String("domain", s.Domain()),
			logger.Duration("deadline", deadline))
		return SectionResult[T]{Source: SourceCache, Stale: true}
	}
}

// healthFor maps a section result onto the payload's health field.
func healthFor(source string, stale bool) models.SourceHealth {
	if !stale {
		return models.HealthOK
	}
	if source == SourceCache {
		return models.HealthStale
	}
	return models.HealthError
}

func emptyNotNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
