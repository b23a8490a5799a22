package usecase

import (
	"context"
	"testing"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
)

func trendSection(t *testing.T, fetch FetchFunc[models.TrendSignal]) *Section[models.TrendSignal] {
	return NewSection[models.TrendSignal](DomainTrends, &memStore[models.TrendSignal]{}, fetch, testLogger(t), newCountingMetrics())
}

func injurySection(t *testing.T, fetch FetchFunc[models.InjuryReport]) *Section[models.InjuryReport] {
	return NewSection[models.InjuryReport](DomainInjuries, &memStore[models.InjuryReport]{}, fetch, testLogger(t), newCountingMetrics())
}

func scheduleSection(t *testing.T, fetch FetchFunc[models.ScheduledGame]) *Section[models.ScheduledGame] {
	return NewSection[models.ScheduledGame](DomainSchedule, &memStore[models.ScheduledGame]{}, fetch, testLogger(t), newCountingMetrics())
}

func TestHealthFor(t *testing.T) {
	cases := []struct {
		source string
		stale  bool
		want   models.SourceHealth
	}{
		{SourceLive, false, models.HealthOK},
		{SourceCache, false, models.HealthOK},
		{SourceCache, true, models.HealthStale},
		{SourceLive, true, models.HealthError},
	}
	for _, tc := range cases {
		if got := healthFor(tc.source, tc.stale); got != tc.want {
			t.Errorf("healthFor(%q, %v) = %q, want %q", tc.source, tc.stale, got, tc.want)
		}
	}
}

func TestAggregateAssemblesAllDomains(t *testing.T) {
	trends := trendSection(t, func(context.Context) ([]models.TrendSignal, error) {
		return []models.TrendSignal{{
			PlayerName: "Jayson Tatum",
			PropType:   models.PropPoints,
			EdgeScore:  80,
			Game:       models.GameContext{HomeTeam: "Boston Celtics", AwayTeam: "Miami Heat"},
		}}, nil
	})
	injuries := injurySection(t, func(context.Context) ([]models.InjuryReport, error) {
		return []models.InjuryReport{{PlayerName: "Kristaps Porzingis", Status: "out"}}, nil
	})
	schedule := scheduleSection(t, func(context.Context) ([]models.ScheduledGame, error) {
		return []models.ScheduledGame{{
			HomeTeam: "Boston Celtics",
			AwayTeam: "Miami Heat",
			GameDate: "2026-01-15",
		}}, nil
	})

	o := NewOrchestrator(trends, injuries, schedule, time.Second, 12, testLogger(t))
	payload := o.Aggregate(context.Background(), false)

	if len(payload.Trends) != 1 || len(payload.Injuries) != 1 || len(payload.Schedule) != 1 {
		t.Fatalf("payload counts: %d trends, %d injuries, %d schedule",
			len(payload.Trends), len(payload.Injuries), len(payload.Schedule))
	}
	if payload.Health.Trends != models.HealthOK || payload.Health.Injuries != models.HealthOK || payload.Health.Schedule != models.HealthOK {
		t.Fatalf("health: %+v", payload.Health)
	}
	if len(payload.ArcadeGames) != 1 {
		t.Fatalf("arcade games: %d", len(payload.ArcadeGames))
	}
	if len(payload.ArcadeGames[0].AllProps) != 1 {
		t.Fatalf("arcade props: %+v", payload.ArcadeGames[0])
	}
	if payload.UpdatedAt == "" {
		t.Fatal("updatedAt missing")
	}
}

func TestAggregateSlowDomainDegradesAlone(t *testing.T) {
	trends := trendSection(t, func(context.Context) ([]models.TrendSignal, error) {
		time.Sleep(500 * time.Millisecond)
		return []models.TrendSignal{{PlayerName: "late"}}, nil
	})
	injuries := injurySection(t, func(context.Context) ([]models.InjuryReport, error) {
		return []models.InjuryReport{{PlayerName: "Kristaps Porzingis"}}, nil
	})
	schedule := scheduleSection(t, func(context.Context) ([]models.ScheduledGame, error) {
		return []models.ScheduledGame{{HomeTeam: "Boston Celtics"}}, nil
	})

	o := NewOrchestrator(trends, injuries, schedule, 50*time.Millisecond, 12, testLogger(t))
	payload := o.Aggregate(context.Background(), false)

	if len(payload.Trends) != 0 {
		t.Fatalf("slow domain should serve empty fallback, got %d trends", len(payload.Trends))
	}
	if payload.Health.Trends != models.HealthStale {
		t.Fatalf("slow domain health = %q", payload.Health.Trends)
	}
	if payload.Health.Injuries != models.HealthOK || payload.Health.Schedule != models.HealthOK {
		t.Fatalf("other domains degraded too: %+v", payload.Health)
	}
}

func TestAggregateLateFetchStillWrites(t *testing.T) {
	store := &memStore[models.TrendSignal]{}
	wrote := make(chan struct{})
	trends := NewSection[models.TrendSignal](DomainTrends, store, func(context.Context) ([]models.TrendSignal, error) {
		time.Sleep(100 * time.Millisecond)
		defer close(wrote)
		return []models.TrendSignal{{PlayerName: "late"}}, nil
	}, testLogger(t), newCountingMetrics())
	injuries := injurySection(t, func(context.Context) ([]models.InjuryReport, error) { return nil, nil })
	schedule := scheduleSection(t, func(context.Context) ([]models.ScheduledGame, error) { return nil, nil })

	o := NewOrchestrator(trends, injuries, schedule, 20*time.Millisecond, 12, testLogger(t))
	o.Aggregate(context.Background(), false)

	select {
	case <-wrote:
	case <-time.After(time.Second):
		t.Fatal("deadline should not cancel the in-flight fetch")
	}
	deadline := time.Now().Add(time.Second)
	for store.appendCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("late fetch result was never persisted")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestAggregatePanickingDomainDegradesAlone(t *testing.T) {
	trends := trendSection(t, func(context.Context) ([]models.TrendSignal, error) {
		panic("boom")
	})
	injuries := injurySection(t, func(context.Context) ([]models.InjuryReport, error) {
		return []models.InjuryReport{{PlayerName: "ok"}}, nil
	})
	schedule := scheduleSection(t, func(context.Context) ([]models.ScheduledGame, error) { return nil, nil })

	o := NewOrchestrator(trends, injuries, schedule, time.Second, 12, testLogger(t))
	payload := o.Aggregate(context.Background(), false)

	if payload.Health.Trends != models.HealthStale {
		t.Fatalf("panicking domain health = %q", payload.Health.Trends)
	}
	if len(payload.Injuries) != 1 {
		t.Fatal("healthy domain lost its result")
	}
}

func TestAggregateNeverReturnsNilSlices(t *testing.T) {
	trends := trendSection(t, func(context.Context) ([]models.TrendSignal, error) { return nil, nil })
	injuries := injurySection(t, func(context.Context) ([]models.InjuryReport, error) { return nil, nil })
	schedule := scheduleSection(t, func(context.Context) ([]models.ScheduledGame, error) { return nil, nil })

	o := NewOrchestrator(trends, injuries, schedule, time.Second, 12, testLogger(t))
	payload := o.Aggregate(context.Background(), false)

	if payload.Trends == nil || payload.Injuries == nil || payload.Schedule == nil || payload.ArcadeGames == nil {
		t.Fatalf("nil slice in payload: %+v", payload)
	}
}

var _ repository.Metrics = (*countingMetrics)(nil)
