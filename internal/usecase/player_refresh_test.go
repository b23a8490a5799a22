package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/service/roster"
)

type fakeNameResolver struct {
	ids  map[string]string
	errs map[string]error
}

func (r *fakeNameResolver) Resolve(_ context.Context, name string) (*roster.Match, error) {
	if err := r.errs[name]; err != nil {
		return nil, err
	}
	id, ok := r.ids[name]
	if !ok {
		return nil, errors.New("no match")
	}
	return &roster.Match{Player: models.PlayerIdentity{ID: id, Name: name}}, nil
}

type fakeGameLog struct {
	games map[string][]models.PlayerGame
	errs  map[string]error
	calls []string
}

func (g *fakeGameLog) GameLog(_ context.Context, playerID, playerName string) ([]models.PlayerGame, error) {
	g.calls = append(g.calls, playerName)
	if err := g.errs[playerName]; err != nil {
		return nil, err
	}
	return g.games[playerName], nil
}

type capturePerf struct {
	batches [][]models.PlayerGame
	err     error
}

func (p *capturePerf) RecentGames(context.Context, string, int) ([]models.PlayerGame, error) {
	return nil, nil
}

func (p *capturePerf) AppendGames(_ context.Context, _ time.Time, games []models.PlayerGame) error {
	if p.err != nil {
		return p.err
	}
	p.batches = append(p.batches, games)
	return nil
}

func nGames(name string, n int) []models.PlayerGame {
	games := make([]models.PlayerGame, n)
	for i := range games {
		games[i] = models.PlayerGame{PlayerName: name, Points: float64(20 + i)}
	}
	return games
}

func TestUpdatePlayerStoresBatch(t *testing.T) {
	resolver := &fakeNameResolver{ids: map[string]string{"Jayson Tatum": "1628369"}}
	source := &fakeGameLog{games: map[string][]models.PlayerGame{"Jayson Tatum": nGames("Jayson Tatum", 10)}}
	perf := &capturePerf{}
	r := NewPlayerRefresher(resolver, source, perf, testLogger(t), nil, time.Millisecond, 0)

	count, err := r.UpdatePlayer(context.Background(), "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if count != 10 || len(perf.batches) != 1 {
		t.Fatalf("stored %d games in %d batches", count, len(perf.batches))
	}
}

func TestUpdatePlayerCapsBatchSize(t *testing.T) {
	resolver := &fakeNameResolver{ids: map[string]string{"Jayson Tatum": "1628369"}}
	source := &fakeGameLog{games: map[string][]models.PlayerGame{"Jayson Tatum": nGames("Jayson Tatum", 35)}}
	perf := &capturePerf{}
	r := NewPlayerRefresher(resolver, source, perf, testLogger(t), nil, time.Millisecond, 0)

	count, err := r.UpdatePlayer(context.Background(), "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if count != defaultGamesPerRun {
		t.Fatalf("stored %d games, want %d", count, defaultGamesPerRun)
	}
}

func TestUpdatePlayerHonorsConfiguredGamesPerRun(t *testing.T) {
	resolver := &fakeNameResolver{ids: map[string]string{"Jayson Tatum": "1628369"}}
	source := &fakeGameLog{games: map[string][]models.PlayerGame{"Jayson Tatum": nGames("Jayson Tatum", 35)}}
	perf := &capturePerf{}
	r := NewPlayerRefresher(resolver, source, perf, testLogger(t), nil, time.Millisecond, 5)

	count, err := r.UpdatePlayer(context.Background(), "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Fatalf("stored %d games, want the configured cap of 5", count)
	}
}

func TestUpdatePlayerEmptyLogIsAnError(t *testing.T) {
	resolver := &fakeNameResolver{ids: map[string]string{"Jayson Tatum": "1628369"}}
	source := &fakeGameLog{}
	r := NewPlayerRefresher(resolver, source, &capturePerf{}, testLogger(t), nil, time.Millisecond, 0)

	if _, err := r.UpdatePlayer(context.Background(), "Jayson Tatum"); err == nil {
		t.Fatal("empty game log should be an error")
	}
}

func TestUpdateTrackedContinuesPastFailures(t *testing.T) {
	resolver := &fakeNameResolver{
		ids:  map[string]string{"A": "1", "C": "3"},
		errs: map[string]error{"B": errors.New("no match")},
	}
	source := &fakeGameLog{games: map[string][]models.PlayerGame{
		"A": nGames("A", 5),
		"C": nGames("C", 5),
	}}
	perf := &capturePerf{}
	r := NewPlayerRefresher(resolver, source, perf, testLogger(t), []string{"A", "B", "C"}, time.Millisecond, 0)

	results := r.UpdateTracked(context.Background())
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Error != "" || results[0].Games != 5 {
		t.Fatalf("first result %+v", results[0])
	}
	if results[1].Error == "" {
		t.Fatal("second player should have failed")
	}
	if results[2].Error != "" || results[2].Games != 5 {
		t.Fatalf("third result %+v", results[2])
	}
	if len(perf.batches) != 2 {
		t.Fatalf("stored %d batches", len(perf.batches))
	}
}

func TestUpdateTrackedIsSerializedWithDelay(t *testing.T) {
	resolver := &fakeNameResolver{ids: map[string]string{"A": "1", "B": "2"}}
	source := &fakeGameLog{games: map[string][]models.PlayerGame{
		"A": nGames("A", 5),
		"B": nGames("B", 5),
	}}
	r := NewPlayerRefresher(resolver, source, &capturePerf{}, testLogger(t), []string{"A", "B"}, time.Hour, 0)

	var slept []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	r.UpdateTracked(context.Background())
	if len(slept) != 1 || slept[0] != time.Hour {
		t.Fatalf("slept %v, want one pause of 1h between two players", slept)
	}
	if len(source.calls) != 2 || source.calls[0] != "A" || source.calls[1] != "B" {
		t.Fatalf("call order %v", source.calls)
	}
}

func TestUpdateTrackedStopsSleepingOnCancel(t *testing.T) {
	resolver := &fakeNameResolver{ids: map[string]string{"A": "1", "B": "2"}}
	source := &fakeGameLog{games: map[string][]models.PlayerGame{"A": nGames("A", 5)}}
	r := NewPlayerRefresher(resolver, source, &capturePerf{}, testLogger(t), []string{"A", "B"}, time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := r.UpdateTracked(ctx)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[1].Error == "" {
		t.Fatal("cancelled sleep should fail the remaining player")
	}
}
