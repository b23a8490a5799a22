package roster

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/pkg/logger"
)

type fakeStore struct {
	players  []models.PlayerIdentity
	replaced int
	readErr  error
}

func (s *fakeStore) Current(_ context.Context) ([]models.PlayerIdentity, error) {
	return s.players, s.readErr
}

func (s *fakeStore) ReplaceAll(_ context.Context, syncedAt time.Time, players []models.PlayerIdentity) error {
	s.replaced++
	s.players = players
	return nil
}

type fakeDirectory struct {
	players []models.PlayerIdentity
	err     error
	calls   int
}

func (d *fakeDirectory) ActivePlayers(_ context.Context) ([]models.PlayerIdentity, error) {
	d.calls++
	return d.players, d.err
}

type fakeMetrics struct {
	lookups    []string
	rosterSize int
}

func (m *fakeMetrics) SectionServed(string, string, bool)      {}
func (m *fakeMetrics) SectionDuration(string, time.Duration)   {}
func (m *fakeMetrics) UpstreamError(string)                    {}
func (m *fakeMetrics) ResolverLookup(result string)            { m.lookups = append(m.lookups, result) }
func (m *fakeMetrics) RosterSize(n int)                        { m.rosterSize = n }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func identity(id, name, team string, updated time.Time) models.PlayerIdentity {
	return models.PlayerIdentity{ID: id, Name: name, Team: team, LastUpdated: updated}
}

func TestResolveExactIsCaseInsensitive(t *testing.T) {
	now := time.Now()
	store := &fakeStore{players: []models.PlayerIdentity{
		identity("1", "Jayson Tatum", "Celtics", now),
		identity("2", "Jaylen Brown", "Celtics", now),
	}}
	m := &fakeMetrics{}
	r := NewResolver(nil, store, &fakeDirectory{}, testLogger(t), m, time.Hour, 0.5)

	match, err := r.Resolve(context.Background(), "jAYSON tATUM")
	if err != nil {
		t.Fatal(err)
	}
	if match.MatchType != matchExact || match.Player.ID != "1" {
		t.Fatalf("got %s match on player %s", match.MatchType, match.Player.ID)
	}
	if match.Confidence != 1 {
		t.Fatalf("exact match confidence = %v", match.Confidence)
	}
	if len(m.lookups) != 1 || m.lookups[0] != matchExact {
		t.Fatalf("recorded lookups %v", m.lookups)
	}
}

func TestResolveFuzzyAboveThreshold(t *testing.T) {
	now := time.Now()
	store := &fakeStore{players: []models.PlayerIdentity{
		identity("1", "Jayson Tatum", "Celtics", now),
		identity("2", "Nikola Jokic", "Nuggets", now),
	}}
	r := NewResolver(nil, store, &fakeDirectory{}, testLogger(t), &fakeMetrics{}, time.Hour, 0.5)

	match, err := r.Resolve(context.Background(), "Jason Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if match.MatchType != matchFuzzy || match.Player.ID != "1" {
		t.Fatalf("got %s match on player %s", match.MatchType, match.Player.ID)
	}
	if match.Confidence <= 0.5 || match.Confidence >= 1 {
		t.Fatalf("fuzzy confidence out of range: %v", match.Confidence)
	}
}

func TestResolveMissBelowThreshold(t *testing.T) {
	now := time.Now()
	store := &fakeStore{players: []models.PlayerIdentity{
		identity("1", "Jayson Tatum", "Celtics", now),
	}}
	m := &fakeMetrics{}
	directory := &fakeDirectory{players: store.players}
	r := NewResolver(nil, store, directory, testLogger(t), m, time.Hour, 0.5)

	if _, err := r.Resolve(context.Background(), "Zzz Qqq"); err == nil {
		t.Fatal("expected a miss")
	}
	if len(m.lookups) == 0 || m.lookups[len(m.lookups)-1] != matchMiss {
		t.Fatalf("recorded lookups %v", m.lookups)
	}
}

func TestResolveSyncsWhenStoredRosterExpired(t *testing.T) {
	stale := time.Now().Add(-48 * time.Hour)
	store := &fakeStore{players: []models.PlayerIdentity{
		identity("1", "Old Name", "Celtics", stale),
	}}
	directory := &fakeDirectory{players: []models.PlayerIdentity{
		identity("2", "Jayson Tatum", "Celtics", time.Now()),
	}}
	m := &fakeMetrics{}
	r := NewResolver(nil, store, directory, testLogger(t), m, 24*time.Hour, 0.5)

	match, err := r.Resolve(context.Background(), "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if match.Player.ID != "2" {
		t.Fatalf("resolved against stale roster, got player %s", match.Player.ID)
	}
	if directory.calls != 1 || store.replaced != 1 {
		t.Fatalf("directory calls %d, store replacements %d", directory.calls, store.replaced)
	}
	if m.rosterSize != 1 {
		t.Fatalf("roster size gauge %d", m.rosterSize)
	}
}

func TestResolveFallsBackToLiveDirectoryOnStoreFailure(t *testing.T) {
	store := &fakeStore{readErr: errors.New("clickhouse down")}
	directory := &fakeDirectory{players: []models.PlayerIdentity{
		identity("1", "Jayson Tatum", "Celtics", time.Now()),
	}}
	r := NewResolver(nil, store, directory, testLogger(t), &fakeMetrics{}, time.Hour, 0.5)

	match, err := r.Resolve(context.Background(), "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if match.Player.ID != "1" {
		t.Fatalf("got player %s", match.Player.ID)
	}
}

func TestPhotoURL(t *testing.T) {
	if got := PhotoURL(""); got != placeholderPhoto {
		t.Fatalf("empty id gave %q", got)
	}
	if got := PhotoURL("1628369"); !strings.Contains(got, "1628369.png") {
		t.Fatalf("headshot url %q", got)
	}
}
