package usecase

import (
	"context"
	"fmt"
	"sort"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
	"CourtPulse/internal/scoring"
	"CourtPulse/internal/service/oddsapi"
	"CourtPulse/pkg/logger"
)

const recentGamesPerProp = 10

// OddsBoard fetches the current odds board.
type OddsBoard interface {
	Board(ctx context.Context) ([]oddsapi.Event, error)
}

// TrendsComputer builds scored trend signals: the odds board is reduced
// to best lines, each tracked player's recent sample is scored against
// the line for every prop market, and the strongest edges come out first.
type TrendsComputer struct {
	board      OddsBoard
	perf       repository.PerformanceStore
	log        *logger.Logger
	tracked    []string
	minSamples int
}

func NewTrendsComputer(board OddsBoard, perf repository.PerformanceStore, log *logger.Logger, tracked []string, minSamples int) *TrendsComputer {
	if minSamples <= 0 {
		minSamples = 5
	}
	return &TrendsComputer{
		board:      board,
		perf:       perf,
		log:        log,
		tracked:    tracked,
		minSamples: minSamples,
	}
}

// Compute produces the full list of scored signals, edge descending.
// Players without a posted line or with too small a sample are skipped,
// not errors.
func (t *TrendsComputer) Compute(ctx context.Context) ([]models.TrendSignal, error) {
	events, err := t.board.Board(ctx)
	if err != nil {
		return nil, fmt.Errorf("trends: odds board: %w", err)
	}
	lines := oddsapi.ExtractBestLines(events)
	if len(lines) == 0 {
		return nil, nil
	}

	var signals []models.TrendSignal
	for _, name := range t.tracked {
		normalized := oddsapi.NormalizePlayerName(name)

		games, err := t.perf.RecentGames(ctx, name, recentGamesPerProp)
		if err != nil {
			t.log.Warn("recent games unavailable, skipping player",
				logger.String("player", name), logger.Error(err))
			continue
		}
		if len(games) < t.minSamples {
			continue
		}

		for _, prop := range models.PropTypes {
			line, ok := lines[oddsapi.LineKey(normalized, prop)]
			if !ok {
				continue
			}
			signals = append(signals, t.score(name, prop, line, games))
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].EdgeScore > signals[j].EdgeScore
	})
	return signals, nil
}

func (t *TrendsComputer) score(name string, prop models.PropType, line models.BestLine, games []models.PlayerGame) models.TrendSignal {
	values := make([]float64, len(games))
	for i, g := range games {
		values[i] = g.StatValue(prop)
	}
	m := scoring.Evaluate(values, line.Line)

	team := line.Team
	if games[0].Team != "" {
		team = games[0].Team
	}

	return models.TrendSignal{
		PlayerName:  name,
		Team:        team,
		PropType:    prop,
		Line:        line.Line,
		BestBook:    line.Book,
		OverOdds:    line.OverOdds,
		HitRate:     m.HitRate,
		Consistency: m.Consistency,
		Volatility:  m.Volatility,
		EdgeScore:   m.EdgeScore,
		RiskLevel:   m.RiskLevel,
		SampleSize:  len(values),
		Game:        line.Game,
	}
}
