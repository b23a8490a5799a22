package usecase

import (
	"sort"
	"strings"

	"CourtPulse/internal/domain/models"
)

const (
	arcadeTopProps      = 2
	lowVolatilityCutoff = 35.0
	strongHitRateFloor  = 60.0
)

// BuildArcadeGames joins today's schedule with the trend signals by team
// name and derives the per-game view: props sorted edge descending with
// the top two highlighted, plus coarse quality flags.
func BuildArcadeGames(schedule []models.ScheduledGame, trends []models.TrendSignal) []models.ArcadeGame {
	games := make([]models.ArcadeGame, 0, len(schedule))

	for _, sched := range schedule {
		var props []models.ArcadeProp
		for _, trend := range trends {
			if !trendBelongsTo(sched, trend) {
				continue
			}
			props = append(props, models.ArcadeProp{
				PlayerName: trend.PlayerName,
				PropType:   trend.PropType,
				Line:       trend.Line,
				BestBook:   trend.BestBook,
				EdgeScore:  trend.EdgeScore,
				HitRate:    trend.HitRate,
				Volatility: trend.Volatility,
				SampleSize: trend.SampleSize,
				RiskLevel:  trend.RiskLevel,
				Game:       trend.Game,
			})
		}
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].EdgeScore > props[j].EdgeScore
		})

		top := props
		if len(top) > arcadeTopProps {
			top = top[:arcadeTopProps]
		}

		games = append(games, models.ArcadeGame{
			GameID:     gameIDFor(sched),
			AwayTeam:   sched.AwayTeam,
			HomeTeam:   sched.HomeTeam,
			TipoffTime: sched.TipoffTime,
			GameStatus: sched.GameStatus,
			TopProps:   top,
			AllProps:   props,
			ProxyFlags: flagsFor(props),
		})
	}
	return games
}

func flagsFor(props []models.ArcadeProp) models.ArcadeFlags {
	var flags models.ArcadeFlags
	for _, p := range props {
		if p.Volatility < lowVolatilityCutoff {
			flags.HasLowVolatility = true
		}
		if p.HitRate >= strongHitRateFloor {
			flags.HasStrongHitRate = true
		}
	}
	return flags
}

// trendBelongsTo joins a trend's game context to a scheduled game. Both
// sides must line up so a trend never attaches to a game it shares only
// one team with.
func trendBelongsTo(sched models.ScheduledGame, trend models.TrendSignal) bool {
	home := normalizeTeamName(sched.HomeTeam)
	away := normalizeTeamName(sched.AwayTeam)
	return teamNamesMatch(home, normalizeTeamName(trend.Game.HomeTeam)) &&
		teamNamesMatch(away, normalizeTeamName(trend.Game.AwayTeam))
}

// teamNamesMatch tolerates city-name variants by accepting containment
// either way ("la clippers" vs "los angeles clippers" share "clippers"
// only through their last word, so that is compared too).
func teamNamesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b || strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return lastWord(a) == lastWord(b)
}

func lastWord(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func normalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, ".", "")))
}

func gameIDFor(sched models.ScheduledGame) string {
	return slugTeam(sched.AwayTeam) + "-" + slugTeam(sched.HomeTeam) + "-" + sched.GameDate
}

func slugTeam(name string) string {
	return strings.ReplaceAll(normalizeTeamName(name), " ", "-")
}
