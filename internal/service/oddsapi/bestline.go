package oddsapi

import (
	"strings"

	"CourtPulse/internal/domain/models"
)

var marketToProp = map[string]models.PropType{
	marketPoints:   models.PropPoints,
	marketRebounds: models.PropRebounds,
	marketAssists:  models.PropAssists,
}

// ExtractBestLines scans every quote on the board and keeps one canonical
// best line per (player, prop). A candidate replaces the incumbent only
// when its line is strictly lower (lower is better for an over bettor);
// the first book seen wins all ties.
func ExtractBestLines(events []Event) map[string]models.BestLine {
	best := make(map[string]models.BestLine)

	for _, event := range events {
		game := models.GameContext{
			HomeTeam:     event.HomeTeam,
			AwayTeam:     event.AwayTeam,
			CommenceTime: event.CommenceTime,
		}
		for _, book := range event.Bookmakers {
			for _, market := range book.Markets {
				prop, ok := marketToProp[market.Key]
				if !ok {
					continue
				}
				for _, outcome := range market.Outcomes {
					if !strings.EqualFold(outcome.Name, "over") {
						continue
					}
					if outcome.Description == "" || outcome.Point == nil {
						continue
					}

					playerName := NormalizePlayerName(outcome.Description)
					key := LineKey(playerName, prop)

					overOdds := 0.0
					if outcome.Price != nil {
						overOdds = *outcome.Price
					}

					candidate := models.BestLine{
						PlayerName: playerName,
						PropType:   prop,
						Line:       *outcome.Point,
						OverOdds:   overOdds,
						Book:       book.Title,
						Team:       attributeTeam(playerName, event.HomeTeam, event.AwayTeam),
						Game:       game,
					}

					existing, seen := best[key]
					if !seen || candidate.Line < existing.Line {
						best[key] = candidate
					}
				}
			}
		}
	}

	return best
}

// LineKey is the map key for one (player, prop) pair.
func LineKey(playerName string, prop models.PropType) string {
	return playerName + "|" + string(prop)
}

// NormalizePlayerName strips periods and title-cases each word so quotes
// from different books collapse to one stable key.
func NormalizePlayerName(raw string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ".", ""))
	parts := strings.Fields(cleaned)
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

// attributeTeam infers the player's team by matching the surname against
// the home team name. Surnames almost never appear in a team name, so
// everything else lands on the away team.
func attributeTeam(playerName, homeTeam, awayTeam string) string {
	parts := strings.Fields(playerName)
	if len(parts) > 0 && strings.Contains(homeTeam, parts[len(parts)-1]) {
		return homeTeam
	}
	return awayTeam
}
