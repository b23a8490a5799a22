package nbastats

import (
	"context"
	"fmt"

	"CourtPulse/internal/domain/models"
)

// Directory column positions in the commonallplayers result set.
const (
	colPlayerID    = 0
	colDisplayName = 2
	colActiveFlag  = 3
	colTeamCity    = 9
	colTeamName    = 10
)

// ActivePlayers fetches the league player directory and keeps only active
// players. Players without a team are labeled as free agents.
func (c *Client) ActivePlayers(ctx context.Context) ([]models.PlayerIdentity, error) {
	resp, err := c.getStats(ctx, "/commonallplayers", map[string][]string{
		"LeagueID":            {"00"},
		"Season":              {c.CurrentSeason()},
		"IsOnlyCurrentSeason": {"1"},
	})
	if err != nil {
		return nil, err
	}

	rows := resp.ResultSets[0].RowSet
	syncedAt := c.now()
	players := make([]models.PlayerIdentity, 0, len(rows))
	for _, row := range rows {
		if len(row) <= colTeamName {
			continue
		}
		if asFloat(row[colActiveFlag]) != 1 {
			continue
		}
		name := asString(row[colDisplayName])
		if name == "" {
			continue
		}
		team := asString(row[colTeamName])
		if team == "" {
			team = asString(row[colTeamCity])
		}
		if team == "" {
			team = freeAgentTeam
		}
		players = append(players, models.PlayerIdentity{
			ID:          asString(row[colPlayerID]),
			Name:        name,
			Team:        team,
			LastUpdated: syncedAt,
		})
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("nbastats: player directory came back empty")
	}
	return players, nil
}
