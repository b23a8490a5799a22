package nbastats

import (
	"context"
	"fmt"
	"strings"

	"CourtPulse/internal/domain/models"
	xutil "CourtPulse/pkg/util"
)

// GameLog fetches a player's regular-season game log for the current
// season, newest game first. Column positions in the playergamelog result
// set are not stable across endpoints, so rows are decoded by header name.
func (c *Client) GameLog(ctx context.Context, playerID, playerName string) ([]models.PlayerGame, error) {
	resp, err := c.getStats(ctx, "/playergamelog", map[string][]string{
		"PlayerID":   {playerID},
		"Season":     {c.CurrentSeason()},
		"SeasonType": {seasonTypeRegular},
	})
	if err != nil {
		return nil, err
	}

	set := resp.ResultSets[0]
	col := make(map[string]int, len(set.Headers))
	for i, h := range set.Headers {
		col[h] = i
	}
	maxCol := 0
	for _, required := range []string{"GAME_DATE", "MATCHUP", "MIN", "PTS", "REB", "AST"} {
		i, ok := col[required]
		if !ok {
			return nil, fmt.Errorf("nbastats: game log missing column %s", required)
		}
		if i > maxCol {
			maxCol = i
		}
	}

	games := make([]models.PlayerGame, 0, len(set.RowSet))
	for _, row := range set.RowSet {
		if len(row) <= maxCol {
			continue
		}
		team, opponent, isHome := parseMatchup(asString(row[col["MATCHUP"]]))
		games = append(games, models.PlayerGame{
			PlayerName: playerName,
			Team:       team,
			GameDate:   normalizeGameDate(asString(row[col["GAME_DATE"]])),
			Opponent:   opponent,
			IsHome:     isHome,
			Minutes:    int(asFloat(row[col["MIN"]])),
			Points:     asFloat(row[col["PTS"]]),
			Rebounds:   asFloat(row[col["REB"]]),
			Assists:    asFloat(row[col["AST"]]),
		})
	}
	return games, nil
}

// normalizeGameDate rewrites the feed's "APR 09, 2025" style dates as
// ISO "2025-04-09". Game dates sort chronologically in storage only in
// that form; the raw text orders by month name instead.
func normalizeGameDate(s string) string {
	if t, ok := xutil.ParseTime(s); ok {
		return t.Format("2006-01-02")
	}
	return s
}

// parseMatchup splits a stats.nba.com matchup string. Home games read
// "BOS vs. MIA", road games "BOS @ MIA".
func parseMatchup(matchup string) (team, opponent string, isHome bool) {
	if i := strings.Index(matchup, " vs. "); i >= 0 {
		return matchup[:i], matchup[i+len(" vs. "):], true
	}
	if i := strings.Index(matchup, " @ "); i >= 0 {
		return matchup[:i], matchup[i+len(" @ "):], false
	}
	return matchup, "", false
}
