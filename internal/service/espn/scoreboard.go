package espn

import (
	"context"
	"time"

	"CourtPulse/internal/domain/models"
	xutil "CourtPulse/pkg/util"
)

const (
	fallbackAwayTeam   = "Away"
	fallbackHomeTeam   = "Home"
	fallbackGameStatus = "Scheduled"
)

type scoreboardResponse struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	Date         string        `json:"date"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type eventStatus struct {
	Type struct {
		Name        string `json:"name"`
		ShortDetail string `json:"shortDetail"`
	} `json:"type"`
}

type competition struct {
	Status      eventStatus  `json:"status"`
	Competitors []competitor `json:"competitors"`
}

type competitor struct {
	HomeAway string  `json:"homeAway"`
	Team     teamRef `json:"team"`
}

// Scoreboard fetches the slate for the given YYYYMMDD date key.
func (c *Client) Scoreboard(ctx context.Context, dateKey string) ([]models.ScheduledGame, error) {
	var payload scoreboardResponse
	query := map[string][]string{"dates": {dateKey}}
	if err := c.getJSON(ctx, "/scoreboard", query, &payload); err != nil {
		return nil, err
	}

	items := make([]models.ScheduledGame, 0, len(payload.Events))
	for _, event := range payload.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]

		var home, away *competitor
		for i := range comp.Competitors {
			switch comp.Competitors[i].HomeAway {
			case "home":
				home = &comp.Competitors[i]
			case "away":
				away = &comp.Competitors[i]
			}
		}
		if home == nil || away == nil {
			continue
		}

		tipoff := xutil.NormalizeTimestamp(event.Date)
		if tipoff == "" {
			tipoff = c.now().UTC().Format(time.RFC3339)
		}
		gameDate := tipoff
		if len(gameDate) > 10 {
			gameDate = gameDate[:10]
		}

		items = append(items, models.ScheduledGame{
			AwayTeam:   firstNonEmpty(away.Team.DisplayName, away.Team.Abbreviation, fallbackAwayTeam),
			HomeTeam:   firstNonEmpty(home.Team.DisplayName, home.Team.Abbreviation, fallbackHomeTeam),
			TipoffTime: tipoff,
			GameStatus: firstNonEmpty(comp.Status.Type.ShortDetail, event.Status.Type.Name, fallbackGameStatus),
			GameDate:   gameDate,
		})
	}

	return items, nil
}

// TodayKey formats a time as the scoreboard's YYYYMMDD date parameter.
func TodayKey(t time.Time) string {
	return t.Format("20060102")
}
