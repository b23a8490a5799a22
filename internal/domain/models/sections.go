package models

// InjuryReport is one upstream injury entry after normalization.
type InjuryReport struct {
	PlayerName string `json:"playerName"`
	Team       string `json:"team"`
	Injury     string `json:"injury"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updatedAt"`
	Source     string `json:"source"`
}

// ScheduledGame is one entry of today's slate.
type ScheduledGame struct {
	AwayTeam   string `json:"awayTeam"`
	HomeTeam   string `json:"homeTeam"`
	TipoffTime string `json:"tipoffTime"`
	GameStatus string `json:"gameStatus"`
	GameDate   string `json:"gameDate"`
}

// PlayerGame is a single game stat line for one player.
type PlayerGame struct {
	PlayerName string  `json:"player_name"`
	Team       string  `json:"team"`
	GameDate   string  `json:"game_date"`
	Opponent   string  `json:"opponent"`
	IsHome     bool    `json:"is_home"`
	Minutes    int     `json:"minutes_played"`
	Points     float64 `json:"points"`
	Rebounds   float64 `json:"rebounds"`
	Assists    float64 `json:"assists"`
}

// StatValue returns the game's value for a prop market.
func (g PlayerGame) StatValue(prop PropType) float64 {
	switch prop {
	case PropRebounds:
		return g.Rebounds
	case PropAssists:
		return g.Assists
	default:
		return g.Points
	}
}
