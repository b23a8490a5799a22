package models

// SourceHealth summarizes per-domain data quality derived from the origin
// and staleness of the batch actually served.
type SourceHealth string

const (
	HealthOK    SourceHealth = "ok"
	HealthStale SourceHealth = "stale"
	HealthError SourceHealth = "error"
)

// ArcadeProp is a trend signal trimmed down for the per-game view.
type ArcadeProp struct {
	PlayerName string      `json:"playerName"`
	PropType   PropType    `json:"propType"`
	Line       float64     `json:"line"`
	BestBook   string      `json:"bestBook"`
	EdgeScore  float64     `json:"edgeScore"`
	HitRate    float64     `json:"hitRate"`
	Volatility float64     `json:"volatility"`
	SampleSize int         `json:"sampleSize"`
	RiskLevel  RiskLevel   `json:"riskLevel"`
	Game       GameContext `json:"game"`
}

// ArcadeFlags are coarse per-game indicators derived from the attached props.
type ArcadeFlags struct {
	HasLowVolatility bool `json:"hasLowVolatility"`
	HasStrongHitRate bool `json:"hasStrongHitRate"`
}

// ArcadeGame groups the trend signals belonging to one scheduled matchup.
type ArcadeGame struct {
	GameID     string       `json:"gameId"`
	AwayTeam   string       `json:"awayTeam"`
	HomeTeam   string       `json:"homeTeam"`
	TipoffTime string       `json:"tipoffTime"`
	GameStatus string       `json:"gameStatus"`
	TopProps   []ArcadeProp `json:"topProps"`
	AllProps   []ArcadeProp `json:"allProps"`
	ProxyFlags ArcadeFlags  `json:"proxyFlags"`
}

// HomePayload bundles all three domains plus the per-game composition.
type HomePayload struct {
	Trends      []TrendSignal   `json:"trends"`
	ArcadeGames []ArcadeGame    `json:"arcadeGames"`
	Injuries    []InjuryReport  `json:"injuries"`
	Schedule    []ScheduledGame `json:"schedule"`
	UpdatedAt   string          `json:"updatedAt"`
	Health      PayloadHealth   `json:"sourceHealth"`
}

// PayloadHealth is the per-domain health triple attached to a payload.
type PayloadHealth struct {
	Trends   SourceHealth `json:"trends"`
	Injuries SourceHealth `json:"injuries"`
	Schedule SourceHealth `json:"schedule"`
}
