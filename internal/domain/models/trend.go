package models

// PropType identifies the player prop market a signal refers to.
type PropType string

const (
	PropPoints   PropType = "points"
	PropRebounds PropType = "rebounds"
	PropAssists  PropType = "assists"
)

// PropTypes lists every market the trends pipeline evaluates.
var PropTypes = []PropType{PropPoints, PropRebounds, PropAssists}

// RiskLevel buckets an edge score into a coarse confidence band.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// GameContext carries the matchup a signal belongs to.
type GameContext struct {
	HomeTeam     string `json:"homeTeam"`
	AwayTeam     string `json:"awayTeam"`
	CommenceTime string `json:"commenceTime"`
}

// TrendSignal is one scored player prop: the best posted line across books
// plus the derived metrics computed from the player's recent sample.
type TrendSignal struct {
	PlayerName  string      `json:"playerName"`
	Team        string      `json:"team"`
	PropType    PropType    `json:"propType"`
	Line        float64     `json:"line"`
	BestBook    string      `json:"bestBook"`
	OverOdds    float64     `json:"overOdds"`
	HitRate     float64     `json:"hitRate"`
	Consistency float64     `json:"consistency"`
	Volatility  float64     `json:"volatility"`
	EdgeScore   float64     `json:"edgeScore"`
	RiskLevel   RiskLevel   `json:"riskLevel"`
	SampleSize  int         `json:"sampleSize"`
	Game        GameContext `json:"game"`
}
