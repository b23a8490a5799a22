package models

// BestLine is the reduced "best board" entry for one (player, prop):
// the lowest posted over line across every book that quoted it. The raw
// quotes it was reduced from are ephemeral and never persisted.
type BestLine struct {
	PlayerName string
	PropType   PropType
	Line       float64
	OverOdds   float64
	Book       string
	Team       string
	Game       GameContext
}
