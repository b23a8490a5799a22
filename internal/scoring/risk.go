package scoring

// MomentumState classifies recent form against the overall average.
type MomentumState int

const (
	MomentumAverage MomentumState = iota
	MomentumHot
	MomentumCold
)

// MomentumStateFor compares the 3-game recent average with the overall
// sample average.
func MomentumStateFor(values []float64) MomentumState {
	if len(values) < 3 {
		return MomentumAverage
	}
	recent := average(values[:3])
	overall := average(values)
	switch {
	case recent > overall:
		return MomentumHot
	case recent < overall:
		return MomentumCold
	default:
		return MomentumAverage
	}
}

// RiskInput holds the independent factors the discrete risk score is
// accumulated from. OpponentDefenseRank <= 0 means unknown.
type RiskInput struct {
	Consistency         float64
	HitRate             float64
	Momentum            MomentumState
	SampleSize          int
	OpponentDefenseRank int
}

// RiskScore is the 0-100 discrete scale. It is deliberately independent of
// TrendSignal's RiskLevel: higher score means MORE risk, and the two scales
// are computed from different inputs for different call sites.
type RiskScore struct {
	Score   float64  `json:"score"`
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

// ComputeRiskScore accumulates integer risk points from each factor, then
// normalizes around a 50-point baseline in steps of 10.
func ComputeRiskScore(in RiskInput) RiskScore {
	var points int
	var factors []string

	if in.Consistency < 60 {
		points += 3
		factors = append(factors, "High volatility in performance")
	} else if in.Consistency < 75 {
		points += 1
		factors = append(factors, "Moderate performance variance")
	}

	if in.HitRate < 40 {
		points += 3
		factors = append(factors, "Low historical hit rate vs line")
	} else if in.HitRate > 70 {
		points -= 1
		factors = append(factors, "Strong historical hit rate")
	}

	switch in.Momentum {
	case MomentumCold:
		points += 2
		factors = append(factors, "Recent performance below average")
	case MomentumHot:
		points -= 1
		factors = append(factors, "Hot recent streak")
	}

	if in.SampleSize < 5 {
		points += 2
		factors = append(factors, "Limited sample size")
	}

	if in.OpponentDefenseRank > 0 && in.OpponentDefenseRank <= 10 {
		points += 2
		factors = append(factors, "Elite opposing defense")
	}

	score := clamp(50+float64(points)*10, 0, 100)

	level := "Low"
	if score >= 70 {
		level = "High"
	} else if score >= 40 {
		level = "Medium"
	}

	if len(factors) == 0 {
		factors = []string{"Standard risk profile"}
	}

	return RiskScore{Score: score, Level: level, Factors: factors}
}
