// Package scoring turns raw per-game sample series into derived prop
// metrics. Everything here is pure and deterministic: no I/O, no clocks.
package scoring

import (
	"math"

	"CourtPulse/internal/domain/models"
)

const (
	weightHitRate     = 0.45
	weightConsistency = 0.30
	weightVolatility  = 0.15
	weightMomentum    = 0.10

	// Samples shorter than this are penalized 2 points per missing game.
	fullSampleSize = 8

	// Momentum needs at least a 3-game recent window plus some baseline.
	momentumMinSamples = 5
)

// Metrics holds every derived value for one (player, prop, line) sample.
type Metrics struct {
	HitRate     float64
	Consistency float64
	Volatility  float64
	Momentum    float64
	EdgeScore   float64
	RiskLevel   models.RiskLevel
	SampleSize  int
}

// Evaluate computes all derived metrics for a most-recent-first sample
// series against a threshold line. The edge score blends the unrounded hit
// rate; rounding happens only on the emitted values.
func Evaluate(values []float64, line float64) Metrics {
	consistency, volatility := ConsistencyVolatility(values)
	rawHit := HitRate(values, line)
	momentum := Momentum(values)
	m := Metrics{
		HitRate:     round1(rawHit),
		Consistency: consistency,
		Volatility:  volatility,
		Momentum:    momentum,
		SampleSize:  len(values),
	}
	m.EdgeScore = EdgeScore(rawHit, consistency, volatility, momentum, m.SampleSize)
	m.RiskLevel = RiskLevelFor(m.EdgeScore)
	return m
}

// HitRate is the percentage of samples strictly above the line, unrounded.
func HitRate(values []float64, line float64) float64 {
	if len(values) == 0 {
		return 0
	}
	over := 0
	for _, v := range values {
		if v > line {
			over++
		}
	}
	return float64(over) / float64(len(values)) * 100
}

// ConsistencyVolatility derives the inverse pair from the coefficient of
// variation. A zero mean is a degenerate sample: zero consistency, maximal
// volatility, so a division by zero can never look like a safe bet.
func ConsistencyVolatility(values []float64) (consistency, volatility float64) {
	if len(values) == 0 {
		return 0, 100
	}
	mean := average(values)
	if mean == 0 {
		return 0, 100
	}
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(values)))
	volatility = stddev / mean * 100
	consistency = math.Max(0, 100-volatility)
	return round1(consistency), round1(volatility)
}

// Momentum is the percent difference between the 3 most recent samples and
// the remaining baseline. Too-short series and zero baselines report 0.
func Momentum(values []float64) float64 {
	if len(values) < momentumMinSamples {
		return 0
	}
	recent := average(values[:3])
	baseline := average(values[3:])
	if baseline == 0 {
		return 0
	}
	return (recent - baseline) / baseline * 100
}

// EdgeScore blends the component metrics into a bounded [0,100] composite.
func EdgeScore(hitRate, consistency, volatility, momentum float64, sampleSize int) float64 {
	penalty := 0.0
	if sampleSize < fullSampleSize {
		penalty = float64(fullSampleSize-sampleSize) * 2
	}
	score := hitRate*weightHitRate +
		consistency*weightConsistency -
		volatility*weightVolatility +
		momentum*weightMomentum -
		penalty
	return round1(clamp(score, 0, 100))
}

// RiskLevelFor maps an edge score to its band.
func RiskLevelFor(edgeScore float64) models.RiskLevel {
	switch {
	case edgeScore >= 70:
		return models.RiskLow
	case edgeScore >= 50:
		return models.RiskMedium
	default:
		return models.RiskHigh
	}
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
