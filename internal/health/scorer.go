// Package health folds the current readings into a single 0-100 score.
package health

import "github.com/OldStager01/host-sentinel/pkg/models"

// penalty applies Major above High, otherwise Minor above Low.
type penalty struct {
	high, low    float64
	major, minor int
}

func (p penalty) apply(r models.Reading) int {
	v, ok := r.Get()
	if !ok {
		return 0
	}
	switch {
	case v > p.high:
		return p.major
	case v > p.low:
		return p.minor
	default:
		return 0
	}
}

var (
	cpuPenalty         = penalty{high: 90, low: 70, major: 25, minor: 10}
	ramPenalty         = penalty{high: 90, low: 70, major: 25, minor: 10}
	diskPenalty        = penalty{high: 95, low: 80, major: 20, minor: 10}
	temperaturePenalty = penalty{high: 85, low: 70, major: 15, minor: 5}
	processPenalty     = penalty{high: 500, low: 500, major: 5}
	zombiePenalty      = penalty{high: 0, low: 0, major: 10}
	connectionPenalty  = penalty{high: 1000, low: 1000, major: 5}
)

// Score is stateless: the same snapshot always yields the same score.
func Score(snap *models.RawSnapshot) int {
	score := 100
	score -= cpuPenalty.apply(snap.CPUPercent)
	score -= ramPenalty.apply(snap.RAMPercent)
	score -= diskPenalty.apply(snap.DiskPercent)
	score -= temperaturePenalty.apply(snap.Temperature)
	score -= processPenalty.apply(snap.ProcessCount)
	score -= zombiePenalty.apply(snap.ZombieCount)
	score -= connectionPenalty.apply(snap.ConnectionCount)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Scorer adapts Score for callers that hold a component value.
type Scorer struct{}

func (Scorer) Score(snap *models.RawSnapshot) int {
	return Score(snap)
}
