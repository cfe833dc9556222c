// Package opportunity combines signal scores into one weighted opportunity
// score, assigns a pipeline tier, and builds the supporting sales narrative.
package opportunity

import (
	"math"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Component weights. Tech need and buying readiness dominate; peer standing
// is a tiebreaker.
const (
	growthWeight     = 0.25
	techWeight       = 0.30
	buyingWeight     = 0.30
	percentileWeight = 0.15
)

// Tier thresholds, inclusive on the lower bound.
const (
	hotFloor     = 80
	warmFloor    = 65
	nurtureFloor = 50
)

// Score combines the three signal scores and the peer percentile into a
// single 0-100 opportunity score and its tier.
func Score(pc model.PeerComparison, growth, tech, buying model.SignalScore) (int, model.Tier) {
	raw := float64(growth.Score)*growthWeight +
		float64(tech.Score)*techWeight +
		float64(buying.Score)*buyingWeight +
		float64(pc.Percentile)*percentileWeight

	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score, tierFor(score)
}

func tierFor(score int) model.Tier {
	switch {
	case score >= hotFloor:
		return model.TierHot
	case score >= warmFloor:
		return model.TierWarm
	case score >= nurtureFloor:
		return model.TierNurture
	default:
		return model.TierCold
	}
}
