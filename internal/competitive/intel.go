package competitive

import (
	"fmt"
	"math"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Displacement difficulty parameters (1-10 scale).
const (
	baseDifficulty           = 3
	strongCoreDifficulty     = 3
	largeInstDifficulty      = 2
	highSatisfactionPenalty  = 2
	maxDifficulty            = 10
	largeInstAssetFloor      = 5_000_000_000
	greenfieldWinProbability = 85
)

// Infer buckets the institution purely on asset size and returns the
// plausible incumbent set for that band. No peer data required.
func Infer(inst *model.Institution) []model.CompetitorPresence {
	at := func(p model.CompetitorProfile, reason string) model.CompetitorPresence {
		return model.CompetitorPresence{Profile: p, Reason: reason}
	}

	switch {
	case inst.TotalAssets >= 5_000_000_000:
		return []model.CompetitorPresence{
			at(fiservDNA, "Tier-one cores dominate the $5B+ segment"),
			at(salesforceFSC, "Institutions this size almost always run an enterprise CRM"),
			at(tableauBI, "Likely has an internal BI team with generic tooling"),
		}
	case inst.TotalAssets >= 1_000_000_000:
		return []model.CompetitorPresence{
			at(jackHenry, "Symitar leads the $1B-$5B credit union core market"),
			at(tableauBI, "Point BI deployments are common at this size"),
		}
	case inst.TotalAssets >= 250_000_000:
		return []model.CompetitorPresence{
			at(corelation, "KeyStone wins heavily in the $250M-$1B band"),
			at(excelManual, "Analytics beyond core canned reports is usually manual here"),
		}
	default:
		return []model.CompetitorPresence{
			at(excelManual, "Sub-$250M institutions rarely have any analytics tooling"),
		}
	}
}

// Analyze derives the full competitive assessment for an institution.
func Analyze(inst *model.Institution) *model.CompetitiveIntel {
	presences := Infer(inst)

	var strongCore, highSat bool
	for _, p := range presences {
		if p.Profile.Category == model.CategoryCoreProvider && p.Profile.Strength == model.StrengthStrong {
			strongCore = true
		}
		if p.Profile.Satisfaction == model.ConfidenceHigh {
			highSat = true
		}
	}

	difficulty := baseDifficulty
	if strongCore {
		difficulty += strongCoreDifficulty
	}
	if inst.TotalAssets >= largeInstAssetFloor {
		difficulty += largeInstDifficulty
	}
	if highSat {
		difficulty += highSatisfactionPenalty
	}
	if difficulty > maxDifficulty {
		difficulty = maxDifficulty
	}

	cost := model.SwitchingLow
	switch {
	case strongCore && len(presences) >= 3:
		cost = model.SwitchingHigh
	case strongCore || len(presences) >= 3:
		cost = model.SwitchingMedium
	}

	return &model.CompetitiveIntel{
		Presences:              presences,
		SwitchingCost:          cost,
		DisplacementDifficulty: difficulty,
		WinProbabilityPct:      WinProbability(presences),
		RecommendedApproach:    approach(presences, cost),
	}
}

// WinProbability estimates the chance of winning the deal. No incumbents is
// greenfield; otherwise each competitor's catalog win rate is weighted by
// its satisfaction and strength.
func WinProbability(presences []model.CompetitorPresence) int {
	if len(presences) == 0 {
		return greenfieldWinProbability
	}

	var weighted, weights float64
	for _, p := range presences {
		w := 1.0
		switch p.Profile.Satisfaction {
		case model.ConfidenceLow:
			w *= 1.5
		case model.ConfidenceHigh:
			w *= 0.5
		}
		switch p.Profile.Strength {
		case model.StrengthStrong:
			w *= 0.8
		case model.StrengthWeak:
			w *= 1.2
		}
		weighted += float64(p.Profile.WinRatePct) * w
		weights += w
	}

	prob := int(math.Round(weighted / weights))
	if prob < 5 {
		prob = 5
	}
	if prob > 95 {
		prob = 95
	}
	return prob
}

func approach(presences []model.CompetitorPresence, cost model.SwitchingCost) string {
	if len(presences) == 0 {
		return "Greenfield account: lead with a fast pilot; no displacement required."
	}
	if cost == model.SwitchingHigh {
		return fmt.Sprintf("Entrenched stack (%d incumbents): run a coexistence play against the weakest link first.", len(presences))
	}

	weakest := presences[0]
	for _, p := range presences[1:] {
		if p.Profile.WinRatePct > weakest.Profile.WinRatePct {
			weakest = p
		}
	}
	return fmt.Sprintf("Target %s first: %s", weakest.Profile.Name, weakest.Profile.Messaging)
}
