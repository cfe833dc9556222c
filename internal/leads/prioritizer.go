// Package leads runs the full scoring pipeline over an institution set and
// produces the ranked hot-leads view.
package leads

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/analyzer"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/opportunity"
	"github.com/sells-group/prospect-cli/internal/pricing"
	"github.com/sells-group/prospect-cli/internal/product"
	"github.com/sells-group/prospect-cli/internal/roi"
)

// Eligibility and bonus parameters.
const (
	minEligibleAssets = 50_000_000

	fitBonusBaseline = 70
	fitBonusFactor   = 0.5
	criticalRecBonus = 10
	highRecBonus     = 5
	criticalPriority = 85
	highPriority     = 75
	mediumPriority   = 65
)

// Options tunes a ranking pass.
type Options struct {
	// Assumptions feeds the buying-readiness signal; see analyzer.Assumptions.
	Assumptions analyzer.Assumptions
}

// Rank scores every eligible institution, sorts descending by priority, and
// returns the top limit leads with dense 1-based ranks. The full input set
// is used for peer grouping even when an institution is itself ineligible.
func Rank(insts []model.Institution, limit int, opts Options) []model.HotLead {
	var out []model.HotLead

	for i := range insts {
		inst := &insts[i]
		if !eligible(inst) {
			continue
		}
		out = append(out, score(inst, insts, opts))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}

	zap.L().Debug("leads: ranking complete",
		zap.Int("input", len(insts)),
		zap.Int("ranked", len(out)),
	)
	return out
}

func eligible(inst *model.Institution) bool {
	if inst.Status == model.StatusWon || inst.Status == model.StatusLost {
		return false
	}
	return inst.TotalAssets >= minEligibleAssets
}

// score runs the ordered pipeline for one institution: peers, signals,
// opportunity, products, ROI. The opportunity score feeds the priority
// score explicitly rather than through a shared field.
func score(inst *model.Institution, all []model.Institution, opts Options) model.HotLead {
	peers := analyzer.FindPeers(inst, all)
	pc := analyzer.Compare(inst, peers)
	growth := analyzer.Growth(inst, pc)
	tech := analyzer.Tech(inst, pc)
	buying := analyzer.Buying(inst, pc, opts.Assumptions)

	oppScore, _ := opportunity.Score(pc, growth, tech, buying)
	recs := product.Evaluate(inst)

	priority := oppScore + fitBonus(recs) + urgencyBonus(recs)
	if priority > 100 {
		priority = 100
	}
	if priority < 0 {
		priority = 0
	}

	proj := roi.Calculate(roi.DefaultInputs(inst))
	price := pricing.Calculate(inst.TotalAssets, inst.Members)

	return model.HotLead{
		Institution:        *inst,
		PriorityScore:      priority,
		UrgencyBucket:      bucket(priority, recs),
		Recommendations:    recs,
		BuyingSignals:      signalLabels(buying),
		EstimatedDealValue: price.AnnualPrice,
		ROISummary: model.ROISummary{
			AnnualROIPct:       proj.AnnualROIPct,
			PaybackMonths:      proj.PaybackMonths,
			TotalAnnualBenefit: proj.TotalAnnualBenefit,
		},
	}
}

// fitBonus rewards institutions whose top three product fits average above
// the baseline. Never negative.
func fitBonus(recs []model.ProductRecommendation) int {
	if len(recs) == 0 {
		return 0
	}
	n := len(recs)
	if n > 3 {
		n = 3
	}
	var sum int
	for _, r := range recs[:n] {
		sum += r.FitScore
	}
	avg := float64(sum) / float64(n)
	bonus := int((avg - fitBonusBaseline) * fitBonusFactor)
	if bonus < 0 {
		return 0
	}
	return bonus
}

func urgencyBonus(recs []model.ProductRecommendation) int {
	var hasHigh bool
	for _, r := range recs {
		switch r.Urgency {
		case model.UrgencyCritical:
			return criticalRecBonus
		case model.UrgencyHigh:
			hasHigh = true
		}
	}
	if hasHigh {
		return highRecBonus
	}
	return 0
}

// bucket assigns the hot-leads urgency bucket from the priority score and
// the recommendation mix.
func bucket(priority int, recs []model.ProductRecommendation) model.LeadBucket {
	var hasCritical, hasHigh bool
	for _, r := range recs {
		switch r.Urgency {
		case model.UrgencyCritical:
			hasCritical = true
		case model.UrgencyHigh:
			hasHigh = true
		}
	}

	switch {
	case hasCritical && priority >= criticalPriority:
		return model.BucketCritical
	case (hasCritical || hasHigh) && priority >= highPriority:
		return model.BucketHigh
	case priority >= mediumPriority:
		return model.BucketMedium
	default:
		return model.BucketStandard
	}
}

func signalLabels(s model.SignalScore) []string {
	labels := make([]string, 0, len(s.Indicators))
	for _, ind := range s.Indicators {
		labels = append(labels, ind.Label)
	}
	return labels
}
