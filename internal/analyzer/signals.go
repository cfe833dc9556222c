package analyzer

import (
	"fmt"

	"github.com/sells-group/prospect-cli/internal/model"
)

// highGrowthStates lists states with sustained deposit and population
// growth. Loaded once; never mutated.
var highGrowthStates = map[string]bool{
	"TX": true, "FL": true, "AZ": true, "NC": true, "GA": true, "TN": true,
	"ID": true, "UT": true, "NV": true, "SC": true, "CO": true, "WA": true,
}

// Assumptions carries CRM-style inputs the public feeds don't report. The
// caller decides whether to supply real or simulated values; scoring itself
// stays deterministic.
type Assumptions struct {
	// BudgetSeason marks institutions currently in their annual planning
	// window, which raises buying readiness.
	BudgetSeason bool
}

const signalBase = 50

// signalBuilder accumulates additive rule deltas into a clamped score.
type signalBuilder struct {
	score      int
	indicators []model.Indicator
}

func (b *signalBuilder) add(delta int, typ, label string, impact model.Impact) {
	b.score += delta
	b.indicators = append(b.indicators, model.Indicator{Type: typ, Label: label, Impact: impact})
}

func (b *signalBuilder) build() model.SignalScore {
	s := b.score
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return model.SignalScore{Score: s, Indicators: b.indicators}
}

// Growth scores expansion potential from asset scale, profitability,
// geography, and peer standing.
func Growth(inst *model.Institution, pc model.PeerComparison) model.SignalScore {
	b := &signalBuilder{score: signalBase}

	switch {
	case inst.TotalAssets >= 1_000_000_000:
		b.add(15, "scale", fmt.Sprintf("%s in assets supports a multi-product expansion", formatAssets(inst.TotalAssets)), model.ImpactHigh)
	case inst.TotalAssets >= 250_000_000:
		b.add(10, "scale", fmt.Sprintf("Mid-size balance sheet (%s) with room to grow", formatAssets(inst.TotalAssets)), model.ImpactMedium)
	case inst.TotalAssets < 50_000_000:
		b.add(-10, "scale", "Sub-$50M asset base limits near-term growth", model.ImpactLow)
	}

	switch {
	case inst.ROA >= 1.2:
		b.add(15, "profitability", fmt.Sprintf("Strong %.2f%% ROA funds reinvestment", inst.ROA), model.ImpactHigh)
	case inst.ROA >= 0.8:
		b.add(8, "profitability", fmt.Sprintf("Healthy %.2f%% ROA", inst.ROA), model.ImpactMedium)
	case inst.ROA > 0 && inst.ROA < 0.3:
		b.add(-10, "profitability", fmt.Sprintf("Thin %.2f%% ROA constrains spending", inst.ROA), model.ImpactLow)
	}

	if highGrowthStates[inst.State] {
		b.add(10, "geography", fmt.Sprintf("%s is a high-growth market", inst.State), model.ImpactMedium)
	}

	if inst.IsCreditUnion() && inst.Members >= 100_000 {
		b.add(8, "membership", fmt.Sprintf("%d members signals an expanding field of membership", inst.Members), model.ImpactMedium)
	}

	if pc.Percentile >= 75 {
		b.add(5, "peer_standing", "Top quartile of asset-similar peers", model.ImpactLow)
	}

	return b.build()
}

// Tech scores how badly the institution has outgrown its current tooling.
func Tech(inst *model.Institution, pc model.PeerComparison) model.SignalScore {
	b := &signalBuilder{score: signalBase}

	switch {
	case inst.Branches >= 20:
		b.add(12, "branch_network", fmt.Sprintf("%d branches need consolidated cross-branch reporting", inst.Branches), model.ImpactHigh)
	case inst.Branches >= 8:
		b.add(8, "branch_network", fmt.Sprintf("%d-branch footprint adds reporting overhead", inst.Branches), model.ImpactMedium)
	}

	switch {
	case inst.TotalAssets >= 100_000_000 && inst.TotalAssets <= 2_000_000_000:
		b.add(15, "tooling_gap", "Size range where institutions typically outgrow entry-level tools", model.ImpactHigh)
	case inst.TotalAssets > 2_000_000_000:
		b.add(8, "tooling_gap", "Large institutions carry legacy system integration debt", model.ImpactMedium)
	}

	if inst.IsCreditUnion() {
		switch {
		case inst.Members >= 50_000:
			b.add(10, "member_data", fmt.Sprintf("%d members generate data volume beyond spreadsheet analysis", inst.Members), model.ImpactHigh)
		case inst.Members >= 10_000:
			b.add(6, "member_data", "Member base large enough to benefit from segmentation analytics", model.ImpactMedium)
		}
	} else if inst.TotalAssets >= 500_000_000 {
		b.add(8, "commercial_reporting", "Commercial lending book carries a heavy reporting burden", model.ImpactMedium)
	}

	return b.build()
}

// Buying scores readiness to purchase from peer underperformance, margin
// pressure, budget authority, and timing.
func Buying(inst *model.Institution, pc model.PeerComparison, a Assumptions) model.SignalScore {
	b := &signalBuilder{score: signalBase}

	if pc.PeerCount > 0 && pc.Percentile < 40 {
		b.add(15, "peer_pressure", fmt.Sprintf("Trails peer group at the %dth percentile", pc.Percentile), model.ImpactHigh)
		if pc.Percentile < 25 {
			b.add(5, "peer_pressure", "Bottom quartile creates board-level urgency", model.ImpactMedium)
		}
	}

	if inst.ROA > 0 && inst.ROA < 0.5 {
		b.add(12, "margin_pressure", fmt.Sprintf("%.2f%% ROA puts pressure on the efficiency ratio", inst.ROA), model.ImpactHigh)
	}

	if inst.TotalAssets >= 500_000_000 {
		b.add(8, "budget_authority", "Asset size implies a dedicated technology budget", model.ImpactMedium)
	}

	if len(pc.BelowAverage) > 0 {
		b.add(5, "peer_gaps", fmt.Sprintf("Below peer average on %d metrics", len(pc.BelowAverage)), model.ImpactLow)
	}

	if a.BudgetSeason {
		b.add(8, "timing", "Inside the annual budget planning window", model.ImpactMedium)
	}

	return b.build()
}

func formatAssets(v int64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", float64(v)/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.0fM", float64(v)/1_000_000)
	default:
		return fmt.Sprintf("$%d", v)
	}
}
