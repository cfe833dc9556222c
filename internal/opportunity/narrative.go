package opportunity

import (
	"fmt"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/pricing"
)

// BuildProfile assembles the full opportunity profile for an institution:
// score, tier, and the deterministic narrative the sales team reads.
func BuildProfile(inst *model.Institution, pc model.PeerComparison, growth, tech, buying model.SignalScore) *model.OpportunityProfile {
	score, tier := Score(pc, growth, tech, buying)

	p := &model.OpportunityProfile{
		Score:         score,
		Tier:          tier,
		Approach:      approachFor(tier, inst),
		DealSizeRange: dealSizeRange(inst),
	}

	p.TalkingPoints = talkingPoints(inst, pc, tech)
	p.Challenges = challenges(inst, tier)

	return p
}

func approachFor(tier model.Tier, inst *model.Institution) string {
	switch tier {
	case model.TierHot:
		return fmt.Sprintf("Direct executive outreach: lead with the analytics gap at %s and propose a 30-minute ROI review this quarter.", inst.Name)
	case model.TierWarm:
		return "Consultative sell: open with a peer benchmarking report, then schedule a discovery call with the operations lead."
	case model.TierNurture:
		return "Drip sequence: quarterly industry benchmarks and webinar invitations until a buying trigger appears."
	default:
		return "Low-touch monitoring: annual check-in; revisit if assets or branch count change materially."
	}
}

func talkingPoints(inst *model.Institution, pc model.PeerComparison, tech model.SignalScore) []string {
	var pts []string

	if inst.TotalAssets >= 1_000_000_000 {
		pts = append(pts, fmt.Sprintf("Institutions over $1B typically run 4+ disconnected reporting systems; %s is likely no exception.", inst.Name))
	} else {
		pts = append(pts, "Right-sized platform pricing: no enterprise minimums for community institutions.")
	}

	if tech.Score >= 70 {
		pts = append(pts, "Their operational complexity suggests manual reporting is already a board-level pain point.")
	}

	if len(pc.BelowAverage) > 0 {
		pts = append(pts, fmt.Sprintf("They trail peer averages on %d metrics - benchmarking data is a natural door opener.", len(pc.BelowAverage)))
	}

	if pc.Percentile >= 75 {
		pts = append(pts, "A peer-group leader: position analytics as how they stay ahead, not catch up.")
	}

	return pts
}

func challenges(inst *model.Institution, tier model.Tier) []string {
	var ch []string

	if inst.TotalAssets >= 5_000_000_000 {
		ch = append(ch, "Likely has an entrenched enterprise vendor; expect a long displacement cycle.")
	}
	if inst.TotalAssets < 100_000_000 {
		ch = append(ch, "Limited technology budget; the essential tier is the only realistic entry point.")
	}
	if tier == model.TierCold || tier == model.TierNurture {
		ch = append(ch, "No active buying signals yet; pushing a demo now risks burning the contact.")
	}
	if len(ch) == 0 {
		ch = append(ch, "Committee-driven purchase process; plan for a 90-120 day evaluation.")
	}

	return ch
}

// dealSizeRange brackets the expected annual contract value around the
// recommended subscription price.
func dealSizeRange(inst *model.Institution) string {
	p := pricing.Calculate(inst.TotalAssets, inst.Members)
	low := p.AnnualPrice * 80 / 100
	high := p.AnnualPrice * 120 / 100
	return fmt.Sprintf("$%dK-$%dK/yr", low/1000, high/1000)
}
