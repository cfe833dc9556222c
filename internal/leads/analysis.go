package leads

import (
	"github.com/sells-group/prospect-cli/internal/analyzer"
	"github.com/sells-group/prospect-cli/internal/competitive"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/opportunity"
	"github.com/sells-group/prospect-cli/internal/pricing"
	"github.com/sells-group/prospect-cli/internal/product"
	"github.com/sells-group/prospect-cli/internal/roi"
)

// Analyze runs every derived view for one institution against the full set
// (the set drives peer grouping) and bundles the results.
func Analyze(inst *model.Institution, all []model.Institution, opts Options) *model.Analysis {
	peers := analyzer.FindPeers(inst, all)
	pc := analyzer.Compare(inst, peers)
	growth := analyzer.Growth(inst, pc)
	tech := analyzer.Tech(inst, pc)
	buying := analyzer.Buying(inst, pc, opts.Assumptions)

	return &model.Analysis{
		Institution:     *inst,
		PeerComparison:  pc,
		Growth:          growth,
		Tech:            tech,
		Buying:          buying,
		Opportunity:     opportunity.BuildProfile(inst, pc, growth, tech, buying),
		Recommendations: product.Evaluate(inst),
		ROI:             *roi.Calculate(roi.DefaultInputs(inst)),
		Pricing:         pricing.Calculate(inst.TotalAssets, inst.Members),
		Competitive:     competitive.Analyze(inst),
	}
}
