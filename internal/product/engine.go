package product

import (
	"fmt"
	"sort"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/pricing"
	"github.com/sells-group/prospect-cli/internal/roi"
)

// Evaluate scores every applicable catalog product for the institution and
// returns recommendations sorted descending by fit score. The sort is
// stable, so equal scores keep catalog order. The first element is the top
// product.
func Evaluate(inst *model.Institution) []model.ProductRecommendation {
	var recs []model.ProductRecommendation

	for _, p := range catalog {
		var rec *model.ProductRecommendation
		switch p.ID {
		case "analytics-platform":
			rec = evalAnalyticsPlatform(inst, p)
		case "member-360":
			rec = evalMember360(inst, p)
		case "lending-analytics":
			rec = evalLendingAnalytics(inst, p)
		case "compliance-suite":
			rec = evalComplianceSuite(inst, p)
		case "marketing-insights":
			rec = evalMarketingInsights(inst, p)
		case "data-warehouse":
			rec = evalDataWarehouse(inst, p)
		}
		if rec != nil {
			recs = append(recs, *rec)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].FitScore > recs[j].FitScore
	})
	return recs
}

// LoanPortfolio estimates the institution's loan book at 65% of assets.
func LoanPortfolio(inst *model.Institution) int64 {
	return int64(float64(inst.TotalAssets) * loanPortfolioPctAssets)
}

// evalAnalyticsPlatform applies to everyone; it is the flagship entry
// product. Its impact statement embeds the computed ROI and pricing so the
// rep can quote numbers without a separate lookup.
func evalAnalyticsPlatform(inst *model.Institution, p Product) *model.ProductRecommendation {
	rec := &model.ProductRecommendation{ProductID: p.ID, ProductName: p.Name}

	switch {
	case inst.TotalAssets >= 1_000_000_000:
		rec.FitScore, rec.Urgency = 95, model.UrgencyCritical
		rec.WhyNeeded = []string{
			fmt.Sprintf("At %s in assets, %s is past the point where spreadsheet reporting scales.", fmtAssets(inst.TotalAssets), inst.Name),
			"Board reporting at this size typically consumes 150+ staff hours per month.",
		}
	case inst.TotalAssets >= 250_000_000:
		rec.FitScore, rec.Urgency = 85, model.UrgencyHigh
		rec.WhyNeeded = []string{
			fmt.Sprintf("%s (%s in assets) sits in the band where entry-level tools stop keeping up.", inst.Name, fmtAssets(inst.TotalAssets)),
		}
	default:
		rec.FitScore, rec.Urgency = 70, model.UrgencyMedium
		rec.WhyNeeded = []string{
			"A right-sized analytics foundation that grows with the institution.",
		}
	}

	rec.Benefits = []string{
		"Single source of truth across core, lending, and deposit data",
		"Automated board and ALCO reporting packages",
	}
	rec.PainPoints = []string{
		"Manual month-end reporting cycles",
		"Conflicting numbers between departments",
	}

	proj := roi.Calculate(roi.DefaultInputs(inst))
	price := pricing.Calculate(inst.TotalAssets, inst.Members)
	rec.Impact = fmt.Sprintf(
		"Projected %d%% annual ROI with payback in %d months at the %s tier ($%d/mo).",
		proj.AnnualROIPct, proj.PaybackMonths, price.Tier, price.MonthlyPrice,
	)
	return rec
}

func evalMember360(inst *model.Institution, p Product) *model.ProductRecommendation {
	bankPath := inst.Type == model.CommunityBank && inst.TotalAssets >= member360BankMinAssets
	if inst.Members < member360MinMembers && !bankPath {
		return nil
	}

	rec := &model.ProductRecommendation{ProductID: p.ID, ProductName: p.Name}
	switch {
	case inst.Members >= 150_000:
		rec.FitScore, rec.Urgency = 95, model.UrgencyCritical
		rec.WhyNeeded = []string{
			fmt.Sprintf("%d members is far beyond what manual segmentation can serve.", inst.Members),
		}
	case inst.Members >= 75_000:
		rec.FitScore, rec.Urgency = 90, model.UrgencyHigh
		rec.WhyNeeded = []string{
			fmt.Sprintf("With %d members, untargeted outreach leaves measurable wallet share behind.", inst.Members),
		}
	case inst.Members >= member360MinMembers:
		rec.FitScore, rec.Urgency = 82, model.UrgencyHigh
		rec.WhyNeeded = []string{
			fmt.Sprintf("%d members is the scale where a unified member view starts paying for itself.", inst.Members),
		}
	default: // bank path
		rec.FitScore, rec.Urgency = 78, model.UrgencyMedium
		rec.WhyNeeded = []string{
			fmt.Sprintf("A %s bank has the customer depth for 360-degree relationship profiling.", fmtAssets(inst.TotalAssets)),
		}
	}

	rec.Benefits = []string{
		"Household-level relationship view",
		"Attrition early-warning scoring",
	}
	rec.PainPoints = []string{
		"No visibility into single-product members",
		"Reactive attrition management",
	}
	rec.Impact = "Institutions typically lift products-per-member 8-12% in the first year."
	return rec
}

func evalLendingAnalytics(inst *model.Institution, p Product) *model.ProductRecommendation {
	portfolio := LoanPortfolio(inst)
	if portfolio < lendingMinPortfolio {
		return nil
	}

	rec := &model.ProductRecommendation{ProductID: p.ID, ProductName: p.Name}
	switch {
	case portfolio >= 1_000_000_000:
		rec.FitScore, rec.Urgency = 92, model.UrgencyCritical
		rec.WhyNeeded = []string{
			fmt.Sprintf("An estimated %s loan portfolio needs concentration and vintage analysis no spreadsheet delivers.", fmtAssets(portfolio)),
		}
	case portfolio >= 500_000_000:
		rec.FitScore, rec.Urgency = 85, model.UrgencyHigh
		rec.WhyNeeded = []string{
			fmt.Sprintf("At an estimated %s in loans, basis-point improvements in loss rates are material.", fmtAssets(portfolio)),
		}
	default:
		rec.FitScore, rec.Urgency = 75, model.UrgencyMedium
		rec.WhyNeeded = []string{
			fmt.Sprintf("An estimated %s portfolio justifies dedicated delinquency and pricing analytics.", fmtAssets(portfolio)),
		}
	}

	rec.Benefits = []string{
		"Portfolio concentration and vintage curves out of the box",
		"Early delinquency-risk flags",
	}
	rec.PainPoints = []string{
		"Quarter-end surprises in credit quality",
		"Hand-built CECL support schedules",
	}
	rec.Impact = "A 10% reduction in loan losses typically exceeds the platform subscription several times over."
	return rec
}

func evalComplianceSuite(inst *model.Institution, p Product) *model.ProductRecommendation {
	rec := &model.ProductRecommendation{ProductID: p.ID, ProductName: p.Name}
	switch {
	case inst.TotalAssets >= 5_000_000_000:
		rec.FitScore, rec.Urgency = 90, model.UrgencyHigh
		rec.WhyNeeded = []string{
			fmt.Sprintf("%s institutions face enhanced examination scrutiny and stress-testing expectations.", fmtAssets(inst.TotalAssets)),
		}
	case inst.TotalAssets >= 500_000_000:
		rec.FitScore, rec.Urgency = 80, model.UrgencyHigh
		rec.WhyNeeded = []string{
			"Examination prep at this size is a multi-week manual effort without automated evidence trails.",
		}
	default:
		rec.FitScore, rec.Urgency = 65, model.UrgencyMedium
		rec.WhyNeeded = []string{
			"Compliance workload grows faster than headcount at community scale.",
		}
	}

	rec.Benefits = []string{
		"Automated exam-ready reporting",
		"BSA/AML monitoring dashboards",
	}
	rec.PainPoints = []string{
		"Scrambling before examinations",
		"Findings tracked in email threads",
	}
	rec.Impact = "Institutions report cutting exam preparation time roughly in half."
	return rec
}

func evalMarketingInsights(inst *model.Institution, p Product) *model.ProductRecommendation {
	if inst.Members < marketingMinMembers && inst.TotalAssets < marketingMinAssets {
		return nil
	}

	rec := &model.ProductRecommendation{ProductID: p.ID, ProductName: p.Name}
	switch {
	case inst.Members >= 100_000 || inst.TotalAssets >= 2_000_000_000:
		rec.FitScore, rec.Urgency = 88, model.UrgencyHigh
		rec.WhyNeeded = []string{
			"A marketing budget at this scale needs attribution, not intuition.",
		}
	case inst.Members >= 50_000 || inst.TotalAssets >= 750_000_000:
		rec.FitScore, rec.Urgency = 80, model.UrgencyMedium
		rec.WhyNeeded = []string{
			"Campaign targeting from actual product-usage data instead of blanket mailings.",
		}
	default:
		rec.FitScore, rec.Urgency = 70, model.UrgencyMedium
		rec.WhyNeeded = []string{
			"Entry-level segmentation that pays for itself on the first targeted campaign.",
		}
	}

	rec.Benefits = []string{
		"Campaign ROI attribution",
		"Next-best-product propensity models",
	}
	rec.PainPoints = []string{
		"Spray-and-pray marketing spend",
		"No feedback loop from campaign to balance growth",
	}
	rec.Impact = "Targeted campaigns routinely double response rates versus untargeted sends."
	return rec
}

func evalDataWarehouse(inst *model.Institution, p Product) *model.ProductRecommendation {
	if inst.TotalAssets < warehouseMinAssets && inst.Members < warehouseMinMembers {
		return nil
	}

	rec := &model.ProductRecommendation{ProductID: p.ID, ProductName: p.Name}
	switch {
	case inst.TotalAssets >= 10_000_000_000:
		rec.FitScore, rec.Urgency = 93, model.UrgencyCritical
		rec.WhyNeeded = []string{
			fmt.Sprintf("%s in assets means dozens of source systems; a governed warehouse is table stakes.", fmtAssets(inst.TotalAssets)),
		}
	case inst.TotalAssets >= 2_500_000_000:
		rec.FitScore, rec.Urgency = 85, model.UrgencyHigh
		rec.WhyNeeded = []string{
			fmt.Sprintf("At %s, ad-hoc extracts from the core no longer satisfy analytics demand.", fmtAssets(inst.TotalAssets)),
		}
	default:
		rec.FitScore, rec.Urgency = 75, model.UrgencyMedium
		rec.WhyNeeded = []string{
			"Centralized history across core conversions protects years of analytical continuity.",
		}
	}

	rec.Benefits = []string{
		"Nightly-refreshed governed data layer",
		"Self-service access for analysts",
	}
	rec.PainPoints = []string{
		"IT bottleneck on every data request",
		"History lost at each core conversion",
	}
	rec.Impact = "Analyst request backlogs typically drop from weeks to hours."
	return rec
}

func fmtAssets(v int64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", float64(v)/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.0fM", float64(v)/1_000_000)
	default:
		return fmt.Sprintf("$%d", v)
	}
}
