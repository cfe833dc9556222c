// Package competitive infers likely incumbent vendors for an institution
// and derives switching cost, displacement difficulty, and win probability.
package competitive

import "github.com/sells-group/prospect-cli/internal/model"

// Vendor catalog. Static; loaded once and never mutated per call.
var (
	fiservDNA = model.CompetitorProfile{
		Name: "Fiserv DNA", Category: model.CategoryCoreProvider,
		Strength: model.StrengthStrong, Satisfaction: model.ConfidenceMedium,
		WinRatePct: 35,
		Messaging:  "Position alongside the core, not against it: we read their data, we don't replace it.",
	}
	jackHenry = model.CompetitorProfile{
		Name: "Jack Henry Symitar", Category: model.CategoryCoreProvider,
		Strength: model.StrengthStrong, Satisfaction: model.ConfidenceMedium,
		WinRatePct: 38,
		Messaging:  "Their reporting add-ons are priced a la carte; lead with bundled total cost.",
	}
	corelation = model.CompetitorProfile{
		Name: "Corelation KeyStone", Category: model.CategoryCoreProvider,
		Strength: model.StrengthModerate, Satisfaction: model.ConfidenceHigh,
		WinRatePct: 30,
		Messaging:  "Happy KeyStone shops still lack cross-system analytics; sell the gap, not the core.",
	}
	tableauBI = model.CompetitorProfile{
		Name: "Tableau / generic BI", Category: model.CategoryAnalytics,
		Strength: model.StrengthModerate, Satisfaction: model.ConfidenceLow,
		WinRatePct: 60,
		Messaging:  "Generic BI needs a data team they don't have; we ship banking logic prebuilt.",
	}
	excelManual = model.CompetitorProfile{
		Name: "Spreadsheets / manual process", Category: model.CategoryAnalytics,
		Strength: model.StrengthWeak, Satisfaction: model.ConfidenceLow,
		WinRatePct: 75,
		Messaging:  "Quantify hours burned on manual reporting; the ROI case writes itself.",
	}
	salesforceFSC = model.CompetitorProfile{
		Name: "Salesforce FSC", Category: model.CategoryCRM,
		Strength: model.StrengthStrong, Satisfaction: model.ConfidenceMedium,
		WinRatePct: 45,
		Messaging:  "CRM without analytics is a rolodex; we are the intelligence layer it is missing.",
	}
)
