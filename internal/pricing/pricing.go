// Package pricing maps institution size to a recommended subscription tier.
package pricing

import "github.com/sells-group/prospect-cli/internal/model"

// tierDef is one subscription tier's pricing parameters.
type tierDef struct {
	name       string
	base       int64   // monthly base price
	perUnit    float64 // monthly increment per customer
	minMonthly int64
	maxMonthly int64
}

// Tier catalog, largest first. Asset thresholds are applied in Calculate.
var (
	enterpriseTier   = tierDef{name: "enterprise", base: 10_000, perUnit: 0.01, minMonthly: 9_000, maxMonthly: 25_000}
	professionalTier = tierDef{name: "professional", base: 5_000, perUnit: 0.015, minMonthly: 4_500, maxMonthly: 9_000}
	essentialTier    = tierDef{name: "essential", base: 2_500, perUnit: 0.02, minMonthly: 2_500, maxMonthly: 4_500}
)

const (
	enterpriseAssetFloor   = 5_000_000_000
	professionalAssetFloor = 1_000_000_000

	// Customer count fallback when members are unreported (banks).
	assetsPerCustomer = 40_000
)

// Calculate returns the recommended tier and price for an institution of the
// given size. Members of zero falls back to an asset-based customer estimate.
func Calculate(assets, members int64) model.Pricing {
	tier := essentialTier
	switch {
	case assets >= enterpriseAssetFloor:
		tier = enterpriseTier
	case assets >= professionalAssetFloor:
		tier = professionalTier
	}

	count := members
	if count <= 0 {
		count = assets / assetsPerCustomer
	}

	monthly := tier.base + int64(float64(count)*tier.perUnit)
	if monthly < tier.minMonthly {
		monthly = tier.minMonthly
	}
	if monthly > tier.maxMonthly {
		monthly = tier.maxMonthly
	}

	return model.Pricing{
		Tier:         tier.name,
		MonthlyPrice: monthly,
		AnnualPrice:  monthly * 12,
	}
}
