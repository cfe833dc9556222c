// Package product evaluates an institution against the product catalog and
// produces ranked recommendations with justification text.
package product

// Product identifies one sellable module in the platform catalog.
type Product struct {
	ID   string
	Name string
}

// Catalog of the six products, in evaluation order. Evaluation order is the
// tiebreaker when fit scores are equal, so the order here is deliberate.
var catalog = []Product{
	{ID: "analytics-platform", Name: "Analytics Platform"},
	{ID: "member-360", Name: "Member 360"},
	{ID: "lending-analytics", Name: "Lending Analytics"},
	{ID: "compliance-suite", Name: "Compliance Suite"},
	{ID: "marketing-insights", Name: "Marketing Insights"},
	{ID: "data-warehouse", Name: "Data Warehouse"},
}

// Applicability gates.
const (
	member360MinMembers    = 25_000
	member360BankMinAssets = 500_000_000
	lendingMinPortfolio    = 100_000_000
	marketingMinMembers    = 30_000
	marketingMinAssets     = 300_000_000
	warehouseMinAssets     = 1_000_000_000
	warehouseMinMembers    = 100_000
	loanPortfolioPctAssets = 0.65
)
