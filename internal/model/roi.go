package model

// Confidence labels how defensible a benefit estimate is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ROIInputs holds the assumed current-state costs and behaviors that feed
// the ROI projection. Defaults are estimated from institution size; callers
// may override any field with real discovery data.
type ROIInputs struct {
	InstitutionType     InstitutionType `json:"institution_type"`
	TotalAssets         int64           `json:"total_assets"`
	Members             int64           `json:"members"`
	CurrentMonthlySpend int64           `json:"current_monthly_spend"`
	ManualReportingHrs  int             `json:"manual_reporting_hours"` // per month
	HourlyRate          int64           `json:"hourly_rate"`
	AvgCustomerValue    int64           `json:"avg_customer_value"` // annual
	AttritionRate       float64         `json:"attrition_rate"`
	CrossSellRate       float64         `json:"cross_sell_rate"`
	LoanDefaultRate     float64         `json:"loan_default_rate"`
	LoanPortfolio       int64           `json:"loan_portfolio"`
}

// BenefitItem is one annual benefit category in an ROI projection.
type BenefitItem struct {
	Category   string     `json:"category"`
	Amount     int64      `json:"amount"`
	Confidence Confidence `json:"confidence"`
}

// ValueBand is a multi-year value projection at a given aggressiveness.
type ValueBand struct {
	ThreeYear int64 `json:"three_year"`
	FiveYear  int64 `json:"five_year"`
}

// ROIProjection is the full output of the ROI model for one institution.
type ROIProjection struct {
	CurrentMonthlyCost   int64         `json:"current_monthly_cost"`
	ProjectedMonthlyCost int64         `json:"projected_monthly_cost"`
	CurrentAnnualCost    int64         `json:"current_annual_cost"`
	ProjectedAnnualCost  int64         `json:"projected_annual_cost"`
	Benefits             []BenefitItem `json:"benefits"`
	TotalAnnualBenefit   int64         `json:"total_annual_benefit"`
	AnnualROIPct         int           `json:"annual_roi_pct"`
	PaybackMonths        int           `json:"payback_months"`
	Conservative         ValueBand     `json:"conservative"`
	Moderate             ValueBand     `json:"moderate"`
	Aggressive           ValueBand     `json:"aggressive"`
}

// Pricing is the recommended subscription tier for an institution.
type Pricing struct {
	Tier         string `json:"tier"`
	MonthlyPrice int64  `json:"monthly_price"`
	AnnualPrice  int64  `json:"annual_price"`
}
