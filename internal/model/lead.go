package model

// LeadBucket is the hot-leads view urgency bucket.
type LeadBucket string

const (
	BucketCritical LeadBucket = "critical"
	BucketHigh     LeadBucket = "high"
	BucketMedium   LeadBucket = "medium"
	BucketStandard LeadBucket = "standard"
)

// ROISummary is the condensed ROI view attached to a hot lead.
type ROISummary struct {
	AnnualROIPct       int   `json:"annual_roi_pct"`
	PaybackMonths      int   `json:"payback_months"`
	TotalAnnualBenefit int64 `json:"total_annual_benefit"`
}

// HotLead is an institution annotated with its final priority placement,
// recomputed from scratch on every ranking pass.
type HotLead struct {
	Institution        Institution             `json:"institution"`
	Rank               int                     `json:"rank"`
	PriorityScore      int                     `json:"priority_score"`
	UrgencyBucket      LeadBucket              `json:"urgency_bucket"`
	Recommendations    []ProductRecommendation `json:"recommendations"`
	BuyingSignals      []string                `json:"buying_signals"`
	EstimatedDealValue int64                   `json:"estimated_deal_value"`
	ROISummary         ROISummary              `json:"roi_summary"`
}
