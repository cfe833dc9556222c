package model

// Impact grades how strongly an indicator moves a signal score.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Indicator is one human-readable reason contributing to a signal score.
type Indicator struct {
	Type   string `json:"type"`
	Label  string `json:"label"`
	Impact Impact `json:"impact"`
}

// SignalScore is a 0-100 heuristic score with its contributing indicators,
// in the order the rules fired.
type SignalScore struct {
	Score      int         `json:"score"`
	Indicators []Indicator `json:"indicators"`
}

// PeerComparison places an institution inside its asset-similar peer group.
// AboveAverage and BelowAverage never share a metric name. When PeerCount is
// zero Percentile defaults to 50 and both lists are empty.
type PeerComparison struct {
	Percentile   int      `json:"percentile"`
	PeerCount    int      `json:"peer_count"`
	AboveAverage []string `json:"above_average,omitempty"`
	BelowAverage []string `json:"below_average,omitempty"`
}

// Tier buckets an opportunity score for the pipeline view.
type Tier string

const (
	TierHot     Tier = "hot"
	TierWarm    Tier = "warm"
	TierNurture Tier = "nurture"
	TierCold    Tier = "cold"
)

// Rank orders tiers: Hot > Warm > Nurture > Cold.
func (t Tier) Rank() int {
	switch t {
	case TierHot:
		return 4
	case TierWarm:
		return 3
	case TierNurture:
		return 2
	default:
		return 1
	}
}

// OpportunityProfile is the overall assessment of a single institution.
// Recomputed on demand; never persisted by the scoring core.
type OpportunityProfile struct {
	Score         int      `json:"score"`
	Tier          Tier     `json:"tier"`
	Approach      string   `json:"approach"`
	TalkingPoints []string `json:"talking_points"`
	Challenges    []string `json:"challenges"`
	DealSizeRange string   `json:"deal_size_range"`
}

// Urgency grades how soon a recommendation should be acted on.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// Rank orders urgencies: Critical > High > Medium > Low.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 4
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	default:
		return 1
	}
}

// ProductRecommendation is one product's fit assessment for an institution.
type ProductRecommendation struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	FitScore    int      `json:"fit_score"`
	Urgency     Urgency  `json:"urgency"`
	WhyNeeded   []string `json:"why_needed"`
	Benefits    []string `json:"benefits"`
	PainPoints  []string `json:"pain_points"`
	Impact      string   `json:"impact"`
}
