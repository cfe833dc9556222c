package model

// CompetitorStrength grades a vendor's market position.
type CompetitorStrength string

const (
	StrengthStrong   CompetitorStrength = "strong"
	StrengthModerate CompetitorStrength = "moderate"
	StrengthWeak     CompetitorStrength = "weak"
)

// CompetitorCategory groups vendors by what they sell.
type CompetitorCategory string

const (
	CategoryCoreProvider CompetitorCategory = "core_provider"
	CategoryAnalytics    CompetitorCategory = "analytics"
	CategoryCRM          CompetitorCategory = "crm"
)

// CompetitorProfile is a static catalog entry for a known vendor.
type CompetitorProfile struct {
	Name         string             `json:"name"`
	Category     CompetitorCategory `json:"category"`
	Strength     CompetitorStrength `json:"strength"`
	Satisfaction Confidence         `json:"typical_satisfaction"`
	WinRatePct   int                `json:"win_rate_pct"`
	Messaging    string             `json:"messaging"`
}

// CompetitorPresence is an inferred incumbent at a specific institution.
type CompetitorPresence struct {
	Profile CompetitorProfile `json:"profile"`
	Reason  string            `json:"reason"`
}

// SwitchingCost grades how painful displacing the incumbents would be.
type SwitchingCost string

const (
	SwitchingHigh   SwitchingCost = "high"
	SwitchingMedium SwitchingCost = "medium"
	SwitchingLow    SwitchingCost = "low"
)

// CompetitiveIntel is the derived competitive assessment for an institution.
// Ephemeral; recomputed per call.
type CompetitiveIntel struct {
	Presences              []CompetitorPresence `json:"presences"`
	SwitchingCost          SwitchingCost        `json:"switching_cost"`
	DisplacementDifficulty int                  `json:"displacement_difficulty"` // 1-10
	WinProbabilityPct      int                  `json:"win_probability_pct"`
	RecommendedApproach    string               `json:"recommended_approach"`
}
