package model

// Analysis bundles every derived view for a single institution. It backs
// the analyze command, the dashboard detail endpoint, and the chat context
// payload.
type Analysis struct {
	Institution     Institution             `json:"institution"`
	PeerComparison  PeerComparison          `json:"peer_comparison"`
	Growth          SignalScore             `json:"growth_signal"`
	Tech            SignalScore             `json:"tech_signal"`
	Buying          SignalScore             `json:"buying_signal"`
	Opportunity     *OpportunityProfile     `json:"opportunity"`
	Recommendations []ProductRecommendation `json:"recommendations"`
	ROI             ROIProjection           `json:"roi"`
	Pricing         Pricing                 `json:"pricing"`
	Competitive     *CompetitiveIntel       `json:"competitive"`
}
