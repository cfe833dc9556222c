// Package chat assembles prompt payloads for the outreach assistant and
// tracks AI backend health for the dashboard.
package chat

import (
	"encoding/json"
	"fmt"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/pkg/anthropic"
)

// SystemPrompt frames the assistant for sales-enablement conversations.
const SystemPrompt = `You are a sales-enablement assistant for a data-analytics vendor that sells to credit unions and community banks. You are given structured research about one institution: its regulatory filing data, peer comparison, opportunity scoring, product-fit recommendations, ROI projection, pricing, and competitive landscape. Answer the rep's questions concretely, citing numbers from the context. Keep answers short and actionable. If the context does not cover a question, say so rather than guessing.`

// contextPayload is the JSON block sent ahead of the rep's question.
type contextPayload struct {
	Institution     model.Institution             `json:"institution"`
	PeerComparison  model.PeerComparison          `json:"peer_comparison"`
	Opportunity     *model.OpportunityProfile     `json:"opportunity,omitempty"`
	Recommendations []model.ProductRecommendation `json:"recommendations,omitempty"`
	ROI             model.ROIProjection           `json:"roi"`
	Pricing         model.Pricing                 `json:"pricing"`
	Competitive     *model.CompetitiveIntel       `json:"competitive,omitempty"`
}

// BuildPayload serializes the analysis bundle as a JSON context block and
// appends the rep's question as the final user message.
func BuildPayload(question string, analysis *model.Analysis) []anthropic.Message {
	if analysis == nil {
		return []anthropic.Message{{Role: "user", Content: question}}
	}

	payload := contextPayload{
		Institution:     analysis.Institution,
		PeerComparison:  analysis.PeerComparison,
		Opportunity:     analysis.Opportunity,
		Recommendations: analysis.Recommendations,
		ROI:             analysis.ROI,
		Pricing:         analysis.Pricing,
		Competitive:     analysis.Competitive,
	}

	ctxJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// The payload is built from plain structs; marshal cannot fail in
		// practice, but degrade to the bare question if it ever does.
		return []anthropic.Message{{Role: "user", Content: question}}
	}

	context := fmt.Sprintf("Institution research context:\n```json\n%s\n```", ctxJSON)
	return []anthropic.Message{
		{Role: "user", Content: context},
		{Role: "assistant", Content: "Understood. I have the research context for " + analysis.Institution.Name + ". What would you like to know?"},
		{Role: "user", Content: question},
	}
}
