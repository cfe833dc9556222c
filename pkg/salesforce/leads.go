package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
)

// institutionIDField is the external-id field on the Lead object that keys
// upserts, so repeated pushes update rather than duplicate.
const institutionIDField = "Institution_ID__c"

// PushLeads upserts the ranked leads as Salesforce Lead records keyed by
// institution id. Returns the number of records accepted; per-record
// failures are collected into one error.
func PushLeads(ctx context.Context, c Client, leads []model.HotLead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	records := make([]map[string]any, len(leads))
	for i, l := range leads {
		records[i] = leadRecord(l)
	}

	results, err := c.UpsertCollection(ctx, "Lead", institutionIDField, records)
	if err != nil {
		return 0, eris.Wrap(err, "sf: push leads")
	}

	var pushed int
	var failures []string
	for i, r := range results {
		if r.Success {
			pushed++
			continue
		}
		failures = append(failures, fmt.Sprintf("%s: %v", leads[i].Institution.ID, r.Errors))
	}

	zap.L().Info("sf: lead push complete",
		zap.Int("pushed", pushed),
		zap.Int("failed", len(failures)),
	)
	if len(failures) > 0 {
		return pushed, eris.Errorf("sf: %d lead upserts failed: %v", len(failures), failures)
	}
	return pushed, nil
}

// leadRecord maps a ranked lead onto Lead object fields.
func leadRecord(l model.HotLead) map[string]any {
	inst := l.Institution
	return map[string]any{
		institutionIDField:  inst.ID,
		"Company":           inst.Name,
		"City":              inst.City,
		"State":             inst.State,
		"Industry":          string(inst.Type),
		"Rating":            string(l.UrgencyBucket),
		"AnnualRevenue":     l.EstimatedDealValue,
		"Priority_Score__c": l.PriorityScore,
		"Total_Assets__c":   inst.TotalAssets,
		"Payback_Months__c": l.ROISummary.PaybackMonths,
		"Annual_ROI_Pct__c": l.ROISummary.AnnualROIPct,
		"Buying_Signals__c": strings.Join(l.BuyingSignals, "; "),
		"LeadSource":        "prospect-cli",
	}
}
