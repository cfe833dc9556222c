package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func sampleLeads() []model.HotLead {
	return []model.HotLead{
		{
			Institution: model.Institution{
				ID: "cu-101", Name: "Lone Star FCU", Type: model.CreditUnion,
				City: "Austin", State: "TX", TotalAssets: 2_000_000_000,
			},
			Rank:          1,
			PriorityScore: 88,
			UrgencyBucket: model.BucketCritical,
			Recommendations: []model.ProductRecommendation{
				{ProductID: "digital-onboarding", ProductName: "Digital Onboarding"},
			},
			EstimatedDealValue: 420_000,
			ROISummary:         model.ROISummary{AnnualROIPct: 240, PaybackMonths: 5},
		},
		{
			Institution: model.Institution{
				ID: "bank-5501", Name: "First Valley Bank", Type: model.CommunityBank,
				City: "Boise", State: "ID", TotalAssets: 850_000_000,
			},
			Rank:          2,
			PriorityScore: 61,
			UrgencyBucket: model.BucketHigh,
		},
	}
}

func TestLeadRows(t *testing.T) {
	rows := leadRows(sampleLeads())
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Equal(t, "rank", header[0])
	assert.Len(t, rows[1], len(header))

	assert.Equal(t, []string{
		"1", "cu-101", "Lone Star FCU", "credit_union", "Austin", "TX",
		"2000000000", "88", "critical", "420000", "240", "5", "Digital Onboarding",
	}, rows[1])

	// No recommendations means an empty top-product column, not a panic.
	assert.Equal(t, "", rows[2][len(rows[2])-1])
}

func TestWriteLeadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, writeLeadsCSV(sampleLeads(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "First Valley Bank", records[2][2])
}

func TestFindInstitution(t *testing.T) {
	insts := []model.Institution{
		{ID: "cu-101", Name: "Lone Star FCU"},
		{ID: "bank-5501", Name: "First Valley Bank"},
	}

	got := findInstitution(insts, "bank-5501")
	require.NotNil(t, got)
	assert.Equal(t, "First Valley Bank", got.Name)

	assert.Nil(t, findInstitution(insts, "cu-999"))
}
