package roi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/pricing"
)

func testCU(assets, members int64) *model.Institution {
	return &model.Institution{
		ID:          "cu-1",
		Name:        "Test FCU",
		Type:        model.CreditUnion,
		TotalAssets: assets,
		Members:     members,
		ROA:         0.9,
	}
}

func TestDefaultInputsAssetBands(t *testing.T) {
	tests := []struct {
		name      string
		assets    int64
		wantSpend int64
		wantHours int
	}{
		{"micro", 30_000_000, 1_200, 40},
		{"small", 200_000_000, 3_000, 80},
		{"mid", 700_000_000, 6_000, 120},
		{"large", 2_000_000_000, 12_000, 200},
		{"enterprise", 8_000_000_000, 25_000, 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInputs(testCU(tt.assets, 10_000))
			assert.Equal(t, tt.wantSpend, in.CurrentMonthlySpend)
			assert.Equal(t, tt.wantHours, in.ManualReportingHrs)
		})
	}
}

func TestDefaultInputsBenchmarks(t *testing.T) {
	in := DefaultInputs(testCU(2_000_000_000, 150_000))
	assert.InDelta(t, 0.10, in.AttritionRate, 1e-9)
	assert.InDelta(t, 0.15, in.CrossSellRate, 1e-9)
	assert.InDelta(t, 0.015, in.LoanDefaultRate, 1e-9)
	// Loan portfolio = 65% of assets.
	assert.Equal(t, int64(1_300_000_000), in.LoanPortfolio)
	assert.Equal(t, int64(1_200), in.AvgCustomerValue)

	bank := DefaultInputs(&model.Institution{Type: model.CommunityBank, TotalAssets: 400_000_000})
	assert.Equal(t, int64(2_500), bank.AvgCustomerValue)
}

func TestCalculateDeterministic(t *testing.T) {
	in := DefaultInputs(testCU(2_000_000_000, 150_000))
	a := Calculate(in)
	b := Calculate(in)
	assert.Equal(t, a, b)
}

func TestCalculateReportingBenefit(t *testing.T) {
	in := DefaultInputs(testCU(2_000_000_000, 150_000))
	proj := Calculate(in)
	require.Len(t, proj.Benefits, 4)
	// 200 hrs * 0.65 * $75 * 12 = 117,000.
	assert.Equal(t, "reporting_efficiency", proj.Benefits[0].Category)
	assert.Equal(t, int64(117_000), proj.Benefits[0].Amount)
	assert.Equal(t, model.ConfidenceHigh, proj.Benefits[0].Confidence)
}

func TestCalculateCapsHoldForGiantInstitution(t *testing.T) {
	// A hypothetical $500B institution must not blow past the documented
	// cap multiples.
	inst := testCU(500_000_000_000, 8_000_000)
	in := DefaultInputs(inst)
	proj := Calculate(in)

	price := pricing.Calculate(inst.TotalAssets, inst.Members)
	byCategory := map[string]int64{}
	for _, b := range proj.Benefits {
		byCategory[b.Category] = b.Amount
	}

	assert.LessOrEqual(t, byCategory["attrition_reduction"], price.AnnualPrice*MaxAttritionBenefitMultiple)
	assert.LessOrEqual(t, byCategory["cross_sell_improvement"], price.AnnualPrice*MaxCrossSellBenefitMultiple)
	assert.LessOrEqual(t, byCategory["loan_loss_reduction"], price.AnnualPrice*MaxLoanLossBenefitMultiple)
}

func TestCalculateAttritionCustomerCap(t *testing.T) {
	// 150k members caps to 100k for the attrition term only:
	// 100,000 * 0.10 * 1200 * 0.15 = 1,800,000 before the price cap.
	in := DefaultInputs(testCU(2_000_000_000, 150_000))
	proj := Calculate(in)

	price := pricing.Calculate(2_000_000_000, 150_000)
	want := int64(1_800_000)
	if cap := price.AnnualPrice * MaxAttritionBenefitMultiple; want > cap {
		want = cap
	}
	assert.Equal(t, want, proj.Benefits[1].Amount)
}

func TestCalculatePaybackSentinel(t *testing.T) {
	// Zero benefits across the board -> payback sentinel.
	in := model.ROIInputs{
		InstitutionType: model.CommunityBank,
		TotalAssets:     60_000_000,
	}
	proj := Calculate(in)
	assert.Equal(t, 99, proj.PaybackMonths)
}

func TestCalculatePaybackSentinelNegativeNet(t *testing.T) {
	// Some benefit, but below the subscription cost: the projection still
	// never pays back within the horizon.
	in := model.ROIInputs{
		InstitutionType:    model.CommunityBank,
		TotalAssets:        60_000_000,
		ManualReportingHrs: 20,
		HourlyRate:         75,
	}
	proj := Calculate(in)

	require.Positive(t, proj.TotalAnnualBenefit)
	require.Less(t, proj.TotalAnnualBenefit, proj.ProjectedAnnualCost)
	assert.Equal(t, 99, proj.PaybackMonths)
}

func TestCalculateMultiYearBands(t *testing.T) {
	in := DefaultInputs(testCU(2_000_000_000, 150_000))
	proj := Calculate(in)

	net := proj.TotalAnnualBenefit - proj.ProjectedAnnualCost
	require.Positive(t, net)

	// Aggressive 3-year = net * (1 + 1.05 + 1.10).
	assert.InDelta(t, float64(net)*3.15, float64(proj.Aggressive.ThreeYear), 1.0)
	// Aggressive 5-year adds years four and five at 1.15 and 1.20.
	assert.InDelta(t, float64(net)*5.50, float64(proj.Aggressive.FiveYear), 1.0)
	// Conservative is 60% of aggressive, moderate 80%.
	assert.InDelta(t, float64(proj.Aggressive.ThreeYear)*0.60, float64(proj.Conservative.ThreeYear), 2.0)
	assert.InDelta(t, float64(proj.Aggressive.ThreeYear)*0.80, float64(proj.Moderate.ThreeYear), 2.0)
}

func TestCalculateROIPercent(t *testing.T) {
	in := DefaultInputs(testCU(2_000_000_000, 150_000))
	proj := Calculate(in)
	require.Positive(t, proj.ProjectedAnnualCost)
	wantROI := int(float64(proj.TotalAnnualBenefit-proj.ProjectedAnnualCost) / float64(proj.ProjectedAnnualCost) * 100)
	assert.InDelta(t, wantROI, proj.AnnualROIPct, 1)
}
