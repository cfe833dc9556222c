package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestSignalScoresStayInBounds(t *testing.T) {
	insts := []model.Institution{
		{ID: "max", Type: model.CreditUnion, State: "TX", TotalAssets: 1_500_000_000, Members: 200_000, ROA: 1.5, Branches: 40},
		{ID: "min", Type: model.CommunityBank, State: "VT", TotalAssets: 10_000_000, ROA: 0.1},
		{ID: "zero", Type: model.CreditUnion},
	}
	pcs := []model.PeerComparison{
		{Percentile: 95, PeerCount: 20},
		{Percentile: 5, PeerCount: 20, BelowAverage: []string{"assets", "roa"}},
		{Percentile: 50},
	}

	for _, inst := range insts {
		for _, pc := range pcs {
			for _, budget := range []bool{false, true} {
				g := Growth(&inst, pc)
				te := Tech(&inst, pc)
				bu := Buying(&inst, pc, Assumptions{BudgetSeason: budget})
				for _, s := range []model.SignalScore{g, te, bu} {
					assert.GreaterOrEqual(t, s.Score, 0)
					assert.LessOrEqual(t, s.Score, 100)
				}
			}
		}
	}
}

func TestGrowthMonotoneInAssets(t *testing.T) {
	pc := model.PeerComparison{Percentile: 50, PeerCount: 5}
	small := model.Institution{ID: "s", Type: model.CreditUnion, TotalAssets: 40_000_000, ROA: 0.9}
	mid := model.Institution{ID: "m", Type: model.CreditUnion, TotalAssets: 400_000_000, ROA: 0.9}
	big := model.Institution{ID: "b", Type: model.CreditUnion, TotalAssets: 4_000_000_000, ROA: 0.9}

	assert.Less(t, Growth(&small, pc).Score, Growth(&mid, pc).Score)
	assert.Less(t, Growth(&mid, pc).Score, Growth(&big, pc).Score)
}

func TestGrowthMonotoneInROA(t *testing.T) {
	pc := model.PeerComparison{Percentile: 50, PeerCount: 5}
	base := model.Institution{ID: "x", Type: model.CreditUnion, TotalAssets: 400_000_000}

	weak := base
	weak.ROA = 0.2
	ok := base
	ok.ROA = 0.9
	strong := base
	strong.ROA = 1.5

	assert.Less(t, Growth(&weak, pc).Score, Growth(&ok, pc).Score)
	assert.Less(t, Growth(&ok, pc).Score, Growth(&strong, pc).Score)
}

func TestGrowthGeographyBonus(t *testing.T) {
	pc := model.PeerComparison{Percentile: 50, PeerCount: 5}
	tx := model.Institution{ID: "tx", Type: model.CreditUnion, State: "TX", TotalAssets: 400_000_000, ROA: 0.9}
	vt := tx
	vt.ID, vt.State = "vt", "VT"

	sTX := Growth(&tx, pc)
	sVT := Growth(&vt, pc)
	assert.Equal(t, sVT.Score+10, sTX.Score)

	var found bool
	for _, ind := range sTX.Indicators {
		if ind.Type == "geography" {
			found = true
		}
	}
	assert.True(t, found, "expected a geography indicator for TX")
}

func TestTechRisesWithComplexity(t *testing.T) {
	pc := model.PeerComparison{Percentile: 50, PeerCount: 5}
	simple := model.Institution{ID: "s", Type: model.CreditUnion, TotalAssets: 60_000_000, Members: 4_000, Branches: 1}
	complexInst := model.Institution{ID: "c", Type: model.CreditUnion, TotalAssets: 900_000_000, Members: 80_000, Branches: 25}

	assert.Less(t, Tech(&simple, pc).Score, Tech(&complexInst, pc).Score)
}

func TestTechOutgrowingToolsBand(t *testing.T) {
	pc := model.PeerComparison{}
	inBand := model.Institution{ID: "a", Type: model.CommunityBank, TotalAssets: 800_000_000}
	s := Tech(&inBand, pc)

	var hit bool
	for _, ind := range s.Indicators {
		if ind.Type == "tooling_gap" && ind.Impact == model.ImpactHigh {
			hit = true
		}
	}
	assert.True(t, hit, "mid-size institutions should flag the tooling gap")
}

func TestBuyingPeerUnderperformance(t *testing.T) {
	inst := model.Institution{ID: "x", Type: model.CreditUnion, TotalAssets: 300_000_000, ROA: 0.9}
	ahead := Buying(&inst, model.PeerComparison{Percentile: 80, PeerCount: 10}, Assumptions{})
	behind := Buying(&inst, model.PeerComparison{Percentile: 30, PeerCount: 10}, Assumptions{})
	bottom := Buying(&inst, model.PeerComparison{Percentile: 10, PeerCount: 10}, Assumptions{})

	assert.Less(t, ahead.Score, behind.Score)
	assert.Less(t, behind.Score, bottom.Score)
}

func TestBuyingBudgetSeasonIsExplicit(t *testing.T) {
	inst := model.Institution{ID: "x", Type: model.CreditUnion, TotalAssets: 300_000_000, ROA: 0.9}
	pc := model.PeerComparison{Percentile: 60, PeerCount: 10}

	off := Buying(&inst, pc, Assumptions{})
	on := Buying(&inst, pc, Assumptions{BudgetSeason: true})
	assert.Equal(t, off.Score+8, on.Score)
}

func TestBuyingSkipsPeerRulesWithoutPeers(t *testing.T) {
	inst := model.Institution{ID: "x", Type: model.CreditUnion, TotalAssets: 300_000_000, ROA: 0.9}
	// Percentile 50 with zero peers is the neutral default and must not
	// trigger the underperformance rule.
	s := Buying(&inst, model.PeerComparison{Percentile: 50}, Assumptions{})
	for _, ind := range s.Indicators {
		assert.NotEqual(t, "peer_pressure", ind.Type)
	}
}

func TestIndicatorsCarryLabels(t *testing.T) {
	inst := model.Institution{ID: "x", Type: model.CreditUnion, State: "FL", TotalAssets: 2_000_000_000, Members: 150_000, ROA: 0.9, Branches: 22}
	pc := model.PeerComparison{Percentile: 80, PeerCount: 12}

	for _, s := range []model.SignalScore{Growth(&inst, pc), Tech(&inst, pc), Buying(&inst, pc, Assumptions{})} {
		require.NotEmpty(t, s.Indicators)
		for _, ind := range s.Indicators {
			assert.NotEmpty(t, ind.Type)
			assert.NotEmpty(t, ind.Label)
			assert.NotEmpty(t, ind.Impact)
		}
	}
}
