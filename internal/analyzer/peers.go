// Package analyzer groups institutions with asset-similar peers and derives
// the growth, technology-need, and buying-readiness signal scores that feed
// opportunity scoring.
package analyzer

import (
	"math"

	"github.com/sells-group/prospect-cli/internal/model"
)

// peerBracket is the asset window an institution is compared against,
// keyed by the institution's own asset tier.
type peerBracket struct {
	tierFloor int64 // institution asset tier lower bound
	windowMin int64
	windowMax int64 // 0 means unbounded
}

// Brackets widen with size; a $2B shop peers against $500M-$15B, not only
// other $2B shops.
var peerBrackets = []peerBracket{
	{tierFloor: 10_000_000_000, windowMin: 5_000_000_000, windowMax: 0},
	{tierFloor: 1_000_000_000, windowMin: 500_000_000, windowMax: 15_000_000_000},
	{tierFloor: 500_000_000, windowMin: 250_000_000, windowMax: 2_000_000_000},
	{tierFloor: 100_000_000, windowMin: 50_000_000, windowMax: 750_000_000},
	{tierFloor: 0, windowMin: 0, windowMax: 200_000_000},
}

// bracketFor returns the peer asset window for an institution's size.
func bracketFor(assets int64) peerBracket {
	for _, b := range peerBrackets {
		if assets >= b.tierFloor {
			return b
		}
	}
	return peerBrackets[len(peerBrackets)-1]
}

// FindPeers returns institutions of the same type whose assets fall inside
// the subject's peer window, excluding the subject itself.
func FindPeers(inst *model.Institution, all []model.Institution) []model.Institution {
	b := bracketFor(inst.TotalAssets)

	var peers []model.Institution
	for _, cand := range all {
		if cand.ID == inst.ID || cand.Type != inst.Type {
			continue
		}
		if cand.TotalAssets < b.windowMin {
			continue
		}
		if b.windowMax > 0 && cand.TotalAssets > b.windowMax {
			continue
		}
		peers = append(peers, cand)
	}
	return peers
}

// Metric deviation thresholds for the above/below-average flags.
const (
	meanDeviationPct   = 0.10 // assets, ROA, members
	branchDeviationPct = 0.20
)

// Compare computes the subject's percentile rank and flags metrics that
// deviate from the peer mean. An empty peer group yields the neutral 50th
// percentile with no flags.
func Compare(inst *model.Institution, peers []model.Institution) model.PeerComparison {
	if len(peers) == 0 {
		return model.PeerComparison{Percentile: 50}
	}

	pc := model.PeerComparison{PeerCount: len(peers)}

	// Percentile: 1-based rank of the subject's assets ascending among
	// peers plus itself.
	rank := 1
	for _, p := range peers {
		if p.TotalAssets <= inst.TotalAssets {
			rank++
		}
	}
	count := len(peers) + 1
	pc.Percentile = int(math.Round(float64(rank) / float64(count) * 100))

	var sumAssets, sumMembers int64
	var sumROA float64
	var sumBranches int
	roaCount := 0
	for _, p := range peers {
		sumAssets += p.TotalAssets
		sumMembers += p.Members
		sumBranches += p.Branches
		if p.ROA > 0 {
			sumROA += p.ROA
			roaCount++
		}
	}
	n := float64(len(peers))

	flag := func(metric string, above bool) {
		if above {
			pc.AboveAverage = append(pc.AboveAverage, metric)
		} else {
			pc.BelowAverage = append(pc.BelowAverage, metric)
		}
	}

	meanAssets := float64(sumAssets) / n
	if float64(inst.TotalAssets) > meanAssets*(1+meanDeviationPct) {
		flag("assets", true)
	} else if float64(inst.TotalAssets) < meanAssets*(1-meanDeviationPct) {
		flag("assets", false)
	}

	if inst.ROA > 0 && roaCount > 0 {
		meanROA := sumROA / float64(roaCount)
		if inst.ROA > meanROA*(1+meanDeviationPct) {
			flag("roa", true)
		} else if inst.ROA < meanROA*(1-meanDeviationPct) {
			flag("roa", false)
		}
	}

	if inst.IsCreditUnion() {
		meanMembers := float64(sumMembers) / n
		if meanMembers > 0 {
			if float64(inst.Members) > meanMembers*(1+meanDeviationPct) {
				flag("members", true)
			} else if float64(inst.Members) < meanMembers*(1-meanDeviationPct) {
				flag("members", false)
			}
		}
	}

	meanBranches := float64(sumBranches) / n
	if meanBranches > 0 {
		if float64(inst.Branches) > meanBranches*(1+branchDeviationPct) {
			flag("branches", true)
		} else if float64(inst.Branches) < meanBranches*(1-branchDeviationPct) {
			flag("branches", false)
		}
	}

	return pc
}
