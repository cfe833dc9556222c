// Package roi projects the annual value of the analytics platform for a
// single institution from assumed current-state costs and behaviors.
package roi

import (
	"math"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/pricing"
)

// Industry-benchmark defaults applied when no discovery data is available.
const (
	defaultAttritionRate   = 0.10
	defaultCrossSellRate   = 0.15
	defaultLoanDefaultRate = 0.015
	loanPortfolioPctAssets = 0.65
	defaultHourlyRate      = 75
	cuAvgCustomerValue     = 1_200
	bankAvgCustomerValue   = 2_500
)

// Benefit caps keep projections defensible for very large institutions.
// Attrition, cross-sell, and loan-loss benefits are capped at a multiple of
// the recommended annual subscription price.
const (
	MaxAttritionBenefitMultiple = 3
	MaxCrossSellBenefitMultiple = 2
	MaxLoanLossBenefitMultiple  = 2

	reportingHoursReduction = 0.65
	attritionSavePct        = 0.15
	crossSellMarginPct      = 0.30
	crossSellLiftPct        = 0.25
	loanLossReductionPct    = 0.10

	// Effective customer count ceiling for the attrition calculation only.
	maxAttritionCustomers = 100_000

	// Payback sentinel when the projection never pays back.
	paybackNever = 99
)

// DefaultInputs estimates ROI inputs from institution size. Analytics spend
// and reporting hours are banded by assets; rates use industry benchmarks.
func DefaultInputs(inst *model.Institution) model.ROIInputs {
	var monthlySpend int64
	var reportingHrs int
	switch {
	case inst.TotalAssets >= 5_000_000_000:
		monthlySpend, reportingHrs = 25_000, 320
	case inst.TotalAssets >= 1_000_000_000:
		monthlySpend, reportingHrs = 12_000, 200
	case inst.TotalAssets >= 500_000_000:
		monthlySpend, reportingHrs = 6_000, 120
	case inst.TotalAssets >= 100_000_000:
		monthlySpend, reportingHrs = 3_000, 80
	default:
		monthlySpend, reportingHrs = 1_200, 40
	}

	avgValue := int64(bankAvgCustomerValue)
	if inst.IsCreditUnion() {
		avgValue = cuAvgCustomerValue
	}

	return model.ROIInputs{
		InstitutionType:     inst.Type,
		TotalAssets:         inst.TotalAssets,
		Members:             inst.Members,
		CurrentMonthlySpend: monthlySpend,
		ManualReportingHrs:  reportingHrs,
		HourlyRate:          defaultHourlyRate,
		AvgCustomerValue:    avgValue,
		AttritionRate:       defaultAttritionRate,
		CrossSellRate:       defaultCrossSellRate,
		LoanDefaultRate:     defaultLoanDefaultRate,
		LoanPortfolio:       int64(float64(inst.TotalAssets) * loanPortfolioPctAssets),
	}
}

// Calculate produces the full ROI projection from a set of inputs. The
// computation is deterministic; identical inputs yield identical output.
func Calculate(in model.ROIInputs) *model.ROIProjection {
	price := pricing.Calculate(in.TotalAssets, in.Members)
	annualCost := price.AnnualPrice

	// Reporting efficiency: hours reclaimed at the assumed loaded rate.
	reporting := int64(float64(in.ManualReportingHrs) * reportingHoursReduction * float64(in.HourlyRate) * 12)

	// Attrition reduction: save a slice of annual churn value. Customer
	// count is capped here so billion-dollar books don't yield fantasy
	// numbers.
	customers := effectiveCustomers(in)
	if customers > maxAttritionCustomers {
		customers = maxAttritionCustomers
	}
	attrition := int64(float64(customers) * in.AttritionRate * float64(in.AvgCustomerValue) * attritionSavePct)
	attrition = capAt(attrition, annualCost*MaxAttritionBenefitMultiple)

	// Cross-sell improvement on the uncapped customer base.
	crossSell := int64(float64(effectiveCustomers(in)) * in.CrossSellRate * float64(in.AvgCustomerValue) * crossSellMarginPct * crossSellLiftPct)
	crossSell = capAt(crossSell, annualCost*MaxCrossSellBenefitMultiple)

	// Loan-loss reduction from earlier delinquency detection.
	loanLoss := int64(float64(in.LoanPortfolio) * in.LoanDefaultRate * loanLossReductionPct)
	loanLoss = capAt(loanLoss, annualCost*MaxLoanLossBenefitMultiple)

	benefits := []model.BenefitItem{
		{Category: "reporting_efficiency", Amount: reporting, Confidence: model.ConfidenceHigh},
		{Category: "attrition_reduction", Amount: attrition, Confidence: model.ConfidenceMedium},
		{Category: "cross_sell_improvement", Amount: crossSell, Confidence: model.ConfidenceMedium},
		{Category: "loan_loss_reduction", Amount: loanLoss, Confidence: model.ConfidenceLow},
	}

	total := reporting + attrition + crossSell + loanLoss

	annualROI := 0
	payback := paybackNever
	if annualCost > 0 {
		annualROI = int(math.Round(float64(total-annualCost) / float64(annualCost) * 100))
	}
	// Non-positive net benefit never pays back.
	if total > annualCost {
		payback = int(math.Ceil(float64(annualCost) / float64(total) * 12))
	}

	net := total - annualCost

	return &model.ROIProjection{
		CurrentMonthlyCost:   in.CurrentMonthlySpend,
		ProjectedMonthlyCost: price.MonthlyPrice,
		CurrentAnnualCost:    in.CurrentMonthlySpend * 12,
		ProjectedAnnualCost:  annualCost,
		Benefits:             benefits,
		TotalAnnualBenefit:   total,
		AnnualROIPct:         annualROI,
		PaybackMonths:        payback,
		Conservative:         band(net, 0.60),
		Moderate:             band(net, 0.80),
		Aggressive:           band(net, 1.00),
	}
}

// band compounds the net annual benefit with per-year growth multipliers.
// Year one is flat; years two through five step up 5% at a time.
func band(net int64, factor float64) model.ValueBand {
	n := float64(net) * factor
	threeYear := n + n*1.05 + n*1.10
	fiveYear := threeYear + n*1.15 + n*1.20
	return model.ValueBand{
		ThreeYear: int64(math.Round(threeYear)),
		FiveYear:  int64(math.Round(fiveYear)),
	}
}

func effectiveCustomers(in model.ROIInputs) int64 {
	if in.Members > 0 {
		return in.Members
	}
	per := int64(40_000)
	if in.InstitutionType == model.CreditUnion {
		per = 20_000
	}
	return in.TotalAssets / per
}

func capAt(v, max int64) int64 {
	if v > max {
		return max
	}
	return v
}
