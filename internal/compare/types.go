package compare

import (
	"fmt"

	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one way of structuring the loan with its lifetime figures
type ComparisonResult struct {
	StrategyName string `json:"strategyName"`
	Description  string `json:"description"`

	// Key Metrics
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalFees     decimal.Decimal `json:"totalFees"`
	TotalCost     decimal.Decimal `json:"totalCost"` // interest + fees
	PayoffYears   decimal.Decimal `json:"payoffYears"`
	PaidOff       bool            `json:"paidOff"`

	// Comparison to Base
	CostDiffFromBase   decimal.Decimal `json:"costDiffFromBase"`
	CostPctFromBase    decimal.Decimal `json:"costPctFromBase"`
	PayoffDiffFromBase decimal.Decimal `json:"payoffDiffFromBase"`
}

// ComparisonSet is the best split against the single-account alternatives
type ComparisonSet struct {
	BaseStrategyName   string             `json:"baseStrategyName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts lifetime figures from payment histories
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics sums the final rows of the accounts that make up one strategy.
// The payoff point is the latest account end measured from the start of the loan.
func (mc *MetricsCalculator) CalculateMetrics(name, description string, phases []Phase) ComparisonResult {
	result := ComparisonResult{
		StrategyName: name,
		Description:  description,
		PaidOff:      len(phases) > 0,
	}

	for _, p := range phases {
		final := p.Result.Final()
		result.TotalInterest = result.TotalInterest.Add(final.InterestPaid)
		result.TotalFees = result.TotalFees.Add(final.FeesPaid)

		end := final.Year.Add(decimal.NewFromInt(int64(p.StartYear)))
		if end.GreaterThan(result.PayoffYears) {
			result.PayoffYears = end
		}
		if p.Final && !p.Result.PaidOff() {
			result.PaidOff = false
		}
	}
	result.TotalCost = result.TotalInterest.Add(result.TotalFees)

	return result
}

// Phase is one account of a strategy, starting StartYear years into the loan.
// Final marks the accounts that must reach zero for the loan to be paid off.
type Phase struct {
	Result    *domain.AmortizationResult
	StartYear int
	Final     bool
}

// CalculateComparison computes comparison metrics between a strategy and a base
func (mc *MetricsCalculator) CalculateComparison(strategy, base ComparisonResult) ComparisonResult {
	strategy.CostDiffFromBase = strategy.TotalCost.Sub(base.TotalCost)

	if !base.TotalCost.IsZero() {
		strategy.CostPctFromBase = strategy.CostDiffFromBase.
			Div(base.TotalCost).
			Mul(decimal.NewFromInt(100))
	}

	strategy.PayoffDiffFromBase = strategy.PayoffYears.Sub(base.PayoffYears)

	return strategy
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Lowest lifetime cost
	cheapest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalCost.LessThan(cheapest.TotalCost) {
			cheapest = alt
		}
	}

	if cheapest == compSet.BaseResult {
		runnerUp := compSet.AlternativeResults[0]
		for _, alt := range compSet.AlternativeResults[1:] {
			if alt.TotalCost.LessThan(runnerUp.TotalCost) {
				runnerUp = alt
			}
		}
		recommendations = append(recommendations,
			"Lowest Cost: "+compSet.BaseStrategyName+" saves $"+runnerUp.CostDiffFromBase.StringFixed(0)+
				" in interest and fees over "+runnerUp.StrategyName)
	} else {
		recommendations = append(recommendations,
			"Lowest Cost: "+cheapest.StrategyName+" costs $"+cheapest.CostDiffFromBase.Abs().StringFixed(0)+
				" less than "+compSet.BaseStrategyName)
	}

	// Earliest payoff
	fastest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PaidOff && alt.PayoffYears.LessThan(fastest.PayoffYears) {
			fastest = alt
		}
	}

	if fastest != compSet.BaseResult {
		recommendations = append(recommendations,
			"Earliest Payoff: "+fastest.StrategyName+" clears the loan "+
				fmt.Sprintf("%s years sooner", fastest.PayoffDiffFromBase.Abs().StringFixed(1)))
	}

	return recommendations
}
