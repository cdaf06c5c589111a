package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Strategy",
		"Type",
		"Total Interest",
		"Total Fees",
		"Total Cost",
		"Payoff Years",
		"Paid Off",
		"Cost Diff from Base",
		"Cost % Change",
		"Payoff Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, strategyType string) []string {
	return []string{
		result.StrategyName,
		strategyType,
		result.TotalInterest.StringFixed(2),
		result.TotalFees.StringFixed(2),
		result.TotalCost.StringFixed(2),
		result.PayoffYears.StringFixed(2),
		strconv.FormatBool(result.PaidOff),
		result.CostDiffFromBase.StringFixed(2),
		result.CostPctFromBase.StringFixed(2),
		result.PayoffDiffFromBase.StringFixed(2),
	}
}
