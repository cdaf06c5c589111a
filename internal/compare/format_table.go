package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing strategies
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("LOAN STRUCTURE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Strategy: %s\n", compSet.BaseStrategyName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 20
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Strategy",
		numWidth, "Interest",
		numWidth, "Fees",
		numWidth, "Total Cost",
		numWidth, "Payoff"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s (%s):\n", alt.StrategyName, alt.Description))

			sb.WriteString(fmt.Sprintf("  Interest + Fees:  %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.CostDiffFromBase),
				tf.formatDecimal(alt.CostDiffFromBase.Abs()),
				alt.CostPctFromBase.StringFixed(1)))

			if !alt.PayoffDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Payoff:           %s%s years\n",
					tf.deltaSymbol(alt.PayoffDiffFromBase),
					alt.PayoffDiffFromBase.Abs().StringFixed(1)))
			}
		}
		sb.WriteString("\n")
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single strategy row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.StrategyName
	if isBase {
		name += " (base)"
	}

	payoff := result.PayoffYears.StringFixed(1) + " years"
	if !result.PaidOff {
		payoff = "not repaid"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.TotalInterest),
		numWidth, "$"+tf.formatDecimal(result.TotalFees),
		numWidth, "$"+tf.formatDecimal(result.TotalCost),
		numWidth, payoff)
}

// formatDecimal renders whole dollars with thousands separators
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	s := d.Round(0).Abs().String()
	var out strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out.WriteRune(',')
		}
		out.WriteRune(c)
	}
	if d.Round(0).IsNegative() {
		return "-" + out.String()
	}
	return out.String()
}

// deltaSymbol prefixes increases with +; decreases carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+"
	case delta.IsNegative():
		return "-"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
