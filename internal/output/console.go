package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/homeloan/internal/split"
)

// curveStep is the grid spacing of the printed cost curve
const curveStep = 10

// ConsoleFormatter renders a report as plain text tables
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report.empty() {
		return nil, ErrEmptyReport
	}

	var buf bytes.Buffer
	title := report.Title
	if title == "" {
		title = "HOME LOAN ANALYSIS"
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, strings.ToUpper(title))
	fmt.Fprintln(&buf, strings.Repeat("=", 72))

	if p := report.Purchase; p != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Property price:      %s\n", FormatCurrency(p.PropertyPrice))
		fmt.Fprintf(&buf, "Gross price:         %s\n", FormatCurrency(p.GrossPrice))
		fmt.Fprintf(&buf, "Loan amount:         %s\n", FormatCurrency(p.LoanAmount))
		fmt.Fprintf(&buf, "Deposit:             %s\n", FormatCurrency(p.Deposit))
		fmt.Fprintf(&buf, "Offset starting:     %s\n", FormatCurrency(p.FundsSurplus))
		fmt.Fprintf(&buf, "Surplus per period:  %s\n", FormatCurrency(p.SurplusPerPeriod))
	}

	if report.Sweep != nil {
		writeSweep(&buf, report.Sweep)
	}
	if report.Composition != nil {
		writeComposition(&buf, report.Composition)
	}
	if report.Schedule != nil {
		writeSchedule(&buf, report.Schedule)
	}

	return buf.Bytes(), nil
}

func writeSweep(buf *bytes.Buffer, result *split.SweepResult) {
	best := result.Best
	offsetAmount := result.Request.LoanAmount.Mul(best.Ratio)
	fixedAmount := result.Request.LoanAmount.Sub(offsetAmount)

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "BEST SPLIT")
	fmt.Fprintln(buf, strings.Repeat("-", 72))
	fmt.Fprintf(buf, "Best offset split:   %s\n", FormatRatio(best.Ratio))
	fmt.Fprintf(buf, "Offset amount:       %s\n", FormatCurrency(offsetAmount))
	fmt.Fprintf(buf, "Fixed amount:        %s\n", FormatCurrency(fixedAmount))
	fmt.Fprintf(buf, "Offset tranche cost: %s\n", FormatCurrency(best.OffsetCost))
	fmt.Fprintf(buf, "Fixed tranche cost:  %s\n", FormatCurrency(best.FixedCost))
	fmt.Fprintf(buf, "Total interest+fees: %s\n", FormatCurrency(best.TotalCost))
	fmt.Fprintf(buf, "Grid:                %d points, %d attainable, step %s\n",
		len(result.Scenarios), result.Attainable, FormatRatio(result.Step()))

	if r := result.Refined; r != nil {
		fmt.Fprintf(buf, "Refined split:       %s, total interest+fees %s\n", FormatRatio(r.Ratio), FormatCurrency(r.TotalCost))
	}

	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-4s %10s %16s %16s %16s\n", "", "Split", "Offset cost", "Fixed cost", "Total")
	fmt.Fprintln(buf, strings.Repeat("-", 72))
	for _, s := range curveSample(result, curveStep) {
		marker := ""
		if s.Ratio.Equal(best.Ratio) {
			marker = "*"
		}
		if !s.Attainable {
			fmt.Fprintf(buf, "%-4s %10s %16s %16s %16s\n", marker, FormatRatio(s.Ratio), "-", "-", "unattainable")
			continue
		}
		fmt.Fprintf(buf, "%-4s %10s %16s %16s %16s\n", marker, FormatRatio(s.Ratio),
			FormatCurrency(s.OffsetCost), FormatCurrency(s.FixedCost), FormatCurrency(s.TotalCost))
	}
}

func writeComposition(buf *bytes.Buffer, c *CompositionSection) {
	s := c.Scenario
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "SPLIT %s OFFSET\n", FormatRatio(s.Ratio))
	fmt.Fprintln(buf, strings.Repeat("-", 72))
	fmt.Fprintf(buf, "Offset interest reaches zero at period %d; continuation contributions start at period %d\n",
		s.ZeroInterestPeriod, s.ContinuationStartIndex)
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%-16s %14s %8s %12s %8s %14s\n", "Phase", "Principal", "Rate", "Payment", "Periods", "Cost")
	for _, p := range c.Phases {
		fmt.Fprintf(buf, "%-16s %14s %8s %12s %8d %14s\n", p.Name, FormatCurrency(p.Principal),
			FormatPercentage(p.AnnualRate), FormatCurrency(p.PeriodicPayment), p.Periods, FormatCurrency(p.Cost()))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Offset cost: %s  Fixed cost: %s  Total: %s\n",
		FormatCurrency(s.OffsetCost), FormatCurrency(s.FixedCost), FormatCurrency(s.TotalCost))
}

func writeSchedule(buf *bytes.Buffer, s *ScheduleSection) {
	label := s.Label
	if label == "" {
		label = string(s.Kind) + " loan"
	}
	res := s.Result
	final := res.Final()

	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.ToUpper(label))
	fmt.Fprintln(buf, strings.Repeat("-", 72))
	fmt.Fprintf(buf, "Principal:           %s at %s\n", FormatCurrency(s.Parameters.Principal), FormatPercentage(s.Parameters.AnnualRate))
	fmt.Fprintf(buf, "Periodic payment:    %s (%s)\n", FormatCurrency(res.PeriodicPayment), s.Parameters.Frequency)
	fmt.Fprintf(buf, "Total interest:      %s\n", FormatCurrency(res.TotalInterest))
	fmt.Fprintf(buf, "Total fees:          %s\n", FormatCurrency(res.TotalFees))
	fmt.Fprintf(buf, "Total payment:       %s\n", FormatCurrency(res.TotalPayment))
	if s.PaidOff {
		fmt.Fprintf(buf, "Paid off after:      %s years (%d periods)\n", final.Year.StringFixed(2), len(res.History))
	} else {
		fmt.Fprintf(buf, "Still owing:         %s after %s years\n", FormatCurrency(final.AmountOwing), final.Year.StringFixed(2))
	}

	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "%6s %16s %16s %14s %14s\n", "Year", "Paid", "Owing", "Interest", "Offset")
	for _, e := range s.YearEnds() {
		fmt.Fprintf(buf, "%6s %16s %16s %14s %14s\n", e.Year.StringFixed(2), FormatCurrency(e.AmountPaid),
			FormatCurrency(e.AmountOwing), FormatCurrency(e.InterestPaid), FormatCurrency(e.OffsetBalance))
	}
}
