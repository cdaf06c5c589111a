package output

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "summary"
	curveSheet    = "curve"
	phasesSheet   = "phases"
	scheduleSheet = "schedule"
)

// BuildXLSX renders a workbook with a summary sheet and one sheet per report section
func BuildXLSX(report *Report) ([]byte, error) {
	if report.empty() {
		return nil, ErrEmptyReport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	title := report.Title
	if title == "" {
		title = "Home Loan Analysis"
	}
	_ = f.SetCellValue(summarySheet, "A1", title)

	row := 3
	summary := func(label string, value any) {
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	if p := report.Purchase; p != nil {
		summary("Property price", p.PropertyPrice.InexactFloat64())
		summary("Gross price", p.GrossPrice.InexactFloat64())
		summary("Loan amount", p.LoanAmount.InexactFloat64())
		summary("Deposit", p.Deposit.InexactFloat64())
		summary("Offset starting balance", p.FundsSurplus.InexactFloat64())
		summary("Surplus per period", p.SurplusPerPeriod.InexactFloat64())
		row++
	}

	if sweep := report.Sweep; sweep != nil {
		best := sweep.Best
		summary("Best offset split (%)", best.RatioPercent().InexactFloat64())
		summary("Offset amount", sweep.Request.LoanAmount.Mul(best.Ratio).InexactFloat64())
		summary("Fixed amount", sweep.Request.LoanAmount.Sub(sweep.Request.LoanAmount.Mul(best.Ratio)).InexactFloat64())
		summary("Offset tranche cost", best.OffsetCost.InexactFloat64())
		summary("Fixed tranche cost", best.FixedCost.InexactFloat64())
		summary("Total interest+fees", best.TotalCost.InexactFloat64())
		summary("Grid points", len(sweep.Scenarios))
		summary("Attainable points", sweep.Attainable)
		if r := sweep.Refined; r != nil {
			summary("Refined split (%)", r.RatioPercent().InexactFloat64())
			summary("Refined total", r.TotalCost.InexactFloat64())
		}

		if _, err := f.NewSheet(curveSheet); err != nil {
			return nil, err
		}
		headers := []any{"Ratio", "Offset cost", "Fixed cost", "Total", "Attainable", "Zero interest period", "Continuation start"}
		if err := f.SetSheetRow(curveSheet, "A1", &headers); err != nil {
			return nil, err
		}
		for i, s := range sweep.Scenarios {
			values := []any{
				s.Ratio.InexactFloat64(),
				s.OffsetCost.InexactFloat64(),
				s.FixedCost.InexactFloat64(),
				s.TotalCost.InexactFloat64(),
				s.Attainable,
				s.ZeroInterestPeriod,
				s.ContinuationStartIndex,
			}
			if err := f.SetSheetRow(curveSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
				return nil, err
			}
		}
	}

	if c := report.Composition; c != nil {
		summary("Split ratio (%)", c.Scenario.RatioPercent().InexactFloat64())
		summary("Offset cost", c.Scenario.OffsetCost.InexactFloat64())
		summary("Fixed cost", c.Scenario.FixedCost.InexactFloat64())
		summary("Total cost", c.Scenario.TotalCost.InexactFloat64())

		if _, err := f.NewSheet(phasesSheet); err != nil {
			return nil, err
		}
		headers := []any{"Phase", "Kind", "Principal", "Rate (%)", "Payment", "Periods", "Years", "Interest paid", "Fees paid", "Final owing"}
		if err := f.SetSheetRow(phasesSheet, "A1", &headers); err != nil {
			return nil, err
		}
		for i, p := range c.Phases {
			values := []any{
				p.Name,
				string(p.Kind),
				p.Principal.InexactFloat64(),
				p.AnnualRate.InexactFloat64(),
				p.PeriodicPayment.InexactFloat64(),
				p.Periods,
				p.Years.InexactFloat64(),
				p.InterestPaid.InexactFloat64(),
				p.FeesPaid.InexactFloat64(),
				p.FinalOwing.InexactFloat64(),
			}
			if err := f.SetSheetRow(phasesSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
				return nil, err
			}
		}
	}

	if s := report.Schedule; s != nil {
		summary("Schedule", s.Label)
		summary("Periodic payment", s.Result.PeriodicPayment.InexactFloat64())
		summary("Total interest", s.Result.TotalInterest.InexactFloat64())
		summary("Total fees", s.Result.TotalFees.InexactFloat64())
		summary("Total payment", s.Result.TotalPayment.InexactFloat64())
		summary("Paid off", s.PaidOff)

		if _, err := f.NewSheet(scheduleSheet); err != nil {
			return nil, err
		}
		headers := []any{"Period", "Year", "Amount paid", "Amount owing", "Interest", "Interest paid", "Fees paid", "Offset balance"}
		if err := f.SetSheetRow(scheduleSheet, "A1", &headers); err != nil {
			return nil, err
		}
		for i, e := range s.Result.History {
			values := []any{
				e.Period,
				e.Year.InexactFloat64(),
				e.AmountPaid.InexactFloat64(),
				e.AmountOwing.InexactFloat64(),
				e.Interest.InexactFloat64(),
				e.InterestPaid.InexactFloat64(),
				e.FeesPaid.InexactFloat64(),
				e.OffsetBalance.InexactFloat64(),
			}
			if err := f.SetSheetRow(scheduleSheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
