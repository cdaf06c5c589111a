package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildPDF renders a printable summary of the report
func BuildPDF(report *Report) ([]byte, error) {
	if report.empty() {
		return nil, ErrEmptyReport
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	title := report.Title
	if title == "" {
		title = "Home Loan Analysis"
	}
	pdf.Cell(0, 8, title)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if !report.GeneratedAt.IsZero() {
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04")))
		pdf.Ln(8)
	}

	line := func(format string, args ...any) {
		pdf.Cell(0, 6, fmt.Sprintf(format, args...))
		pdf.Ln(5)
	}
	header := func(widths []float64, labels ...string) {
		pdf.SetFont("Arial", "B", 10)
		for i, label := range labels {
			pdf.CellFormat(widths[i], 6, label, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
	}
	cells := func(widths []float64, values ...string) {
		for i, v := range values {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, v, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if p := report.Purchase; p != nil {
		line("Gross price: %s", FormatCurrency(p.GrossPrice))
		line("Loan amount: %s", FormatCurrency(p.LoanAmount))
		line("Deposit: %s", FormatCurrency(p.Deposit))
		line("Offset starting balance: %s", FormatCurrency(p.FundsSurplus))
		pdf.Ln(4)
	}

	if sweep := report.Sweep; sweep != nil {
		best := sweep.Best
		offsetAmount := sweep.Request.LoanAmount.Mul(best.Ratio)
		pdf.SetFont("Arial", "B", 11)
		line("Best split")
		pdf.SetFont("Arial", "", 10)
		line("Offset split: %s", FormatRatio(best.Ratio))
		line("Offset amount: %s", FormatCurrency(offsetAmount))
		line("Fixed amount: %s", FormatCurrency(sweep.Request.LoanAmount.Sub(offsetAmount)))
		line("Total interest+fees: %s", FormatCurrency(best.TotalCost))
		if r := sweep.Refined; r != nil {
			line("Refined split: %s at %s", FormatRatio(r.Ratio), FormatCurrency(r.TotalCost))
		}
		pdf.Ln(4)

		widths := []float64{30, 45, 45, 45}
		header(widths, "Split", "Offset cost", "Fixed cost", "Total")
		for _, s := range curveSample(sweep, curveStep) {
			if !s.Attainable {
				cells(widths, FormatRatio(s.Ratio), "-", "-", "unattainable")
				continue
			}
			cells(widths, FormatRatio(s.Ratio), FormatCurrency(s.OffsetCost), FormatCurrency(s.FixedCost), FormatCurrency(s.TotalCost))
		}
		pdf.Ln(6)
	}

	if c := report.Composition; c != nil {
		pdf.SetFont("Arial", "B", 11)
		line("Split %s offset", FormatRatio(c.Scenario.Ratio))
		pdf.SetFont("Arial", "", 10)
		widths := []float64{40, 35, 20, 30, 20, 35}
		header(widths, "Phase", "Principal", "Rate", "Payment", "Periods", "Cost")
		for _, p := range c.Phases {
			cells(widths, p.Name, FormatCurrency(p.Principal), FormatPercentage(p.AnnualRate),
				FormatCurrency(p.PeriodicPayment), fmt.Sprintf("%d", p.Periods), FormatCurrency(p.Cost()))
		}
		line("Total: %s", FormatCurrency(c.Scenario.TotalCost))
		pdf.Ln(6)
	}

	if s := report.Schedule; s != nil {
		pdf.SetFont("Arial", "B", 11)
		line("%s", s.Label)
		pdf.SetFont("Arial", "", 10)
		line("Periodic payment: %s", FormatCurrency(s.Result.PeriodicPayment))
		line("Total interest: %s  Total fees: %s", FormatCurrency(s.Result.TotalInterest), FormatCurrency(s.Result.TotalFees))
		pdf.Ln(2)
		widths := []float64{20, 40, 40, 40, 40}
		header(widths, "Year", "Paid", "Owing", "Interest", "Offset")
		for _, e := range s.YearEnds() {
			cells(widths, e.Year.StringFixed(2), FormatCurrency(e.AmountPaid), FormatCurrency(e.AmountOwing),
				FormatCurrency(e.InterestPaid), FormatCurrency(e.OffsetBalance))
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
