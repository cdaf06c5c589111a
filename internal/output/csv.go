package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes the principal table of a report: the sweep curve, the phase
// breakdown of a single split, or a payment schedule, whichever comes first.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	if report.empty() {
		return nil, ErrEmptyReport
	}

	var rows [][]string
	switch {
	case report.Sweep != nil:
		rows = append(rows, []string{"Ratio", "OffsetCost", "FixedCost", "TotalCost", "Attainable", "ZeroInterestPeriod", "ContinuationStartIndex", "Best"})
		for i, s := range report.Sweep.Scenarios {
			rows = append(rows, []string{
				s.Ratio.StringFixed(6),
				s.OffsetCost.StringFixed(2),
				s.FixedCost.StringFixed(2),
				s.TotalCost.StringFixed(2),
				strconv.FormatBool(s.Attainable),
				strconv.Itoa(s.ZeroInterestPeriod),
				strconv.Itoa(s.ContinuationStartIndex),
				strconv.FormatBool(i == report.Sweep.BestIndex),
			})
		}
	case report.Composition != nil:
		rows = append(rows, []string{"Phase", "Kind", "Principal", "AnnualRate", "PeriodicPayment", "Periods", "Years", "InterestPaid", "FeesPaid", "FinalOwing"})
		for _, p := range report.Composition.Phases {
			rows = append(rows, []string{
				p.Name,
				string(p.Kind),
				p.Principal.StringFixed(2),
				p.AnnualRate.String(),
				p.PeriodicPayment.StringFixed(2),
				strconv.Itoa(p.Periods),
				p.Years.StringFixed(4),
				p.InterestPaid.StringFixed(2),
				p.FeesPaid.StringFixed(2),
				p.FinalOwing.StringFixed(2),
			})
		}
	default:
		rows = append(rows, []string{"Period", "Year", "AmountPaid", "AmountOwing", "Interest", "InterestPaid", "FeesPaid", "OffsetBalance"})
		for _, e := range report.Schedule.Result.History {
			rows = append(rows, []string{
				strconv.Itoa(e.Period),
				e.Year.StringFixed(4),
				e.AmountPaid.StringFixed(2),
				e.AmountOwing.StringFixed(2),
				e.Interest.StringFixed(2),
				e.InterestPaid.StringFixed(2),
				e.FeesPaid.StringFixed(2),
				e.OffsetBalance.StringFixed(2),
			})
		}
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
