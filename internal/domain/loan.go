package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Frequency is the number of payment periods per year
type Frequency int

const (
	Monthly     Frequency = 12
	Fortnightly Frequency = 26
	Weekly      Frequency = 52
)

var frequencyNames = map[string]Frequency{
	"monthly":     Monthly,
	"fortnightly": Fortnightly,
	"weekly":      Weekly,
}

// ParseFrequency accepts a named frequency or a positive number of periods per year
func ParseFrequency(s string) (Frequency, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if f, ok := frequencyNames[name]; ok {
		return f, nil
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, fmt.Errorf("unknown payment frequency %q (use monthly, fortnightly, weekly or periods per year)", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("payment frequency must be positive, got %d", n)
	}
	return Frequency(n), nil
}

func (f Frequency) String() string {
	for name, v := range frequencyNames {
		if v == f {
			return name
		}
	}
	return strconv.Itoa(int(f))
}

// MarshalText lets YAML and JSON carry the frequency by name
func (f Frequency) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses either a name or a periods-per-year count
func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// LoanParameters describes one loan account. AmortizationYears sizes the payment,
// PaybackYears is how long the account is actually held.
type LoanParameters struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRate        decimal.Decimal `json:"annualRate"` // percent, e.g. 2.49
	AmortizationYears int             `json:"amortizationYears"`
	PaybackYears      int             `json:"paybackYears"`
	Frequency         Frequency       `json:"frequency"`
	AnnualFee         decimal.Decimal `json:"annualFee"`
}

// Periods is the number of periods the payment is sized over
func (p LoanParameters) Periods() int {
	return int(p.Frequency) * p.AmortizationYears
}

// PaybackPeriods is the number of periods that are generated
func (p LoanParameters) PaybackPeriods() int {
	return int(p.Frequency) * p.PaybackYears
}

// PeriodicRate converts the annual percentage into a per-period fraction
func (p LoanParameters) PeriodicRate() decimal.Decimal {
	return p.AnnualRate.Div(decimal.NewFromInt(100 * int64(p.Frequency)))
}

// PeriodicFee spreads the annual fee evenly across the periods of a year
func (p LoanParameters) PeriodicFee() decimal.Decimal {
	return p.AnnualFee.Div(decimal.NewFromInt(int64(p.Frequency)))
}

// OffsetParameters configures the offset balance held against a loan
type OffsetParameters struct {
	InitialBalance         decimal.Decimal `json:"initialBalance"`
	Contribution           decimal.Decimal `json:"contribution"`           // added every period from FirstContributionIndex
	FirstContributionIndex int             `json:"firstContributionIndex"` // 0-based period index
}
