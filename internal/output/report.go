package output

import (
	"errors"
	"time"

	"github.com/rgehrsitz/homeloan/internal/calculation"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/rgehrsitz/homeloan/internal/split"
	"github.com/shopspring/decimal"
)

// ErrEmptyReport is returned when a report carries none of the result sections
var ErrEmptyReport = errors.New("report has no results")

// Report is everything a command can hand to a formatter or exporter.
// Any combination of sections may be set; at least one must be.
type Report struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Purchase    *PurchaseSummary    `json:"purchase,omitempty"`
	Sweep       *split.SweepResult  `json:"sweep,omitempty"`
	Composition *CompositionSection `json:"composition,omitempty"`
	Schedule    *ScheduleSection    `json:"schedule,omitempty"`
}

func (r *Report) empty() bool {
	return r == nil || (r.Sweep == nil && r.Composition == nil && r.Schedule == nil)
}

// PurchaseSummary holds the derived purchase figures
type PurchaseSummary struct {
	PropertyPrice    decimal.Decimal `json:"propertyPrice"`
	GrossPrice       decimal.Decimal `json:"grossPrice"`
	LoanAmount       decimal.Decimal `json:"loanAmount"`
	Deposit          decimal.Decimal `json:"deposit"`
	FundsSurplus     decimal.Decimal `json:"fundsSurplus"`
	SurplusPerPeriod decimal.Decimal `json:"surplusPerPeriod"`
}

// NewPurchaseSummary derives the purchase figures from the configured details
func NewPurchaseSummary(p domain.PurchaseDetails) *PurchaseSummary {
	return &PurchaseSummary{
		PropertyPrice:    p.PropertyPrice,
		GrossPrice:       p.GrossPrice(),
		LoanAmount:       p.LoanAmount(),
		Deposit:          p.Deposit(),
		FundsSurplus:     p.FundsSurplus(),
		SurplusPerPeriod: p.SurplusPerPeriod,
	}
}

// PhaseSummary condenses one account of a composed split
type PhaseSummary struct {
	Name                   string                  `json:"name"`
	Kind                   calculation.AccountKind `json:"kind"`
	Principal              decimal.Decimal         `json:"principal"`
	AnnualRate             decimal.Decimal         `json:"annualRate"`
	PeriodicPayment        decimal.Decimal         `json:"periodicPayment"`
	Periods                int                     `json:"periods"`
	Years                  decimal.Decimal         `json:"years"`
	InterestPaid           decimal.Decimal         `json:"interestPaid"`
	FeesPaid               decimal.Decimal         `json:"feesPaid"`
	FinalOwing             decimal.Decimal         `json:"finalOwing"`
	FirstContributionIndex int                     `json:"firstContributionIndex"`
}

// Cost is the interest plus fees incurred in the phase
func (p PhaseSummary) Cost() decimal.Decimal {
	return p.InterestPaid.Add(p.FeesPaid)
}

func summarizePhase(name string, account calculation.LoanAccount, firstContribution int) PhaseSummary {
	final := account.Result().Final()
	return PhaseSummary{
		Name:                   name,
		Kind:                   account.Kind(),
		Principal:              account.Parameters().Principal,
		AnnualRate:             account.Parameters().AnnualRate,
		PeriodicPayment:        account.PeriodicPayment(),
		Periods:                len(account.History()),
		Years:                  final.Year,
		InterestPaid:           final.InterestPaid,
		FeesPaid:               final.FeesPaid,
		FinalOwing:             final.AmountOwing,
		FirstContributionIndex: firstContribution,
	}
}

// CompositionSection is a single split ratio broken down by phase
type CompositionSection struct {
	Scenario domain.SplitScenario `json:"scenario"`
	Phases   []PhaseSummary       `json:"phases"`
}

// NewCompositionSection summarizes the three accounts of a composition
func NewCompositionSection(c *split.Composition) *CompositionSection {
	return &CompositionSection{
		Scenario: c.Scenario,
		Phases: []PhaseSummary{
			summarizePhase("offset tranche", c.OffsetTranche, c.OffsetTranche.Offset().FirstContributionIndex),
			summarizePhase("fixed tranche", c.FixedTranche, -1),
			summarizePhase("continuation", c.Continuation, c.Continuation.Offset().FirstContributionIndex),
		},
	}
}

// ScheduleSection is the full payment history of one account
type ScheduleSection struct {
	Label      string                    `json:"label"`
	Kind       calculation.AccountKind   `json:"kind"`
	Parameters domain.LoanParameters     `json:"parameters"`
	Result     domain.AmortizationResult `json:"result"`
	PaidOff    bool                      `json:"paidOff"`
}

// NewScheduleSection captures an account's totals and history
func NewScheduleSection(label string, account calculation.LoanAccount) *ScheduleSection {
	result := account.Result()
	return &ScheduleSection{
		Label:      label,
		Kind:       account.Kind(),
		Parameters: account.Parameters(),
		Result:     *result,
		PaidOff:    result.PaidOff(),
	}
}

// YearEnds returns the entries that close each year of the schedule, plus the final
// entry when the loan ends mid-year.
func (s *ScheduleSection) YearEnds() []domain.PaymentScheduleEntry {
	freq := int(s.Parameters.Frequency)
	history := s.Result.History
	if freq <= 0 || len(history) == 0 {
		return nil
	}

	rows := make([]domain.PaymentScheduleEntry, 0, len(history)/freq+1)
	for _, entry := range history {
		if (entry.Period+1)%freq == 0 {
			rows = append(rows, entry)
		}
	}
	if last := history[len(history)-1]; (last.Period+1)%freq != 0 {
		rows = append(rows, last)
	}
	return rows
}

// curveSample picks every step-th grid point plus the optimum, in ratio order
func curveSample(result *split.SweepResult, step int) []domain.SplitScenario {
	if step < 1 {
		step = 1
	}
	sample := make([]domain.SplitScenario, 0, len(result.Scenarios)/step+2)
	for i, s := range result.Scenarios {
		if i%step == 0 || i == result.BestIndex || i == len(result.Scenarios)-1 {
			sample = append(sample, s)
		}
	}
	return sample
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal as percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRatio formats a 0..1 split ratio as a percentage
func FormatRatio(ratio decimal.Decimal) string {
	return FormatPercentage(ratio.Mul(decimal.NewFromInt(100)))
}
