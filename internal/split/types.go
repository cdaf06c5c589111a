package split

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/homeloan/internal/calculation"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNoAttainableSplit is returned when every grid point fails composition
var ErrNoAttainableSplit = errors.New("no attainable split ratio")

// ProductTerms is the rate and fee of one loan product
type ProductTerms struct {
	AnnualRate decimal.Decimal `json:"annualRate"` // percent
	AnnualFee  decimal.Decimal `json:"annualFee"`
}

// OffsetFunding is the pool of surplus money held in the offset account
type OffsetFunding struct {
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Contribution   decimal.Decimal `json:"contribution"` // per payment period
}

// ComposeRequest describes one split of a loan into an offset tranche and a fixed tranche
type ComposeRequest struct {
	LoanAmount decimal.Decimal  `json:"loanAmount"`
	Ratio      decimal.Decimal  `json:"ratio"` // share on the offset tranche, 0..1
	FixedYears int              `json:"fixedYears"`
	TermYears  int              `json:"termYears"`
	Frequency  domain.Frequency `json:"frequency"`
	Variable   ProductTerms     `json:"variable"`
	Fixed      ProductTerms     `json:"fixed"`
	Funding    OffsetFunding    `json:"funding"`
}

// WithRatio returns a copy of the request at another split ratio
func (r ComposeRequest) WithRatio(ratio decimal.Decimal) ComposeRequest {
	r.Ratio = ratio
	return r
}

// Validate checks a split request before any account is built
func (r ComposeRequest) Validate() error {
	const op = "validate_compose_request"

	if err := r.ValidateWholeLoan(); err != nil {
		return err
	}
	if r.Ratio.IsNegative() || r.Ratio.GreaterThan(decimal.NewFromInt(1)) {
		return calculation.InvalidParameter(op, "split ratio must be within [0, 1], got %s", r.Ratio.String())
	}
	if r.FixedYears <= 0 || r.FixedYears >= r.TermYears {
		return calculation.InvalidParameter(op, "fixed period must be between 1 and %d years, got %d", r.TermYears-1, r.FixedYears)
	}
	return nil
}

// ValidateWholeLoan checks the fields used when the whole loan sits on one account.
// Ratio and the fixed period are ignored.
func (r ComposeRequest) ValidateWholeLoan() error {
	const op = "validate_compose_request"

	if r.LoanAmount.IsNegative() {
		return calculation.InvalidParameter(op, "loan amount cannot be negative, got %s", r.LoanAmount.String())
	}
	if r.TermYears <= 0 {
		return calculation.InvalidParameter(op, "loan term must be positive, got %d", r.TermYears)
	}
	if r.Frequency <= 0 {
		return calculation.InvalidParameter(op, "unsupported payment frequency %d", int(r.Frequency))
	}
	if r.Funding.InitialBalance.IsNegative() || r.Funding.Contribution.IsNegative() {
		return calculation.InvalidParameter(op, "offset funding cannot be negative")
	}
	return nil
}

// RequestFromConfiguration maps an input file onto a compose request at ratio 0
func RequestFromConfiguration(cfg *domain.Configuration) ComposeRequest {
	return ComposeRequest{
		LoanAmount: cfg.Purchase.LoanAmount(),
		FixedYears: cfg.Loan.FixedYears,
		TermYears:  cfg.Loan.TermYears,
		Frequency:  cfg.Loan.Frequency,
		Variable: ProductTerms{
			AnnualRate: cfg.Loan.Variable.Rate,
			AnnualFee:  cfg.Loan.Variable.AnnualFee,
		},
		Fixed: ProductTerms{
			AnnualRate: cfg.Loan.Fixed.Rate,
			AnnualFee:  cfg.Loan.Fixed.AnnualFee,
		},
		Funding: OffsetFunding{
			InitialBalance: cfg.Purchase.FundsSurplus(),
			Contribution:   cfg.Purchase.SurplusPerPeriod,
		},
	}
}

// Composition is one composed scenario together with the three accounts behind it
type Composition struct {
	Scenario      domain.SplitScenario
	OffsetTranche *calculation.OffsetAccount
	FixedTranche  *calculation.PlainAccount
	Continuation  *calculation.OffsetAccount
}

// SweepOptions controls the split-ratio grid search
type SweepOptions struct {
	Points       int  // grid points over [0, 1] inclusive
	Workers      int  // concurrent evaluations, 1 runs sequentially
	Refine       bool // run a finer grid between the best point's neighbours
	RefinePoints int
}

// DefaultSweepOptions returns the baseline 100-point sequential grid
func DefaultSweepOptions() SweepOptions {
	return SweepOptions{
		Points:       100,
		Workers:      1,
		Refine:       false,
		RefinePoints: 21,
	}
}

// SweepOptionsFromSettings overlays configured sweep settings on the defaults
func SweepOptionsFromSettings(s domain.SweepSettings) SweepOptions {
	opts := DefaultSweepOptions()
	if s.Points > 0 {
		opts.Points = s.Points
	}
	if s.Workers > 0 {
		opts.Workers = s.Workers
	}
	if s.RefinePoints > 0 {
		opts.RefinePoints = s.RefinePoints
	}
	opts.Refine = s.Refine
	return opts
}

// Validate rejects grids that cannot span [0, 1]
func (o SweepOptions) Validate() error {
	if o.Points < 2 {
		return calculation.InvalidParameter("validate_sweep_options", "sweep needs at least 2 grid points, got %d", o.Points)
	}
	if o.Refine && o.RefinePoints < 2 {
		return calculation.InvalidParameter("validate_sweep_options", "refinement needs at least 2 grid points, got %d", o.RefinePoints)
	}
	return nil
}

// SweepResult holds every evaluated grid point and the selected optimum
type SweepResult struct {
	Request    ComposeRequest         `json:"request"`
	Scenarios  []domain.SplitScenario `json:"scenarios"` // ascending ratio, unattainable points included
	Best       domain.SplitScenario   `json:"best"`
	BestIndex  int                    `json:"bestIndex"`
	Attainable int                    `json:"attainable"`
	Refined    *domain.SplitScenario  `json:"refined,omitempty"`
}

// Step is the spacing between grid points
func (r *SweepResult) Step() decimal.Decimal {
	if len(r.Scenarios) < 2 {
		return decimal.Zero
	}
	return decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(r.Scenarios) - 1)))
}

// Summary is a one-line description of the optimum
func (r *SweepResult) Summary() string {
	return fmt.Sprintf("best split %s%% offset, total interest+fees %s (%d of %d ratios attainable)",
		r.Best.RatioPercent().StringFixed(1), r.Best.TotalCost.StringFixed(2), r.Attainable, len(r.Scenarios))
}
