package calculation

import (
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
)

// compoundScale bounds the digits kept from (1+r)^n before dividing
const compoundScale = 24

var one = decimal.NewFromInt(1)

// AnnuityTotals are the closed-form figures for a loan without an offset
type AnnuityTotals struct {
	PeriodicPayment decimal.Decimal `json:"periodicPayment"`
	TotalFees       decimal.Decimal `json:"totalFees"`
	TotalPayment    decimal.Decimal `json:"totalPayment"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
}

// AnnuityCalculator sizes fixed payments for standard compounding loans
type AnnuityCalculator struct{}

// NewAnnuityCalculator creates a new annuity calculator
func NewAnnuityCalculator() *AnnuityCalculator {
	return &AnnuityCalculator{}
}

// PeriodicPayment returns the payment that repays the principal over the amortization term
func (ac *AnnuityCalculator) PeriodicPayment(params domain.LoanParameters) (decimal.Decimal, error) {
	if err := ValidateLoanParameters(params); err != nil {
		return decimal.Zero, err
	}
	return periodicPayment(params), nil
}

// Calculate returns the payment and the aggregate totals.
// Payment totals cover the full amortization term; fees cover the payback term.
func (ac *AnnuityCalculator) Calculate(params domain.LoanParameters) (AnnuityTotals, error) {
	if err := ValidateLoanParameters(params); err != nil {
		return AnnuityTotals{}, err
	}
	return annuityTotals(params), nil
}

func annuityTotals(params domain.LoanParameters) AnnuityTotals {
	payment := periodicPayment(params)
	n := decimal.NewFromInt(int64(params.Periods()))

	totalFees := params.AnnualFee.Mul(decimal.NewFromInt(int64(params.PaybackYears)))
	totalPayment := payment.Mul(n).Add(totalFees)

	return AnnuityTotals{
		PeriodicPayment: payment,
		TotalFees:       totalFees,
		TotalPayment:    totalPayment,
		TotalInterest:   totalPayment.Sub(totalFees).Sub(params.Principal),
	}
}

// periodicPayment applies P = principal / (((1+r)^n - 1) / (r(1+r)^n)).
// At r = 0 the discount factor is undefined and the principal is spread evenly.
func periodicPayment(params domain.LoanParameters) decimal.Decimal {
	n := decimal.NewFromInt(int64(params.Periods()))
	r := params.PeriodicRate()
	if r.IsZero() {
		return params.Principal.Div(n)
	}

	compound := one.Add(r).Pow(n).Round(compoundScale)
	discount := compound.Sub(one).Div(r.Mul(compound))
	return params.Principal.Div(discount)
}

// ValidateLoanParameters rejects parameter sets that cannot be amortized
func ValidateLoanParameters(params domain.LoanParameters) error {
	const op = "validate_loan_parameters"

	if params.Principal.IsNegative() {
		return InvalidParameter(op, "principal cannot be negative, got %s", params.Principal.String())
	}
	if params.AnnualRate.IsNegative() {
		return InvalidParameter(op, "annual rate cannot be negative, got %s%%", params.AnnualRate.String())
	}
	if params.AnnualFee.IsNegative() {
		return InvalidParameter(op, "annual fee cannot be negative, got %s", params.AnnualFee.String())
	}
	if params.Frequency <= 0 {
		return InvalidParameter(op, "unsupported payment frequency %d", int(params.Frequency))
	}
	if params.AmortizationYears <= 0 {
		return InvalidParameter(op, "amortization term must be at least one year, got %d", params.AmortizationYears)
	}
	if params.PaybackYears < 0 {
		return InvalidParameter(op, "payback term cannot be negative, got %d", params.PaybackYears)
	}
	if params.PaybackYears > params.AmortizationYears {
		return InvalidParameter(op, "payback term (%d years) exceeds amortization term (%d years)",
			params.PaybackYears, params.AmortizationYears)
	}
	return nil
}

// ValidateOffsetParameters rejects offset settings that cannot be simulated
func ValidateOffsetParameters(offset domain.OffsetParameters) error {
	const op = "validate_offset_parameters"

	if offset.InitialBalance.IsNegative() {
		return InvalidParameter(op, "initial offset balance cannot be negative, got %s", offset.InitialBalance.String())
	}
	if offset.Contribution.IsNegative() {
		return InvalidParameter(op, "offset contribution cannot be negative, got %s", offset.Contribution.String())
	}
	if offset.FirstContributionIndex < 0 {
		return InvalidParameter(op, "first contribution index cannot be negative, got %d", offset.FirstContributionIndex)
	}
	return nil
}
