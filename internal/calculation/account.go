package calculation

import (
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountKind distinguishes the two loan account variants
type AccountKind string

const (
	AccountPlain  AccountKind = "plain"
	AccountOffset AccountKind = "offset"
)

// LoanAccount is a fully computed loan: payment, totals and payment history
type LoanAccount interface {
	Kind() AccountKind
	Parameters() domain.LoanParameters
	PeriodicPayment() decimal.Decimal
	TotalFees() decimal.Decimal
	TotalInterest() decimal.Decimal
	TotalPayment() decimal.Decimal
	History() []domain.PaymentScheduleEntry
	Result() *domain.AmortizationResult
}

type baseAccount struct {
	params domain.LoanParameters
	result domain.AmortizationResult
}

func (a *baseAccount) Parameters() domain.LoanParameters      { return a.params }
func (a *baseAccount) PeriodicPayment() decimal.Decimal       { return a.result.PeriodicPayment }
func (a *baseAccount) TotalFees() decimal.Decimal             { return a.result.TotalFees }
func (a *baseAccount) TotalInterest() decimal.Decimal         { return a.result.TotalInterest }
func (a *baseAccount) TotalPayment() decimal.Decimal          { return a.result.TotalPayment }
func (a *baseAccount) History() []domain.PaymentScheduleEntry { return a.result.History }
func (a *baseAccount) Result() *domain.AmortizationResult     { return &a.result }

// PlainAccount is amortized analytically with a linear schedule
type PlainAccount struct {
	baseAccount
}

// Kind implements LoanAccount
func (a *PlainAccount) Kind() AccountKind { return AccountPlain }

// NewPlainAccount computes a loan without an offset.
// Totals span the full amortization term; the history covers the payback term only,
// with a constant interest component of total interest / n per period.
func NewPlainAccount(params domain.LoanParameters) (*PlainAccount, error) {
	if err := ValidateLoanParameters(params); err != nil {
		return nil, err
	}

	totals := annuityTotals(params)
	n := decimal.NewFromInt(int64(params.Periods()))
	freq := decimal.NewFromInt(int64(params.Frequency))
	interestPerPeriod := totals.TotalInterest.Div(n)
	feePerPeriod := params.PeriodicFee()

	periods := params.PaybackPeriods()
	history := make([]domain.PaymentScheduleEntry, 0, periods)
	for i := 0; i < periods; i++ {
		k := decimal.NewFromInt(int64(i + 1))
		paid := totals.PeriodicPayment.Mul(k)
		interestPaid := interestPerPeriod.Mul(k)

		owing := params.Principal.Sub(paid.Sub(interestPaid))
		if owing.IsNegative() {
			owing = decimal.Zero
		}

		history = append(history, domain.PaymentScheduleEntry{
			Period:        i,
			Year:          k.Div(freq),
			AmountPaid:    paid,
			AmountOwing:   owing,
			Interest:      interestPerPeriod,
			InterestPaid:  interestPaid,
			FeesPaid:      feePerPeriod.Mul(k),
			OffsetBalance: decimal.Zero,
		})
	}

	return &PlainAccount{baseAccount{
		params: params,
		result: domain.AmortizationResult{
			PeriodicPayment: totals.PeriodicPayment,
			TotalFees:       totals.TotalFees,
			TotalPayment:    totals.TotalPayment,
			TotalInterest:   totals.TotalInterest,
			History:         history,
		},
	}}, nil
}

// OffsetAccount is amortized by the offset recursion and may repay early
type OffsetAccount struct {
	baseAccount
	offset domain.OffsetParameters
}

// Kind implements LoanAccount
func (a *OffsetAccount) Kind() AccountKind { return AccountOffset }

// Offset returns the offset settings the account was built with
func (a *OffsetAccount) Offset() domain.OffsetParameters { return a.offset }

// NewOffsetAccount computes a loan held against an offset balance.
// Fees are charged for the elapsed years of the generated schedule, so early payoff
// shortens the fee-bearing period.
func NewOffsetAccount(params domain.LoanParameters, offset domain.OffsetParameters) (*OffsetAccount, error) {
	if err := ValidateLoanParameters(params); err != nil {
		return nil, err
	}
	if err := ValidateOffsetParameters(offset); err != nil {
		return nil, err
	}

	payment := periodicPayment(params)
	history, err := NewOffsetScheduleGenerator().Generate(OffsetScheduleInput{
		Principal:    params.Principal,
		PeriodicRate: params.PeriodicRate(),
		Payment:      payment,
		Offset:       offset,
		Periods:      params.PaybackPeriods(),
		Frequency:    params.Frequency,
		AnnualFee:    params.AnnualFee,
	})
	if err != nil {
		return nil, err
	}

	result := domain.AmortizationResult{
		PeriodicPayment: payment,
		History:         history,
	}
	if len(history) > 0 {
		final := history[len(history)-1]
		result.TotalFees = params.AnnualFee.Mul(final.Year)
		result.TotalInterest = final.InterestPaid
		result.TotalPayment = params.Principal.Sub(final.AmountOwing).Add(result.TotalInterest).Add(result.TotalFees)
	}

	return &OffsetAccount{
		baseAccount: baseAccount{params: params, result: result},
		offset:      offset,
	}, nil
}
