package split

import (
	"context"

	"github.com/rgehrsitz/homeloan/internal/calculation"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
)

// PhaseComposer turns one split ratio into the three sequential loan accounts:
// the offset tranche for the whole term, the fixed tranche for the fixed period,
// and the continuation of the fixed tranche's balance as an offset loan.
type PhaseComposer struct {
	Logger calculation.Logger
}

// NewPhaseComposer creates a composer with a no-op logger
func NewPhaseComposer() *PhaseComposer {
	return &PhaseComposer{Logger: calculation.NopLogger{}}
}

// SetLogger sets the logger; nil restores the no-op logger
func (pc *PhaseComposer) SetLogger(l calculation.Logger) {
	pc.Logger = calculation.LoggerOrNop(l)
}

// Compose builds the three phases for req.Ratio.
// A ratio whose offset tranche never reaches zero interest after the fixed period
// fails with calculation.ErrInvalidScenario.
func (pc *PhaseComposer) Compose(ctx context.Context, req ComposeRequest) (*Composition, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := calculation.LoggerOrNop(pc.Logger)

	offsetPrincipal := req.LoanAmount.Mul(req.Ratio)
	fixedPrincipal := req.LoanAmount.Sub(offsetPrincipal)

	// Phase 1: offset tranche, funded from the first period
	offsetTranche, err := calculation.NewOffsetAccount(domain.LoanParameters{
		Principal:         offsetPrincipal,
		AnnualRate:        req.Variable.AnnualRate,
		AmortizationYears: req.TermYears,
		PaybackYears:      req.TermYears,
		Frequency:         req.Frequency,
		AnnualFee:         req.Variable.AnnualFee,
	}, domain.OffsetParameters{
		InitialBalance:         req.Funding.InitialBalance,
		Contribution:           req.Funding.Contribution,
		FirstContributionIndex: 0,
	})
	if err != nil {
		return nil, err
	}

	// Phase 2: fixed tranche, sized over the full term but held for the fixed period
	fixedTranche, err := calculation.NewPlainAccount(domain.LoanParameters{
		Principal:         fixedPrincipal,
		AnnualRate:        req.Fixed.AnnualRate,
		AmortizationYears: req.TermYears,
		PaybackYears:      req.FixedYears,
		Frequency:         req.Frequency,
		AnnualFee:         req.Fixed.AnnualFee,
	})
	if err != nil {
		return nil, err
	}

	zeroIdx, startIdx, err := FindZeroInterestIndex(offsetTranche.History(), req.FixedYears, req.Frequency)
	if err != nil {
		log.Debugf("split %s: %v", req.Ratio.StringFixed(4), err)
		return nil, err
	}

	// Phase 3: the fixed tranche's remaining balance continues as an offset loan.
	// Surplus only flows into it once the first tranche no longer needs it.
	remainingYears := req.TermYears - req.FixedYears
	continuation, err := calculation.NewOffsetAccount(domain.LoanParameters{
		Principal:         fixedTranche.Result().Final().AmountOwing,
		AnnualRate:        req.Variable.AnnualRate,
		AmortizationYears: remainingYears,
		PaybackYears:      remainingYears,
		Frequency:         req.Frequency,
		AnnualFee:         decimal.Zero,
	}, domain.OffsetParameters{
		InitialBalance:         decimal.Zero,
		Contribution:           req.Funding.Contribution,
		FirstContributionIndex: startIdx,
	})
	if err != nil {
		return nil, err
	}

	offsetCost := offsetTranche.Result().ScheduledCost()
	fixedCost := fixedTranche.Result().ScheduledCost().Add(continuation.Result().ScheduledCost())

	log.Debugf("split %s: offset cost %s, fixed cost %s, zero interest at period %d",
		req.Ratio.StringFixed(4), offsetCost.StringFixed(2), fixedCost.StringFixed(2), zeroIdx)

	return &Composition{
		Scenario: domain.SplitScenario{
			Ratio:                  req.Ratio,
			OffsetCost:             offsetCost,
			FixedCost:              fixedCost,
			TotalCost:              offsetCost.Add(fixedCost),
			ZeroInterestPeriod:     zeroIdx,
			ContinuationStartIndex: startIdx,
			Attainable:             true,
		},
		OffsetTranche: offsetTranche,
		FixedTranche:  fixedTranche,
		Continuation:  continuation,
	}, nil
}

// FindZeroInterestIndex locates the first period at or after fixedYears whose interest is
// zero. It returns that period's index and the same point counted from the end of the
// fixed period.
func FindZeroInterestIndex(history []domain.PaymentScheduleEntry, fixedYears int, freq domain.Frequency) (int, int, error) {
	fixed := decimal.NewFromInt(int64(fixedYears))
	periodsPerYear := decimal.NewFromInt(int64(freq))

	for i, entry := range history {
		if entry.Year.LessThan(fixed) || entry.Interest.IsPositive() {
			continue
		}
		rel := entry.Year.Sub(fixed).Mul(periodsPerYear).Round(0).IntPart()
		return i, int(rel), nil
	}

	return -1, -1, calculation.InvalidScenario("find_zero_interest_index",
		"offset interest never reaches zero after year %d within %d periods", fixedYears, len(history))
}

// ComposeOffsetOnly runs the whole loan as one offset account on the variable product
func (pc *PhaseComposer) ComposeOffsetOnly(req ComposeRequest) (*calculation.OffsetAccount, error) {
	if err := req.ValidateWholeLoan(); err != nil {
		return nil, err
	}
	return calculation.NewOffsetAccount(domain.LoanParameters{
		Principal:         req.LoanAmount,
		AnnualRate:        req.Variable.AnnualRate,
		AmortizationYears: req.TermYears,
		PaybackYears:      req.TermYears,
		Frequency:         req.Frequency,
		AnnualFee:         req.Variable.AnnualFee,
	}, domain.OffsetParameters{
		InitialBalance: req.Funding.InitialBalance,
		Contribution:   req.Funding.Contribution,
	})
}

// ComposePlain runs the whole loan as one plain account on the given product
func (pc *PhaseComposer) ComposePlain(req ComposeRequest, product ProductTerms) (*calculation.PlainAccount, error) {
	if err := req.ValidateWholeLoan(); err != nil {
		return nil, err
	}
	return calculation.NewPlainAccount(domain.LoanParameters{
		Principal:         req.LoanAmount,
		AnnualRate:        product.AnnualRate,
		AmortizationYears: req.TermYears,
		PaybackYears:      req.TermYears,
		Frequency:         req.Frequency,
		AnnualFee:         product.AnnualFee,
	})
}
