package split

import (
	"context"
	"testing"

	"github.com/rgehrsitz/homeloan/internal/calculation"
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioRequest is the 800k loan with a 2 year fix at 1.88% and 2.49% variable
func scenarioRequest(ratio string) ComposeRequest {
	return ComposeRequest{
		LoanAmount: decimal.NewFromInt(800000),
		Ratio:      decimal.RequireFromString(ratio),
		FixedYears: 2,
		TermYears:  30,
		Frequency:  domain.Monthly,
		Variable: ProductTerms{
			AnnualRate: decimal.RequireFromString("2.49"),
			AnnualFee:  decimal.NewFromInt(100),
		},
		Fixed: ProductTerms{
			AnnualRate: decimal.RequireFromString("1.88"),
			AnnualFee:  decimal.NewFromInt(100),
		},
		Funding: OffsetFunding{
			InitialBalance: decimal.NewFromInt(48000),
			Contribution:   decimal.NewFromInt(2000),
		},
	}
}

func TestNewPhaseComposer(t *testing.T) {
	pc := NewPhaseComposer()
	assert.NotNil(t, pc)
	assert.IsType(t, calculation.NopLogger{}, pc.Logger)

	custom := &recordingLogger{}
	pc.SetLogger(custom)
	assert.Equal(t, custom, pc.Logger)

	pc.SetLogger(nil)
	assert.IsType(t, calculation.NopLogger{}, pc.Logger)
}

func TestPhaseComposer_Compose(t *testing.T) {
	composition, err := NewPhaseComposer().Compose(context.Background(), scenarioRequest("0.15"))
	require.NoError(t, err)

	s := composition.Scenario
	assert.True(t, s.Attainable)
	assert.True(t, s.Ratio.Equal(decimal.RequireFromString("0.15")))

	// The offset tranche runs from period 0, so its crossing must fall after the fix ends
	assert.GreaterOrEqual(t, s.ZeroInterestPeriod, 24)
	assert.GreaterOrEqual(t, s.ContinuationStartIndex, 0)
	assert.Equal(t, 30, s.ZeroInterestPeriod)
	assert.Equal(t, 7, s.ContinuationStartIndex)

	assert.Len(t, composition.OffsetTranche.History(), 259)
	assert.Len(t, composition.FixedTranche.History(), 24)
	assert.Len(t, composition.Continuation.History(), 287)

	assert.InDelta(t, 4373.00, s.OffsetCost.InexactFloat64(), 0.05)
	assert.InDelta(t, 131991.78, s.FixedCost.InexactFloat64(), 0.05)
	assert.True(t, s.TotalCost.Equal(s.OffsetCost.Add(s.FixedCost)))
}

func TestPhaseComposer_PhaseWiring(t *testing.T) {
	req := scenarioRequest("0.15")
	composition, err := NewPhaseComposer().Compose(context.Background(), req)
	require.NoError(t, err)

	offsetParams := composition.OffsetTranche.Parameters()
	assert.True(t, offsetParams.Principal.Equal(decimal.NewFromInt(120000)))
	assert.Equal(t, 30, offsetParams.AmortizationYears)
	assert.Equal(t, 30, offsetParams.PaybackYears)
	assert.Equal(t, 0, composition.OffsetTranche.Offset().FirstContributionIndex)

	fixedParams := composition.FixedTranche.Parameters()
	assert.True(t, fixedParams.Principal.Equal(decimal.NewFromInt(680000)))
	assert.Equal(t, 30, fixedParams.AmortizationYears)
	assert.Equal(t, 2, fixedParams.PaybackYears)
	assert.True(t, fixedParams.AnnualRate.Equal(req.Fixed.AnnualRate))

	contParams := composition.Continuation.Parameters()
	assert.True(t, contParams.Principal.Equal(composition.FixedTranche.Result().Final().AmountOwing))
	assert.Equal(t, 28, contParams.AmortizationYears)
	assert.True(t, contParams.AnnualFee.IsZero())
	assert.True(t, composition.Continuation.Offset().InitialBalance.IsZero())
	assert.Equal(t, composition.Scenario.ContinuationStartIndex, composition.Continuation.Offset().FirstContributionIndex)
}

func TestPhaseComposer_ZeroRatioIsInvalidScenario(t *testing.T) {
	composition, err := NewPhaseComposer().Compose(context.Background(), scenarioRequest("0"))
	assert.Nil(t, composition)
	assert.ErrorIs(t, err, calculation.ErrInvalidScenario)
}

func TestPhaseComposer_FullOffsetRatio(t *testing.T) {
	composition, err := NewPhaseComposer().Compose(context.Background(), scenarioRequest("1"))
	require.NoError(t, err)

	assert.Equal(t, 174, composition.Scenario.ZeroInterestPeriod)
	assert.Equal(t, 151, composition.Scenario.ContinuationStartIndex)
	// Nothing borrowed on the fixed tranche, only its fee remains
	assert.InDelta(t, 200, composition.Scenario.FixedCost.InexactFloat64(), 1e-6)
}

func TestPhaseComposer_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *ComposeRequest)
	}{
		{"ratio above one", func(r *ComposeRequest) { r.Ratio = decimal.RequireFromString("1.01") }},
		{"negative ratio", func(r *ComposeRequest) { r.Ratio = decimal.RequireFromString("-0.1") }},
		{"fixed period equals term", func(r *ComposeRequest) { r.FixedYears = 30 }},
		{"no fixed period", func(r *ComposeRequest) { r.FixedYears = 0 }},
		{"negative loan", func(r *ComposeRequest) { r.LoanAmount = decimal.NewFromInt(-1) }},
		{"negative rate", func(r *ComposeRequest) { r.Variable.AnnualRate = decimal.NewFromInt(-2) }},
		{"zero frequency", func(r *ComposeRequest) { r.Frequency = 0 }},
		{"negative funding", func(r *ComposeRequest) { r.Funding.Contribution = decimal.NewFromInt(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scenarioRequest("0.5")
			tt.mutate(&req)

			_, err := NewPhaseComposer().Compose(context.Background(), req)
			assert.ErrorIs(t, err, calculation.ErrInvalidParameter)
		})
	}
}

func TestPhaseComposer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPhaseComposer().Compose(ctx, scenarioRequest("0.5"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindZeroInterestIndex(t *testing.T) {
	year := func(k int) decimal.Decimal {
		return decimal.NewFromInt(int64(k)).Div(decimal.NewFromInt(12))
	}
	history := make([]domain.PaymentScheduleEntry, 40)
	for i := range history {
		history[i] = domain.PaymentScheduleEntry{Period: i, Year: year(i + 1), Interest: decimal.NewFromInt(10)}
	}
	// Zero interest before the fixed period ends does not count
	history[5].Interest = decimal.Zero
	history[30].Interest = decimal.Zero

	idx, rel, err := FindZeroInterestIndex(history, 2, domain.Monthly)
	require.NoError(t, err)
	assert.Equal(t, 30, idx)
	assert.Equal(t, 7, rel)

	history[23].Interest = decimal.Zero
	idx, rel, err = FindZeroInterestIndex(history, 2, domain.Monthly)
	require.NoError(t, err)
	assert.Equal(t, 23, idx)
	assert.Equal(t, 0, rel)

	_, _, err = FindZeroInterestIndex(history[:20], 2, domain.Monthly)
	assert.ErrorIs(t, err, calculation.ErrInvalidScenario)

	_, _, err = FindZeroInterestIndex(nil, 2, domain.Monthly)
	assert.ErrorIs(t, err, calculation.ErrInvalidScenario)
}

func TestFindZeroInterestIndex_Weekly(t *testing.T) {
	weekly := decimal.NewFromInt(52)
	history := make([]domain.PaymentScheduleEntry, 120)
	for i := range history {
		history[i] = domain.PaymentScheduleEntry{
			Period:   i,
			Year:     decimal.NewFromInt(int64(i + 1)).Div(weekly),
			Interest: decimal.NewFromInt(3),
		}
	}

	tests := []struct {
		name    string
		zeroAt  []int
		wantIdx int
		wantRel int
	}{
		// 61/52 years is not a terminating decimal, so the offset from year 1 must round to 9
		{"crossing nine weeks after the fix", []int{60}, 60, 9},
		{"crossing on the last week of the fix", []int{51}, 51, 0},
		{"zero before the fix ends is skipped", []int{10, 50, 87}, 87, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := make([]domain.PaymentScheduleEntry, len(history))
			copy(h, history)
			for _, i := range tt.zeroAt {
				h[i].Interest = decimal.Zero
			}

			idx, rel, err := FindZeroInterestIndex(h, 1, domain.Weekly)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdx, idx)
			assert.Equal(t, tt.wantRel, rel)
		})
	}
}

func TestPhaseComposer_WeeklyCrossing(t *testing.T) {
	// 100,000 on the offset tranche at 1% weekly pays about 74.21 a week, so the
	// balance after k weeks lies between 100000-74.21k and 100000-54.98k.
	// With 1,590 a week and nothing up front the offset holds 95,400 against at
	// least 95,622 owing in week 59, and 96,990 against at most 96,701 in week 60.
	req := ComposeRequest{
		LoanAmount: decimal.NewFromInt(200000),
		Ratio:      decimal.RequireFromString("0.5"),
		FixedYears: 1,
		TermYears:  30,
		Frequency:  domain.Weekly,
		Variable:   ProductTerms{AnnualRate: decimal.NewFromInt(1)},
		Fixed:      ProductTerms{AnnualRate: decimal.NewFromInt(2)},
		Funding: OffsetFunding{
			InitialBalance: decimal.Zero,
			Contribution:   decimal.NewFromInt(1590),
		},
	}

	composition, err := NewPhaseComposer().Compose(context.Background(), req)
	require.NoError(t, err)

	history := composition.OffsetTranche.History()
	require.Greater(t, len(history), 60)
	assert.True(t, history[59].Interest.IsPositive())
	assert.True(t, history[60].Interest.IsZero())

	s := composition.Scenario
	assert.True(t, s.Attainable)
	assert.Equal(t, 60, s.ZeroInterestPeriod)
	assert.Equal(t, 9, s.ContinuationStartIndex)
	assert.Equal(t, 9, composition.Continuation.Offset().FirstContributionIndex)

	// One year of weekly payments on the fixed tranche
	assert.Len(t, composition.FixedTranche.History(), 52)
	assert.Equal(t, 29*52, composition.Continuation.Parameters().Periods())
}

func TestPhaseComposer_WholeLoanAccounts(t *testing.T) {
	pc := NewPhaseComposer()
	req := scenarioRequest("0.3")

	offset, err := pc.ComposeOffsetOnly(req)
	require.NoError(t, err)
	assert.True(t, offset.Parameters().Principal.Equal(req.LoanAmount))
	assert.True(t, offset.Offset().InitialBalance.Equal(req.Funding.InitialBalance))

	plain, err := pc.ComposePlain(req, req.Fixed)
	require.NoError(t, err)
	assert.Len(t, plain.History(), 360)
	assert.True(t, plain.Parameters().AnnualRate.Equal(req.Fixed.AnnualRate))

	assert.True(t, offset.Result().PaidOff())
	assert.Less(t, len(offset.History()), 360)
}

func TestPhaseComposer_WholeLoanWithoutFixedPeriod(t *testing.T) {
	// Whole loan on the variable product with no fixed tranche at all
	req := ComposeRequest{
		LoanAmount: decimal.NewFromInt(800000),
		FixedYears: 0,
		TermYears:  30,
		Frequency:  domain.Monthly,
		Variable: ProductTerms{
			AnnualRate: decimal.RequireFromString("2.24"),
			AnnualFee:  decimal.NewFromInt(395),
		},
		Funding: OffsetFunding{
			InitialBalance: decimal.NewFromInt(48000),
			Contribution:   decimal.NewFromInt(2000),
		},
	}
	pc := NewPhaseComposer()

	offset, err := pc.ComposeOffsetOnly(req)
	require.NoError(t, err)
	assert.True(t, offset.Result().PaidOff())
	assert.Less(t, len(offset.History()), 360)
	assert.True(t, offset.Parameters().AnnualRate.Equal(decimal.RequireFromString("2.24")))

	plain, err := pc.ComposePlain(req, req.Variable)
	require.NoError(t, err)
	assert.Len(t, plain.History(), 360)

	// Splitting still needs a fixed period
	_, err = pc.Compose(context.Background(), req.WithRatio(decimal.RequireFromString("0.5")))
	assert.ErrorIs(t, err, calculation.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "fixed period must be between 1 and 29 years")
}

func TestComposeRequest_ValidateWholeLoan(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ComposeRequest)
		wantErr bool
	}{
		{"ratio and fixed period are ignored", func(r *ComposeRequest) { r.FixedYears = 0; r.Ratio = decimal.NewFromInt(5) }, false},
		{"fixed period longer than the term is ignored", func(r *ComposeRequest) { r.FixedYears = 40 }, false},
		{"negative loan", func(r *ComposeRequest) { r.LoanAmount = decimal.NewFromInt(-1) }, true},
		{"no term", func(r *ComposeRequest) { r.TermYears = 0 }, true},
		{"zero frequency", func(r *ComposeRequest) { r.Frequency = 0 }, true},
		{"negative initial offset", func(r *ComposeRequest) { r.Funding.InitialBalance = decimal.NewFromInt(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scenarioRequest("0.5")
			tt.mutate(&req)

			err := req.ValidateWholeLoan()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, calculation.ErrInvalidParameter)
		})
	}
}

func TestRequestFromConfiguration(t *testing.T) {
	cfg := &domain.Configuration{
		Purchase: domain.PurchaseDetails{
			PropertyPrice:    decimal.NewFromInt(1000000),
			StampDuty:        decimal.NewFromInt(40000),
			Fees:             decimal.NewFromInt(2000),
			LoanToValue:      decimal.RequireFromString("0.8"),
			AvailableFunds:   decimal.NewFromInt(300000),
			InitialExpenses:  decimal.NewFromInt(10000),
			SurplusPerPeriod: decimal.NewFromInt(2000),
		},
		Loan: domain.LoanStructure{
			TermYears:  30,
			FixedYears: 2,
			Frequency:  domain.Monthly,
			Variable:   domain.LoanProduct{Rate: decimal.RequireFromString("2.54"), AnnualFee: decimal.NewFromInt(395)},
			Fixed:      domain.LoanProduct{Rate: decimal.RequireFromString("1.84")},
		},
	}

	req := RequestFromConfiguration(cfg)
	assert.True(t, req.LoanAmount.Equal(decimal.NewFromInt(800000)))
	assert.True(t, req.Funding.InitialBalance.Equal(decimal.NewFromInt(48000)))
	assert.True(t, req.Funding.Contribution.Equal(decimal.NewFromInt(2000)))
	assert.True(t, req.Ratio.IsZero())
	assert.Equal(t, 2, req.FixedYears)
	assert.True(t, req.Variable.AnnualFee.Equal(decimal.NewFromInt(395)))
	assert.True(t, req.Fixed.AnnualFee.IsZero())
}
