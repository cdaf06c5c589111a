package calculation

import (
	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
)

// interestScale bounds per-period interest so balances keep a fixed number of digits
const interestScale = 12

// OffsetScheduleInput is everything the offset recursion needs for one account
type OffsetScheduleInput struct {
	Principal    decimal.Decimal
	PeriodicRate decimal.Decimal
	Payment      decimal.Decimal
	Offset       domain.OffsetParameters
	Periods      int // period limit, frequency × payback years
	Frequency    domain.Frequency
	AnnualFee    decimal.Decimal
}

// OffsetScheduleGenerator simulates a loan period by period while an offset balance
// reduces the interest-bearing amount.
type OffsetScheduleGenerator struct{}

// NewOffsetScheduleGenerator creates a new offset schedule generator
func NewOffsetScheduleGenerator() *OffsetScheduleGenerator {
	return &OffsetScheduleGenerator{}
}

// Generate runs the recursion until the balance is repaid or the period limit is hit.
// A positive balance on the last row is an incomplete payoff, not an error.
func (g *OffsetScheduleGenerator) Generate(in OffsetScheduleInput) ([]domain.PaymentScheduleEntry, error) {
	const op = "generate_offset_schedule"

	if in.Principal.IsNegative() {
		return nil, InvalidParameter(op, "principal cannot be negative, got %s", in.Principal.String())
	}
	if in.PeriodicRate.IsNegative() {
		return nil, InvalidParameter(op, "periodic rate cannot be negative, got %s", in.PeriodicRate.String())
	}
	if in.Frequency <= 0 {
		return nil, InvalidParameter(op, "unsupported payment frequency %d", int(in.Frequency))
	}
	if in.Periods < 0 {
		return nil, InvalidParameter(op, "period limit cannot be negative, got %d", in.Periods)
	}
	if err := ValidateOffsetParameters(in.Offset); err != nil {
		return nil, err
	}

	freq := decimal.NewFromInt(int64(in.Frequency))
	periodicFee := in.AnnualFee.Div(freq)

	history := make([]domain.PaymentScheduleEntry, 0, in.Periods)
	owing := in.Principal
	offset := in.Offset.InitialBalance
	paid := decimal.Zero
	interestPaid := decimal.Zero
	feesPaid := decimal.Zero

	for i := 0; i < in.Periods; i++ {
		if i >= in.Offset.FirstContributionIndex {
			offset = offset.Add(in.Offset.Contribution)
		}

		interest := owing.Sub(offset).Mul(in.PeriodicRate).Round(interestScale)
		if interest.IsNegative() {
			interest = decimal.Zero
		}

		owing = owing.Add(interest).Sub(in.Payment)
		paid = paid.Add(in.Payment)
		interestPaid = interestPaid.Add(interest)
		feesPaid = feesPaid.Add(periodicFee)

		reported := owing
		if reported.IsNegative() {
			reported = decimal.Zero
		}

		history = append(history, domain.PaymentScheduleEntry{
			Period:        i,
			Year:          decimal.NewFromInt(int64(i + 1)).Div(freq),
			AmountPaid:    paid,
			AmountOwing:   reported,
			Interest:      interest,
			InterestPaid:  interestPaid,
			FeesPaid:      feesPaid,
			OffsetBalance: offset,
		})

		if owing.LessThanOrEqual(domain.PayoffTolerance) {
			break
		}
	}

	return history, nil
}
