package domain

import (
	"github.com/shopspring/decimal"
)

// SplitScenario is the outcome of running one split ratio through the three loan phases
type SplitScenario struct {
	Ratio      decimal.Decimal `json:"ratio"`      // share of the loan on the offset tranche
	OffsetCost decimal.Decimal `json:"offsetCost"` // offset tranche interest + fees
	FixedCost  decimal.Decimal `json:"fixedCost"`  // fixed period + continuation interest + fees
	TotalCost  decimal.Decimal `json:"totalCost"`

	// ZeroInterestPeriod is the offset tranche period where its interest first hits zero
	// at or after the fixed term; ContinuationStartIndex is the same point relative to
	// the start of the continuation account.
	ZeroInterestPeriod     int `json:"zeroInterestPeriod"`
	ContinuationStartIndex int `json:"continuationStartIndex"`

	Attainable bool   `json:"attainable"`
	Reason     string `json:"reason,omitempty"`
}

// RatioPercent returns the split ratio as a percentage
func (s SplitScenario) RatioPercent() decimal.Decimal {
	return s.Ratio.Mul(decimal.NewFromInt(100))
}
