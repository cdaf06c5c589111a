package domain

import (
	"github.com/shopspring/decimal"
)

// PayoffTolerance is the balance at or below which a loan counts as repaid
var PayoffTolerance = decimal.New(1, -5)

// PaymentScheduleEntry is one period of a payment history
type PaymentScheduleEntry struct {
	Period        int             `json:"period"` // 0-based
	Year          decimal.Decimal `json:"year"`   // elapsed years at the end of the period
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AmountOwing   decimal.Decimal `json:"amountOwing"`
	Interest      decimal.Decimal `json:"interest"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	FeesPaid      decimal.Decimal `json:"feesPaid"`
	OffsetBalance decimal.Decimal `json:"offsetBalance"`
}

// AmortizationResult holds the totals and payment history of a loan account
type AmortizationResult struct {
	PeriodicPayment decimal.Decimal        `json:"periodicPayment"`
	TotalFees       decimal.Decimal        `json:"totalFees"`
	TotalPayment    decimal.Decimal        `json:"totalPayment"`
	TotalInterest   decimal.Decimal        `json:"totalInterest"`
	History         []PaymentScheduleEntry `json:"history"`
}

// Final returns the last generated period, or a zero entry for an empty history
func (r AmortizationResult) Final() PaymentScheduleEntry {
	if len(r.History) == 0 {
		return PaymentScheduleEntry{Period: -1}
	}
	return r.History[len(r.History)-1]
}

// PaidOff reports whether the generated history ends with the loan repaid
func (r AmortizationResult) PaidOff() bool {
	if len(r.History) == 0 {
		return false
	}
	return r.Final().AmountOwing.LessThanOrEqual(PayoffTolerance)
}

// ScheduledCost is the interest plus fees incurred inside the generated window
func (r AmortizationResult) ScheduledCost() decimal.Decimal {
	final := r.Final()
	return final.InterestPaid.Add(final.FeesPaid)
}
