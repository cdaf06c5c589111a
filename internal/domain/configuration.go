package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is the root of a home loan input file
type Configuration struct {
	Purchase PurchaseDetails `yaml:"purchase" json:"purchase"`
	Loan     LoanStructure   `yaml:"loan" json:"loan"`
	Sweep    SweepSettings   `yaml:"sweep" json:"sweep"`
}

// PurchaseDetails describes the property purchase and the buyer's funds
type PurchaseDetails struct {
	PropertyPrice    decimal.Decimal `yaml:"property_price" json:"propertyPrice"`
	StampDuty        decimal.Decimal `yaml:"stamp_duty" json:"stampDuty"`
	Fees             decimal.Decimal `yaml:"fees" json:"fees"`
	LoanToValue      decimal.Decimal `yaml:"loan_to_value" json:"loanToValue"` // fraction, e.g. 0.8
	AvailableFunds   decimal.Decimal `yaml:"available_funds" json:"availableFunds"`
	InitialExpenses  decimal.Decimal `yaml:"initial_expenses" json:"initialExpenses"`
	SurplusPerPeriod decimal.Decimal `yaml:"surplus_per_period" json:"surplusPerPeriod"` // offset contribution each payment period
}

// GrossPrice is the property price plus stamp duty and purchase fees
func (p PurchaseDetails) GrossPrice() decimal.Decimal {
	return p.PropertyPrice.Add(p.StampDuty).Add(p.Fees)
}

// LoanAmount is the amount borrowed at the configured loan-to-value ratio
func (p PurchaseDetails) LoanAmount() decimal.Decimal {
	return p.PropertyPrice.Mul(p.LoanToValue)
}

// Deposit is the part of the gross price paid from the buyer's funds
func (p PurchaseDetails) Deposit() decimal.Decimal {
	return p.GrossPrice().Sub(p.LoanAmount())
}

// FundsSurplus is what is left after the deposit and initial expenses; it seeds the offset account
func (p PurchaseDetails) FundsSurplus() decimal.Decimal {
	return p.AvailableFunds.Sub(p.Deposit()).Sub(p.InitialExpenses)
}

// LoanProduct is a rate and fee pairing offered by a lender
type LoanProduct struct {
	Name      string          `yaml:"name,omitempty" json:"name,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"` // annual percent
	AnnualFee decimal.Decimal `yaml:"annual_fee" json:"annualFee"`
}

// LoanStructure describes the term, the fixed period and the two products being split
type LoanStructure struct {
	TermYears  int         `yaml:"term_years" json:"termYears"`
	FixedYears int         `yaml:"fixed_years" json:"fixedYears"`
	Frequency  Frequency   `yaml:"frequency" json:"frequency"`
	Variable   LoanProduct `yaml:"variable" json:"variable"`
	Fixed      LoanProduct `yaml:"fixed" json:"fixed"`
}

// RemainingYears is the term left once the fixed period ends
func (l LoanStructure) RemainingYears() int {
	return l.TermYears - l.FixedYears
}

// SweepSettings controls the split-ratio grid search
type SweepSettings struct {
	Points       int  `yaml:"points" json:"points"`
	Workers      int  `yaml:"workers" json:"workers"`
	Refine       bool `yaml:"refine" json:"refine"`
	RefinePoints int  `yaml:"refine_points,omitempty" json:"refinePoints,omitempty"`
}
