package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	defaultSweepPoints  = 100
	defaultRefinePoints = 21
	maxTermYears        = 50
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills optional settings left out of the file
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	if config.Loan.Frequency == 0 {
		config.Loan.Frequency = domain.Monthly
	}
	if config.Sweep.Points == 0 {
		config.Sweep.Points = defaultSweepPoints
	}
	if config.Sweep.Workers == 0 {
		config.Sweep.Workers = 1
	}
	if config.Sweep.RefinePoints == 0 {
		config.Sweep.RefinePoints = defaultRefinePoints
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validatePurchase(&config.Purchase); err != nil {
		return fmt.Errorf("purchase validation failed: %w", err)
	}
	if err := ip.validateLoan(&config.Loan); err != nil {
		return fmt.Errorf("loan validation failed: %w", err)
	}
	if err := ip.validateSweep(&config.Sweep); err != nil {
		return fmt.Errorf("sweep validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validatePurchase(p *domain.PurchaseDetails) error {
	if p.PropertyPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("property price must be positive")
	}
	if p.StampDuty.IsNegative() {
		return fmt.Errorf("stamp duty cannot be negative")
	}
	if p.Fees.IsNegative() {
		return fmt.Errorf("purchase fees cannot be negative")
	}
	if p.LoanToValue.LessThanOrEqual(decimal.Zero) || p.LoanToValue.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("loan to value ratio must be within (0, 1], got %s", p.LoanToValue.String())
	}
	if p.AvailableFunds.IsNegative() {
		return fmt.Errorf("available funds cannot be negative")
	}
	if p.InitialExpenses.IsNegative() {
		return fmt.Errorf("initial expenses cannot be negative")
	}
	if p.SurplusPerPeriod.IsNegative() {
		return fmt.Errorf("surplus per period cannot be negative")
	}

	// The deposit and setup costs have to be covered before anything reaches the offset account
	if surplus := p.FundsSurplus(); surplus.IsNegative() {
		return fmt.Errorf("available funds %s do not cover deposit %s plus initial expenses %s",
			p.AvailableFunds.StringFixed(2), p.Deposit().StringFixed(2), p.InitialExpenses.StringFixed(2))
	}
	return nil
}

func (ip *InputParser) validateLoan(l *domain.LoanStructure) error {
	if l.TermYears <= 0 || l.TermYears > maxTermYears {
		return fmt.Errorf("term years must be between 1 and %d", maxTermYears)
	}
	// Zero fixed years is a whole-loan offset setup; splitting needs at least one
	if l.FixedYears < 0 || l.FixedYears >= l.TermYears {
		return fmt.Errorf("fixed years must be between 0 and %d, got %d", l.TermYears-1, l.FixedYears)
	}
	if l.Frequency <= 0 {
		return fmt.Errorf("payment frequency must be positive")
	}
	if err := validateProduct(&l.Variable); err != nil {
		return fmt.Errorf("variable product: %w", err)
	}
	if err := validateProduct(&l.Fixed); err != nil {
		return fmt.Errorf("fixed product: %w", err)
	}
	return nil
}

func validateProduct(p *domain.LoanProduct) error {
	if p.Rate.IsNegative() {
		return fmt.Errorf("rate cannot be negative")
	}
	if p.Rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("rate is a percentage and cannot exceed 100, got %s", p.Rate.String())
	}
	if p.AnnualFee.IsNegative() {
		return fmt.Errorf("annual fee cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateSweep(s *domain.SweepSettings) error {
	if s.Points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", s.Points)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.Refine && s.RefinePoints < 2 {
		return fmt.Errorf("refine points must be at least 2, got %d", s.RefinePoints)
	}
	return nil
}

// CreateExampleConfiguration returns a complete configuration for a 1,000,000 purchase
// at 80% loan to value, split between a variable offset product and a two year fix.
func CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
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
			Variable: domain.LoanProduct{
				Name:      "variable offset",
				Rate:      decimal.RequireFromString("2.54"),
				AnnualFee: decimal.NewFromInt(395),
			},
			Fixed: domain.LoanProduct{
				Name:      "2 year fixed",
				Rate:      decimal.RequireFromString("1.84"),
				AnnualFee: decimal.Zero,
			},
		},
		Sweep: domain.SweepSettings{
			Points:       defaultSweepPoints,
			Workers:      1,
			RefinePoints: defaultRefinePoints,
		},
	}
}

// SaveConfiguration saves a configuration to a file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
