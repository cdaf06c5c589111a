package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/homeloan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
purchase:
  property_price: 1000000
  stamp_duty: 40000
  fees: 2000
  loan_to_value: 0.8
  available_funds: 300000
  initial_expenses: 10000
  surplus_per_period: 2000
loan:
  term_years: 30
  fixed_years: 2
  variable:
    rate: 2.54
    annual_fee: 395
  fixed:
    rate: 1.84
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [unclosed")

	config, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to parse YAML", "Should have specific error message")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	path := writeConfig(t, validYAML)

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.True(t, config.Purchase.PropertyPrice.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, config.Purchase.LoanToValue.Equal(decimal.RequireFromString("0.8")))
	assert.True(t, config.Loan.Variable.Rate.Equal(decimal.RequireFromString("2.54")))
	assert.True(t, config.Loan.Fixed.AnnualFee.IsZero())
	assert.Equal(t, 30, config.Loan.TermYears)

	// Defaults for everything the file leaves out
	assert.Equal(t, domain.Monthly, config.Loan.Frequency)
	assert.Equal(t, 100, config.Sweep.Points)
	assert.Equal(t, 1, config.Sweep.Workers)
	assert.Equal(t, 21, config.Sweep.RefinePoints)
	assert.False(t, config.Sweep.Refine)
}

func TestInputParser_Frequency(t *testing.T) {
	tests := []struct {
		value    string
		expected domain.Frequency
	}{
		{"monthly", domain.Monthly},
		{"weekly", domain.Weekly},
		{"Fortnightly", domain.Fortnightly},
		{"4", domain.Frequency(4)},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			path := writeConfig(t, validYAML+"  frequency: "+tt.value+"\n")
			config, err := NewInputParser().LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config.Loan.Frequency)
		})
	}

	path := writeConfig(t, validYAML+"  frequency: daily\n")
	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown payment frequency")
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		wantErr string
	}{
		{
			name:   "example is valid",
			mutate: func(c *domain.Configuration) {},
		},
		{
			name:    "zero property price",
			mutate:  func(c *domain.Configuration) { c.Purchase.PropertyPrice = decimal.Zero },
			wantErr: "property price must be positive",
		},
		{
			name:    "loan to value above one",
			mutate:  func(c *domain.Configuration) { c.Purchase.LoanToValue = decimal.RequireFromString("1.2") },
			wantErr: "loan to value ratio",
		},
		{
			name:    "funds do not cover the deposit",
			mutate:  func(c *domain.Configuration) { c.Purchase.AvailableFunds = decimal.NewFromInt(200000) },
			wantErr: "do not cover deposit",
		},
		{
			name:    "negative surplus",
			mutate:  func(c *domain.Configuration) { c.Purchase.SurplusPerPeriod = decimal.NewFromInt(-1) },
			wantErr: "surplus per period cannot be negative",
		},
		{
			name:    "fixed period as long as the term",
			mutate:  func(c *domain.Configuration) { c.Loan.FixedYears = 30 },
			wantErr: "fixed years must be between 0 and 29, got 30",
		},
		{
			name:   "no fixed period",
			mutate: func(c *domain.Configuration) { c.Loan.FixedYears = 0 },
		},
		{
			name:    "negative fixed period",
			mutate:  func(c *domain.Configuration) { c.Loan.FixedYears = -1 },
			wantErr: "fixed years must be between 0 and 29, got -1",
		},
		{
			name:    "term too long",
			mutate:  func(c *domain.Configuration) { c.Loan.TermYears = 60 },
			wantErr: "term years must be between 1 and 50",
		},
		{
			name:    "negative variable rate",
			mutate:  func(c *domain.Configuration) { c.Loan.Variable.Rate = decimal.NewFromInt(-1) },
			wantErr: "variable product: rate cannot be negative",
		},
		{
			name:    "fixed rate given as a fraction above 100",
			mutate:  func(c *domain.Configuration) { c.Loan.Fixed.Rate = decimal.NewFromInt(184) },
			wantErr: "fixed product: rate is a percentage",
		},
		{
			name:    "negative fixed fee",
			mutate:  func(c *domain.Configuration) { c.Loan.Fixed.AnnualFee = decimal.NewFromInt(-5) },
			wantErr: "annual fee cannot be negative",
		},
		{
			name:    "single grid point",
			mutate:  func(c *domain.Configuration) { c.Sweep.Points = 1 },
			wantErr: "points must be at least 2",
		},
		{
			name:    "no workers",
			mutate:  func(c *domain.Configuration) { c.Sweep.Workers = 0 },
			wantErr: "workers must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := CreateExampleConfiguration()
			tt.mutate(config)

			err := NewInputParser().ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	config := CreateExampleConfiguration()

	assert.True(t, config.Purchase.GrossPrice().Equal(decimal.NewFromInt(1042000)))
	assert.True(t, config.Purchase.LoanAmount().Equal(decimal.NewFromInt(800000)))
	assert.True(t, config.Purchase.Deposit().Equal(decimal.NewFromInt(242000)))
	assert.True(t, config.Purchase.FundsSurplus().Equal(decimal.NewFromInt(48000)))
	assert.Equal(t, 28, config.Loan.RemainingYears())
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	original := CreateExampleConfiguration()

	require.NoError(t, SaveConfiguration(original, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frequency: monthly")

	loaded, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, loaded.Purchase.PropertyPrice.Equal(original.Purchase.PropertyPrice))
	assert.True(t, loaded.Loan.Variable.Rate.Equal(original.Loan.Variable.Rate))
	assert.True(t, loaded.Loan.Variable.AnnualFee.Equal(original.Loan.Variable.AnnualFee))
	assert.Equal(t, original.Loan.Frequency, loaded.Loan.Frequency)
	assert.Equal(t, original.Loan.Fixed.Name, loaded.Loan.Fixed.Name)
	assert.Equal(t, original.Sweep, loaded.Sweep)
}

func TestSaveConfiguration_BadPath(t *testing.T) {
	err := SaveConfiguration(CreateExampleConfiguration(), filepath.Join(t.TempDir(), "missing", "out.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}

func TestLoadFromFile_ExampleTestdata(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(filepath.Join("..", "..", "test", "testdata", "example_config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 4, config.Sweep.Workers)
	assert.True(t, config.Purchase.FundsSurplus().Equal(decimal.NewFromInt(48000)))
}
