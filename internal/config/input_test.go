package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplan/household-planner/internal/domain"
)

const testScenario = `household:
  anchor_date: "2026-01-01T00:00:00Z"
  start_date: "2026-01-01T00:00:00Z"
  end_date: "2031-01-01T00:00:00Z"
assumptions:
  inflation_rate: 0.025
  taxable_yield_pct: 0.015
  default_volatility_pct: 0.15
tax_profile:
  state_code: "PA"
  filing_status: "married_jointly"
  tax_year: 2026
  include_payroll_taxes: true
incomes:
  - id: "salary"
    name: "Salary"
    amount: 5500
    frequency: "monthly"
    start_date: "2026-01-01T00:00:00Z"
    growth_rule: "track_inflation"
expenses:
  - id: "living"
    name: "Living Expenses"
    amount: 3200
    frequency: "monthly"
    start_date: "2026-01-01T00:00:00Z"
accounts:
  - account_id: "checking"
    name: "Checking"
    cash_balance: 20000
    expected_return_pct: 0.005
loans:
  - loan_id: "mortgage"
    name: "Mortgage"
    principal: 320000
    apr_pct: 0.065
    term_months: 360
    remaining_balance: 320000
settlement_account_id: "checking"
`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScenario), 0o644))

	parser := NewInputParser()
	input, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, input)

	assert.Equal(t, 2026, input.Household.StartDate.Year())
	assert.True(t, input.Assumptions.InflationRate.Equal(decimal.NewFromFloat(0.025)))
	assert.Equal(t, domain.FilingMarriedJointly, input.TaxProfile.FilingStatus)
	require.Len(t, input.Incomes, 1)
	assert.True(t, input.Incomes[0].Amount.Equal(decimal.NewFromInt(5500)))
	assert.Equal(t, domain.GrowthTrackInflation, input.Incomes[0].GrowthRule)
	require.Len(t, input.Loans, 1)
	assert.True(t, input.Loans[0].Principal.Equal(decimal.NewFromInt(320000)))
	assert.Equal(t, "checking", input.SettlementAccount())
}

func TestLoadFromFileNotFound(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadFromFile("nonexistent.yaml")
	assert.Error(t, err)
	assert.Nil(t, input)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("household:\n\tnot: valid"), 0o644))

	parser := NewInputParser()
	input, err := parser.LoadFromFile(path)
	assert.Error(t, err)
	assert.Nil(t, input)
	assert.Contains(t, err.Error(), "failed to parse scenario YAML")
}

func TestLoadFromReader(t *testing.T) {
	parser := NewInputParser()
	input, err := parser.LoadFromReader(strings.NewReader(testScenario))
	require.NoError(t, err)
	assert.Len(t, input.Expenses, 1)
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := CreateExampleScenario()

	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.SaveToFile(original, path))

	reloaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, len(original.Incomes), len(reloaded.Incomes))
	assert.Equal(t, len(original.Accounts), len(reloaded.Accounts))
	require.Len(t, reloaded.Loans, 1)
	assert.True(t, reloaded.Loans[0].Principal.Equal(decimal.NewFromInt(320000)))
	assert.True(t, reloaded.Household.EndDate.Equal(original.Household.EndDate))
	assert.Equal(t, original.SettlementAccountID, reloaded.SettlementAccountID)
}

func TestCreateExampleScenarioIsValidShape(t *testing.T) {
	scenario := CreateExampleScenario()

	assert.True(t, scenario.Household.EndDate.After(scenario.Household.StartDate))
	assert.NotEmpty(t, scenario.Incomes)
	assert.NotEmpty(t, scenario.Expenses)
	assert.NotEmpty(t, scenario.Accounts)
	assert.NotEmpty(t, scenario.Loans)
	assert.Equal(t, "checking", scenario.SettlementAccount())

	for _, def := range scenario.Definitions() {
		assert.False(t, def.Amount.IsNegative(), "definition %s", def.ID)
		assert.True(t, def.Frequency.Valid(), "definition %s", def.ID)
	}
}
