package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplan/household-planner/internal/domain"
)

func incomeEvents(amounts ...int64) []domain.CashFlowEvent {
	events := make([]domain.CashFlowEvent, 0, len(amounts))
	for _, a := range amounts {
		events = append(events, domain.CashFlowEvent{
			Date:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Amount: decimal.NewFromInt(a),
			Kind:   domain.KindIncome,
		})
	}
	return events
}

func TestProgressiveTax(t *testing.T) {
	brackets := DefaultBracketTables().Federal[domain.FilingSingle].Brackets

	tests := []struct {
		name     string
		taxable  decimal.Decimal
		expected float64
	}{
		{"zero income", decimal.Zero, 0},
		{"negative income", decimal.NewFromInt(-5000), 0},
		{"first bracket only", decimal.NewFromInt(10000), 1000},
		// 11600*0.10 + (47150-11600)*0.12 + (85000-47150)*0.22
		{"three brackets", decimal.NewFromInt(85000), 13753},
		// exactly at a boundary
		{"bracket boundary", decimal.NewFromInt(11600), 1160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax := progressiveTax(tt.taxable, brackets)
			assert.InDelta(t, tt.expected, tax.InexactFloat64(), 0.01)
		})
	}
}

func TestSettleYearSingleFiler(t *testing.T) {
	settler := NewTaxSettler(DefaultBracketTables())
	profile := domain.TaxProfile{
		StateCode:    "PA",
		FilingStatus: domain.FilingSingle,
	}

	events := incomeEvents(100000)
	events = append(events, domain.CashFlowEvent{
		Amount: decimal.NewFromInt(5000),
		Kind:   domain.KindExpense,
	})

	liability, err := settler.SettleYear(2026, events, decimal.Zero, profile)
	require.NoError(t, err)

	assert.Equal(t, 2026, liability.TaxYear)
	// Federal on 100000 - 15000 standard deduction = 85000 taxable.
	assert.InDelta(t, 13753, liability.Federal.InexactFloat64(), 0.01)
	// PA flat 3.07% on the full 100000; expenses never reduce taxable income.
	assert.InDelta(t, 3070, liability.State.InexactFloat64(), 0.01)
	assert.True(t, liability.Payroll.IsZero(), "payroll taxes are opt-in")
	assert.InDelta(t, 16823, liability.Total.InexactFloat64(), 0.02)
}

func TestSettleYearWithPayrollTaxes(t *testing.T) {
	settler := NewTaxSettler(DefaultBracketTables())
	profile := domain.TaxProfile{
		StateCode:           "TX",
		FilingStatus:        domain.FilingSingle,
		IncludePayrollTaxes: true,
	}

	liability, err := settler.SettleYear(2026, incomeEvents(100000), decimal.Zero, profile)
	require.NoError(t, err)

	// 6.2% SS + 1.45% Medicare on wages under the wage base.
	assert.InDelta(t, 7650, liability.Payroll.InexactFloat64(), 0.01)
	assert.True(t, liability.State.IsZero(), "TX has no income tax")
}

func TestSettleYearPayrollWageBase(t *testing.T) {
	settler := NewTaxSettler(DefaultBracketTables())
	profile := domain.TaxProfile{
		StateCode:           "FL",
		FilingStatus:        domain.FilingSingle,
		IncludePayrollTaxes: true,
	}

	liability, err := settler.SettleYear(2026, incomeEvents(300000), decimal.Zero, profile)
	require.NoError(t, err)

	// SS caps at the wage base; Medicare does not.
	expected := 176100*0.062 + 300000*0.0145
	assert.InDelta(t, expected, liability.Payroll.InexactFloat64(), 0.01)
}

func TestSettleYearInvestmentIncome(t *testing.T) {
	settler := NewTaxSettler(DefaultBracketTables())
	profile := domain.TaxProfile{
		StateCode:    "PA",
		FilingStatus: domain.FilingMarriedJointly,
	}

	base, err := settler.SettleYear(2026, incomeEvents(150000), decimal.Zero, profile)
	require.NoError(t, err)
	withInvestment, err := settler.SettleYear(2026, incomeEvents(150000), decimal.NewFromInt(10000), profile)
	require.NoError(t, err)

	assert.True(t, withInvestment.Total.GreaterThan(base.Total),
		"investment income must raise the liability")
	// Payroll is untouched by investment income.
	assert.True(t, withInvestment.Payroll.Equal(base.Payroll))
}

func TestSettleYearUnsupportedJurisdiction(t *testing.T) {
	settler := NewTaxSettler(DefaultBracketTables())

	tests := []struct {
		name    string
		profile domain.TaxProfile
	}{
		{"unknown state", domain.TaxProfile{StateCode: "ZZ", FilingStatus: domain.FilingSingle}},
		{"unknown filing status", domain.TaxProfile{StateCode: "PA", FilingStatus: "head_of_household"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := settler.SettleYear(2026, nil, decimal.Zero, tt.profile)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedTaxJurisdiction)
		})
	}
}

func TestSettleYearBelowDeduction(t *testing.T) {
	settler := NewTaxSettler(DefaultBracketTables())
	profile := domain.TaxProfile{StateCode: "FL", FilingStatus: domain.FilingSingle}

	liability, err := settler.SettleYear(2026, incomeEvents(10000), decimal.Zero, profile)
	require.NoError(t, err)
	assert.True(t, liability.Federal.IsZero(), "income below the standard deduction owes nothing")
	assert.True(t, liability.Total.IsZero())
}
