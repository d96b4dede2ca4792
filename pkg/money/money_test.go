package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	m, err := FromString("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.String())

	_, err = FromString("not-a-number")
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, "10.13", New(10.125).Round().String())
	assert.Equal(t, "10.12", New(10.115).Round().String())
}

func TestAnnualMonthly(t *testing.T) {
	assert.Equal(t, "12000.00", New(1000).Annual().String())
	assert.Equal(t, "1000.00", New(12000).Monthly().String())
}

func TestArithmetic(t *testing.T) {
	a := New(100.50)
	b := New(50.25)

	assert.Equal(t, "150.75", a.Add(b).String())
	assert.Equal(t, "50.25", a.Sub(b).String())
	assert.Equal(t, "201.00", a.Mul(decimal.NewFromInt(2)).String())
	assert.Equal(t, "50.25", a.Div(decimal.NewFromInt(2)).String())
}

func TestComparisons(t *testing.T) {
	a := New(100)
	b := New(200)

	assert.True(t, a.LessThan(b))
	assert.True(t, b.GreaterThan(a))
	assert.True(t, a.Equal(New(100)))
	assert.True(t, Zero().IsZero())
	assert.True(t, New(-5).IsNegative())

	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1234.56", New(1234.56).Format())
	assert.Equal(t, "-$500.00", New(-500).Format())
	assert.Equal(t, "$0.00", Zero().Format())
}
