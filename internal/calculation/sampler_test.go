package calculation

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hplan/household-planner/internal/domain"
)

func TestLogNormalSamplerDeterministicPerSeed(t *testing.T) {
	factory := NewLogNormalSampler()
	mean := decimal.NewFromFloat(0.07)
	vol := decimal.NewFromFloat(0.15)

	a := factory(7)
	b := factory(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.MonthlyFactor(mean, vol), b.MonthlyFactor(mean, vol), "draw %d", i)
	}

	c := factory(8)
	same := true
	a = factory(7)
	for i := 0; i < 10; i++ {
		if a.MonthlyFactor(mean, vol) != c.MonthlyFactor(mean, vol) {
			same = false
		}
	}
	assert.False(t, same, "different seeds should diverge")
}

func TestLogNormalSamplerZeroVolatility(t *testing.T) {
	sampler := NewLogNormalSampler()(1)
	factor := sampler.MonthlyFactor(decimal.NewFromFloat(0.07), decimal.Zero)
	assert.InDelta(t, math.Pow(1.07, 1.0/12.0), factor, 1e-12)
}

func TestLogNormalSamplerAlwaysPositive(t *testing.T) {
	sampler := NewLogNormalSampler()(99)
	mean := decimal.NewFromFloat(0.07)
	vol := decimal.NewFromFloat(0.30)
	for i := 0; i < 1000; i++ {
		assert.Greater(t, sampler.MonthlyFactor(mean, vol), 0.0)
	}
}

func TestNormalSamplerNeverNegative(t *testing.T) {
	sampler := NewNormalSampler()(42)
	mean := decimal.NewFromFloat(-0.50)
	vol := decimal.NewFromFloat(3.0)
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, sampler.MonthlyFactor(mean, vol), 0.0)
	}
}

func TestFixedReturnsProvider(t *testing.T) {
	provider := FixedReturns()
	account := domain.AccountState{ExpectedReturnPct: decimal.NewFromFloat(0.12)}

	factor := provider.MonthlyFactor(account, 0)
	assert.InDelta(t, math.Pow(1.12, 1.0/12.0), factor.InexactFloat64(), 1e-9)
}

func TestSampledReturnsUsesAccountVolatility(t *testing.T) {
	mean := decimal.NewFromFloat(0.06)
	zeroVol := decimal.Zero

	// An account pinning volatility to zero gets the deterministic factor even
	// when the scenario default is large.
	provider := SampledReturns(NewLogNormalSampler()(1), decimal.NewFromFloat(0.50))
	account := domain.AccountState{ExpectedReturnPct: mean, VolatilityPct: &zeroVol}

	factor := provider.MonthlyFactor(account, 0)
	assert.InDelta(t, math.Pow(1.06, 1.0/12.0), factor.InexactFloat64(), 1e-9)
}
