package calculation

import (
	"math"
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/hplan/household-planner/internal/domain"
)

// ReturnSampler draws one gross monthly growth factor for an account with
// the given annual mean return and volatility. Implementations own their
// random source; a sampler is used by exactly one trial.
type ReturnSampler interface {
	MonthlyFactor(annualMeanPct, annualVolPct decimal.Decimal) float64
}

// SamplerFactory builds a deterministic sampler for one trial seed.
type SamplerFactory func(seed uint64) ReturnSampler

// lognormalSampler models monthly gross returns as lognormal, the
// conventional choice for equity-return simulation: log-returns are normal
// with sigma_m = vol/sqrt(12) and mu_m = ln(1+mean)/12 - sigma_m^2/2, which
// keeps the expected compounded annual return at the account's mean.
type lognormalSampler struct {
	src rand.Source
}

// NewLogNormalSampler returns the default sampler factory.
func NewLogNormalSampler() SamplerFactory {
	return func(seed uint64) ReturnSampler {
		return &lognormalSampler{src: rand.NewPCG(seed, 0)}
	}
}

func (s *lognormalSampler) MonthlyFactor(annualMeanPct, annualVolPct decimal.Decimal) float64 {
	mean := annualMeanPct.InexactFloat64()
	vol := annualVolPct.InexactFloat64()
	if vol <= 0 {
		return math.Pow(1+mean, 1.0/12.0)
	}
	sigma := vol / math.Sqrt(12)
	mu := math.Log(1+mean)/12 - sigma*sigma/2
	dist := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: s.src}
	return dist.Rand()
}

// normalSampler models monthly simple returns as normal with mean mean/12
// and sigma vol/sqrt(12). Factors are floored at zero so a catastrophic draw
// can wipe a balance but never turn it negative.
type normalSampler struct {
	src rand.Source
}

// NewNormalSampler returns a factory for the normal-return alternative.
func NewNormalSampler() SamplerFactory {
	return func(seed uint64) ReturnSampler {
		return &normalSampler{src: rand.NewPCG(seed, 0)}
	}
}

func (s *normalSampler) MonthlyFactor(annualMeanPct, annualVolPct decimal.Decimal) float64 {
	mean := annualMeanPct.InexactFloat64()
	vol := annualVolPct.InexactFloat64()
	if vol <= 0 {
		return math.Pow(1+mean, 1.0/12.0)
	}
	dist := distuv.Normal{Mu: mean / 12, Sigma: vol / math.Sqrt(12), Src: s.src}
	factor := 1 + dist.Rand()
	if factor < 0 {
		return 0
	}
	return factor
}

// ReturnProvider supplies the gross monthly growth factor applied to an
// account at a given step of one projection run.
type ReturnProvider interface {
	MonthlyFactor(account domain.AccountState, step int) decimal.Decimal
}

// fixedReturns is the deterministic provider: every account compounds at its
// own expected return, pro-rata per month.
type fixedReturns struct{}

// FixedReturns returns the deterministic provider.
func FixedReturns() ReturnProvider {
	return fixedReturns{}
}

func (fixedReturns) MonthlyFactor(account domain.AccountState, _ int) decimal.Decimal {
	return GrowthFactor(account.ExpectedReturnPct, 1.0/12.0)
}

// sampledReturns draws factors from a trial's sampler, using the account's
// expected return as the mean and its volatility (or the scenario default)
// as the spread.
type sampledReturns struct {
	sampler    ReturnSampler
	defaultVol decimal.Decimal
}

// SampledReturns wraps a per-trial sampler as a ReturnProvider.
func SampledReturns(sampler ReturnSampler, defaultVol decimal.Decimal) ReturnProvider {
	return &sampledReturns{sampler: sampler, defaultVol: defaultVol}
}

func (s *sampledReturns) MonthlyFactor(account domain.AccountState, _ int) decimal.Decimal {
	vol := s.defaultVol
	if account.VolatilityPct != nil {
		vol = *account.VolatilityPct
	}
	return decimal.NewFromFloat(s.sampler.MonthlyFactor(account.ExpectedReturnPct, vol))
}
