package calculation

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/hplan/household-planner/internal/domain"
	"github.com/hplan/household-planner/pkg/dateutil"
)

// MonteCarloOptions configures a Monte Carlo run.
type MonteCarloOptions struct {
	Trials   int
	SeedBase int64
	Workers  int
	// Timeout is the trial budget. When exceeded, the runner returns the
	// completed trials only and flags the result partial; a timeout is not
	// an error.
	Timeout time.Duration
	// Sampler picks the return distribution; nil means lognormal.
	Sampler SamplerFactory
}

func (o MonteCarloOptions) withDefaults() MonteCarloOptions {
	if o.Trials <= 0 {
		o.Trials = 1000
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Sampler == nil {
		o.Sampler = NewLogNormalSampler()
	}
	return o
}

// MonteCarloRunner executes the deterministic projector across many trials
// with randomized return draws and aggregates percentile bands and goal
// success probabilities.
type MonteCarloRunner struct {
	Settler *TaxSettler
	Logger  Logger
}

// NewMonteCarloRunner creates a runner over the given tax settler.
func NewMonteCarloRunner(settler *TaxSettler) *MonteCarloRunner {
	return &MonteCarloRunner{Settler: settler, Logger: NopLogger{}}
}

type trialSeries struct {
	index     int
	netWorths []float64
	err       error
}

// RunTrials runs opts.Trials independent projections. Trial i is seeded with
// SeedBase+i, so the same seed base and trial count reproduce the exact same
// result regardless of worker scheduling. Trials share no mutable state; the
// reduction sorts per-date values, so execution order never matters.
func (mcr *MonteCarloRunner) RunTrials(ctx context.Context, input *domain.ScenarioInput, deterministic []domain.ProjectionSnapshot, opts MonteCarloOptions) (*domain.ProjectionResult, error) {
	opts = opts.withDefaults()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	jobs := make(chan int)
	results := make(chan trialSeries, opts.Trials)

	workers := opts.Workers
	if opts.Trials < workers {
		workers = opts.Trials
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				results <- mcr.runTrial(input, opts, idx)
			}
		}()
	}

	// Dispatch until done or the deadline expires.
	for i := 0; i < opts.Trials; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			i = opts.Trials
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	trials := make([]trialSeries, 0, opts.Trials)
	for ts := range results {
		if ts.err != nil {
			return nil, ts.err
		}
		trials = append(trials, ts)
	}
	completed := len(trials)
	mcr.Logger.Infof("monte carlo: %d/%d trials completed", completed, opts.Trials)

	result := &domain.ProjectionResult{
		Mode:                domain.ModeMonteCarlo,
		DeterministicSeries: deterministic,
		TrialsRequested:     opts.Trials,
		TrialsCompleted:     completed,
		Partial:             completed < opts.Trials,
		SeedBase:            opts.SeedBase,
	}
	if completed == 0 {
		return result, nil
	}

	result.PercentileBands = percentileBands(deterministic, trials)
	result.GoalProbabilities = goalProbabilities(input, deterministic, trials)
	return result, nil
}

// runTrial executes one seeded projection. Each trial owns its sampler, so
// no trial can observe another's intermediate state.
func (mcr *MonteCarloRunner) runTrial(input *domain.ScenarioInput, opts MonteCarloOptions, index int) trialSeries {
	sampler := opts.Sampler(uint64(opts.SeedBase) + uint64(index))
	projector := &Projector{
		Returns:         SampledReturns(sampler, input.Assumptions.DefaultVolatilityPct),
		Settler:         mcr.Settler,
		Logger:          NopLogger{},
		RevalueHoldings: true,
	}
	snapshots, err := projector.Run(input)
	if err != nil {
		return trialSeries{index: index, err: err}
	}
	netWorths := make([]float64, len(snapshots))
	for i, s := range snapshots {
		netWorths[i] = s.NetWorth.InexactFloat64()
	}
	return trialSeries{index: index, netWorths: netWorths}
}

// percentileBands extracts p10..p90 of net worth across trials at every
// snapshot date. Values are sorted per date, so the bands are monotonic by
// construction.
func percentileBands(deterministic []domain.ProjectionSnapshot, trials []trialSeries) []domain.PercentileBand {
	bands := make([]domain.PercentileBand, 0, len(deterministic))
	values := make([]float64, len(trials))
	for step, snap := range deterministic {
		for i, trial := range trials {
			values[i] = trial.netWorths[step]
		}
		sort.Float64s(values)
		bands = append(bands, domain.PercentileBand{
			Date: snap.Date,
			P10:  decimal.NewFromFloat(stat.Quantile(0.10, stat.Empirical, values, nil)),
			P25:  decimal.NewFromFloat(stat.Quantile(0.25, stat.Empirical, values, nil)),
			P50:  decimal.NewFromFloat(stat.Quantile(0.50, stat.Empirical, values, nil)),
			P75:  decimal.NewFromFloat(stat.Quantile(0.75, stat.Empirical, values, nil)),
			P90:  decimal.NewFromFloat(stat.Quantile(0.90, stat.Empirical, values, nil)),
		})
	}
	return bands
}

// goalProbabilities computes, per goal, the fraction of trials whose net
// worth at the goal's target date met the inflation-adjusted target.
func goalProbabilities(input *domain.ScenarioInput, deterministic []domain.ProjectionSnapshot, trials []trialSeries) []domain.GoalProbability {
	if len(input.Goals) == 0 {
		return nil
	}
	probs := make([]domain.GoalProbability, 0, len(input.Goals))
	for _, goal := range input.Goals {
		stepIdx := -1
		for i, snap := range deterministic {
			if snap.Date.After(goal.TargetDate) {
				break
			}
			stepIdx = i
		}

		prob := decimal.Zero
		if stepIdx >= 0 {
			target := inflateTarget(goal.TargetAmountReal, input.Household.AnchorDate, goal.TargetDate, input.Assumptions.InflationRate)
			hits := 0
			for _, trial := range trials {
				if decimal.NewFromFloat(trial.netWorths[stepIdx]).GreaterThanOrEqual(target) {
					hits++
				}
			}
			prob = decimal.NewFromInt(int64(hits)).Div(decimal.NewFromInt(int64(len(trials))))
		}
		probs = append(probs, domain.GoalProbability{
			GoalID:      goal.GoalID,
			Name:        goal.Name,
			TargetDate:  goal.TargetDate,
			Probability: prob,
		})
	}
	return probs
}

// inflateTarget converts a real (anchor-date dollars) target amount to the
// nominal dollars of the target date.
func inflateTarget(realAmount decimal.Decimal, anchor, target time.Time, inflationRate decimal.Decimal) decimal.Decimal {
	if anchor.IsZero() || inflationRate.IsZero() || !target.After(anchor) {
		return realAmount
	}
	years := dateutil.YearsBetween(anchor, target)
	factor := GrowthFactor(inflationRate, years)
	return realAmount.Mul(factor)
}
