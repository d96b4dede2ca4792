package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hplan/household-planner/internal/domain"
)

func volatileScenario() *domain.ScenarioInput {
	input := flatScenario()
	input.Assumptions.DefaultVolatilityPct = decimal.NewFromFloat(0.15)
	input.Accounts[0].ExpectedReturnPct = decimal.NewFromFloat(0.06)
	return input
}

func runDeterministic(t *testing.T, input *domain.ScenarioInput) []domain.ProjectionSnapshot {
	t.Helper()
	projector := NewProjector(NewTaxSettler(DefaultBracketTables()))
	snapshots, err := projector.Run(input)
	require.NoError(t, err)
	return snapshots
}

func TestRunTrialsReproducible(t *testing.T) {
	input := volatileScenario()
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	opts := MonteCarloOptions{Trials: 50, SeedBase: 42, Workers: 4}
	a, err := runner.RunTrials(context.Background(), input, deterministic, opts)
	require.NoError(t, err)
	b, err := runner.RunTrials(context.Background(), input, deterministic, opts)
	require.NoError(t, err)

	require.Equal(t, len(a.PercentileBands), len(b.PercentileBands))
	for i := range a.PercentileBands {
		assert.True(t, a.PercentileBands[i].P10.Equal(b.PercentileBands[i].P10), "band %d p10", i)
		assert.True(t, a.PercentileBands[i].P50.Equal(b.PercentileBands[i].P50), "band %d p50", i)
		assert.True(t, a.PercentileBands[i].P90.Equal(b.PercentileBands[i].P90), "band %d p90", i)
	}
}

func TestRunTrialsSeedChangesOutcome(t *testing.T) {
	input := volatileScenario()
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	a, err := runner.RunTrials(context.Background(), input, deterministic, MonteCarloOptions{Trials: 50, SeedBase: 1})
	require.NoError(t, err)
	b, err := runner.RunTrials(context.Background(), input, deterministic, MonteCarloOptions{Trials: 50, SeedBase: 2})
	require.NoError(t, err)

	last := len(a.PercentileBands) - 1
	assert.False(t, a.PercentileBands[last].P50.Equal(b.PercentileBands[last].P50),
		"different seed bases should produce different medians")
}

func TestRunTrialsBandOrdering(t *testing.T) {
	input := volatileScenario()
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	result, err := runner.RunTrials(context.Background(), input, deterministic, MonteCarloOptions{Trials: 100, SeedBase: 7})
	require.NoError(t, err)
	require.Len(t, result.PercentileBands, len(deterministic))

	for i, band := range result.PercentileBands {
		assert.True(t, band.P10.LessThanOrEqual(band.P25), "band %d", i)
		assert.True(t, band.P25.LessThanOrEqual(band.P50), "band %d", i)
		assert.True(t, band.P50.LessThanOrEqual(band.P75), "band %d", i)
		assert.True(t, band.P75.LessThanOrEqual(band.P90), "band %d", i)
		assert.True(t, band.Date.Equal(deterministic[i].Date))
	}
	assert.Equal(t, 100, result.TrialsCompleted)
	assert.False(t, result.Partial)
}

func TestRunTrialsZeroVolatilityCollapses(t *testing.T) {
	input := flatScenario()
	input.Accounts[0].ExpectedReturnPct = decimal.NewFromFloat(0.06)
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	result, err := runner.RunTrials(context.Background(), input, deterministic, MonteCarloOptions{Trials: 20, SeedBase: 3})
	require.NoError(t, err)

	// With zero volatility every trial follows the same path.
	for i, band := range result.PercentileBands {
		assert.True(t, band.P10.Equal(band.P90), "band %d should be degenerate", i)
	}
}

func TestRunTrialsDeadlineYieldsPartialResult(t *testing.T) {
	input := volatileScenario()
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	opts := MonteCarloOptions{Trials: 5000, SeedBase: 9, Timeout: time.Nanosecond}
	result, err := runner.RunTrials(context.Background(), input, deterministic, opts)
	require.NoError(t, err, "a deadline is a labeled partial result, not an error")

	assert.True(t, result.Partial)
	assert.Less(t, result.TrialsCompleted, 5000)
	assert.Equal(t, 5000, result.TrialsRequested)
}

func TestRunTrialsGoalProbabilities(t *testing.T) {
	input := volatileScenario()
	input.Goals = []domain.Goal{
		{GoalID: "easy", Name: "Easy", TargetAmountReal: decimal.NewFromInt(1), TargetDate: date(2026, 12, 31)},
		{GoalID: "impossible", Name: "Impossible", TargetAmountReal: decimal.NewFromInt(1000000000), TargetDate: date(2026, 12, 31)},
	}
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	result, err := runner.RunTrials(context.Background(), input, deterministic, MonteCarloOptions{Trials: 50, SeedBase: 11})
	require.NoError(t, err)
	require.Len(t, result.GoalProbabilities, 2)

	byID := map[string]domain.GoalProbability{}
	for _, gp := range result.GoalProbabilities {
		byID[gp.GoalID] = gp
	}
	assert.True(t, byID["easy"].Probability.Equal(decimal.NewFromInt(1)))
	assert.True(t, byID["impossible"].Probability.IsZero())
}

func TestRunTrialsNoGoals(t *testing.T) {
	input := volatileScenario()
	deterministic := runDeterministic(t, input)
	runner := NewMonteCarloRunner(NewTaxSettler(DefaultBracketTables()))

	result, err := runner.RunTrials(context.Background(), input, deterministic, MonteCarloOptions{Trials: 10, SeedBase: 1})
	require.NoError(t, err)
	assert.Nil(t, result.GoalProbabilities)
}
