package calculation

import (
	"context"
	"fmt"

	"github.com/hplan/household-planner/internal/domain"
)

// Engine is the library entry point: a pure function of scenario input to
// projection result, with no owned storage and no I/O during simulation.
type Engine struct {
	Settler *TaxSettler
	Logger  Logger
}

// NewEngine creates an engine over the built-in bracket tables.
func NewEngine() *Engine {
	return NewEngineWithTables(DefaultBracketTables())
}

// NewEngineWithTables creates an engine with caller-supplied tax tables.
func NewEngineWithTables(tables BracketTables) *Engine {
	return &Engine{
		Settler: NewTaxSettler(tables),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger. Passing nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
	e.Settler.Logger = l
}

// Project runs a scenario in the requested mode. Validation happens upfront
// over the full input; a failed validation aborts before any simulation.
func (e *Engine) Project(ctx context.Context, input *domain.ScenarioInput, mode domain.ProjectionMode, opts MonteCarloOptions) (*domain.ProjectionResult, error) {
	if err := ValidateScenario(input, e.Settler); err != nil {
		return nil, err
	}

	projector := NewProjector(e.Settler)
	projector.Logger = e.Logger
	deterministic, err := projector.Run(input)
	if err != nil {
		return nil, fmt.Errorf("deterministic projection failed: %w", err)
	}

	switch mode {
	case domain.ModeDeterministic, "":
		return &domain.ProjectionResult{
			Mode:                domain.ModeDeterministic,
			DeterministicSeries: deterministic,
		}, nil
	case domain.ModeMonteCarlo:
		runner := NewMonteCarloRunner(e.Settler)
		runner.Logger = e.Logger
		return runner.RunTrials(ctx, input, deterministic, opts)
	default:
		return nil, fmt.Errorf("unknown projection mode %q", mode)
	}
}
