package output

import (
	"encoding/json"
	"fmt"

	"github.com/hplan/household-planner/internal/calculation"
	"github.com/hplan/household-planner/internal/domain"
)

// JSONFormatter renders the full report as indented JSON for downstream
// tooling.
type JSONFormatter struct{}

type jsonReport struct {
	Mode              domain.ProjectionMode       `json:"mode"`
	Snapshots         []domain.ProjectionSnapshot `json:"snapshots"`
	PercentileBands   []domain.PercentileBand     `json:"percentile_bands,omitempty"`
	GoalProbabilities []domain.GoalProbability    `json:"goal_probabilities,omitempty"`
	TrialsRequested   int                         `json:"trials_requested,omitempty"`
	TrialsCompleted   int                         `json:"trials_completed,omitempty"`
	Partial           bool                        `json:"partial,omitempty"`
	SeedBase          int64                       `json:"seed_base,omitempty"`
	Insights          []calculation.Insight       `json:"insights,omitempty"`
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(report Report) (string, error) {
	r := report.Result
	doc := jsonReport{
		Mode:              r.Mode,
		Snapshots:         r.DeterministicSeries,
		PercentileBands:   r.PercentileBands,
		GoalProbabilities: r.GoalProbabilities,
		TrialsRequested:   r.TrialsRequested,
		TrialsCompleted:   r.TrialsCompleted,
		Partial:           r.Partial,
		SeedBase:          r.SeedBase,
		Insights:          calculation.GenerateInsights(report.Input, r),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}
