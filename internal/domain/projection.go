package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionSnapshot is one dated record of net worth and component balances,
// emitted once per simulation step. The ordered sequence of snapshots is the
// deterministic projector's output.
type ProjectionSnapshot struct {
	Date              time.Time                  `json:"date"`
	NetWorth          decimal.Decimal            `json:"net_worth"`
	TotalAssets       decimal.Decimal            `json:"total_assets"`
	TotalLiabilities  decimal.Decimal            `json:"total_liabilities"`
	PerAccountBalance map[string]decimal.Decimal `json:"per_account_balances"`
	PerLoanBalance    map[string]decimal.Decimal `json:"per_loan_balances,omitempty"`

	// Step detail retained for audit trails and the insight generator.
	NetCashFlow decimal.Decimal `json:"net_cash_flow"`
	TaxPaid     decimal.Decimal `json:"tax_paid"`
}

// PercentileBand holds the net-worth percentiles across Monte Carlo trials
// at one snapshot date.
type PercentileBand struct {
	Date time.Time       `json:"date"`
	P10  decimal.Decimal `json:"p10"`
	P25  decimal.Decimal `json:"p25"`
	P50  decimal.Decimal `json:"p50"`
	P75  decimal.Decimal `json:"p75"`
	P90  decimal.Decimal `json:"p90"`
}

// GoalProbability is the fraction of trials whose net worth at the goal's
// target date met or exceeded the inflation-adjusted target amount.
type GoalProbability struct {
	GoalID      string          `json:"goal_id"`
	Name        string          `json:"name"`
	TargetDate  time.Time       `json:"target_date"`
	Probability decimal.Decimal `json:"probability"`
}

// ProjectionMode selects deterministic or Monte Carlo projection.
type ProjectionMode string

const (
	ModeDeterministic ProjectionMode = "deterministic"
	ModeMonteCarlo    ProjectionMode = "montecarlo"
)

// ProjectionResult is the final, immutable output artifact.
type ProjectionResult struct {
	Mode                ProjectionMode       `json:"mode"`
	DeterministicSeries []ProjectionSnapshot `json:"deterministic_series"`
	PercentileBands     []PercentileBand     `json:"percentile_bands,omitempty"`
	GoalProbabilities   []GoalProbability    `json:"goal_probabilities,omitempty"`

	// Trial accounting. A deadline-truncated run reports fewer completed
	// trials than requested and is flagged partial.
	TrialsRequested int   `json:"trials_requested,omitempty"`
	TrialsCompleted int   `json:"trials_completed,omitempty"`
	Partial         bool  `json:"partial,omitempty"`
	SeedBase        int64 `json:"seed_base,omitempty"`
}

// FinalNetWorth returns the net worth of the last deterministic snapshot, or
// zero for an empty series.
func (r *ProjectionResult) FinalNetWorth() decimal.Decimal {
	if len(r.DeterministicSeries) == 0 {
		return decimal.Zero
	}
	return r.DeterministicSeries[len(r.DeterministicSeries)-1].NetWorth
}

// SnapshotAt returns the last snapshot dated on or before date, if any.
func SnapshotAt(series []ProjectionSnapshot, date time.Time) (ProjectionSnapshot, bool) {
	var found ProjectionSnapshot
	ok := false
	for _, s := range series {
		if s.Date.After(date) {
			break
		}
		found = s
		ok = true
	}
	return found, ok
}
