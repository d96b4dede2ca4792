package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
)

// InsightSeverity ranks how urgently an observation deserves attention.
type InsightSeverity string

const (
	SeverityInfo     InsightSeverity = "info"
	SeverityWarning  InsightSeverity = "warning"
	SeverityCritical InsightSeverity = "critical"
)

func (s InsightSeverity) rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Insight is a single titled observation about a projection. ExpiresAt is set
// when the observation is only relevant until a known date.
type Insight struct {
	Title     string          `json:"title"`
	Severity  InsightSeverity `json:"severity"`
	Detail    string          `json:"detail"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

var goalRiskThreshold = decimal.NewFromFloat(0.5)

// GenerateInsights derives observations from a completed projection:
// depletion, declining net worth, negative savings rate, loan payoffs, and
// at-risk goals. Results come back sorted most severe first, then by title.
func GenerateInsights(input *domain.ScenarioInput, result *domain.ProjectionResult) []Insight {
	var insights []Insight
	series := result.DeterministicSeries
	if len(series) == 0 {
		return insights
	}

	first := series[0]
	last := series[len(series)-1]

	for _, snap := range series {
		if snap.TotalAssets.IsZero() {
			insights = append(insights, Insight{
				Title:    "Assets depleted",
				Severity: SeverityCritical,
				Detail:   fmt.Sprintf("All account balances reach zero by %s.", snap.Date.Format("January 2006")),
			})
			break
		}
	}

	if last.NetWorth.LessThan(first.NetWorth) {
		insights = append(insights, Insight{
			Title:    "Net worth declines over the horizon",
			Severity: SeverityWarning,
			Detail: fmt.Sprintf("Net worth falls from %s to %s between %s and %s.",
				first.NetWorth.StringFixed(0), last.NetWorth.StringFixed(0),
				first.Date.Format("January 2006"), last.Date.Format("January 2006")),
		})
	}

	if rate := savingsRate(series); rate.IsNegative() {
		insights = append(insights, Insight{
			Title:    "Spending exceeds income",
			Severity: SeverityWarning,
			Detail:   fmt.Sprintf("Average monthly cash flow is negative (savings rate %s%%).", rate.Mul(hundred).StringFixed(1)),
		})
	}

	insights = append(insights, loanPayoffInsights(input, series)...)

	for _, gp := range result.GoalProbabilities {
		if gp.Probability.LessThan(goalRiskThreshold) {
			expires := gp.TargetDate
			insights = append(insights, Insight{
				Title:    fmt.Sprintf("Goal at risk: %s", gp.Name),
				Severity: SeverityWarning,
				Detail: fmt.Sprintf("Only %s%% of trials reach the target by %s.",
					gp.Probability.Mul(hundred).StringFixed(0), gp.TargetDate.Format("January 2006")),
				ExpiresAt: &expires,
			})
		}
	}

	if result.Partial {
		insights = append(insights, Insight{
			Title:    "Simulation stopped early",
			Severity: SeverityInfo,
			Detail: fmt.Sprintf("Only %d of %d requested trials finished before the deadline; percentile bands are based on the completed trials.",
				result.TrialsCompleted, result.TrialsRequested),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		if insights[i].Severity.rank() != insights[j].Severity.rank() {
			return insights[i].Severity.rank() < insights[j].Severity.rank()
		}
		return insights[i].Title < insights[j].Title
	})
	return insights
}

// savingsRate is average net cash flow over average gross inflow. Zero income
// yields a zero rate, never a division error.
func savingsRate(series []domain.ProjectionSnapshot) decimal.Decimal {
	totalNet := decimal.Zero
	totalInflow := decimal.Zero
	for _, snap := range series {
		totalNet = totalNet.Add(snap.NetCashFlow)
		if snap.NetCashFlow.IsPositive() {
			totalInflow = totalInflow.Add(snap.NetCashFlow)
		}
	}
	if totalInflow.IsZero() {
		if totalNet.IsNegative() {
			return decimal.NewFromInt(-1)
		}
		return decimal.Zero
	}
	return totalNet.Div(totalInflow)
}

func loanPayoffInsights(input *domain.ScenarioInput, series []domain.ProjectionSnapshot) []Insight {
	var insights []Insight
	for _, loan := range input.Loans {
		if !loan.RemainingBalance.IsPositive() {
			continue
		}
		for _, snap := range series {
			bal, ok := snap.PerLoanBalance[loan.LoanID]
			if !ok || bal.IsPositive() {
				continue
			}
			payoff := snap.Date
			insights = append(insights, Insight{
				Title:     fmt.Sprintf("Loan paid off: %s", loan.Name),
				Severity:  SeverityInfo,
				Detail:    fmt.Sprintf("%s reaches zero balance in %s.", loan.Name, payoff.Format("January 2006")),
				ExpiresAt: &payoff,
			})
			break
		}
	}
	return insights
}
