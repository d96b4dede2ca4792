package output

import (
	"fmt"
	"strings"

	"github.com/hplan/household-planner/internal/calculation"
	"github.com/hplan/household-planner/internal/domain"
	"github.com/hplan/household-planner/pkg/money"
)

// ConsoleFormatter renders a human-readable summary for terminal use.
type ConsoleFormatter struct{}

// Format renders the report as formatted console text.
func (f *ConsoleFormatter) Format(report Report) (string, error) {
	var sb strings.Builder
	r := report.Result
	series := r.DeterministicSeries

	sb.WriteString("HOUSEHOLD PROJECTION\n")
	sb.WriteString("====================\n\n")

	if len(series) == 0 {
		sb.WriteString("No snapshots produced.\n")
		return sb.String(), nil
	}

	first := series[0]
	last := series[len(series)-1]
	fmt.Fprintf(&sb, "Horizon:          %s to %s (%d months)\n",
		first.Date.Format("Jan 2006"), last.Date.Format("Jan 2006"), len(series))
	fmt.Fprintf(&sb, "Mode:             %s\n", r.Mode)
	fmt.Fprintf(&sb, "Starting Net Worth: %s\n", money.FromDecimal(first.NetWorth).Format())
	fmt.Fprintf(&sb, "Final Net Worth:    %s\n\n", money.FromDecimal(last.NetWorth).Format())

	f.writeYearEnds(&sb, series)

	if r.Mode == domain.ModeMonteCarlo {
		f.writeMonteCarlo(&sb, r)
	}

	f.writeInsights(&sb, report)
	return sb.String(), nil
}

// writeYearEnds prints the December snapshot of each year plus the final one.
func (f *ConsoleFormatter) writeYearEnds(sb *strings.Builder, series []domain.ProjectionSnapshot) {
	sb.WriteString("YEAR-END SNAPSHOTS\n")
	fmt.Fprintf(sb, "%-10s %16s %16s %16s %14s\n", "Date", "Net Worth", "Assets", "Liabilities", "Tax Paid")
	for i, snap := range series {
		if snap.Date.Month() != 12 && i != len(series)-1 {
			continue
		}
		fmt.Fprintf(sb, "%-10s %16s %16s %16s %14s\n",
			snap.Date.Format("2006-01"),
			money.FromDecimal(snap.NetWorth).Round().String(),
			money.FromDecimal(snap.TotalAssets).Round().String(),
			money.FromDecimal(snap.TotalLiabilities).Round().String(),
			money.FromDecimal(snap.TaxPaid).Round().String())
	}
	sb.WriteString("\n")
}

func (f *ConsoleFormatter) writeMonteCarlo(sb *strings.Builder, r *domain.ProjectionResult) {
	fmt.Fprintf(sb, "MONTE CARLO (%d/%d trials", r.TrialsCompleted, r.TrialsRequested)
	if r.Partial {
		sb.WriteString(", partial")
	}
	sb.WriteString(")\n")

	if len(r.PercentileBands) > 0 {
		final := r.PercentileBands[len(r.PercentileBands)-1]
		fmt.Fprintf(sb, "Final net worth percentiles (%s):\n", final.Date.Format("Jan 2006"))
		fmt.Fprintf(sb, "  p10: %s\n", money.FromDecimal(final.P10).Format())
		fmt.Fprintf(sb, "  p25: %s\n", money.FromDecimal(final.P25).Format())
		fmt.Fprintf(sb, "  p50: %s\n", money.FromDecimal(final.P50).Format())
		fmt.Fprintf(sb, "  p75: %s\n", money.FromDecimal(final.P75).Format())
		fmt.Fprintf(sb, "  p90: %s\n", money.FromDecimal(final.P90).Format())
	}
	for _, gp := range r.GoalProbabilities {
		fmt.Fprintf(sb, "Goal %q by %s: %s%% of trials succeed\n",
			gp.Name, gp.TargetDate.Format("Jan 2006"), gp.Probability.Mul(decimalHundred).StringFixed(1))
	}
	sb.WriteString("\n")
}

func (f *ConsoleFormatter) writeInsights(sb *strings.Builder, report Report) {
	insights := calculation.GenerateInsights(report.Input, report.Result)
	if len(insights) == 0 {
		return
	}
	sb.WriteString("INSIGHTS\n")
	for _, ins := range insights {
		fmt.Fprintf(sb, "  [%s] %s: %s\n", strings.ToUpper(string(ins.Severity)), ins.Title, ins.Detail)
	}
}

// Name returns the formatter name.
func (f *ConsoleFormatter) Name() string {
	return "console"
}
