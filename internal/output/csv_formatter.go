package output

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
)

var decimalHundred = decimal.NewFromInt(100)

// CSVFormatter renders the monthly snapshot series as CSV, one row per
// snapshot. Monte Carlo runs add percentile columns.
type CSVFormatter struct{}

// Format renders the report as CSV.
func (f *CSVFormatter) Format(report Report) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	r := report.Result
	mc := r.Mode == domain.ModeMonteCarlo && len(r.PercentileBands) == len(r.DeterministicSeries)

	header := []string{"date", "net_worth", "total_assets", "total_liabilities", "net_cash_flow", "tax_paid"}
	if mc {
		header = append(header, "p10", "p25", "p50", "p75", "p90")
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, snap := range r.DeterministicSeries {
		row := []string{
			snap.Date.Format("2006-01-02"),
			snap.NetWorth.StringFixed(2),
			snap.TotalAssets.StringFixed(2),
			snap.TotalLiabilities.StringFixed(2),
			snap.NetCashFlow.StringFixed(2),
			snap.TaxPaid.StringFixed(2),
		}
		if mc {
			band := r.PercentileBands[i]
			row = append(row,
				band.P10.StringFixed(2),
				band.P25.StringFixed(2),
				band.P50.StringFixed(2),
				band.P75.StringFixed(2),
				band.P90.StringFixed(2))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return sb.String(), nil
}

// Name returns the formatter name.
func (f *CSVFormatter) Name() string {
	return "csv"
}
