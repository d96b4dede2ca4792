package calculation

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
	"github.com/hplan/household-planner/pkg/dateutil"
)

// ValidateDefinition checks a recurring definition for structural problems.
// All violations wrap ErrInvalidDefinition.
func ValidateDefinition(def domain.RecurringDefinition) error {
	if def.Amount.IsNegative() {
		return fmt.Errorf("%w: %s: amount cannot be negative", ErrInvalidDefinition, def.ID)
	}
	if !def.Frequency.Valid() {
		return fmt.Errorf("%w: %s: unsupported frequency %q", ErrInvalidDefinition, def.ID, def.Frequency)
	}
	if !def.GrowthRule.Valid() {
		return fmt.Errorf("%w: %s: unsupported growth rule %q", ErrInvalidDefinition, def.ID, def.GrowthRule)
	}
	if def.GrowthRule == domain.GrowthCustomPercent && def.GrowthPct == nil {
		return fmt.Errorf("%w: %s: growth_pct is required for custom_percent", ErrInvalidDefinition, def.ID)
	}
	if def.StartDate.IsZero() {
		return fmt.Errorf("%w: %s: start date is required", ErrInvalidDefinition, def.ID)
	}
	if def.EndDate != nil && def.EndDate.Before(def.StartDate) {
		return fmt.Errorf("%w: %s: end date %s is before start date %s", ErrInvalidDefinition,
			def.ID, def.EndDate.Format("2006-01-02"), def.StartDate.Format("2006-01-02"))
	}
	return nil
}

// ExpandDefinition turns one recurring definition into the dated sequence of
// cash-flow events falling inside [horizonStart, horizonEnd). The expansion
// is pure: the same inputs always yield the same sequence, so it is safe to
// re-run per step and per trial.
func ExpandDefinition(def domain.RecurringDefinition, horizonStart, horizonEnd time.Time, inflationRate decimal.Decimal) ([]domain.CashFlowEvent, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}
	if !horizonEnd.After(horizonStart) {
		return nil, nil
	}

	if def.Frequency == domain.FrequencyOneTime {
		// Exactly one occurrence at the start date, regardless of end date.
		if def.StartDate.Before(horizonStart) || !def.StartDate.Before(horizonEnd) {
			return nil, nil
		}
		return []domain.CashFlowEvent{{
			Date:     def.StartDate,
			Amount:   def.Amount,
			SourceID: def.ID,
			Kind:     def.Kind,
		}}, nil
	}

	// Events never extend past the definition's own end date.
	windowEnd := horizonEnd
	if def.EndDate != nil && def.EndDate.Before(windowEnd) {
		windowEnd = *def.EndDate
	}

	var events []domain.CashFlowEvent
	for k := 0; ; k++ {
		date := occurrenceDate(def.StartDate, def.Frequency, k)
		if !date.Before(windowEnd) {
			break
		}
		if date.Before(horizonStart) {
			continue
		}
		events = append(events, domain.CashFlowEvent{
			Date:     date,
			Amount:   grownAmount(def, date, inflationRate),
			SourceID: def.ID,
			Kind:     def.Kind,
		})
	}
	return events, nil
}

// occurrenceDate returns the date of the k-th occurrence of a periodic
// definition. Monthly and annual schedules follow calendar boundaries;
// weekly and biweekly advance by exact day counts.
func occurrenceDate(start time.Time, freq domain.Frequency, k int) time.Time {
	switch freq {
	case domain.FrequencyMonthly:
		return dateutil.AddMonths(start, k)
	case domain.FrequencyAnnual:
		return start.AddDate(k, 0, 0)
	case domain.FrequencyBiweekly:
		return start.AddDate(0, 0, 14*k)
	case domain.FrequencyWeekly:
		return start.AddDate(0, 0, 7*k)
	default:
		return start
	}
}

// grownAmount applies the definition's growth rule at an occurrence date.
// Years elapsed is fractional, not truncated.
func grownAmount(def domain.RecurringDefinition, date time.Time, inflationRate decimal.Decimal) decimal.Decimal {
	var rate decimal.Decimal
	switch def.GrowthRule {
	case domain.GrowthTrackInflation:
		rate = inflationRate
	case domain.GrowthCustomPercent:
		rate = *def.GrowthPct
	default:
		return def.Amount
	}
	if rate.IsZero() {
		return def.Amount
	}
	years := dateutil.YearsBetween(def.StartDate, date)
	factor := math.Pow(decimal.NewFromInt(1).Add(rate).InexactFloat64(), years)
	return def.Amount.Mul(decimal.NewFromFloat(factor))
}
