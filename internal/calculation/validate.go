package calculation

import (
	"fmt"

	"github.com/hplan/household-planner/internal/domain"
	"github.com/hplan/household-planner/pkg/dateutil"
)

// ValidateScenario runs the upfront validation pass over the full scenario
// input. Every violation is collected so the caller sees all of them; a
// non-nil result means the simulation must not start.
func ValidateScenario(input *domain.ScenarioInput, settler *TaxSettler) error {
	var violations []error

	h := input.Household
	switch {
	case h.StartDate.IsZero() || h.EndDate.IsZero():
		violations = append(violations, fmt.Errorf("%w: start and end dates are required", ErrHorizon))
	case !h.EndDate.After(h.StartDate):
		violations = append(violations, fmt.Errorf("%w: end date %s is not after start date %s",
			ErrHorizon, h.EndDate.Format("2006-01-02"), h.StartDate.Format("2006-01-02")))
	case dateutil.MonthsBetween(h.StartDate, h.EndDate) < 1:
		violations = append(violations, fmt.Errorf("%w: window spans no whole month", ErrHorizon))
	}

	for _, def := range input.Definitions() {
		if err := ValidateDefinition(def); err != nil {
			violations = append(violations, err)
		}
	}

	for _, acct := range input.Accounts {
		if acct.CashBalance.IsNegative() {
			violations = append(violations, fmt.Errorf("%w: account %s: negative cash balance", ErrNegativeQuantity, acct.AccountID))
		}
		for _, holding := range acct.Holdings {
			if holding.Shares.IsNegative() {
				violations = append(violations, fmt.Errorf("%w: account %s: negative shares for %s", ErrNegativeQuantity, acct.AccountID, holding.Ticker))
			}
			if holding.AvgPrice.IsNegative() || (holding.LastPrice != nil && holding.LastPrice.IsNegative()) {
				violations = append(violations, fmt.Errorf("%w: account %s: negative price for %s", ErrNegativeQuantity, acct.AccountID, holding.Ticker))
			}
		}
	}

	for _, loan := range input.Loans {
		if loan.Principal.IsNegative() || loan.RemainingBalance.IsNegative() {
			violations = append(violations, fmt.Errorf("%w: loan %s: negative principal or balance", ErrNegativeQuantity, loan.LoanID))
		}
		if loan.MonthlyPayment.IsNegative() || loan.ExtraPaymentMonthly.IsNegative() {
			violations = append(violations, fmt.Errorf("%w: loan %s: negative payment", ErrNegativeQuantity, loan.LoanID))
		}
	}

	for _, goal := range input.Goals {
		if goal.TargetAmountReal.IsNegative() {
			violations = append(violations, fmt.Errorf("%w: goal %s: negative target amount", ErrNegativeQuantity, goal.GoalID))
		}
	}

	if settler != nil {
		if err := settler.Supported(input.TaxProfile); err != nil {
			violations = append(violations, err)
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}
