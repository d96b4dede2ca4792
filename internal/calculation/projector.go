package calculation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
	"github.com/hplan/household-planner/pkg/dateutil"
)

// Projector is the deterministic time-stepping loop. One step is one
// calendar month; the per-step order is fixed: cash-flow deltas, loan
// amortization, growth, year-boundary tax settlement, snapshot.
type Projector struct {
	Returns ReturnProvider
	Settler *TaxSettler
	Logger  Logger

	// RevalueHoldings scales holding prices with the sampled return. The
	// Monte Carlo runner sets it; in deterministic mode prices stay constant.
	RevalueHoldings bool
}

// NewProjector creates a deterministic projector over the given tax settler.
func NewProjector(settler *TaxSettler) *Projector {
	return &Projector{
		Returns: FixedReturns(),
		Settler: settler,
		Logger:  NopLogger{},
	}
}

// Run projects the scenario month by month and returns the full ordered
// snapshot series. Any component error aborts the run; partial projections
// are never returned.
func (p *Projector) Run(input *domain.ScenarioInput) ([]domain.ProjectionSnapshot, error) {
	if err := ValidateScenario(input, p.Settler); err != nil {
		return nil, err
	}

	start := dateutil.MonthStart(input.Household.StartDate)
	months := dateutil.MonthsBetween(start, input.Household.EndDate)

	boundary := input.Assumptions.TaxYearStartMonth
	if boundary == 0 {
		boundary = time.January
	}

	accounts := make([]domain.AccountState, len(input.Accounts))
	accountIdx := make(map[string]int, len(input.Accounts))
	for i, acct := range input.Accounts {
		accounts[i] = acct.Clone()
		accountIdx[acct.AccountID] = i
	}
	loans := make([]domain.LoanState, len(input.Loans))
	for i, loan := range input.Loans {
		loans[i] = loan.Clone()
	}

	settlement, ok := accountIdx[input.SettlementAccount()]
	if !ok && len(accounts) > 0 {
		settlement = 0
	}

	defs := input.Definitions()
	monthlyYield := input.Assumptions.TaxableYieldPct.Div(monthsPerYear)

	snapshots := make([]domain.ProjectionSnapshot, 0, months)
	var yearEvents []domain.CashFlowEvent
	yearInvestmentIncome := decimal.Zero

	for step := 0; step < months; step++ {
		cur := dateutil.AddMonths(start, step)
		next := dateutil.AddMonths(cur, 1)

		// (1) Cash-flow deltas for this month's window.
		netCashFlow := decimal.Zero
		for _, def := range defs {
			events, err := ExpandDefinition(def, cur, next, input.Assumptions.InflationRate)
			if err != nil {
				return nil, err
			}
			for _, ev := range events {
				switch ev.Kind {
				case domain.KindIncome:
					idx := p.resolveAccount(accountIdx, def.AccountID, settlement)
					accounts[idx].CashBalance = accounts[idx].CashBalance.Add(ev.Amount)
					netCashFlow = netCashFlow.Add(ev.Amount)
				case domain.KindExpense:
					idx := p.resolveAccount(accountIdx, def.AccountID, settlement)
					accounts[idx].CashBalance = floorZero(accounts[idx].CashBalance.Sub(ev.Amount))
					netCashFlow = netCashFlow.Sub(ev.Amount)
				case domain.KindContribution:
					from := p.resolveAccount(accountIdx, def.AccountID, settlement)
					to := p.resolveAccount(accountIdx, def.TargetAccountID, settlement)
					accounts[from].CashBalance = floorZero(accounts[from].CashBalance.Sub(ev.Amount))
					accounts[to].CashBalance = accounts[to].CashBalance.Add(ev.Amount)
				}
				yearEvents = append(yearEvents, ev)
			}
		}

		// (2) Amortize all active loans; payments draw on settlement cash.
		for i := range loans {
			if loans[i].PaidOff {
				continue
			}
			nextLoan, payment := AmortizeStep(loans[i], endOfMonth(cur))
			loans[i] = nextLoan
			if payment != nil && len(accounts) > 0 {
				accounts[settlement].CashBalance = floorZero(accounts[settlement].CashBalance.Sub(payment.Amount))
				netCashFlow = netCashFlow.Sub(payment.Amount)
				yearEvents = append(yearEvents, *payment)
			}
		}

		// (3) Apply growth, accruing the taxable yield on post-growth value.
		for i := range accounts {
			factor := p.Returns.MonthlyFactor(accounts[i], step)
			priceFactor := decimal.NewFromInt(1)
			if p.RevalueHoldings {
				priceFactor = factor
			}
			accounts[i] = ApplyGrowth(accounts[i], factor, priceFactor)
			yearInvestmentIncome = yearInvestmentIncome.Add(accounts[i].TotalValue().Mul(monthlyYield))
		}

		// (4) Settle tax when the month closes the tax year, or at the end
		// of a projection that stops mid-year.
		taxPaid := decimal.Zero
		if dateutil.ClosesTaxYear(cur, boundary) || step == months-1 {
			liability, err := p.Settler.SettleYear(dateutil.TaxYear(cur, boundary), yearEvents, yearInvestmentIncome, input.TaxProfile)
			if err != nil {
				return nil, fmt.Errorf("tax settlement at %s: %w", cur.Format("2006-01"), err)
			}
			if len(accounts) > 0 {
				accounts[settlement].CashBalance = floorZero(accounts[settlement].CashBalance.Sub(liability.Total))
			}
			taxPaid = liability.Total
			yearEvents = yearEvents[:0]
			yearInvestmentIncome = decimal.Zero
		}

		// (5) Emit the snapshot.
		snapshots = append(snapshots, p.snapshot(endOfMonth(cur), accounts, loans, netCashFlow, taxPaid))
	}

	p.Logger.Debugf("projection complete: %d monthly snapshots", len(snapshots))
	return snapshots, nil
}

func (p *Projector) resolveAccount(idx map[string]int, accountID string, settlement int) int {
	if accountID == "" {
		return settlement
	}
	if i, ok := idx[accountID]; ok {
		return i
	}
	return settlement
}

func (p *Projector) snapshot(date time.Time, accounts []domain.AccountState, loans []domain.LoanState, netCashFlow, taxPaid decimal.Decimal) domain.ProjectionSnapshot {
	perAccount := make(map[string]decimal.Decimal, len(accounts))
	totalAssets := decimal.Zero
	for _, acct := range accounts {
		value := acct.TotalValue()
		perAccount[acct.AccountID] = value
		totalAssets = totalAssets.Add(value)
	}

	perLoan := make(map[string]decimal.Decimal, len(loans))
	totalLiabilities := decimal.Zero
	for _, loan := range loans {
		perLoan[loan.LoanID] = loan.RemainingBalance
		totalLiabilities = totalLiabilities.Add(loan.RemainingBalance)
	}

	return domain.ProjectionSnapshot{
		Date:              date,
		NetWorth:          totalAssets.Sub(totalLiabilities),
		TotalAssets:       totalAssets,
		TotalLiabilities:  totalLiabilities,
		PerAccountBalance: perAccount,
		PerLoanBalance:    perLoan,
		NetCashFlow:       netCashFlow,
		TaxPaid:           taxPaid,
	}
}

func endOfMonth(monthStart time.Time) time.Time {
	return dateutil.NextMonth(monthStart).AddDate(0, 0, -1)
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
