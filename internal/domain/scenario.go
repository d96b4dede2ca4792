package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the closed set of recurrence schedules a definition may use.
type Frequency string

const (
	FrequencyMonthly  Frequency = "monthly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyAnnual   Frequency = "annual"
	FrequencyOneTime  Frequency = "one_time"
)

// OccurrencesPerYear maps a frequency to its annual occurrence count.
// One-time definitions are a single occurrence, not periodic.
func (f Frequency) OccurrencesPerYear() int {
	switch f {
	case FrequencyAnnual:
		return 1
	case FrequencyMonthly:
		return 12
	case FrequencyBiweekly:
		return 26
	case FrequencyWeekly:
		return 52
	case FrequencyOneTime:
		return 0
	default:
		return 0
	}
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyBiweekly, FrequencyWeekly, FrequencyAnnual, FrequencyOneTime:
		return true
	}
	return false
}

// GrowthRule is the closed set of amount-escalation rules.
type GrowthRule string

const (
	GrowthNone           GrowthRule = "none"
	GrowthTrackInflation GrowthRule = "track_inflation"
	GrowthCustomPercent  GrowthRule = "custom_percent"
)

// Valid reports whether g is one of the supported growth rules. The empty
// string is accepted and treated as GrowthNone.
func (g GrowthRule) Valid() bool {
	switch g {
	case GrowthNone, GrowthTrackInflation, GrowthCustomPercent, "":
		return true
	}
	return false
}

// CashFlowKind classifies a cash-flow event.
type CashFlowKind string

const (
	KindIncome       CashFlowKind = "income"
	KindExpense      CashFlowKind = "expense"
	KindContribution CashFlowKind = "contribution"
	KindLoanPayment  CashFlowKind = "loan_payment"
)

// RecurringDefinition describes one recurring income, expense, or
// contribution stream. Immutable once created; owned by the scenario.
type RecurringDefinition struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Kind      CashFlowKind    `yaml:"-" json:"kind"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	StartDate time.Time       `yaml:"start_date" json:"start_date"`
	EndDate   *time.Time      `yaml:"end_date,omitempty" json:"end_date,omitempty"`

	GrowthRule GrowthRule       `yaml:"growth_rule,omitempty" json:"growth_rule,omitempty"`
	GrowthPct  *decimal.Decimal `yaml:"growth_pct,omitempty" json:"growth_pct,omitempty"`

	// AccountID is the account the flow settles against; empty means the
	// scenario's settlement account. TargetAccountID receives contribution
	// amounts moved out of the settlement account.
	AccountID       string `yaml:"account_id,omitempty" json:"account_id,omitempty"`
	TargetAccountID string `yaml:"target_account_id,omitempty" json:"target_account_id,omitempty"`
}

// CashFlowEvent is one dated occurrence derived from a RecurringDefinition.
// Events are regenerated deterministically, never persisted independently.
type CashFlowEvent struct {
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	SourceID string          `json:"source_id"`
	Kind     CashFlowKind    `json:"kind"`
}

// Holding is one position inside an investment account.
type Holding struct {
	Ticker    string           `yaml:"ticker" json:"ticker"`
	Shares    decimal.Decimal  `yaml:"shares" json:"shares"`
	AvgPrice  decimal.Decimal  `yaml:"avg_price" json:"avg_price"`
	LastPrice *decimal.Decimal `yaml:"last_price,omitempty" json:"last_price,omitempty"`
}

// Price returns the latest known price for the holding, falling back to the
// average purchase price when no quote is available.
func (h Holding) Price() decimal.Decimal {
	if h.LastPrice != nil {
		return *h.LastPrice
	}
	return h.AvgPrice
}

// MarketValue returns shares times the latest known price.
func (h Holding) MarketValue() decimal.Decimal {
	return h.Shares.Mul(h.Price())
}

// AccountState is the balance sheet of one account at a point in time.
type AccountState struct {
	AccountID         string           `yaml:"account_id" json:"account_id"`
	Name              string           `yaml:"name" json:"name"`
	CashBalance       decimal.Decimal  `yaml:"cash_balance" json:"cash_balance"`
	Holdings          []Holding        `yaml:"holdings,omitempty" json:"holdings,omitempty"`
	ExpectedReturnPct decimal.Decimal  `yaml:"expected_return_pct" json:"expected_return_pct"`
	VolatilityPct     *decimal.Decimal `yaml:"volatility_pct,omitempty" json:"volatility_pct,omitempty"`
}

// HoldingsValue returns the combined market value of all holdings.
func (a AccountState) HoldingsValue() decimal.Decimal {
	total := decimal.Zero
	for _, h := range a.Holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// TotalValue returns cash plus holdings market value.
func (a AccountState) TotalValue() decimal.Decimal {
	return a.CashBalance.Add(a.HoldingsValue())
}

// Clone returns a deep copy so step transitions never mutate caller state.
func (a AccountState) Clone() AccountState {
	out := a
	if a.Holdings != nil {
		out.Holdings = make([]Holding, len(a.Holdings))
		copy(out.Holdings, a.Holdings)
		for i := range out.Holdings {
			if a.Holdings[i].LastPrice != nil {
				p := *a.Holdings[i].LastPrice
				out.Holdings[i].LastPrice = &p
			}
		}
	}
	if a.VolatilityPct != nil {
		v := *a.VolatilityPct
		out.VolatilityPct = &v
	}
	return out
}

// LoanState is the amortization state of one loan.
type LoanState struct {
	LoanID                 string           `yaml:"loan_id" json:"loan_id"`
	Name                   string           `yaml:"name" json:"name"`
	Principal              decimal.Decimal  `yaml:"principal" json:"principal"`
	APRPct                 decimal.Decimal  `yaml:"apr_pct" json:"apr_pct"`
	TermMonths             int              `yaml:"term_months" json:"term_months"`
	RemainingBalance       decimal.Decimal  `yaml:"remaining_balance" json:"remaining_balance"`
	MonthlyPayment         decimal.Decimal  `yaml:"monthly_payment" json:"monthly_payment"`
	ExtraPaymentMonthly    decimal.Decimal  `yaml:"extra_payment_monthly" json:"extra_payment_monthly"`
	PaymentOverrideMonthly *decimal.Decimal `yaml:"payment_override_monthly,omitempty" json:"payment_override_monthly,omitempty"`
	PaidOff                bool             `yaml:"-" json:"paid_off"`
}

// Clone returns a copy of the loan state.
func (l LoanState) Clone() LoanState {
	out := l
	if l.PaymentOverrideMonthly != nil {
		p := *l.PaymentOverrideMonthly
		out.PaymentOverrideMonthly = &p
	}
	return out
}

// FilingStatus is the closed set of supported tax filing statuses.
type FilingStatus string

const (
	FilingSingle         FilingStatus = "single"
	FilingMarriedJointly FilingStatus = "married_jointly"
)

// Valid reports whether s is a supported filing status.
func (s FilingStatus) Valid() bool {
	return s == FilingSingle || s == FilingMarriedJointly
}

// TaxProfile is the household's tax situation. Consumed, never mutated.
type TaxProfile struct {
	StateCode           string       `yaml:"state_code" json:"state_code"`
	FilingStatus        FilingStatus `yaml:"filing_status" json:"filing_status"`
	TaxYear             int          `yaml:"tax_year" json:"tax_year"`
	IncludePayrollTaxes bool         `yaml:"include_payroll_taxes" json:"include_payroll_taxes"`
}

// Goal is a dated net-worth target evaluated against projection output.
type Goal struct {
	GoalID           string          `yaml:"goal_id" json:"goal_id"`
	Name             string          `yaml:"name" json:"name"`
	TargetAmountReal decimal.Decimal `yaml:"target_amount_real" json:"target_amount_real"`
	TargetDate       time.Time       `yaml:"target_date" json:"target_date"`
}

// Household defines the projection window.
type Household struct {
	AnchorDate time.Time `yaml:"anchor_date" json:"anchor_date"`
	StartDate  time.Time `yaml:"start_date" json:"start_date"`
	EndDate    time.Time `yaml:"end_date" json:"end_date"`
}

// Assumptions are the scenario-wide economic assumptions.
type Assumptions struct {
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	// TaxableYieldPct is the annual dividend/interest yield accrued on
	// account market value and taxed as investment income each year.
	TaxableYieldPct decimal.Decimal `yaml:"taxable_yield_pct" json:"taxable_yield_pct"`
	// DefaultVolatilityPct is used for accounts with no explicit volatility
	// in Monte Carlo mode.
	DefaultVolatilityPct decimal.Decimal `yaml:"default_volatility_pct" json:"default_volatility_pct"`
	// TaxYearStartMonth configures the tax-year boundary; zero means January
	// (calendar year).
	TaxYearStartMonth time.Month `yaml:"tax_year_start_month,omitempty" json:"tax_year_start_month,omitempty"`
}

// ScenarioInput is the full projection input. It is produced by an external
// mapping layer; the engine treats it as immutable.
type ScenarioInput struct {
	Household     Household             `yaml:"household" json:"household"`
	Assumptions   Assumptions           `yaml:"assumptions" json:"assumptions"`
	TaxProfile    TaxProfile            `yaml:"tax_profile" json:"tax_profile"`
	Incomes       []RecurringDefinition `yaml:"incomes" json:"incomes"`
	Expenses      []RecurringDefinition `yaml:"expenses" json:"expenses"`
	Contributions []RecurringDefinition `yaml:"contributions,omitempty" json:"contributions,omitempty"`
	Accounts      []AccountState        `yaml:"accounts" json:"accounts"`
	Loans         []LoanState           `yaml:"loans,omitempty" json:"loans,omitempty"`
	Goals         []Goal                `yaml:"goals,omitempty" json:"goals,omitempty"`
	// SettlementAccountID names the account that absorbs net cash flow;
	// empty means the first account.
	SettlementAccountID string `yaml:"settlement_account_id,omitempty" json:"settlement_account_id,omitempty"`
}

// Definitions returns all recurring definitions with their kinds stamped.
func (s *ScenarioInput) Definitions() []RecurringDefinition {
	defs := make([]RecurringDefinition, 0, len(s.Incomes)+len(s.Expenses)+len(s.Contributions))
	for _, d := range s.Incomes {
		d.Kind = KindIncome
		defs = append(defs, d)
	}
	for _, d := range s.Expenses {
		d.Kind = KindExpense
		defs = append(defs, d)
	}
	for _, d := range s.Contributions {
		d.Kind = KindContribution
		defs = append(defs, d)
	}
	return defs
}

// SettlementAccount resolves the settlement account ID.
func (s *ScenarioInput) SettlementAccount() string {
	if s.SettlementAccountID != "" {
		return s.SettlementAccountID
	}
	if len(s.Accounts) > 0 {
		return s.Accounts[0].AccountID
	}
	return ""
}
