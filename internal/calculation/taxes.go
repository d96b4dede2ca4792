package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
)

// TAX SETTLEMENT ASSUMPTIONS:
//
// 1. Federal brackets are a pluggable table per filing status; the defaults
//    use 2025 values and are not inflation-indexed across projection years.
// 2. State tax is a flat rate per state code. States without an entry are an
//    error, never a silent zero.
// 3. Payroll taxes (FICA) apply to wage income only, when the profile opts
//    in: 6.2% Social Security up to the wage base plus 1.45% Medicare.
// 4. Investment income (dividend/interest accruals) is taxed at ordinary
//    rates together with wages.

// TaxBracket represents one marginal bracket.
type TaxBracket struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Rate decimal.Decimal
}

// FederalSchedule is the bracket table and deduction for one filing status.
type FederalSchedule struct {
	StandardDeduction decimal.Decimal
	Brackets          []TaxBracket
}

// StateSchedule is the (flat) tax schedule for one state.
type StateSchedule struct {
	FlatRatePct decimal.Decimal
}

// FICAConfig holds payroll tax rates.
type FICAConfig struct {
	SocialSecurityRatePct  decimal.Decimal
	SocialSecurityWageBase decimal.Decimal
	MedicareRatePct        decimal.Decimal
}

// BracketTables is the full pluggable rule table consumed by the settler.
type BracketTables struct {
	Federal map[domain.FilingStatus]FederalSchedule
	States  map[string]StateSchedule
	FICA    FICAConfig
}

// TaxLiability is the settled liability for one tax year.
type TaxLiability struct {
	TaxYear int             `json:"tax_year"`
	Federal decimal.Decimal `json:"federal"`
	State   decimal.Decimal `json:"state"`
	Payroll decimal.Decimal `json:"payroll"`
	Total   decimal.Decimal `json:"total"`
}

// DefaultBracketTables returns the built-in 2025 rule tables. Callers with
// their own tables construct BracketTables directly.
func DefaultBracketTables() BracketTables {
	mfj := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(23200), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(23200), decimal.NewFromInt(94300), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(94300), decimal.NewFromInt(201050), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(201050), decimal.NewFromInt(383900), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(383900), decimal.NewFromInt(487450), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(487450), decimal.NewFromInt(731200), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(731200), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.37)},
	}
	single := []TaxBracket{
		{decimal.Zero, decimal.NewFromInt(11600), decimal.NewFromFloat(0.10)},
		{decimal.NewFromInt(11600), decimal.NewFromInt(47150), decimal.NewFromFloat(0.12)},
		{decimal.NewFromInt(47150), decimal.NewFromInt(100525), decimal.NewFromFloat(0.22)},
		{decimal.NewFromInt(100525), decimal.NewFromInt(191950), decimal.NewFromFloat(0.24)},
		{decimal.NewFromInt(191950), decimal.NewFromInt(243725), decimal.NewFromFloat(0.32)},
		{decimal.NewFromInt(243725), decimal.NewFromInt(365600), decimal.NewFromFloat(0.35)},
		{decimal.NewFromInt(365600), decimal.NewFromInt(999999999), decimal.NewFromFloat(0.37)},
	}

	return BracketTables{
		Federal: map[domain.FilingStatus]FederalSchedule{
			domain.FilingMarriedJointly: {StandardDeduction: decimal.NewFromInt(30000), Brackets: mfj},
			domain.FilingSingle:         {StandardDeduction: decimal.NewFromInt(15000), Brackets: single},
		},
		States: map[string]StateSchedule{
			"PA": {FlatRatePct: decimal.NewFromFloat(0.0307)},
			"IL": {FlatRatePct: decimal.NewFromFloat(0.0495)},
			"IN": {FlatRatePct: decimal.NewFromFloat(0.0305)},
			"MA": {FlatRatePct: decimal.NewFromFloat(0.05)},
			"MI": {FlatRatePct: decimal.NewFromFloat(0.0425)},
			"NC": {FlatRatePct: decimal.NewFromFloat(0.045)},
			"CO": {FlatRatePct: decimal.NewFromFloat(0.044)},
			"UT": {FlatRatePct: decimal.NewFromFloat(0.0465)},
			"AK": {}, "FL": {}, "NV": {}, "SD": {}, "TN": {}, "TX": {}, "WA": {}, "WY": {},
		},
		FICA: FICAConfig{
			SocialSecurityRatePct:  decimal.NewFromFloat(0.062),
			SocialSecurityWageBase: decimal.NewFromInt(176100),
			MedicareRatePct:        decimal.NewFromFloat(0.0145),
		},
	}
}

// TaxSettler aggregates a year's taxable events and computes liability via
// the pluggable bracket tables.
type TaxSettler struct {
	Tables BracketTables
	Logger Logger
}

// NewTaxSettler creates a settler over the given tables.
func NewTaxSettler(tables BracketTables) *TaxSettler {
	return &TaxSettler{Tables: tables, Logger: NopLogger{}}
}

// Supported verifies a bracket table exists for the profile's jurisdiction
// and filing status. Run before simulation so failures are upfront.
func (ts *TaxSettler) Supported(profile domain.TaxProfile) error {
	if !profile.FilingStatus.Valid() {
		return fmt.Errorf("%w: unknown filing status %q", ErrUnsupportedTaxJurisdiction, profile.FilingStatus)
	}
	if _, ok := ts.Tables.Federal[profile.FilingStatus]; !ok {
		return fmt.Errorf("%w: no federal bracket table for filing status %q", ErrUnsupportedTaxJurisdiction, profile.FilingStatus)
	}
	if _, ok := ts.Tables.States[profile.StateCode]; !ok {
		return fmt.Errorf("%w: no bracket table for state %q", ErrUnsupportedTaxJurisdiction, profile.StateCode)
	}
	return nil
}

// SettleYear aggregates income-kind cash-flow amounts plus investment income
// accrued during the tax year and computes the total liability. The caller
// subtracts the liability from net cash flow at the final period of the year.
func (ts *TaxSettler) SettleYear(taxYear int, events []domain.CashFlowEvent, investmentIncome decimal.Decimal, profile domain.TaxProfile) (TaxLiability, error) {
	if err := ts.Supported(profile); err != nil {
		return TaxLiability{}, err
	}

	wages := decimal.Zero
	for _, ev := range events {
		if ev.Kind == domain.KindIncome {
			wages = wages.Add(ev.Amount)
		}
	}
	taxable := wages.Add(investmentIncome)

	schedule := ts.Tables.Federal[profile.FilingStatus]
	federal := progressiveTax(taxable.Sub(schedule.StandardDeduction), schedule.Brackets)

	state := taxable.Mul(ts.Tables.States[profile.StateCode].FlatRatePct)

	payroll := decimal.Zero
	if profile.IncludePayrollTaxes {
		payroll = ts.fica(wages)
	}

	liability := TaxLiability{
		TaxYear: taxYear,
		Federal: federal,
		State:   state,
		Payroll: payroll,
		Total:   federal.Add(state).Add(payroll),
	}
	ts.Logger.Debugf("settled tax year %d: wages=%s investment=%s total=%s",
		taxYear, wages.StringFixed(2), investmentIncome.StringFixed(2), liability.Total.StringFixed(2))
	return liability, nil
}

// progressiveTax walks the marginal brackets over taxable income.
func progressiveTax(taxableIncome decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Min) {
			break
		}
		incomeInBracket := decimal.Min(taxableIncome, bracket.Max).Sub(bracket.Min)
		if incomeInBracket.IsPositive() {
			total = total.Add(incomeInBracket.Mul(bracket.Rate))
		}
	}
	return total
}

// fica computes the payroll component on wage income.
func (ts *TaxSettler) fica(wages decimal.Decimal) decimal.Decimal {
	ssWages := decimal.Min(wages, ts.Tables.FICA.SocialSecurityWageBase)
	ss := ssWages.Mul(ts.Tables.FICA.SocialSecurityRatePct)
	medicare := wages.Mul(ts.Tables.FICA.MedicareRatePct)
	return ss.Add(medicare)
}
