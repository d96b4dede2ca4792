package calculation

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LifeInsuranceInput describes a household's life-insurance sizing question.
type LifeInsuranceInput struct {
	AnnualIncome      decimal.Decimal `json:"annual_income"`
	YearsToReplace    int             `json:"years_to_replace"`
	OutstandingDebts  decimal.Decimal `json:"outstanding_debts"`
	EducationPerChild decimal.Decimal `json:"education_per_child"`
	Children          int             `json:"children"`
	FinalExpenses     decimal.Decimal `json:"final_expenses"`
	ExistingCoverage  decimal.Decimal `json:"existing_coverage"`
}

// LifeInsuranceNeeds is the recommended coverage breakdown.
type LifeInsuranceNeeds struct {
	IncomeReplacement decimal.Decimal `json:"income_replacement"`
	EducationFund     decimal.Decimal `json:"education_fund"`
	TotalRecommended  decimal.Decimal `json:"total_recommended"`
	CoverageGap       decimal.Decimal `json:"coverage_gap"`
}

// CalculateLifeInsuranceNeeds sizes coverage as income replacement over the
// replacement horizon plus debts, education funding, and final expenses,
// net of existing coverage. The gap never goes negative.
func CalculateLifeInsuranceNeeds(in LifeInsuranceInput) LifeInsuranceNeeds {
	incomeReplacement := in.AnnualIncome.Mul(decimal.NewFromInt(int64(in.YearsToReplace)))
	educationFund := in.EducationPerChild.Mul(decimal.NewFromInt(int64(in.Children)))
	total := incomeReplacement.
		Add(in.OutstandingDebts).
		Add(educationFund).
		Add(in.FinalExpenses)

	gap := total.Sub(in.ExistingCoverage)
	if gap.IsNegative() {
		gap = decimal.Zero
	}
	return LifeInsuranceNeeds{
		IncomeReplacement: incomeReplacement,
		EducationFund:     educationFund,
		TotalRecommended:  total,
		CoverageGap:       gap,
	}
}

// disabilityReplacementPct is the share of gross income a disability policy
// conventionally replaces.
var disabilityReplacementPct = decimal.NewFromFloat(0.65)

// DisabilityInsuranceInput describes a disability coverage question.
// EmployerCoveragePct is in percent points (40 means 40%).
type DisabilityInsuranceInput struct {
	AnnualIncome             decimal.Decimal `json:"annual_income"`
	EmployerCoveragePct      decimal.Decimal `json:"employer_coverage_pct"`
	ExistingMonthlyBenefit   decimal.Decimal `json:"existing_monthly_benefit"`
	MonthlyEssentialExpenses decimal.Decimal `json:"monthly_essential_expenses"`
}

// DisabilityInsuranceNeeds is the monthly benefit breakdown.
type DisabilityInsuranceNeeds struct {
	GrossMonthlyIncome        decimal.Decimal `json:"gross_monthly_income"`
	EmployerMonthlyBenefit    decimal.Decimal `json:"employer_monthly_benefit"`
	RecommendedMonthlyBenefit decimal.Decimal `json:"recommended_monthly_benefit"`
	CoverageGap               decimal.Decimal `json:"coverage_gap"`
	// CoverageRatio is current coverage over essential expenses, in percent.
	CoverageRatio decimal.Decimal `json:"coverage_ratio"`
}

// CalculateDisabilityInsuranceNeeds recommends a monthly benefit of 65% of
// gross income and reports the gap after employer and existing coverage.
// A zero essential-expense figure yields a zero coverage ratio rather than
// a division error.
func CalculateDisabilityInsuranceNeeds(in DisabilityInsuranceInput) DisabilityInsuranceNeeds {
	grossMonthly := in.AnnualIncome.Div(monthsPerYear)
	employerBenefit := grossMonthly.Mul(in.EmployerCoveragePct).Div(hundred)
	recommended := grossMonthly.Mul(disabilityReplacementPct)

	gap := recommended.Sub(employerBenefit).Sub(in.ExistingMonthlyBenefit)
	if gap.IsNegative() {
		gap = decimal.Zero
	}

	ratio := decimal.Zero
	if in.MonthlyEssentialExpenses.IsPositive() {
		ratio = employerBenefit.Add(in.ExistingMonthlyBenefit).Div(in.MonthlyEssentialExpenses).Mul(hundred)
	}

	return DisabilityInsuranceNeeds{
		GrossMonthlyIncome:        grossMonthly,
		EmployerMonthlyBenefit:    employerBenefit,
		RecommendedMonthlyBenefit: recommended,
		CoverageGap:               gap,
		CoverageRatio:             ratio,
	}
}
