package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/hplan/household-planner/internal/domain"
)

// InputParser handles parsing of scenario input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and parses a scenario from a YAML file.
func (p *InputParser) LoadFromFile(path string) (*domain.ScenarioInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	return p.parse(data)
}

// LoadFromReader loads and parses a scenario from a reader.
func (p *InputParser) LoadFromReader(r io.Reader) (*domain.ScenarioInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario input: %w", err)
	}
	return p.parse(data)
}

func (p *InputParser) parse(data []byte) (*domain.ScenarioInput, error) {
	var input domain.ScenarioInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	return &input, nil
}

// SaveToFile writes a scenario back out as YAML.
func (p *InputParser) SaveToFile(input *domain.ScenarioInput, path string) error {
	data, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario file %s: %w", path, err)
	}
	return nil
}

// CreateExampleScenario builds a representative household: two incomes, a
// mortgage, recurring expenses, a retirement contribution, a brokerage
// account with holdings, and one net-worth goal.
func CreateExampleScenario() *domain.ScenarioInput {
	anchor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := anchor.AddDate(30, 0, 0)
	vol := decimal.NewFromFloat(0.15)
	lastPrice := decimal.NewFromFloat(412.50)

	return &domain.ScenarioInput{
		Household: domain.Household{
			AnchorDate: anchor,
			StartDate:  anchor,
			EndDate:    end,
		},
		Assumptions: domain.Assumptions{
			InflationRate:        decimal.NewFromFloat(0.025),
			TaxableYieldPct:      decimal.NewFromFloat(0.015),
			DefaultVolatilityPct: decimal.NewFromFloat(0.15),
		},
		TaxProfile: domain.TaxProfile{
			StateCode:           "PA",
			FilingStatus:        domain.FilingMarriedJointly,
			TaxYear:             2026,
			IncludePayrollTaxes: true,
		},
		Incomes: []domain.RecurringDefinition{
			{
				ID:         "salary-primary",
				Name:       "Primary Salary",
				Amount:     decimal.NewFromInt(4200),
				Frequency:  domain.FrequencyBiweekly,
				StartDate:  anchor,
				GrowthRule: domain.GrowthTrackInflation,
			},
			{
				ID:         "salary-spouse",
				Name:       "Spouse Salary",
				Amount:     decimal.NewFromInt(5500),
				Frequency:  domain.FrequencyMonthly,
				StartDate:  anchor,
				GrowthRule: domain.GrowthTrackInflation,
			},
		},
		Expenses: []domain.RecurringDefinition{
			{
				ID:         "living",
				Name:       "Living Expenses",
				Amount:     decimal.NewFromInt(5200),
				Frequency:  domain.FrequencyMonthly,
				StartDate:  anchor,
				GrowthRule: domain.GrowthTrackInflation,
			},
			{
				ID:        "insurance-annual",
				Name:      "Insurance Premiums",
				Amount:    decimal.NewFromInt(3600),
				Frequency: domain.FrequencyAnnual,
				StartDate: anchor.AddDate(0, 2, 14),
			},
			{
				ID:        "roof-replacement",
				Name:      "Roof Replacement",
				Amount:    decimal.NewFromInt(18000),
				Frequency: domain.FrequencyOneTime,
				StartDate: anchor.AddDate(6, 4, 0),
			},
		},
		Contributions: []domain.RecurringDefinition{
			{
				ID:              "brokerage-monthly",
				Name:            "Brokerage Contribution",
				Amount:          decimal.NewFromInt(1000),
				Frequency:       domain.FrequencyMonthly,
				StartDate:       anchor,
				TargetAccountID: "brokerage",
			},
		},
		Accounts: []domain.AccountState{
			{
				AccountID:         "checking",
				Name:              "Household Checking",
				CashBalance:       decimal.NewFromInt(25000),
				ExpectedReturnPct: decimal.NewFromFloat(0.005),
			},
			{
				AccountID:         "brokerage",
				Name:              "Brokerage",
				CashBalance:       decimal.NewFromInt(15000),
				ExpectedReturnPct: decimal.NewFromFloat(0.06),
				VolatilityPct:     &vol,
				Holdings: []domain.Holding{
					{
						Ticker:    "VTI",
						Shares:    decimal.NewFromInt(320),
						AvgPrice:  decimal.NewFromFloat(198.40),
						LastPrice: &lastPrice,
					},
				},
			},
		},
		Loans: []domain.LoanState{
			{
				LoanID:           "mortgage",
				Name:             "Primary Mortgage",
				Principal:        decimal.NewFromInt(320000),
				APRPct:           decimal.NewFromFloat(0.065),
				TermMonths:       360,
				RemainingBalance: decimal.NewFromInt(320000),
			},
		},
		Goals: []domain.Goal{
			{
				GoalID:           "retirement",
				Name:             "Retirement Readiness",
				TargetAmountReal: decimal.NewFromInt(1500000),
				TargetDate:       anchor.AddDate(25, 0, 0),
			},
		},
		SettlementAccountID: "checking",
	}
}
