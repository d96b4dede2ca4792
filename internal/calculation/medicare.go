package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
)

// MedicareCalculator handles Medicare premium surcharges (IRMAA) based on
// Modified Adjusted Gross Income. Brackets are the 2024 tables.
type MedicareCalculator struct {
	PartBBasePremium decimal.Decimal
	Thresholds       []IRMAAThreshold
}

// IRMAAThreshold is one income tier and its monthly surcharges per person.
type IRMAAThreshold struct {
	IncomeThresholdSingle decimal.Decimal
	IncomeThresholdJoint  decimal.Decimal
	PartBSurcharge        decimal.Decimal
	PartDSurcharge        decimal.Decimal
}

// IRMAABracket is the resolved bracket for a given MAGI: its income bounds
// and the applicable surcharges. UpperBound is nil for the top tier.
type IRMAABracket struct {
	LowerBound     decimal.Decimal  `json:"lower_bound"`
	UpperBound     *decimal.Decimal `json:"upper_bound,omitempty"`
	PartBSurcharge decimal.Decimal  `json:"part_b_surcharge"`
	PartDSurcharge decimal.Decimal  `json:"part_d_surcharge"`
}

// NewMedicareCalculator creates a calculator with the 2024 IRMAA tables.
func NewMedicareCalculator() *MedicareCalculator {
	return &MedicareCalculator{
		PartBBasePremium: decimal.NewFromFloat(174.70),
		Thresholds: []IRMAAThreshold{
			{
				IncomeThresholdSingle: decimal.NewFromInt(103000),
				IncomeThresholdJoint:  decimal.NewFromInt(206000),
				PartBSurcharge:        decimal.NewFromFloat(69.90),
				PartDSurcharge:        decimal.NewFromFloat(12.90),
			},
			{
				IncomeThresholdSingle: decimal.NewFromInt(129000),
				IncomeThresholdJoint:  decimal.NewFromInt(258000),
				PartBSurcharge:        decimal.NewFromFloat(174.70),
				PartDSurcharge:        decimal.NewFromFloat(33.30),
			},
			{
				IncomeThresholdSingle: decimal.NewFromInt(161000),
				IncomeThresholdJoint:  decimal.NewFromInt(322000),
				PartBSurcharge:        decimal.NewFromFloat(279.50),
				PartDSurcharge:        decimal.NewFromFloat(53.80),
			},
			{
				IncomeThresholdSingle: decimal.NewFromInt(193000),
				IncomeThresholdJoint:  decimal.NewFromInt(386000),
				PartBSurcharge:        decimal.NewFromFloat(384.30),
				PartDSurcharge:        decimal.NewFromFloat(74.20),
			},
			{
				IncomeThresholdSingle: decimal.NewFromInt(500000),
				IncomeThresholdJoint:  decimal.NewFromInt(750000),
				PartBSurcharge:        decimal.NewFromFloat(489.10),
				PartDSurcharge:        decimal.NewFromFloat(81.00),
			},
		},
	}
}

// LookupBracket resolves the IRMAA bracket for a MAGI and filing status.
// The surcharge is the bracket's own amount, not a running total: income in
// the second tier pays that tier's surcharge only.
func (mc *MedicareCalculator) LookupBracket(magi decimal.Decimal, filingStatus domain.FilingStatus) IRMAABracket {
	joint := filingStatus == domain.FilingMarriedJointly

	bracket := IRMAABracket{LowerBound: decimal.Zero}
	for i, threshold := range mc.Thresholds {
		applicable := threshold.IncomeThresholdSingle
		if joint {
			applicable = threshold.IncomeThresholdJoint
		}
		if magi.LessThanOrEqual(applicable) {
			upper := applicable
			bracket.UpperBound = &upper
			return bracket
		}
		bracket = IRMAABracket{
			LowerBound:     applicable,
			PartBSurcharge: threshold.PartBSurcharge,
			PartDSurcharge: threshold.PartDSurcharge,
		}
		if i+1 < len(mc.Thresholds) {
			next := mc.Thresholds[i+1].IncomeThresholdSingle
			if joint {
				next = mc.Thresholds[i+1].IncomeThresholdJoint
			}
			bracket.UpperBound = &next
		}
	}
	return bracket
}

// MonthlyPartBPremium returns the base Part B premium plus the IRMAA
// surcharge for the given MAGI.
func (mc *MedicareCalculator) MonthlyPartBPremium(magi decimal.Decimal, filingStatus domain.FilingStatus) decimal.Decimal {
	bracket := mc.LookupBracket(magi, filingStatus)
	return mc.PartBBasePremium.Add(bracket.PartBSurcharge)
}
