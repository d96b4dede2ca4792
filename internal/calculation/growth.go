package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
)

// GrowthFactor computes the pro-rata compounding factor (1+annualPct)^fraction
// for one period. A monthly step passes fraction = 1/12.
func GrowthFactor(annualPct decimal.Decimal, periodFraction float64) decimal.Decimal {
	base := decimal.NewFromInt(1).Add(annualPct).InexactFloat64()
	if base <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Pow(base, periodFraction))
}

// ApplyGrowth returns a new AccountState with the cash balance compounded by
// cashFactor and every holding's latest price scaled by priceFactor. Shares
// are never altered; only explicit buy/sell events change them. The input
// state is left unmodified so the caller keeps the prior snapshot for audit.
func ApplyGrowth(account domain.AccountState, cashFactor, priceFactor decimal.Decimal) domain.AccountState {
	next := account.Clone()

	next.CashBalance = account.CashBalance.Mul(cashFactor)
	if next.CashBalance.IsNegative() {
		next.CashBalance = decimal.Zero
	}

	if !priceFactor.Equal(decimal.NewFromInt(1)) {
		for i := range next.Holdings {
			price := next.Holdings[i].Price().Mul(priceFactor)
			if price.IsNegative() {
				price = decimal.Zero
			}
			next.Holdings[i].LastPrice = &price
		}
	}
	return next
}
