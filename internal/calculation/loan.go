package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hplan/household-planner/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyPayment computes the standard amortization payment
// P*r / (1 - (1+r)^-n) with r = apr/12. A zero APR degenerates to
// straight-line principal reduction of principal/termMonths.
func MonthlyPayment(principal, aprPct decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths <= 0 || principal.IsZero() {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(termMonths))
	if aprPct.IsZero() {
		return principal.Div(n)
	}
	r := aprPct.Div(monthsPerYear)
	one := decimal.NewFromInt(1)
	denom := one.Sub(one.Add(r).Pow(n.Neg()))
	return principal.Mul(r).Div(denom)
}

// AmortizeStep advances a loan by one monthly period, returning the new loan
// state and the payment event made, if any. Once the remaining balance
// reaches zero the loan is in its terminal paid-off condition and further
// steps are no-ops: the same state comes back and no event is emitted.
func AmortizeStep(loan domain.LoanState, date time.Time) (domain.LoanState, *domain.CashFlowEvent) {
	if loan.PaidOff || !loan.RemainingBalance.IsPositive() {
		next := loan.Clone()
		next.PaidOff = true
		next.RemainingBalance = decimal.Zero
		return next, nil
	}

	payment := loan.MonthlyPayment
	if payment.IsZero() {
		payment = MonthlyPayment(loan.Principal, loan.APRPct, loan.TermMonths)
	}
	if loan.PaymentOverrideMonthly != nil {
		payment = *loan.PaymentOverrideMonthly
	}
	payment = payment.Add(loan.ExtraPaymentMonthly)

	interest := loan.RemainingBalance.Mul(loan.APRPct).Div(monthsPerYear)
	principal := payment.Sub(interest)
	if principal.IsNegative() {
		// Payment does not cover interest; nothing amortizes but the
		// payment is still owed.
		principal = decimal.Zero
	}
	if principal.GreaterThan(loan.RemainingBalance) {
		// Final payment is truncated to exactly retire the loan.
		principal = loan.RemainingBalance
		payment = interest.Add(principal)
	}

	next := loan.Clone()
	next.RemainingBalance = loan.RemainingBalance.Sub(principal)
	if !next.RemainingBalance.IsPositive() {
		next.RemainingBalance = decimal.Zero
		next.PaidOff = true
	}

	event := &domain.CashFlowEvent{
		Date:     date,
		Amount:   payment,
		SourceID: loan.LoanID,
		Kind:     domain.KindLoanPayment,
	}
	return next, event
}
