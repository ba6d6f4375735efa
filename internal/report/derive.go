// Package report implements the computations that turn raw transaction
// rows into budget snapshots, alerts and financial reports.
//
// Everything in this package is stateless: each call reads from the store,
// computes in memory and returns a value. Money stays in decimal arithmetic,
// only the two display percentages are doubles.
package report

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percentage returns part as a percentage of whole for display.
//
// The quotient is rounded to four decimal places half-up before the
// scaling to 100. A whole of zero or less yields 0.0, there is no
// division by zero.
func Percentage(part, whole decimal.Decimal) float64 {
	if whole.LessThanOrEqual(decimal.Zero) {
		return 0.0
	}

	return part.DivRound(whole, 4).Mul(hundred).InexactFloat64()
}

// Derive computes the fields derived from a budget amount and the amount
// already spent against it.
//
// The remaining amount may be negative: overspending a budget is allowed
// and the magnitude of the overspend is meaningful to callers.
func Derive(budgetAmount, spentAmount decimal.Decimal) (remaining decimal.Decimal, percentageUsed float64) {
	return budgetAmount.Sub(spentAmount), Percentage(spentAmount, budgetAmount)
}
