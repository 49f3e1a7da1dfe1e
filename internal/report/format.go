package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	amountFormatter = money.NewFormatter(2, ".", ",", "", "1")
	countFormatter  = money.NewFormatter(0, ".", ",", "", "1")
)

// Money formats an amount with two decimals and comma thousands grouping.
// Amounts are rounded half away from zero to whole cents.
func Money(d decimal.Decimal) string {
	return amountFormatter.Format(d.Round(2).Shift(2).IntPart())
}

// Count formats an integer with comma thousands grouping.
func Count[T ~int | ~int64](n T) string {
	return countFormatter.Format(int64(n))
}
