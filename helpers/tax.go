package helpers

import (
	"github.com/shopspring/decimal"
)

// TaxSplit computes the tax and net payout for a gross withdrawal amount
// at the given percent rate, rounded to 2 decimal places.
func TaxSplit(amount, ratePercent float64) (tax, net float64) {
	gross := decimal.NewFromFloat(amount)
	taxDec := gross.
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	tax = taxDec.InexactFloat64()
	net = gross.Sub(taxDec).Round(2).InexactFloat64()
	return tax, net
}
