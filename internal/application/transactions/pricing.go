package transactions

import "github.com/shopspring/decimal"

// PricePerUnit derives the per-unit price of a commitment. It is exactly zero
// when units is zero; signs are not checked.
func PricePerUnit(commitment, units decimal.Decimal) decimal.Decimal {
	if units.IsZero() {
		return decimal.Zero
	}
	return commitment.Div(units)
}
