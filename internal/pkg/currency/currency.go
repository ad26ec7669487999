// Package currency wraps go-money for ISO-4217 code checks and display formatting of decimal amounts.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValid reports whether code is a known ISO-4217 currency.
func IsValid(code string) bool {
	code = Normalize(code)
	return code != "" && money.GetCurrency(code) != nil
}

// Format renders amount in code using the currency's grapheme, separators and fraction digits,
// e.g. 1234.5 USD -> "$1,234.50". Unknown codes fall back to the plain decimal string.
func Format(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(Normalize(code))
	if cur == nil {
		return amount.StringFixed(2) + " " + Normalize(code)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
