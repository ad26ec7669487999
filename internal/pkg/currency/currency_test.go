package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("USD"))
	assert.True(t, IsValid(" eur "))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("XYZ1"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1,234.50", Format(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "$0.00", Format(decimal.Zero, "usd"))
	assert.Equal(t, "12.00 ABC", Format(decimal.NewFromInt(12), "abc"))
}
