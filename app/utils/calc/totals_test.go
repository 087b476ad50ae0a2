package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTax(t *testing.T) {
	tax := CalculateTax(decimal.NewFromInt(100))
	assert.True(t, tax.Equal(decimal.NewFromInt(7)), "7%% of 100 should be 7, got %s", tax)

	tax = CalculateTax(decimal.RequireFromString("19.99"))
	assert.True(t, tax.Equal(decimal.RequireFromString("1.40")), "7%% of 19.99 rounds to 1.40, got %s", tax)

	tax = CalculateTax(decimal.Zero)
	assert.True(t, tax.IsZero())
}

func TestCalculateShipping_FlatFeeBelowThreshold(t *testing.T) {
	shipping := CalculateShipping(decimal.RequireFromString("99.99"))
	assert.True(t, shipping.Equal(decimal.NewFromInt(5)), "got %s", shipping)
}

func TestCalculateShipping_FreeAtThreshold(t *testing.T) {
	shipping := CalculateShipping(decimal.NewFromInt(100))
	assert.True(t, shipping.IsZero(), "got %s", shipping)

	shipping = CalculateShipping(decimal.RequireFromString("250.50"))
	assert.True(t, shipping.IsZero(), "got %s", shipping)
}

func TestCalculateGrandTotal(t *testing.T) {
	subtotal := decimal.RequireFromString("50.00")
	shipping := CalculateShipping(subtotal)
	tax := CalculateTax(subtotal)

	total := CalculateGrandTotal(subtotal, shipping, tax)
	assert.True(t, total.Equal(decimal.RequireFromString("58.50")), "50 + 5 shipping + 3.50 tax, got %s", total)
}
