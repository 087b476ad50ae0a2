package calc

import "github.com/shopspring/decimal"

// Fixed storefront pricing rules: 7% tax on the subtotal, and a flat $5.00
// shipping fee waived once the subtotal reaches $100.00.
var (
	taxPercent            = decimal.NewFromInt(7)
	flatShippingFee       = decimal.NewFromInt(5)
	freeShippingThreshold = decimal.NewFromInt(100)
)

func GetTaxPercent() decimal.Decimal {
	return taxPercent
}

func CalculateTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100)).Round(2)
}

func CalculateShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

func CalculateGrandTotal(subtotal, shipping, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Add(tax)
}
