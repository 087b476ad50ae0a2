package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2}

// Money renders a decimal amount as a display string, e.g. "$1,234.50".
// Arithmetic stays in decimal.Decimal; this is presentation only.
func Money(amount decimal.Decimal) string {
	return usd.FormatMoney(amount)
}
