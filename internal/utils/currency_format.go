package utils

import (
	"github.com/shopspring/decimal"
)

// RupeeSymbol prefixes amounts in audit details.
const RupeeSymbol = "₹"

// FormatRupees renders an amount the way audit details show it, e.g. "₹9800".
func FormatRupees(amount decimal.Decimal) string {
	return RupeeSymbol + amount.String()
}
