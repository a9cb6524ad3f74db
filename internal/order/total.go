// AngelaMos | 2026
// total.go

package order

import (
	"github.com/shopspring/decimal"
)

// ComputeTotal sums the line prices and applies the optional percentage
// discount, rounding half-up to two places only at the end.
func ComputeTotal(
	prices []decimal.Decimal,
	discountPct *decimal.Decimal,
) decimal.Decimal {
	total := decimal.Zero
	for _, price := range prices {
		total = total.Add(price)
	}

	if discountPct != nil {
		factor := decimal.NewFromInt(1).
			Sub(discountPct.Div(decimal.NewFromInt(100)))
		total = total.Mul(factor)
	}

	return total.Round(2)
}
