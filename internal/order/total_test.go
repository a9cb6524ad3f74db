// AngelaMos | 2026
// total_test.go

package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpke-dev/beatstore/internal/order"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestComputeTotalNoDiscount(t *testing.T) {
	prices := []decimal.Decimal{
		dec(t, "19.99"),
		dec(t, "49.99"),
	}

	total := order.ComputeTotal(prices, nil)

	assert.True(t, total.Equal(dec(t, "69.98")), "got %s", total)
}

func TestComputeTotalEmpty(t *testing.T) {
	total := order.ComputeTotal(nil, nil)

	assert.True(t, total.IsZero(), "got %s", total)
}

func TestComputeTotalTenPercentOff(t *testing.T) {
	// Two beats at $20 and $15 with a 10% code come to $31.50.
	prices := []decimal.Decimal{
		dec(t, "20.00"),
		dec(t, "15.00"),
	}
	pct := dec(t, "10")

	total := order.ComputeTotal(prices, &pct)

	assert.True(t, total.Equal(dec(t, "31.50")), "got %s", total)
}

func TestComputeTotalFullDiscount(t *testing.T) {
	prices := []decimal.Decimal{dec(t, "9.99")}
	pct := dec(t, "100")

	total := order.ComputeTotal(prices, &pct)

	assert.True(t, total.IsZero(), "got %s", total)
}

func TestComputeTotalRoundsHalfUp(t *testing.T) {
	// 0.10 * 0.95 = 0.095, which half-up rounding takes to 0.10.
	prices := []decimal.Decimal{dec(t, "0.10")}
	pct := dec(t, "5")

	total := order.ComputeTotal(prices, &pct)

	assert.True(t, total.Equal(dec(t, "0.10")), "got %s", total)
}

func TestComputeTotalFractionalPercentage(t *testing.T) {
	prices := []decimal.Decimal{dec(t, "100.00")}
	pct := dec(t, "12.5")

	total := order.ComputeTotal(prices, &pct)

	assert.True(t, total.Equal(dec(t, "87.50")), "got %s", total)
}
