// Package money provides decimal-safe arithmetic over currency amounts.
//
// Every amount is a decimal.Decimal. Floats only appear at the edges of the
// system (FromFloat / Float) so that binary floating-point drift never leaks
// into a split.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultScale is used when a currency code cannot be resolved.
const DefaultScale int32 = 2

// Scale returns the number of minor-unit digits for an ISO 4217 currency code
// (USD: 2, JPY: 0, BHD: 3). Unknown codes fall back to DefaultScale.
func Scale(code string) int32 {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return DefaultScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// FromFloat converts a boundary value (JSON number, OCR output) into an amount.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Float converts an amount back to a display number.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Sum adds all values. An empty call returns zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Round rounds half away from zero at the given scale.
func Round(d decimal.Decimal, scale int32) decimal.Decimal {
	return d.Round(scale)
}

// Div divides a by b rounded to scale. A zero divisor yields zero.
func Div(a, b decimal.Decimal, scale int32) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, scale)
}

// SplitEven divides amount into n equal shares truncated to scale and returns
// the per-share amount together with the remainder, so that
// perShare*n + remainder == amount exactly. A non-positive n allocates nothing.
func SplitEven(amount decimal.Decimal, n int, scale int32) (perShare, remainder decimal.Decimal) {
	if n <= 0 {
		return decimal.Zero, decimal.Zero
	}
	return amount.QuoRem(decimal.NewFromInt(int64(n)), scale)
}

// Apportion distributes total across weights in proportion to each weight.
//
// Parts are computed by cumulative rounding: part i is
// round(total*W_i/W) - round(total*W_{i-1}/W) where W_i is the running weight
// sum. The parts therefore always add up to round(total, scale) and each one is
// within one minor unit of its exact proportional value. When the weights do
// not sum to a positive number every part is zero.
func Apportion(total decimal.Decimal, weights []decimal.Decimal, scale int32) []decimal.Decimal {
	parts := make([]decimal.Decimal, len(weights))
	for i := range parts {
		parts[i] = decimal.Zero
	}

	whole := Sum(weights...)
	if whole.Sign() <= 0 || len(weights) == 0 {
		return parts
	}

	target := Round(total, scale)
	running := decimal.Zero
	previous := decimal.Zero
	for i, w := range weights {
		running = running.Add(w)
		var cumulative decimal.Decimal
		if i == len(weights)-1 {
			cumulative = target
		} else {
			cumulative = total.Mul(running).DivRound(whole, scale)
		}
		parts[i] = cumulative.Sub(previous)
		previous = cumulative
	}
	return parts
}
