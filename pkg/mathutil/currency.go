// Package mathutil provides common mathematical utility functions for
// presenting decimal results.
package mathutil

import (
	"github.com/govalues/decimal"
)

// Round rounds a value half-to-even to scale digits after the decimal point
// and pads it with trailing zeros so that it always shows exactly scale digits.
func Round(val decimal.Decimal, scale int) decimal.Decimal {
	return val.Round(scale).Pad(scale)
}

// WithinTolerance checks if two values differ by no more than tolerance.
func WithinTolerance(val1, val2, tolerance decimal.Decimal) bool {
	diff, err := val1.Sub(val2)
	if err != nil {
		return false
	}
	return diff.Abs().Cmp(tolerance) <= 0
}
