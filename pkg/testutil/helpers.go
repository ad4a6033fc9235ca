// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/iwvelando/moolah/pkg/checked"
)

// CountingArithmetic wraps checked.Standard and records the name of every
// operation it performs, so tests can verify which steps of a chain ran.
type CountingArithmetic struct {
	checked.Standard
	Calls []string
}

// Add records "add".
func (c *CountingArithmetic) Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	c.Calls = append(c.Calls, "add")
	return c.Standard.Add(a, b)
}

// Sub records "sub".
func (c *CountingArithmetic) Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	c.Calls = append(c.Calls, "sub")
	return c.Standard.Sub(a, b)
}

// Mul records "mul".
func (c *CountingArithmetic) Mul(a, b decimal.Decimal) (decimal.Decimal, error) {
	c.Calls = append(c.Calls, "mul")
	return c.Standard.Mul(a, b)
}

// Quo records "quo".
func (c *CountingArithmetic) Quo(a, b decimal.Decimal) (decimal.Decimal, error) {
	c.Calls = append(c.Calls, "quo")
	return c.Standard.Quo(a, b)
}

// PowInt records "pow".
func (c *CountingArithmetic) PowInt(base decimal.Decimal, exp uint64) (decimal.Decimal, error) {
	c.Calls = append(c.Calls, "pow")
	return c.Standard.PowInt(base, exp)
}

// Reset clears the recorded calls.
func (c *CountingArithmetic) Reset() {
	c.Calls = nil
}

// Dec parses s or fails the test immediately.
func Dec(t testing.TB, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

// AssertDecimal fails the test unless got rounded to scale digits equals expected.
func AssertDecimal(t testing.TB, expected string, got decimal.Decimal, scale int) {
	t.Helper()
	want := Dec(t, expected)
	if got.Round(scale).Cmp(want) != 0 {
		t.Errorf("got %s (rounded %s), expected %s", got, got.Round(scale), expected)
	}
}
