// Package checked provides decimal arithmetic that reports every failure as an
// error value, and a Chain for sequencing dependent checked operations.
//
// Values carry at most 19 significant digits. Quotients that need more are
// rounded, so Percent maps a rate below about 1e-17 percent to zero without
// an error.
package checked

import (
	"fmt"
	"math"

	"github.com/govalues/decimal"
	"github.com/iwvelando/moolah/pkg/constants"
)

var (
	// One is the multiplicative identity.
	One = decimal.MustNew(1, 0)

	// Hundred divides a percent-unit rate into a fraction.
	Hundred = decimal.MustNew(constants.PercentageMultiplier, 0)
)

// Arithmetic is the set of checked operations the formulas are built from.
// Implementations must never panic and must never return a value together
// with a non-nil error.
type Arithmetic interface {
	Add(a, b decimal.Decimal) (decimal.Decimal, error)
	Sub(a, b decimal.Decimal) (decimal.Decimal, error)
	Mul(a, b decimal.Decimal) (decimal.Decimal, error)
	Quo(a, b decimal.Decimal) (decimal.Decimal, error)
	PowInt(base decimal.Decimal, exp uint64) (decimal.Decimal, error)
}

// Standard implements Arithmetic on top of github.com/govalues/decimal.
type Standard struct{}

// Add returns a + b.
func (Standard) Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	d, err := a.Add(b)
	if err != nil {
		return decimal.Decimal{}, fail("add", fmt.Errorf("%w: %v", ErrOverflow, err))
	}
	return d, nil
}

// Sub returns a - b.
func (Standard) Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	d, err := a.Sub(b)
	if err != nil {
		return decimal.Decimal{}, fail("sub", fmt.Errorf("%w: %v", ErrOverflow, err))
	}
	return d, nil
}

// Mul returns a * b.
func (Standard) Mul(a, b decimal.Decimal) (decimal.Decimal, error) {
	d, err := a.Mul(b)
	if err != nil {
		return decimal.Decimal{}, fail("mul", fmt.Errorf("%w: %v", ErrOverflow, err))
	}
	return d, nil
}

// Quo returns a / b, failing with ErrDivisionByZero when b is zero.
func (Standard) Quo(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Decimal{}, fail("quo", ErrDivisionByZero)
	}
	d, err := a.Quo(b)
	if err != nil {
		return decimal.Decimal{}, fail("quo", fmt.Errorf("%w: %v", ErrOverflow, err))
	}
	return d, nil
}

// PowInt returns base raised to exp. A zero exponent yields exactly 1 for
// every base, zero included. Exponents above math.MaxInt fail with
// ErrExponentRange for every base, including 0, 1 and -1.
func (Standard) PowInt(base decimal.Decimal, exp uint64) (decimal.Decimal, error) {
	if exp == 0 {
		return One, nil
	}
	if exp > math.MaxInt {
		return decimal.Decimal{}, fail("pow", fmt.Errorf("%w: %d", ErrExponentRange, exp))
	}
	d, err := base.PowInt(int(exp))
	if err != nil {
		return decimal.Decimal{}, fail("pow", fmt.Errorf("%w: %v", ErrOverflow, err))
	}
	return d, nil
}
