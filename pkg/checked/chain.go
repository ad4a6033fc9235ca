package checked

import "github.com/govalues/decimal"

// Chain sequences dependent checked operations. Each method evaluates one
// step and returns its value so it can be bound to a local name. The first
// failing step is recorded; every later step is skipped and returns the zero
// Decimal without touching the underlying Arithmetic.
//
//	c := checked.NewChain(nil)
//	r := c.Percent(rate)
//	f := c.PowInt(c.Add(checked.One, r), periods)
//	return c.Result(c.Mul(amount, f))
type Chain struct {
	arith Arithmetic
	err   error
	steps int
}

// NewChain returns a Chain evaluating steps with a. A nil a uses Standard.
func NewChain(a Arithmetic) *Chain {
	if a == nil {
		a = Standard{}
	}
	return &Chain{arith: a}
}

// Add binds a + b.
func (c *Chain) Add(a, b decimal.Decimal) decimal.Decimal {
	return c.step(func() (decimal.Decimal, error) { return c.arith.Add(a, b) })
}

// Sub binds a - b.
func (c *Chain) Sub(a, b decimal.Decimal) decimal.Decimal {
	return c.step(func() (decimal.Decimal, error) { return c.arith.Sub(a, b) })
}

// Mul binds a * b.
func (c *Chain) Mul(a, b decimal.Decimal) decimal.Decimal {
	return c.step(func() (decimal.Decimal, error) { return c.arith.Mul(a, b) })
}

// Quo binds a / b.
func (c *Chain) Quo(a, b decimal.Decimal) decimal.Decimal {
	return c.step(func() (decimal.Decimal, error) { return c.arith.Quo(a, b) })
}

// PowInt binds base^exp.
func (c *Chain) PowInt(base decimal.Decimal, exp uint64) decimal.Decimal {
	return c.step(func() (decimal.Decimal, error) { return c.arith.PowInt(base, exp) })
}

// Percent binds rate / 100.
func (c *Chain) Percent(rate decimal.Decimal) decimal.Decimal {
	return c.Quo(rate, Hundred)
}

// Then binds the result of an arbitrary fallible step, typically another
// formula evaluated as a sub-step.
func (c *Chain) Then(fn func() (decimal.Decimal, error)) decimal.Decimal {
	return c.step(fn)
}

// Err returns the first failure, or nil.
func (c *Chain) Err() error {
	return c.err
}

// Steps returns how many steps were evaluated.
func (c *Chain) Steps() int {
	return c.steps
}

// Result returns v if every step succeeded, otherwise the first failure.
func (c *Chain) Result(v decimal.Decimal) (decimal.Decimal, error) {
	if c.err != nil {
		return decimal.Decimal{}, c.err
	}
	return v, nil
}

func (c *Chain) step(fn func() (decimal.Decimal, error)) decimal.Decimal {
	if c.err != nil {
		return decimal.Decimal{}
	}
	c.steps++
	v, err := fn()
	if err != nil {
		c.err = fail("step", err)
		return decimal.Decimal{}
	}
	return v
}
