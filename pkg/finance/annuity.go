package finance

import (
	"github.com/govalues/decimal"
	"github.com/iwvelando/moolah/pkg/checked"
)

// AnnuityCompoundFactor returns ((1 + rate)^periods - 1) / rate for a
// fractional rate (0.06 means 6%). A zero rate fails with division by zero.
func (c *Calculator) AnnuityCompoundFactor(interestFraction decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	base := ch.Add(checked.One, interestFraction)
	growth := ch.PowInt(base, periods)
	gain := ch.Sub(growth, checked.One)
	return ch.Result(ch.Quo(gain, interestFraction))
}

// AnnuityGrowthCompoundFactor returns
// ((1+ir)^periods - (1+gr)^periods) - (ir - gr) with both rates in percent.
//
// The final step subtracts where the textbook factor divides. The behaviour
// is kept as is until the intended formula is confirmed.
func (c *Calculator) AnnuityGrowthCompoundFactor(interestRate, growthRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	ir := ch.Percent(interestRate)
	irGrowth := ch.PowInt(ch.Add(ir, checked.One), periods)
	gr := ch.Percent(growthRate)
	grGrowth := ch.PowInt(ch.Add(gr, checked.One), periods)
	numerator := ch.Sub(irGrowth, grGrowth)
	denominator := ch.Sub(ir, gr)
	return ch.Result(ch.Sub(numerator, denominator))
}

// AnnuityDiscountFactor returns (1 - 1/(1 + rate)^periods) / rate for a
// fractional rate. A zero rate fails with division by zero.
func (c *Calculator) AnnuityDiscountFactor(discountFraction decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	base := ch.Add(checked.One, discountFraction)
	growth := ch.PowInt(base, periods)
	inverse := ch.Quo(checked.One, growth)
	remaining := ch.Sub(checked.One, inverse)
	return ch.Result(ch.Quo(remaining, discountFraction))
}

// AnnuityGrowthDiscountFactor returns
// (1 - (1+gr)^periods / (1+dr)^periods) / (dr - gr) with both rates in
// percent. Equal rates fail with division by zero.
func (c *Calculator) AnnuityGrowthDiscountFactor(discountRate, growthRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	dr := ch.Percent(discountRate)
	drGrowth := ch.PowInt(ch.Add(dr, checked.One), periods)
	gr := ch.Percent(growthRate)
	grGrowth := ch.PowInt(ch.Add(gr, checked.One), periods)
	ratio := ch.Quo(grGrowth, drGrowth)
	numerator := ch.Sub(checked.One, ratio)
	denominator := ch.Sub(dr, gr)
	return ch.Result(ch.Quo(numerator, denominator))
}

// AnnuityPresentValue returns payment * AnnuityDiscountFactor(discountRate/100, periods).
func (c *Calculator) AnnuityPresentValue(payment, discountRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	r := ch.Percent(discountRate)
	factor := ch.Then(func() (decimal.Decimal, error) {
		return c.AnnuityDiscountFactor(r, periods)
	})
	return ch.Result(ch.Mul(payment, factor))
}

// AnnuityFutureValue returns payment * AnnuityCompoundFactor(interestRate/100, periods).
func (c *Calculator) AnnuityFutureValue(payment, interestRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	r := ch.Percent(interestRate)
	factor := ch.Then(func() (decimal.Decimal, error) {
		return c.AnnuityCompoundFactor(r, periods)
	})
	return ch.Result(ch.Mul(payment, factor))
}
