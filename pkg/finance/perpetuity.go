package finance

import "github.com/govalues/decimal"

// PerpetuityPresentValue returns payment * discountRate/100.
//
// The conventional value is payment / rate. The product is kept as is until
// the intended formula is confirmed.
func (c *Calculator) PerpetuityPresentValue(payment, discountRate decimal.Decimal) (decimal.Decimal, error) {
	ch := c.chain()
	r := ch.Percent(discountRate)
	return ch.Result(ch.Mul(payment, r))
}

// GrowingPerpetuityPresentValue returns payment / (discountRate/100 - growthRate/100).
// Equal rates fail with division by zero.
func (c *Calculator) GrowingPerpetuityPresentValue(payment, discountRate, growthRate decimal.Decimal) (decimal.Decimal, error) {
	ch := c.chain()
	dr := ch.Percent(discountRate)
	gr := ch.Percent(growthRate)
	spread := ch.Sub(dr, gr)
	return ch.Result(ch.Quo(payment, spread))
}
