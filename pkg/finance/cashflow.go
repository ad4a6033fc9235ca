package finance

import (
	"github.com/govalues/decimal"
	"github.com/iwvelando/moolah/pkg/checked"
)

// CashFlowPresentValue returns futureValue * (1 + interestRate/100)^periods.
func (c *Calculator) CashFlowPresentValue(futureValue, interestRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	r := ch.Percent(interestRate)
	base := ch.Add(checked.One, r)
	factor := ch.PowInt(base, periods)
	return ch.Result(ch.Mul(futureValue, factor))
}

// CashFlowFutureValue returns presentValue / (1 + discountRate/100)^periods.
func (c *Calculator) CashFlowFutureValue(presentValue, discountRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	r := ch.Percent(discountRate)
	base := ch.Add(checked.One, r)
	factor := ch.PowInt(base, periods)
	return ch.Result(ch.Quo(presentValue, factor))
}

// EffectiveInterestRate returns (1 + (annualRate/100)/periodsPerAnnum)^periods - 1.
func (c *Calculator) EffectiveInterestRate(annualRate, periodsPerAnnum decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	ch := c.chain()
	r := ch.Percent(annualRate)
	perPeriod := ch.Quo(r, periodsPerAnnum)
	base := ch.Add(checked.One, perPeriod)
	factor := ch.PowInt(base, periods)
	return ch.Result(ch.Sub(factor, checked.One))
}
