// Package finance implements time-value-of-money formulas over checked
// decimal arithmetic. Every formula either returns an exact decimal result or
// an error matching checked.ErrArithmetic; no partial result is ever returned.
//
// Rates are in percent units (8 means 8%) unless the parameter is named as a
// fraction. Period counts are non-negative and used only as exponents.
package finance

import (
	"github.com/govalues/decimal"
	"github.com/iwvelando/moolah/pkg/checked"
)

// Calculator evaluates formulas with a given Arithmetic.
type Calculator struct {
	arith checked.Arithmetic
}

// NewCalculator returns a Calculator using a, or checked.Standard if a is nil.
func NewCalculator(a checked.Arithmetic) *Calculator {
	if a == nil {
		a = checked.Standard{}
	}
	return &Calculator{arith: a}
}

func (c *Calculator) chain() *checked.Chain {
	return checked.NewChain(c.arith)
}

var std = NewCalculator(nil)

// CashFlowPresentValue see Calculator.CashFlowPresentValue.
func CashFlowPresentValue(futureValue, interestRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.CashFlowPresentValue(futureValue, interestRate, periods)
}

// CashFlowFutureValue see Calculator.CashFlowFutureValue.
func CashFlowFutureValue(presentValue, discountRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.CashFlowFutureValue(presentValue, discountRate, periods)
}

// AnnuityCompoundFactor see Calculator.AnnuityCompoundFactor.
func AnnuityCompoundFactor(interestFraction decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.AnnuityCompoundFactor(interestFraction, periods)
}

// AnnuityGrowthCompoundFactor see Calculator.AnnuityGrowthCompoundFactor.
func AnnuityGrowthCompoundFactor(interestRate, growthRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.AnnuityGrowthCompoundFactor(interestRate, growthRate, periods)
}

// AnnuityDiscountFactor see Calculator.AnnuityDiscountFactor.
func AnnuityDiscountFactor(discountFraction decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.AnnuityDiscountFactor(discountFraction, periods)
}

// AnnuityGrowthDiscountFactor see Calculator.AnnuityGrowthDiscountFactor.
func AnnuityGrowthDiscountFactor(discountRate, growthRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.AnnuityGrowthDiscountFactor(discountRate, growthRate, periods)
}

// EffectiveInterestRate see Calculator.EffectiveInterestRate.
func EffectiveInterestRate(annualRate, periodsPerAnnum decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.EffectiveInterestRate(annualRate, periodsPerAnnum, periods)
}

// AnnuityPresentValue see Calculator.AnnuityPresentValue.
func AnnuityPresentValue(payment, discountRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.AnnuityPresentValue(payment, discountRate, periods)
}

// AnnuityFutureValue see Calculator.AnnuityFutureValue.
func AnnuityFutureValue(payment, interestRate decimal.Decimal, periods uint64) (decimal.Decimal, error) {
	return std.AnnuityFutureValue(payment, interestRate, periods)
}

// PerpetuityPresentValue see Calculator.PerpetuityPresentValue.
func PerpetuityPresentValue(payment, discountRate decimal.Decimal) (decimal.Decimal, error) {
	return std.PerpetuityPresentValue(payment, discountRate)
}

// GrowingPerpetuityPresentValue see Calculator.GrowingPerpetuityPresentValue.
func GrowingPerpetuityPresentValue(payment, discountRate, growthRate decimal.Decimal) (decimal.Decimal, error) {
	return std.GrowingPerpetuityPresentValue(payment, discountRate, growthRate)
}
