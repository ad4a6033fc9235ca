package finance

import (
	"errors"
	"fmt"
	"sort"

	"github.com/govalues/decimal"
)

// ErrMissingInput is returned when a formula is evaluated without one of its parameters.
var ErrMissingInput = errors.New("missing input")

// Kind describes how a formula parameter is interpreted.
type Kind string

// Parameter kinds.
const (
	KindAmount   Kind = "amount"   // monetary amount
	KindPercent  Kind = "percent"  // rate in percent units, 8 means 8%
	KindFraction Kind = "fraction" // rate as a fraction, 0.08 means 8%
	KindPeriods  Kind = "periods"  // non-negative integer exponent
	KindDecimal  Kind = "decimal"  // any other decimal quantity
)

// Param is a named formula input.
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Description string `json:"description" yaml:"description"`
}

// Values holds parsed inputs keyed by parameter name. Periods parameters are
// read from Periods and all other kinds from Decimals.
type Values struct {
	Decimals map[string]decimal.Decimal
	Periods  map[string]uint64
}

// Formula describes one formula of the library.
type Formula struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Params      []Param `json:"params" yaml:"params"`
	eval        func(c *Calculator, in args) (decimal.Decimal, error)
}

// Evaluate runs the formula with c on the given values.
func (f Formula) Evaluate(c *Calculator, v Values) (decimal.Decimal, error) {
	if c == nil {
		c = std
	}
	for _, p := range f.Params {
		var ok bool
		if p.Kind == KindPeriods {
			_, ok = v.Periods[p.Name]
		} else {
			_, ok = v.Decimals[p.Name]
		}
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%s: %w %q", f.Name, ErrMissingInput, p.Name)
		}
	}
	return f.eval(c, args(v))
}

type args Values

func (a args) d(name string) decimal.Decimal { return a.Decimals[name] }
func (a args) n(name string) uint64          { return a.Periods[name] }

var (
	pFutureValue      = Param{"future_value", KindAmount, "value of the cash flow at maturity"}
	pPresentValue     = Param{"present_value", KindAmount, "value of the cash flow today"}
	pPayment          = Param{"payment", KindAmount, "periodic payment"}
	pInterestRate     = Param{"interest_rate", KindPercent, "periodic interest rate in percent"}
	pDiscountRate     = Param{"discount_rate", KindPercent, "periodic discount rate in percent"}
	pGrowthRate       = Param{"growth_rate", KindPercent, "periodic growth rate in percent"}
	pAnnualRate       = Param{"annual_rate", KindPercent, "nominal annual rate in percent"}
	pInterestFraction = Param{"interest_rate", KindFraction, "periodic interest rate as a fraction"}
	pDiscountFraction = Param{"discount_rate", KindFraction, "periodic discount rate as a fraction"}
	pPeriodsPerAnnum  = Param{"periods_per_annum", KindDecimal, "compounding periods per year"}
	pPeriods          = Param{"periods", KindPeriods, "number of periods to maturity"}
)

var formulas = []Formula{
	{
		Name:        "cash_flow_present_value",
		Description: "future value compounded over the periods",
		Params:      []Param{pFutureValue, pInterestRate, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.CashFlowPresentValue(in.d(pFutureValue.Name), in.d(pInterestRate.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "cash_flow_future_value",
		Description: "present value discounted over the periods",
		Params:      []Param{pPresentValue, pDiscountRate, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.CashFlowFutureValue(in.d(pPresentValue.Name), in.d(pDiscountRate.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "annuity_compound_factor",
		Description: "future value of one unit paid each period",
		Params:      []Param{pInterestFraction, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.AnnuityCompoundFactor(in.d(pInterestFraction.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "annuity_growth_compound_factor",
		Description: "compound factor of a growing annuity",
		Params:      []Param{pInterestRate, pGrowthRate, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.AnnuityGrowthCompoundFactor(in.d(pInterestRate.Name), in.d(pGrowthRate.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "annuity_discount_factor",
		Description: "present value of one unit paid each period",
		Params:      []Param{pDiscountFraction, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.AnnuityDiscountFactor(in.d(pDiscountFraction.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "annuity_growth_discount_factor",
		Description: "discount factor of a growing annuity",
		Params:      []Param{pDiscountRate, pGrowthRate, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.AnnuityGrowthDiscountFactor(in.d(pDiscountRate.Name), in.d(pGrowthRate.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "effective_interest_rate",
		Description: "effective rate of a nominal annual rate",
		Params:      []Param{pAnnualRate, pPeriodsPerAnnum, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.EffectiveInterestRate(in.d(pAnnualRate.Name), in.d(pPeriodsPerAnnum.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "annuity_present_value",
		Description: "present value of an annuity",
		Params:      []Param{pPayment, pDiscountRate, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.AnnuityPresentValue(in.d(pPayment.Name), in.d(pDiscountRate.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "annuity_future_value",
		Description: "future value of an annuity",
		Params:      []Param{pPayment, pInterestRate, pPeriods},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.AnnuityFutureValue(in.d(pPayment.Name), in.d(pInterestRate.Name), in.n(pPeriods.Name))
		},
	},
	{
		Name:        "perpetuity_present_value",
		Description: "present value of a perpetuity",
		Params:      []Param{pPayment, pDiscountRate},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.PerpetuityPresentValue(in.d(pPayment.Name), in.d(pDiscountRate.Name))
		},
	},
	{
		Name:        "growing_perpetuity_present_value",
		Description: "present value of a growing perpetuity",
		Params:      []Param{pPayment, pDiscountRate, pGrowthRate},
		eval: func(c *Calculator, in args) (decimal.Decimal, error) {
			return c.GrowingPerpetuityPresentValue(in.d(pPayment.Name), in.d(pDiscountRate.Name), in.d(pGrowthRate.Name))
		},
	},
}

var byName = func() map[string]Formula {
	m := make(map[string]Formula, len(formulas))
	for _, f := range formulas {
		m[f.Name] = f
	}
	return m
}()

// Lookup returns the formula with the given name.
func Lookup(name string) (Formula, bool) {
	f, ok := byName[name]
	return f, ok
}

// Formulas returns every formula sorted by name.
func Formulas() []Formula {
	out := make([]Formula, len(formulas))
	copy(out, formulas)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted formula names.
func Names() []string {
	names := make([]string, 0, len(formulas))
	for _, f := range Formulas() {
		names = append(names, f.Name)
	}
	return names
}
