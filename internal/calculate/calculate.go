// Package calculate evaluates configured calculations against the formula
// library and collects their results.
package calculate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
	"github.com/iwvelando/moolah/internal/config"
	"github.com/iwvelando/moolah/pkg/finance"
	"go.uber.org/zap"
)

// Input errors abort a run; arithmetic failures do not.
var (
	ErrUnknownFormula = errors.New("unknown formula")
	ErrInvalidInput   = errors.New("invalid input")
)

// Result holds the outcome of one calculation. Exactly one of Value and Err
// is meaningful: a failed calculation never carries a value.
type Result struct {
	Name    string
	Formula string
	Inputs  map[string]string
	Value   decimal.Decimal
	Err     error
}

// Failed reports whether the formula returned an arithmetic failure.
func (r Result) Failed() bool {
	return r.Err != nil
}

// ParseInputs converts raw text inputs into the values expected by f.
// Inputs that f does not declare are ignored.
func ParseInputs(f finance.Formula, raw map[string]string) (finance.Values, error) {
	values := finance.Values{
		Decimals: make(map[string]decimal.Decimal),
		Periods:  make(map[string]uint64),
	}

	for _, param := range f.Params {
		text, ok := raw[param.Name]
		if !ok {
			return values, fmt.Errorf("%w: %s requires %q", ErrInvalidInput, f.Name, param.Name)
		}
		text = strings.TrimSpace(text)

		if param.Kind == finance.KindPeriods {
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return values, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidInput, param.Name, text)
			}
			values.Periods[param.Name] = n
			continue
		}

		d, err := decimal.Parse(text)
		if err != nil {
			return values, fmt.Errorf("%w: %s is not a decimal: %v", ErrInvalidInput, param.Name, err)
		}
		values.Decimals[param.Name] = d
	}

	return values, nil
}

// Evaluate runs one calculation with calc. The returned error reports a
// configuration problem; an arithmetic failure is recorded in Result.Err.
func Evaluate(calc *finance.Calculator, c config.Calculation) (Result, error) {
	result := Result{Name: c.Name, Formula: c.Formula, Inputs: c.Inputs}

	formula, ok := finance.Lookup(c.Formula)
	if !ok {
		return result, fmt.Errorf("calculation %q: %w %q", c.Name, ErrUnknownFormula, c.Formula)
	}

	values, err := ParseInputs(formula, c.Inputs)
	if err != nil {
		return result, fmt.Errorf("calculation %q: %w", c.Name, err)
	}

	result.Value, result.Err = formula.Evaluate(calc, values)
	return result, nil
}

// Run evaluates every calculation in the configuration in order.
func Run(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	return RunWith(logger, finance.NewCalculator(nil), conf.Calculations)
}

// RunWith evaluates calculations with calc.
func RunWith(logger *zap.Logger, calc *finance.Calculator, calculations []config.Calculation) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, 0, len(calculations))
	for _, c := range calculations {
		result, err := Evaluate(calc, c)
		if err != nil {
			return results, err
		}

		if result.Failed() {
			logger.Warn(fmt.Sprintf("calculation %s failed", c.Name),
				zap.String("op", "calculate.Run"),
				zap.String("formula", c.Formula),
				zap.Error(result.Err),
			)
		} else {
			logger.Debug(fmt.Sprintf("calculation %s evaluated", c.Name),
				zap.String("op", "calculate.Run"),
				zap.String("formula", c.Formula),
				zap.Stringer("value", result.Value),
			)
		}
		results = append(results, result)
	}

	return results, nil
}

// Summary counts succeeded and failed results.
func Summary(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.Failed() {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}
