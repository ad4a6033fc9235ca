package calculate

import (
	"path/filepath"
	"testing"

	"github.com/iwvelando/moolah/internal/config"
	"github.com/iwvelando/moolah/pkg/checked"
	"github.com/iwvelando/moolah/pkg/finance"
	"github.com/iwvelando/moolah/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseInputs(t *testing.T) {
	formula, ok := finance.Lookup("cash_flow_present_value")
	require.True(t, ok)

	tests := []struct {
		name    string
		raw     map[string]string
		wantErr bool
	}{
		{"Valid inputs", map[string]string{"future_value": "5000", "interest_rate": "8", "periods": "5"}, false},
		{"Whitespace is trimmed", map[string]string{"future_value": " 5000 ", "interest_rate": "8 ", "periods": " 5"}, false},
		{"Extra inputs are ignored", map[string]string{"future_value": "5000", "interest_rate": "8", "periods": "5", "note": "x"}, false},
		{"Missing input", map[string]string{"future_value": "5000", "interest_rate": "8"}, true},
		{"Negative periods", map[string]string{"future_value": "5000", "interest_rate": "8", "periods": "-1"}, true},
		{"Fractional periods", map[string]string{"future_value": "5000", "interest_rate": "8", "periods": "2.5"}, true},
		{"Not a decimal", map[string]string{"future_value": "five", "interest_rate": "8", "periods": "5"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := ParseInputs(formula, tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(5), values.Periods["periods"])
			testutil.AssertDecimal(t, "5000", values.Decimals["future_value"], 0)
			testutil.AssertDecimal(t, "8", values.Decimals["interest_rate"], 0)
		})
	}
}

func TestEvaluate(t *testing.T) {
	calc := finance.NewCalculator(nil)

	t.Run("Success", func(t *testing.T) {
		result, err := Evaluate(calc, config.Calculation{
			Name:    "Pension",
			Formula: "annuity_present_value",
			Inputs:  map[string]string{"payment": "1000", "discount_rate": "4", "periods": "13"},
		})
		require.NoError(t, err)
		require.False(t, result.Failed())
		testutil.AssertDecimal(t, "9985.65", result.Value, 2)
	})

	t.Run("Arithmetic failure is a result", func(t *testing.T) {
		result, err := Evaluate(calc, config.Calculation{
			Name:    "Flat",
			Formula: "growing_perpetuity_present_value",
			Inputs:  map[string]string{"payment": "100", "discount_rate": "3", "growth_rate": "3"},
		})
		require.NoError(t, err)
		require.True(t, result.Failed())
		assert.ErrorIs(t, result.Err, checked.ErrDivisionByZero)
		assert.True(t, result.Value.IsZero())
	})

	t.Run("Unknown formula", func(t *testing.T) {
		_, err := Evaluate(calc, config.Calculation{Name: "Mystery", Formula: "npv"})
		assert.ErrorIs(t, err, ErrUnknownFormula)
	})
}

func TestRun(t *testing.T) {
	conf, err := config.LoadConfiguration(filepath.Join("..", "config", "testdata", "config.yaml"))
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	results, err := Run(zap.New(core), *conf)
	require.NoError(t, err)
	require.Len(t, results, len(conf.Calculations))

	expected := map[string]string{
		"Savings in five years": "7346.64",
		"Bond principal today":  "61391.33",
		"Pension value":         "9985.65",
		"Retirement fund":       "183927.96",
		"Endowment":             "500000.00",
	}
	for _, r := range results {
		require.False(t, r.Failed(), "%s failed: %v", r.Name, r.Err)
		if want, ok := expected[r.Name]; ok {
			testutil.AssertDecimal(t, want, r.Value, 2)
		}
	}

	succeeded, failed := Summary(results)
	assert.Equal(t, len(results), succeeded)
	assert.Zero(t, failed)
	assert.Equal(t, len(results), logs.FilterMessageSnippet("evaluated").Len())
}

func TestRunWithFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	arith := &testutil.CountingArithmetic{}

	calculations := []config.Calculation{
		{Name: "Flat annuity", Formula: "annuity_discount_factor", Inputs: map[string]string{"discount_rate": "0", "periods": "10"}},
		{Name: "Endowment", Formula: "perpetuity_present_value", Inputs: map[string]string{"payment": "100", "discount_rate": "5"}},
	}

	results, err := RunWith(zap.New(core), finance.NewCalculator(arith), calculations)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Failed())
	assert.False(t, results[1].Failed())
	testutil.AssertDecimal(t, "5", results[1].Value, 2)

	succeeded, failed := Summary(results)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "calculation Flat annuity failed", entry.Message)
	assert.Equal(t, "calculate.Run", entry.ContextMap()["op"])

	assert.Equal(t, []string{"add", "pow", "quo", "sub", "quo", "quo", "mul"}, arith.Calls)
}

func TestRunStopsOnInvalidInput(t *testing.T) {
	calculations := []config.Calculation{
		{Name: "Endowment", Formula: "perpetuity_present_value", Inputs: map[string]string{"payment": "100", "discount_rate": "5"}},
		{Name: "Broken", Formula: "perpetuity_present_value", Inputs: map[string]string{"payment": "lots", "discount_rate": "5"}},
		{Name: "Never", Formula: "perpetuity_present_value", Inputs: map[string]string{"payment": "1", "discount_rate": "5"}},
	}

	results, err := RunWith(nil, finance.NewCalculator(nil), calculations)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `"Broken"`)
	assert.Len(t, results, 1)
}
