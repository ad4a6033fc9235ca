// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"sort"

	"github.com/iwvelando/moolah/pkg/finance"
)

// CalculationInfo represents calculation configuration information
type CalculationInfo struct {
	Name    string
	Formula string
	Inputs  []string
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateCalculations checks every calculation against the formula registry
// and returns warnings. It returns nil when there is nothing to report.
func (p *Processor) ValidateCalculations(calculations []CalculationInfo) []string {
	var warnings []string

	seen := make(map[string]int, len(calculations))
	for i, calc := range calculations {
		label := calc.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Calculation %s has no name", label))
		} else {
			seen[calc.Name]++
			if seen[calc.Name] == 2 {
				warnings = append(warnings, fmt.Sprintf("Calculation name '%s' is used more than once", calc.Name))
			}
		}

		formula, ok := finance.Lookup(calc.Formula)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' uses unknown formula '%s'", label, calc.Formula))
			continue
		}

		provided := make(map[string]bool, len(calc.Inputs))
		for _, in := range calc.Inputs {
			provided[in] = true
		}
		expected := make(map[string]bool, len(formula.Params))
		for _, param := range formula.Params {
			expected[param.Name] = true
			if !provided[param.Name] {
				warnings = append(warnings, fmt.Sprintf("Calculation '%s' is missing input '%s'", label, param.Name))
			}
		}

		var extra []string
		for in := range provided {
			if !expected[in] {
				extra = append(extra, in)
			}
		}
		sort.Strings(extra)
		for _, in := range extra {
			warnings = append(warnings, fmt.Sprintf("Calculation '%s' has unused input '%s'", label, in))
		}
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
