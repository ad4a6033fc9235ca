package config

import (
	"sort"

	"github.com/iwvelando/moolah/pkg/configprocessor"
)

// ToCalculationInfo converts a Calculation to the configprocessor format.
func (calc Calculation) ToCalculationInfo() configprocessor.CalculationInfo {
	inputs := make([]string, 0, len(calc.Inputs))
	for name := range calc.Inputs {
		inputs = append(inputs, name)
	}
	sort.Strings(inputs)

	return configprocessor.CalculationInfo{
		Name:    calc.Name,
		Formula: calc.Formula,
		Inputs:  inputs,
	}
}
