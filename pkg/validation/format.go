// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/moolah/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidatePrecision checks that a display precision can be applied to a decimal.
func ValidatePrecision(precision int) error {
	if precision < 0 || precision > constants.MaxPrecision {
		return fmt.Errorf("output precision must be between 0 and %d, got %d", constants.MaxPrecision, precision)
	}
	return nil
}
