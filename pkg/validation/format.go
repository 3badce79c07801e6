// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, constants.OutputFormatXLSX:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV,
		constants.OutputFormatJSON, constants.OutputFormatXLSX, format)
}

// ValidateDurationUnit checks if the duration unit is years or months.
func ValidateDurationUnit(unit string) error {
	if unit != constants.DurationUnitYears && unit != constants.DurationUnitMonths {
		return fmt.Errorf("expected duration unit of %s or %s, got %s",
			constants.DurationUnitYears, constants.DurationUnitMonths, unit)
	}
	return nil
}
