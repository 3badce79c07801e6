// Package format renders monetary and percentage values for human output.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency renders amount in dollars with grouped thousands, e.g. "-$1,234.56".
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + Grouped(math.Abs(amount))
	}
	return "$" + Grouped(amount)
}

// Grouped renders value with two decimals and grouped thousands, e.g. "1,234.56".
func Grouped(value float64) string {
	return printer.Sprintf("%.2f", value)
}

// Percent renders a percentage with two decimals.
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}

// OptionalPercent renders a nullable percentage, using "n/a" when absent.
func OptionalPercent(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return Percent(*value)
}
