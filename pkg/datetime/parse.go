// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/venture-forecast/pkg/constants"
)

const (
	// DateTimeLayout is the format expected for the project start date and is
	// also the output period format.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// ProjectPeriod labels the 0-based project month. With a start date the label
// is the calendar month (e.g. 2025-03); otherwise it is Y<year>M<month>.
func ProjectPeriod(startDate string, monthIndex int) (string, error) {
	if startDate == "" {
		year := monthIndex/constants.MonthsPerYear + 1
		month := monthIndex%constants.MonthsPerYear + 1
		return fmt.Sprintf("Y%dM%d", year, month), nil
	}
	return OffsetDate(startDate, DateTimeLayout, monthIndex)
}
