// Package growth builds cumulative growth multipliers from phased annual
// rates and monthly compounding rates.
package growth

import (
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
)

// Series is a cumulative multiplier per 0-based project year.
type Series []float64

// At returns the multiplier for the given year, or 1 when the year falls
// outside the series.
func (s Series) At(year int) float64 {
	if year < 0 || year >= len(s) {
		return 1
	}
	return s[year]
}

// RateForYear returns the percentage rate applied when moving into project
// year y (1-based transition index). Years past the end of rates reuse the
// last element; an empty slice means no growth.
func RateForYear(rates []float64, y int) float64 {
	if len(rates) == 0 {
		return 0
	}
	if y-1 >= 0 && y-1 < len(rates) {
		return rates[y-1]
	}
	return rates[len(rates)-1]
}

// AnnualMultipliers converts phased annual growth rates into a cumulative
// multiplier for each of the given number of project years. The first year
// is always 1.
func AnnualMultipliers(rates []float64, years int) Series {
	if years <= 0 {
		return Series{}
	}
	multipliers := make(Series, years)
	multipliers[0] = 1
	for y := 1; y < years; y++ {
		multipliers[y] = multipliers[y-1] * (1 + mathutil.PercentToDecimal(RateForYear(rates, y)))
	}
	return multipliers
}

// MonthlyCompounding returns (1+ratePercent/100)^monthIndex where monthIndex
// is the absolute 0-based month of the project.
func MonthlyCompounding(ratePercent float64, monthIndex int) float64 {
	return mathutil.CompoundFactor(ratePercent, monthIndex)
}

// CombineRates composes two phased rate arrays into a single array of the
// given length so that applying the result is equivalent to applying both.
func CombineRates(a, b []float64, years int) []float64 {
	if years <= 1 {
		return nil
	}
	combined := make([]float64, years-1)
	for y := 1; y < years; y++ {
		ra := mathutil.PercentToDecimal(RateForYear(a, y))
		rb := mathutil.PercentToDecimal(RateForYear(b, y))
		combined[y-1] = ((1+ra)*(1+rb) - 1) * 100
	}
	return combined
}
