// Package depreciation produces annual depreciation schedules for assets.
package depreciation

import (
	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// Method selects how an asset is depreciated.
type Method string

const (
	// StraightLine spreads the depreciable base evenly over the useful life.
	StraightLine Method = "straight_line"
	// DecliningBalance applies the double-declining rate to the current book value.
	DecliningBalance Method = "declining_balance"
)

// Asset describes a depreciable asset.
type Asset struct {
	ID              string
	Name            string
	InitialCost     float64
	SalvageValue    float64
	UsefulLifeYears int
	Method          Method
}

// DepreciableBase is the total amount that may ever be depreciated.
func (a Asset) DepreciableBase() float64 {
	return a.InitialCost - a.SalvageValue
}

// Series is an annual depreciation amount per 0-based project year.
type Series []float64

// At returns the depreciation for the given year, or 0 outside the series.
func (s Series) At(year int) float64 {
	if year < 0 || year >= len(s) {
		return 0
	}
	return s[year]
}

// Total returns the accumulated depreciation over the series.
func (s Series) Total() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Schedule computes the depreciation for each of the given project years.
// Accumulated depreciation never exceeds the depreciable base; years past the
// useful life contribute nothing.
func Schedule(asset Asset, years int) Series {
	if years <= 0 {
		return Series{}
	}
	schedule := make(Series, years)
	if asset.UsefulLifeYears <= 0 {
		return schedule
	}

	base := asset.DepreciableBase()
	bookValue := asset.InitialCost
	accumulated := 0.0
	life := float64(asset.UsefulLifeYears)

	for year := 0; year < years; year++ {
		amount := 0.0
		if year < asset.UsefulLifeYears && accumulated < base {
			switch asset.Method {
			case StraightLine:
				amount = base / life
			case DecliningBalance:
				amount = bookValue * (constants.DecliningBalanceFactor / life)
			}
		}

		if amount > 0 && accumulated+amount > base {
			amount = base - accumulated
		}

		accumulated += amount
		bookValue -= amount
		schedule[year] = amount
	}
	return schedule
}
