// Package costing resolves per-unit costs for bill-of-materials line items.
package costing

import (
	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// Kind identifies how a bill-of-materials line is costed.
type Kind string

const (
	// KindRawMaterial is costed as a batch cost spread over the batch yield.
	KindRawMaterial Kind = "raw_material"
	// KindLabor is costed from the daily minimum wage and minutes per unit.
	KindLabor Kind = "labor"
)

// Item is a single bill-of-materials line.
type Item struct {
	ID             string
	Name           string
	Kind           Kind
	BatchCost      float64
	BatchYield     float64
	MinutesPerUnit float64
}

// Product groups the bill of materials for one product.
type Product struct {
	ID    string
	Items []Item
}

// UnitCost returns the cost of one finished unit contributed by item.
// Incomplete items (no wage configured, no batch yield, unknown kind) cost
// nothing rather than failing.
func UnitCost(item Item, dailyMinimumWage float64) float64 {
	switch item.Kind {
	case KindLabor:
		if dailyMinimumWage <= 0 {
			return 0
		}
		minuteRate := dailyMinimumWage / constants.WorkHoursPerDay / constants.MinutesPerHour
		return minuteRate * item.MinutesPerUnit
	case KindRawMaterial:
		if item.BatchYield <= 0 {
			return 0
		}
		return item.BatchCost / item.BatchYield
	default:
		return 0
	}
}

// LineCost is the resolved unit cost of one bill-of-materials line.
type LineCost struct {
	ItemID string  `json:"itemId"`
	Cost   float64 `json:"cost"`
}

// ProductCost is the resolved bill of materials of one product.
type ProductCost struct {
	ProductID string     `json:"productId"`
	Lines     []LineCost `json:"lines"`
	Total     float64    `json:"total"`
}

// UnitCosts holds one entry per product, in the order the products were
// given. Lines are resolved by position, so missing or repeated IDs never
// share a cost.
type UnitCosts []ProductCost

// Resolve computes the unit cost of every line of every product.
func Resolve(products []Product, dailyMinimumWage float64) UnitCosts {
	costs := make(UnitCosts, len(products))
	for i, product := range products {
		resolved := ProductCost{ProductID: product.ID, Lines: make([]LineCost, len(product.Items))}
		for j, item := range product.Items {
			cost := UnitCost(item, dailyMinimumWage)
			resolved.Lines[j] = LineCost{ItemID: item.ID, Cost: cost}
			resolved.Total += cost
		}
		costs[i] = resolved
	}
	return costs
}

// Lookup returns the cost of the first line matching the IDs, or 0 if none does.
func (c UnitCosts) Lookup(productID, itemID string) float64 {
	for _, product := range c {
		if product.ProductID != productID {
			continue
		}
		for _, line := range product.Lines {
			if line.ItemID == itemID {
				return line.Cost
			}
		}
	}
	return 0
}

// Total returns the unit cost of the product at index, or 0 when out of range.
func (c UnitCosts) Total(index int) float64 {
	if index < 0 || index >= len(c) {
		return 0
	}
	return c[index].Total
}
