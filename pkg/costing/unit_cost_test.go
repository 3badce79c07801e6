package costing

import (
	"math"
	"testing"
)

func TestUnitCost(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		wage     float64
		expected float64
	}{
		{"Labor from daily wage", Item{Kind: KindLabor, MinutesPerUnit: 1.56}, 320, 1.04},
		{"Labor one hour", Item{Kind: KindLabor, MinutesPerUnit: 60}, 480, 60},
		{"Labor without wage", Item{Kind: KindLabor, MinutesPerUnit: 30}, 0, 0},
		{"Labor with negative wage", Item{Kind: KindLabor, MinutesPerUnit: 30}, -10, 0},
		{"Raw material batch", Item{Kind: KindRawMaterial, BatchCost: 100, BatchYield: 40}, 0, 2.5},
		{"Raw material single unit", Item{Kind: KindRawMaterial, BatchCost: 13.79, BatchYield: 1}, 320, 13.79},
		{"Raw material zero yield", Item{Kind: KindRawMaterial, BatchCost: 100}, 0, 0},
		{"Raw material negative yield", Item{Kind: KindRawMaterial, BatchCost: 100, BatchYield: -2}, 0, 0},
		{"Unknown kind", Item{Kind: "service", BatchCost: 100, BatchYield: 1}, 320, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UnitCost(tt.item, tt.wage)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("UnitCost() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestResolveAndProductCost(t *testing.T) {
	products := []Product{
		{
			ID: "tamal",
			Items: []Item{
				{ID: "meat", Kind: KindRawMaterial, BatchCost: 13.79, BatchYield: 1},
				{ID: "labor", Kind: KindLabor, MinutesPerUnit: 1.56},
			},
		},
		{
			ID: "drink",
			Items: []Item{
				{ID: "labor", Kind: KindLabor, MinutesPerUnit: 3},
			},
		},
	}

	costs := Resolve(products, 320)

	if got := costs.Lookup("tamal", "labor"); math.Abs(got-1.04) > 1e-9 {
		t.Errorf("tamal labor cost = %v, expected 1.04", got)
	}
	if got := costs.Lookup("drink", "labor"); math.Abs(got-2) > 1e-9 {
		t.Errorf("drink labor cost = %v, expected 2", got)
	}
	if got := costs.Lookup("missing", "labor"); got != 0 {
		t.Errorf("missing product cost = %v, expected 0", got)
	}
	if got := costs.Total(0); math.Abs(got-14.83) > 1e-9 {
		t.Errorf("tamal product cost = %v, expected 14.83", got)
	}
	if got := costs.Total(5); got != 0 {
		t.Errorf("out of range product cost = %v, expected 0", got)
	}
}

func TestResolveWithoutIDs(t *testing.T) {
	products := []Product{
		{Items: []Item{
			{Kind: KindRawMaterial, BatchCost: 10, BatchYield: 1},
			{Kind: KindRawMaterial, BatchCost: 2, BatchYield: 1},
		}},
		{Items: []Item{
			{Kind: KindRawMaterial, BatchCost: 100, BatchYield: 1},
		}},
		{ID: "dup", Items: []Item{
			{ID: "x", Kind: KindRawMaterial, BatchCost: 4, BatchYield: 2},
			{ID: "x", Kind: KindRawMaterial, BatchCost: 9, BatchYield: 3},
		}},
	}

	costs := Resolve(products, 0)

	expected := []float64{12, 100, 5}
	for i, want := range expected {
		if got := costs.Total(i); math.Abs(got-want) > 1e-9 {
			t.Errorf("product %d cost = %v, expected %v", i, got, want)
		}
	}
	if got := len(costs[0].Lines); got != 2 {
		t.Errorf("product 0 lines = %d, expected 2", got)
	}
}
