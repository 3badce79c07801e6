package config

import (
	"github.com/iwvelando/venture-forecast/pkg/costing"
	"github.com/iwvelando/venture-forecast/pkg/depreciation"
	"github.com/iwvelando/venture-forecast/pkg/loans"
)

// ToLoanConfig converts a configured loan into the amortization input.
func (l Loan) ToLoanConfig() loans.LoanConfig {
	return loans.LoanConfig{
		ID:                 l.ID,
		Name:               l.Name,
		Principal:          l.Principal,
		AnnualInterestRate: l.AnnualInterestRate,
		TermMonths:         l.TermMonths,
	}
}

// ToAsset converts a configured asset into the depreciation input.
func (a DepreciableAsset) ToAsset() depreciation.Asset {
	return depreciation.Asset{
		ID:              a.ID,
		Name:            a.Name,
		InitialCost:     a.InitialCost,
		SalvageValue:    a.SalvageValue,
		UsefulLifeYears: a.UsefulLifeYears,
		Method:          depreciation.Method(a.Method),
	}
}

// ToCostingItem converts a bill-of-materials line into the costing input.
func (b BOMItem) ToCostingItem() costing.Item {
	return costing.Item{
		ID:             b.ID,
		Name:           b.Name,
		Kind:           costing.Kind(b.Kind),
		BatchCost:      b.BatchCost,
		BatchYield:     b.BatchYield,
		MinutesPerUnit: b.MinutesPerUnit,
	}
}

// ToCostingProduct converts a product's bill of materials into the costing input.
func (p Product) ToCostingProduct() costing.Product {
	items := make([]costing.Item, len(p.BOMItems))
	for i, item := range p.BOMItems {
		items[i] = item.ToCostingItem()
	}
	return costing.Product{ID: p.ID, Items: items}
}

// CostingProducts converts every configured product into costing inputs.
func (a AdvancedConfig) CostingProducts() []costing.Product {
	products := make([]costing.Product, len(a.Products))
	for i, product := range a.Products {
		products[i] = product.ToCostingProduct()
	}
	return products
}
