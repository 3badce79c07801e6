// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/internal/projection"
)

// FindYear finds the annual summary for the given 1-based year.
// Returns a pointer to the summary if found, nil otherwise.
func FindYear(summaries []projection.AnnualSummary, year int) *projection.AnnualSummary {
	for i := range summaries {
		if summaries[i].Year == year {
			return &summaries[i]
		}
	}
	return nil
}

// BlankProject returns a project with nothing configured beyond its duration.
func BlankProject(durationYears int) config.ProjectConfiguration {
	return config.ProjectConfiguration{
		ProjectDuration:      durationYears,
		DiscountRate:         10,
		MinimumAcceptableIRR: 10,
	}
}

// SampleProject returns a three-year small food business: three products
// with raw-material and labor costs, indirect fixed costs, an aggregated
// fixed asset and a one-year loan financing the initial investment.
func SampleProject() config.ProjectConfiguration {
	product := func(id, name string, units, markup, materialCost float64) config.Product {
		return config.Product{
			ID:                            id,
			Name:                          name,
			UnitsSoldPerMonth:             units,
			MarkupPercent:                 markup,
			AnnualSalesGrowthRates:        []float64{10, 10},
			AnnualVariableCostGrowthRates: []float64{6, 5},
			AnnualPriceIncreaseRates:      []float64{0, 0},
			BOMItems: []config.BOMItem{
				{ID: id + "-materials", Name: "Direct materials", Kind: config.RawMaterial, BatchCost: materialCost, BatchYield: 1},
				{ID: id + "-labor", Name: "Direct labor", Kind: config.Labor, MinutesPerUnit: 1.56},
			},
		}
	}

	return config.ProjectConfiguration{
		ProjectDuration:      3,
		DiscountRate:         18,
		MinimumAcceptableIRR: 18,
		InvestmentItems: []config.InvestmentItem{
			{ID: "initial", Name: "Total initial investment", Category: config.WorkingCapital, Amount: 10638.50, AcquisitionSource: config.NewContribution},
		},
		DepreciableAssets: []config.DepreciableAsset{
			{ID: "fixed-assets", Name: "Fixed assets (aggregated)", InitialCost: 14379, SalvageValue: 1437.9, UsefulLifeYears: 5, Method: config.StraightLine},
		},
		RecurringExpenses: []config.RecurringExpense{
			{ID: "indirect", Name: "Indirect costs", Category: config.FixedExpense, InitialMonthlyAmount: 930, GrowthType: config.AnnualGrowth, AnnualGrowthRates: []float64{6, 5}},
		},
		Loans: []config.Loan{
			{ID: "startup-loan", Name: "Initial investment financing", Principal: 10638.50, AnnualInterestRate: 25, TermMonths: 12},
		},
		Payroll: config.PayrollConfig{DailyMinimumWage: 320},
		Advanced: config.AdvancedConfig{Products: []config.Product{
			product("beef-tamal", "Beef tamal (250 g)", 600, 75.1, 13.79),
			product("corn-tamal", "Corn tamal (250 g)", 600, 76.8, 11.44),
			product("beef-chile", "Beef in chile plate", 40, 68.8, 58.33),
		}},
	}
}
