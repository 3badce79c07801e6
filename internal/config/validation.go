package config

import (
	"github.com/iwvelando/venture-forecast/pkg/validation"
)

// ValidateConfiguration returns warnings about inputs that will compute but
// are probably not what the author intended. An unusable horizon is reported
// by projection.Compute as an error instead.
func (p ProjectConfiguration) ValidateConfiguration(unit DurationUnit) []string {
	horizon, err := unit.TotalMonths(p.ProjectDuration)
	if err != nil {
		horizon = 0
	}

	validator := validation.ConfigValidator{
		HorizonMonths: horizon,
		StartDate:     p.StartDate,
	}

	for _, asset := range p.DepreciableAssets {
		validator.Assets = append(validator.Assets, validation.AssetConfig{
			Name:            asset.Name,
			InitialCost:     asset.InitialCost,
			SalvageValue:    asset.SalvageValue,
			UsefulLifeYears: asset.UsefulLifeYears,
		})
	}

	for _, loan := range p.Loans {
		validator.Loans = append(validator.Loans, validation.LoanConfig{
			Name:       loan.Name,
			Principal:  loan.Principal,
			TermMonths: loan.TermMonths,
		})
	}

	for _, revenue := range p.RecurringRevenues {
		validator.Streams = append(validator.Streams, validation.StreamConfig{
			Name:          revenue.Name,
			Amount:        revenue.InitialMonthlyAmount,
			OverrideCount: len(revenue.MonthlyOverrides),
		})
	}
	for _, expense := range p.RecurringExpenses {
		validator.Streams = append(validator.Streams, validation.StreamConfig{
			Name:          expense.Name,
			Amount:        expense.InitialMonthlyAmount,
			OverrideCount: len(expense.MonthlyOverrides),
		})
	}

	for _, product := range p.Advanced.Products {
		labor := 0
		for _, item := range product.BOMItems {
			if item.Kind == Labor {
				labor++
			}
		}
		validator.Products = append(validator.Products, validation.ProductConfig{
			Name:              product.Name,
			UnitsSoldPerMonth: product.UnitsSoldPerMonth,
			LaborItems:        labor,
			DailyMinimumWage:  p.Payroll.DailyMinimumWage,
		})
	}

	return validator.ValidateAll()
}
