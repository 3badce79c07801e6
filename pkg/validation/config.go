// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/datetime"
)

// ValidateLoanTerm checks if a loan is still outstanding when the projection ends.
func ValidateLoanTerm(loanName string, termMonths, horizonMonths int) string {
	if termMonths <= 0 {
		return fmt.Sprintf("Loan '%s' has a non-positive term (%d months) - it will not be amortized", loanName, termMonths)
	}
	if termMonths > horizonMonths {
		return fmt.Sprintf("Loan '%s' matures after the projection ends (%d > %d months) - loan will have outstanding balance",
			loanName, termMonths, horizonMonths)
	}
	return ""
}

// ValidateAsset checks the cost, salvage value and useful life of an asset.
func ValidateAsset(assetName string, initialCost, salvageValue float64, usefulLifeYears int) []string {
	var warnings []string

	if salvageValue > initialCost {
		warnings = append(warnings, fmt.Sprintf("Asset '%s' has a salvage value above its initial cost (%.2f > %.2f) - it will not be depreciated",
			assetName, salvageValue, initialCost))
	}

	if usefulLifeYears <= 0 {
		warnings = append(warnings, fmt.Sprintf("Asset '%s' has a non-positive useful life (%d years) - it will not be depreciated",
			assetName, usefulLifeYears))
	}

	return warnings
}

// ValidateOverrides checks that monthly overrides are either absent or cover a full year.
func ValidateOverrides(streamName string, count int) string {
	if count != 0 && count != constants.OverrideMonths {
		return fmt.Sprintf("'%s' has %d monthly overrides, expected %d - overrides will be ignored",
			streamName, count, constants.OverrideMonths)
	}
	return ""
}

// ConfigValidator collects the parts of a project that are checked for warnings.
type ConfigValidator struct {
	HorizonMonths int
	StartDate     string
	Assets        []AssetConfig
	Loans         []LoanConfig
	Streams       []StreamConfig
	Products      []ProductConfig
}

type AssetConfig struct {
	Name            string
	InitialCost     float64
	SalvageValue    float64
	UsefulLifeYears int
}

type LoanConfig struct {
	Name       string
	Principal  float64
	TermMonths int
}

// StreamConfig is a recurring revenue or expense.
type StreamConfig struct {
	Name          string
	Amount        float64
	OverrideCount int
}

type ProductConfig struct {
	Name              string
	UnitsSoldPerMonth float64
	LaborItems        int
	DailyMinimumWage  float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	if cv.StartDate != "" {
		if _, err := datetime.ProjectPeriod(cv.StartDate, 0); err != nil {
			warnings = append(warnings, fmt.Sprintf("Start date '%s' is not in YYYY-MM form - periods will be unlabeled", cv.StartDate))
		}
	}

	for _, asset := range cv.Assets {
		warnings = append(warnings, ValidateAsset(asset.Name, asset.InitialCost, asset.SalvageValue, asset.UsefulLifeYears)...)
	}

	for _, loan := range cv.Loans {
		if loan.Principal <= 0 {
			continue
		}
		if warning := ValidateLoanTerm(loan.Name, loan.TermMonths, cv.HorizonMonths); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, stream := range cv.Streams {
		if stream.Amount < 0 {
			warnings = append(warnings, fmt.Sprintf("'%s' has a negative monthly amount (%.2f)", stream.Name, stream.Amount))
		}
		if warning := ValidateOverrides(stream.Name, stream.OverrideCount); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	for _, product := range cv.Products {
		if product.UnitsSoldPerMonth < 0 {
			warnings = append(warnings, fmt.Sprintf("Product '%s' has negative units sold per month (%.2f) - sales will be negative",
				product.Name, product.UnitsSoldPerMonth))
		}
		if product.LaborItems > 0 && product.DailyMinimumWage <= 0 {
			warnings = append(warnings, fmt.Sprintf("Product '%s' has labor items but no daily minimum wage is configured - labor will cost nothing",
				product.Name))
		}
	}

	return warnings
}
