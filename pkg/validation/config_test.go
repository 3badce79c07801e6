package validation

import (
	"strings"
	"testing"
)

func TestValidateLoanTerm(t *testing.T) {
	tests := []struct {
		name          string
		termMonths    int
		horizonMonths int
		expectWarn    bool
	}{
		{name: "Loan matures within horizon", termMonths: 12, horizonMonths: 36, expectWarn: false},
		{name: "Loan matures on last month", termMonths: 36, horizonMonths: 36, expectWarn: false},
		{name: "Loan outlives horizon", termMonths: 60, horizonMonths: 36, expectWarn: true},
		{name: "Zero term", termMonths: 0, horizonMonths: 36, expectWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateLoanTerm("Test Loan", tt.termMonths, tt.horizonMonths)
			if (warning != "") != tt.expectWarn {
				t.Errorf("ValidateLoanTerm() = %q, expectWarn %v", warning, tt.expectWarn)
			}
			if warning != "" && !strings.Contains(warning, "Test Loan") {
				t.Errorf("warning should name the loan, got %q", warning)
			}
		})
	}
}

func TestValidateAsset(t *testing.T) {
	tests := []struct {
		name        string
		cost        float64
		salvage     float64
		life        int
		expectCount int
	}{
		{name: "Valid asset", cost: 1000, salvage: 100, life: 5, expectCount: 0},
		{name: "Salvage equals cost", cost: 1000, salvage: 1000, life: 5, expectCount: 0},
		{name: "Salvage above cost", cost: 1000, salvage: 1500, life: 5, expectCount: 1},
		{name: "Zero life", cost: 1000, salvage: 100, life: 0, expectCount: 1},
		{name: "Both problems", cost: 100, salvage: 200, life: -1, expectCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateAsset("Oven", tt.cost, tt.salvage, tt.life)
			if len(warnings) != tt.expectCount {
				t.Errorf("ValidateAsset() returned %d warnings, expected %d: %v", len(warnings), tt.expectCount, warnings)
			}
		})
	}
}

func TestValidateOverrides(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		expectWarn bool
	}{
		{name: "No overrides", count: 0, expectWarn: false},
		{name: "Full year", count: 12, expectWarn: false},
		{name: "Partial year", count: 6, expectWarn: true},
		{name: "Too many", count: 13, expectWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warning := ValidateOverrides("Rent", tt.count)
			if (warning != "") != tt.expectWarn {
				t.Errorf("ValidateOverrides(%d) = %q, expectWarn %v", tt.count, warning, tt.expectWarn)
			}
		})
	}
}

func TestConfigValidator_ValidateAll(t *testing.T) {
	tests := []struct {
		name            string
		validator       ConfigValidator
		expectWarnCount int
	}{
		{
			name:            "Empty configuration",
			validator:       ConfigValidator{HorizonMonths: 12},
			expectWarnCount: 0,
		},
		{
			name: "Valid configuration",
			validator: ConfigValidator{
				HorizonMonths: 36,
				StartDate:     "2025-01",
				Assets:        []AssetConfig{{Name: "Oven", InitialCost: 1000, SalvageValue: 100, UsefulLifeYears: 5}},
				Loans:         []LoanConfig{{Name: "Bank", Principal: 5000, TermMonths: 12}},
				Streams:       []StreamConfig{{Name: "Rent", Amount: 500}},
				Products:      []ProductConfig{{Name: "Tamal", UnitsSoldPerMonth: 100, LaborItems: 1, DailyMinimumWage: 320}},
			},
			expectWarnCount: 0,
		},
		{
			name: "Configuration with warnings",
			validator: ConfigValidator{
				HorizonMonths: 12,
				StartDate:     "January 2025",
				Assets:        []AssetConfig{{Name: "Oven", InitialCost: 100, SalvageValue: 200, UsefulLifeYears: 5}},
				Loans: []LoanConfig{
					{Name: "Long", Principal: 5000, TermMonths: 24},
					{Name: "Unused", Principal: 0, TermMonths: 0},
				},
				Streams:  []StreamConfig{{Name: "Rent", Amount: -1, OverrideCount: 3}},
				Products: []ProductConfig{{Name: "Tamal", UnitsSoldPerMonth: -5, LaborItems: 2}},
			},
			// start date, salvage, long loan, negative stream, overrides, negative units, missing wage
			expectWarnCount: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.validator.ValidateAll()

			if len(warnings) != tt.expectWarnCount {
				t.Errorf("ValidateAll() returned %d warnings, expected %d",
					len(warnings), tt.expectWarnCount)
			}

			for i, warning := range warnings {
				t.Logf("Warning %d: %s", i+1, warning)
			}
		})
	}
}
