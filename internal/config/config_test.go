package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
logging:
  level: debug
  format: console
output:
  format: csv
  durationUnit: months
project:
  projectDuration: 24
  startDate: "2025-03"
  taxRate: 30
  discountRate: 12
  inflationRate: 4
  minimumAcceptableIRR: 15
  investmentItems:
    - id: oven
      name: Oven
      category: fixed_asset
      amount: 25000
      acquisitionSource: financing
  depreciableAssets:
    - id: oven
      name: Oven
      initialCost: 25000
      salvageValue: 5000
      usefulLifeYears: 5
      method: declining_balance
  recurringRevenues:
    - id: catering
      name: Catering
      initialMonthlyAmount: 3000
      annualGrowthRates: [5, 10]
  recurringExpenses:
    - id: rent
      name: Rent
      category: fixed
      initialMonthlyAmount: 1200
      growthType: monthly
      monthlyGrowthRate: 0.5
  loans:
    - id: bank
      name: Bank loan
      principal: 20000
      annualInterestRate: 18
      termMonths: 24
  payroll:
    positions:
      - id: cook
        name: Cook
        monthlySalary: 9000
    temporaryEmployees: 2
    temporaryEmployeeSalary: 4000
    dailyMinimumWage: 320
  advanced:
    applyPriceIncreases: true
    products:
      - id: tamal
        name: Tamal
        unitsSoldPerMonth: 1500
        markupPercent: 60
        annualSalesGrowthRates: [10]
        bomItems:
          - id: masa
            name: Masa
            kind: raw_material
            batchCost: 300
            batchYield: 100
          - id: prep
            name: Preparation
            kind: labor
            minutesPerUnit: 3
incremental:
  investmentId: oven
  loanId: bank
  impactPercentage: 40
`

func assertSample(t *testing.T, c *Configuration) {
	t.Helper()

	if c.Logging.Level != "debug" || c.Logging.Format != "console" {
		t.Errorf("logging = %+v", c.Logging)
	}
	if c.Output.Format != "csv" || c.ResolveDurationUnit() != DurationMonths {
		t.Errorf("output = %+v", c.Output)
	}

	p := c.Project
	if p.ProjectDuration != 24 || p.StartDate != "2025-03" {
		t.Errorf("duration/start = %d/%s", p.ProjectDuration, p.StartDate)
	}
	if p.TaxRate != 30 || p.DiscountRate != 12 || p.InflationRate != 4 || p.MinimumAcceptableIRR != 15 {
		t.Errorf("rates = %v %v %v %v", p.TaxRate, p.DiscountRate, p.InflationRate, p.MinimumAcceptableIRR)
	}
	if len(p.InvestmentItems) != 1 || p.InvestmentItems[0].Category != FixedAsset || p.InvestmentItems[0].AcquisitionSource != Financing {
		t.Errorf("investment items = %+v", p.InvestmentItems)
	}
	if len(p.DepreciableAssets) != 1 || p.DepreciableAssets[0].Method != DecliningBalance {
		t.Errorf("assets = %+v", p.DepreciableAssets)
	}
	if len(p.RecurringRevenues) != 1 || len(p.RecurringRevenues[0].AnnualGrowthRates) != 2 || p.RecurringRevenues[0].AnnualGrowthRates[1] != 10 {
		t.Errorf("revenues = %+v", p.RecurringRevenues)
	}
	if len(p.RecurringExpenses) != 1 || p.RecurringExpenses[0].GrowthType != MonthlyGrowth || p.RecurringExpenses[0].MonthlyGrowthRate != 0.5 {
		t.Errorf("expenses = %+v", p.RecurringExpenses)
	}
	if len(p.Loans) != 1 || p.Loans[0].TermMonths != 24 {
		t.Errorf("loans = %+v", p.Loans)
	}
	if p.Payroll.TotalMonthly() != 17000 {
		t.Errorf("payroll total = %v, want 17000", p.Payroll.TotalMonthly())
	}
	if !p.Advanced.ApplyPriceIncreases || len(p.Advanced.Products) != 1 || len(p.Advanced.Products[0].BOMItems) != 2 {
		t.Fatalf("advanced = %+v", p.Advanced)
	}
	if p.Advanced.Products[0].BOMItems[1].Kind != Labor {
		t.Errorf("bom kind = %s, want labor", p.Advanced.Products[0].BOMItems[1].Kind)
	}
	if c.Incremental == nil || c.Incremental.InvestmentID != "oven" || c.Incremental.ImpactPercentage != 40 {
		t.Errorf("incremental = %+v", c.Incremental)
	}
}

func TestLoadConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	assertSample(t, c)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	c, err := LoadConfigurationFromReader(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	assertSample(t, c)
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("project: [unterminated")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestResolveDurationUnitDefault(t *testing.T) {
	c := Configuration{}
	if got := c.ResolveDurationUnit(); got != DurationYears {
		t.Errorf("ResolveDurationUnit() = %s, want years", got)
	}
}

func TestDurationUnitTotalMonths(t *testing.T) {
	tests := []struct {
		name      string
		unit      DurationUnit
		duration  int
		want      int
		expectErr bool
	}{
		{name: "Years", unit: DurationYears, duration: 3, want: 36},
		{name: "Months", unit: DurationMonths, duration: 18, want: 18},
		{name: "Unknown unit", unit: "weeks", duration: 3, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.unit.TotalMonths(tt.duration)
			if (err != nil) != tt.expectErr {
				t.Fatalf("TotalMonths() error = %v, expectErr %v", err, tt.expectErr)
			}
			if got != tt.want {
				t.Errorf("TotalMonths() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNetInitialInvestment(t *testing.T) {
	p := ProjectConfiguration{InvestmentItems: []InvestmentItem{
		{ID: "a", Amount: 1000},
		{ID: "b", Amount: 2500.5},
	}}
	if got := p.NetInitialInvestment(); got != 3500.5 {
		t.Errorf("NetInitialInvestment() = %v, want 3500.5", got)
	}
}

func TestValidateConfiguration(t *testing.T) {
	p := ProjectConfiguration{
		ProjectDuration: 1,
		DepreciableAssets: []DepreciableAsset{
			{Name: "Oven", InitialCost: 100, SalvageValue: 200, UsefulLifeYears: 5},
		},
		Loans: []Loan{{Name: "Bank", Principal: 1000, TermMonths: 24}},
		Advanced: AdvancedConfig{Products: []Product{
			{Name: "Tamal", UnitsSoldPerMonth: 10, BOMItems: []BOMItem{{ID: "prep", Kind: Labor, MinutesPerUnit: 3}}},
		}},
	}

	warnings := p.ValidateConfiguration(DurationYears)
	if len(warnings) != 3 {
		t.Errorf("ValidateConfiguration() returned %d warnings, expected 3: %v", len(warnings), warnings)
	}

	p.Payroll.DailyMinimumWage = 320
	p.DepreciableAssets[0].SalvageValue = 10
	p.ProjectDuration = 2
	if warnings := p.ValidateConfiguration(DurationYears); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
