package config

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// DurationUnit selects how ProjectDuration is interpreted.
type DurationUnit string

const (
	DurationYears  DurationUnit = constants.DurationUnitYears
	DurationMonths DurationUnit = constants.DurationUnitMonths
)

// TotalMonths converts a duration expressed in unit into months.
func (u DurationUnit) TotalMonths(duration int) (int, error) {
	switch u {
	case DurationYears:
		return duration * constants.MonthsPerYear, nil
	case DurationMonths:
		return duration, nil
	default:
		return 0, fmt.Errorf("unknown duration unit %q", u)
	}
}

// InvestmentCategory classifies an initial investment item.
type InvestmentCategory string

const (
	FixedAsset     InvestmentCategory = "fixed_asset"
	DeferredAsset  InvestmentCategory = "deferred_asset"
	WorkingCapital InvestmentCategory = "working_capital"
)

// AcquisitionSource records where the funds for an investment item came from.
type AcquisitionSource string

const (
	NewContribution      AcquisitionSource = "new_contribution"
	ExistingContribution AcquisitionSource = "existing_contribution"
	Financing            AcquisitionSource = "financing"
	Donation             AcquisitionSource = "donation"
)

// ExpenseCategory routes an expense to fixed or variable costs.
type ExpenseCategory string

const (
	FixedExpense    ExpenseCategory = "fixed"
	VariableExpense ExpenseCategory = "variable"
)

// GrowthType selects between phased annual growth and monthly compounding.
type GrowthType string

const (
	AnnualGrowth  GrowthType = "annual"
	MonthlyGrowth GrowthType = "monthly"
)

// DepreciationMethod is the configured depreciation method of an asset.
type DepreciationMethod string

const (
	StraightLine     DepreciationMethod = "straight_line"
	DecliningBalance DepreciationMethod = "declining_balance"
)

// BOMItemKind tags the variant of a bill-of-materials line.
type BOMItemKind string

const (
	RawMaterial BOMItemKind = "raw_material"
	Labor       BOMItemKind = "labor"
)

// ProjectConfiguration describes a business model to be projected.
type ProjectConfiguration struct {
	ProjectDuration      int                  `mapstructure:"projectDuration" yaml:"projectDuration" json:"projectDuration"`
	StartDate            string               `mapstructure:"startDate" yaml:"startDate,omitempty" json:"startDate,omitempty"`
	TaxRate              float64              `mapstructure:"taxRate" yaml:"taxRate" json:"taxRate"`
	DiscountRate         float64              `mapstructure:"discountRate" yaml:"discountRate" json:"discountRate"`
	InflationRate        float64              `mapstructure:"inflationRate" yaml:"inflationRate" json:"inflationRate"`
	MinimumAcceptableIRR float64              `mapstructure:"minimumAcceptableIRR" yaml:"minimumAcceptableIRR" json:"minimumAcceptableIRR"`
	InvestmentItems      []InvestmentItem     `mapstructure:"investmentItems" yaml:"investmentItems,omitempty" json:"investmentItems,omitempty"`
	DepreciableAssets    []DepreciableAsset   `mapstructure:"depreciableAssets" yaml:"depreciableAssets,omitempty" json:"depreciableAssets,omitempty"`
	RecurringRevenues    []RecurringRevenue   `mapstructure:"recurringRevenues" yaml:"recurringRevenues,omitempty" json:"recurringRevenues,omitempty"`
	RecurringExpenses    []RecurringExpense   `mapstructure:"recurringExpenses" yaml:"recurringExpenses,omitempty" json:"recurringExpenses,omitempty"`
	Loans                []Loan               `mapstructure:"loans" yaml:"loans,omitempty" json:"loans,omitempty"`
	Payroll              PayrollConfig        `mapstructure:"payroll" yaml:"payroll" json:"payroll"`
	WorkingCapital       WorkingCapitalConfig `mapstructure:"workingCapital" yaml:"workingCapital" json:"workingCapital"`
	Advanced             AdvancedConfig       `mapstructure:"advanced" yaml:"advanced" json:"advanced"`
	Notes                string               `mapstructure:"notes" yaml:"notes,omitempty" json:"notes,omitempty"`
}

// InvestmentItem is one line of the initial investment.
type InvestmentItem struct {
	ID                string             `mapstructure:"id" yaml:"id" json:"id"`
	Name              string             `mapstructure:"name" yaml:"name" json:"name"`
	Category          InvestmentCategory `mapstructure:"category" yaml:"category" json:"category"`
	Amount            float64            `mapstructure:"amount" yaml:"amount" json:"amount"`
	AcquisitionSource AcquisitionSource  `mapstructure:"acquisitionSource" yaml:"acquisitionSource" json:"acquisitionSource"`
}

// DepreciableAsset is an asset depreciated over its useful life.
type DepreciableAsset struct {
	ID              string             `mapstructure:"id" yaml:"id" json:"id"`
	Name            string             `mapstructure:"name" yaml:"name" json:"name"`
	InitialCost     float64            `mapstructure:"initialCost" yaml:"initialCost" json:"initialCost"`
	SalvageValue    float64            `mapstructure:"salvageValue" yaml:"salvageValue" json:"salvageValue"`
	UsefulLifeYears int                `mapstructure:"usefulLifeYears" yaml:"usefulLifeYears" json:"usefulLifeYears"`
	Method          DepreciationMethod `mapstructure:"method" yaml:"method" json:"method"`
}

// RecurringRevenue is a monthly revenue stream. MonthlyOverrides replaces the
// first project year only when it holds exactly twelve values.
type RecurringRevenue struct {
	ID                   string    `mapstructure:"id" yaml:"id" json:"id"`
	Name                 string    `mapstructure:"name" yaml:"name" json:"name"`
	InitialMonthlyAmount float64   `mapstructure:"initialMonthlyAmount" yaml:"initialMonthlyAmount" json:"initialMonthlyAmount"`
	AnnualGrowthRates    []float64 `mapstructure:"annualGrowthRates" yaml:"annualGrowthRates,omitempty,flow" json:"annualGrowthRates,omitempty"`
	MonthlyOverrides     []float64 `mapstructure:"monthlyOverrides" yaml:"monthlyOverrides,omitempty,flow" json:"monthlyOverrides,omitempty"`
	IsCalculated         bool      `mapstructure:"isCalculated" yaml:"isCalculated,omitempty" json:"isCalculated,omitempty"`
}

// RecurringExpense is a monthly expense stream.
type RecurringExpense struct {
	ID                   string          `mapstructure:"id" yaml:"id" json:"id"`
	Name                 string          `mapstructure:"name" yaml:"name" json:"name"`
	Category             ExpenseCategory `mapstructure:"category" yaml:"category" json:"category"`
	InitialMonthlyAmount float64         `mapstructure:"initialMonthlyAmount" yaml:"initialMonthlyAmount" json:"initialMonthlyAmount"`
	GrowthType           GrowthType      `mapstructure:"growthType" yaml:"growthType,omitempty" json:"growthType,omitempty"`
	AnnualGrowthRates    []float64       `mapstructure:"annualGrowthRates" yaml:"annualGrowthRates,omitempty,flow" json:"annualGrowthRates,omitempty"`
	MonthlyGrowthRate    float64         `mapstructure:"monthlyGrowthRate" yaml:"monthlyGrowthRate,omitempty" json:"monthlyGrowthRate,omitempty"`
	MonthlyOverrides     []float64       `mapstructure:"monthlyOverrides" yaml:"monthlyOverrides,omitempty,flow" json:"monthlyOverrides,omitempty"`
	IsCalculated         bool            `mapstructure:"isCalculated" yaml:"isCalculated,omitempty" json:"isCalculated,omitempty"`
}

// Loan is a fixed-payment loan amortized monthly from the first project month.
type Loan struct {
	ID                 string  `mapstructure:"id" yaml:"id" json:"id"`
	Name               string  `mapstructure:"name" yaml:"name" json:"name"`
	Principal          float64 `mapstructure:"principal" yaml:"principal" json:"principal"`
	AnnualInterestRate float64 `mapstructure:"annualInterestRate" yaml:"annualInterestRate" json:"annualInterestRate"`
	TermMonths         int     `mapstructure:"termMonths" yaml:"termMonths" json:"termMonths"`
}

// PayrollConfig holds staffing costs and the daily minimum wage used to cost labor.
type PayrollConfig struct {
	Positions               []Position `mapstructure:"positions" yaml:"positions,omitempty" json:"positions,omitempty"`
	TemporaryEmployees      int        `mapstructure:"temporaryEmployees" yaml:"temporaryEmployees" json:"temporaryEmployees"`
	TemporaryEmployeeSalary float64    `mapstructure:"temporaryEmployeeSalary" yaml:"temporaryEmployeeSalary" json:"temporaryEmployeeSalary"`
	VacationDaysPerYear     float64    `mapstructure:"vacationDaysPerYear" yaml:"vacationDaysPerYear" json:"vacationDaysPerYear"`
	VacationBonusRate       float64    `mapstructure:"vacationBonusRate" yaml:"vacationBonusRate" json:"vacationBonusRate"`
	SocialChargesRate       float64    `mapstructure:"socialChargesRate" yaml:"socialChargesRate" json:"socialChargesRate"`
	AnnualSalaryGrowthRate  float64    `mapstructure:"annualSalaryGrowthRate" yaml:"annualSalaryGrowthRate" json:"annualSalaryGrowthRate"`
	DailyMinimumWage        float64    `mapstructure:"dailyMinimumWage" yaml:"dailyMinimumWage" json:"dailyMinimumWage"`
}

// Position is a permanent payroll position.
type Position struct {
	ID            string  `mapstructure:"id" yaml:"id" json:"id"`
	Name          string  `mapstructure:"name" yaml:"name" json:"name"`
	MonthlySalary float64 `mapstructure:"monthlySalary" yaml:"monthlySalary" json:"monthlySalary"`
}

// TotalMonthly is the monthly cost of positions plus temporary staff.
func (p PayrollConfig) TotalMonthly() float64 {
	total := float64(p.TemporaryEmployees) * p.TemporaryEmployeeSalary
	for _, position := range p.Positions {
		total += position.MonthlySalary
	}
	return total
}

// WorkingCapitalConfig holds the receivable and payable policy in days.
type WorkingCapitalConfig struct {
	ReceivableDays float64 `mapstructure:"receivableDays" yaml:"receivableDays" json:"receivableDays"`
	PayableDays    float64 `mapstructure:"payableDays" yaml:"payableDays" json:"payableDays"`
}

// AdvancedConfig holds product-level modeling.
type AdvancedConfig struct {
	Products []Product `mapstructure:"products" yaml:"products,omitempty" json:"products,omitempty"`
	// ApplyPriceIncreases folds AnnualPriceIncreaseRates into the growth of
	// product sales revenue. Off by default.
	ApplyPriceIncreases bool `mapstructure:"applyPriceIncreases" yaml:"applyPriceIncreases,omitempty" json:"applyPriceIncreases,omitempty"`
}

// Product is a sold product with its bill of materials.
type Product struct {
	ID                            string    `mapstructure:"id" yaml:"id" json:"id"`
	Name                          string    `mapstructure:"name" yaml:"name" json:"name"`
	UnitsSoldPerMonth             float64   `mapstructure:"unitsSoldPerMonth" yaml:"unitsSoldPerMonth" json:"unitsSoldPerMonth"`
	MarkupPercent                 float64   `mapstructure:"markupPercent" yaml:"markupPercent" json:"markupPercent"`
	AnnualSalesGrowthRates        []float64 `mapstructure:"annualSalesGrowthRates" yaml:"annualSalesGrowthRates,omitempty,flow" json:"annualSalesGrowthRates,omitempty"`
	AnnualVariableCostGrowthRates []float64 `mapstructure:"annualVariableCostGrowthRates" yaml:"annualVariableCostGrowthRates,omitempty,flow" json:"annualVariableCostGrowthRates,omitempty"`
	AnnualPriceIncreaseRates      []float64 `mapstructure:"annualPriceIncreaseRates" yaml:"annualPriceIncreaseRates,omitempty,flow" json:"annualPriceIncreaseRates,omitempty"`
	BOMItems                      []BOMItem `mapstructure:"bomItems" yaml:"bomItems,omitempty" json:"bomItems,omitempty"`
}

// BOMItem is a bill-of-materials line. Raw materials use the batch fields,
// labor uses MinutesPerUnit.
type BOMItem struct {
	ID             string      `mapstructure:"id" yaml:"id" json:"id"`
	Name           string      `mapstructure:"name" yaml:"name" json:"name"`
	Kind           BOMItemKind `mapstructure:"kind" yaml:"kind" json:"kind"`
	BatchCost      float64     `mapstructure:"batchCost" yaml:"batchCost,omitempty" json:"batchCost,omitempty"`
	BatchQuantity  float64     `mapstructure:"batchQuantity" yaml:"batchQuantity,omitempty" json:"batchQuantity,omitempty"`
	BatchUnit      string      `mapstructure:"batchUnit" yaml:"batchUnit,omitempty" json:"batchUnit,omitempty"`
	BatchYield     float64     `mapstructure:"batchYield" yaml:"batchYield,omitempty" json:"batchYield,omitempty"`
	MinutesPerUnit float64     `mapstructure:"minutesPerUnit" yaml:"minutesPerUnit,omitempty" json:"minutesPerUnit,omitempty"`
}

// NetInitialInvestment sums every investment item.
func (p ProjectConfiguration) NetInitialInvestment() float64 {
	total := 0.0
	for _, item := range p.InvestmentItems {
		total += item.Amount
	}
	return total
}

// FindInvestmentItem returns the investment item with the given ID.
func (p ProjectConfiguration) FindInvestmentItem(id string) (InvestmentItem, bool) {
	for _, item := range p.InvestmentItems {
		if item.ID == id {
			return item, true
		}
	}
	return InvestmentItem{}, false
}

// FindLoan returns the loan with the given ID.
func (p ProjectConfiguration) FindLoan(id string) (Loan, bool) {
	for _, loan := range p.Loans {
		if loan.ID == id {
			return loan, true
		}
	}
	return Loan{}, false
}
