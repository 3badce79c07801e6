package projection

import (
	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/costing"
	"github.com/iwvelando/venture-forecast/pkg/growth"
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
)

const (
	// ProductRevenuePrefix prefixes the ID of revenues derived from products.
	ProductRevenuePrefix = "product:"
	// PayrollExpenseID is the ID of the expense derived from payroll.
	PayrollExpenseID = "payroll"
)

// DerivedData holds the entities computed from the configuration before the
// monthly loop runs.
type DerivedData struct {
	UnitCosts            costing.UnitCosts         `json:"unitCosts"`
	InvestmentItems      []config.InvestmentItem   `json:"investmentItems"`
	RecurringRevenues    []config.RecurringRevenue `json:"recurringRevenues"`
	RecurringExpenses    []config.RecurringExpense `json:"recurringExpenses"`
	NetInitialInvestment float64                   `json:"netInitialInvestment"`
}

// Expand resolves BOM unit costs and merges revenues derived from products
// and the expense derived from payroll with the manually entered ones. years
// is the number of project years, used when combining price increases into
// product revenue growth.
func Expand(conf config.ProjectConfiguration, years int) DerivedData {
	unitCosts := costing.Resolve(conf.Advanced.CostingProducts(), conf.Payroll.DailyMinimumWage)

	revenues := make([]config.RecurringRevenue, 0, len(conf.RecurringRevenues)+len(conf.Advanced.Products))
	for _, revenue := range conf.RecurringRevenues {
		revenues = append(revenues, revenue.Clone())
	}
	for k, product := range conf.Advanced.Products {
		revenues = append(revenues, productRevenue(product, unitCosts.Total(k), conf.Advanced.ApplyPriceIncreases, years))
	}

	expenses := make([]config.RecurringExpense, 0, len(conf.RecurringExpenses)+1)
	for _, expense := range conf.RecurringExpenses {
		expenses = append(expenses, expense.Clone())
	}
	if payroll, ok := payrollExpense(conf.Payroll); ok {
		expenses = append(expenses, payroll)
	}

	items := make([]config.InvestmentItem, len(conf.InvestmentItems))
	copy(items, conf.InvestmentItems)

	return DerivedData{
		UnitCosts:            unitCosts,
		InvestmentItems:      items,
		RecurringRevenues:    revenues,
		RecurringExpenses:    expenses,
		NetInitialInvestment: conf.NetInitialInvestment(),
	}
}

func productRevenue(product config.Product, bomCost float64, applyPriceIncreases bool, years int) config.RecurringRevenue {
	price := bomCost * (1 + mathutil.PercentToDecimal(product.MarkupPercent))

	rates := append([]float64(nil), product.AnnualSalesGrowthRates...)
	if applyPriceIncreases {
		rates = growth.CombineRates(product.AnnualSalesGrowthRates, product.AnnualPriceIncreaseRates, years)
	}

	return config.RecurringRevenue{
		ID:                   ProductRevenuePrefix + product.ID,
		Name:                 "Sales of " + product.Name,
		InitialMonthlyAmount: product.UnitsSoldPerMonth * price,
		AnnualGrowthRates:    rates,
		IsCalculated:         true,
	}
}

func payrollExpense(payroll config.PayrollConfig) (config.RecurringExpense, bool) {
	total := payroll.TotalMonthly()
	if total <= 0 {
		return config.RecurringExpense{}, false
	}

	vacationPay := (total / constants.DaysPerMonth) * payroll.VacationDaysPerYear * mathutil.PercentToDecimal(payroll.VacationBonusRate)
	socialCharges := mathutil.ApplyPercentage(total, payroll.SocialChargesRate)

	return config.RecurringExpense{
		ID:                   PayrollExpenseID,
		Name:                 "Payroll (calculated)",
		Category:             config.FixedExpense,
		InitialMonthlyAmount: total + vacationPay/constants.MonthsPerYear + socialCharges,
		GrowthType:           config.AnnualGrowth,
		AnnualGrowthRates:    []float64{payroll.AnnualSalaryGrowthRate},
		IsCalculated:         true,
	}, true
}
