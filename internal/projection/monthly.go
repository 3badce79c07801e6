package projection

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/pkg/breakeven"
	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/datetime"
	"github.com/iwvelando/venture-forecast/pkg/depreciation"
	"github.com/iwvelando/venture-forecast/pkg/growth"
	"github.com/iwvelando/venture-forecast/pkg/loans"
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// engine holds everything precomputed once per projection. Multiplier,
// depreciation and schedule slices are parallel to the entities they were
// built from.
type engine struct {
	logger      *zap.Logger
	conf        config.ProjectConfiguration
	derived     DerivedData
	totalMonths int
	years       int
	startDate   string

	revenueMultipliers []growth.Series
	expenseMultipliers []growth.Series
	productSales       []growth.Series
	productCosts       []growth.Series
	productUnitCosts   []float64
	depreciation       []depreciation.Series
	schedules          []loans.Schedule
}

func newEngine(logger *zap.Logger, conf config.ProjectConfiguration, totalMonths, years int) *engine {
	e := &engine{
		logger:      logger,
		conf:        conf,
		totalMonths: totalMonths,
		years:       years,
		startDate:   conf.StartDate,
	}

	if e.startDate != "" {
		if _, err := datetime.ProjectPeriod(e.startDate, 0); err != nil {
			logger.Debug(fmt.Sprintf("ignoring unparseable start date %s", e.startDate),
				zap.String("op", "projection.newEngine"),
				zap.Error(err),
			)
			e.startDate = ""
		}
	}

	e.derived = Expand(conf, years)

	for _, revenue := range e.derived.RecurringRevenues {
		e.revenueMultipliers = append(e.revenueMultipliers, growth.AnnualMultipliers(revenue.AnnualGrowthRates, years))
	}
	for _, expense := range e.derived.RecurringExpenses {
		e.expenseMultipliers = append(e.expenseMultipliers, growth.AnnualMultipliers(expense.AnnualGrowthRates, years))
	}
	for k, product := range conf.Advanced.Products {
		e.productSales = append(e.productSales, growth.AnnualMultipliers(product.AnnualSalesGrowthRates, years))
		e.productCosts = append(e.productCosts, growth.AnnualMultipliers(product.AnnualVariableCostGrowthRates, years))
		e.productUnitCosts = append(e.productUnitCosts, e.derived.UnitCosts.Total(k))
	}

	for _, asset := range conf.DepreciableAssets {
		e.depreciation = append(e.depreciation, depreciation.Schedule(asset.ToAsset(), years))
	}

	generator := loans.NewAmortizationScheduleGenerator(logger)
	for _, loan := range conf.Loans {
		e.schedules = append(e.schedules, generator.GenerateSchedule(loan.ToLoanConfig()))
	}

	return e
}

func overridesActive(overrides []float64) bool {
	return len(overrides) == constants.OverrideMonths
}

// streamBase is the amount later years grow from: the year-1 override
// average when overrides are active, else the configured initial amount.
func streamBase(initial float64, overrides []float64) float64 {
	if overridesActive(overrides) {
		return mathutil.Average(overrides)
	}
	return initial
}

func (e *engine) period(monthIndex int) string {
	label, err := datetime.ProjectPeriod(e.startDate, monthIndex)
	if err != nil {
		label, _ = datetime.ProjectPeriod("", monthIndex)
	}
	return label
}

func (e *engine) sales(yearIndex, monthInYear int) float64 {
	total := 0.0
	for k, revenue := range e.derived.RecurringRevenues {
		if yearIndex == 0 && overridesActive(revenue.MonthlyOverrides) {
			total += revenue.MonthlyOverrides[monthInYear]
			continue
		}
		total += streamBase(revenue.InitialMonthlyAmount, revenue.MonthlyOverrides) * e.revenueMultipliers[k].At(yearIndex)
	}
	return total
}

// expenses splits recurring expenses into fixed and variable costs. Anything
// not explicitly fixed is treated as variable.
func (e *engine) expenses(monthIndex, yearIndex, monthInYear int, inflation float64) (fixed, variable float64) {
	for k, expense := range e.derived.RecurringExpenses {
		var amount float64
		if yearIndex == 0 && overridesActive(expense.MonthlyOverrides) {
			amount = expense.MonthlyOverrides[monthInYear]
		} else {
			multiplier := e.expenseMultipliers[k].At(yearIndex)
			if expense.GrowthType == config.MonthlyGrowth {
				multiplier = growth.MonthlyCompounding(expense.MonthlyGrowthRate, monthIndex)
			}
			amount = streamBase(expense.InitialMonthlyAmount, expense.MonthlyOverrides) * multiplier * inflation
		}

		if expense.Category == config.FixedExpense {
			fixed += amount
		} else {
			variable += amount
		}
	}
	return fixed, variable
}

// productVariableCosts is the variable cost of producing each product's units. Cost
// growth and inflation compound the unit cost; sales growth scales volume.
func (e *engine) productVariableCosts(yearIndex int, inflation float64) float64 {
	total := 0.0
	for k, product := range e.conf.Advanced.Products {
		unitCost := e.productUnitCosts[k] * e.productCosts[k].At(yearIndex) * inflation
		total += product.UnitsSoldPerMonth * unitCost * e.productSales[k].At(yearIndex)
	}
	return total
}

func (e *engine) monthlyDepreciation(yearIndex int) float64 {
	total := 0.0
	for _, series := range e.depreciation {
		total += series.At(yearIndex) / constants.MonthsPerYear
	}
	return total
}

func (e *engine) debtService(monthIndex int) (interest, principal float64) {
	for _, schedule := range e.schedules {
		interest += schedule.InterestAt(monthIndex)
		principal += schedule.PrincipalAt(monthIndex)
	}
	return interest, principal
}

// projectMonth computes the statements for the 0-based project month i.
func (e *engine) projectMonth(i int) MonthlyRecord {
	yearIndex := i / constants.MonthsPerYear
	monthInYear := i % constants.MonthsPerYear
	inflation := mathutil.CompoundFactor(e.conf.InflationRate, yearIndex)

	m := MonthlyRecord{
		Year:   yearIndex + 1,
		Month:  monthInYear + 1,
		Period: e.period(i),
	}

	m.Sales = e.sales(yearIndex, monthInYear)
	m.FixedCosts, m.VariableCosts = e.expenses(i, yearIndex, monthInYear, inflation)
	m.VariableCosts += e.productVariableCosts(yearIndex, inflation)

	m.GrossProfit = m.Sales - m.VariableCosts
	m.Depreciation = e.monthlyDepreciation(yearIndex)
	m.EBITDA = m.GrossProfit - m.FixedCosts
	m.EBIT = m.EBITDA - m.Depreciation
	m.Interest, m.PrincipalRepayment = e.debtService(i)
	m.EBT = m.EBIT - m.Interest
	m.Taxes = taxes(m.EBT, e.conf.TaxRate)
	m.NetIncome = m.EBT - m.Taxes
	m.NetCashFlow = m.NetIncome + m.Depreciation - m.PrincipalRepayment

	point := breakeven.Compute(m.Sales, m.VariableCosts, m.FixedCosts)
	m.BreakEvenAmount = point.Amount
	m.BreakEvenPercent = point.Percent

	m.Benefits = m.Sales
	m.Costs = m.FixedCosts + m.VariableCosts
	m.NetBenefit = m.Benefits - m.Costs

	return m
}

// taxes are never negative: losses carry no tax benefit.
func taxes(ebt, ratePercent float64) float64 {
	tax := mathutil.ApplyPercentage(ebt, ratePercent)
	if tax < 0 {
		return 0
	}
	return tax
}

func (e *engine) projectMonths() []MonthlyRecord {
	months := make([]MonthlyRecord, e.totalMonths)
	for i := range months {
		months[i] = e.projectMonth(i)
	}
	return months
}
