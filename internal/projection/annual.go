package projection

import (
	"github.com/iwvelando/venture-forecast/pkg/breakeven"
	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// aggregate rolls the monthly records up into one summary per project year.
// The final year may hold fewer than twelve months.
func (e *engine) aggregate(months []MonthlyRecord) []AnnualSummary {
	summaries := make([]AnnualSummary, e.years)
	for y := range summaries {
		start := y * constants.MonthsPerYear
		end := min(start+constants.MonthsPerYear, len(months))

		s := AnnualSummary{Year: y + 1, Months: end - start}
		is := &s.IncomeStatement
		for _, m := range months[start:end] {
			is.Sales += m.Sales
			is.VariableCosts += m.VariableCosts
			is.FixedCosts += m.FixedCosts
			is.GrossProfit += m.GrossProfit
			is.EBITDA += m.EBITDA
			is.Depreciation += m.Depreciation
			is.EBIT += m.EBIT
			is.Interest += m.Interest
			is.EBT += m.EBT
			is.Taxes += m.Taxes
			is.NetIncome += m.NetIncome
		}

		principal := 0.0
		for _, schedule := range e.schedules {
			principal += schedule.PrincipalForRange(start, start+constants.MonthsPerYear)
		}

		salvage := 0.0
		if y == e.years-1 {
			for _, asset := range e.conf.DepreciableAssets {
				salvage += asset.SalvageValue
			}
		}

		s.CashFlow = CashFlow{
			NetIncome:          is.NetIncome,
			Depreciation:       is.Depreciation,
			PrincipalRepayment: principal,
			SalvageValue:       salvage,
			NetCashFlow:        is.NetIncome + is.Depreciation - principal + salvage,
		}

		point := breakeven.Compute(is.Sales, is.VariableCosts, is.FixedCosts)
		s.BreakEven = BreakEven{
			Sales:         is.Sales,
			VariableCosts: is.VariableCosts,
			FixedCosts:    is.FixedCosts,
			Amount:        point.Amount,
			Percent:       point.Percent,
		}

		costs := is.FixedCosts + is.VariableCosts
		s.CostBenefit = CostBenefit{
			Benefits:   is.Sales,
			Costs:      costs,
			NetBenefit: is.Sales - costs,
		}

		summaries[y] = s
	}
	return summaries
}

// annualCashFlowSeries prepends the initial investment as year 0 and keeps a
// running cumulative total.
func annualCashFlowSeries(netInitialInvestment float64, summaries []AnnualSummary) []CashFlowPoint {
	cumulative := -netInitialInvestment
	series := make([]CashFlowPoint, 0, len(summaries)+1)
	series = append(series, CashFlowPoint{Year: 0, NetCashFlow: -netInitialInvestment, CumulativeCashFlow: cumulative})
	for _, s := range summaries {
		cumulative += s.CashFlow.NetCashFlow
		series = append(series, CashFlowPoint{Year: s.Year, NetCashFlow: s.CashFlow.NetCashFlow, CumulativeCashFlow: cumulative})
	}
	return series
}

// monthlyCashFlowSeries accumulates monthly net cash flow starting from the
// initial investment outflow.
func monthlyCashFlowSeries(netInitialInvestment float64, months []MonthlyRecord) []CashFlowPoint {
	cumulative := -netInitialInvestment
	series := make([]CashFlowPoint, len(months))
	for i, m := range months {
		cumulative += m.NetCashFlow
		series[i] = CashFlowPoint{
			Year:               m.Year,
			Month:              m.Month,
			Period:             m.Period,
			NetCashFlow:        m.NetCashFlow,
			CumulativeCashFlow: cumulative,
		}
	}
	return series
}

// costBenefitAccumulator seeds cumulative costs with the initial investment.
type costBenefitAccumulator struct {
	benefits float64
	costs    float64
}

func (a *costBenefitAccumulator) add(point CostBenefitPoint) CostBenefitPoint {
	a.benefits += point.Benefits
	a.costs += point.Costs
	point.CumulativeBenefits = a.benefits
	point.CumulativeCosts = a.costs
	point.CumulativeNetBenefit = a.benefits - a.costs
	return point
}

func costBenefitSeries(netInitialInvestment float64, summaries []AnnualSummary, months []MonthlyRecord) CostBenefitSeries {
	var series CostBenefitSeries

	annual := costBenefitAccumulator{costs: netInitialInvestment}
	series.Annual = make([]CostBenefitPoint, len(summaries))
	for i, s := range summaries {
		series.Annual[i] = annual.add(CostBenefitPoint{
			Year:       s.Year,
			Benefits:   s.CostBenefit.Benefits,
			Costs:      s.CostBenefit.Costs,
			NetBenefit: s.CostBenefit.NetBenefit,
		})
	}

	monthly := costBenefitAccumulator{costs: netInitialInvestment}
	series.Monthly = make([]CostBenefitPoint, len(months))
	for i, m := range months {
		series.Monthly[i] = monthly.add(CostBenefitPoint{
			Year:       m.Year,
			Month:      m.Month,
			Period:     m.Period,
			Benefits:   m.Benefits,
			Costs:      m.Costs,
			NetBenefit: m.NetBenefit,
		})
	}

	return series
}
