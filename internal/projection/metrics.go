package projection

import (
	"github.com/iwvelando/venture-forecast/pkg/investment"
)

type configRates struct {
	discountRate float64
	minimumIRR   float64
}

// computeMetrics derives the investment appraisal from the annual series.
func computeMetrics(rates configRates, netInitialInvestment float64, summaries []AnnualSummary, series []CashFlowPoint) (FinancialMetrics, []NPVContribution) {
	flows := make([]float64, len(series))
	cumulative := make([]float64, len(series))
	for i, point := range series {
		flows[i] = point.NetCashFlow
		cumulative[i] = point.CumulativeCashFlow
	}

	benefits := make([]float64, len(summaries))
	costs := make([]float64, len(summaries))
	netIncomes := make([]float64, len(summaries))
	for i, s := range summaries {
		benefits[i] = s.CostBenefit.Benefits
		costs[i] = s.CostBenefit.Costs
		netIncomes[i] = s.IncomeStatement.NetIncome
	}

	metrics := FinancialMetrics{
		NPV:              investment.NPV(flows, rates.discountRate),
		IRR:              investment.IRR(flows),
		Payback:          investment.Payback(cumulative, flows),
		CostBenefitRatio: investment.CostBenefitRatio(benefits, costs, netInitialInvestment, rates.discountRate),
		ROI:              investment.ROI(netIncomes, netInitialInvestment),
	}
	if metrics.IRR != nil {
		metrics.MeetsMinimumIRR = *metrics.IRR >= rates.minimumIRR
	}

	discounted := investment.DiscountedFlows(flows, rates.discountRate)
	contributions := make([]NPVContribution, len(discounted))
	for i, d := range discounted {
		contributions[i] = NPVContribution{Year: series[i].Year, DiscountedCashFlow: d}
	}

	return metrics, contributions
}
