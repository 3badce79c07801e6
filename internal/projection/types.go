package projection

import (
	"github.com/iwvelando/venture-forecast/pkg/breakeven"
	"github.com/iwvelando/venture-forecast/pkg/investment"
	"github.com/iwvelando/venture-forecast/pkg/loans"
)

// MonthlyRecord holds the statements of one project month.
type MonthlyRecord struct {
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Period             string          `json:"period"`
	Sales              float64         `json:"sales"`
	VariableCosts      float64         `json:"variableCosts"`
	FixedCosts         float64         `json:"fixedCosts"`
	GrossProfit        float64         `json:"grossProfit"`
	Depreciation       float64         `json:"depreciation"`
	EBITDA             float64         `json:"ebitda"`
	EBIT               float64         `json:"ebit"`
	Interest           float64         `json:"interest"`
	PrincipalRepayment float64         `json:"principalRepayment"`
	EBT                float64         `json:"ebt"`
	Taxes              float64         `json:"taxes"`
	NetIncome          float64         `json:"netIncome"`
	NetCashFlow        float64         `json:"netCashFlow"`
	BreakEvenAmount    breakeven.Value `json:"breakEvenAmount"`
	BreakEvenPercent   breakeven.Value `json:"breakEvenPercent"`
	Benefits           float64         `json:"benefits"`
	Costs              float64         `json:"costs"`
	NetBenefit         float64         `json:"netBenefit"`
}

// IncomeStatement is the annual roll-up of the monthly statements.
type IncomeStatement struct {
	Sales         float64 `json:"sales"`
	VariableCosts float64 `json:"variableCosts"`
	FixedCosts    float64 `json:"fixedCosts"`
	GrossProfit   float64 `json:"grossProfit"`
	EBITDA        float64 `json:"ebitda"`
	Depreciation  float64 `json:"depreciation"`
	EBIT          float64 `json:"ebit"`
	Interest      float64 `json:"interest"`
	EBT           float64 `json:"ebt"`
	Taxes         float64 `json:"taxes"`
	NetIncome     float64 `json:"netIncome"`
}

// CashFlow is the annual cash-flow statement.
type CashFlow struct {
	NetIncome          float64 `json:"netIncome"`
	Depreciation       float64 `json:"depreciation"`
	PrincipalRepayment float64 `json:"principalRepayment"`
	SalvageValue       float64 `json:"salvageValue"`
	NetCashFlow        float64 `json:"netCashFlow"`
}

// BreakEven is the break-even point recomputed from a year's totals.
type BreakEven struct {
	Sales         float64         `json:"sales"`
	VariableCosts float64         `json:"variableCosts"`
	FixedCosts    float64         `json:"fixedCosts"`
	Amount        breakeven.Value `json:"amount"`
	Percent       breakeven.Value `json:"percent"`
}

// CostBenefit compares a period's sales with its operating costs.
type CostBenefit struct {
	Benefits   float64 `json:"benefits"`
	Costs      float64 `json:"costs"`
	NetBenefit float64 `json:"netBenefit"`
}

// AnnualSummary groups the statements of one project year.
type AnnualSummary struct {
	Year            int             `json:"year"`
	Months          int             `json:"months"`
	IncomeStatement IncomeStatement `json:"incomeStatement"`
	CashFlow        CashFlow        `json:"cashFlow"`
	BreakEven       BreakEven       `json:"breakEven"`
	CostBenefit     CostBenefit     `json:"costBenefit"`
}

// CashFlowPoint is one entry of a cash-flow series. Year 0 of the annual
// series is the initial investment.
type CashFlowPoint struct {
	Year               int     `json:"year"`
	Month              int     `json:"month,omitempty"`
	Period             string  `json:"period,omitempty"`
	NetCashFlow        float64 `json:"netCashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
}

// CostBenefitPoint is one entry of a cumulative cost-benefit series.
type CostBenefitPoint struct {
	Year                 int     `json:"year"`
	Month                int     `json:"month,omitempty"`
	Period               string  `json:"period,omitempty"`
	Benefits             float64 `json:"benefits"`
	Costs                float64 `json:"costs"`
	NetBenefit           float64 `json:"netBenefit"`
	CumulativeBenefits   float64 `json:"cumulativeBenefits"`
	CumulativeCosts      float64 `json:"cumulativeCosts"`
	CumulativeNetBenefit float64 `json:"cumulativeNetBenefit"`
}

// CostBenefitSeries holds the annual and monthly cost-benefit series.
type CostBenefitSeries struct {
	Annual  []CostBenefitPoint `json:"annual"`
	Monthly []CostBenefitPoint `json:"monthly"`
}

// NPVContribution is one year's cash flow discounted to present value.
type NPVContribution struct {
	Year               int     `json:"year"`
	DiscountedCashFlow float64 `json:"discountedCashFlow"`
}

// FinancialMetrics summarizes the investment appraisal.
type FinancialMetrics struct {
	NPV              float64                  `json:"npv"`
	IRR              *float64                 `json:"irr"`
	Payback          investment.PaybackPeriod `json:"paybackPeriod"`
	CostBenefitRatio float64                  `json:"costBenefitRatio"`
	ROI              *float64                 `json:"roi"`
	MeetsMinimumIRR  bool                     `json:"meetsMinimumIRR"`
	IncrementalIRR   *float64                 `json:"incrementalIRR,omitempty"`
	IncrementalNPV   *float64                 `json:"incrementalNPV,omitempty"`
}

// Result is the full output of a projection.
type Result struct {
	NetInitialInvestment  float64                   `json:"netInitialInvestment"`
	TotalMonths           int                       `json:"totalMonths"`
	MonthlyBreakdown      []MonthlyRecord           `json:"monthlyBreakdown"`
	AnnualSummaries       []AnnualSummary           `json:"annualSummaries"`
	AnnualCashFlowSeries  []CashFlowPoint           `json:"annualCashFlowSeries"`
	MonthlyCashFlowSeries []CashFlowPoint           `json:"monthlyCashFlowSeries"`
	CostBenefitSeries     CostBenefitSeries         `json:"costBenefitSeries"`
	FinancialMetrics      FinancialMetrics          `json:"financialMetrics"`
	NPVContributions      []NPVContribution         `json:"npvContributions"`
	LoanSchedules         map[string]loans.Schedule `json:"loanAmortizationSchedules"`
	DerivedData           DerivedData               `json:"derivedData"`
}

// AnnualCashFlows returns the vector fed to NPV and IRR: the initial
// investment outflow followed by each year's net cash flow.
func (r *Result) AnnualCashFlows() []float64 {
	flows := make([]float64, len(r.AnnualCashFlowSeries))
	for i, point := range r.AnnualCashFlowSeries {
		flows[i] = point.NetCashFlow
	}
	return flows
}
