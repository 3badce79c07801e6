package projection

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/pkg/investment"
	"github.com/iwvelando/venture-forecast/pkg/loans"
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// IncrementalCashFlows builds the standalone cash-flow vector of one
// investment. Year 0 is the loan principal less the investment amount; each
// later year takes impactPercentage of the project's annual net cash flow
// less that year's straight-line loan service. ok is false when no
// investment is selected or the investment does not exist. An unknown loan
// ID is treated as no loan.
func IncrementalCashFlows(conf config.ProjectConfiguration, summaries []AnnualSummary, inc *config.IncrementalConfig) (flows []float64, ok bool) {
	if inc == nil || inc.InvestmentID == "" {
		return nil, false
	}
	item, found := conf.FindInvestmentItem(inc.InvestmentID)
	if !found {
		return nil, false
	}

	var loan *loans.LoanConfig
	if inc.LoanID != "" {
		if l, found := conf.FindLoan(inc.LoanID); found {
			lc := l.ToLoanConfig()
			loan = &lc
		}
	}

	initial := -item.Amount
	if loan != nil {
		initial += loan.Principal
	}

	impact := mathutil.PercentToDecimal(inc.ImpactPercentage)
	flows = make([]float64, 0, len(summaries)+1)
	flows = append(flows, initial)
	for yearIndex, s := range summaries {
		flow := s.CashFlow.NetCashFlow * impact
		if loan != nil {
			principal, interest := loans.StraightLineServiceForYear(*loan, yearIndex)
			flow -= principal + interest
		}
		flows = append(flows, flow)
	}
	return flows, true
}

// Incremental computes the IRR and NPV of one investment's incremental
// cash flows. Both are nil when no analysis applies.
func Incremental(logger *zap.Logger, conf config.ProjectConfiguration, summaries []AnnualSummary, inc *config.IncrementalConfig) (irr, npv *float64) {
	if logger == nil {
		logger = zap.NewNop()
	}

	flows, ok := IncrementalCashFlows(conf, summaries, inc)
	if !ok {
		if inc != nil && inc.InvestmentID != "" {
			logger.Debug(fmt.Sprintf("investment %s not found, skipping incremental analysis", inc.InvestmentID),
				zap.String("op", "projection.Incremental"),
			)
		}
		return nil, nil
	}

	value := investment.NPV(flows, conf.DiscountRate)
	return investment.IRR(flows), &value
}
