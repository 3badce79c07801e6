// Package projection computes monthly and annual financial statements and
// investment metrics for a project configuration.
package projection

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/loans"
	"go.uber.org/zap"
)

// Compute runs the full projection. It only fails when the horizon cannot be
// determined; degenerate financial inputs resolve to sentinel values. conf
// is never modified and no state is kept between calls.
func Compute(logger *zap.Logger, conf config.ProjectConfiguration, unit config.DurationUnit, inc *config.IncrementalConfig) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	totalMonths, err := unit.TotalMonths(conf.ProjectDuration)
	if err != nil {
		return nil, fmt.Errorf("unable to determine project horizon: %w", err)
	}
	if totalMonths <= 0 {
		return nil, fmt.Errorf("project horizon must be positive, got %d months", totalMonths)
	}
	years := (totalMonths + constants.MonthsPerYear - 1) / constants.MonthsPerYear

	e := newEngine(logger, conf, totalMonths, years)
	months := e.projectMonths()
	summaries := e.aggregate(months)
	net := e.derived.NetInitialInvestment

	annualSeries := annualCashFlowSeries(net, summaries)
	metrics, contributions := computeMetrics(configRates{
		discountRate: conf.DiscountRate,
		minimumIRR:   conf.MinimumAcceptableIRR,
	}, net, summaries, annualSeries)
	metrics.IncrementalIRR, metrics.IncrementalNPV = Incremental(logger, conf, summaries, inc)

	schedules := make(map[string]loans.Schedule, len(conf.Loans))
	for i, loan := range conf.Loans {
		schedules[loan.ID] = e.schedules[i]
	}

	logger.Debug(fmt.Sprintf("computed %d month projection over %d years", totalMonths, years),
		zap.String("op", "projection.Compute"),
		zap.Float64("netInitialInvestment", net),
		zap.Float64("npv", metrics.NPV),
	)

	return &Result{
		NetInitialInvestment:  net,
		TotalMonths:           totalMonths,
		MonthlyBreakdown:      months,
		AnnualSummaries:       summaries,
		AnnualCashFlowSeries:  annualSeries,
		MonthlyCashFlowSeries: monthlyCashFlowSeries(net, months),
		CostBenefitSeries:     costBenefitSeries(net, summaries, months),
		FinancialMetrics:      metrics,
		NPVContributions:      contributions,
		LoanSchedules:         schedules,
		DerivedData:           e.derived,
	}, nil
}
