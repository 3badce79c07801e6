// Package optimizer solves for the value of one configuration input at which
// a project just meets its NPV or IRR goal.
package optimizer

import (
	"fmt"

	"github.com/iwvelando/venture-forecast/internal/config"
	"github.com/iwvelando/venture-forecast/internal/projection"
	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/format"
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
	"github.com/iwvelando/venture-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Runner evaluates goal-seek directives against one project. The project is
// never modified; every evaluation computes a modified copy.
type Runner struct {
	logger *zap.Logger
	conf   config.ProjectConfiguration
	unit   config.DurationUnit
}

type evaluation struct {
	value     float64
	achieved  float64
	threshold float64
}

func (e evaluation) feasible() bool {
	return e.achieved >= e.threshold
}

func (e evaluation) headroom() float64 {
	return e.achieved - e.threshold
}

// NewRunner constructs a Runner for the provided project.
func NewRunner(logger *zap.Logger, conf config.ProjectConfiguration, unit config.DurationUnit) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	months, err := unit.TotalMonths(conf.ProjectDuration)
	if err != nil {
		return nil, fmt.Errorf("unable to determine project horizon: %w", err)
	}
	if months <= 0 {
		return nil, fmt.Errorf("project horizon must be positive, got %d months", months)
	}

	return &Runner{logger: logger, conf: conf, unit: unit}, nil
}

// Run executes the directives in order and returns one summary per directive.
func (r *Runner) Run(directives []config.GoalSeekConfig) ([]optimization.Summary, error) {
	summaries := make([]optimization.Summary, 0, len(directives))

	for i := range directives {
		directive := directives[i]
		if directive.Min != nil {
			v := *directive.Min
			directive.Min = &v
		}
		if directive.Max != nil {
			v := *directive.Max
			directive.Max = &v
		}
		if err := directive.Validate(); err != nil {
			return nil, fmt.Errorf("goal seek %d: %w", i+1, err)
		}

		summary, err := r.seek(directive)
		if err != nil {
			return nil, fmt.Errorf("goal seek %d: %w", i+1, err)
		}
		summaries = append(summaries, summary)

		r.logger.Info("goal seek finished",
			zap.String("op", "optimizer.Run"),
			zap.String("subject", summary.Subject),
			zap.String("target", summary.TargetID),
			zap.String("field", summary.Field),
			zap.String("goal", summary.Goal),
			zap.Float64("original", summary.Original),
			zap.Float64("value", summary.Value),
			zap.Float64("headroom", summary.Headroom),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return summaries, nil
}

// seek bisects between the bound where the goal is easiest to meet and the
// bound where it is hardest, keeping the easy end feasible.
func (r *Runner) seek(directive config.GoalSeekConfig) (optimization.Summary, error) {
	name, original, notes, err := fieldValue(r.conf, directive)
	if err != nil {
		return optimization.Summary{}, err
	}

	summary := optimization.Summary{
		Subject:    directive.Subject,
		TargetID:   directive.ID,
		TargetName: name,
		Field:      directive.Field,
		Goal:       directive.Goal,
		Original:   original,
		Notes:      notes,
	}

	easy, hard := *directive.Max, *directive.Min
	if !directive.Increasing() {
		easy, hard = hard, easy
	}

	easyEval, err := r.evaluate(directive, easy)
	if err != nil {
		return optimization.Summary{}, err
	}
	if !easyEval.feasible() {
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"unable to reach %s %s within bounds %.2f to %.2f",
			directive.Goal, goalDisplay(directive.Goal, easyEval.threshold), *directive.Min, *directive.Max,
		))
		return finish(summary, easyEval, 0, false), nil
	}

	hardEval, err := r.evaluate(directive, hard)
	if err != nil {
		return optimization.Summary{}, err
	}
	if hardEval.feasible() {
		summary.Notes = append(summary.Notes, "goal already met across the whole range")
		return finish(summary, hardEval, 0, true), nil
	}

	iterations := 0
	for iterations < directive.MaxIterations && !mathutil.WithinTolerance(easy, hard, directive.Tolerance) {
		mid := hard + (easy-hard)/2
		evalMid, err := r.evaluate(directive, mid)
		if err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		if evalMid.feasible() {
			easy, easyEval = mid, evalMid
		} else {
			hard = mid
		}
	}

	return finish(summary, easyEval, iterations, mathutil.WithinTolerance(easy, hard, directive.Tolerance)), nil
}

func finish(summary optimization.Summary, eval evaluation, iterations int, converged bool) optimization.Summary {
	summary.Value = eval.value
	summary.Threshold = eval.threshold
	summary.Achieved = eval.achieved
	summary.Headroom = eval.headroom()
	summary.Iterations = iterations
	summary.Converged = converged
	return summary
}

func (r *Runner) evaluate(directive config.GoalSeekConfig, value float64) (evaluation, error) {
	conf, err := withFieldValue(r.conf, directive, value)
	if err != nil {
		return evaluation{}, err
	}

	result, err := projection.Compute(r.logger, conf, r.unit, nil)
	if err != nil {
		return evaluation{}, fmt.Errorf("evaluating %s %s at %.4f: %w", directive.Subject, directive.ID, value, err)
	}

	metrics := result.FinancialMetrics
	if directive.Goal == config.GoalIRR {
		achieved := constants.IRRLowerBound * constants.PercentageMultiplier
		if metrics.IRR != nil {
			achieved = *metrics.IRR
		}
		return evaluation{value: value, achieved: achieved, threshold: conf.MinimumAcceptableIRR}, nil
	}
	return evaluation{value: value, achieved: metrics.NPV}, nil
}

func goalDisplay(goal string, threshold float64) string {
	if goal == config.GoalIRR {
		return format.OptionalPercent(&threshold)
	}
	return format.Currency(threshold)
}

// fieldValue returns the display name and current value of the directive's
// field, with notes about inputs that blunt its effect.
func fieldValue(conf config.ProjectConfiguration, directive config.GoalSeekConfig) (string, float64, []string, error) {
	switch directive.Subject {
	case config.SubjectProduct:
		for _, product := range conf.Advanced.Products {
			if product.ID != directive.ID {
				continue
			}
			if directive.Field == config.FieldMarkupPercent {
				return product.Name, product.MarkupPercent, nil, nil
			}
			return product.Name, product.UnitsSoldPerMonth, nil, nil
		}
	case config.SubjectRevenue:
		for _, revenue := range conf.RecurringRevenues {
			if revenue.ID == directive.ID {
				return revenue.Name, revenue.InitialMonthlyAmount, overrideNotes(len(revenue.MonthlyOverrides)), nil
			}
		}
	case config.SubjectExpense:
		for _, expense := range conf.RecurringExpenses {
			if expense.ID == directive.ID {
				return expense.Name, expense.InitialMonthlyAmount, overrideNotes(len(expense.MonthlyOverrides)), nil
			}
		}
	case config.SubjectLoan:
		if loan, ok := conf.FindLoan(directive.ID); ok {
			return loan.Name, loan.AnnualInterestRate, nil, nil
		}
	}
	return "", 0, nil, fmt.Errorf("%s %q not found", directive.Subject, directive.ID)
}

func overrideNotes(count int) []string {
	if count != constants.OverrideMonths {
		return nil
	}
	return []string{"monthly overrides are active, so the projection uses their average instead of this amount"}
}

func withFieldValue(conf config.ProjectConfiguration, directive config.GoalSeekConfig, value float64) (config.ProjectConfiguration, error) {
	switch directive.Subject {
	case config.SubjectProduct:
		for _, product := range conf.Advanced.Products {
			if product.ID != directive.ID {
				continue
			}
			updated := product.Clone()
			if directive.Field == config.FieldMarkupPercent {
				updated.MarkupPercent = value
			} else {
				updated.UnitsSoldPerMonth = value
			}
			return conf.WithProduct(updated), nil
		}
	case config.SubjectRevenue:
		for _, revenue := range conf.RecurringRevenues {
			if revenue.ID == directive.ID {
				updated := revenue.Clone()
				updated.InitialMonthlyAmount = value
				return conf.WithRecurringRevenue(updated), nil
			}
		}
	case config.SubjectExpense:
		for _, expense := range conf.RecurringExpenses {
			if expense.ID == directive.ID {
				updated := expense.Clone()
				updated.InitialMonthlyAmount = value
				return conf.WithRecurringExpense(updated), nil
			}
		}
	case config.SubjectLoan:
		if loan, ok := conf.FindLoan(directive.ID); ok {
			updated := loan
			updated.AnnualInterestRate = value
			return conf.WithLoan(updated), nil
		}
	}
	return conf, fmt.Errorf("%s %q not found", directive.Subject, directive.ID)
}
