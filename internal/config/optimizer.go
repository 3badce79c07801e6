package config

import (
	"fmt"
	"strings"
)

// Goal-seek goals.
const (
	GoalNPV = "npv" // NPV at the discount rate reaches zero
	GoalIRR = "irr" // IRR reaches the minimum acceptable IRR
)

// Goal-seek subjects.
const (
	SubjectProduct = "product"
	SubjectRevenue = "revenue"
	SubjectExpense = "expense"
	SubjectLoan    = "loan"
)

// Goal-seek fields.
const (
	FieldUnitsSoldPerMonth    = "unitsSoldPerMonth"
	FieldMarkupPercent        = "markupPercent"
	FieldInitialMonthlyAmount = "initialMonthlyAmount"
	FieldAnnualInterestRate   = "annualInterestRate"
)

const (
	defaultGoalSeekTolerance     = 0.01
	defaultGoalSeekMaxIterations = 100
)

// GoalSeekConfig asks for the value of one numeric input at which the
// project just meets Goal, searched within [Min, Max].
type GoalSeekConfig struct {
	Goal          string   `mapstructure:"goal" yaml:"goal,omitempty" json:"goal,omitempty"`
	Subject       string   `mapstructure:"subject" yaml:"subject" json:"subject"`
	ID            string   `mapstructure:"id" yaml:"id" json:"id"`
	Field         string   `mapstructure:"field" yaml:"field,omitempty" json:"field,omitempty"`
	Min           *float64 `mapstructure:"min" yaml:"min,omitempty" json:"min,omitempty"`
	Max           *float64 `mapstructure:"max" yaml:"max,omitempty" json:"max,omitempty"`
	Tolerance     float64  `mapstructure:"tolerance" yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	MaxIterations int      `mapstructure:"maxIterations" yaml:"maxIterations,omitempty" json:"maxIterations,omitempty"`
}

// CanonicalGoalSeekField returns the canonical identifier for a goal-seek
// field, falling back to the subject's default field when value is empty.
func CanonicalGoalSeekField(subject, value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "":
		switch subject {
		case SubjectProduct:
			return FieldUnitsSoldPerMonth
		case SubjectLoan:
			return FieldAnnualInterestRate
		default:
			return FieldInitialMonthlyAmount
		}
	case "units", "unitssoldpermonth", "units_sold_per_month":
		return FieldUnitsSoldPerMonth
	case "markup", "markuppercent", "markup_percent":
		return FieldMarkupPercent
	case "amount", "initialmonthlyamount", "initial_monthly_amount":
		return FieldInitialMonthlyAmount
	case "rate", "annualinterestrate", "annual_interest_rate":
		return FieldAnnualInterestRate
	default:
		return trimmed
	}
}

// Normalize fills defaults and canonicalizes names in place.
func (g *GoalSeekConfig) Normalize() {
	if g == nil {
		return
	}

	g.Goal = strings.ToLower(strings.TrimSpace(g.Goal))
	if g.Goal == "" {
		g.Goal = GoalNPV
	}
	g.Subject = strings.ToLower(strings.TrimSpace(g.Subject))
	g.ID = strings.TrimSpace(g.ID)
	g.Field = CanonicalGoalSeekField(g.Subject, g.Field)

	if g.Tolerance <= 0 {
		g.Tolerance = defaultGoalSeekTolerance
	}
	if g.MaxIterations <= 0 {
		g.MaxIterations = defaultGoalSeekMaxIterations
	}
}

// Validate normalizes the directive and reports whether it can be searched.
func (g *GoalSeekConfig) Validate() error {
	if g == nil {
		return fmt.Errorf("goal seek configuration cannot be nil")
	}

	g.Normalize()

	if g.Goal != GoalNPV && g.Goal != GoalIRR {
		return fmt.Errorf("goal %q is not supported", g.Goal)
	}
	if g.ID == "" {
		return fmt.Errorf("goal seek requires the id of the %s to adjust", g.Subject)
	}

	supported := false
	switch g.Subject {
	case SubjectProduct:
		supported = g.Field == FieldUnitsSoldPerMonth || g.Field == FieldMarkupPercent
	case SubjectRevenue, SubjectExpense:
		supported = g.Field == FieldInitialMonthlyAmount
	case SubjectLoan:
		supported = g.Field == FieldAnnualInterestRate
	default:
		return fmt.Errorf("goal seek subject %q is not supported", g.Subject)
	}
	if !supported {
		return fmt.Errorf("field %q is not supported for %s", g.Field, g.Subject)
	}

	if g.Min == nil {
		return fmt.Errorf("goal seek requires a minimum bound")
	}
	if g.Max == nil {
		return fmt.Errorf("goal seek requires a maximum bound")
	}
	if *g.Min >= *g.Max {
		return fmt.Errorf("goal seek minimum %.2f must be below maximum %.2f", *g.Min, *g.Max)
	}
	return nil
}

// Increasing reports whether raising the field makes the goal easier to meet.
// Revenue drivers are increasing; costs and interest rates are not.
func (g GoalSeekConfig) Increasing() bool {
	switch g.Subject {
	case SubjectExpense, SubjectLoan:
		return false
	}
	return true
}
