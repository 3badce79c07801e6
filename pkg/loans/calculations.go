// Package loans provides loan amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// LoanConfig represents loan configuration parameters
type LoanConfig struct {
	ID                 string
	Name               string
	Principal          float64
	AnnualInterestRate float64
	TermMonths         int
}

// Payment holds the values for a given monthly payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// Schedule is a monthly amortization schedule indexed from the first project month.
type Schedule []Payment

// InterestAt returns the interest paid in the given 0-based month, or 0 past
// the end of the schedule.
func (s Schedule) InterestAt(month int) float64 {
	if month < 0 || month >= len(s) {
		return 0
	}
	return s[month].Interest
}

// PrincipalAt returns the principal repaid in the given 0-based month, or 0
// past the end of the schedule.
func (s Schedule) PrincipalAt(month int) float64 {
	if month < 0 || month >= len(s) {
		return 0
	}
	return s[month].Principal
}

// PrincipalForRange sums principal repaid over the half-open month range
// [start, end), clipped to the schedule length.
func (s Schedule) PrincipalForRange(start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	total := 0.0
	for i := start; i < end; i++ {
		total += s[i].Principal
	}
	return total
}

// Totals returns the total paid, principal and interest over the schedule.
func (s Schedule) Totals() (paid, principal, interest float64) {
	for _, p := range s {
		paid += p.Payment
		principal += p.Principal
		interest += p.Interest
	}
	return paid, principal, interest
}

// CalculateMonthlyPayment calculates the fixed monthly payment for a loan using the standard annuity formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a fixed-payment amortization schedule for a loan.
// Loans without principal or term, or whose payment cannot be computed,
// produce an empty schedule which callers treat as no debt service.
func (g *AmortizationScheduleGenerator) GenerateSchedule(loan LoanConfig) Schedule {
	if loan.Principal <= 0 || loan.TermMonths <= 0 {
		g.logger.Debug(fmt.Sprintf("loan %s has no principal or term, skipping amortization", loan.Name),
			zap.String("op", "loans.GenerateSchedule"),
		)
		return Schedule{}
	}

	monthlyPayment := CalculateMonthlyPayment(loan.Principal, loan.AnnualInterestRate, loan.TermMonths)
	if !mathutil.IsFinite(monthlyPayment) {
		g.logger.Warn(fmt.Sprintf("loan %s produced a non-finite payment, skipping amortization", loan.Name),
			zap.String("op", "loans.GenerateSchedule"),
			zap.Float64("rate", loan.AnnualInterestRate),
			zap.Int("term", loan.TermMonths),
		)
		return Schedule{}
	}

	schedule := make(Schedule, 0, loan.TermMonths)
	remaining := loan.Principal
	for month := 1; month <= loan.TermMonths; month++ {
		var current Payment
		current.Month = month
		current.Payment = monthlyPayment
		current.Interest = CalculateInterestPayment(remaining, loan.AnnualInterestRate)
		current.Principal = monthlyPayment - current.Interest
		remaining -= current.Principal

		if month == loan.TermMonths {
			// We will get machine error otherwise so just set to 0.
			current.RemainingPrincipal = 0.00
		} else {
			current.RemainingPrincipal = math.Max(0, remaining)
		}
		schedule = append(schedule, current)
	}

	g.logger.Debug(fmt.Sprintf("generated %d month schedule for loan %s", len(schedule), loan.Name),
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("payment", monthlyPayment),
	)
	return schedule
}

// StraightLineServiceForYear returns the principal and interest owed on a loan
// during the given 0-based project year assuming equal principal instalments
// and interest charged on the straight-line declining balance. This is the
// simplified loan service used by incremental analysis and is deliberately
// independent from the annuity schedule.
func StraightLineServiceForYear(loan LoanConfig, yearIndex int) (principal, interest float64) {
	if loan.TermMonths <= 0 {
		return 0, 0
	}
	term := float64(loan.TermMonths)
	for month := 0; month < constants.MonthsPerYear; month++ {
		overallMonth := yearIndex*constants.MonthsPerYear + month
		if overallMonth >= loan.TermMonths {
			break
		}
		principal += loan.Principal / term
		remaining := loan.Principal * (1 - math.Min(float64(overallMonth), term)/term)
		interest += CalculateInterestPayment(remaining, loan.AnnualInterestRate)
	}
	return principal, interest
}
