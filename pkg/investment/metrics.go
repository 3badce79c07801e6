// Package investment computes investment appraisal metrics from cash-flow series.
package investment

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/iwvelando/venture-forecast/pkg/constants"
	"github.com/iwvelando/venture-forecast/pkg/mathutil"
)

// NPVAtRate discounts cashflows at a decimal rate; cashflows[t] is discounted t periods.
func NPVAtRate(cashflows []float64, rate float64) float64 {
	npv := 0.0
	for t, cf := range cashflows {
		npv += cf / math.Pow(1+rate, float64(t))
	}
	return npv
}

// NPV discounts cashflows at a percentage rate.
func NPV(cashflows []float64, ratePercent float64) float64 {
	return NPVAtRate(cashflows, mathutil.PercentToDecimal(ratePercent))
}

// DiscountedFlows returns each cash flow discounted to present value.
func DiscountedFlows(cashflows []float64, ratePercent float64) []float64 {
	rate := mathutil.PercentToDecimal(ratePercent)
	discounted := make([]float64, len(cashflows))
	for t, cf := range cashflows {
		discounted[t] = cf / math.Pow(1+rate, float64(t))
	}
	return discounted
}

// IRR finds the internal rate of return by bisection and returns it as a
// percentage. It returns nil when the first flow is not an outlay, when NPV
// does not change sign over the search bracket, or when the search does not
// converge.
func IRR(cashflows []float64) *float64 {
	if len(cashflows) == 0 || cashflows[0] >= 0 {
		return nil
	}

	lower, upper := constants.IRRLowerBound, constants.IRRUpperBound
	npvAtLower := NPVAtRate(cashflows, lower)
	npvAtUpper := NPVAtRate(cashflows, upper)
	if !mathutil.IsFinite(npvAtLower) || !mathutil.IsFinite(npvAtUpper) {
		return nil
	}
	if npvAtLower*npvAtUpper > 0 {
		return nil
	}

	for i := 0; i < constants.IRRMaxIterations; i++ {
		mid := (lower + upper) / 2
		if math.Abs(upper-lower) < constants.IRRTolerance {
			return percent(mid)
		}
		npvAtMid := NPVAtRate(cashflows, mid)
		if math.Abs(npvAtMid) < constants.IRRTolerance {
			return percent(mid)
		}
		if npvAtLower*npvAtMid < 0 {
			upper = mid
		} else {
			lower = mid
			npvAtLower = npvAtMid
		}
	}
	return nil
}

func percent(rate float64) *float64 {
	v := rate * constants.PercentageMultiplier
	return &v
}

// PaybackPeriod expresses how long it takes for cumulative cash flow to turn
// positive, or Never when it does not within the horizon.
type PaybackPeriod struct {
	Years  int
	Months int
	Days   int
	Never  bool
}

// NeverPayback is the sentinel for a project that never recovers its investment.
var NeverPayback = PaybackPeriod{Never: true}

// String renders the period in a compact human form.
func (p PaybackPeriod) String() string {
	if p.Never {
		return "never"
	}
	return fmt.Sprintf("%d year(s), %d month(s), %d day(s)", p.Years, p.Months, p.Days)
}

// MarshalJSON renders the never sentinel as the string "never".
func (p PaybackPeriod) MarshalJSON() ([]byte, error) {
	if p.Never {
		return json.Marshal("never")
	}
	return json.Marshal(struct {
		Years  int `json:"years"`
		Months int `json:"months"`
		Days   int `json:"days"`
	}{p.Years, p.Months, p.Days})
}

// UnmarshalJSON accepts either the "never" sentinel or the structured form.
func (p *PaybackPeriod) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != "never" {
			return fmt.Errorf("unknown payback sentinel %q", sentinel)
		}
		*p = NeverPayback
		return nil
	}
	var structured struct {
		Years  int `json:"years"`
		Months int `json:"months"`
		Days   int `json:"days"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	*p = PaybackPeriod{Years: structured.Years, Months: structured.Months, Days: structured.Days}
	return nil
}

// Payback walks the cumulative series (index 0 is the initial investment) and
// interpolates within the first period whose cumulative flow turns positive.
// flows[k] must be the net flow of the period ending at cumulative[k].
func Payback(cumulative, flows []float64) PaybackPeriod {
	for k := 1; k < len(cumulative) && k < len(flows); k++ {
		if cumulative[k] <= 0 {
			continue
		}
		fraction := 0.0
		if flows[k] != 0 {
			fraction = -cumulative[k-1] / flows[k]
		}
		totalMonths := fraction * constants.MonthsPerYear
		months := math.Floor(totalMonths)
		days := math.Round((totalMonths - months) * constants.DaysPerMonth)
		return PaybackPeriod{Years: k - 1, Months: int(months), Days: int(days)}
	}
	return NeverPayback
}

// CostBenefitRatio discounts per-year benefits and costs (year t = index+1)
// and compares them, with the initial investment counted as an undiscounted
// cost. It returns 0 when there are no discounted costs.
func CostBenefitRatio(benefits, costs []float64, initialInvestment, ratePercent float64) float64 {
	rate := mathutil.PercentToDecimal(ratePercent)
	discountedBenefits := 0.0
	for i, b := range benefits {
		discountedBenefits += b / math.Pow(1+rate, float64(i+1))
	}
	discountedCosts := initialInvestment
	for i, c := range costs {
		discountedCosts += c / math.Pow(1+rate, float64(i+1))
	}
	if discountedCosts <= 0 {
		return 0
	}
	return discountedBenefits / discountedCosts
}

// ROI returns total net income as a percentage of the initial investment, or
// nil when there is no positive investment.
func ROI(netIncomes []float64, initialInvestment float64) *float64 {
	if initialInvestment <= 0 {
		return nil
	}
	roi := mathutil.Sum(netIncomes) / initialInvestment * constants.PercentageMultiplier
	return &roi
}
