// Package breakeven computes break-even sales levels with an explicit
// unreachable marker instead of an infinite value.
package breakeven

import (
	"encoding/json"
	"fmt"

	"github.com/iwvelando/venture-forecast/pkg/constants"
)

// Value is a break-even figure that may be unreachable.
type Value struct {
	Amount      float64
	Unreachable bool
}

// Unreachable is the value used when no sales level covers fixed costs.
var Unreachable = Value{Unreachable: true}

// Reachable wraps a finite amount.
func Reachable(amount float64) Value {
	return Value{Amount: amount}
}

// String renders the amount with two decimals, or "unreachable".
func (v Value) String() string {
	if v.Unreachable {
		return "unreachable"
	}
	return fmt.Sprintf("%.2f", v.Amount)
}

// MarshalJSON renders unreachable values as the string "unreachable".
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Unreachable {
		return json.Marshal("unreachable")
	}
	return json.Marshal(v.Amount)
}

// UnmarshalJSON accepts a number or the "unreachable" sentinel.
func (v *Value) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel != "unreachable" {
			return fmt.Errorf("unknown break-even sentinel %q", sentinel)
		}
		*v = Unreachable
		return nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}
	*v = Reachable(amount)
	return nil
}

// Point is the break-even sales amount and that amount as a percentage of
// actual sales.
type Point struct {
	Amount  Value `json:"amount"`
	Percent Value `json:"percent"`
}

// ContributionMarginRatio is (sales-variableCosts)/sales, or 0 without sales.
func ContributionMarginRatio(sales, variableCosts float64) float64 {
	if sales <= 0 {
		return 0
	}
	return (sales - variableCosts) / sales
}

// Compute derives the break-even point for one period. The amount is
// unreachable when the contribution margin is not positive; the percentage is
// unreachable when there are no sales or the amount is unreachable.
func Compute(sales, variableCosts, fixedCosts float64) Point {
	ratio := ContributionMarginRatio(sales, variableCosts)

	point := Point{Amount: Unreachable, Percent: Unreachable}
	if ratio > 0 {
		point.Amount = Reachable(fixedCosts / ratio)
	}
	if sales > 0 && !point.Amount.Unreachable {
		point.Percent = Reachable(point.Amount.Amount / sales * constants.PercentageMultiplier)
	}
	return point
}
