package breakeven

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name            string
		sales           float64
		variableCosts   float64
		fixedCosts      float64
		expectedAmount  Value
		expectedPercent Value
	}{
		{"Half margin", 10000, 5000, 2000, Reachable(4000), Reachable(40)},
		{"No fixed costs", 10000, 2000, 0, Reachable(0), Reachable(0)},
		{"No sales", 0, 0, 500, Unreachable, Unreachable},
		{"Negative margin", 1000, 1500, 200, Unreachable, Unreachable},
		{"Zero margin", 1000, 1000, 200, Unreachable, Unreachable},
		{"Above sales", 1000, 800, 400, Reachable(2000), Reachable(200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := Compute(tt.sales, tt.variableCosts, tt.fixedCosts)
			assertValue(t, "amount", point.Amount, tt.expectedAmount)
			assertValue(t, "percent", point.Percent, tt.expectedPercent)
		})
	}
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal(Point{Amount: Reachable(1234.5), Percent: Unreachable})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"amount":1234.5,"percent":"unreachable"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	var decoded Point
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	assertValue(t, "amount", decoded.Amount, Reachable(1234.5))
	assertValue(t, "percent", decoded.Percent, Unreachable)

	var v Value
	if err := json.Unmarshal([]byte(`"infinite"`), &v); err == nil {
		t.Error("expected unknown sentinel to fail decoding")
	}
	if Unreachable.String() != "unreachable" || Reachable(2).String() != "2.00" {
		t.Errorf("unexpected string forms %q and %q", Unreachable.String(), Reachable(2).String())
	}
}

func assertValue(t *testing.T, label string, got, expected Value) {
	t.Helper()
	if got.Unreachable != expected.Unreachable {
		t.Errorf("%s unreachable = %v, expected %v", label, got.Unreachable, expected.Unreachable)
		return
	}
	if math.Abs(got.Amount-expected.Amount) > 1e-9 {
		t.Errorf("%s = %v, expected %v", label, got.Amount, expected.Amount)
	}
}
