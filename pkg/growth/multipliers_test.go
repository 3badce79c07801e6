package growth

import (
	"math"
	"testing"
)

func TestAnnualMultipliers(t *testing.T) {
	tests := []struct {
		name     string
		rates    []float64
		years    int
		expected []float64
	}{
		{"Empty rates mean no growth", nil, 3, []float64{1, 1, 1}},
		{"Single rate repeats", []float64{10}, 4, []float64{1, 1.1, 1.21, 1.331}},
		{"Phased rates then last repeats", []float64{6, 5}, 4, []float64{1, 1.06, 1.113, 1.16865}},
		{"More rates than years", []float64{10, 20, 30}, 2, []float64{1, 1.1}},
		{"Negative growth", []float64{-50}, 3, []float64{1, 0.5, 0.25}},
		{"Single year", []float64{10}, 1, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnnualMultipliers(tt.rates, tt.years)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d multipliers, got %d", len(tt.expected), len(result))
			}
			for i := range tt.expected {
				if math.Abs(result[i]-tt.expected[i]) > 1e-9 {
					t.Errorf("multiplier[%d] = %v, expected %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestAnnualMultipliersRatioProperty(t *testing.T) {
	rates := []float64{3, -2, 7.5, 0, 12}
	series := AnnualMultipliers(rates, 10)

	if series[0] != 1 {
		t.Fatalf("expected first multiplier to be 1, got %v", series[0])
	}
	for y := 1; y < len(series); y++ {
		ratio := series[y] / series[y-1]
		expected := 1 + RateForYear(rates, y)/100
		if math.Abs(ratio-expected) > 1e-12 {
			t.Errorf("year %d: ratio %v, expected %v", y, ratio, expected)
		}
	}
}

func TestSeriesAt(t *testing.T) {
	series := AnnualMultipliers([]float64{10}, 2)
	if got := series.At(1); math.Abs(got-1.1) > 1e-12 {
		t.Errorf("At(1) = %v, expected 1.1", got)
	}
	if got := series.At(5); got != 1 {
		t.Errorf("At past end = %v, expected 1", got)
	}
	if got := series.At(-1); got != 1 {
		t.Errorf("At(-1) = %v, expected 1", got)
	}
	if got := AnnualMultipliers(nil, 0); len(got) != 0 {
		t.Errorf("expected empty series for zero years, got %v", got)
	}
}

func TestMonthlyCompounding(t *testing.T) {
	if got := MonthlyCompounding(1, 0); got != 1 {
		t.Errorf("MonthlyCompounding at month 0 = %v, expected 1", got)
	}
	if got := MonthlyCompounding(1, 12); math.Abs(got-math.Pow(1.01, 12)) > 1e-12 {
		t.Errorf("MonthlyCompounding(1, 12) = %v, expected %v", got, math.Pow(1.01, 12))
	}
}

func TestCombineRates(t *testing.T) {
	combined := CombineRates([]float64{10}, []float64{5, 0}, 4)
	expected := []float64{15.5, 10, 10}
	if len(combined) != len(expected) {
		t.Fatalf("expected %d combined rates, got %d", len(expected), len(combined))
	}
	for i := range expected {
		if math.Abs(combined[i]-expected[i]) > 1e-9 {
			t.Errorf("combined[%d] = %v, expected %v", i, combined[i], expected[i])
		}
	}

	sales := AnnualMultipliers([]float64{10}, 4)
	price := AnnualMultipliers([]float64{5, 0}, 4)
	both := AnnualMultipliers(combined, 4)
	for y := range both {
		if math.Abs(both[y]-sales[y]*price[y]) > 1e-9 {
			t.Errorf("year %d: combined multiplier %v, expected %v", y, both[y], sales[y]*price[y])
		}
	}

	if got := CombineRates([]float64{10}, []float64{5}, 1); got != nil {
		t.Errorf("expected nil combined rates for a single year, got %v", got)
	}
}
