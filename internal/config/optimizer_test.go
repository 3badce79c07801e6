package config

import (
	"strings"
	"testing"
)

func TestCanonicalGoalSeekField(t *testing.T) {
	tests := []struct {
		subject string
		value   string
		want    string
	}{
		{SubjectProduct, "", FieldUnitsSoldPerMonth},
		{SubjectLoan, "", FieldAnnualInterestRate},
		{SubjectRevenue, "", FieldInitialMonthlyAmount},
		{SubjectExpense, " Amount ", FieldInitialMonthlyAmount},
		{SubjectProduct, "markup", FieldMarkupPercent},
		{SubjectProduct, "units_sold_per_month", FieldUnitsSoldPerMonth},
		{SubjectLoan, "rate", FieldAnnualInterestRate},
		{SubjectLoan, "Principal", "principal"},
	}

	for _, tt := range tests {
		if got := CanonicalGoalSeekField(tt.subject, tt.value); got != tt.want {
			t.Errorf("CanonicalGoalSeekField(%q, %q) = %q, expected %q", tt.subject, tt.value, got, tt.want)
		}
	}
}

func TestGoalSeekNormalize(t *testing.T) {
	g := GoalSeekConfig{Goal: " IRR ", Subject: "Product", ID: " tamal "}
	g.Normalize()

	if g.Goal != GoalIRR || g.Subject != SubjectProduct || g.ID != "tamal" {
		t.Fatalf("unexpected normalized names: %+v", g)
	}
	if g.Field != FieldUnitsSoldPerMonth {
		t.Errorf("field = %q, expected %q", g.Field, FieldUnitsSoldPerMonth)
	}
	if g.Tolerance != defaultGoalSeekTolerance || g.MaxIterations != defaultGoalSeekMaxIterations {
		t.Errorf("defaults not applied: tolerance %v, iterations %d", g.Tolerance, g.MaxIterations)
	}

	empty := GoalSeekConfig{Subject: SubjectRevenue, ID: "sales"}
	empty.Normalize()
	if empty.Goal != GoalNPV {
		t.Errorf("goal = %q, expected %q", empty.Goal, GoalNPV)
	}
}

func TestGoalSeekValidate(t *testing.T) {
	lo, hi := 0.0, 10.0
	tests := []struct {
		name    string
		config  GoalSeekConfig
		wantErr string
	}{
		{"valid product", GoalSeekConfig{Subject: SubjectProduct, ID: "p", Field: "markup", Min: &lo, Max: &hi}, ""},
		{"valid loan", GoalSeekConfig{Goal: GoalIRR, Subject: SubjectLoan, ID: "l", Min: &lo, Max: &hi}, ""},
		{"bad goal", GoalSeekConfig{Goal: "payback", Subject: SubjectLoan, ID: "l", Min: &lo, Max: &hi}, "goal \"payback\""},
		{"missing id", GoalSeekConfig{Subject: SubjectRevenue, Min: &lo, Max: &hi}, "requires the id"},
		{"bad subject", GoalSeekConfig{Subject: "asset", ID: "a", Min: &lo, Max: &hi}, "subject \"asset\""},
		{"bad field", GoalSeekConfig{Subject: SubjectExpense, ID: "e", Field: "rate", Min: &lo, Max: &hi}, "not supported for expense"},
		{"missing max", GoalSeekConfig{Subject: SubjectRevenue, ID: "r", Min: &lo}, "maximum bound"},
		{"equal bounds", GoalSeekConfig{Subject: SubjectRevenue, ID: "r", Min: &hi, Max: &hi}, "must be below"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGoalSeekIncreasing(t *testing.T) {
	for subject, want := range map[string]bool{
		SubjectProduct: true,
		SubjectRevenue: true,
		SubjectExpense: false,
		SubjectLoan:    false,
	} {
		if got := (GoalSeekConfig{Subject: subject}).Increasing(); got != want {
			t.Errorf("Increasing() for %s = %v, expected %v", subject, got, want)
		}
	}
}
