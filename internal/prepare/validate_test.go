package prepare

import (
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"scorecard/domain/core"
	"scorecard/domain/table"
)

func preparedFrame(t *testing.T, cols []table.Column, target string) *table.Prepared {
	t.Helper()
	if len(cols) == 0 {
		t.Fatal("no columns")
	}
	f := table.NewFrame(len(cols[0].Values))
	for _, c := range cols {
		if err := f.AddColumn(c.Name, c.Values); err != nil {
			t.Fatal(err)
		}
	}
	return &table.Prepared{Frame: f, Target: target}
}

func TestValidatePasses(t *testing.T) {
	prep := preparedFrame(t, []table.Column{
		{Name: "responded", Values: []float64{1, 0, 1, 0}},
		{Name: "income", Values: []float64{0.1, 0.4, 0.9, 0.3}},
	}, "responded")

	if err := Validate(prep, zerolog.Nop()); err != nil {
		t.Errorf("expected valid dataset, got %v", err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	prep := preparedFrame(t, []table.Column{
		{Name: "responded", Values: []float64{1, 0, 2, 0}},
		{Name: "gap", Values: []float64{0.1, math.NaN(), 0.9, 0.3}},
		{Name: "flat", Values: []float64{0.5, 0.5, 0.5, 0.5}},
	}, "responded")

	err := Validate(prep, zerolog.Nop())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !core.IsValidationError(err) {
		t.Fatalf("expected validation error type, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{"missing values", "not binary", "single distinct value"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected violation %q in %q", want, msg)
		}
	}
}

func TestValidateNonFinite(t *testing.T) {
	prep := preparedFrame(t, []table.Column{
		{Name: "responded", Values: []float64{1, 0, 1}},
		{Name: "x", Values: []float64{0.1, math.Inf(1), 0.9}},
	}, "responded")

	err := Validate(prep, zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "non-finite") {
		t.Errorf("expected non-finite violation, got %v", err)
	}
}

func TestIsConstant(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{"constant", []float64{1, 1, 1}, true},
		{"varying", []float64{1, 2, 1}, false},
		{"constant with gaps", []float64{1, math.NaN(), 1}, true},
		{"all missing", []float64{math.NaN(), math.NaN()}, false},
	}
	for _, test := range tests {
		if got := isConstant(test.values); got != test.want {
			t.Errorf("%s: isConstant = %v, expected %v", test.name, got, test.want)
		}
	}
}

// Correlated features warn but never fail the run
func TestValidateCorrelatedFeaturesNonFatal(t *testing.T) {
	a := []float64{0.1, 0.2, 0.3, 0.4, 0.5}
	b := []float64{0.2, 0.4, 0.6, 0.8, 1.0}
	prep := preparedFrame(t, []table.Column{
		{Name: "responded", Values: []float64{1, 0, 1, 0, 1}},
		{Name: "a", Values: a},
		{Name: "b", Values: b},
	}, "responded")

	if err := Validate(prep, zerolog.Nop()); err != nil {
		t.Errorf("perfect correlation should only warn, got %v", err)
	}
}
