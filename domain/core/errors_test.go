package core

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"configuration", NewConfigurationError("target missing"), IsConfigurationError},
		{"data preparation", NewDataPreparationError("income", cause), IsDataPreparationError},
		{"validation", NewValidationError([]string{"bad column"}), IsValidationError},
		{"training", NewTrainingError("too few rows"), IsTrainingError},
		{"persistence", NewPersistenceError("model details", cause), IsPersistenceError},
	}

	for _, test := range tests {
		if !test.check(test.err) {
			t.Errorf("%s error not recognized by its checker: %v", test.name, test.err)
		}
		// each error belongs to exactly one category
		matches := 0
		for _, check := range []func(error) bool{
			IsConfigurationError, IsDataPreparationError, IsValidationError, IsTrainingError, IsPersistenceError,
		} {
			if check(test.err) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("%s error matched %d categories", test.name, matches)
		}
	}
}

func TestDataPreparationErrorNamesColumn(t *testing.T) {
	err := NewDataPreparationError("income", errors.New("no parseable numeric values"))
	if !strings.Contains(err.Error(), `"income"`) {
		t.Errorf("expected error to name the column, got %v", err)
	}
}

func TestValidationErrorAggregation(t *testing.T) {
	single := NewValidationError([]string{"only one"})
	if strings.Contains(single.Error(), "violations") {
		t.Errorf("single violation should not carry a count: %v", single)
	}

	multi := NewValidationError([]string{"first", "second"})
	if !strings.Contains(multi.Error(), "2 violations") {
		t.Errorf("expected violation count, got %v", multi)
	}
	if !strings.Contains(multi.Error(), "first; second") {
		t.Errorf("expected all violations joined, got %v", multi)
	}
}
