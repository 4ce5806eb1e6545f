package core

import (
	"errors"
	"fmt"
)

// Pipeline errors - centralized error taxonomy
var (
	// ErrConfiguration indicates a missing or contradictory analysis configuration
	ErrConfiguration = errors.New("invalid analysis configuration")
	// ErrDataPreparation indicates a column-level transform failure
	ErrDataPreparation = errors.New("data preparation failed")
	// ErrValidation indicates a post-transform invariant violation
	ErrValidation = errors.New("prepared dataset validation failed")
	// ErrTraining indicates insufficient rows or a degenerate fit
	ErrTraining = errors.New("model training failed")
	// ErrPersistence indicates an external store write failure
	ErrPersistence = errors.New("result persistence failed")
)

// Error constructors with context
func NewConfigurationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, reason)
}

func NewDataPreparationError(column string, cause error) error {
	return fmt.Errorf("%w: column %q: %v", ErrDataPreparation, column, cause)
}

func NewValidationError(violations []string) error {
	if len(violations) == 1 {
		return fmt.Errorf("%w: %s", ErrValidation, violations[0])
	}
	msg := ""
	for i, v := range violations {
		if i > 0 {
			msg += "; "
		}
		msg += v
	}
	return fmt.Errorf("%w: %d violations: %s", ErrValidation, len(violations), msg)
}

func NewTrainingError(reason string) error {
	return fmt.Errorf("%w: %s", ErrTraining, reason)
}

func NewPersistenceError(artifact string, cause error) error {
	return fmt.Errorf("%w: writing %s: %v", ErrPersistence, artifact, cause)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsDataPreparationError(err error) bool {
	return errors.Is(err, ErrDataPreparation)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsTrainingError(err error) bool {
	return errors.Is(err, ErrTraining)
}

func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}
