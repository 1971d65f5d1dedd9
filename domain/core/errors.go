package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidParameter is the single failure kind for input-contract
	// violations: non-positive sizes, out-of-range proportions, empty samples.
	ErrInvalidParameter = errors.New("invalid parameter")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrSeedMismatch     = fmt.Errorf("%w: seed mismatch", ErrNonDeterministic)
)

// InvalidParameterError names the parameter that violated its constraint.
type InvalidParameterError struct {
	Parameter string
	Value     interface{}
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid parameter %s: %s", e.Parameter, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Parameter, e.Value, e.Reason)
}

// Is lets errors.Is match both the sentinel and any InvalidParameterError.
func (e *InvalidParameterError) Is(target error) bool {
	if target == ErrInvalidParameter {
		return true
	}
	_, ok := target.(*InvalidParameterError)
	return ok
}

// NewInvalidParameterError creates an InvalidParameterError
func NewInvalidParameterError(parameter string, value interface{}, reason string) error {
	return &InvalidParameterError{Parameter: parameter, Value: value, Reason: reason}
}

// IsInvalidParameter reports whether err is an input-contract violation
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}
