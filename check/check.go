// Package check holds argument validation shared by the value types of this module.
//
// Every failure wraps ErrValidation so callers can test with errors.Is regardless of
// which constructor rejected the input.
package check

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation is returned when a required field is missing, an index is out of range
// or a conversion receives an input outside its precondition.
var ErrValidation = errors.New("validation failed")

// Errorf returns an error wrapping ErrValidation.
func Errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotNegative checks v >= 0.
func NotNegative(v float64, name string) error {
	if math.IsNaN(v) || v < 0 {
		return Errorf("%s must not be negative, got %v", name, v)
	}
	return nil
}

// Positive checks v > 0.
func Positive(v float64, name string) error {
	if math.IsNaN(v) || v <= 0 {
		return Errorf("%s must be positive, got %v", name, v)
	}
	return nil
}

// Finite checks that v is neither NaN nor infinite.
func Finite(v float64, name string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Errorf("%s must be finite, got %v", name, v)
	}
	return nil
}

// IndexInRange checks 0 <= i < n.
func IndexInRange(i, n int, name string) error {
	if i < 0 || i >= n {
		return Errorf("%s %d out of range [0, %d)", name, i, n)
	}
	return nil
}

// NotEmpty checks that a string field was provided.
func NotEmpty(s, name string) error {
	if s == "" {
		return Errorf("%s is required", name)
	}
	return nil
}

// NotZero checks v != 0.
func NotZero(v float64, name string) error {
	if math.IsNaN(v) || v == 0 {
		return Errorf("%s must not be zero, got %v", name, v)
	}
	return nil
}
