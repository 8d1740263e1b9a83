package models

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel every ValidationError unwraps to
var ErrValidation = errors.New("validation failed")

// ValidationError reports a field that violates a domain invariant
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field string, value any, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// ValidateStartHour checks an hour of day
func ValidateStartHour(hour int) error {
	if hour < 0 || hour > LastHour {
		return invalid("start hour", hour, "must be between 0 and 23")
	}
	return nil
}

// ValidateWindow checks a window length in hours
func ValidateWindow(window int) error {
	if window < 0 || window > HoursPerDay {
		return invalid("window", window, "must be between 0 and 24")
	}
	return nil
}

// ValidateDuration checks a duration in minutes
func ValidateDuration(duration int) error {
	if duration < 0 {
		return invalid("duration", duration, "must be non-negative")
	}
	return nil
}
