package tilesort

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ComparisonError represents a failure inside a key or comparator callable
// while sorting. The sort is aborted and the caller's data is left unchanged.
type ComparisonError struct {
	// Cause is the original error returned, or the value panicked, by the callable
	Cause interface{}
	// Context provides additional information about where the comparison failed
	Context string
}

func (e *ComparisonError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("comparison failure in %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("comparison failure: %v", e.Cause)
}

func (e *ComparisonError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewComparisonError creates a ComparisonError carrying a stack trace.
// If cause is already a ComparisonError it is returned unchanged, so
// nested boundaries do not wrap the same failure twice.
func NewComparisonError(cause interface{}, context string) error {
	if err, ok := cause.(error); ok {
		var ce *ComparisonError
		if errors.As(err, &ce) {
			return err
		}
	}
	return errors.WithStackDepth(&ComparisonError{Cause: cause, Context: context}, 1)
}

// IsComparisonError reports whether err is, or wraps, a ComparisonError.
func IsComparisonError(err error) bool {
	var ce *ComparisonError
	return errors.As(err, &ce)
}

// ConfigurationError represents an ordering that cannot be built from the
// supplied options, or an invalid engine setting.
type ConfigurationError struct {
	// Field is the name of the option that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}

// NewConfigurationError creates a ConfigurationError carrying a stack trace.
func NewConfigurationError(field string, value interface{}, reason string) error {
	return errors.WithStackDepth(&ConfigurationError{Field: field, Value: value, Reason: reason}, 1)
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// recoverComparison converts a panic raised by a user callable into a
// ComparisonError stored in *errp. It must be deferred directly, around
// the callable only, so that faults in the engine itself still panic.
func recoverComparison(errp *error, context string) {
	if r := recover(); r != nil {
		*errp = NewComparisonError(r, context)
	}
}
