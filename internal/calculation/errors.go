package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks inputs rejected before any computation
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidScenario marks a split composition that has no valid continuation point
	ErrInvalidScenario = errors.New("invalid scenario")
)

// CalculationError represents errors from the amortization engine
type CalculationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}

// InvalidParameter builds an ErrInvalidParameter failure for the given operation
func InvalidParameter(operation, format string, args ...any) error {
	return &CalculationError{
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
		Cause:     ErrInvalidParameter,
	}
}

// InvalidScenario builds an ErrInvalidScenario failure for the given operation
func InvalidScenario(operation, format string, args ...any) error {
	return &CalculationError{
		Operation: operation,
		Message:   fmt.Sprintf(format, args...),
		Cause:     ErrInvalidScenario,
	}
}
