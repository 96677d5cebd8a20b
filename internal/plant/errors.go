package plant

import (
	"errors"
	"fmt"
)

// Domain errors for closed-loop runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("plant: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates a state that does not fit the system or
	// the waypoints.
	ErrDimensionMismatch = errors.New("plant: dimension mismatch between state and system")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("plant: parameter out of valid bounds")

	// ErrUnknownParameter indicates a tuning request for a parameter that does
	// not exist.
	ErrUnknownParameter = errors.New("plant: unknown parameter")
)

// StepError wraps an error with the loop step it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
