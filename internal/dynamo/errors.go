package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNumericalInstability indicates a step produced NaN or Inf, typically
	// from the equations-of-motion denominator reaching zero.
	ErrNumericalInstability = errors.New("dynamo: numerical instability (NaN or Inf in state)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	ErrUnknownPolicy = errors.New("dynamo: unknown instability policy")

	// ErrInvalidConfig indicates a configuration that cannot drive a run.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
