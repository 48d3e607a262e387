package dynamo

import (
	"errors"
	"fmt"

	"github.com/san-kum/gravbox/internal/physics"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a body whose position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrInvalidConfig indicates a run configuration that cannot be stepped.
	ErrInvalidConfig = errors.New("dynamo: invalid run configuration")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Body    physics.Handle
	Wrapped error
}

func (e *SimulationError) Error() string {
	if e.Body != 0 {
		return fmt.Sprintf("%v (step %d, t=%.4f, body %d)", e.Wrapped, e.Step, e.Time, e.Body)
	}
	return fmt.Sprintf("%v (step %d, t=%.4f)", e.Wrapped, e.Step, e.Time)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// checkFinite returns a SimulationError naming the first active body with a
// non-finite state.
func checkFinite(w *physics.World, step int, t float64) error {
	for _, b := range w.Bodies() {
		if b.Active && !b.Finite() {
			return &SimulationError{Step: step, Time: t, Body: b.ID, Wrapped: ErrInvalidState}
		}
	}
	return nil
}
