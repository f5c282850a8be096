package integrators

import "github.com/san-kum/dpsim/internal/dynamo"

// Euler is the explicit first-order method, kept for comparison runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	return x.AddScaled(dyn.Derive(x, p), dt)
}
