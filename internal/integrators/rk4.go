package integrators

import (
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/physics"
)

// RK4 is the classical fourth-order Runge-Kutta integrator.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	k1 := dyn.Derive(x, p)
	k2 := dyn.Derive(x.AddScaled(k1, dt*0.5), p)
	k3 := dyn.Derive(x.AddScaled(k2, dt*0.5), p)
	k4 := dyn.Derive(x.AddScaled(k3, dt), p)

	dt6 := dt / 6.0
	return dynamo.State{
		Angle1:           x.Angle1 + dt6*(k1.Angle1+2*k2.Angle1+2*k3.Angle1+k4.Angle1),
		Angle2:           x.Angle2 + dt6*(k1.Angle2+2*k2.Angle2+2*k3.Angle2+k4.Angle2),
		AngularVelocity1: x.AngularVelocity1 + dt6*(k1.AngularVelocity1+2*k2.AngularVelocity1+2*k3.AngularVelocity1+k4.AngularVelocity1),
		AngularVelocity2: x.AngularVelocity2 + dt6*(k1.AngularVelocity2+2*k2.AngularVelocity2+2*k3.AngularVelocity2+k4.AngularVelocity2),
	}
}

// Step advances the double pendulum by one RK4 step of size dt.
// Non-finite results are returned as-is.
func Step(x dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	var r RK4
	return r.Step(physics.DoublePendulum{}, x, p, dt)
}
