// Package dynamo provides the core types shared by the double pendulum
// simulation.
//
//   - [State]: angles and angular velocities of both arms
//   - [Params]: masses, arm lengths and signed gravity
//   - [System]: rate function dX/dt = f(X, p)
//   - [Integrator]: fixed-step numerical integrator
//   - [Frame]: one tick's output handed to a renderer
//
// # Example
//
//	x := dynamo.State{Angle1: math.Pi / 2, Angle2: math.Pi / 2}
//	p := dynamo.Params{Mass1: 60, Mass2: 60, Length1: 200, Length2: 200, Gravity: -10.5}
//	x = integrators.Step(x, p, 0.5)
//
// # Thread Safety
//
// All types here are plain values. Ownership of a running State belongs to a
// single goroutine; see package sim.
package dynamo
