// Package physics implements the double pendulum equations of motion.
//
// [Accel1] and [Accel2] are the closed-form Lagrangian accelerations of the
// two arms. [DoublePendulum] wraps them as a [dynamo.System] so any
// integrator can drive it, and implements [dynamo.Hamiltonian] for energy
// monitoring:
//
//	var dp physics.DoublePendulum
//	rates := dp.Derive(x, p)
//	energy := dp.Energy(x, p)
//
// # Frames
//
// The formulas do not fix a frame. Hosts drawing in screen coordinates
// (Y down) pass a negative Gravity; a Y-up host passes a positive one.
package physics
