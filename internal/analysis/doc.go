// Package analysis provides chaos tooling for the double pendulum.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [GeneratePhasePortrait]: angle against angular velocity of one arm
//   - [GeneratePoincareSection]: arm 2 sampled each time arm 1 swings through zero
//   - [PowerSpectrum]: frequency content of a recorded series
//   - [Sweep]: Lyapunov estimate and flip count across a parameter range
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(dyn, integ, x0, p, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
