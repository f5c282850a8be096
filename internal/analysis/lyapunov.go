package analysis

import (
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run a reference and a perturbed trajectory
// 2. After each step, log the growth of their separation
// 3. Pull the perturbed one back to distance d0 along the same direction
// 4. λ ≈ Σ ln(d/d0) / t
func LyapunovExponent(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	p dynamo.Params,
	dt, duration float64,
	perturbation float64,
) float64 {
	if dt <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0
	xp := x0
	xp.Angle1 += perturbation
	d0 := perturbation

	steps := int(math.Round(duration / dt))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, p, dt)
		xp = integ.Step(dyn, xp, p, dt)

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}

		sumLog += math.Log(sep / d0)
		count++

		xp = x.AddScaled(xp.Sub(x), d0/sep)
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
