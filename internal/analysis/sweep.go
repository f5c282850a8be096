package analysis

import (
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/metrics"
)

// SweepPoint is the outcome of one parameter value.
type SweepPoint struct {
	Value    float64
	Lyapunov float64
	Flips    int
}

// Sweep varies one named parameter across [min, max] in steps values and
// runs the same start state for each, useful for spotting the onset of
// chaos. Unknown parameter names are rejected before any work is done.
func Sweep(
	dyn dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	base dynamo.Params,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	dt, duration float64,
) ([]SweepPoint, error) {
	if _, err := base.With(paramName, paramMin); err != nil {
		return nil, err
	}

	if paramSteps <= 1 {
		paramSteps = 2
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)

	results := make([]SweepPoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		value := paramMin + float64(i)*paramStep
		p, _ := base.With(paramName, value)

		flips := metrics.NewFlips()
		x := x0
		t := 0.0
		for t < duration {
			flips.Observe(x, p, t)
			x = integ.Step(dyn, x, p, dt)
			t += dt
		}
		flips.Observe(x, p, t)

		results = append(results, SweepPoint{
			Value:    value,
			Lyapunov: LyapunovExponent(dyn, integ, x0, p, dt, duration, 1e-8),
			Flips:    int(flips.Value()),
		})
	}

	return results, nil
}
