package sim

import "github.com/san-kum/dpsim/internal/dynamo"

// Config describes a headless fixed-step run.
type Config struct {
	Dt    float64
	Steps int
}

type Result struct {
	States  []dynamo.State
	Times   []float64
	Metrics map[string]float64

	// EnergyDrift is the largest |E(t) - E(0)| seen, relative to the
	// system's energy scale.
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Final returns the last recorded state.
func (r *Result) Final() dynamo.State {
	if len(r.States) == 0 {
		return dynamo.State{}
	}
	return r.States[len(r.States)-1]
}

// Series extracts one state component over time, in [a1, a2, v1, v2] order.
func (r *Result) Series(index int) []float64 {
	out := make([]float64, len(r.States))
	for i, s := range r.States {
		out[i] = s.Slice()[index]
	}
	return out
}

// EnergyScaler is implemented by systems that can give a characteristic
// energy for normalizing drift when the total energy itself is near zero.
type EnergyScaler interface {
	EnergyScale(p dynamo.Params) float64
}
