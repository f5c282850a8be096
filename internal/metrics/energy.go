package metrics

import (
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Energy reports the mean total energy over the observed samples.
type Energy struct {
	name        string
	dyn         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(dyn dynamo.Hamiltonian) *Energy {
	return &Energy{
		name: "energy",
		dyn:  dyn,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, p dynamo.Params, t float64) {
	en := e.dyn.Energy(x, p)
	if math.IsNaN(en) || math.IsInf(en, 0) {
		return
	}
	e.totalEnergy += en
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

type energyScaler interface {
	EnergyScale(p dynamo.Params) float64
}

// EnergyDrift tracks the largest relative deviation from the energy at the
// first sample. A parameter change restarts the baseline, since the energy
// of the new system is a different constant.
type EnergyDrift struct {
	name          string
	dyn           dynamo.Hamiltonian
	initialEnergy float64
	scale         float64
	params        dynamo.Params
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, p dynamo.Params, t float64) {
	energy := e.dyn.Energy(x, p)
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return
	}

	if e.samples == 0 || p != e.params {
		e.initialEnergy = energy
		e.params = p
		e.scale = math.Abs(energy)
		if es, ok := e.dyn.(energyScaler); ok {
			e.scale = math.Max(e.scale, es.EnergyScale(p))
		}
	}
	e.samples++

	if e.scale > 0 {
		drift := math.Abs(energy-e.initialEnergy) / e.scale
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.scale = 0
	e.params = dynamo.Params{}
	e.maxDrift = 0
	e.samples = 0
}
