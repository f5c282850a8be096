package dynamo

import (
	"fmt"
	"math"
)

// State is the full dynamical state of the double pendulum. Angles are in
// radians from the downward vertical and are never wrapped.
//
// The same shape is reused for rates: a System returns d/dt of each slot.
type State struct {
	Angle1           float64
	Angle2           float64
	AngularVelocity1 float64
	AngularVelocity2 float64
}

// AddScaled returns s + h*k, slot by slot.
func (s State) AddScaled(k State, h float64) State {
	return State{
		Angle1:           s.Angle1 + h*k.Angle1,
		Angle2:           s.Angle2 + h*k.Angle2,
		AngularVelocity1: s.AngularVelocity1 + h*k.AngularVelocity1,
		AngularVelocity2: s.AngularVelocity2 + h*k.AngularVelocity2,
	}
}

// Sub returns s - other.
func (s State) Sub(other State) State {
	return s.AddScaled(other, -1)
}

func (s State) Norm() float64 {
	return math.Sqrt(s.Angle1*s.Angle1 + s.Angle2*s.Angle2 +
		s.AngularVelocity1*s.AngularVelocity1 + s.AngularVelocity2*s.AngularVelocity2)
}

// IsFinite reports whether no slot is NaN or infinite.
func (s State) IsFinite() bool {
	for _, v := range s.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Slice returns the state in [a1, a2, v1, v2] order.
func (s State) Slice() []float64 {
	return []float64{s.Angle1, s.Angle2, s.AngularVelocity1, s.AngularVelocity2}
}

// Degrees returns both angles in whole degrees normalized to [0, 360).
// Display only; the state itself is never normalized.
func (s State) Degrees() (int, int) {
	return wrapDegrees(s.Angle1), wrapDegrees(s.Angle2)
}

func wrapDegrees(rad float64) int {
	if math.IsNaN(rad) || math.IsInf(rad, 0) {
		return 0
	}
	d := math.Round(rad * 180 / math.Pi)
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return int(d)
}

func (s State) String() string {
	return fmt.Sprintf("a1=%.4f a2=%.4f v1=%.4f v2=%.4f",
		s.Angle1, s.Angle2, s.AngularVelocity1, s.AngularVelocity2)
}

// Params are the physical parameters, supplied by value on every step.
// Gravity is signed: the screen frame (Y down) carries a negative value.
type Params struct {
	Mass1   float64 `yaml:"mass1"`
	Mass2   float64 `yaml:"mass2"`
	Length1 float64 `yaml:"length1"`
	Length2 float64 `yaml:"length2"`
	Gravity float64 `yaml:"gravity"`
}

// Point is a 2D coordinate in the host's frame.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type System interface {
	Derive(x State, p Params) State
}

type Hamiltonian interface {
	Energy(x State, p Params) float64
}

type Integrator interface {
	Step(dyn System, x State, p Params, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, p Params, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, p Params, t float64)
}

// Frame is what a host renders after each tick.
type Frame struct {
	Step   int
	Time   float64
	State  State
	Params Params
	Pivot  Point
	Bob1   Point
	Bob2   Point
	Err    error
}
