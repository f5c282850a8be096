package physics

import (
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Accel1 returns the angular acceleration of the first arm.
//
// Inputs are not validated. A zero Denominator yields NaN or Inf.
func Accel1(m1, m2, a1, a2, v1, v2, l1, l2, g float64) float64 {
	num := -g*(2*m1+m2)*math.Sin(a1) -
		m2*g*math.Sin(a1-2*a2) -
		2*math.Sin(a1-a2)*m2*(v2*v2*l2+v1*v1*l1*math.Cos(a1-a2))
	return num / (l1 * Denominator(m1, m2, a1, a2))
}

// Accel2 returns the angular acceleration of the second arm.
func Accel2(m1, m2, a1, a2, v1, v2, l1, l2, g float64) float64 {
	num := 2 * math.Sin(a1-a2) *
		(v1*v1*l1*(m1+m2) + g*(m1+m2)*math.Cos(a1) + v2*v2*l2*m2*math.Cos(a1-a2))
	return num / (l2 * Denominator(m1, m2, a1, a2))
}

// Denominator is the mass/angle factor shared by both accelerations,
// 2m1 + m2 - m2*cos(2a1 - 2a2). It vanishes only when m1 <= 0.
func Denominator(m1, m2, a1, a2 float64) float64 {
	return 2*m1 + m2 - m2*math.Cos(2*a1-2*a2)
}

// DoublePendulum is the point-mass double pendulum. It carries no state;
// all physical values arrive through dynamo.Params.
type DoublePendulum struct{}

func NewDoublePendulum() DoublePendulum {
	return DoublePendulum{}
}

// Derive returns {v1, v2, accel1, accel2}.
func (DoublePendulum) Derive(x dynamo.State, p dynamo.Params) dynamo.State {
	a1, a2 := x.Angle1, x.Angle2
	v1, v2 := x.AngularVelocity1, x.AngularVelocity2
	m1, m2, l1, l2, g := p.Mass1, p.Mass2, p.Length1, p.Length2, p.Gravity

	return dynamo.State{
		Angle1:           v1,
		Angle2:           v2,
		AngularVelocity1: Accel1(m1, m2, a1, a2, v1, v2, l1, l2, g),
		AngularVelocity2: Accel2(m1, m2, a1, a2, v1, v2, l1, l2, g),
	}
}

// Energy returns kinetic plus potential energy. It is the quantity the exact
// flow conserves for either sign of Gravity.
func (DoublePendulum) Energy(x dynamo.State, p dynamo.Params) float64 {
	a1, a2 := x.Angle1, x.Angle2
	v1, v2 := x.AngularVelocity1, x.AngularVelocity2
	m1, m2, l1, l2, g := p.Mass1, p.Mass2, p.Length1, p.Length2, p.Gravity

	v1sq := l1 * l1 * v1 * v1
	v2sq := l1*l1*v1*v1 + l2*l2*v2*v2 +
		2*l1*l2*v1*v2*math.Cos(a1-a2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(a1)
	y2 := y1 - l2*math.Cos(a2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}

// EnergyScale is the potential energy swing of lifting both bobs from
// hanging to upright, halved. Drift is measured against it because the
// total energy of common starting poses (both arms horizontal) is zero.
func (DoublePendulum) EnergyScale(p dynamo.Params) float64 {
	g := math.Abs(p.Gravity)
	return (p.Mass1+p.Mass2)*g*p.Length1 + p.Mass2*g*p.Length2
}
