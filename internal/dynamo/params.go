package dynamo

import (
	"fmt"
	"math"
)

// ParamNames lists the tunable parameters in display order.
var ParamNames = []string{"mass1", "mass2", "gravity", "length1", "length2"}

// GetParams returns the parameters keyed by name.
func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"mass1":   p.Mass1,
		"mass2":   p.Mass2,
		"length1": p.Length1,
		"length2": p.Length2,
		"gravity": p.Gravity,
	}
}

// With returns a copy of p with one parameter replaced.
func (p Params) With(name string, value float64) (Params, error) {
	switch name {
	case "mass1":
		p.Mass1 = value
	case "mass2":
		p.Mass2 = value
	case "length1":
		p.Length1 = value
	case "length2":
		p.Length2 = value
	case "gravity":
		p.Gravity = value
	default:
		return p, fmt.Errorf("unknown param: %s", name)
	}
	return p, nil
}

// Validate rejects parameters the equations of motion cannot use:
// masses and lengths must be strictly positive and everything finite.
func (p Params) Validate() error {
	for name, v := range p.GetParams() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s=%v: %w", name, v, ErrParameterBounds)
		}
	}
	switch {
	case p.Mass1 <= 0:
		return fmt.Errorf("mass1=%v: %w", p.Mass1, ErrParameterBounds)
	case p.Mass2 <= 0:
		return fmt.Errorf("mass2=%v: %w", p.Mass2, ErrParameterBounds)
	case p.Length1 <= 0:
		return fmt.Errorf("length1=%v: %w", p.Length1, ErrParameterBounds)
	case p.Length2 <= 0:
		return fmt.Errorf("length2=%v: %w", p.Length2, ErrParameterBounds)
	}
	return nil
}
