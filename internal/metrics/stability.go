package metrics

import (
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Stability is the fraction of samples that were finite with both angular
// speeds under threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, p dynamo.Params, t float64) {
	s.samples++
	if !x.IsFinite() ||
		math.Abs(x.AngularVelocity1) > s.threshold ||
		math.Abs(x.AngularVelocity2) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
