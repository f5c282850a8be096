package metrics

import (
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Flips counts how often the second arm swings over the top of its joint.
//
// Which angle is "up" depends on the sign of gravity: with g > 0 the arm
// hangs at 0 and is upright at pi, with g < 0 the other way round.
type Flips struct {
	name  string
	count int
	turn  float64
	seen  bool
}

func NewFlips() *Flips {
	return &Flips{name: "flips"}
}

func (f *Flips) Name() string { return f.name }

func (f *Flips) Observe(x dynamo.State, p dynamo.Params, t float64) {
	if !x.IsFinite() {
		return
	}

	top := math.Pi
	if p.Gravity < 0 {
		top = 0
	}
	turn := math.Floor((x.Angle2 - top) / (2 * math.Pi))

	if f.seen && turn != f.turn {
		f.count += int(math.Abs(turn - f.turn))
	}
	f.turn = turn
	f.seen = true
}

func (f *Flips) Value() float64 { return float64(f.count) }

func (f *Flips) Reset() {
	f.count = 0
	f.turn = 0
	f.seen = false
}
