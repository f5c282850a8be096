package ui

import (
	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
)

// Layout places the slider column.
type Layout struct {
	X, Y      float64
	Spacing   float64
	Width     float64
	HitHeight float64
	Inset     float64
}

// WindowLayout is the pixel layout of the windowed host: a column of
// 200px sliders 250px from the right edge.
func WindowLayout(width int) Layout {
	return Layout{
		X:         float64(width) - 250,
		Y:         50,
		Spacing:   50,
		Width:     200,
		HitHeight: 20,
		Inset:     10,
	}
}

// Panel owns the five parameter sliders. It is used from the host's
// loop goroutine only.
type Panel struct {
	Mass1   *Slider
	Mass2   *Slider
	Gravity *Slider
	Length1 *Slider
	Length2 *Slider

	sign    float64
	initial dynamo.Params
	active  int
}

// NewPanel builds sliders from the config's ranges and sets them to its
// parameters. Gravity sliders hold a magnitude; Snapshot applies the
// frame's sign.
func NewPanel(cfg *config.Config, l Layout) *Panel {
	row := func(i int) float64 { return l.Y + float64(i)*l.Spacing }
	mk := func(label string, r config.Range, i int) *Slider {
		s := NewSlider(label, r.Min, r.Max, l.X, row(i), l.Width)
		s.HitHeight = l.HitHeight
		s.Inset = l.Inset
		return s
	}

	p := &Panel{
		Mass1:   mk("Mass 1", cfg.Sliders.Mass, 0),
		Mass2:   mk("Mass 2", cfg.Sliders.Mass, 1),
		Gravity: mk("Gravity", cfg.Sliders.Gravity, 2),
		Length1: mk("Length 1", cfg.Sliders.Length, 3),
		Length2: mk("Length 2", cfg.Sliders.Length, 4),
		sign:    cfg.GravitySign(),
		initial: cfg.Params,
	}
	p.Reset()
	return p
}

// Sliders returns the sliders in display order.
func (p *Panel) Sliders() []*Slider {
	return []*Slider{p.Mass1, p.Mass2, p.Gravity, p.Length1, p.Length2}
}

// Reset moves every slider back to the configured parameters.
func (p *Panel) Reset() {
	p.Mass1.Set(p.initial.Mass1)
	p.Mass2.Set(p.initial.Mass2)
	p.Gravity.Set(p.initial.Gravity)
	p.Length1.Set(p.initial.Length1)
	p.Length2.Set(p.initial.Length2)
}

// Snapshot returns the current parameter values for the next step.
func (p *Panel) Snapshot() dynamo.Params {
	return dynamo.Params{
		Mass1:   p.Mass1.Value(),
		Mass2:   p.Mass2.Value(),
		Length1: p.Length1.Value(),
		Length2: p.Length2.Value(),
		Gravity: p.sign * p.Gravity.Value(),
	}
}

// Press offers a pointer press to every slider and reports whether any
// started dragging.
func (p *Panel) Press(x, y float64) bool {
	hit := false
	for i, s := range p.Sliders() {
		if s.Press(x, y) {
			hit = true
			p.active = i
		}
	}
	return hit
}

func (p *Panel) Drag(x float64) {
	for _, s := range p.Sliders() {
		s.Drag(x)
	}
}

func (p *Panel) Release() {
	for _, s := range p.Sliders() {
		s.Release()
	}
}

// Active is the slider keyboard adjustments apply to.
func (p *Panel) Active() *Slider { return p.Sliders()[p.active] }

func (p *Panel) ActiveIndex() int { return p.active }

// Cycle moves keyboard focus to the next slider.
func (p *Panel) Cycle() {
	p.active = (p.active + 1) % len(p.Sliders())
}

// Adjust nudges the active slider by steps twentieths of its range.
func (p *Panel) Adjust(steps int) {
	p.Active().Nudge(float64(steps) / 20)
}
