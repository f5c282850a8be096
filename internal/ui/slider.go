package ui

import "math"

// Slider is a horizontal value slider in host coordinates (pixels for the
// window, cells for the terminal).
type Slider struct {
	Label    string
	Min, Max float64

	X, Y  float64
	Width float64

	// HitHeight is how far below Y a press still grabs the slider.
	HitHeight float64
	// Inset shortens the usable track at its right end.
	Inset float64

	value    float64
	dragging bool
}

// NewSlider starts at the midpoint of [min, max].
func NewSlider(label string, min, max, x, y, width float64) *Slider {
	return &Slider{
		Label:     label,
		Min:       min,
		Max:       max,
		X:         x,
		Y:         y,
		Width:     width,
		HitHeight: 20,
		Inset:     10,
		value:     min + (max-min)/2,
	}
}

func (s *Slider) Value() float64 { return s.value }

func (s *Slider) Dragging() bool { return s.dragging }

// Set moves the slider to v, clamped to its range.
func (s *Slider) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.value = math.Max(s.Min, math.Min(s.Max, v))
}

// Contains reports whether (x, y) is inside the grab area.
func (s *Slider) Contains(x, y float64) bool {
	return x >= s.X && x <= s.X+s.Width && y >= s.Y && y <= s.Y+s.HitHeight
}

// Press starts a drag when (x, y) hits the slider. The value does not move
// until the first Drag.
func (s *Slider) Press(x, y float64) bool {
	if s.Contains(x, y) {
		s.dragging = true
	}
	return s.dragging
}

func (s *Slider) Release() { s.dragging = false }

// Drag maps the pointer x onto the track while a drag is active.
func (s *Slider) Drag(x float64) {
	if !s.dragging {
		return
	}
	track := s.Width - s.Inset
	if track <= 0 {
		return
	}
	s.Set((x-s.X)/track*(s.Max-s.Min) + s.Min)
}

// Nudge moves the value by frac of the full range.
func (s *Slider) Nudge(frac float64) {
	s.Set(s.value + frac*(s.Max-s.Min))
}

// Fraction is the knob position along the track, in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min)
}

// KnobX is the knob's x coordinate.
func (s *Slider) KnobX() float64 {
	return s.X + s.Fraction()*(s.Width-s.Inset)
}
