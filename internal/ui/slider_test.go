package ui

import (
	"math"
	"testing"
)

func newMassSlider() *Slider {
	return NewSlider("Mass 1", 10, 100, 1670, 50, 200)
}

func TestSliderMidpoint(t *testing.T) {
	s := newMassSlider()
	if s.Value() != 55 {
		t.Errorf("expected midpoint 55, got %v", s.Value())
	}
}

func TestSliderDrag(t *testing.T) {
	tests := []struct {
		name  string
		mouse float64
		want  float64
	}{
		{"track start", 1670, 10},
		{"mid track", 1670 + 95, 55},
		{"track end", 1670 + 190, 100},
		{"past the end", 1900, 100},
		{"left of track", 1500, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMassSlider()
			if !s.Press(1700, 60) {
				t.Fatal("expected press to grab slider")
			}
			s.Drag(tt.mouse)
			if math.Abs(s.Value()-tt.want) > 1e-9 {
				t.Errorf("Drag(%v) = %v, want %v", tt.mouse, s.Value(), tt.want)
			}
		})
	}
}

func TestSliderPressMiss(t *testing.T) {
	s := newMassSlider()

	for _, pt := range [][2]float64{{1660, 55}, {1700, 49}, {1700, 71}, {1871, 55}} {
		if s.Press(pt[0], pt[1]) {
			t.Errorf("press at %v should miss", pt)
		}
	}

	s.Drag(1670)
	if s.Value() != 55 {
		t.Errorf("drag without press moved value to %v", s.Value())
	}
}

func TestSliderRelease(t *testing.T) {
	s := newMassSlider()
	s.Press(1670, 50)
	s.Drag(1670)
	s.Release()
	s.Drag(1860)

	if s.Value() != 10 {
		t.Errorf("drag after release moved value to %v", s.Value())
	}
	if s.Dragging() {
		t.Error("expected drag to end on release")
	}
}

func TestSliderNudgeAndSet(t *testing.T) {
	s := newMassSlider()

	s.Nudge(0.1)
	if math.Abs(s.Value()-64) > 1e-9 {
		t.Errorf("expected 64, got %v", s.Value())
	}

	s.Nudge(5)
	if s.Value() != 100 {
		t.Errorf("expected clamp to 100, got %v", s.Value())
	}

	s.Set(-3)
	if s.Value() != 10 {
		t.Errorf("expected clamp to 10, got %v", s.Value())
	}

	s.Set(math.NaN())
	if s.Value() != 10 {
		t.Errorf("NaN must be ignored, got %v", s.Value())
	}
}

func TestSliderKnob(t *testing.T) {
	s := newMassSlider()
	s.Set(100)
	if s.Fraction() != 1 || s.KnobX() != 1860 {
		t.Errorf("unexpected knob: fraction=%v x=%v", s.Fraction(), s.KnobX())
	}
}
