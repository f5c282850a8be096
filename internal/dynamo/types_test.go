package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsFinite(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		finite bool
	}{
		{"zero", State{}, true},
		{"normal", State{1, 2, 3, 4}, true},
		{"with NaN", State{Angle2: math.NaN()}, false},
		{"with +Inf", State{AngularVelocity1: math.Inf(1)}, false},
		{"with -Inf", State{AngularVelocity2: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsFinite(); got != tt.finite {
				t.Errorf("IsFinite() = %v, want %v", got, tt.finite)
			}
		})
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3, 4}
	k := State{1, 1, 1, 1}

	got := a.AddScaled(k, 0.5)
	want := State{1.5, 2.5, 3.5, 4.5}
	if got != want {
		t.Errorf("AddScaled = %v, want %v", got, want)
	}

	diff := a.Sub(k)
	if diff != (State{0, 1, 2, 3}) {
		t.Errorf("Sub = %v", diff)
	}

	if n := (State{1, 1, 1, 1}).Norm(); math.Abs(n-2) > 1e-12 {
		t.Errorf("Norm = %v, want 2", n)
	}
}

func TestState_Degrees(t *testing.T) {
	tests := []struct {
		a1, a2       float64
		want1, want2 int
	}{
		{0, math.Pi, 0, 180},
		{math.Pi / 2, -math.Pi / 2, 90, 270},
		{4 * math.Pi, -5 * math.Pi, 0, 180},
		{2*math.Pi - 1e-9, 0.01, 0, 1},
		{math.NaN(), math.Inf(1), 0, 0},
		{math.Inf(-1), math.Pi / 2, 0, 90},
	}

	for _, tt := range tests {
		d1, d2 := State{Angle1: tt.a1, Angle2: tt.a2}.Degrees()
		if d1 != tt.want1 || d2 != tt.want2 {
			t.Errorf("Degrees(%v, %v) = (%d, %d), want (%d, %d)", tt.a1, tt.a2, d1, d2, tt.want1, tt.want2)
		}
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 150, Time: 1.5, Wrapped: ErrNumericalInstability}

	if !errors.Is(err, ErrNumericalInstability) {
		t.Error("SimulationError should unwrap to ErrNumericalInstability")
	}

	expected := "step 150 (t=1.5000): dynamo: numerical instability (NaN or Inf in state)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}
