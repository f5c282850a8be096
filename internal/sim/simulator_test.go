package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/metrics"
	"github.com/san-kum/dpsim/internal/physics"
)

var unit = dynamo.Params{Mass1: 1, Mass2: 1, Length1: 1, Length2: 1, Gravity: 9.81}

// degenerate has m1 = 0, so aligned arms zero the shared denominator.
var degenerate = dynamo.Params{Mass1: 0, Mass2: 60, Length1: 200, Length2: 200, Gravity: -10.5}

func newRK4Sim() *Simulator {
	return New(physics.NewDoublePendulum(), integrators.NewRK4())
}

func TestSimulatorRun(t *testing.T) {
	sim := newRK4Sim()

	cfg := Config{Dt: 0.005, Steps: 200}
	x0 := dynamo.State{Angle1: 0.5, Angle2: 0.3}

	result, err := sim.Run(context.Background(), x0, unit, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 201 {
		t.Errorf("expected 201 states, got %d", len(result.States))
	}
	if len(result.Times) != 201 {
		t.Errorf("expected 201 times, got %d", len(result.Times))
	}
	if result.StepsTaken != 200 {
		t.Errorf("expected 200 steps, got %d", result.StepsTaken)
	}
	if math.Abs(result.Times[200]-1.0) > 1e-9 {
		t.Errorf("expected final time 1.0, got %f", result.Times[200])
	}
	if result.EnergyDrift > 1e-6 {
		t.Errorf("energy drift too large: %.3e", result.EnergyDrift)
	}

	// The driver must agree with the bare step contract.
	x := x0
	for i := 0; i < 200; i++ {
		x = integrators.Step(x, unit, cfg.Dt)
	}
	if result.Final() != x {
		t.Errorf("driver diverged from Step: %v vs %v", result.Final(), x)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := newRK4Sim()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Steps: 10}},
		{"negative dt", Config{Dt: -0.1, Steps: 10}},
		{"NaN dt", Config{Dt: math.NaN(), Steps: 10}},
		{"zero steps", Config{Dt: 0.1, Steps: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), dynamo.State{}, unit, tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newRK4Sim().Run(ctx, dynamo.State{Angle1: 1}, unit, Config{Dt: 0.01, Steps: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps after cancel, got %d", result.StepsTaken)
	}
}

type countMetric struct {
	count int
}

func (c *countMetric) Name() string                                 { return "count" }
func (c *countMetric) Observe(dynamo.State, dynamo.Params, float64) { c.count++ }
func (c *countMetric) Value() float64                               { return float64(c.count) }
func (c *countMetric) Reset()                                       { c.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	sim := newRK4Sim()

	metric := &countMetric{}
	sim.AddMetric(metric)

	result, err := sim.Run(context.Background(), dynamo.State{Angle1: 0.1}, unit, Config{Dt: 0.1, Steps: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got, ok := result.Metrics["count"]; !ok || got != 10 {
		t.Errorf("expected count metric 10, got %v (present=%v)", got, ok)
	}
}

func TestTickFreeze(t *testing.T) {
	sim := newRK4Sim()
	x := dynamo.State{Angle1: 0.7, Angle2: 0.7}

	got, err := sim.Tick(x, degenerate, 0.5)

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected *SimulationError, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrNumericalInstability) {
		t.Errorf("expected ErrNumericalInstability, got %v", err)
	}
	if got != x {
		t.Errorf("expected frozen state %v, got %v", x, got)
	}
	if sim.Steps() != 0 || sim.Time() != 0 {
		t.Errorf("clock advanced on a rejected step: steps=%d t=%f", sim.Steps(), sim.Time())
	}

	// A valid mass lets the frozen state move again.
	p := degenerate
	p.Mass1 = 60
	got, err = sim.Tick(got, p, 0.5)
	if err != nil || !got.IsFinite() {
		t.Errorf("expected recovery, got %v (%v)", got, err)
	}
}

func TestTickPropagate(t *testing.T) {
	sim := newRK4Sim()
	sim.SetPolicy(PolicyPropagate)

	got, err := sim.Tick(dynamo.State{Angle1: 0.7, Angle2: 0.7}, degenerate, 0.5)
	if !errors.Is(err, dynamo.ErrNumericalInstability) {
		t.Fatalf("expected ErrNumericalInstability, got %v", err)
	}
	if got.IsFinite() {
		t.Errorf("expected non-finite state, got %v", got)
	}
	if sim.Steps() != 1 {
		t.Errorf("expected step to be counted, got %d", sim.Steps())
	}
}

func TestRunStopsOnInstability(t *testing.T) {
	tests := []struct {
		policy     Policy
		wantStates int
	}{
		{PolicyFreeze, 1},
		{PolicyPropagate, 2},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			sim := newRK4Sim()
			sim.SetPolicy(tt.policy)

			result, err := sim.Run(context.Background(), dynamo.State{Angle1: 0.7, Angle2: 0.7}, degenerate, Config{Dt: 0.5, Steps: 50})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if len(result.Errors) != 1 {
				t.Fatalf("expected one recorded error, got %v", result.Errors)
			}
			if len(result.States) != tt.wantStates {
				t.Errorf("expected %d states, got %d", tt.wantStates, len(result.States))
			}
		})
	}
}

func TestRunMetricsSeeInstability(t *testing.T) {
	tests := []struct {
		policy Policy
		want   float64
	}{
		{PolicyFreeze, 0.5},
		{PolicyPropagate, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			sim := newRK4Sim()
			sim.SetPolicy(tt.policy)
			sim.AddMetric(metrics.NewStability(1e3))

			result, err := sim.Run(context.Background(), dynamo.State{Angle1: 0.7, Angle2: 0.7}, degenerate, Config{Dt: 0.5, Steps: 10})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			got := result.Metrics["stability"]
			if got >= 1 {
				t.Fatalf("stability must drop below 1 after a blow-up, got %v", got)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected stability %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResultSeries(t *testing.T) {
	r := &Result{States: []dynamo.State{{Angle1: 1, AngularVelocity2: 4}, {Angle1: 2, AngularVelocity2: 8}}}

	a1 := r.Series(0)
	v2 := r.Series(3)
	if a1[0] != 1 || a1[1] != 2 || v2[0] != 4 || v2[1] != 8 {
		t.Errorf("unexpected series: a1=%v v2=%v", a1, v2)
	}
}
