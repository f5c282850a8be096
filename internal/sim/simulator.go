package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Simulator drives one pendulum with a fixed-step integrator. It is owned by
// a single goroutine; Tick and rendering happen strictly in sequence.
type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	policy     Policy
	metrics    []dynamo.Metric
	observers  []dynamo.Observer

	steps int
	t     float64
}

func New(dyn dynamo.System, integrator dynamo.Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		policy:     PolicyFreeze,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetPolicy(p Policy)            { s.policy = p }
func (s *Simulator) Policy() Policy                { return s.policy }

// Steps is the number of accepted steps since the last Reset.
func (s *Simulator) Steps() int { return s.steps }

// Time is the simulated time since the last Reset.
func (s *Simulator) Time() float64 { return s.t }

// Reset clears the step counter, clock and metrics.
func (s *Simulator) Reset() {
	s.steps = 0
	s.t = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick advances x by one step of dt under parameters p.
//
// A step yielding NaN or Inf returns a *dynamo.SimulationError wrapping
// dynamo.ErrNumericalInstability. Under PolicyFreeze the returned state is
// x and the clock does not move; under PolicyPropagate it is the
// non-finite result.
func (s *Simulator) Tick(x dynamo.State, p dynamo.Params, dt float64) (dynamo.State, error) {
	for _, m := range s.metrics {
		m.Observe(x, p, s.t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, p, s.t)
	}

	next := s.integrator.Step(s.dyn, x, p, dt)

	if !next.IsFinite() {
		// metrics see the failed step even when the state is frozen
		for _, m := range s.metrics {
			m.Observe(next, p, s.t+dt)
		}
		err := &dynamo.SimulationError{
			Step:    s.steps + 1,
			Time:    s.t + dt,
			State:   next,
			Wrapped: dynamo.ErrNumericalInstability,
		}
		if s.policy == PolicyFreeze {
			return x, err
		}
		s.steps++
		s.t += dt
		return next, err
	}

	s.steps++
	s.t += dt
	return next, nil
}

// Run performs cfg.Steps ticks from x0 with fixed parameters. It stops early
// on the first numerical instability, recording the error in the result.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, p dynamo.Params, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:  make([]dynamo.State, 0, cfg.Steps+1),
		Times:   make([]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	s.Reset()

	x := x0
	result.States = append(result.States, x)
	result.Times = append(result.Times, s.t)

	e0, hasEnergy := s.energy(x, p)
	scale := s.energyScale(e0, p)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		next, err := s.Tick(x, p, cfg.Dt)
		if err != nil {
			result.Errors = append(result.Errors, err)
			if s.policy == PolicyPropagate {
				result.States = append(result.States, next)
				result.Times = append(result.Times, s.t)
				result.StepsTaken++
			}
			break
		}

		x = next
		result.StepsTaken++
		result.States = append(result.States, x)
		result.Times = append(result.Times, s.t)

		if hasEnergy {
			e, _ := s.energy(x, p)
			result.EnergyDrift = math.Max(result.EnergyDrift, math.Abs(e-e0)/scale)
		}
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f: %w", cfg.Dt, dynamo.ErrInvalidConfig)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d: %w", cfg.Steps, dynamo.ErrInvalidConfig)
	}
	return nil
}

func (s *Simulator) energy(x dynamo.State, p dynamo.Params) (float64, bool) {
	if h, ok := s.dyn.(dynamo.Hamiltonian); ok {
		return h.Energy(x, p), true
	}
	return 0, false
}

func (s *Simulator) energyScale(e0 float64, p dynamo.Params) float64 {
	scale := math.Abs(e0)
	if es, ok := s.dyn.(EnergyScaler); ok {
		scale = math.Max(scale, es.EnergyScale(p))
	}
	if scale == 0 {
		return 1
	}
	return scale
}
