package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/sim"
)

// Scenario is a scripted run: one continuous trajectory whose parameters
// change between segments, as if someone moved the sliders.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs for Duration simulated time with Params applied on top
// of whatever the previous step left. Gravity is a magnitude.
type ScenarioStep struct {
	Duration float64            `yaml:"duration"`
	Params   map[string]float64 `yaml:"params"`
}

// StepResult summarizes one segment.
type StepResult struct {
	Index  int
	Params dynamo.Params
	Start  dynamo.State
	End    dynamo.State
	Steps  int
	Errors int
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("%s: no steps: %w", path, dynamo.ErrInvalidConfig)
	}

	return &scenario, nil
}

// RunScenario drives s through every step from x0. The state carries over
// between steps; only the parameters change. gravitySign converts gravity
// magnitudes to the host frame.
func RunScenario(
	ctx context.Context,
	s *sim.Simulator,
	scenario *Scenario,
	x0 dynamo.State,
	base dynamo.Params,
	gravitySign float64,
	dt float64,
	logger *log.Logger,
) ([]StepResult, error) {
	if !(dt > 0) {
		return nil, fmt.Errorf("dt=%v: %w", dt, dynamo.ErrInvalidConfig)
	}

	results := make([]StepResult, 0, len(scenario.Steps))
	x, p := x0, base

	for i, step := range scenario.Steps {
		for name, v := range step.Params {
			if name == "gravity" {
				v = gravitySign * math.Abs(v)
			}
			next, err := p.With(name, v)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			p = next
		}
		if err := p.Validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "params", p)

		res := StepResult{Index: i, Params: p, Start: x}
		n := int(math.Round(step.Duration / dt))
		for k := 0; k < n; k++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			var err error
			x, err = s.Tick(x, p, dt)
			res.Steps++
			if err != nil {
				res.Errors++
				logger.Debug("tick failed", "step", i+1, "err", err)
			}
		}
		res.End = x
		results = append(results, res)
	}

	return results, nil
}

// MonteCarloConfig perturbs every state component uniformly within
// ±Perturbation around BaseState.
type MonteCarloConfig struct {
	BaseState    dynamo.State
	Perturbation float64
	NumTrials    int
	Steps        int
	Dt           float64
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	InitState  dynamo.State
	FinalState dynamo.State
	Stable     bool // finished every step without a numerical failure
}

// RunMonteCarlo runs the perturbed trials concurrently on ens.
func RunMonteCarlo(ctx context.Context, ens *sim.Ensemble, p dynamo.Params, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	starts := make([]dynamo.State, cfg.NumTrials)
	jitter := func() float64 { return (rng.Float64() - 0.5) * 2 * cfg.Perturbation }
	for i := range starts {
		starts[i] = cfg.BaseState.AddScaled(dynamo.State{
			Angle1:           jitter(),
			Angle2:           jitter(),
			AngularVelocity1: jitter(),
			AngularVelocity2: jitter(),
		}, 1)
	}

	runs, err := ens.Run(ctx, starts, p, sim.Config{Dt: cfg.Dt, Steps: cfg.Steps})
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		final := r.Final()
		results[i] = MonteCarloResult{
			TrialID:    i,
			InitState:  starts[i],
			FinalState: final,
			Stable:     len(r.Errors) == 0 && final.IsFinite(),
		}
	}
	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
