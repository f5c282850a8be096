package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Ensemble runs independent simulations concurrently. Each run gets its own
// Simulator and metrics; nothing is shared between them.
type Ensemble struct {
	dyn        dynamo.System
	integrator func() dynamo.Integrator
	policy     Policy
	workers    int

	// Metrics, when set, builds the metric set for each run.
	Metrics func() []dynamo.Metric
}

func NewEnsemble(dyn dynamo.System, integrator func() dynamo.Integrator) *Ensemble {
	return &Ensemble{
		dyn:        dyn,
		integrator: integrator,
		workers:    runtime.GOMAXPROCS(0),
	}
}

func (e *Ensemble) SetPolicy(p Policy) { e.policy = p }

func (e *Ensemble) SetWorkers(n int) {
	if n > 0 {
		e.workers = n
	}
}

// Run simulates every start state with the same parameters. Results are
// returned in the order of starts. The first run error cancels the rest.
func (e *Ensemble) Run(ctx context.Context, starts []dynamo.State, p dynamo.Params, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(starts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, x0 := range starts {
		g.Go(func() error {
			s := New(e.dyn, e.integrator())
			s.SetPolicy(e.policy)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, x0, p, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Spread returns n states around x0, the i-th with Angle1 shifted by i*eps.
func Spread(x0 dynamo.State, n int, eps float64) []dynamo.State {
	out := make([]dynamo.State, n)
	for i := range out {
		out[i] = x0
		out[i].Angle1 += float64(i) * eps
	}
	return out
}
