package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
)

// Command is what the host's input asks the loop to do this tick.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause // toggles
	CommandReset
)

// Input is polled once per tick before anything else.
type Input interface {
	Poll() Command
}

// ParamSource hands out the parameter values for the coming step.
type ParamSource interface {
	Snapshot() dynamo.Params
}

type Renderer interface {
	Render(f dynamo.Frame) error
}

// StaticParams is a ParamSource that never changes.
type StaticParams dynamo.Params

func (p StaticParams) Snapshot() dynamo.Params { return dynamo.Params(p) }

// Loop is the host loop: poll input, snapshot params, step, derive
// positions, render. It runs on the caller's goroutine. While paused it
// keeps polling and rendering the held state.
type Loop struct {
	Sim      *Simulator
	Input    Input
	Params   ParamSource
	Renderer Renderer
	Logger   *log.Logger

	Pivot dynamo.Point
	Dt    float64
	FPS   int

	// MaxSteps stops the loop after that many ticks; 0 runs until quit.
	MaxSteps int

	lastErr error
}

// Run blocks until input asks to quit, MaxSteps ticks have run, the
// renderer fails or ctx is canceled. It returns the last state.
func (l *Loop) Run(ctx context.Context, x0 dynamo.State) (dynamo.State, error) {
	if l.FPS <= 0 {
		return x0, fmt.Errorf("fps must be positive, got %d: %w", l.FPS, dynamo.ErrInvalidConfig)
	}
	if !(l.Dt > 0) {
		return x0, fmt.Errorf("dt must be positive, got %f: %w", l.Dt, dynamo.ErrInvalidConfig)
	}

	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	ticker := time.NewTicker(time.Second / time.Duration(l.FPS))
	defer ticker.Stop()

	x := x0
	paused := false

	for ticks := 0; l.MaxSteps == 0 || ticks < l.MaxSteps; ticks++ {
		select {
		case <-ctx.Done():
			return x, ctx.Err()
		case <-ticker.C:
		}

		hold := paused
		if l.Input != nil {
			switch l.Input.Poll() {
			case CommandQuit:
				logger.Debug("quit requested", "step", l.Sim.Steps())
				return x, nil
			case CommandPause:
				paused = !paused
				hold = paused
			case CommandReset:
				// The start state is shown for one frame before stepping.
				x = x0
				l.lastErr = nil
				l.Sim.Reset()
				hold = true
			}
		}

		p := l.Params.Snapshot()
		if !hold {
			x = l.advance(x, p, logger)
		}

		bob1, bob2 := integrators.DerivePositions(x, p, l.Pivot)
		frame := dynamo.Frame{
			Step:   l.Sim.Steps(),
			Time:   l.Sim.Time(),
			State:  x,
			Params: p,
			Pivot:  l.Pivot,
			Bob1:   bob1,
			Bob2:   bob2,
			Err:    l.lastErr,
		}

		if err := l.Renderer.Render(frame); err != nil {
			return x, fmt.Errorf("render: %w", err)
		}
	}

	return x, nil
}

// advance runs one tick. A step error is logged when it first appears and
// kept for the frames that follow until a step succeeds again.
func (l *Loop) advance(x dynamo.State, p dynamo.Params, logger *log.Logger) dynamo.State {
	next, err := l.Sim.Tick(x, p, l.Dt)
	switch {
	case err != nil && l.lastErr == nil:
		logger.Warn("numerical instability", "err", err, "policy", l.Sim.Policy())
	case err == nil && l.lastErr != nil:
		logger.Info("simulation recovered", "step", l.Sim.Steps())
	}
	l.lastErr = err
	return next
}
