package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/export"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/metrics"
	"github.com/san-kum/dpsim/internal/physics"
	"github.com/san-kum/dpsim/internal/sim"
)

// stabilityThreshold flags angular speeds no real pendulum reaches.
const stabilityThreshold = 1e3

// newSimulator builds a driver with the standard metric set.
func newSimulator(cfg *config.Config, integratorName string) (*sim.Simulator, error) {
	integ, err := integrators.Lookup(integratorName)
	if err != nil {
		return nil, err
	}
	pol, err := sim.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	dyn := physics.NewDoublePendulum()
	s := sim.New(dyn, integ)
	s.SetPolicy(pol)
	s.AddMetric(metrics.NewEnergy(dyn))
	s.AddMetric(metrics.NewEnergyDrift(dyn))
	s.AddMetric(metrics.NewFlips())
	s.AddMetric(metrics.NewStability(stabilityThreshold))
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	s, err := newSimulator(cfg, cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	x0, p := physicsOf(cfg)
	logger.Info("running", "steps", cfg.Steps, "dt", cfg.Dt, "integrator", cfg.Integrator, "policy", cfg.Policy)

	start := time.Now()
	result, err := s.Run(ctx, x0, p, cfg.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		logger.Warn("step failed", "err", e)
	}

	if csvOut {
		return writeTrace(os.Stdout, result, p, cfg.Window.Pivot)
	}
	if svgOut {
		fmt.Println(traceSVG(result, p, cfg))
		return nil
	}

	d1, d2 := result.Final().Degrees()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "simulated\t%.3f\n", float64(result.StepsTaken)*cfg.Dt)
	fmt.Fprintf(w, "wall time\t%v\n", elapsed)
	fmt.Fprintf(w, "final\t%s\n", result.Final())
	fmt.Fprintf(w, "degrees\t%d, %d\n", d1, d2)
	fmt.Fprintf(w, "energy drift\t%.3e\n", result.EnergyDrift)

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot && len(result.States) > 1 {
		for i, caption := range []string{"angle 1 (rad)", "angle 2 (rad)"} {
			fmt.Println()
			fmt.Println(asciigraph.Plot(result.Series(i),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(caption),
			))
		}
	}
	return nil
}

func traceSVG(result *sim.Result, p dynamo.Params, cfg *config.Config) string {
	tr := export.Trace{
		Pivot: cfg.Window.Pivot,
		YUp:   cfg.Frame == config.FrameMath,
	}
	var last dynamo.State
	for _, x := range result.States {
		if !x.IsFinite() {
			break
		}
		_, b2 := integrators.DerivePositions(x, p, cfg.Window.Pivot)
		tr.Path = append(tr.Path, b2)
		last = x
	}
	tr.Bob1, tr.Bob2 = integrators.DerivePositions(last, p, cfg.Window.Pivot)
	return export.TrajectoryToSVG(tr, 800, 800, "#00c8ff")
}

var traceHeader = []string{"step", "time", "angle1", "angle2", "omega1", "omega2", "x1", "y1", "x2", "y2"}

func traceRow(step int, t float64, x dynamo.State, b1, b2 dynamo.Point) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		strconv.Itoa(step), f(t),
		f(x.Angle1), f(x.Angle2), f(x.AngularVelocity1), f(x.AngularVelocity2),
		f(b1.X), f(b1.Y), f(b2.X), f(b2.Y),
	}
}

func writeTrace(out io.Writer, result *sim.Result, p dynamo.Params, pivot dynamo.Point) error {
	w := csv.NewWriter(out)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for i, x := range result.States {
		b1, b2 := integrators.DerivePositions(x, p, pivot)
		if err := w.Write(traceRow(i, result.Times[i], x, b1, b2)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// csvRenderer writes each loop frame as a CSV row.
type csvRenderer struct {
	w *csv.Writer
}

func (r *csvRenderer) Render(f dynamo.Frame) error {
	if err := r.w.Write(traceRow(f.Step, f.Time, f.State, f.Bob1, f.Bob2)); err != nil {
		return err
	}
	r.w.Flush()
	return r.w.Error()
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	s, err := newSimulator(cfg, cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(traceHeader); err != nil {
		return err
	}

	loop := &sim.Loop{
		Sim:      s,
		Params:   sim.StaticParams(cfg.Physics()),
		Renderer: &csvRenderer{w: w},
		Logger:   logger,
		Pivot:    cfg.Window.Pivot,
		Dt:       cfg.Dt,
		FPS:      cfg.FPS,
		MaxSteps: cfg.Steps,
	}

	x, err := loop.Run(ctx, cfg.InitialState())
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("stream ended", "steps", s.Steps(), "state", x)
	return err
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	x0, p := physicsOf(cfg)
	fmt.Printf("comparing integrators (dt=%.4f, steps=%d)\n\n", cfg.Dt, cfg.Steps)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tANGLE1\tANGLE2\tDRIFT\tSTEPS\tTIME")

	for _, name := range names {
		s, err := newSimulator(cfg, name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := s.Run(cmd.Context(), x0, p, cfg.SimConfig())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		final := result.Final()
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2e\t%d\t%v\n",
			name, final.Angle1, final.Angle2, result.EnergyDrift, result.StepsTaken, elapsed)
	}

	return w.Flush()
}
