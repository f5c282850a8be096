package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/analysis"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/export"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/metrics"
	"github.com/san-kum/dpsim/internal/physics"
	"github.com/san-kum/dpsim/internal/sim"
)

func runChaos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.Lookup(cfg.Integrator)
	if err != nil {
		return err
	}
	pol, err := sim.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}
	if members < 2 {
		return fmt.Errorf("members=%d: need at least 2: %w", members, dynamo.ErrInvalidConfig)
	}

	dyn := physics.NewDoublePendulum()
	x0, p := physicsOf(cfg)
	seconds := simSeconds(cfg)

	lambda := analysis.LyapunovExponent(dyn, integ, x0, p, cfg.Dt, seconds, eps)
	fmt.Printf("lyapunov exponent: %.4f /unit time\n", lambda)
	switch {
	case lambda > 0.1:
		fmt.Println("behaviour: chaotic")
	case lambda > 0:
		fmt.Println("behaviour: weakly chaotic")
	default:
		fmt.Println("behaviour: regular")
	}
	fmt.Println()

	ens := sim.NewEnsemble(dyn, func() dynamo.Integrator {
		i, _ := integrators.Lookup(cfg.Integrator)
		return i
	})
	ens.SetPolicy(pol)
	ens.Metrics = func() []dynamo.Metric { return []dynamo.Metric{metrics.NewFlips()} }

	runCfg := sim.Config{Dt: cfg.Dt, Steps: int(math.Round(seconds / cfg.Dt))}
	results, err := ens.Run(cmd.Context(), sim.Spread(x0, members, eps), p, runCfg)
	if err != nil {
		return err
	}

	ref := results[0]
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEMBER\tOFFSET\tSEPARATION\tFLIPS")

	var widest []float64
	for i, res := range results {
		sep := separation(ref, res)
		final := 0.0
		if len(sep) > 0 {
			final = sep[len(sep)-1]
		}
		fmt.Fprintf(w, "%d\t%.1e\t%.3e\t%.0f\n", i, float64(i)*eps, final, res.Metrics["flips"])
		if i == len(results)-1 {
			widest = sep
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(widest) > 1 {
		logSep := make([]float64, len(widest))
		for i, d := range widest {
			logSep[i] = math.Log10(math.Max(d, 1e-16))
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(logSep,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("log10 separation of the widest member"),
		))
	}
	return nil
}

// separation is the state-space distance between two runs at each common
// step.
func separation(a, b *sim.Result) []float64 {
	n := min(len(a.States), len(b.States))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = b.States[i].Sub(a.States[i]).Norm()
	}
	return out
}

func phasePlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.Lookup(cfg.Integrator)
	if err != nil {
		return err
	}
	if arm != 1 && arm != 2 {
		return fmt.Errorf("arm=%d: %w", arm, dynamo.ErrInvalidConfig)
	}

	dyn := physics.NewDoublePendulum()
	x0, p := physicsOf(cfg)
	seconds := simSeconds(cfg)

	var portrait *analysis.PhasePortrait2D
	var title string
	if poincare {
		portrait = analysis.GeneratePoincareSection(dyn, integ, x0, p, cfg.Dt, seconds)
		title = "poincare section (angle1 = 0, rising): angle2 vs omega2"
	} else {
		xIdx, yIdx := arm-1, arm+1
		portrait = analysis.GeneratePhasePortrait(dyn, integ, x0, p, xIdx, yIdx, cfg.Dt, seconds)
		title = fmt.Sprintf("phase portrait: angle%d vs omega%d", arm, arm)
	}

	if portrait == nil || len(portrait.Points) == 0 {
		return fmt.Errorf("no points to plot")
	}

	fmt.Println(title)
	fmt.Printf("points: %d\n\n", len(portrait.Points))
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	if imageOut != "" {
		xLabel, yLabel := fmt.Sprintf("angle%d", arm), fmt.Sprintf("omega%d", arm)
		if poincare {
			xLabel, yLabel = "angle2", "omega2"
		}
		if err := export.SavePhasePlot(portrait, title, xLabel, yLabel, imageOut); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", imageOut)
	}
	return nil
}

func analyzeSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg, cfg.Integrator)
	if err != nil {
		return err
	}

	x0, p := physicsOf(cfg)
	runCfg := sim.Config{Dt: cfg.Dt, Steps: int(math.Round(simSeconds(cfg) / cfg.Dt))}
	result, err := s.Run(cmd.Context(), x0, p, runCfg)
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return result.Errors[0]
	}

	ps := analysis.PowerSpectrum(result.Series(0), cfg.Dt)
	if len(ps.Power) < 2 {
		return fmt.Errorf("not enough samples: %d", len(result.States))
	}

	plotData := ps.Power[:max(2, len(ps.Power)/4)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (angle1)"),
	))
	fmt.Println()

	freq := ps.Peak()
	fmt.Printf("resolution: %.4f\n", ps.Freqs[1])
	fmt.Printf("dominant frequency: %.4f\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f\n", 1/freq)
	}

	if imageOut != "" {
		maxFreq := ps.Freqs[len(plotData)-1]
		if err := export.SaveSpectrumPlot(ps, maxFreq, "power spectrum (angle1)", imageOut); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", imageOut)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := integrators.Lookup(cfg.Integrator)
	if err != nil {
		return err
	}

	x0, p := physicsOf(cfg)
	points, err := analysis.Sweep(physics.NewDoublePendulum(), integ, x0, p,
		param, paramMin, paramMax, paramN, cfg.Dt, simSeconds(cfg))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLYAPUNOV\tFLIPS\n", param)
	lyap := make([]float64, len(points))
	for i, pt := range points {
		fmt.Fprintf(w, "%.4g\t%.4f\t%d\n", pt.Value, pt.Lyapunov, pt.Flips)
		lyap[i] = pt.Lyapunov
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(lyap) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(lyap,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("lyapunov vs "+param),
		))
	}
	return nil
}
