package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/automation"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/integrators"
	"github.com/san-kum/dpsim/internal/physics"
	"github.com/san-kum/dpsim/internal/sim"
)

var (
	trials int
	seed   int64
	jitter float64
)

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	s, err := newSimulator(cfg, cfg.Integrator)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	x0, p := physicsOf(cfg)
	results, err := automation.RunScenario(ctx, s, sc, x0, p, cfg.GravitySign(), cfg.Dt, newLogger(os.Stderr))
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tM1\tM2\tL1\tL2\tG\tSTEPS\tERRORS\tEND")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%g\t%g\t%g\t%g\t%g\t%d\t%d\t%s\n",
			r.Index+1, r.Params.Mass1, r.Params.Mass2, r.Params.Length1, r.Params.Length2, r.Params.Gravity,
			r.Steps, r.Errors, r.End)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pol, err := sim.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(physics.NewDoublePendulum(), func() dynamo.Integrator {
		i, _ := integrators.Lookup(cfg.Integrator)
		return i
	})
	ens.SetPolicy(pol)

	x0, p := physicsOf(cfg)
	results, err := automation.RunMonteCarlo(cmd.Context(), ens, p, &automation.MonteCarloConfig{
		BaseState:    x0,
		Perturbation: jitter,
		NumTrials:    trials,
		Steps:        cfg.Steps,
		Dt:           cfg.Dt,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), stable, unstable)
	return nil
}
