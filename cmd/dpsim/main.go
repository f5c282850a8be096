package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/san-kum/dpsim/internal/config"
	"github.com/san-kum/dpsim/internal/dynamo"
	"github.com/san-kum/dpsim/internal/logging"
)

var (
	// Shared
	configFile string
	preset     string
	logLevel   string
	logFile    string
	profMode   string

	// Simulation
	dt         float64
	steps      int
	fps        int
	theta1     float64
	theta2     float64
	omega1     float64
	omega2     float64
	mass1      float64
	mass2      float64
	length1    float64
	length2    float64
	gravity    float64
	integrator string
	policy     string
	frame      string

	// Output
	plot   bool
	csvOut bool
	svgOut bool

	// Analysis
	duration float64
	eps      float64
	members  int
	arm      int
	poincare bool
	param    string
	paramMin float64
	paramMax float64
	paramN   int
	outFile  string
	imageOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dpsim",
		Short:        "double pendulum simulation lab",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml, or hjson by extension)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&profMode, "profile", "", "write a cpu or mem profile to the working directory")

	var prof interface{ Stop() }
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		prof, err = startProfile(profMode)
		return err
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if prof != nil {
			prof.Stop()
		}
	}
	addSimFlags(rootCmd)
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file while the terminal UI runs")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view with draggable sliders",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to file while the terminal UI runs")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "interactive window view",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addSimFlags(windowCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "headless fixed-step run",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot both angles")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write the trace as CSV to stdout")
	runCmd.Flags().BoolVar(&svgOut, "svg", false, "write the path of the outer bob as SVG to stdout")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "paced run writing one CSV row per frame",
		Args:  cobra.NoArgs,
		RunE:  runStream,
	}
	addSimFlags(streamCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators from the same start",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	chaosCmd := &cobra.Command{
		Use:   "chaos",
		Short: "Lyapunov estimate and ensemble divergence",
		Args:  cobra.NoArgs,
		RunE:  runChaos,
	}
	addSimFlags(chaosCmd)
	chaosCmd.Flags().Float64Var(&eps, "eps", 1e-8, "initial perturbation of angle1")
	chaosCmd.Flags().IntVar(&members, "members", 8, "ensemble size")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase space plot",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	addSimFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&arm, "arm", 1, "arm to plot (1 or 2)")
	phaseCmd.Flags().BoolVar(&poincare, "poincare", false, "Poincare section instead of the full trajectory")
	phaseCmd.Flags().Float64Var(&duration, "time", 0, "simulated seconds (default steps*dt)")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum",
		Short: "frequency analysis of angle1",
		Args:  cobra.NoArgs,
		RunE:  analyzeSpectrum,
	}
	addSimFlags(spectrumCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and estimate chaos per value",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&param, "param", "mass2", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&paramMin, "min", config.MinMass, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", config.MaxMass, "last value")
	sweepCmd.Flags().IntVar(&paramN, "n", 10, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config as yaml",
		Args:  cobra.NoArgs,
		RunE:  showConfig,
	}
	addSimFlags(configCmd)
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "save to file instead of printing")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of parameter changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSimFlags(scenarioCmd)

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturbed trials from the start state",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().Float64Var(&jitter, "eps", 0.01, "perturbation of each state component")
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	for _, c := range []*cobra.Command{phaseCmd, spectrumCmd} {
		c.Flags().StringVar(&imageOut, "image", "", "also save the plot to an image file (.png, .svg, .pdf)")
	}

	for _, c := range []*cobra.Command{chaosCmd, spectrumCmd, sweepCmd} {
		c.Flags().Float64Var(&duration, "time", 0, "simulated seconds (default steps*dt)")
	}

	rootCmd.AddCommand(liveCmd, windowCmd, runCmd, streamCmd, compareCmd, chaosCmd, phaseCmd, spectrumCmd, sweepCmd, presetsCmd, configCmd, scenarioCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// startProfile returns nil when mode is empty.
func startProfile(mode string) (interface{ Stop() }, error) {
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook), nil
	}
	return nil, fmt.Errorf("unknown profile mode %q (want cpu or mem)", mode)
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	f.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	f.Float64Var(&theta1, "theta1", math.Pi/2, "initial angle of arm 1 (rad)")
	f.Float64Var(&theta2, "theta2", math.Pi/2, "initial angle of arm 2 (rad)")
	f.Float64Var(&omega1, "omega1", 0, "initial angular velocity of arm 1")
	f.Float64Var(&omega2, "omega2", 0, "initial angular velocity of arm 2")
	f.Float64Var(&mass1, "m1", config.DefaultMass, "mass of bob 1")
	f.Float64Var(&mass2, "m2", config.DefaultMass, "mass of bob 2")
	f.Float64Var(&length1, "l1", config.DefaultLength, "length of arm 1")
	f.Float64Var(&length2, "l2", config.DefaultLength, "length of arm 2")
	f.Float64Var(&gravity, "g", config.DefaultGravity, "gravity magnitude")
	f.StringVar(&integrator, "integrator", "rk4", "integrator")
	f.StringVar(&policy, "policy", "freeze", "instability policy (freeze, propagate)")
	f.StringVar(&frame, "frame", config.FrameScreen, "host frame (screen, math)")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("fps") {
		cfg.FPS = fps
	}
	if f.Changed("theta1") {
		cfg.InitState.Theta1 = theta1
	}
	if f.Changed("theta2") {
		cfg.InitState.Theta2 = theta2
	}
	if f.Changed("omega1") {
		cfg.InitState.Omega1 = omega1
	}
	if f.Changed("omega2") {
		cfg.InitState.Omega2 = omega2
	}
	if f.Changed("m1") {
		cfg.Params.Mass1 = mass1
	}
	if f.Changed("m2") {
		cfg.Params.Mass2 = mass2
	}
	if f.Changed("l1") {
		cfg.Params.Length1 = length1
	}
	if f.Changed("l2") {
		cfg.Params.Length2 = length2
	}
	if f.Changed("g") {
		cfg.Params.Gravity = gravity
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("policy") {
		cfg.Policy = policy
	}
	if f.Changed("frame") {
		cfg.Frame = frame
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer) *log.Logger {
	logger, err := logging.New(w, logLevel)
	if err != nil {
		logger.Warn("falling back to info", "err", err)
	}
	return logger
}

// simSeconds is the --time flag, or the configured run length.
func simSeconds(cfg *config.Config) float64 {
	if duration > 0 {
		return duration
	}
	return float64(cfg.Steps) * cfg.Dt
}

func physicsOf(cfg *config.Config) (dynamo.State, dynamo.Params) {
	return cfg.InitialState(), cfg.Physics()
}
