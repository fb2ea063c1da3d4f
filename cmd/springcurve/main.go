package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/gui"
	"github.com/san-kum/springcurve/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	stiffness float64
	damping   float64
	offset    float64
	samples   int
	interval  int
	frameRate int
	theme     string

	gifPath      string
	snapshotPath string

	frames       int
	tolerance    float64
	untilSettled bool
	pointerMode  string
	pointerX     float64
	pointerY     float64
	radius       float64
	period       int
	save         bool
	plot         bool
	outPath      string

	logFile *os.File
)

// main registers the commands and runs the root command, which opens the
// preset menu when no subcommand is given. It exits 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "springcurve",
		Short: "bezier curve whose control points chase the pointer on springs",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(filepath.Join(dataDir, logDir), debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, liveOptions())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".springcurve", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "physics preset")
	pf.BoolVar(&debug, "debug", false, "write logs to <data>/logs")
	pf.Float64Var(&stiffness, "stiffness", 0, "spring stiffness in (0,1)")
	pf.Float64Var(&damping, "damping", 0, "velocity damping in (0,1)")
	pf.Float64Var(&offset, "offset", 0, "horizontal target offset from the pointer")
	pf.IntVar(&samples, "samples", 0, "polyline samples per frame")
	pf.IntVar(&interval, "interval", 0, "tangent marker every n-th sample")
	pf.IntVar(&frameRate, "fps", 0, "frame rate")
	pf.StringVar(&theme, "theme", "", "terminal color theme")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "curve in the terminal, mouse driven",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, liveOptions())
		},
	}
	liveCmd.Flags().StringVar(&gifPath, "gif", "springcurve.gif", "GIF recording path")
	liveCmd.Flags().StringVar(&snapshotPath, "snapshot", "springcurve.svg", "SVG snapshot path")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "curve in a native window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg, snapshotPath)
		},
	}
	guiCmd.Flags().StringVar(&snapshotPath, "snapshot", "springcurve.svg", "SVG snapshot path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless against a scripted pointer",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "archive the run under <data>/runs")
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot the target distance")

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "run presets side by side against the same pointer",
		RunE:  comparePresets,
	}
	addRunFlags(compareCmd)

	exportCmd := &cobra.Command{
		Use:       "export [svg|json|gif]",
		Short:     "run headless and write the result to a file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"svg", "json", "gif"},
		RunE:      exportFrame,
	}
	addRunFlags(exportCmd)
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default springcurve.<format>)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list physics presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			path := "springcurve.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, compareCmd, exportCmd, presetsCmd, runsCmd, plotCmd, initCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.5, "settle tolerance in px")
	cmd.Flags().BoolVar(&untilSettled, "until-settled", false, "stop once both springs settle")
	cmd.Flags().StringVar(&pointerMode, "pointer", "auto", "pointer source: auto, fixed, orbit, script")
	cmd.Flags().Float64Var(&pointerX, "x", 0, "fixed pointer x (default surface centre)")
	cmd.Flags().Float64Var(&pointerY, "y", 0, "fixed pointer y (default surface centre)")
	cmd.Flags().Float64Var(&radius, "radius", 120, "orbit radius")
	cmd.Flags().IntVar(&period, "period", 240, "orbit period in frames")
}

func liveOptions() viz.Options {
	opts := viz.DefaultOptions()
	if gifPath != "" {
		opts.GIFPath = gifPath
	}
	if snapshotPath != "" {
		opts.SnapshotPath = snapshotPath
	}
	return opts
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order, and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
		log.Printf("preset %s: k=%.3f d=%.3f", preset, cfg.Physics.Stiffness, cfg.Physics.Damping)
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		log.Printf("loaded config %s", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("stiffness") {
		cfg.Physics.Stiffness = stiffness
	}
	if flags.Changed("damping") {
		cfg.Physics.Damping = damping
	}
	if flags.Changed("offset") {
		cfg.Interaction.PointOffset = offset
	}
	if flags.Changed("samples") {
		cfg.Render.NumSamples = samples
	}
	if flags.Changed("interval") {
		cfg.Render.TangentInterval = interval
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
