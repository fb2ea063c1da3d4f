package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springcurve/internal/config"
	"github.com/san-kum/springcurve/internal/export"
	"github.com/san-kum/springcurve/internal/geom"
	"github.com/san-kum/springcurve/internal/metrics"
	"github.com/san-kum/springcurve/internal/scene"
	"github.com/san-kum/springcurve/internal/sim"
	"github.com/san-kum/springcurve/internal/storage"
	"github.com/spf13/cobra"
)

// buildPointer picks the headless pointer source. auto follows the config's
// pointer script when it has one and holds the pointer still otherwise.
func buildPointer(cmd *cobra.Command, cfg *config.Config) (sim.PointerSource, string, error) {
	cx, cy := cfg.Center()
	center := geom.Pt(cx, cy)

	mode := pointerMode
	if mode == "auto" {
		mode = "fixed"
		if len(cfg.Pointer) > 0 {
			mode = "script"
		}
	}

	switch mode {
	case "fixed":
		p := center
		if cmd.Flags().Changed("x") {
			p.X = pointerX
		}
		if cmd.Flags().Changed("y") {
			p.Y = pointerY
		}
		if !p.IsValid() {
			return nil, "", fmt.Errorf("pointer must be finite, got %v", p)
		}
		return sim.Fixed(p), fmt.Sprintf("fixed %v", p), nil
	case "orbit":
		if math.IsNaN(radius) || math.IsInf(radius, 0) {
			return nil, "", fmt.Errorf("orbit radius must be finite, got %g", radius)
		}
		return sim.Orbit{Center: center, Radius: radius, Period: period}, fmt.Sprintf("orbit r=%.0f T=%d", radius, period), nil
	case "script":
		if len(cfg.Pointer) == 0 {
			return nil, "", fmt.Errorf("pointer script is empty: add a pointer list to the config")
		}
		keys := make([]sim.Keyframe, len(cfg.Pointer))
		for i, w := range cfg.Pointer {
			keys[i] = sim.Keyframe{Frame: w.Frame, At: geom.Pt(w.X, w.Y)}
		}
		return sim.NewScript(keys), fmt.Sprintf("script (%d waypoints)", len(keys)), nil
	}
	return nil, "", fmt.Errorf("unknown pointer source: %s (available: auto, fixed, orbit, script)", pointerMode)
}

func simConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Frames = frames
	cfg.SettleTolerance = tolerance
	cfg.StopWhenSettled = untilSettled
	return cfg
}

func presetName() string {
	if preset == "" {
		return "default"
	}
	return preset
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	src, desc, err := buildPointer(cmd, cfg)
	if err != nil {
		return err
	}

	params := cfg.Params()
	runner := sim.NewRunner(cfg.NewScene(), params)
	for _, m := range metrics.Default(tolerance) {
		runner.AddMetric(m)
	}

	fmt.Printf("running %d frames, pointer %s...\n", frames, desc)
	start := time.Now()
	result, err := runner.Run(context.Background(), src, simConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Printf("run: %d frames in %v, settled at %d", result.Frames, elapsed, result.SettledAt)

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	if result.SettledAt >= 0 {
		fmt.Printf("settled at frame %d\n", result.SettledAt)
	} else {
		fmt.Println("not settled")
	}

	if plot && len(result.Trace) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.Trace,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("target distance (px)"),
		))
	}

	fmt.Println("\nmetrics:")
	if err := printMetrics(result.Metrics); err != nil {
		return err
	}

	if save {
		st := storage.New(runsDir())
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(presetName(), desc, params, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func runsDir() string {
	return filepath.Join(dataDir, "runs")
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	return w.Flush()
}

func comparePresets(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	src, desc, err := buildPointer(cmd, base)
	if err != nil {
		return err
	}

	params := make([]scene.Params, len(names))
	for i, name := range names {
		cfg := base.Clone()
		if err := cfg.ApplyPreset(name); err != nil {
			return err
		}
		params[i] = cfg.Params()
	}

	sweep := sim.NewSweep(base.NewScene, func() []sim.Metric { return metrics.Default(tolerance) })
	results, err := sweep.Run(context.Background(), src, params, simConfig())
	if err != nil {
		return err
	}

	fmt.Printf("comparing %d presets over %d frames, pointer %s\n\n", len(names), frames, desc)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTIFFNESS\tDAMPING\tSETTLED\tTRACKING\tENERGY\tARC")
	for i, name := range names {
		res := results[i]
		settled := "-"
		if res.SettledAt >= 0 {
			settled = fmt.Sprintf("%d", res.SettledAt)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%s\t%.3f\t%.3f\t%.1f\n",
			name,
			params[i].Stiffness,
			params[i].Damping,
			settled,
			res.Metrics["tracking"],
			res.Metrics["kinetic_energy"],
			res.Metrics["arc_length"],
		)
	}
	return w.Flush()
}

// gifRecorder rasterizes every frame of a headless run.
type gifRecorder struct {
	w, h   float64
	frames []*image.Paletted
	style  export.Style
}

func (g *gifRecorder) OnFrame(f scene.Frame) {
	g.frames = append(g.frames, export.Rasterize(f, g.w, g.h, int(g.w/2), int(g.h/2), g.style))
}

func exportFrame(cmd *cobra.Command, args []string) error {
	format := args[0]
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	src, _, err := buildPointer(cmd, cfg)
	if err != nil {
		return err
	}

	path := outPath
	if path == "" {
		path = "springcurve." + format
	}

	params := cfg.Params()
	runner := sim.NewRunner(cfg.NewScene(), params)
	rec := &gifRecorder{w: cfg.Surface.Width, h: cfg.Surface.Height, style: export.DefaultStyle()}
	if format == "gif" {
		runner.AddObserver(rec)
	}

	result, err := runner.Run(context.Background(), src, simConfig())
	if err != nil {
		return err
	}
	if result.Frames == 0 {
		return sim.ErrNoFrames
	}

	switch format {
	case "svg":
		err = export.ExportSVG(path, result.Last, cfg.Surface.Width, cfg.Surface.Height, export.DefaultStyle())
	case "json":
		err = export.ExportJSON(path, result.Last, params)
	case "gif":
		delay := max(1, 100/cfg.Render.FPS)
		err = export.SaveGIF(path, rec.frames, delay)
	}
	if err != nil {
		return err
	}

	log.Printf("exported %s after %d frames", path, result.Frames)
	fmt.Printf("wrote %s (frame %d)\n", path, result.Last.Index)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTIFFNESS\tDAMPING")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\n", name, p.Stiffness, p.Damping)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(runsDir())
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tSETTLED\tPOINTER")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.SettledAt,
			run.Pointer,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(runsDir())
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s (k=%.3f d=%.3f)\n", meta.Preset, meta.Params.Stiffness, meta.Params.Damping)
	fmt.Printf("pointer: %s\n", meta.Pointer)
	fmt.Printf("frames: %d\n\n", len(trace))

	fmt.Println(asciigraph.Plot(trace,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("target distance (px)"),
	))
	fmt.Println()
	fmt.Println(strings.Repeat("-", 40))
	return printMetrics(meta.Metrics)
}
