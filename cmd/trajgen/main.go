package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/trajgen/internal/chrono"
	"github.com/san-kum/trajgen/internal/config"
	"github.com/san-kum/trajgen/internal/optim"
	"github.com/san-kum/trajgen/internal/plant"
	"github.com/san-kum/trajgen/internal/registry"
	"github.com/san-kum/trajgen/internal/trajectory"
	"github.com/san-kum/trajgen/internal/viz"
	"github.com/san-kum/trajgen/internal/waypoint"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	configFile string
	preset     string
	generator  string
	evalStep   float64
	plotStep   float64
	iterations int
	kp         float64
	ki         float64
	kd         float64
	kpRange    []float64
	kdRange    []float64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "trajgen",
		Short:        "waypoint trajectory generation lab",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "line", "preset used when no config file is given")
	rootCmd.PersistentFlags().StringVar(&generator, "generator", "", "override the configured generator")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "sample the open-loop reference",
		RunE:  evalTrajectory,
	}
	evalCmd.Flags().Float64Var(&evalStep, "step", 0.25, "sampling step in seconds")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot every axis of the reference",
		RunE:  plotTrajectory,
	}
	plotCmd.Flags().Float64Var(&plotStep, "step", 0.05, "sampling step in seconds")

	waypointsCmd := &cobra.Command{
		Use:   "waypoints",
		Short: "print the waypoint matrix with times in the first row",
		RunE:  printWaypoints,
	}

	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "track the trajectory with a simulated point mass",
		RunE:  trackTrajectory,
	}
	trackCmd.Flags().Float64Var(&kp, "kp", -1, "override tracker kp")
	trackCmd.Flags().Float64Var(&ki, "ki", -1, "override tracker ki")
	trackCmd.Flags().Float64Var(&kd, "kd", -1, "override tracker kd")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search tracker gains for the lowest rms tracking error",
		RunE:  tuneGains,
	}
	tuneCmd.Flags().Float64SliceVar(&kpRange, "kp", []float64{10, 50, 100, 200}, "kp values")
	tuneCmd.Flags().Float64SliceVar(&kdRange, "kd", []float64{5, 10, 20, 30}, "kd values")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "follow the trajectory in real time",
		RunE:  runLive,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark evaluation throughput per generator",
		RunE:  benchGenerators,
	}
	benchCmd.Flags().IntVar(&iterations, "n", 100000, "evaluations per generator")

	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return config.Save(args[0], cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGENERATOR\tWAYPOINTS\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%.1fs\n", name, p.Generator, len(p.Waypoints), p.Duration)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(evalCmd, plotCmd, waypointsCmd, trackCmd, tuneCmd, liveCmd, benchCmd, saveCmd, presetsCmd)
	return rootCmd
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if generator != "" {
		cfg.Generator = generator
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup() (*config.Config, *trajectory.Evaluator, *waypoint.Set, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	gen, err := registry.New().Generator(cfg.Generator, cfg.GeneratorParams())
	if err != nil {
		return nil, nil, nil, err
	}
	wps, err := cfg.BuildSet()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, trajectory.New(gen, wps), wps, nil
}

// sample evaluates the open-loop reference every step seconds until the
// generator reports finished.
func sample(ev *trajectory.Evaluator, end, step float64, fn func(t float64, st trajectory.Status, ref trajectory.Reference)) error {
	if step <= 0 {
		return fmt.Errorf("step must be positive, got %f", step)
	}
	var ref trajectory.Reference
	for i := 0; ; i++ {
		t := float64(i) * step
		st, err := ev.Evaluate(&ref, t)
		if err != nil {
			return err
		}
		fn(t, st, ref)
		if st == trajectory.StatusFinished || t > end {
			return nil
		}
	}
}

func evalTrajectory(cmd *cobra.Command, args []string) error {
	_, ev, wps, err := setup()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tSTATUS\tPOSITION\tVELOCITY\tACCELERATION")
	err = sample(ev, wps.LastTime(), evalStep, func(t float64, st trajectory.Status, ref trajectory.Reference) {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n", t, st, ref.Position, ref.Velocity, ref.Acceleration)
	})
	if err != nil {
		return err
	}
	return w.Flush()
}

func plotTrajectory(cmd *cobra.Command, args []string) error {
	cfg, ev, wps, err := setup()
	if err != nil {
		return err
	}

	series := make([][]float64, wps.Dimension())
	err = sample(ev, wps.LastTime(), plotStep, func(t float64, st trajectory.Status, ref trajectory.Reference) {
		for i, v := range ref.Position {
			series[i] = append(series[i], v)
		}
	})
	if err != nil {
		return err
	}

	fmt.Printf("generator: %s\n", cfg.Generator)
	fmt.Printf("waypoints: %d\n", wps.Len())
	fmt.Printf("samples: %d\n\n", len(series[0]))

	maxPlots := 6
	for i, data := range series {
		if i >= maxPlots {
			break
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("axis %d vs time", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func printWaypoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	wps, err := cfg.BuildSet()
	if err != nil {
		return err
	}
	m := wps.AsMatrix(true, false)
	fmt.Printf("W = %v\n", mat.Formatted(m, mat.Prefix("    "), mat.Squeeze()))
	return nil
}

func trackTrajectory(cmd *cobra.Command, args []string) error {
	cfg, ev, wps, err := setup()
	if err != nil {
		return err
	}
	if kp >= 0 {
		cfg.Gains.Kp = kp
	}
	if ki >= 0 {
		cfg.Gains.Ki = ki
	}
	if kd >= 0 {
		cfg.Gains.Kd = kd
	}

	dim := wps.Dimension()
	loop := plant.New(ev, plant.NewPointMass(dim), cfg.Tracker(dim))
	loop.AddMetric(plant.NewTrackingError())
	loop.AddMetric(plant.NewPeakError())
	loop.AddMetric(plant.NewControlEffort())

	first, err := wps.Coordinates(0)
	if err != nil {
		return err
	}
	x0 := make(plant.State, 2*dim)
	copy(x0, first)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sw := chrono.New()
	done := sw.Start("track")
	result, err := loop.Run(ctx, x0, cfg.PlantConfig())
	done()
	if err != nil {
		return err
	}

	fmt.Printf("generator: %s\n", cfg.Generator)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("finished: %v\n", result.Finished)
	fmt.Printf("final time: %.3fs\n\n", result.Times[len(result.Times)-1])

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	errs := make([]float64, len(result.States))
	for i, p := range result.Positions() {
		errs[i] = p.Sub(result.References[i].Position).Norm()
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(errs,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("position error"),
	))
	fmt.Println()
	return sw.Report(os.Stdout)
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	wps, err := cfg.BuildSet()
	if err != nil {
		return err
	}
	dim := wps.Dimension()
	first, err := wps.Coordinates(0)
	if err != nil {
		return err
	}
	reg := registry.New()

	objective := func(ctx context.Context, p map[string]float64) (float64, error) {
		gen, err := reg.Generator(cfg.Generator, cfg.GeneratorParams())
		if err != nil {
			return 0, err
		}
		loop := plant.New(trajectory.New(gen, wps.Clone()), plant.NewPointMass(dim),
			plant.NewTracker(dim, p["kp"], cfg.Gains.Ki, p["kd"]))
		loop.AddMetric(plant.NewTrackingError())
		x0 := make(plant.State, 2*dim)
		copy(x0, first)
		res, err := loop.Run(ctx, x0, cfg.PlantConfig())
		if err != nil {
			return 0, err
		}
		return res.Metrics["tracking_rms"], nil
	}

	grid, err := optim.NewGridSearch([]string{"kp", "kd"}, [][]float64{kpRange, kdRange})
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	best, all, err := grid.Search(ctx, objective)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KP\tKD\tRMS")
	for _, c := range all {
		if c.Err != nil {
			fmt.Fprintf(w, "%.2f\t%.2f\t%v\n", c.Params["kp"], c.Params["kd"], c.Err)
			continue
		}
		fmt.Fprintf(w, "%.2f\t%.2f\t%.6f\n", c.Params["kp"], c.Params["kd"], c.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: kp=%.2f kd=%.2f rms=%.6f\n", best.Params["kp"], best.Params["kd"], best.Value)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, ev, _, err := setup()
	if err != nil {
		return err
	}
	return viz.Run(cfg.Generator, ev)
}

func benchGenerators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if iterations <= 0 {
		return fmt.Errorf("n must be positive, got %d", iterations)
	}

	sw := chrono.New()
	var wps *waypoint.Set
	sw.Repeat("build set", 1000, func(int) {
		wps, err = cfg.BuildSet()
	})
	if err != nil {
		return err
	}

	reg := registry.New()
	end := wps.LastTime()
	for _, name := range reg.List() {
		gen, err := reg.Generator(name, cfg.GeneratorParams())
		if err != nil {
			return err
		}
		ev := trajectory.New(gen, wps)
		var ref trajectory.Reference
		var failed error
		r := sw.Repeat("evaluate "+name, iterations, func(i int) {
			if _, err := ev.Evaluate(&ref, end*float64(i)/float64(iterations)); err != nil {
				failed = err
			}
		})
		if failed != nil {
			fmt.Printf("%s: %v\n", name, failed)
			continue
		}
		fmt.Printf("%s: %.0f evaluations/sec\n", name, float64(r.Count)/r.Elapsed.Seconds())
	}

	sw.Repeat("as matrix", iterations, func(int) {
		_ = wps.AsMatrix(true, false)
	})

	fmt.Println()
	return sw.Report(os.Stdout)
}
