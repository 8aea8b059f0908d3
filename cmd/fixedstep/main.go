package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/fixedstep/internal/config"
	"github.com/san-kum/fixedstep/internal/export"
	"github.com/san-kum/fixedstep/internal/metrics"
	"github.com/san-kum/fixedstep/internal/scalar"
	"github.com/san-kum/fixedstep/internal/sim"
	"github.com/san-kum/fixedstep/internal/storage"
	"github.com/san-kum/fixedstep/internal/viz"
)

var (
	dataDir   string
	verbosity int
	logger    = logr.Discard()

	repr      string
	timestep  float64
	numFrames int
	seed      int64
	save      bool
	plot      bool
	body      string
	axis      int
	rounds    int
	format    string
	plane     string
	outPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "fixedstep",
		Short:         "fixed-timestep rigid body stepper",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			stdr.SetVerbosity(verbosity)
			logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fixedstep", "data directory")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and record it",
		Long:  "run a preset or a scene file (.yaml) to completion and save the trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "save the run")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot a body's height after the run")
	runCmd.Flags().StringVar(&body, "body", "", "body to plot (default: first dynamic body)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body positions of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&body, "body", "", "body to plot (default: all)")
	plotCmd.Flags().IntVar(&axis, "axis", 1, "position axis (0=x, 1=y, 2=z)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "meta", "output format (meta, frames, svg)")
	exportCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane for svg (xy, xz, zy)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	watchCmd := &cobra.Command{
		Use:   "watch [scene]",
		Short: "step a scene live with the terminal's frame clock",
		Args:  cobra.MaximumNArgs(1),
		RunE:  watchScene,
	}
	addSceneFlags(watchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [scene] [repr...]",
		Short: "run a scene under several number representations",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareReprs,
	}
	addSceneFlags(compareCmd)
	compareCmd.Flags().BoolVar(&plot, "plot", false, "plot deviation per frame")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "measure sub-step throughput per representation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addSceneFlags(benchCmd)
	benchCmd.Flags().IntVar(&rounds, "rounds", 5, "runs per representation")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [scene]",
		Short: "print the resolved scene as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpConfig,
	}
	addSceneFlags(configCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, watchCmd, compareCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&repr, "repr", "", "number representation (float32, float64, q16.16, q32.32)")
	cmd.Flags().Float64Var(&timestep, "timestep", 0, "fixed timestep in seconds")
	cmd.Flags().IntVar(&numFrames, "frames", 0, "number of frames")
	cmd.Flags().Int64Var(&seed, "seed", 0, "frame jitter seed")
}

// loadScene resolves the scene argument and applies flags set on cmd. Flags
// win over environment variables, which win over the file or preset.
func loadScene(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := config.Resolve(name)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("repr") {
		cfg.Repr = repr
	}
	if flags.Changed("timestep") {
		cfg.Timestep = timestep
	}
	if flags.Changed("frames") {
		cfg.Frames.Count = numFrames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	s, err := sim.Open(cfg, sim.WithLogger(logger))
	if err != nil {
		return err
	}
	defer s.Close()

	simulator := sim.New(s)
	for _, m := range metrics.Default(sim.Vec3(cfg.Gravity)) {
		simulator.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s as %s...\n", cfg.Name, s.Repr())
	start := time.Now()
	res, err := simulator.Run(ctx, sim.Frames(cfg.Frames, cfg.Seed))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d  sub-steps: %d  simulated: %.3fs\n", len(res.Frames), res.Substeps, res.Final().Time)

	if save {
		st := storage.New(dataDir, storage.WithLogger(logger))
		runID, err := st.Save(res, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(res.Metrics)) {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}

	fmt.Println("\nfinal state:")
	printBodies(res.Final().Bodies)

	if plot {
		frames := append([]sim.Frame{res.Initial}, res.Frames...)
		idx, err := pickBody(res.Initial, body)
		if err != nil {
			return err
		}
		graph, err := viz.PlotTrajectory(frames, idx, 1)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(graph)
	}
	return nil
}

// pickBody finds a body by name, or the first active dynamic body when name
// is empty.
func pickBody(f sim.Frame, name string) (int, error) {
	for i, b := range f.Bodies {
		if name == "" && b.Active && !b.Kinematic && b.Mass > 0 {
			return i, nil
		}
		if name != "" && b.Name == name {
			return i, nil
		}
	}
	if name == "" {
		return 0, fmt.Errorf("scene has no dynamic body to plot")
	}
	return 0, fmt.Errorf("no body named %q", name)
}

func printBodies(bodies []sim.BodyState) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tSHAPE\tPOSITION\tVELOCITY\tSTATE")
	for _, b := range bodies {
		state := "dynamic"
		switch {
		case !b.Active:
			state = "inactive"
		case b.Kinematic:
			state = "kinematic"
		case b.Mass <= 0:
			state = "static"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", b.Name, b.Shape, fmtVec(b.Position), fmtVec(b.Velocity), state)
	}
	w.Flush()
}

func fmtVec(v sim.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, storage.WithLogger(logger))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tREPR\tTIME\tDURATION\tTIMESTEP\tFRAMES\tSUBSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.6fs\t%d\t%d\n",
			run.ID,
			run.Scene,
			run.Repr,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Timestep,
			run.Frames,
			run.Substeps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, storage.WithLogger(logger))
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s (%s)\n", meta.Scene, meta.Repr)
	fmt.Printf("samples: %d\n\n", len(frames))

	indices := make([]int, 0, len(frames[0].Bodies))
	if body != "" {
		idx, err := pickBody(frames[0], body)
		if err != nil {
			return err
		}
		indices = append(indices, idx)
	} else {
		for i := range frames[0].Bodies {
			indices = append(indices, i)
		}
	}

	for _, i := range indices {
		graph, err := viz.PlotTrajectory(frames, i, axis)
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, storage.WithLogger(logger))
	run, err := export.LoadRun(st, args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "meta":
		return export.WriteJSON(out, run.RunMetadata)
	case "frames":
		return export.WriteJSON(out, run)
	case "svg":
		p, err := export.ParsePlane(plane)
		if err != nil {
			return err
		}
		svg := export.TrajectorySVG(run.Frames, p, 800, 600)
		if svg == "" {
			return fmt.Errorf("run %s has nothing to draw", run.ID)
		}
		_, err = fmt.Fprintln(out, svg)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func watchScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	// The alternate screen owns the terminal, so the session logs nowhere.
	return viz.Run(func() (sim.Session, error) {
		return sim.Open(cfg)
	})
}

func compareReprs(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args[:1])
	if err != nil {
		return err
	}

	reprs := scalar.Reprs
	if len(args) > 1 {
		reprs = make([]scalar.Repr, 0, len(args)-1)
		for _, a := range args[1:] {
			r, err := scalar.ParseRepr(a)
			if err != nil {
				return err
			}
			reprs = append(reprs, r)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c, err := sim.Compare(ctx, cfg, reprs, sim.WithLogger(logger))
	if err != nil {
		return err
	}

	fmt.Printf("scene: %s  reference: %s\n\n", c.Scene, c.Reference)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPR\tSUBSTEPS\tSIMULATED\tMAX DEVIATION\tTOLERANCE")
	for _, r := range c.Reprs {
		res := c.Results[r]
		fmt.Fprintf(w, "%s\t%d\t%.4fs\t%.3e\t%.1e\n", r, res.Substeps, res.Final().Time, c.Deviation[r], r.Tolerance())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot {
		if graph := viz.PlotDeviation(c); graph != "" {
			fmt.Println()
			fmt.Println(graph)
		}
	}
	return nil
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	if rounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", rounds)
	}
	frames := sim.Frames(cfg.Frames, cfg.Seed)

	fmt.Printf("benchmarking %s (%d bodies, %d frames)\n\n", cfg.Name, len(cfg.Bodies), len(frames))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPR\tSUBSTEPS\tTIME\tSUBSTEPS/SEC")

	for _, r := range scalar.Reprs {
		c := cfg.Clone()
		c.Repr = r.String()

		total := 0
		var elapsed time.Duration
		for range rounds {
			s, err := sim.Open(c, sim.WithLogger(logger))
			if err != nil {
				return err
			}
			start := time.Now()
			for _, dt := range frames {
				total += s.Advance(dt)
			}
			elapsed += time.Since(start)
			s.Close()
		}

		rate := 0.0
		if elapsed > 0 {
			rate = float64(total) / elapsed.Seconds()
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n", r, total, elapsed, rate)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREPR\tTIMESTEP\tFRAMES\tBODIES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		names := make([]string, len(p.Bodies))
		for i, b := range p.Bodies {
			names[i] = b.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%d\t%s\n", name, p.Repr, p.Timestep, p.Frames.Count, strings.Join(names, ","))
	}
	return w.Flush()
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadScene(cmd, args)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
