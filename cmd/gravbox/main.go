package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/guptarohit/asciigraph"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravbox/internal/camera"
	"github.com/san-kum/gravbox/internal/config"
	"github.com/san-kum/gravbox/internal/dynamo"
	"github.com/san-kum/gravbox/internal/export"
	"github.com/san-kum/gravbox/internal/gui"
	"github.com/san-kum/gravbox/internal/interact"
	"github.com/san-kum/gravbox/internal/logging"
	"github.com/san-kum/gravbox/internal/metrics"
	"github.com/san-kum/gravbox/internal/storage"
	"github.com/san-kum/gravbox/internal/vec"
	"github.com/san-kum/gravbox/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbosity  int
	// headless runs
	dt           float64
	duration     float64
	sampleEvery  int
	escapeRadius float64
	noSave       bool
	jobs         int
	// terminal view
	theme string
	// export
	format string
	// snapshot
	snapshotAt float64
	vectors    bool
)

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// main registers the commands and opens the window when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gravbox",
		Short:        "interactive 2d n-body gravity sandbox",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravbox", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "seed scenario (see 'gravbox presets')")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log verbosity, repeat for more")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the sandbox window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the sandbox in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", viz.Themes[0].Name, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "step a scenario headless and record telemetry",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	batchCmd := &cobra.Command{
		Use:   "batch [preset...]",
		Short: "run several presets concurrently",
		RunE:  runBatch,
	}
	addRunFlags(batchCmd)
	batchCmd.Flags().IntVar(&jobs, "jobs", 0, "max concurrent runs (0 = one per preset)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list seed scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's telemetry",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format (json, csv)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "render a scenario to svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&snapshotAt, "at", 0, "advance the scenario by this much time first")
	snapshotCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	snapshotCmd.Flags().BoolVar(&vectors, "vectors", false, "draw velocity vectors")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, batchCmd, presetsCmd, listCmd, plotCmd, exportCmd, snapshotCmd, configCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "record telemetry every n steps")
	cmd.Flags().Float64Var(&escapeRadius, "escape", config.DefaultEscapeRadius, "stability radius around the center of mass")
}

// loadConfig reads the config file if one was given and applies flags that
// were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("preset") {
		if _, ok := config.GetPreset(preset); !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Scenario = preset
		cfg.Bodies = nil
	}
	if f := cmd.Flags().Lookup("dt"); f != nil && f.Changed {
		cfg.Run.Dt = dt
	}
	if f := cmd.Flags().Lookup("time"); f != nil && f.Changed {
		cfg.Run.Duration = duration
	}
	if f := cmd.Flags().Lookup("sample"); f != nil && f.Changed {
		cfg.Run.SampleEvery = sampleEvery
	}
	if f := cmd.Flags().Lookup("escape"); f != nil && f.Changed {
		cfg.Run.EscapeRadius = escapeRadius
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() logr.Logger {
	return logging.New(os.Stderr, verbosity)
}

func newEngine(cfg *config.Config, log logr.Logger) (*dynamo.Engine, error) {
	w, err := cfg.BuildWorld()
	if err != nil {
		return nil, err
	}
	ctrl := interact.NewController(cfg.InteractSettings(), log.WithName("interact"))
	ctrl.ShowVectors = cfg.Vectors.Show
	return dynamo.NewEngine(w, ctrl, cfg.EngineConfig(), log.WithName("engine")), nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()
	eng, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	log.V(1).Info("starting window", "scenario", cfg.Scenario, "bodies", eng.World.Len())
	return gui.Run(cfg, eng, log.WithName("gui"))
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("tui needs an interactive terminal on stdout")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The alternate screen owns the terminal, so logs are only kept when
	// asked for.
	log := logr.Discard()
	if verbosity > 0 {
		log = newLogger()
	}
	eng, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	return viz.Run(eng, cfg, viz.GetTheme(theme), log.WithName("tui"))
}

func scenarioName(cfg *config.Config) string {
	if len(cfg.Bodies) > 0 {
		return "custom"
	}
	return cfg.Scenario
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	w, err := cfg.BuildWorld()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runCfg := cfg.RunConfig()
	runCfg.Metrics = metrics.Defaults(cfg.Run.EscapeRadius)
	runCfg.Log = log.WithName("run")

	scenario := scenarioName(cfg)
	fmt.Printf("running %s: %d bodies, dt=%g, t=%g\n", scenario, w.Len(), runCfg.Dt, runCfg.Duration)

	start := time.Now()
	result, runErr := dynamo.Run(ctx, w, runCfg)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	if result.Trace != nil && result.Trace.Len() > 1 {
		for i, name := range metrics.TraceColumns {
			fmt.Println(plot(result.Trace.Column(i), name+" vs time"))
			fmt.Println()
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d  merges: %d  bodies: %d\n", result.Steps, result.Merges, result.Bodies)
	fmt.Println("\nmetrics:")
	for _, m := range runCfg.Metrics {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(scenario, runCfg.Dt, runCfg.Duration, cfg.Physics.G, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return runErr
}

func plot(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger()

	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	batch := make([]dynamo.Job, 0, len(names))
	for _, name := range names {
		if _, ok := config.GetPreset(name); !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		c := *cfg
		c.Scenario = name
		c.Bodies = nil
		w, err := c.BuildWorld()
		if err != nil {
			return err
		}
		batch = append(batch, dynamo.Job{
			Name:  name,
			World: w,
			Metrics: func() []metrics.Metric {
				return metrics.Defaults(cfg.Run.EscapeRadius)
			},
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	base := cfg.RunConfig()
	base.SampleEvery = 0
	base.Log = log.WithName("batch")

	start := time.Now()
	results, runErr := dynamo.NewEnsemble(batch, base, jobs).Run(ctx)

	fmt.Println(titleStyle.Render(fmt.Sprintf("batch: %d presets in %v", len(batch), time.Since(start).Round(time.Millisecond))))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSTEPS\tMERGES\tBODIES\tENERGY DRIFT\tMOMENTUM DRIFT\tSTABILITY")
	for i, r := range results {
		if r == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\n", batch[i].Name)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.6f\t%.6f\t%.3f\n",
			batch[i].Name,
			r.Steps,
			r.Merges,
			r.Bodies,
			r.Metrics["energy_drift"],
			r.Metrics["momentum_drift"],
			r.Metrics["stability"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(p.Bodies), p.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSTEPS\tMERGES\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Merges,
			run.Bodies,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, columns, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Println(titleStyle.Render("run: " + meta.ID))
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", tr.Len())

	for i, name := range columns {
		fmt.Println(plot(tr.Column(i), name+" vs time"))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	switch format {
	case "json":
		return st.ExportJSON(args[0], os.Stdout)
	case "csv":
		return st.ExportCSV(args[0], os.Stdout)
	default:
		return fmt.Errorf("unknown format: %s (available: json, csv)", format)
	}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	world, err := cfg.BuildWorld()
	if err != nil {
		return err
	}

	if snapshotAt > 0 {
		runCfg := cfg.RunConfig()
		runCfg.Duration = snapshotAt
		runCfg.SampleEvery = 0
		runCfg.Log = newLogger().WithName("snapshot")
		if _, err := dynamo.Run(cmd.Context(), world, runCfg); err != nil {
			return err
		}
	}
	world.RefreshArrows(cfg.Vectors.Scale, 0)

	width, height := cfg.Window.Width, cfg.Window.Height
	screen := vec.New(float64(width), float64(height))
	cam := camera.New()
	if lo, hi, ok := world.Bounds(); ok {
		cam = cam.Fit(lo, hi, screen, 40)
	}

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return export.Snapshot(out, world, cam, width, height, vectors || cfg.Vectors.Show)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "gravbox.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
