package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/spectra/internal/atlas"
	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/modes"
	"github.com/san-kum/spectra/internal/potential"
	"github.com/san-kum/spectra/internal/report"
	"github.com/san-kum/spectra/internal/solver"
	"github.com/san-kum/spectra/internal/storage"
	"github.com/san-kum/spectra/internal/verify"
	"github.com/san-kum/spectra/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	paramFlags []string
	halfWidth  float64
	nPoints    int
	gridType   string
	methodName string
	kModes     int
	scale      float64
	halfLine   bool
	bcLeft     string
	bcRight    string
	kappaLeft  float64
	kappaRight float64
	saveRun    bool
	// Report output
	reportFormat string
	outPath      string
	// Sweep
	axisFlags    []string
	sweepTarget  int
	sweepWorkers int
	live         bool
	ballRadius   int
	marginFloor  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spectra",
		Short: "1d sturm-liouville eigenvalue lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spectra", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve [family]",
		Short: "solve one configuration and print its spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run")

	verifyCmd := &cobra.Command{
		Use:   "verify [family]",
		Short: "run the verification ladder",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}
	addProblemFlags(verifyCmd)
	verifyCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run with its verdict")
	verifyCmd.Flags().StringVar(&reportFormat, "report", "", "report format: md, json or csv")
	verifyCmd.Flags().StringVar(&outPath, "out", "", "report file (stdout when empty)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [family]",
		Short: "sweep a parameter lattice and classify the robust region",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&axisFlags, "axis", nil, "sweep axis name:min:max:steps (repeatable)")
	sweepCmd.Flags().IntVar(&sweepTarget, "target", config.DefaultTarget, "target bound-state count")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "worker pool size (0 = all cores)")
	sweepCmd.Flags().BoolVar(&live, "live", false, "live progress view")
	sweepCmd.Flags().IntVar(&ballRadius, "radius", 1, "interior ball radius in lattice steps")
	sweepCmd.Flags().Float64Var(&marginFloor, "margin", 0, "interior margin threshold (0 = tolerance default)")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "persist the atlas")

	atlasCmd := &cobra.Command{
		Use:   "atlas [run_id]",
		Short: "render a stored atlas",
		Args:  cobra.ExactArgs(1),
		RunE:  showAtlas,
	}
	atlasCmd.Flags().IntVar(&ballRadius, "radius", 1, "interior ball radius in lattice steps")
	atlasCmd.Flags().Float64Var(&marginFloor, "margin", 0, "interior margin threshold (0 = tolerance default)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [family]",
		Short: "benchmark both methods across grid sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchFamily,
	}
	benchCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "potential parameter name=value (repeatable)")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets for a family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for family: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	familiesCmd := &cobra.Command{
		Use:   "families",
		Short: "list potential families",
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range potential.Families() {
				fmt.Println(f)
			}
		},
	}

	rootCmd.AddCommand(solveCmd, verifyCmd, sweepCmd, atlasCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd, familiesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "potential parameter name=value (repeatable)")
	cmd.Flags().Float64Var(&halfWidth, "l", config.DefaultL, "domain half-width")
	cmd.Flags().IntVar(&nPoints, "n", config.DefaultNPoints, "grid points")
	cmd.Flags().StringVar(&gridType, "grid", "uniform", "grid type: uniform or chebyshev")
	cmd.Flags().StringVar(&methodName, "method", "fd", "solve method: fd or shoot")
	cmd.Flags().IntVar(&kModes, "k", config.DefaultEigenvalues, "eigenvalues to retain")
	cmd.Flags().Float64Var(&scale, "scale", 1.0, "energy scale multiplier for parameters")
	cmd.Flags().BoolVar(&halfLine, "half-line", false, "solve on [0, L] instead of [-L, L]")
	cmd.Flags().StringVar(&bcLeft, "bc-left", "dirichlet", "left boundary: dirichlet, neumann or robin")
	cmd.Flags().StringVar(&bcRight, "bc-right", "dirichlet", "right boundary: dirichlet, neumann or robin")
	cmd.Flags().Float64Var(&kappaLeft, "kappa-left", 0, "left robin coefficient")
	cmd.Flags().Float64Var(&kappaRight, "kappa-right", 0, "right robin coefficient")
}

// buildConfig resolves preset, config file and flags, in rising priority.
func buildConfig(cmd *cobra.Command, family string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(family, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(family))
		}
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	default:
		cfg = config.Default()
		cfg.Background.Type = family
		cfg.Background.Params = nil
	}
	cfg.Background.Type = family

	if cmd.Flags().Changed("l") {
		cfg.Domain.L = halfWidth
	}
	if cmd.Flags().Changed("n") {
		cfg.Domain.NPoints = nPoints
	}
	if cmd.Flags().Changed("grid") {
		cfg.Domain.GridType = gridType
	}
	if cmd.Flags().Changed("half-line") {
		cfg.Domain.HalfLine = halfLine
	}
	if cmd.Flags().Changed("method") {
		cfg.Modes.Method = methodName
	}
	if cmd.Flags().Changed("k") {
		cfg.Modes.NEigenvalues = kModes
	}
	if cmd.Flags().Changed("scale") {
		cfg.Physical.Scale = scale
	}
	if cmd.Flags().Changed("bc-left") || cmd.Flags().Changed("kappa-left") {
		cfg.BC.Left = config.EndpointConfig{Kind: bcLeft, Kappa: kappaLeft}
	}
	if cmd.Flags().Changed("bc-right") || cmd.Flags().Changed("kappa-right") {
		cfg.BC.Right = config.EndpointConfig{Kind: bcRight, Kappa: kappaRight}
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		if cfg.Background.Params == nil {
			cfg.Background.Params = make(map[string]float64, len(params))
		}
		for name, v := range params {
			cfg.Background.Params[name] = v
		}
	}

	return cfg, cfg.Validate()
}

func parseParams(flags []string) (map[string]float64, error) {
	params := make(map[string]float64, len(flags))
	for _, f := range flags {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q, want name=value", f)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", f, err)
		}
		params[strings.TrimSpace(name)] = v
	}
	return params, nil
}

func parseAxes(flags []string) ([]atlas.Axis, error) {
	axes := make([]atlas.Axis, 0, len(flags))
	for _, f := range flags {
		parts := strings.Split(f, ":")
		if len(parts) != 4 {
			return nil, fmt.Errorf("bad --axis %q, want name:min:max:steps", f)
		}
		lo, err1 := strconv.ParseFloat(parts[1], 64)
		hi, err2 := strconv.ParseFloat(parts[2], 64)
		steps, err3 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil || err3 != nil || steps < 1 {
			return nil, fmt.Errorf("bad --axis %q, want name:min:max:steps", f)
		}
		axes = append(axes, atlas.NewAxis(parts[0], lo, hi, steps))
	}
	return axes, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	prob, err := cfg.ToProblem()
	if err != nil {
		return err
	}
	tol := cfg.ToTolerances()

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	sol, err := solver.Solve(ctx, prob, cfg.Method(), cfg.Modes.NEigenvalues, bvp.DefaultSolveOptions())
	if err != nil {
		return err
	}
	sp := modes.Postprocess(sol, tol)
	elapsed := time.Since(start)

	fmt.Printf("%s on [%g, %g], N=%d, %s, %s method (%v)\n\n",
		prob.Potential.Family(), prob.Domain.XMin, prob.Domain.XMax,
		prob.Domain.N, prob.Domain.Grid, sol.Method, elapsed.Round(time.Millisecond))

	printSpectrum(sp)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveSpectrum(sp, "", report.Collect().Map())
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func printSpectrum(sp *modes.Spectrum) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tLAMBDA\tCLASS\tI4\tNORM_RES\tDEGEN")
	for n, m := range sp.Modes {
		degen := ""
		if m.Degenerate {
			degen = "yes"
		}
		fmt.Fprintf(w, "%d\t%.8g\t%s\t%.5g\t%.2e\t%s\n",
			n, m.Value, m.Class, m.OverlapI4, m.NormResidual, degen)
	}
	w.Flush()

	fmt.Printf("\nn_bound: %d", sp.NBound)
	if !math.IsInf(sp.Threshold, 1) {
		fmt.Printf(" (threshold %g)", sp.Threshold)
	}
	fmt.Println()
	for _, idx := range sp.Ambiguous {
		fmt.Printf("warning: mode %d sits inside the threshold band; the count is not definite\n", idx)
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	prob, err := cfg.ToProblem()
	if err != nil {
		return err
	}
	tol := cfg.ToTolerances()

	ctx, stop := signalContext()
	defer stop()

	ladder := verify.NewLadder(tol, cfg.Modes.NEigenvalues)
	rep, err := ladder.Run(ctx, prob)
	if err != nil {
		return err
	}
	gate := report.Gate{Context: report.Collect(), Report: rep}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch reportFormat {
	case "md":
		if err := gate.WriteMarkdown(out); err != nil {
			return err
		}
	case "json":
		if err := gate.WriteJSON(out); err != nil {
			return err
		}
	case "csv":
		if err := gate.WriteCSV(out); err != nil {
			return err
		}
	case "":
		printGate(rep)
	default:
		return fmt.Errorf("unknown report format: %s", reportFormat)
	}

	if saveRun {
		sol, err := solver.Solve(ctx, prob, bvp.FiniteDifference, cfg.Modes.NEigenvalues, bvp.DefaultSolveOptions())
		if err != nil {
			return err
		}
		sp := modes.Postprocess(sol, tol)
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveSpectrum(sp, rep.Verdict.String(), gate.Context.Map())
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if rep.Verdict != verify.VerdictPass {
		failures := rep.Failures()
		return fmt.Errorf("verification failed: %d check(s) out of tolerance", len(failures))
	}
	return nil
}

func printGate(rep *verify.Report) {
	fmt.Printf("verdict: %s\n", viz.Verdict(rep.Verdict.String()))
	for _, st := range rep.Stages {
		if !st.Reached {
			fmt.Printf("\n%s not reached\n", st.Stage)
			continue
		}
		fmt.Printf("\n%s\n", viz.StageHeader.Render(st.Stage.String()))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, c := range st.Checks {
			switch {
			case c.Skipped:
				fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Name, viz.SkipStyle.Render("skip"), c.Note)
			case c.Passed:
				fmt.Fprintf(w, "  %s\t%s\t%.6g vs %.6g (tol %.1e)\n",
					c.Name, viz.PassStyle.Render("pass"), c.Observed, c.Expected, c.Tolerance)
			default:
				note := c.Note
				if note == "" {
					note = fmt.Sprintf("%.6g vs %.6g (tol %.1e)", c.Observed, c.Expected, c.Tolerance)
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\n", c.Name, viz.FailStyle.Render("FAIL"), note)
			}
		}
		w.Flush()
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	family := args[0]
	cfg, err := buildConfig(cmd, family)
	if err != nil {
		return err
	}
	prob, err := cfg.ToProblem()
	if err != nil {
		return err
	}
	tol := cfg.ToTolerances()

	axes := cfg.ToAxes()
	if len(axisFlags) > 0 {
		axes, err = parseAxes(axisFlags)
		if err != nil {
			return err
		}
	}
	if len(axes) == 0 {
		return fmt.Errorf("no sweep axes; pass --axis or configure sweep.axes")
	}

	target := sweepTarget
	if !cmd.Flags().Changed("target") && cfg.Sweep.Target > 0 {
		target = cfg.Sweep.Target
	}
	radius := ballRadius
	if !cmd.Flags().Changed("radius") && cfg.Sweep.MinBallRadius > 0 {
		radius = cfg.Sweep.MinBallRadius
	}
	threshold := marginFloor
	if threshold == 0 {
		threshold = tol.GapMargin
	}
	workers := sweepWorkers
	if workers == 0 {
		workers = cfg.Sweep.Workers
	}

	sweep := &atlas.Sweep{
		Base:    prob,
		Axes:    axes,
		Target:  target,
		Method:  cfg.Method(),
		K:       cfg.Modes.NEigenvalues,
		Tol:     tol,
		Opts:    bvp.DefaultSolveOptions(),
		Workers: workers,
		Log:     slog.Default(),
	}

	ctx, stop := signalContext()
	defer stop()

	var res *atlas.Result
	start := time.Now()
	if live {
		res, err = runSweepLive(ctx, sweep, family, target)
	} else {
		total := atlas.Lattice{Axes: axes}.Size()
		fmt.Printf("sweeping %d lattice points on %d workers...\n", total, workers)
		res, err = sweep.Run(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Printf("swept %d points in %v: %d ok, %d ambiguous, %d invalid\n\n",
		len(res.Points), time.Since(start).Round(time.Millisecond), res.OK, res.Ambiguous, res.Invalid)

	reg := res.Region(radius, threshold)
	fmt.Println(viz.AtlasMap(res, reg))
	fmt.Println()
	rc := report.Collect()
	if err := report.WriteAtlasSummary(os.Stdout, res, reg, rc); err != nil {
		return err
	}

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveAtlas(family, prob.Potential.Params(), res, rc.Map())
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

type sweepOutcome struct {
	res *atlas.Result
	err error
}

func runSweepLive(ctx context.Context, sweep *atlas.Sweep, family string, target int) (*atlas.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	total := atlas.Lattice{Axes: sweep.Axes}.Size()
	m := viz.NewSweepModel(family, target, total)
	m.Cancel = cancel
	p := tea.NewProgram(m)

	sweep.Progress = func(done, tot int, pt atlas.Point) {
		p.Send(viz.PointMsg{Done: done, Total: tot, Point: pt})
	}

	outcome := make(chan sweepOutcome, 1)
	go func() {
		res, err := sweep.Run(ctx)
		outcome <- sweepOutcome{res, err}
		p.Send(viz.DoneMsg{Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return nil, err
	}
	cancel()
	o := <-outcome
	return o.res, o.err
}

func showAtlas(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	res, err := st.LoadAtlas(args[0])
	if err != nil {
		return err
	}

	threshold := marginFloor
	if threshold == 0 {
		threshold = bvp.DefaultTolerances().GapMargin
	}
	reg := res.Region(ballRadius, threshold)

	fmt.Println(viz.AtlasMap(res, reg))
	fmt.Println()
	return report.WriteAtlasSummary(os.Stdout, res, reg, report.Collect())
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
	fmt.Fprintln(w, "ID\tKIND\tFAMILY\tTIME\tN_BOUND\tVERDICT")
	for _, run := range runs {
		nBound := strconv.Itoa(run.NBound)
		if run.Kind == "atlas" {
			nBound = fmt.Sprintf("target %d", run.Target)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID, run.Kind, run.Family,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			nBound, run.Verdict)
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
	if meta.Kind == "atlas" {
		res, err := st.LoadAtlas(runID)
		if err != nil {
			return err
		}
		margins := make([]float64, len(res.Points))
		for i, p := range res.Points {
			margins[i] = p.Margin
		}
		fmt.Println(viz.MarginPlot(margins, 80, 12))
		return nil
	}

	grid, v, profiles, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nfamily: %s\n\n", meta.ID, meta.Family)
	fmt.Println(viz.PotentialPlot(grid, v, 80, 12))
	fmt.Println()
	fmt.Println(viz.ModePlot(grid, profiles, meta.Eigenvalues, 80, 12))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func benchFamily(cmd *cobra.Command, args []string) error {
	family := args[0]
	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}
	pot, err := potential.New(family, params)
	if err != nil {
		return err
	}

	bc := bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()}
	sizes := []int{200, 400, 800, 1600}
	methods := []bvp.Method{bvp.FiniteDifference, bvp.Shooting}

	fmt.Printf("benchmarking %s\n\n", family)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tN\tLAMBDA0\tTIME")

	ctx := context.Background()
	for _, method := range methods {
		for _, n := range sizes {
			prob := bvp.Problem{
				Potential: pot,
				Domain:    bvp.NewInterval(-config.DefaultL, config.DefaultL, n, bvp.GridUniform),
				BC:        bc,
			}
			if err := prob.Validate(); err != nil {
				return err
			}

			start := time.Now()
			sol, err := solver.Solve(ctx, prob, method, 1, bvp.DefaultSolveOptions())
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(w, "%s\t%d\terror: %v\t\n", method, n, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%.8g\t%v\n", method, n, sol.Pairs[0].Value, elapsed.Round(time.Microsecond))
		}
	}
	return w.Flush()
}
