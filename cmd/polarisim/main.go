package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/quanta-lab/polarisim/internal/analysis"
	"github.com/quanta-lab/polarisim/internal/config"
	"github.com/quanta-lab/polarisim/internal/export"
	"github.com/quanta-lab/polarisim/internal/scan"
	"github.com/quanta-lab/polarisim/internal/spectrum"
	"github.com/quanta-lab/polarisim/internal/storage"
	"github.com/quanta-lab/polarisim/internal/tui"
	"github.com/quanta-lab/polarisim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	cavity   float64
	coupling float64
	kMin     float64
	kMax     float64
	points   int
	workers  int

	kAt       float64
	save      bool
	outFile   string
	plotW     int
	plotH     int
	scanParam string
	scanFrom  float64
	scanTo    float64
	scanSteps int
	objective string
	target    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polarisim",
		Short: "polariton dispersion explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg, dataDir)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "material preset")
	rootCmd.PersistentFlags().Float64Var(&cavity, "cavity", 0, "cavity photon energy at k=0 (eV)")
	rootCmd.PersistentFlags().Float64Var(&coupling, "coupling", 1.0, "coupling scale factor")
	rootCmd.PersistentFlags().Float64Var(&kMin, "kmin", config.DefaultKMin, "momentum grid start (1/um)")
	rootCmd.PersistentFlags().Float64Var(&kMax, "kmax", config.DefaultKMax, "momentum grid end (1/um)")
	rootCmd.PersistentFlags().IntVar(&points, "points", config.DefaultPoints, "momentum grid points")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "sweep workers (0 = all cores)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "diagonalize over the momentum grid and plot",
		RunE:  runSweep,
	}
	sweepCmd.Flags().BoolVar(&save, "save", false, "persist the run to the data directory")
	sweepCmd.Flags().IntVar(&plotW, "width", 100, "plot width")
	sweepCmd.Flags().IntVar(&plotH, "height", 20, "plot height")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg, dataDir)
		},
	}

	tableCmd := &cobra.Command{
		Use:   "table",
		Short: "eigenvalue table at one momentum",
		RunE:  runTable,
	}
	tableCmd.Flags().Float64Var(&kAt, "k", 0, "momentum (1/um)")

	crossingsCmd := &cobra.Command{
		Use:   "crossings",
		Short: "bare photon-exciton crossings",
		RunE:  runCrossings,
	}

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "grid-scan a system parameter against an objective",
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&scanParam, "param", "cavity", "parameter to scan (cavity, coupling, index)")
	scanCmd.Flags().Float64Var(&scanFrom, "from", 0, "scan range start")
	scanCmd.Flags().Float64Var(&scanTo, "to", 0, "scan range end")
	scanCmd.Flags().IntVar(&scanSteps, "steps", 41, "scan steps")
	scanCmd.Flags().StringVar(&objective, "objective", "resonance", "objective (resonance, split, crossing)")
	scanCmd.Flags().Float64Var(&target, "target", 0, "target for split/crossing objectives")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotW, "width", 100, "plot width")
	plotCmd.Flags().IntVar(&plotH, "height", 20, "plot height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := storage.New(dataDir).LoadResult(args[0])
			if err != nil {
				return err
			}
			return export.WriteCSV(os.Stdout, res)
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			res, err := st.LoadResult(args[0])
			if err != nil {
				return err
			}
			return export.WriteJSON(os.Stdout, meta.Material, meta.CavityEnergy, res)
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "sweep and write an SVG figure",
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "dispersion.svg", "output file")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png",
		Short: "sweep and write a PNG figure",
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVar(&outFile, "out", "dispersion.png", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list material presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s %d excitons, cavity %.4f eV, n=%.2f\n",
					name, len(p.Excitons), p.Cavity.Energy, p.Cavity.Index)
			}
			return nil
		},
	}

	rootCmd.AddCommand(sweepCmd, exploreCmd, tableCmd, crossingsCmd, scanCmd,
		listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, exportPNGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: preset, then config file,
// then explicit flags, each layer overriding the previous one.
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

	flags := cmd.Flags()
	if flags.Changed("cavity") {
		cfg.Cavity.Energy = cavity
	}
	if flags.Changed("coupling") {
		cfg.Coupling = coupling
	}
	if flags.Changed("kmin") {
		cfg.Sweep.KMin = kMin
	}
	if flags.Changed("kmax") {
		cfg.Sweep.KMax = kMax
	}
	if flags.Changed("points") {
		cfg.Sweep.Points = points
	}
	if flags.Changed("workers") {
		cfg.Sweep.Workers = workers
	}
	if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

func sweepSystem(cmd *cobra.Command) (*config.Config, *spectrum.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	res, err := spectrum.Sweep(context.Background(), cfg.System(), cfg.SweepConfig())
	return cfg, res, err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, res, err := sweepSystem(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.Ascii(res, plotW, plotH))
	fmt.Println()

	n := res.NumBranches()
	if gap, ok := analysis.RabiSplitting(res); ok {
		fmt.Printf("rabi splitting: %.3f meV (%s/%s at k=%.3f 1/um)\n",
			gap.Split*1e3, viz.BranchLabel(gap.Lower, n), viz.BranchLabel(gap.Upper, n), gap.K)
	}
	for _, c := range analysis.BareCrossings(res) {
		fmt.Printf("crossing: photon x %s at k=%.3f 1/um, E=%.4f eV\n", c.Exciton, c.K, c.Energy)
	}
	if mass, err := analysis.EffectiveMass(res, 0); err == nil {
		fmt.Printf("lower polariton mass: %.2e me\n", mass)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.RunMetadata{
			Material:     cfg.Material,
			CavityEnergy: cfg.Cavity.Energy,
			Coupling:     cfg.System().CouplingScale,
		}
		if gap, ok := analysis.RabiSplitting(res); ok {
			meta.RabiSplit = gap.Split
		}
		id, err := st.Save(meta, res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}
	return nil
}

func runTable(cmd *cobra.Command, args []string) error {
	_, res, err := sweepSystem(cmd)
	if err != nil {
		return err
	}

	// nearest grid index to the requested momentum
	idx := 0
	for i, k := range res.Ks {
		if absFloat(k-kAt) < absFloat(res.Ks[idx]-kAt) {
			idx = i
		}
	}

	p := res.At(idx)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "BRANCH\tE (eV)\tPHOTON\n")
	for j := res.NumBranches() - 1; j >= 0; j-- {
		fmt.Fprintf(w, "%s\t%.5f\t%.1f%%\n",
			viz.BranchLabel(j, res.NumBranches()), p.Energies[j], p.Photon[j]*100)
	}
	fmt.Printf("k = %.3f 1/um\n", p.K)
	return w.Flush()
}

func runCrossings(cmd *cobra.Command, args []string) error {
	_, res, err := sweepSystem(cmd)
	if err != nil {
		return err
	}

	crossings := analysis.BareCrossings(res)
	if len(crossings) == 0 {
		fmt.Println("no bare-mode crossing in the swept window")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EXCITON\tK (1/um)\tE (eV)")
	for _, c := range crossings {
		fmt.Fprintf(w, "%s\t%.4f\t%.5f\n", c.Exciton, c.K, c.Energy)
	}
	return w.Flush()
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if scanTo <= scanFrom {
		return fmt.Errorf("invalid scan range [%g, %g]", scanFrom, scanTo)
	}
	if scanSteps < 2 {
		return fmt.Errorf("scan needs at least 2 steps, got %d", scanSteps)
	}

	var obj scan.Objective
	switch objective {
	case "resonance":
		obj = scan.Resonance
	case "split":
		obj = scan.TargetSplitting(target)
	case "crossing":
		obj = scan.TargetCrossing(target)
	default:
		return fmt.Errorf("unknown objective: %s", objective)
	}

	values := floats.Span(make([]float64, scanSteps), scanFrom, scanTo)
	g := scan.NewGridScan([]string{scanParam}, [][]float64{values})

	sys := cfg.System()
	best, score, err := g.Run(context.Background(), sys, cfg.SweepConfig(), obj)
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Println("no grid point satisfied the objective")
		return nil
	}

	names := make([]string, 0, len(best))
	for name := range best {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("best %s: %.5f\n", name, best[name])
	}
	fmt.Printf("objective: %.5e\n", score)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMATERIAL\tTIME\tCAVITY\tRABI\tPOINTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.2f meV\t%d\n",
			run.ID,
			run.Material,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.CavityEnergy,
			run.RabiSplit*1e3,
			run.Points,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	res, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("material: %s, cavity %.4f eV\n\n", meta.Material, meta.CavityEnergy)
	fmt.Println(viz.Ascii(res, plotW, plotH))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, res, err := sweepSystem(cmd)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, []byte(export.DispersionSVG(res, 800, 500)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	cfg, res, err := sweepSystem(cmd)
	if err != nil {
		return err
	}
	if err := export.SavePNG(res, cfg.Material, outFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
