package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/config"
	"github.com/ZaydAbdullayev/bubbles/internal/export"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
	"github.com/ZaydAbdullayev/bubbles/internal/store"
	"github.com/ZaydAbdullayev/bubbles/internal/ui"
)

// flags shared by every command
type globalFlags struct {
	dataDir    string
	configFile string
	preset     string
	seed       int64
	debug      bool
}

func (g *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&g.dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&g.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&g.preset, "preset", "", "use preset configuration")
	pf.Int64Var(&g.seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVar(&g.debug, "debug", false, "write logs to debug.log in the data directory")
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "bubbles",
		Short: "a shared field of floating bubbles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g, "", "")
		},
		SilenceUsage: true,
	}

	g.register(rootCmd)

	var color, wallet string
	playCmd := &cobra.Command{
		Use:   "play",
		Short: "join the field, optionally skipping the entry screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g, color, wallet)
		},
	}
	playCmd.Flags().StringVar(&color, "color", "", "bubble color name or hex value")
	playCmd.Flags().StringVar(&wallet, "wallet", "", "wallet address shown on your bubble")

	var duration time.Duration
	var runs int
	var exportPath, svgPath, chartPath string
	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run the field headless on a virtual clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs > 1 {
				return runEnsemble(cmd, g, duration, runs)
			}
			return runSimulate(cmd, g, duration, simulateOutputs{json: exportPath, svg: svgPath, chart: chartPath})
		},
	}
	simulateCmd.Flags().DurationVar(&duration, "duration", 2*time.Hour, "simulated time span")
	simulateCmd.Flags().IntVar(&runs, "runs", 1, "parallel runs on consecutive seeds")
	simulateCmd.Flags().StringVar(&exportPath, "export", "", "write the result as JSON to this path")
	simulateCmd.Flags().StringVar(&svgPath, "svg", "", "draw the final field as SVG to this path")
	simulateCmd.Flags().StringVar(&chartPath, "chart", "", "draw the population curve as SVG to this path")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the field in real time and log its events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, g)
		},
	}

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "list bubble colors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printPalette(cmd.OutOrStdout())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available field presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printPresets(cmd.OutOrStdout())
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "forget the bubbles saved from previous sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, g)
			if err != nil {
				return err
			}
			st := store.New(cfg.DataDir)
			if err := st.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", st.Path())
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, simulateCmd, watchCmd, paletteCmd, presetsCmd, resetCmd)
	return rootCmd
}

// resolveConfig layers, lowest first: defaults, config file, environment,
// flags. A preset, from whichever layer names it last, then replaces the
// field section.
func resolveConfig(cmd *cobra.Command, g *globalFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if g.configFile != "" {
		loaded, err := config.Load(g.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if err := config.LoadEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = g.dataDir
	}
	if flags.Changed("seed") {
		cfg.Seed = g.seed
	}
	if flags.Changed("preset") {
		cfg.Preset = g.preset
	}

	if cfg.Preset != "" {
		if err := cfg.ApplyPreset(cfg.Preset); err != nil {
			return nil, err
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging points the standard logger at debug.log when debugging and
// discards it otherwise, so log lines never land on the alternate screen.
func setupLogging(g *globalFlags, dataDir string) (io.Closer, error) {
	if !g.debug {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	f, err := tea.LogToFile(filepath.Join(dataDir, "debug.log"), "bubbles")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	return f, nil
}

func runTUI(cmd *cobra.Command, g *globalFlags, color, wallet string) error {
	cfg, err := resolveConfig(cmd, g)
	if err != nil {
		return err
	}
	if color != "" {
		if _, ok := bubble.LookupEntryColor(color); !ok {
			return fmt.Errorf("unknown color: %s (see 'bubbles palette')", color)
		}
	}

	closer, err := setupLogging(g, cfg.DataDir)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Printf("starting: seed=%d preset=%q data=%s", cfg.Seed, cfg.Preset, cfg.DataDir)
	return ui.Run(ui.Options{
		Field:  cfg.FieldOptions(),
		Seed:   cfg.Seed,
		Store:  store.New(cfg.DataDir),
		Color:  color,
		Wallet: wallet,
	})
}

type simulateOutputs struct {
	json  string
	svg   string
	chart string
}

func runSimulate(cmd *cobra.Command, g *globalFlags, duration time.Duration, outputs simulateOutputs) error {
	cfg, err := resolveConfig(cmd, g)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	f := field.New(cfg.FieldOptions(), bubble.NewGenerator(cfg.Seed))
	start := time.Now()
	f.Mount(start, nil)

	fmt.Fprintf(out, "simulating %v of field time (seed %d)...\n", duration, cfg.Seed)
	began := time.Now()
	res, err := field.Simulate(cmd.Context(), f, start, duration)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "completed in\t%v\n", elapsed)
	fmt.Fprintf(w, "ticks\t%d\n", res.Ticks)
	fmt.Fprintf(w, "grown\t%d\n", res.Grown)
	fmt.Fprintf(w, "trimmed\t%d\n", res.Dropped)
	fmt.Fprintf(w, "final population\t%d\n", len(res.Final))
	w.Flush()

	if counts := res.Counts(); len(counts) > 1 {
		graph := asciigraph.Plot(counts,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("bubbles per trim interval"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}

	if outputs.json != "" {
		if err := store.ExportJSON(outputs.json, cfg.Seed, cfg.Preset, res); err != nil {
			return err
		}
		fmt.Fprintf(out, "exported: %s\n", outputs.json)
	}
	if outputs.svg != "" {
		if err := export.WriteSVG(outputs.svg, res, 800, 600); err != nil {
			return err
		}
		fmt.Fprintf(out, "exported: %s\n", outputs.svg)
	}
	if outputs.chart != "" {
		svg := export.PopulationToSVG(res.Samples, 800, 240, "#22c55e")
		if svg == "" {
			return fmt.Errorf("not enough samples for a chart: run longer than one trim interval")
		}
		if err := os.WriteFile(outputs.chart, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "exported: %s\n", outputs.chart)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, g *globalFlags, duration time.Duration, runs int) error {
	cfg, err := resolveConfig(cmd, g)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "simulating %d runs of %v from seed %d...\n", runs, duration, cfg.Seed)
	results, err := field.Ensemble(cmd.Context(), cfg.FieldOptions(), cfg.Seed, runs, time.Now(), duration)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tGROWN\tTRIMMED\tFINAL\tPEAK")
	for i, res := range results {
		peak := 0
		for _, s := range res.Samples {
			if s.Count > peak {
				peak = s.Count
			}
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\n", cfg.Seed+int64(i), res.Grown, res.Dropped, len(res.Final), peak)
	}
	return w.Flush()
}

func runWatch(cmd *cobra.Command, g *globalFlags) error {
	cfg, err := resolveConfig(cmd, g)
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	st := store.New(cfg.DataDir)
	prior := st.LoadPrior()
	f := field.New(cfg.FieldOptions(), bubble.NewGenerator(cfg.Seed))
	f.Mount(time.Now(), prior)
	log.Printf("watching %d bubbles (%d prior), ctrl+c to stop", f.Len(), len(prior))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s := field.NewScheduler(f, field.Hooks{
		OnGrow: func(b bubble.Bubble) {
			log.Printf("grow  %s %s at (%.1f, %.1f), population %d", b.Key, bubble.FormatWallet(b.Wallet), b.X, b.Y, f.Len())
		},
		OnTrim: func(dropped, remaining int) {
			log.Printf("trim  dropped %d, population %d", dropped, remaining)
		},
		OnClear: func(key string) {
			log.Printf("clear highlight %s", key)
		},
	})
	if err := s.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	if err := st.SavePrior(f.Snapshot()); err != nil {
		return err
	}
	log.Printf("saved %d bubbles to %s", f.Len(), st.Path())
	return nil
}

func printPalette(w io.Writer) {
	fmt.Fprintln(w, "entry colors:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range bubble.EntryColors {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Value)).Render("●")
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", swatch, c.Name, c.Value)
	}
	tw.Flush()

	fmt.Fprintln(w, "\nfield palette:")
	for _, hex := range bubble.Palette {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
		fmt.Fprintf(w, "  %s %s\n", swatch, hex)
	}
}

func printPresets(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTICK\tGROW\tTRIM\tMAX\tBURST")
	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\t%d\t%d-%d\n", name, p.Tick, p.Grow, p.Trim, p.MaxBubbles, p.BurstMin, p.BurstMax)
	}
	tw.Flush()
}
