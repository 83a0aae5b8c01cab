package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/qnet/internal/config"
	"github.com/san-kum/qnet/internal/dashboard"
	"github.com/san-kum/qnet/internal/engine"
	"github.com/san-kum/qnet/internal/export"
	"github.com/san-kum/qnet/internal/frame"
	"github.com/san-kum/qnet/internal/graph"
	"github.com/san-kum/qnet/internal/logging"
	"github.com/san-kum/qnet/internal/metrics"
	"github.com/san-kum/qnet/internal/raster"
	"github.com/san-kum/qnet/internal/render"
	"github.com/san-kum/qnet/internal/tui"
	"github.com/san-kum/qnet/internal/viz"
	"github.com/san-kum/qnet/internal/window"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	view       string
	count      int
	seed       int64
	frameRate  int
	width      int
	height     int
	logLevel   string
	logFile    string

	output       string
	renderFrames int
	benchFrames  int
	streamFrames int
	color        bool
	asJSON       bool
)

// main runs the live view when no subcommand is given. It exits with
// status 1 if the command returns an error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "qnet",
		Short:         "quantum network dashboard animation",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "preset name, e.g. dense or chip/board")
	pf.StringVar(&view, "view", config.DefaultView, "view to show (network, chip)")
	pf.IntVar(&count, "count", 0, "entity count (default per view)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.IntVar(&width, "width", config.DefaultWidth, "logical surface width")
	pf.IntVar(&height, "height", config.DefaultHeight, "logical surface height")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		RunE:  runLive,
	}

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a preset, then animate in the terminal",
		RunE:  runMenu,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd, true)
			if err != nil {
				return err
			}
			defer log.Sync()
			return window.Run(cfg, log)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headlessly to PNG, GIF or SVG",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&output, "output", "o", "qnet.png", "output file (.png, .gif, .svg)")
	renderCmd.Flags().IntVar(&renderFrames, "frames", 60, "frames to run before writing")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "print braille frames to stdout without the dashboard",
		RunE:  runStream,
	}
	streamCmd.Flags().IntVar(&streamFrames, "frames", 0, "frames to print (0 runs until interrupted)")
	streamCmd.Flags().BoolVar(&color, "color", true, "color the frames")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate one epoch and print its summary",
		RunE:  runGenerate,
	}
	generateCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure headless frames per second",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 120, "frames per measurement")

	presetsCmd := &cobra.Command{
		Use:   "presets [view]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			views := []string{"network", "chip"}
			if len(args) == 1 {
				views = args
			}
			for _, v := range views {
				presets := config.ListPresets(v)
				if len(presets) == 0 {
					fmt.Fprintf(out, "no presets for view: %s\n", v)
					continue
				}
				sort.Strings(presets)
				fmt.Fprintf(out, "presets for %s:\n", v)
				for _, p := range presets {
					c := config.GetPreset(v, p)
					fmt.Fprintf(out, "  %-10s %6d entities  %3d fps\n", p, c.Count, c.FPS)
				}
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, menuCmd, windowCmd, renderCmd, streamCmd, generateCmd, benchCmd, presetsCmd)
	return rootCmd
}

// resolveConfig layers defaults, a preset, the config file and finally
// explicitly set flags, then validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg := config.DefaultConfig()

	if preset != "" {
		v, name := view, preset
		if i := strings.IndexByte(preset, '/'); i >= 0 {
			v, name = preset[:i], preset[i+1:]
		}
		p := config.GetPreset(v, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available for %s: %v)", preset, v, config.ListPresets(v))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if flags.Changed("view") {
		if _, err := graph.ParseVariant(view); err != nil {
			return nil, err
		}
		if cfg.View != view && !flags.Changed("count") {
			cfg.Count = engine.DefaultCount(graph.Variant(view))
		}
		cfg.View = view
	}
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves the config and builds the logger. Terminal hosts pass
// toStderr=false so logs never share the screen with the UI.
func setup(cmd *cobra.Command, toStderr bool) (*config.Config, *zap.Logger, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogFile == "" && !toStderr {
		return cfg, logging.Nop(), nil
	}
	log, err := logging.New(cfg.Environment, cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	p := tea.NewProgram(viz.NewModel(cfg, log, dashboard.HostSampler), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	p := tea.NewProgram(viz.NewLauncher(cfg, log, dashboard.HostSampler), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// headless mounts an animation on a raster surface driven by a manual
// frame queue.
func headless(cfg *config.Config, log *zap.Logger) (*engine.Animation, *frame.Queue, *raster.Surface) {
	q := frame.NewQueue()
	s := raster.New(cfg.Width, cfg.Height)
	a := engine.New(graph.Variant(cfg.View), s, q, animOptions(cfg, log)...)
	a.Mount()
	return a, q, s
}

func animOptions(cfg *config.Config, log *zap.Logger) []engine.Option {
	st := render.StyleFor(graph.Variant(cfg.View))
	st.Fade = cfg.Fade
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithCount(cfg.Count),
		engine.WithStyle(st),
		engine.WithMetrics(metrics.Defaults()...),
	}
	if cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(cfg.Seed))
	}
	return opts
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	anim, q, surface := headless(cfg, log)
	defer anim.Unmount()

	ext := strings.ToLower(filepath.Ext(output))
	var rec *export.GIFRecorder
	var each func(int) error
	switch ext {
	case ".png", ".svg":
	case ".gif":
		rec = export.NewGIFRecorder(cfg.FPS)
		each = func(int) error {
			rec.Capture(surface.Snapshot())
			return nil
		}
	default:
		return fmt.Errorf("unsupported output format: %q", ext)
	}

	if err := engine.Run(ctx, anim, q, renderFrames, each); err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	switch ext {
	case ".png":
		err = export.WritePNG(f, surface.Image())
	case ".gif":
		err = rec.Encode(f)
	case ".svg":
		err = export.WriteSVG(f, anim.Epoch(), anim.Style())
	}
	if err != nil {
		return err
	}
	log.Info("render written",
		zap.String("path", output),
		zap.Uint64("frames", anim.Frames()),
		zap.String("epoch", anim.Epoch().ID))
	return nil
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := tui.NewStreamer(cmd.OutOrStdout(), cfg.FPS, cfg.Width, cfg.Height, color)
	q := frame.NewQueue()
	a := engine.New(graph.Variant(cfg.View), st.Surface, q, animOptions(cfg, log)...)
	a.Mount()
	defer a.Unmount()
	return st.Run(ctx, a, q, streamFrames)
}

type epochSummary struct {
	ID          string             `json:"id"`
	Variant     string             `json:"variant"`
	Entities    int                `json:"entities"`
	Connections int                `json:"connections"`
	Kinds       map[string]int     `json:"kinds,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

func summarize(e *graph.Epoch) epochSummary {
	sum := epochSummary{
		ID:          e.ID,
		Variant:     string(e.Variant),
		Entities:    e.Len(),
		Connections: len(e.Connections),
		Metrics:     map[string]float64{},
	}
	if e.Variant == graph.Chip {
		sum.Kinds = map[string]int{}
		for _, ent := range e.Entities {
			sum.Kinds[ent.Kind.String()]++
		}
	}
	for _, m := range metrics.Defaults() {
		m.Observe(e)
		sum.Metrics[m.Name()] = m.Value()
	}
	return sum
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	bounds := graph.Bounds{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	e, err := graph.Generate(rand.New(rand.NewSource(s)), graph.Variant(cfg.View), cfg.Count, bounds)
	if err != nil {
		return err
	}
	sum := summarize(e)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "EPOCH\t%s\n", sum.ID)
	fmt.Fprintf(w, "VARIANT\t%s\n", sum.Variant)
	fmt.Fprintf(w, "ENTITIES\t%d\n", sum.Entities)
	fmt.Fprintf(w, "CONNECTIONS\t%d\n", sum.Connections)
	for _, k := range graph.Kinds {
		if n, ok := sum.Kinds[k.String()]; ok {
			fmt.Fprintf(w, "KIND %s\t%d\n", strings.ToUpper(k.String()), n)
		}
	}
	names := make([]string, 0, len(sum.Metrics))
	for name := range sum.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.3f\n", strings.ToUpper(name), sum.Metrics[name])
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	counts := []int{cfg.Count}
	if !cmd.Flags().Changed("count") && configFile == "" && preset == "" {
		counts = []int{50, 500, 5000, 50000}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s at %dx%d\n\n", cfg.View, cfg.Width, cfg.Height)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITIES\tCONNECTIONS\tFRAMES\tTIME\tFRAMES/SEC")

	for _, n := range counts {
		c := *cfg
		c.Count = n
		anim, q, _ := headless(&c, log)

		start := time.Now()
		err := engine.Run(ctx, anim, q, benchFrames, nil)
		elapsed := time.Since(start)
		edges := len(anim.Epoch().Connections)
		anim.Unmount()
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.1f\n",
			n, edges, benchFrames, elapsed.Round(time.Millisecond), float64(benchFrames)/elapsed.Seconds())
	}
	return w.Flush()
}
