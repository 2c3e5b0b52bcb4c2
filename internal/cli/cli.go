// Package cli builds the pendulum command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pendulum/internal/config"
	"github.com/san-kum/pendulum/internal/logging"
	"github.com/san-kum/pendulum/internal/render"
	"github.com/san-kum/pendulum/internal/scene"
	"github.com/san-kum/pendulum/internal/storage"
	"github.com/san-kum/pendulum/internal/trace"
	"github.com/san-kum/pendulum/internal/window"
	"github.com/san-kum/pendulum/internal/window/term"
)

// Native is the window backend compiled into the binary. "window" in a
// config file resolves to it.
type Native struct {
	Name    string
	Factory window.Factory
}

type sceneFlags struct {
	configFile string
	preset     string
}

type windowFlags struct {
	backend string
	fps     int
}

type app struct {
	native  Native
	dataDir string
	verbose bool
	logger  logging.Logger
}

// NewRootCmd returns the full command tree. Every call gets its own flag
// state.
func NewRootCmd(native Native) *cobra.Command {
	a := &app{native: native, logger: logging.Nop}

	var rootScene sceneFlags
	var rootWindow windowFlags
	rootCmd := &cobra.Command{
		Use:           "pendulum",
		Short:         "pendulum physics animation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = logging.NewText(cmd.ErrOrStderr(), level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWindow(cmd, rootScene, rootWindow)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.dataDir, "data", ".pendulum", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	a.addSceneFlags(rootCmd, &rootScene)
	a.addWindowFlags(rootCmd, &rootWindow)

	rootCmd.AddCommand(
		a.runCmd(),
		a.renderCmd(),
		a.recordCmd(),
		a.listCmd(),
		a.plotCmd(),
		a.exportCSVCmd(),
		a.exportJSONCmd(),
		presetsCmd(),
	)
	return rootCmd
}

func (a *app) addSceneFlags(cmd *cobra.Command, f *sceneFlags) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&f.preset, "preset", config.DefaultPreset, "scene preset")
}

func (a *app) addWindowFlags(cmd *cobra.Command, f *windowFlags) {
	cmd.Flags().StringVar(&f.backend, "backend", "", "window backend (window|term|"+a.native.Name+")")
	cmd.Flags().IntVar(&f.fps, "fps", 0, "frame rate (0 keeps the configured value)")
}

func (a *app) runCmd() *cobra.Command {
	var sf sceneFlags
	var wf windowFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "open the animation window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWindow(cmd, sf, wf)
		},
	}
	a.addSceneFlags(cmd, &sf)
	a.addWindowFlags(cmd, &wf)
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	var sf sceneFlags
	var frames int
	var outFile string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "simulate headless and write the last frame as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.renderSVG(cmd, sf, frames, outFile)
		},
	}
	a.addSceneFlags(cmd, &sf)
	cmd.Flags().IntVar(&frames, "frames", 1, "frames to simulate")
	cmd.Flags().StringVarP(&outFile, "out", "o", "-", "output file (- for stdout)")
	return cmd
}

func (a *app) recordCmd() *cobra.Command {
	var sf sceneFlags
	var frames int
	cmd := &cobra.Command{
		Use:   "record",
		Short: "simulate headless and save a trace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.recordTrace(cmd, sf, frames)
		},
	}
	a.addSceneFlags(cmd, &sf)
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list recorded traces",
		Args:  cobra.NoArgs,
		RunE:  a.listRuns,
	}
}

func (a *app) plotCmd() *cobra.Command {
	var pendulumIx int
	var field string
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.plotRun(cmd, args[0], pendulumIx, field)
		},
	}
	cmd.Flags().IntVarP(&pendulumIx, "pendulum", "p", -1, "pendulum index (-1 for all)")
	cmd.Flags().StringVar(&field, "field", "angle", "angle|omega|alpha|x|y|energy")
	return cmd
}

func (a *app) exportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trace samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := storage.New(a.dataDir).LoadResult(args[0])
			if err != nil {
				return err
			}
			return storage.ExportCSV(cmd.OutOrStdout(), result)
		},
	}
}

func (a *app) exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export trace samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(a.dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			result, err := st.LoadResult(args[0])
			if err != nil {
				return err
			}
			return storage.ExportJSON(cmd.OutOrStdout(), meta, result)
		},
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPENDULUMS\tLENGTHS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				lengths := make([]string, len(cfg.Pendulums))
				for i, p := range cfg.Pendulums {
					lengths[i] = fmt.Sprintf("%g", p.Length)
				}
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(cfg.Pendulums), strings.Join(lengths, ","))
			}
			return w.Flush()
		},
	}
}

// loadConfig resolves the preset, then the config file on top of it, then
// command-line overrides. It returns the config and the name recorded with
// traces.
func loadConfig(cmd *cobra.Command, sf sceneFlags, wf *windowFlags) (*config.Config, string, error) {
	name := sf.preset
	cfg := config.GetPreset(sf.preset)
	if cfg == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", sf.preset, config.ListPresets())
	}

	if sf.configFile != "" {
		loaded, err := config.Load(sf.configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(sf.configFile), filepath.Ext(sf.configFile))
	}

	if wf != nil {
		if f := cmd.Flags().Lookup("backend"); f != nil && f.Changed {
			cfg.Backend = wf.backend
		}
		if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
			cfg.FPS = wf.fps
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func (a *app) newRegistry() *window.Registry {
	reg := window.NewRegistry()
	reg.Register("term", term.New)
	if a.native.Factory != nil {
		reg.Register(a.native.Name, a.native.Factory)
	}
	return reg
}

func (a *app) newScene(cfg *config.Config) *scene.Scene {
	s := scene.FromConfig(cfg)
	s.SetLogger(a.logger)
	return s
}

func (a *app) runWindow(cmd *cobra.Command, sf sceneFlags, wf windowFlags) error {
	cfg, _, err := loadConfig(cmd, sf, &wf)
	if err != nil {
		return err
	}

	name := cfg.Backend
	if name == config.DefaultBackend {
		name = a.native.Name
	}

	win, err := a.newRegistry().Open(name, window.Options{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	}, a.logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s := a.newScene(cfg)
	if err := win.Run(ctx, s); err != nil && ctx.Err() == nil {
		return err
	}
	a.logger.Debug("scene finished", "frames", s.Frame())
	return nil
}

func (a *app) renderSVG(cmd *cobra.Command, sf sceneFlags, frames int, outFile string) error {
	cfg, _, err := loadConfig(cmd, sf, nil)
	if err != nil {
		return err
	}

	if frames < 1 {
		return fmt.Errorf("%w: %d", trace.ErrNoFrames, frames)
	}

	svg := render.NewSVG(cfg.Width, cfg.Height)
	if err := a.newScene(cfg).Run(cmd.Context(), frames, svg, nil); err != nil {
		return err
	}

	if outFile == "-" {
		_, err = svg.WriteTo(cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := svg.WriteTo(f); err != nil {
		return err
	}
	a.logger.Info("frame written", "path", outFile, "frames", frames)
	return nil
}

func (a *app) recordTrace(cmd *cobra.Command, sf sceneFlags, frames int) error {
	cfg, name, err := loadConfig(cmd, sf, nil)
	if err != nil {
		return err
	}

	st := storage.New(a.dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "recording %s (%d frames)...\n", name, frames)
	result, err := trace.Record(cmd.Context(), a.newScene(cfg), frames)
	if err != nil {
		return err
	}

	runID, err := st.Save(name, cfg.Pendulums, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintln(out, "\nmetrics:")
	keys := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %.6f\n", k, result.Metrics[k])
	}
	return nil
}

func (a *app) listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(a.dataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tPENDULUMS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			len(run.Pendulums),
		)
	}
	return w.Flush()
}

func (a *app) plotRun(cmd *cobra.Command, runID string, pendulumIx int, field string) error {
	st := storage.New(a.dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return err
	}

	pick, err := fieldFunc(field)
	if err != nil {
		return err
	}

	if len(result.Samples) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if pendulumIx >= result.Pendulums {
		return fmt.Errorf("pendulum index %d out of range (run has %d)", pendulumIx, result.Pendulums)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s\n", meta.Preset)
	fmt.Fprintf(out, "frames: %d\n\n", result.Frames)

	for i := 0; i < result.Pendulums; i++ {
		if pendulumIx >= 0 && i != pendulumIx {
			continue
		}

		series := result.Series(i)
		data := make([]float64, len(series))
		for j, s := range series {
			data[j] = pick(s)
		}

		caption := fmt.Sprintf("%s, pendulum %d (length %g)", field, i, meta.Pendulums[i].Length)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func fieldFunc(name string) (func(trace.Sample) float64, error) {
	switch name {
	case "angle":
		return func(s trace.Sample) float64 { return s.Angle }, nil
	case "omega":
		return func(s trace.Sample) float64 { return s.AngularVelocity }, nil
	case "alpha":
		return func(s trace.Sample) float64 { return s.AngularAcceleration }, nil
	case "x":
		return func(s trace.Sample) float64 { return s.Position.X }, nil
	case "y":
		return func(s trace.Sample) float64 { return s.Position.Y }, nil
	case "energy":
		return func(s trace.Sample) float64 { return s.Energy }, nil
	default:
		return nil, fmt.Errorf("unknown field: %s", name)
	}
}
