package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sketchlab/internal/attractor"
	"github.com/san-kum/sketchlab/internal/capture"
	"github.com/san-kum/sketchlab/internal/config"
	"github.com/san-kum/sketchlab/internal/export"
	"github.com/san-kum/sketchlab/internal/field"
	"github.com/san-kum/sketchlab/internal/sketch"
	"github.com/san-kum/sketchlab/internal/viz"
	"github.com/san-kum/sketchlab/internal/waves"
)

var (
	dataDir    string
	configFile string
	preset     string
	quality    string
	systemName string
	fps        int
	frames     int
	width      int
	height     int
	seed       int64
	outPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sketchlab",
		Short: "real-time generative art simulations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sk, err := newSketch(cfg.Sketch, cfg)
			if err != nil {
				return err
			}
			return viz.RunLive(sk, qualityMode(cfg), frameRate(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sketchlab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a named preset")
	rootCmd.PersistentFlags().StringVar(&quality, "quality", "", "quality mode: full or preview")
	rootCmd.PersistentFlags().StringVar(&systemName, "system", "", "attractor system: lorenz or rossler")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "override random seed")

	liveCmd := &cobra.Command{
		Use:   "live [sketch]",
		Short: "run a sketch in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&fps, "fps", 0, "frame rate (0 uses the config value)")

	runCmd := &cobra.Command{
		Use:   "run [sketch]",
		Short: "advance a sketch headless and print stats",
		Args:  cobra.ExactArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 300, "frames to advance")
	runCmd.Flags().IntVar(&width, "width", 640, "canvas width")
	runCmd.Flags().IntVar(&height, "height", 480, "canvas height")

	exportCmd := &cobra.Command{
		Use:   "export [sketch]",
		Short: "render one frame to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportCmd.Flags().IntVar(&frames, "frames", 120, "warmup frames before the exported one")
	exportCmd.Flags().IntVar(&width, "width", 640, "canvas width")
	exportCmd.Flags().IntVar(&height, "height", 480, "canvas height")
	exportCmd.Flags().StringVar(&outPath, "out", "frame.svg", "output file")

	recordCmd := &cobra.Command{
		Use:   "record [sketch]",
		Short: "capture a run's primitives to the data directory",
		Args:  cobra.ExactArgs(1),
		RunE:  recordRun,
	}
	recordCmd.Flags().IntVar(&frames, "frames", 300, "frames to record")
	recordCmd.Flags().IntVar(&width, "width", 640, "canvas width")
	recordCmd.Flags().IntVar(&height, "height", 480, "canvas height")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list sketches, presets and recorded runs",
		RunE:  listAll,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [sketch]",
		Short: "measure per-frame cost",
		Args:  cobra.ExactArgs(1),
		RunE:  benchSketch,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 1000, "frames to time")
	benchCmd.Flags().IntVar(&width, "width", 640, "canvas width")
	benchCmd.Flags().IntVar(&height, "height", 480, "canvas height")

	rootCmd.AddCommand(liveCmd, runCmd, exportCmd, recordCmd, listCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(configFile)
}

func frameRate(cfg *config.Config) int {
	if fps > 0 {
		return fps
	}
	return cfg.FPS
}

func qualityMode(cfg *config.Config) sketch.Quality {
	switch quality {
	case "preview":
		return sketch.Preview
	case "full":
		return sketch.Full
	}
	return cfg.QualityMode()
}

// newSketch builds a simulator with defaults, then layers the preset and
// the config file's option map on top through the Configure surface.
func newSketch(name string, cfg *config.Config) (sketch.Sketch, error) {
	var sk sketch.Sketch
	switch name {
	case "waves":
		opts := waves.DefaultOptions()
		if seed != 0 {
			opts.Seed = seed
		} else if cfg.Seed != 0 {
			opts.Seed = cfg.Seed
		}
		sk = waves.NewGrid(opts)
	case "attractor":
		sysName := cfg.System
		if systemName != "" {
			sysName = systemName
		}
		sys := attractor.BySystemName(sysName)
		if sys == nil {
			return nil, fmt.Errorf("unknown attractor system %q", sysName)
		}
		sk = attractor.New(sys, attractor.DefaultOptions())
	case "field":
		opts := field.DefaultOptions()
		if seed != 0 {
			opts.Seed = seed
		} else if cfg.Seed != 0 {
			opts.Seed = cfg.Seed
		}
		sk = field.New(opts)
	default:
		return nil, fmt.Errorf("unknown sketch %q (waves, attractor, field)", name)
	}

	if preset != "" {
		opts := config.GetPreset(name, preset)
		if opts == nil {
			return nil, fmt.Errorf("unknown preset %q for sketch %q", preset, name)
		}
		if err := sketch.Configure(sk, opts); err != nil {
			return nil, err
		}
	}
	if opts := cfg.OptionsFor(name); opts != nil {
		if err := sketch.Configure(sk, opts); err != nil {
			return nil, err
		}
	}
	return sk, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sk, err := newSketch(args[0], cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(sk, qualityMode(cfg), frameRate(cfg))
}

// orbitPointer is the scripted pointer path used by all headless modes,
// the same circle the live view defaults to.
func orbitPointer(frame int) sketch.Pointer {
	theta := float64(frame) * 0.01
	return sketch.Pointer{X: 0.5 + 0.35*math.Cos(theta), Y: 0.5 + 0.35*math.Sin(theta)}
}

func advanceFrames(sk sketch.Sketch, q sketch.Quality, n int) []sketch.Frame {
	sk.Reinitialize(width, height, q)
	out := make([]sketch.Frame, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sk.Advance(orbitPointer(i), q))
	}
	return out
}

func primitiveCount(f sketch.Frame) int {
	n := len(f.Edges)
	for _, l := range f.Lines {
		n += len(l)
	}
	for _, c := range f.Contours {
		n += len(c)
	}
	return n
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sk, err := newSketch(args[0], cfg)
	if err != nil {
		return err
	}
	q := qualityMode(cfg)

	history := make([]float64, 0, frames)
	sk.Reinitialize(width, height, q)
	total := 0
	for i := 0; i < frames; i++ {
		f := sk.Advance(orbitPointer(i), q)
		total += primitiveCount(f)
		history = append(history, float64(primitiveCount(f)))
	}

	fmt.Println(asciigraph.Plot(history, asciigraph.Height(10), asciigraph.Width(70),
		asciigraph.Caption("primitives per frame")))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "sketch\t%s\n", sk.Name())
	fmt.Fprintf(w, "quality\t%s\n", q)
	fmt.Fprintf(w, "frames\t%d\n", frames)
	fmt.Fprintf(w, "primitives\t%d\n", total)
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sk, err := newSketch(args[0], cfg)
	if err != nil {
		return err
	}
	q := qualityMode(cfg)

	all := advanceFrames(sk, q, frames+1)
	svg := export.FrameToSVG(all[len(all)-1], width, height)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func recordRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sk, err := newSketch(args[0], cfg)
	if err != nil {
		return err
	}
	q := qualityMode(cfg)

	store := capture.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	all := advanceFrames(sk, q, frames)
	id, err := store.Save(args[0], q, sk.Params(), all)
	if err != nil {
		return err
	}
	fmt.Printf("recorded %s (%d frames)\n", id, len(all))
	return nil
}

func listAll(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKETCH\tPRESETS")
	for _, name := range []string{"waves", "attractor", "field"} {
		fmt.Fprintf(w, "%s\t%v\n", name, config.ListPresets(name))
	}
	w.Flush()

	runs, err := capture.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}
	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSKETCH\tFRAMES\tQUALITY\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Sketch, r.Frames, r.Quality, r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func benchSketch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sk, err := newSketch(args[0], cfg)
	if err != nil {
		return err
	}
	q := qualityMode(cfg)

	sk.Reinitialize(width, height, q)
	start := time.Now()
	for i := 0; i < frames; i++ {
		sk.Advance(orbitPointer(i), q)
	}
	elapsed := time.Since(start)

	perFrame := elapsed / time.Duration(frames)
	fmt.Printf("%s (%s): %d frames in %v (%v/frame, %.0f fps)\n",
		sk.Name(), q, frames, elapsed, perFrame, float64(time.Second)/float64(perFrame))
	return nil
}
