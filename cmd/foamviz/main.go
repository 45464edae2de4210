package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/anim"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/config"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/foam"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/gui"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/render"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/tui"
	"github.com/DarshKodwani/openfoam-basic-on-azure/internal/video"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	volumeFile string
	partSuffix string
	output     string
	fps        int
	duration   int
	width      int
	height     int
	quality    int
	// Config file
	configFile string
	// Preset name
	preset string
	// View mode for the mesh viewer
	viewMode string
)

var sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// main is the entry point for the foamviz CLI; it registers commands and
// flags and drops into the interactive mesh viewer when no subcommand is
// given. It exits the process with status 1 if command execution returns
// an error.
func main() {
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "foamviz",
		Short: "openfoam motorbike cfd visualization",
		RunE:  runView,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", defaults.Data.Dir, "case directory")
	rootCmd.PersistentFlags().StringVar(&volumeFile, "volume", defaults.Data.VolumeFile, "volume mesh file")
	rootCmd.PersistentFlags().StringVar(&partSuffix, "suffix", defaults.Data.PartSuffix, "part file suffix")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render the rotating cfd dashboard movie",
		RunE:  runAnimate,
	}
	animateCmd.Flags().StringVar(&output, "output", defaults.Movie.Output, "movie file path")
	animateCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	animateCmd.Flags().IntVar(&duration, "duration", config.DefaultDuration, "movie length in seconds")
	animateCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	animateCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	animateCmd.Flags().IntVar(&quality, "quality", config.DefaultQuality, "movie quality (0-10)")
	animateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	animateCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "open the interactive mesh viewer",
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&viewMode, "mode", "", "view mode (simple, detailed, exploded)")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "inspect the case: volume, attributes, parts",
		RunE:  runInfo,
	}

	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "spin a terminal wireframe through the camera sweep",
		RunE:  runPreview,
	}
	previewCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	previewCmd.Flags().IntVar(&duration, "duration", config.DefaultDuration, "sweep length in seconds")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list movie presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %dx%d, %d fps, %ds, quality %d\n",
					name, p.Movie.Width, p.Movie.Height, p.Movie.FPS, p.Movie.Duration, p.Movie.Quality)
			}
			return nil
		},
	}

	rootCmd.AddCommand(animateCmd, viewCmd, infoCmd, previewCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCase reads the configured case directory and reports skipped parts
// on the way.
func loadCase() (*foam.Case, error) {
	fmt.Printf("loading case from %s...\n", dataDir)
	c, err := foam.Load(dataDir, volumeFile, partSuffix)
	if err != nil {
		return nil, err
	}
	for _, p := range c.FailedParts() {
		fmt.Printf("skipping part %s: %v\n", p.Name, p.Err)
	}
	fmt.Printf("loaded %d parts, %d surface points, %d volume cells\n",
		len(c.GoodParts()), c.Surface.NumPoints(), c.Volume.Grid.NumCells())
	return c, nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	// Apply preset values
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		dataDir = cfg.Data.Dir
		volumeFile = cfg.Data.VolumeFile
		partSuffix = cfg.Data.PartSuffix
		output = cfg.Movie.Output
		fps = cfg.Movie.FPS
		duration = cfg.Movie.Duration
		width = cfg.Movie.Width
		height = cfg.Movie.Height
		quality = cfg.Movie.Quality
	}

	// Load config file if specified (CLI flags override config)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("data") {
			dataDir = cfg.Data.Dir
		}
		if !cmd.Flags().Changed("volume") {
			volumeFile = cfg.Data.VolumeFile
		}
		if !cmd.Flags().Changed("suffix") {
			partSuffix = cfg.Data.PartSuffix
		}
		if !cmd.Flags().Changed("output") {
			output = cfg.Movie.Output
		}
		if !cmd.Flags().Changed("fps") {
			fps = cfg.Movie.FPS
		}
		if !cmd.Flags().Changed("duration") {
			duration = cfg.Movie.Duration
		}
		if !cmd.Flags().Changed("width") {
			width = cfg.Movie.Width
		}
		if !cmd.Flags().Changed("height") {
			height = cfg.Movie.Height
		}
		if !cmd.Flags().Changed("quality") {
			quality = cfg.Movie.Quality
		}
	}

	c, err := loadCase()
	if err != nil {
		return err
	}

	frames := fps * duration
	plotter := render.NewPlotter(width, height, 2, 2)
	writer, err := video.NewWriter(output, width, height, fps, quality)
	if err != nil {
		return err
	}
	defer writer.Close()

	fmt.Printf("rendering %d frames at %dx%d...\n", frames, width, height)
	start := time.Now()

	written, err := anim.Animate(plotter, writer, c, frames, os.Stdout)
	if err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	if fi, err := os.Stat(output); err == nil {
		fmt.Printf("movie: %s (%.1f MB)\n", output, float64(fi.Size())/(1<<20))
	} else {
		fmt.Printf("movie: %s\n", output)
	}
	fmt.Printf("frames: %d at %d fps, %ds\n", written, fps, duration)
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	choice := viewMode
	if choice == "" {
		fmt.Println("Motorbike Mesh Visualization")
		fmt.Println("1. Simple view")
		fmt.Println("2. Detailed view")
		fmt.Println("3. Exploded view")
		fmt.Print("Enter choice (1-3): ")
		choice, _ = bufio.NewReader(os.Stdin).ReadString('\n')
	}

	mode, ok := gui.ParseMode(choice)
	if !ok {
		fmt.Println("Invalid choice, showing simple view")
	}

	c, err := loadCase()
	if err != nil {
		return err
	}
	gui.Run(c, mode)
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Printf("loading case from %s...\n", dataDir)
	c, err := foam.Load(dataDir, volumeFile, partSuffix)
	if err != nil {
		return err
	}

	g := c.Volume.Grid
	b := c.Volume.Bounds()
	center := b.Center()

	fmt.Println()
	fmt.Println(sectionStyle.Render("volume"))
	fmt.Printf("  points: %d\n", g.NumPoints())
	fmt.Printf("  cells: %d (%d tetrahedra)\n", g.NumCells(), c.Volume.NumTets())
	fmt.Printf("  bounds: [%.2f, %.2f] x [%.2f, %.2f] x [%.2f, %.2f]\n",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
	fmt.Printf("  center: (%.2f, %.2f, %.2f)\n", center.X, center.Y, center.Z)

	fmt.Println()
	fmt.Println(sectionStyle.Render("attributes"))
	// vector rows report the range of the magnitude
	type attr struct {
		name   string
		comps  int
		lo, hi float64
	}
	var attrs []attr
	for name, vals := range g.Scalars {
		lo, hi := valueRange(vals)
		attrs = append(attrs, attr{name, 1, lo, hi})
	}
	for name, vecs := range g.Vectors {
		mags := make([]float64, len(vecs))
		for i, v := range vecs {
			mags[i] = v.Length()
		}
		lo, hi := valueRange(mags)
		attrs = append(attrs, attr{name, 3, lo, hi})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].name < attrs[j].name })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMPONENTS\tMIN\tMAX")
	for _, a := range attrs {
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\n", a.name, a.comps, a.lo, a.hi)
	}
	w.Flush()

	fmt.Println()
	fmt.Println(sectionStyle.Render("parts"))
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tPOINTS\tPOLYS\tSTATUS")
	for _, p := range c.Parts {
		if p.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\tskipped: %v\n", p.Path, p.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\tok\n", p.Path, p.Mesh.NumPoints(), len(p.Mesh.Polys))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	vecs := g.Vector("U")
	if vecs == nil {
		fmt.Println("\nno velocity field, skipping histogram")
		return nil
	}
	mags := make([]float64, len(vecs))
	for i, v := range vecs {
		mags[i] = v.Length()
	}
	lo, hi := valueRange(mags)

	const bins = 40
	counts := make([]float64, bins)
	span := hi - lo
	for _, m := range mags {
		if math.IsNaN(m) {
			continue
		}
		i := 0
		if span > 0 {
			i = int((m - lo) / span * bins)
		}
		if i < 0 {
			i = 0
		}
		if i > bins-1 {
			i = bins - 1
		}
		counts[i]++
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("velocity"))
	graph := asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("|U| distribution, %.2f to %.2f m/s", lo, hi)),
	)
	fmt.Println(graph)

	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	c, err := loadCase()
	if err != nil {
		return err
	}
	return tui.Run(c, fps, fps*duration)
}

// valueRange returns the finite min and max of vals, or zeros when no
// finite value exists.
func valueRange(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
