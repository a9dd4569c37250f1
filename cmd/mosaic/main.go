package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	// engine
	width     float64
	height    float64
	images    []string
	maxDim    int
	minTile   float64
	threshold int
	sampler   string
	frames    int
	fps       float64
	// tracking
	source  string
	seed    int64
	period  int
	replay  string
	mirror  bool
	trackAt float64
	// outputs
	metricsAddr string
	svgOut      string
	pngOut      string
	gifOut      string
	scale       float64
	theme       string
	showPointer bool
	// sweep and ensemble
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	numRuns    int
	// export
	format  string
	outPath string
	force   bool
)

// main registers the commands and runs the root command. With no subcommand
// the interactive terminal launcher starts.
func main() {
	rootCmd := &cobra.Command{
		Use:   "mosaic",
		Short: "pointer-driven adaptive image mosaic",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stdout")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless mosaic and store the result",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addEngineFlags(runCmd)
	addTrackingFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final mosaic as svg")
	runCmd.Flags().StringVar(&pngOut, "png", "", "write the final mosaic as png or jpeg")
	runCmd.Flags().Float64Var(&scale, "scale", 1, "raster and svg scale")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the mosaic in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	addTrackingFlags(liveCmd)
	liveCmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "studio", "color theme")
	liveCmd.Flags().StringVar(&gifOut, "gif", "mosaic.gif", "recording output path")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the mosaic in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addEngineFlags(guiCmd)
	addTrackingFlags(guiCmd)
	guiCmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "frame rate")
	guiCmd.Flags().StringVar(&gifOut, "gif", "mosaic.gif", "recording output path")
	guiCmd.Flags().BoolVar(&showPointer, "show-pointer", false, "mark the tracked position")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot tile count per frame",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export the final mosaic of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "svg", "output format (svg, png, jpg, path, json)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.<format>)")
	exportCmd.Flags().Float64Var(&scale, "scale", 1, "output scale")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list engine presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "list tracking sources",
		Args:  cobra.NoArgs,
		RunE:  listSources,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the samplers",
		Args:  cobra.NoArgs,
		RunE:  benchSamplers,
	}
	addEngineFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", benchFrames, "frames per run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run once per value of an engine setting",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	addTrackingFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "min_tile_size", "setting to vary (min_tile_size, reset_threshold)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 32, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run once per seed in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addEngineFlags(ensembleCmd)
	addTrackingFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, showCmd, plotCmd, exportCmd, presetsCmd, sourcesCmd, benchCmd, scenarioCmd, sweepCmd, ensembleCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEngineFlags(c *cobra.Command) {
	c.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	c.Flags().Float64Var(&width, "width", config.DefaultWidth, "canvas width")
	c.Flags().Float64Var(&height, "height", config.DefaultHeight, "canvas height")
	c.Flags().StringSliceVar(&images, "image", nil, "image spec (file, screen, gradient:WxH, checker:WxH, solid:RRGGBB:WxH); repeatable")
	c.Flags().IntVar(&maxDim, "max-dim", config.DefaultMaxDim, "down-fit images larger than this")
	c.Flags().Float64Var(&minTile, "min-tile", 4, "minimum tile edge")
	c.Flags().IntVar(&threshold, "threshold", 3000, "tile count that advances to the next image")
	c.Flags().StringVar(&sampler, "sampler", config.DefaultSampler, "color sampler (scan, integral)")
}

func addTrackingFlags(c *cobra.Command) {
	c.Flags().StringVar(&source, "source", "center", "tracking source")
	c.Flags().Int64Var(&seed, "seed", 1, "random seed (walk)")
	c.Flags().IntVar(&period, "period", 240, "frames per cycle (circle, lissajous)")
	c.Flags().StringVar(&replay, "replay", "", "landmark recording (replay)")
	c.Flags().BoolVar(&mirror, "mirror", true, "mirror tracked x")
	c.Flags().Float64Var(&trackAt, "track-fps", 30, "tracking feed rate")
}

// loadConfig layers the config file, the preset and finally any flags set
// on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("image") {
		cfg.Images = images
	}
	if flags.Changed("max-dim") {
		cfg.MaxImageDim = maxDim
	}
	if flags.Changed("min-tile") {
		cfg.Engine.MinTileSize = minTile
	}
	if flags.Changed("threshold") {
		cfg.Engine.ResetThreshold = threshold
	}
	if flags.Changed("sampler") {
		cfg.Engine.Sampler = sampler
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("source") {
		cfg.Tracking.Source = source
	}
	if flags.Changed("seed") {
		cfg.Tracking.Seed = seed
	}
	if flags.Changed("period") {
		cfg.Tracking.Period = period
	}
	if flags.Changed("replay") {
		cfg.Tracking.Replay = replay
	}
	if flags.Changed("mirror") {
		cfg.Tracking.Mirror = mirror
	}
	if flags.Changed("track-fps") {
		cfg.Tracking.FPS = trackAt
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

// setupLogging configures the log sink. Views that own the terminal always
// log to a file.
func setupLogging(cfg *config.Config, ownsTerminal bool) (io.Closer, error) {
	opts := logger.Options{
		Level:  cfg.Log.Level,
		Indent: cfg.Log.Indent,
		File:   cfg.Log.File,
	}
	if ownsTerminal && opts.File == "" {
		opts.File = "mosaic.log"
	}
	closer, err := logger.Setup(opts)
	if err != nil {
		return nil, errors.New("setting up logs failed").Wrap(err)
	}
	return closer, nil
}
