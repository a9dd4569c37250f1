package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mosaic/internal/automation"
	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/export"
	"github.com/san-kum/mosaic/internal/metrics"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/san-kum/mosaic/internal/storage"
	"github.com/spf13/cobra"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	session, err := automation.NewSession(cfg)
	if err != nil {
		return err
	}
	session.Engine.AddObserver(metrics.NewPrometheus(cfg.Tracking.Source))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.MetricsAddr != "" {
		go metrics.ListenAndServe(ctx, metrics.NewServer(cfg.MetricsAddr))
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %d frames on %gx%g (%s, %s sampler)...\n",
		cfg.Frames, cfg.Canvas.Width, cfg.Canvas.Height, cfg.Tracking.Source, cfg.Engine.Sampler)
	start := time.Now()

	runID, result, err := session.RunAndStore(ctx, cfg.Frames, st, "")
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  splits: %d  resets: %d  tiles: %d\n",
		len(result.Frames), result.Splits, result.Resets, len(result.Final))
	printMetrics(session.Metrics.Values())

	return writeOutputs(result)
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func writeOutputs(result *mosaic.Result) error {
	if svgOut != "" {
		svg := export.TilesToSVG(result.Canvas, result.Final, scale)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	if pngOut != "" {
		img := export.Rasterize(result.Canvas, result.Final, export.RasterOptions{Scale: scale})
		if err := export.Save(pngOut, img); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngOut)
	}
	return nil
}

const benchFrames = 2000

// benchConfig is loadConfig with the longer bench run as the frame default.
func benchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("frames") {
		cfg.Frames = benchFrames
	}
	return cfg, nil
}

func benchSamplers(cmd *cobra.Command, args []string) error {
	cfg, err := benchConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	sources := []string{"center", "sweep", "walk"}

	fmt.Printf("benchmarking %d frames on %gx%g\n\n", cfg.Frames, cfg.Canvas.Width, cfg.Canvas.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SAMPLER\tSOURCE\tSPLITS\tRESETS\tTIME\tFRAMES/SEC")

	for _, name := range mosaic.SamplerNames {
		for _, src := range sources {
			run := *cfg
			run.Engine.Sampler = name
			run.Tracking.Source = src

			session, err := automation.NewSession(&run)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := session.Run(context.Background(), run.Frames)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\t%.0f\n",
				name, src, result.Splits, result.Resets, elapsed, float64(len(result.Frames))/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, cfg, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tFRAMES\tSPLITS\tRESETS\tTILES\tCOVERAGE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.4f\n",
			r.Step, r.RunID, len(r.Result.Frames), r.Result.Splits, r.Result.Resets, len(r.Result.Final), r.Metrics["coverage"])
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	sweep := &automation.ParameterSweep{
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		NumSteps: sweepSteps,
		Frames:   cfg.Frames,
	}
	results, err := automation.RunSweep(context.Background(), sweep, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSPLITS\tRESETS\tTILES\tDETECTION\n", sweepParam)
	tiles := make([]float64, 0, len(results))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%.3f\n",
			r.ParamValue, r.Splits, r.Resets, r.FinalTiles, r.Metrics["detection_rate"])
		tiles = append(tiles, float64(r.FinalTiles))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(tiles) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(tiles,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("final tiles vs %s", sweepParam)),
		))
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("source") && configFile == "" {
		cfg.Tracking.Source = "walk"
	}
	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	fmt.Printf("running %d seeds of %s, %d frames each...\n", numRuns, cfg.Tracking.Source, cfg.Frames)
	start := time.Now()
	results, err := automation.NewEnsemble(cfg, numRuns, cfg.Tracking.Seed).Run(context.Background(), cfg.Frames)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSPLITS\tRESETS\tTILES\tPEAK")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.0f\n",
			r.Seed, r.Result.Splits, r.Result.Resets, len(r.Result.Final), r.Metrics["peak_tiles"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printMetrics(automation.MeanMetrics(results))
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "mosaic.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
