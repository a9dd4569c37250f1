package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/export"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/san-kum/mosaic/internal/storage"
	"github.com/san-kum/mosaic/internal/tracking"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
)

// openStore opens the run store named by the config file, unless --data was
// given.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tCANVAS\tSOURCE\tSAMPLER\tFRAMES\tRESETS\tTILES\tSCENARIO")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%gx%g\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Source,
			run.Sampler,
			run.Frames,
			run.Resets,
			run.FinalTiles,
			run.Scenario,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("frames: %d\n\n", len(frames))

	tiles := make([]float64, len(frames))
	splits := make([]float64, len(frames))
	for i, f := range frames {
		tiles[i] = float64(f.Tiles)
		splits[i] = float64(f.Splits)
	}

	fmt.Println(asciigraph.Plot(tiles,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("tiles per frame"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(splits,
		asciigraph.Height(4),
		asciigraph.Width(80),
		asciigraph.Caption("splits per frame"),
	))

	var resets []string
	for _, f := range frames {
		if f.Reset {
			resets = append(resets, fmt.Sprintf("%d", f.Number))
		}
	}
	if len(resets) > 0 {
		fmt.Printf("\nresets at frames: %s\n", strings.Join(resets, ", "))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	canvas := mosaic.Size{W: meta.Width, H: meta.Height}

	out := outPath
	if out == "" {
		out = runID + "." + format
		if format == "path" {
			out = runID + "-path.svg"
		}
	}

	switch format {
	case "svg":
		tiles, err := st.LoadTiles(runID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(export.TilesToSVG(canvas, tiles, scale)), 0644); err != nil {
			return err
		}
	case "png", "jpg", "jpeg":
		tiles, err := st.LoadTiles(runID)
		if err != nil {
			return err
		}
		if err := export.Save(out, export.Rasterize(canvas, tiles, export.RasterOptions{Scale: scale})); err != nil {
			return err
		}
	case "path":
		frames, err := st.LoadFrames(runID)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(export.PointerPathSVG(canvas, frames, "#e4572e")), 0644); err != nil {
			return err
		}
	case "json":
		frames, err := st.LoadFrames(runID)
		if err != nil {
			return err
		}
		tiles, err := st.LoadTiles(runID)
		if err != nil {
			return err
		}
		if err := export.ExportJSON(out, export.NewRunData(*meta, frames, tiles)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (available: svg, png, jpg, path, json)", format)
	}

	fmt.Printf("exported to %s\n", out)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCANVAS\tMIN TILE\tTHRESHOLD\tSAMPLER\tFRAMES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%gx%g\t%g\t%d\t%s\t%d\n",
			name,
			p.Canvas.Width,
			p.Canvas.Height,
			p.Engine.MinTileSize,
			p.Engine.ResetThreshold,
			p.Engine.Sampler,
			p.Frames,
		)
	}
	return w.Flush()
}

func listSources(cmd *cobra.Command, args []string) error {
	fmt.Println("tracking sources:")
	fmt.Printf("  %s (live and gui only)\n", mouseSource)
	for _, name := range tracking.Names() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
