package main

import (
	"context"
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/logs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mosaic/internal/automation"
	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/export"
	"github.com/san-kum/mosaic/internal/gui"
	"github.com/san-kum/mosaic/internal/metrics"
	"github.com/san-kum/mosaic/internal/tracking"
	"github.com/san-kum/mosaic/internal/viz"
	"github.com/spf13/cobra"
)

const mouseSource = "mouse"

// interactive is a session for a view that runs until the operator quits.
// Unless the pointer follows the mouse, a tracking feed publishes into it
// from its own goroutine.
type interactive struct {
	session  *automation.Session
	recorder *export.Recorder
	mouse    bool
}

func newInteractive(ctx context.Context, cfg *config.Config, src string) (*interactive, error) {
	run := *cfg
	mouse := src == mouseSource
	if mouse {
		run.Tracking.Source = "center"
	} else {
		run.Tracking.Source = src
	}

	session, err := automation.NewSession(&run)
	if err != nil {
		return nil, err
	}
	recorder := export.NewRecorder(0.5)
	session.Engine.AddObserver(recorder)
	session.Engine.AddObserver(metrics.NewPrometheus(src))

	if !mouse {
		feed := &tracking.Feed{
			Path:    session.Path,
			Pointer: session.Engine.Pointer(),
			FPS:     run.Tracking.FPS,
		}
		go feed.Run(ctx)
	}

	logs.WithTag("source", src).
		WithTag("width", run.Canvas.Width).
		WithTag("height", run.Canvas.Height).
		WithTag("images", len(run.Images)).
		Info("interactive session started")

	return &interactive{
		session:  session,
		recorder: recorder,
		mouse:    mouse,
	}, nil
}

// liveSource picks the tracking source for a view: the mouse unless a source
// was given on the command line or in the config file.
func liveSource(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("source") || configFile != "" {
		return cfg.Tracking.Source
	}
	return mouseSource
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MetricsAddr != "" {
		go metrics.ListenAndServe(ctx, metrics.NewServer(cfg.MetricsAddr))
	}

	build := func(presetName, src string) (viz.Model, tea.Cmd, error) {
		run := *cfg
		if p := config.GetPreset(presetName); p != nil {
			run.Apply(p)
		}
		s, err := newInteractive(ctx, &run, src)
		if err != nil {
			return viz.Model{}, nil, err
		}
		m := viz.NewModel(s.session.Engine, viz.Options{
			Source:   src,
			Mouse:    s.mouse,
			Recorder: s.recorder,
			GIFPath:  gifOut,
			FPS:      run.FPS,
			Theme:    theme,
		})
		return m, m.Init(), nil
	}

	var model tea.Model
	if preset == "" && !cmd.Flags().Changed("source") {
		model = viz.NewLauncher(config.ListPresets(), tracking.Names(), build)
	} else {
		// the preset, if any, is already applied to cfg
		m, _, err := build("", liveSource(cmd, cfg))
		if err != nil {
			return err
		}
		model = m
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := liveSource(cmd, cfg)
	s, err := newInteractive(ctx, cfg, src)
	if err != nil {
		return err
	}

	return gui.Run(s.session.Engine, gui.Options{
		Title:       fmt.Sprintf("mosaic (%s)", src),
		Mouse:       s.mouse,
		ShowPointer: showPointer,
		Recorder:    s.recorder,
		GIFPath:     gifOut,
		TPS:         int(cfg.FPS),
	})
}
