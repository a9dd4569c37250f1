package automation

import (
	"context"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/san-kum/mosaic/internal/config"
	"github.com/san-kum/mosaic/internal/imageio"
	"github.com/san-kum/mosaic/internal/metrics"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/san-kum/mosaic/internal/storage"
	"github.com/san-kum/mosaic/internal/tracking"
)

// Session is an engine wired to its images, tracking path and metrics, ready
// for a headless run.
type Session struct {
	Config  *config.Config
	Engine  *mosaic.Engine
	Path    tracking.Path
	Metrics *metrics.Collector
}

// NewSession validates cfg and builds every collaborator before the engine
// is constructed.
func NewSession(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	images, err := imageio.LoadAll(cfg.Images, cfg.MaxImageDim)
	if err != nil {
		return nil, err
	}
	source, err := mosaic.NewImageSource(images...)
	if err != nil {
		return nil, err
	}
	sampler, err := mosaic.NewSampler(cfg.Engine.Sampler, cfg.Engine.CacheSize)
	if err != nil {
		return nil, err
	}
	path, err := tracking.New(cfg.Tracking)
	if err != nil {
		return nil, err
	}

	engine, err := mosaic.New(cfg.MosaicConfig(), source, mosaic.NewPointer(), sampler)
	if err != nil {
		return nil, err
	}
	collector := metrics.Default()
	engine.AddObserver(collector)

	return &Session{
		Config:  cfg,
		Engine:  engine,
		Path:    path,
		Metrics: collector,
	}, nil
}

// Run steps the engine frames times, publishing the tracking path into the
// pointer slot before every frame.
func (s *Session) Run(ctx context.Context, frames int) (*mosaic.Result, error) {
	pointer := s.Engine.Pointer()
	return s.Engine.Run(ctx, frames, func(frame int) {
		tracking.Publish(pointer, s.Path, frame)
	})
}

// Metadata describes the session settings for storage. Counters are filled
// in by the store.
func (s *Session) Metadata(elapsed time.Duration) storage.RunMetadata {
	return storage.RunMetadata{
		Timestamp:      time.Now(),
		Images:         s.Config.Images,
		Source:         s.Config.Tracking.Source,
		Sampler:        s.Config.Engine.Sampler,
		Seed:           s.Config.Tracking.Seed,
		MinTileSize:    s.Config.Engine.MinTileSize,
		ResetThreshold: s.Config.Engine.ResetThreshold,
		ElapsedSeconds: elapsed.Seconds(),
		Metrics:        s.Metrics.Values(),
	}
}

// RunAndStore runs the session and, when store is set, saves the result.
// The run id is empty without a store.
func (s *Session) RunAndStore(ctx context.Context, frames int, store *storage.Store, scenario string) (string, *mosaic.Result, error) {
	start := time.Now()
	result, err := s.Run(ctx, frames)
	if err != nil {
		return "", result, err
	}
	elapsed := time.Since(start)

	logs.WithTag("frames", len(result.Frames)).
		WithTag("splits", result.Splits).
		WithTag("resets", result.Resets).
		WithTag("elapsed", elapsed.String()).
		Info("run complete")

	if store == nil {
		return "", result, nil
	}
	meta := s.Metadata(elapsed)
	meta.Scenario = scenario
	id, err := store.Save(meta, result)
	if err != nil {
		return "", result, err
	}
	return id, result, nil
}
