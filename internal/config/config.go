package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/san-kum/mosaic/internal/tracking"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 800.0
	DefaultHeight  = 600.0
	DefaultFrames  = 600
	DefaultFPS     = 30.0
	DefaultMaxDim  = 1024
	DefaultDataDir = "runs"
	DefaultSampler = "integral"
)

type Config struct {
	Canvas      CanvasConfig     `yaml:"canvas"`
	Images      []string         `yaml:"images"`
	MaxImageDim int              `yaml:"max_image_dim"`
	Engine      EngineConfig     `yaml:"engine"`
	Tracking    tracking.Options `yaml:"tracking"`
	Frames      int              `yaml:"frames"`
	FPS         float64          `yaml:"fps"`
	Log         LogConfig        `yaml:"log"`
	MetricsAddr string           `yaml:"metrics_addr"`
	DataDir     string           `yaml:"data_dir"`
}

type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type EngineConfig struct {
	MinTileSize    float64 `yaml:"min_tile_size"`
	ResetThreshold int     `yaml:"reset_threshold"`
	Sampler        string  `yaml:"sampler"`
	CacheSize      int     `yaml:"cache_size"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Indent bool   `yaml:"indent"`
	File   string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Canvas:      CanvasConfig{Width: DefaultWidth, Height: DefaultHeight},
		Images:      []string{"gradient:640x480", "checker:640x480"},
		MaxImageDim: DefaultMaxDim,
		Engine: EngineConfig{
			MinTileSize:    mosaic.DefaultMinTileSize,
			ResetThreshold: mosaic.DefaultResetThreshold,
			Sampler:        DefaultSampler,
			CacheSize:      mosaic.DefaultCacheSize,
		},
		Tracking: tracking.DefaultOptions(),
		Frames:   DefaultFrames,
		FPS:      DefaultFPS,
		Log:      LogConfig{Level: "info"},
		DataDir:  DefaultDataDir,
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading config failed").
			WithTag("path", path).
			Wrap(err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("parsing config failed").
			WithTag("path", path).
			Wrap(err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", mosaic.ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	}
	if len(c.Images) == 0 {
		return mosaic.ErrNoImages
	}
	if c.Engine.MinTileSize <= 0 {
		return fmt.Errorf("%w: min tile size must be positive, got %g", mosaic.ErrInvalidConfig, c.Engine.MinTileSize)
	}
	if c.Engine.ResetThreshold < 2 {
		return fmt.Errorf("%w: reset threshold must be at least 2, got %d", mosaic.ErrInvalidConfig, c.Engine.ResetThreshold)
	}
	if !slices.Contains(mosaic.SamplerNames, c.Engine.Sampler) {
		return fmt.Errorf("%w: unknown sampler %q", mosaic.ErrInvalidConfig, c.Engine.Sampler)
	}
	if !tracking.Has(c.Tracking.Source) {
		return fmt.Errorf("%w: unknown tracking source %q", mosaic.ErrInvalidConfig, c.Tracking.Source)
	}
	if c.FPS <= 0 || c.Tracking.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive", mosaic.ErrInvalidConfig)
	}
	return nil
}

// MosaicConfig converts the file layout to the engine's policy.
func (c *Config) MosaicConfig() mosaic.Config {
	return mosaic.Config{
		Canvas:         mosaic.Size{W: c.Canvas.Width, H: c.Canvas.Height},
		Feed:           mosaic.Size{W: c.Tracking.FeedW, H: c.Tracking.FeedH},
		Mirror:         c.Tracking.Mirror,
		MinTileSize:    c.Engine.MinTileSize,
		ResetThreshold: c.Engine.ResetThreshold,
	}
}

// Apply copies the tuning fields of a preset onto c. Images, tracking source
// and output settings are left alone.
func (c *Config) Apply(p *Config) {
	c.Canvas = p.Canvas
	c.Engine = p.Engine
	if p.Frames > 0 {
		c.Frames = p.Frames
	}
}
