package mosaic

import (
	"context"
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// DefaultResetThreshold is the tile count at which the mosaic restarts on the
// next image.
const DefaultResetThreshold = 3000

// Config holds the engine policy. The thresholds are tuning knobs, not
// correctness requirements.
type Config struct {
	Canvas         Size
	Feed           Size
	Mirror         bool
	MinTileSize    float64
	ResetThreshold int
}

func DefaultConfig() Config {
	return Config{
		Canvas:         Size{W: 800, H: 600},
		Feed:           Size{W: 640, H: 480},
		Mirror:         true,
		MinTileSize:    DefaultMinTileSize,
		ResetThreshold: DefaultResetThreshold,
	}
}

func (c Config) Validate() error {
	if !c.Canvas.Valid() {
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidConfig, c.Canvas.W, c.Canvas.H)
	}
	if c.Feed.W < 0 || c.Feed.H < 0 {
		return fmt.Errorf("%w: feed size must not be negative, got %gx%g", ErrInvalidConfig, c.Feed.W, c.Feed.H)
	}
	if c.MinTileSize <= 0 {
		return fmt.Errorf("%w: min tile size must be positive, got %g", ErrInvalidConfig, c.MinTileSize)
	}
	if c.ResetThreshold < 2 {
		return fmt.Errorf("%w: reset threshold must be at least 2, got %d", ErrInvalidConfig, c.ResetThreshold)
	}
	return nil
}

// Frame is what the engine emits after each step. Tiles aliases the
// partition and is only valid until the next step; observers that keep tiles
// must copy them.
type Frame struct {
	Number     int
	Canvas     Size
	Tiles      []Tile
	Pointer    Point
	Detected   bool
	Splits     int
	Reset      bool
	ImageIndex int
}

// Stat is the tile-free summary of a frame.
type Stat struct {
	Number     int
	Tiles      int
	Splits     int
	Reset      bool
	ImageIndex int
	Pointer    Point
	Detected   bool
}

func (f Frame) Stat() Stat {
	return Stat{
		Number:     f.Number,
		Tiles:      len(f.Tiles),
		Splits:     f.Splits,
		Reset:      f.Reset,
		ImageIndex: f.ImageIndex,
		Pointer:    f.Pointer,
		Detected:   f.Detected,
	}
}

// Observer receives every emitted frame. Renderers, recorders and metrics
// are observers.
type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

// Result summarises a bounded run.
type Result struct {
	Frames []Stat
	Final  []Tile
	Canvas Size
	Splits int
	Resets int
}

// Engine advances the mosaic one frame at a time. It owns the partition and
// the image cursor; the pointer is shared with the tracking producer.
type Engine struct {
	cfg       Config
	source    *ImageSource
	pointer   *Pointer
	sampler   Sampler
	partition *Partition
	observers []Observer
	frame     int
	color     ColorFunc
}

// New validates the configuration and collaborators and resets the
// partition against the first image.
func New(cfg Config, source *ImageSource, pointer *Pointer, sampler Sampler) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, ErrNoImages
	}
	if pointer == nil {
		pointer = NewPointer()
	}
	if sampler == nil {
		sampler = ScanSampler{}
	}

	e := &Engine{
		cfg:       cfg,
		source:    source,
		pointer:   pointer,
		sampler:   sampler,
		observers: make([]Observer, 0),
	}
	e.color = func(r Rect) RGB {
		return e.sampler.Sample(e.source.Current(), e.cfg.Canvas, r)
	}
	e.partition = NewPartition(cfg.Canvas, cfg.MinTileSize, e.color)
	return e, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Config() Config        { return e.cfg }
func (e *Engine) Canvas() Size          { return e.cfg.Canvas }
func (e *Engine) Source() *ImageSource  { return e.source }
func (e *Engine) Pointer() *Pointer     { return e.pointer }
func (e *Engine) Partition() *Partition { return e.partition }
func (e *Engine) FrameNumber() int      { return e.frame }
func (e *Engine) Tiles() []Tile         { return e.partition.Tiles() }
func (e *Engine) Mapper() Mapper        { return Mapper{Canvas: e.cfg.Canvas, Feed: e.cfg.Feed, Mirror: e.cfg.Mirror} }
func (e *Engine) SetMirror(mirror bool) { e.cfg.Mirror = mirror }
func (e *Engine) SetFeed(feed Size)     { e.cfg.Feed = feed }
func (e *Engine) ResetThreshold() int   { return e.cfg.ResetThreshold }
func (e *Engine) MinTileSize() float64  { return e.cfg.MinTileSize }
func (e *Engine) ImageIndex() int       { return e.source.Index() }
func (e *Engine) CurrentImage() Image   { return e.source.Current() }
func (e *Engine) TileCount() int        { return e.partition.Len() }

// PointerPosition returns the canvas position used for the next frame and
// whether it came from a detection. Without one the canvas center is used.
func (e *Engine) PointerPosition() (Point, bool) {
	n, ok := e.pointer.Load()
	if !ok {
		return e.cfg.Canvas.Center(), false
	}
	return e.Mapper().ToCanvas(n), true
}

// Step runs one frame: subdivide under the pointer, restart on the next image
// once the tile count reaches the threshold, then notify observers.
func (e *Engine) Step() Frame {
	e.frame++

	pt, detected := e.PointerPosition()
	splits := e.partition.Advance(pt, e.color)

	reset := false
	if e.partition.Len() >= e.cfg.ResetThreshold {
		tiles := e.partition.Len()
		idx := e.source.Advance()
		e.partition.Reset(e.color)
		reset = true
		logs.WithTag("frame", e.frame).
			WithTag("tiles", tiles).
			WithTag("image_index", idx).
			Info("mosaic complete, advancing image")
	}

	f := Frame{
		Number:     e.frame,
		Canvas:     e.cfg.Canvas,
		Tiles:      e.partition.Tiles(),
		Pointer:    pt,
		Detected:   detected,
		Splits:     splits,
		Reset:      reset,
		ImageIndex: e.source.Index(),
	}
	for _, o := range e.observers {
		o.OnFrame(f)
	}
	return f
}

// Run steps the engine frames times. before, when set, is called ahead of
// every step so a synchronous tracking producer can publish its position.
func (e *Engine) Run(ctx context.Context, frames int, before func(frame int)) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, frames)
	}

	result := &Result{
		Frames: make([]Stat, 0, frames),
		Canvas: e.cfg.Canvas,
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			result.Final = e.partition.Snapshot()
			return result, ctx.Err()
		default:
		}

		if before != nil {
			before(i)
		}
		f := e.Step()
		result.Frames = append(result.Frames, f.Stat())
		result.Splits += f.Splits
		if f.Reset {
			result.Resets++
		}
	}

	result.Final = e.partition.Snapshot()
	return result, nil
}

// Reset restarts the partition on the current image.
func (e *Engine) Reset() {
	e.partition.Reset(e.color)
}

// NextImage advances to the next image and restarts the partition on it.
func (e *Engine) NextImage() int {
	idx := e.source.Advance()
	e.partition.Reset(e.color)
	return idx
}

// Resize changes the canvas. The partition is rebuilt from scratch so the
// coverage invariant holds for the new dimensions.
func (e *Engine) Resize(canvas Size) error {
	if !canvas.Valid() {
		return fmt.Errorf("%w: canvas must be positive, got %gx%g", ErrInvalidConfig, canvas.W, canvas.H)
	}
	e.cfg.Canvas = canvas
	e.partition.Resize(canvas, e.color)
	logs.WithTag("width", canvas.W).
		WithTag("height", canvas.H).
		Debug("canvas resized")
	return nil
}
