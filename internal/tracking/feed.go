package tracking

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/san-kum/mosaic/internal/mosaic"
)

// Publish writes the path position for frame into the pointer slot, or
// clears it when nothing was detected.
func Publish(p *mosaic.Pointer, path Path, frame int) {
	pt, ok := path.Position(frame)
	if !ok {
		p.Clear()
		return
	}
	p.Set(pt.X, pt.Y)
}

// Feed runs a path on its own goroutine at its own rate, the way a camera
// tracker would. The engine reads whatever was published last.
type Feed struct {
	Path    Path
	Pointer *mosaic.Pointer
	FPS     float64

	frames atomic.Int64
}

// Run publishes until ctx is done.
func (f *Feed) Run(ctx context.Context) error {
	fps := f.FPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / fps))
	defer ticker.Stop()

	logs.WithTag("fps", fps).Debug("tracking feed started")
	defer func() {
		logs.WithTag("frames", f.frames.Load()).Debug("tracking feed stopped")
	}()

	for {
		Publish(f.Pointer, f.Path, int(f.frames.Load()))
		f.frames.Add(1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Frames reports how many positions have been published.
func (f *Feed) Frames() int { return int(f.frames.Load()) }
