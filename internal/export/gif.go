package export

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/san-kum/mosaic/internal/mosaic"
)

// Recorder captures engine frames into an animated GIF. It is an engine
// observer; Start and Stop toggle capture.
type Recorder struct {
	Scale     float64
	Every     int
	MaxFrames int
	Delay     int

	mu        sync.Mutex
	recording bool
	frames    []*image.Paletted
}

func NewRecorder(scale float64) *Recorder {
	return &Recorder{Scale: scale, Every: 2, MaxFrames: 600, Delay: 4}
}

func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = true
	r.frames = make([]*image.Paletted, 0)
}

// Stop ends capture and returns the number of frames captured.
func (r *Recorder) Stop() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	return len(r.frames)
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *Recorder) OnFrame(f mosaic.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording || len(r.frames) >= r.MaxFrames {
		return
	}
	if r.Every > 1 && f.Number%r.Every != 0 {
		return
	}

	src := Rasterize(f.Canvas, f.Tiles, RasterOptions{Scale: r.Scale})
	dst := image.NewPaletted(src.Bounds(), palette.WebSafe)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	r.frames = append(r.frames, dst)
}

// Save writes the captured frames. It is a no-op with nothing captured.
func (r *Recorder) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating gif failed").
			WithTag("path", path).
			Wrap(err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, &anim); err != nil {
		return errors.New("encoding gif failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}
