package mosaic

import "sync/atomic"

// Pointer holds the latest tracking result in normalized [0,1] coordinates.
// A producer goroutine overwrites it whenever its inference cycle completes;
// the frame loop reads it once per frame. Nothing is queued: an update that
// lands between two frames replaces the previous one.
type Pointer struct {
	latest atomic.Pointer[Point]
	seq    atomic.Uint64
}

func NewPointer() *Pointer { return &Pointer{} }

// Set publishes a detection.
func (p *Pointer) Set(x, y float64) {
	p.latest.Store(&Point{X: x, Y: y})
	p.seq.Add(1)
}

// Clear publishes an explicit "no detection".
func (p *Pointer) Clear() {
	p.latest.Store(nil)
	p.seq.Add(1)
}

// Load returns the latest detection, if any.
func (p *Pointer) Load() (Point, bool) {
	v := p.latest.Load()
	if v == nil {
		return Point{}, false
	}
	return *v, true
}

// Updates counts Set and Clear calls since creation.
func (p *Pointer) Updates() uint64 { return p.seq.Load() }

// Mapper converts normalized tracking coordinates into canvas coordinates.
// The feed is scaled to cover the canvas while keeping its aspect ratio and
// is centered, so the part of the feed hanging over the canvas edges maps
// outside the canvas.
type Mapper struct {
	Canvas Size
	Feed   Size
	Mirror bool
}

// Scaled returns the feed extent after cover scaling.
func (m Mapper) Scaled() Size {
	if !m.Canvas.Valid() {
		return Size{}
	}
	feedAspect := m.Feed.Aspect()
	if feedAspect == 0 {
		return m.Canvas
	}
	if feedAspect > m.Canvas.Aspect() {
		return Size{W: m.Canvas.H * feedAspect, H: m.Canvas.H}
	}
	return Size{W: m.Canvas.W, H: m.Canvas.W / feedAspect}
}

// ToCanvas maps a normalized point onto the canvas.
func (m Mapper) ToCanvas(n Point) Point {
	scaled := m.Scaled()
	x := n.X
	if m.Mirror {
		x = 1 - x
	}
	offX := (m.Canvas.W - scaled.W) / 2
	offY := (m.Canvas.H - scaled.H) / 2
	return Point{X: offX + x*scaled.W, Y: offY + n.Y*scaled.H}
}

// ToNormalized is the inverse of ToCanvas.
func (m Mapper) ToNormalized(c Point) Point {
	scaled := m.Scaled()
	if !scaled.Valid() {
		return Point{}
	}
	offX := (m.Canvas.W - scaled.W) / 2
	offY := (m.Canvas.H - scaled.H) / 2
	x := (c.X - offX) / scaled.W
	if m.Mirror {
		x = 1 - x
	}
	return Point{X: x, Y: (c.Y - offY) / scaled.H}
}
