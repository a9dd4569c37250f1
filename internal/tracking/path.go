// Package tracking produces normalized pointer positions for the mosaic
// engine. A Path is a deterministic stand-in for a face or hand tracker: it
// answers where the pointer is on a given frame, or that nothing was detected.
package tracking

import (
	"math"
	"math/rand"

	"github.com/san-kum/mosaic/internal/mosaic"
)

// Path yields the normalized feed position for a frame. ok is false when
// nothing was detected on that frame.
type Path interface {
	Position(frame int) (pt mosaic.Point, ok bool)
}

// Center never detects anything, so the engine falls back to the canvas
// center on every frame.
type Center struct{}

func (Center) Position(int) (mosaic.Point, bool) { return mosaic.Point{}, false }

// Fixed holds the pointer at one normalized position.
type Fixed struct {
	X, Y float64
}

func (f Fixed) Position(int) (mosaic.Point, bool) {
	return mosaic.Point{X: clampUnit(f.X), Y: clampUnit(f.Y)}, true
}

// Circle orbits the feed center once every Period frames.
type Circle struct {
	Period int
	Radius float64
}

func (c Circle) Position(frame int) (mosaic.Point, bool) {
	a := phase(frame, c.Period)
	return mosaic.Point{
		X: clampUnit(0.5 + c.Radius*math.Cos(a)),
		Y: clampUnit(0.5 + c.Radius*math.Sin(a)),
	}, true
}

// Lissajous traces a 3:2 figure that covers most of the feed.
type Lissajous struct {
	Period int
}

func (l Lissajous) Position(frame int) (mosaic.Point, bool) {
	a := phase(frame, l.Period)
	return mosaic.Point{
		X: 0.5 + 0.45*math.Sin(3*a+math.Pi/2),
		Y: 0.5 + 0.45*math.Sin(2*a),
	}, true
}

// Sweep visits the cell centers of a Cols x Rows grid in raster order, one
// cell per frame.
type Sweep struct {
	Cols, Rows int
}

func (s Sweep) Position(frame int) (mosaic.Point, bool) {
	cols, rows := max(s.Cols, 1), max(s.Rows, 1)
	i := frame % (cols * rows)
	if i < 0 {
		i += cols * rows
	}
	return mosaic.Point{
		X: (float64(i%cols) + 0.5) / float64(cols),
		Y: (float64(i/cols) + 0.5) / float64(rows),
	}, true
}

// Walk is a seeded random walk. Only the current position is kept; asking
// for an earlier frame replays the walk from the seed, so a frame always maps
// to the same point.
type Walk struct {
	Step float64

	seed  int64
	rng   *rand.Rand
	frame int
	last  mosaic.Point
}

func NewWalk(seed int64, step float64) *Walk {
	w := &Walk{Step: step, seed: seed}
	w.restart()
	return w
}

func (w *Walk) restart() {
	w.rng = rand.New(rand.NewSource(w.seed))
	w.frame = 0
	w.last = mosaic.Point{X: 0.5, Y: 0.5}
}

func (w *Walk) Position(frame int) (mosaic.Point, bool) {
	if frame < 0 {
		frame = 0
	}
	if frame < w.frame {
		w.restart()
	}
	for w.frame < frame {
		w.last = mosaic.Point{
			X: reflectUnit(w.last.X + (w.rng.Float64()*2-1)*w.Step),
			Y: reflectUnit(w.last.Y + (w.rng.Float64()*2-1)*w.Step),
		}
		w.frame++
	}
	return w.last, true
}

func phase(frame, period int) float64 {
	if period <= 0 {
		period = 1
	}
	return 2 * math.Pi * float64(frame%period) / float64(period)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// reflectUnit folds v back into [0, 1] by mirroring at the edges.
func reflectUnit(v float64) float64 {
	for v < 0 || v > 1 {
		if v < 0 {
			v = -v
		}
		if v > 1 {
			v = 2 - v
		}
	}
	return v
}
