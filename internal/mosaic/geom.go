package mosaic

import "fmt"

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Size is a canvas or feed extent.
type Size struct {
	W, H float64
}

func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

func (s Size) Center() Point { return Point{X: s.W / 2, Y: s.H / 2} }

func (s Size) Area() float64 { return s.W * s.H }

// Aspect returns W/H, or 0 for an invalid size.
func (s Size) Aspect() float64 {
	if !s.Valid() {
		return 0
	}
	return s.W / s.H
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Area() float64 { return r.W * r.H }

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Contains reports whether (px, py) lies in [X, X+W) x [Y, Y+H). The
// half-open bounds guarantee that a boundary point between two adjacent
// rectangles belongs to exactly one of them.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.X+r.W &&
		py >= r.Y && py < r.Y+r.H
}

// Overlaps reports whether the interiors of r and o intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() &&
		r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Split halves r along its longer side. Wider rectangles are cut into
// left/right halves; everything else, squares included, into top/bottom.
func (r Rect) Split() (Rect, Rect) {
	if r.W > r.H {
		half := r.W / 2
		return Rect{X: r.X, Y: r.Y, W: half, H: r.H},
			Rect{X: r.X + half, Y: r.Y, W: half, H: r.H}
	}
	half := r.H / 2
	return Rect{X: r.X, Y: r.Y, W: r.W, H: half},
		Rect{X: r.X, Y: r.Y + half, W: r.W, H: half}
}

func (r Rect) String() string {
	return fmt.Sprintf("%gx%g@(%g,%g)", r.W, r.H, r.X, r.Y)
}
