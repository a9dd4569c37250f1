package mosaic

// DefaultMinTileSize is the edge length below which a tile is frozen.
const DefaultMinTileSize = 4.0

// Tile is a rectangle of the canvas painted with one color. The color is
// sampled once when the tile is created and never changes afterwards.
type Tile struct {
	Rect
	Color RGB
}

// ColorFunc returns the color for a newly created tile's rectangle.
type ColorFunc func(Rect) RGB

// NewTile creates a tile and samples its color.
func NewTile(r Rect, color ColorFunc) Tile {
	return Tile{Rect: r, Color: color(r)}
}

// IsTooSmall reports whether either side is below minSize. Such tiles are never
// subdivided again.
func (t Tile) IsTooSmall(minSize float64) bool {
	return t.W < minSize || t.H < minSize
}

// Subdivide splits t into two halves along its longer side (top/bottom for
// squares). Each child samples its own color; nothing is inherited from t.
func (t Tile) Subdivide(color ColorFunc) (Tile, Tile) {
	a, b := t.Rect.Split()
	return NewTile(a, color), NewTile(b, color)
}
