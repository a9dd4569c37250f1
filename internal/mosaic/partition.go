package mosaic

// Partition is the set of tiles covering the canvas [0,W) x [0,H) exactly
// once. Tile order carries no meaning.
type Partition struct {
	canvas  Size
	minSize float64
	tiles   []Tile
	pending []int
}

// NewPartition returns a partition holding a single full-canvas tile.
func NewPartition(canvas Size, minSize float64, color ColorFunc) *Partition {
	p := &Partition{canvas: canvas, minSize: minSize}
	p.Reset(color)
	return p
}

// Reset replaces every tile with one tile spanning the canvas.
func (p *Partition) Reset(color ColorFunc) {
	full := NewTile(Rect{W: p.canvas.W, H: p.canvas.H}, color)
	p.tiles = append(p.tiles[:0], full)
	p.pending = p.pending[:0]
}

// Resize changes the canvas and resets the partition.
func (p *Partition) Resize(canvas Size, color ColorFunc) {
	p.canvas = canvas
	p.Reset(color)
}

// Advance subdivides every tile that contains pt and is not too small, and
// returns the number of tiles split. Candidates are collected before any tile
// is replaced, so children created in this call are never examined again
// until the next call.
func (p *Partition) Advance(pt Point, color ColorFunc) int {
	p.pending = p.pending[:0]
	for i, t := range p.tiles {
		if t.Contains(pt.X, pt.Y) && !t.IsTooSmall(p.minSize) {
			p.pending = append(p.pending, i)
		}
	}
	for _, i := range p.pending {
		a, b := p.tiles[i].Subdivide(color)
		p.tiles[i] = a
		p.tiles = append(p.tiles, b)
	}
	return len(p.pending)
}

// Hit returns the index of the tile containing pt.
func (p *Partition) Hit(pt Point) (int, bool) {
	for i, t := range p.tiles {
		if t.Contains(pt.X, pt.Y) {
			return i, true
		}
	}
	return -1, false
}

// Tiles returns the current tiles. The slice is owned by the partition and is
// only valid until the next Advance, Reset or Resize.
func (p *Partition) Tiles() []Tile { return p.tiles }

func (p *Partition) Len() int { return len(p.tiles) }

func (p *Partition) Canvas() Size { return p.canvas }

func (p *Partition) MinSize() float64 { return p.minSize }

// Area returns the summed area of all tiles; it equals the canvas area.
func (p *Partition) Area() float64 {
	var a float64
	for _, t := range p.tiles {
		a += t.Area()
	}
	return a
}

// Frozen returns how many tiles can no longer be subdivided.
func (p *Partition) Frozen() int {
	n := 0
	for _, t := range p.tiles {
		if t.IsTooSmall(p.minSize) {
			n++
		}
	}
	return n
}

// Snapshot copies the current tiles.
func (p *Partition) Snapshot() []Tile {
	out := make([]Tile, len(p.tiles))
	copy(out, p.tiles)
	return out
}
