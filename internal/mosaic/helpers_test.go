package mosaic

// Helpers shared by the package tests.

func solidImage(w, h int, c RGB) *Buffer {
	b := NewBuffer(w, h)
	b.Fill(c)
	return b
}

// gradientImage encodes the pixel position in the channels so a wrong pixel
// window shows up as a wrong mean.
func gradientImage(w, h int) *Buffer {
	b := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, RGB{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: uint8((x + y) % 256)})
		}
	}
	return b
}

func constColor(c RGB) ColorFunc {
	return func(Rect) RGB { return c }
}

// coverageError reports the first violation of the partition invariant: the
// tile areas must sum to the canvas area, no tile may leave the canvas and no
// two tiles may overlap.
func coverageError(p *Partition) string {
	canvas := p.Canvas()
	if p.Area() != canvas.Area() {
		return "area mismatch"
	}
	tiles := p.Tiles()
	for i, a := range tiles {
		if a.W <= 0 || a.H <= 0 {
			return "degenerate tile " + a.String()
		}
		if a.X < 0 || a.Y < 0 || a.MaxX() > canvas.W || a.MaxY() > canvas.H {
			return "tile outside canvas " + a.String()
		}
		for _, b := range tiles[i+1:] {
			if a.Overlaps(b.Rect) {
				return "overlap " + a.String() + " " + b.String()
			}
		}
	}
	return ""
}
