package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mosaic/internal/mosaic"
)

// Half blocks: each cell shows two vertical pixels, the top one as the
// foreground of '▀' and the bottom one as its background.
const halfBlock = "▀"

// Canvas is a color pixel grid of Width x Height cells, 2*Height pixels tall.
type Canvas struct {
	Width, Height int
	pix           [][]mosaic.RGB
	marker        [2]int
	marked        bool
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		pix:    make([][]mosaic.RGB, h*2),
	}
	for i := range c.pix {
		c.pix[i] = make([]mosaic.RGB, w)
	}
	return c
}

// Pixels returns the pixel grid size.
func (c *Canvas) Pixels() (int, int) { return c.Width, c.Height * 2 }

func (c *Canvas) At(x, y int) mosaic.RGB { return c.pix[y][x] }

// Clear fills every pixel with col and drops the marker.
func (c *Canvas) Clear(col mosaic.RGB) {
	for _, row := range c.pix {
		for x := range row {
			row[x] = col
		}
	}
	c.marked = false
}

// Paint rasterizes tiles laid out on a canvas of the given size. A pixel takes
// the color of the tile containing its center, so a partition that covers
// the canvas paints every pixel exactly once.
func (c *Canvas) Paint(canvas mosaic.Size, tiles []mosaic.Tile) {
	pw, ph := c.Pixels()
	sx := canvas.W / float64(pw)
	sy := canvas.H / float64(ph)

	for _, t := range tiles {
		x0, x1 := centerSpan(t.X, t.MaxX(), sx, pw)
		y0, y1 := centerSpan(t.Y, t.MaxY(), sy, ph)
		for y := y0; y < y1; y++ {
			row := c.pix[y]
			for x := x0; x < x1; x++ {
				row[x] = t.Color
			}
		}
	}
	c.marked = false
}

// Mark flags the cell under canvas point pt.
func (c *Canvas) Mark(canvas mosaic.Size, pt mosaic.Point) {
	col := int(pt.X / canvas.W * float64(c.Width))
	row := int(pt.Y / canvas.H * float64(c.Height))
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		c.marked = false
		return
	}
	c.marker = [2]int{col, row}
	c.marked = true
}

// ToCanvas maps a cell back to the canvas point at its center.
func (c *Canvas) ToCanvas(canvas mosaic.Size, col, row int) mosaic.Point {
	return mosaic.Point{
		X: (float64(col) + 0.5) * canvas.W / float64(c.Width),
		Y: (float64(row) + 0.5) * canvas.H / float64(c.Height),
	}
}

func (c *Canvas) String() string {
	return c.Render(lipgloss.Color("#ff0000"))
}

// Render draws the grid, the marker in markerColor.
func (c *Canvas) Render(markerColor lipgloss.Color) string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		top, bottom := c.pix[row*2], c.pix[row*2+1]
		for col := 0; col < c.Width; col++ {
			style := lipgloss.NewStyle().Background(lipgloss.Color(bottom[col].Hex()))
			if c.marked && c.marker == [2]int{col, row} {
				b.WriteString(style.Foreground(markerColor).Render("●"))
				continue
			}
			b.WriteString(style.Foreground(lipgloss.Color(top[col].Hex())).Render(halfBlock))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// centerSpan returns the pixels in [lo, hi) whose centers fall in [a, b).
func centerSpan(a, b, step float64, n int) (int, int) {
	lo := int(math.Ceil(a/step - 0.5))
	hi := int(math.Ceil(b/step - 0.5))
	return max(lo, 0), min(hi, n)
}
