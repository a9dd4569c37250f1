package metrics

import (
	"math"

	"github.com/san-kum/mosaic/internal/mosaic"
)

// Coverage is the fraction of frames whose tiles cover the canvas area
// within tolerance.
type Coverage struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewCoverage(tolerance float64) *Coverage {
	return &Coverage{
		name:      "coverage",
		tolerance: tolerance,
	}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(f mosaic.Frame) {
	c.samples++
	var area float64
	for _, t := range f.Tiles {
		area += t.Area()
	}
	want := f.Canvas.Area()
	if want > 0 && math.Abs(area-want)/want > c.tolerance {
		c.violations++
	}
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Coverage) Reset() {
	c.violations = 0
	c.samples = 0
}
