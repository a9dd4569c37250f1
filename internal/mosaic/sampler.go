package mosaic

import (
	"fmt"
	"math"
)

// Sampler computes the representative color of a canvas rectangle.
type Sampler interface {
	Sample(img Image, canvas Size, r Rect) RGB
}

// SamplerNames lists the strategies accepted by NewSampler.
var SamplerNames = []string{"scan", "integral"}

// NewSampler returns the named sampling strategy. cacheSize bounds the number
// of summed-area tables kept by the integral sampler and is ignored by scan.
func NewSampler(name string, cacheSize int) (Sampler, error) {
	switch name {
	case "", "scan":
		return ScanSampler{}, nil
	case "integral":
		return NewIntegralSampler(cacheSize)
	default:
		return nil, fmt.Errorf("%w: unknown sampler %q", ErrInvalidConfig, name)
	}
}

// pixelBounds maps a canvas rectangle to the half-open pixel rectangle
// [x1, x2) x [y1, y2). The min corner is clamped to the last valid pixel and
// the max corner to the image extent, so the result never indexes outside the
// image; it may be empty.
func pixelBounds(img Image, canvas Size, r Rect) (x1, y1, x2, y2 int) {
	iw, ih := img.Width(), img.Height()
	x1 = clamp(toPixel(r.X, canvas.W, iw), 0, iw-1)
	y1 = clamp(toPixel(r.Y, canvas.H, ih), 0, ih-1)
	x2 = clamp(toPixel(r.MaxX(), canvas.W, iw), 0, iw)
	y2 = clamp(toPixel(r.MaxY(), canvas.H, ih), 0, ih)
	return x1, y1, x2, y2
}

func toPixel(v, canvasExtent float64, imageExtent int) int {
	if canvasExtent <= 0 {
		return 0
	}
	return int(math.Floor(v / canvasExtent * float64(imageExtent)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(r, g, b uint64, count uint64) RGB {
	if count == 0 {
		return White
	}
	return RGB{R: uint8(r / count), G: uint8(g / count), B: uint8(b / count)}
}

// ScanSampler averages every pixel of the mapped region directly.
type ScanSampler struct{}

func (ScanSampler) Sample(img Image, canvas Size, r Rect) RGB {
	return Sample(img, canvas, r)
}

// Sample returns the arithmetic mean color of the source pixels covered by
// the canvas rectangle r, or White when the mapped region is empty.
func Sample(img Image, canvas Size, r Rect) RGB {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return White
	}
	x1, y1, x2, y2 := pixelBounds(img, canvas, r)
	if x2 <= x1 || y2 <= y1 {
		return White
	}

	var sr, sg, sb, count uint64
	if buf, ok := img.(*Buffer); ok {
		for y := y1; y < y2; y++ {
			row := buf.pix[(y*buf.w+x1)*3 : (y*buf.w+x2)*3]
			for i := 0; i < len(row); i += 3 {
				sr += uint64(row[i])
				sg += uint64(row[i+1])
				sb += uint64(row[i+2])
			}
		}
		count = uint64((x2 - x1) * (y2 - y1))
		return mean(sr, sg, sb, count)
	}

	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			c := img.RGBAt(x, y)
			sr += uint64(c.R)
			sg += uint64(c.G)
			sb += uint64(c.B)
			count++
		}
	}
	return mean(sr, sg, sb, count)
}
