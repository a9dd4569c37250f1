package mosaic

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of summed-area tables kept when the caller
// does not choose one.
const DefaultCacheSize = 4

// IntegralSampler answers every query in constant time from a summed-area
// table built on first use of an image. Tables are kept in an LRU keyed by the
// image value, so Image implementations used with it must be comparable
// (pointer types such as *Buffer are).
type IntegralSampler struct {
	cache *lru.Cache[Image, *summedArea]
}

func NewIntegralSampler(cacheSize int) (*IntegralSampler, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[Image, *summedArea](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating integral cache: %w", err)
	}
	return &IntegralSampler{cache: cache}, nil
}

func (s *IntegralSampler) Sample(img Image, canvas Size, r Rect) RGB {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return White
	}
	x1, y1, x2, y2 := pixelBounds(img, canvas, r)
	if x2 <= x1 || y2 <= y1 {
		return White
	}
	t := s.table(img)
	sr, sg, sb := t.sum(x1, y1, x2, y2)
	return mean(sr, sg, sb, uint64((x2-x1)*(y2-y1)))
}

// Cached reports how many tables are currently held.
func (s *IntegralSampler) Cached() int { return s.cache.Len() }

func (s *IntegralSampler) table(img Image) *summedArea {
	if t, ok := s.cache.Get(img); ok {
		return t
	}
	t := newSummedArea(img)
	s.cache.Add(img, t)
	return t
}

// summedArea stores, for every (x, y), the per-channel sum of all pixels in
// [0, x) x [0, y). The table is (w+1) x (h+1) with a zero first row/column.
type summedArea struct {
	stride int
	r, g, b []uint64
}

func newSummedArea(img Image) *summedArea {
	w, h := img.Width(), img.Height()
	stride := w + 1
	n := stride * (h + 1)
	t := &summedArea{
		stride: stride,
		r:      make([]uint64, n),
		g:      make([]uint64, n),
		b:      make([]uint64, n),
	}
	for y := 0; y < h; y++ {
		var rowR, rowG, rowB uint64
		for x := 0; x < w; x++ {
			c := img.RGBAt(x, y)
			rowR += uint64(c.R)
			rowG += uint64(c.G)
			rowB += uint64(c.B)
			i := (y+1)*stride + x + 1
			above := y*stride + x + 1
			t.r[i] = t.r[above] + rowR
			t.g[i] = t.g[above] + rowG
			t.b[i] = t.b[above] + rowB
		}
	}
	return t
}

func (t *summedArea) sum(x1, y1, x2, y2 int) (r, g, b uint64) {
	a := y1*t.stride + x1
	bb := y1*t.stride + x2
	c := y2*t.stride + x1
	d := y2*t.stride + x2
	r = (t.r[d] - t.r[bb]) - (t.r[c] - t.r[a])
	g = (t.g[d] - t.g[bb]) - (t.g[c] - t.g[a])
	b = (t.b[d] - t.b[bb]) - (t.b[c] - t.b[a])
	return r, g, b
}
