package mosaic

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// White is returned for sampling regions that cover no source pixel.
var White = RGB{R: 255, G: 255, B: 255}

func (c RGB) RGBA() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

func (c RGB) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Image is the read-only pixel buffer the samplers work on.
type Image interface {
	Width() int
	Height() int
	RGBAt(x, y int) RGB
}

// Buffer is a packed RGB image. It is the concrete Image produced by the
// loaders; the packed layout keeps the sampling scan cache friendly.
type Buffer struct {
	w, h int
	pix  []uint8
	name string
}

// NewBuffer allocates a w x h buffer filled with black.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{w: w, h: h, pix: make([]uint8, w*h*3)}
}

// FromImage converts any image.Image into a packed buffer. Alpha is ignored:
// every decoded type yields the straight, non-premultiplied color.
func FromImage(name string, img image.Image) *Buffer {
	b := img.Bounds()
	buf := NewBuffer(b.Dx(), b.Dy())
	buf.name = name
	if rgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < buf.h; y++ {
			off := rgba.PixOffset(b.Min.X, b.Min.Y+y)
			row := rgba.Pix[off : off+buf.w*4]
			for x := 0; x < buf.w; x++ {
				i := (y*buf.w + x) * 3
				buf.pix[i] = row[x*4]
				buf.pix[i+1] = row[x*4+1]
				buf.pix[i+2] = row[x*4+2]
			}
		}
		return buf
	}
	for y := 0; y < buf.h; y++ {
		for x := 0; x < buf.w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			buf.Set(x, y, RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return buf
}

func (b *Buffer) Width() int   { return b.w }
func (b *Buffer) Height() int  { return b.h }
func (b *Buffer) Name() string { return b.name }

func (b *Buffer) SetName(name string) { b.name = name }

func (b *Buffer) RGBAt(x, y int) RGB {
	i := (y*b.w + x) * 3
	return RGB{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2]}
}

func (b *Buffer) Set(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := (y*b.w + x) * 3
	b.pix[i], b.pix[i+1], b.pix[i+2] = c.R, c.G, c.B
}

// Fill paints the whole buffer with c.
func (b *Buffer) Fill(c RGB) {
	for i := 0; i < len(b.pix); i += 3 {
		b.pix[i], b.pix[i+1], b.pix[i+2] = c.R, c.G, c.B
	}
}
