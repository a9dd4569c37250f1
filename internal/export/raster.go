package export

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/disintegration/imaging"
	"github.com/san-kum/mosaic/internal/mosaic"
)

// PointerColor is the marker drawn at the pointer position.
var PointerColor = color.RGBA{R: 255, A: 255}

type RasterOptions struct {
	// Scale multiplies canvas units into pixels. Zero means 1.
	Scale float64

	// Pointer, when set, is marked with a small dot.
	Pointer *mosaic.Point

	// Outline draws one-pixel tile borders in this color.
	Outline color.Color
}

// Rasterize paints tiles into a new image. Tile edges are rounded to the
// nearest pixel so adjacent tiles share borders without gaps.
func Rasterize(canvas mosaic.Size, tiles []mosaic.Tile, opts RasterOptions) *image.RGBA {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(canvas.W * scale))
	h := int(math.Round(canvas.H * scale))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(mosaic.White.RGBA()), image.Point{}, draw.Src)

	for _, t := range tiles {
		r := pixelRect(t.Rect, scale)
		draw.Draw(img, r, image.NewUniform(t.Color.RGBA()), image.Point{}, draw.Src)
		if opts.Outline != nil && r.Dx() > 2 && r.Dy() > 2 {
			outline(img, r, opts.Outline)
		}
	}

	if opts.Pointer != nil {
		radius := max(2, int(math.Round(5*scale)))
		dot(img, int(math.Round(opts.Pointer.X*scale)), int(math.Round(opts.Pointer.Y*scale)), radius, PointerColor)
	}
	return img
}

// Save encodes img by file extension (png, jpg, gif, bmp, tiff).
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(92)); err != nil {
		return errors.New("saving image failed").
			WithTag("path", path).
			Wrap(err)
	}
	return nil
}

func pixelRect(r mosaic.Rect, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X*scale)),
		int(math.Round(r.Y*scale)),
		int(math.Round(r.MaxX()*scale)),
		int(math.Round(r.MaxY()*scale)),
	)
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func dot(img *image.RGBA, cx, cy, radius int, c color.Color) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				img.Set(cx+x, cy+y, c)
			}
		}
	}
}
