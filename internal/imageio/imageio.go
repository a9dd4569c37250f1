// Package imageio turns image specs into the buffers the mosaic samples.
//
// A spec is either a file path or one of:
//
//	screen                 a capture of the primary display
//	gradient:WxH           red across, green down
//	checker:WxH            black and white squares
//	solid:RRGGBB:WxH       one flat color
package imageio

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/disintegration/imaging"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/vova616/screenshot"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadAll loads every spec in order. maxDim > 0 down-fits larger images.
func LoadAll(specs []string, maxDim int) ([]mosaic.Image, error) {
	images := make([]mosaic.Image, 0, len(specs))
	for _, spec := range specs {
		img, err := Load(spec, maxDim)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func Load(spec string, maxDim int) (*mosaic.Buffer, error) {
	kind, args, _ := strings.Cut(spec, ":")

	var (
		img image.Image
		err error
	)
	switch kind {
	case "screen":
		img, err = screenshot.CaptureScreen()
		if err != nil {
			return nil, errors.New("capturing screen failed").Wrap(err)
		}
	case "gradient", "checker", "solid":
		return synthetic(spec, kind, args)
	default:
		img, err = imaging.Open(spec, imaging.AutoOrientation(true))
		if err != nil {
			return nil, errors.New("decoding image failed").
				WithTag("path", spec).
				Wrap(err)
		}
	}

	img = Fit(img, maxDim)
	return mosaic.FromImage(spec, img), nil
}

// Fit shrinks img so neither side exceeds maxDim, keeping the aspect ratio.
// Smaller images and maxDim <= 0 leave img untouched.
func Fit(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

func synthetic(spec, kind, args string) (*mosaic.Buffer, error) {
	var hex string
	if kind == "solid" {
		var ok bool
		hex, args, ok = strings.Cut(args, ":")
		if !ok {
			return nil, errors.New("solid spec needs a color and a size").
				WithTag("spec", spec)
		}
	}

	w, h, err := parseSize(args)
	if err != nil {
		return nil, errors.New("invalid image spec").
			WithTag("spec", spec).
			Wrap(err)
	}

	var b *mosaic.Buffer
	switch kind {
	case "gradient":
		b = Gradient(w, h)
	case "checker":
		b = Checker(w, h, max(1, max(w, h)/8))
	case "solid":
		c, err := ParseHex(hex)
		if err != nil {
			return nil, errors.New("invalid image spec").
				WithTag("spec", spec).
				Wrap(err)
		}
		b = mosaic.NewBuffer(w, h)
		b.Fill(c)
	}
	b.SetName(spec)
	return b, nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, err
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %dx%d must be positive", w, h)
	}
	return w, h, nil
}

// ParseHex reads RRGGBB, with or without a leading '#'.
func ParseHex(s string) (mosaic.RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return mosaic.RGB{}, fmt.Errorf("color %q is not RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return mosaic.RGB{}, err
	}
	return mosaic.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Gradient ramps red left to right and green top to bottom over a fixed
// blue.
func Gradient(w, h int) *mosaic.Buffer {
	b := mosaic.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, mosaic.RGB{
				R: ramp(x, w),
				G: ramp(y, h),
				B: 128,
			})
		}
	}
	return b
}

func Checker(w, h, cell int) *mosaic.Buffer {
	b := mosaic.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				b.Set(x, y, mosaic.RGB{})
			} else {
				b.Set(x, y, mosaic.White)
			}
		}
	}
	return b
}

func ramp(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(i * 255 / (n - 1))
}
