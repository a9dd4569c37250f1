package mosaic

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImage_IgnoresAlpha(t *testing.T) {
	translucent := color.NRGBA{R: 200, G: 100, B: 40, A: 128}
	want := RGB{R: 200, G: 100, B: 40}
	bounds := image.Rect(0, 0, 3, 2)

	nrgba := image.NewNRGBA(bounds)
	nrgba64 := image.NewNRGBA64(bounds)
	paletted := image.NewPaletted(bounds, color.Palette{color.Black, translucent})
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			nrgba.SetNRGBA(x, y, translucent)
			nrgba64.SetNRGBA64(x, y, color.NRGBA64{R: 200 * 0x101, G: 100 * 0x101, B: 40 * 0x101, A: 128 * 0x101})
			paletted.SetColorIndex(x, y, 1)
		}
	}

	tests := []struct {
		name string
		img  image.Image
	}{
		{"nrgba", nrgba},
		{"nrgba64", nrgba64},
		{"paletted", paletted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := FromImage(tt.name, tt.img)
			if buf.Width() != 3 || buf.Height() != 2 {
				t.Fatalf("size = %dx%d, want 3x2", buf.Width(), buf.Height())
			}
			if got := buf.RGBAt(2, 1); got != want {
				t.Errorf("RGBAt(2, 1) = %v, want %v", got, want)
			}
		})
	}
}

func TestFromImage_OpaqueRGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 6))
	img.Set(6, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	buf := FromImage("rgba", img)
	if got := buf.RGBAt(1, 0); got != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("RGBAt(1, 0) = %v, want {10 20 30}", got)
	}
	if got := buf.RGBAt(0, 0); got != (RGB{}) {
		t.Errorf("RGBAt(0, 0) = %v, want black", got)
	}
}
