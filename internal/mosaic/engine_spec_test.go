package mosaic_test

import (
	"github.com/san-kum/mosaic/internal/mosaic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func solid(c mosaic.RGB) *mosaic.Buffer {
	b := mosaic.NewBuffer(32, 24)
	b.Fill(c)
	return b
}

var _ = Describe("Engine", func() {
	var (
		eng *mosaic.Engine
		ptr *mosaic.Pointer
		cfg mosaic.Config
	)

	red := mosaic.RGB{R: 200}
	green := mosaic.RGB{G: 200}
	blue := mosaic.RGB{B: 200}

	BeforeEach(func() {
		cfg = mosaic.DefaultConfig()
		cfg.Feed = mosaic.Size{}
		cfg.Mirror = false
	})

	JustBeforeEach(func() {
		src, err := mosaic.NewImageSource(solid(red), solid(green), solid(blue))
		Expect(err).NotTo(HaveOccurred())
		ptr = mosaic.NewPointer()
		eng, err = mosaic.New(cfg, src, ptr, mosaic.ScanSampler{})
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts with one full-canvas tile of the first image", func() {
		Expect(eng.Tiles()).To(HaveLen(1))
		Expect(eng.Tiles()[0].Rect).To(Equal(mosaic.Rect{W: 800, H: 600}))
		Expect(eng.Tiles()[0].Color).To(Equal(red))
	})

	Context("when the tracker reports nothing", func() {
		It("subdivides under the canvas center", func() {
			f := eng.Step()
			Expect(f.Detected).To(BeFalse())
			Expect(f.Pointer).To(Equal(mosaic.Point{X: 400, Y: 300}))
			Expect(f.Tiles).To(HaveLen(2))
		})
	})

	Context("when the pointer stays in one place", func() {
		JustBeforeEach(func() {
			ptr.Set(0.5, 0.5)
		})

		It("adds one tile per frame until the tile under it is minimal", func() {
			for frame := 1; frame <= 15; frame++ {
				Expect(eng.Step().Tiles).To(HaveLen(frame + 1))
			}
			for frame := 0; frame < 50; frame++ {
				Expect(eng.Step().Splits).To(BeZero())
			}
			Expect(eng.TileCount()).To(Equal(16))
		})
	})

	Context("with a low reset threshold", func() {
		BeforeEach(func() {
			cfg.ResetThreshold = 5
		})

		It("restarts on the next image once the threshold is reached", func() {
			var last mosaic.Frame
			for i := 0; i < 4; i++ {
				last = eng.Step()
			}
			Expect(last.Reset).To(BeTrue())
			Expect(last.Tiles).To(HaveLen(1))
			Expect(last.ImageIndex).To(Equal(1))
			Expect(last.Tiles[0].Color).To(Equal(green))
		})

		It("wraps back to the first image", func() {
			resets := 0
			for resets < 3 {
				if eng.Step().Reset {
					resets++
				}
			}
			Expect(eng.ImageIndex()).To(Equal(0))
			Expect(eng.Tiles()[0].Color).To(Equal(red))
		})
	})

	Context("when the canvas is resized", func() {
		It("rebuilds the partition for the new size", func() {
			ptr.Set(0.1, 0.9)
			for i := 0; i < 8; i++ {
				eng.Step()
			}
			Expect(eng.Resize(mosaic.Size{W: 320, H: 240})).To(Succeed())
			Expect(eng.Tiles()).To(ConsistOf(HaveField("Rect", mosaic.Rect{W: 320, H: 240})))
		})

		It("rejects an empty canvas", func() {
			Expect(eng.Resize(mosaic.Size{W: 320})).To(MatchError(mosaic.ErrInvalidConfig))
		})
	})
})

var _ = Describe("ImageSource", func() {
	It("refuses to start without images", func() {
		_, err := mosaic.NewImageSource()
		Expect(err).To(MatchError(mosaic.ErrNoImages))
	})
})
