package metrics

import "github.com/san-kum/mosaic/internal/mosaic"

// DetectionRate is the fraction of frames with a tracked pointer.
type DetectionRate struct {
	name     string
	detected int
	samples  int
}

func NewDetectionRate() *DetectionRate {
	return &DetectionRate{name: "detection_rate"}
}

func (d *DetectionRate) Name() string { return d.name }

func (d *DetectionRate) Observe(f mosaic.Frame) {
	if f.Detected {
		d.detected++
	}
	d.samples++
}

func (d *DetectionRate) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.detected) / float64(d.samples)
}

func (d *DetectionRate) Reset() {
	d.detected = 0
	d.samples = 0
}

// SplitRate is the mean number of splits per frame.
type SplitRate struct {
	name    string
	splits  int
	samples int
}

func NewSplitRate() *SplitRate {
	return &SplitRate{name: "split_rate"}
}

func (s *SplitRate) Name() string { return s.name }

func (s *SplitRate) Observe(f mosaic.Frame) {
	s.splits += f.Splits
	s.samples++
}

func (s *SplitRate) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.splits) / float64(s.samples)
}

func (s *SplitRate) Reset() {
	s.splits = 0
	s.samples = 0
}

// TileCount tracks the largest partition seen.
type TileCount struct {
	name string
	peak int
}

func NewTileCount() *TileCount {
	return &TileCount{name: "peak_tiles"}
}

func (t *TileCount) Name() string { return t.name }

func (t *TileCount) Observe(f mosaic.Frame) {
	t.peak = max(t.peak, len(f.Tiles))
}

func (t *TileCount) Value() float64 { return float64(t.peak) }

func (t *TileCount) Reset() { t.peak = 0 }
