package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/san-kum/mosaic/internal/mosaic"
)

const (
	sourceLabel = "source"
)

var (
	mosaicFrameCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mosaic_frames_total",
		Help: "The total number of engine frames.",
	}, []string{sourceLabel})

	mosaicSplitCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mosaic_splits_total",
		Help: "The total number of tile subdivisions.",
	}, []string{sourceLabel})

	mosaicResetCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mosaic_resets_total",
		Help: "The total number of completed mosaics.",
	}, []string{sourceLabel})

	mosaicDetectionCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mosaic_detections_total",
		Help: "The total number of frames with a tracked pointer.",
	}, []string{sourceLabel})

	mosaicTileCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mosaic_tiles",
		Help: "The number of tiles in the current partition.",
	}, []string{sourceLabel})

	mosaicImageIndex = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mosaic_image_index",
		Help: "The index of the image being sampled.",
	}, []string{sourceLabel})
)

// Prometheus exports engine frames as process metrics labeled by tracking
// source.
type Prometheus struct {
	source string
}

func NewPrometheus(source string) *Prometheus {
	return &Prometheus{source: source}
}

func (p *Prometheus) OnFrame(f mosaic.Frame) {
	instrumentCountFrame(p.source)
	instrumentCountSplits(p.source, f.Splits)
	if f.Reset {
		instrumentCountReset(p.source)
	}
	if f.Detected {
		instrumentCountDetection(p.source)
	}
	instrumentSetTiles(p.source, len(f.Tiles))
	instrumentSetImageIndex(p.source, f.ImageIndex)
}

func instrumentCountFrame(source string) {
	mosaicFrameCount.
		With(prometheus.Labels{sourceLabel: source}).
		Inc()
}

func instrumentCountSplits(source string, splits int) {
	mosaicSplitCount.
		With(prometheus.Labels{sourceLabel: source}).
		Add(float64(splits))
}

func instrumentCountReset(source string) {
	mosaicResetCount.
		With(prometheus.Labels{sourceLabel: source}).
		Inc()
}

func instrumentCountDetection(source string) {
	mosaicDetectionCount.
		With(prometheus.Labels{sourceLabel: source}).
		Inc()
}

func instrumentSetTiles(source string, tiles int) {
	mosaicTileCount.
		With(prometheus.Labels{sourceLabel: source}).
		Set(float64(tiles))
}

func instrumentSetImageIndex(source string, index int) {
	mosaicImageIndex.
		With(prometheus.Labels{sourceLabel: source}).
		Set(float64(index))
}
