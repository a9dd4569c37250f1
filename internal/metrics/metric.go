// Package metrics summarises and exports what the engine does per frame.
package metrics

import "github.com/san-kum/mosaic/internal/mosaic"

// Metric accumulates one number over a run.
type Metric interface {
	Name() string
	Observe(f mosaic.Frame)
	Value() float64
	Reset()
}

// Collector feeds every frame to a set of metrics. It is an engine observer.
type Collector struct {
	metrics []Metric
}

func NewCollector(metrics ...Metric) *Collector {
	return &Collector{metrics: metrics}
}

// Default returns the metrics recorded with every stored run.
func Default() *Collector {
	return NewCollector(
		NewCoverage(1e-6),
		NewDetectionRate(),
		NewSplitRate(),
		NewTileCount(),
	)
}

func (c *Collector) OnFrame(f mosaic.Frame) {
	for _, m := range c.metrics {
		m.Observe(f)
	}
}

func (c *Collector) Values() map[string]float64 {
	values := make(map[string]float64, len(c.metrics))
	for _, m := range c.metrics {
		values[m.Name()] = m.Value()
	}
	return values
}

func (c *Collector) Reset() {
	for _, m := range c.metrics {
		m.Reset()
	}
}
