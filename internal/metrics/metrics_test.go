package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/san-kum/mosaic/internal/mosaic"
	"github.com/stretchr/testify/require"
)

func fullFrame(n int) mosaic.Frame {
	return mosaic.Frame{
		Number: n,
		Canvas: mosaic.Size{W: 100, H: 50},
		Tiles: []mosaic.Tile{
			{Rect: mosaic.Rect{X: 0, Y: 0, W: 50, H: 50}},
			{Rect: mosaic.Rect{X: 50, Y: 0, W: 50, H: 50}},
		},
		Splits: 1,
	}
}

func TestCoverage(t *testing.T) {
	c := NewCoverage(1e-9)
	require.Equal(t, 1.0, c.Value())

	c.Observe(fullFrame(1))
	gap := fullFrame(2)
	gap.Tiles = gap.Tiles[:1]
	c.Observe(gap)
	require.Equal(t, 0.5, c.Value())

	c.Reset()
	require.Equal(t, 1.0, c.Value())
}

func TestDetectionRate(t *testing.T) {
	d := NewDetectionRate()
	require.Zero(t, d.Value())

	f := fullFrame(1)
	d.Observe(f)
	f.Detected = true
	d.Observe(f)
	d.Observe(f)
	d.Observe(f)
	require.Equal(t, 0.75, d.Value())
}

func TestCollector(t *testing.T) {
	c := Default()

	for i := 1; i <= 4; i++ {
		f := fullFrame(i)
		f.Splits = i % 2
		c.OnFrame(f)
	}

	values := c.Values()
	require.Equal(t, 1.0, values["coverage"])
	require.Equal(t, 0.0, values["detection_rate"])
	require.Equal(t, 0.5, values["split_rate"])
	require.Equal(t, 2.0, values["peak_tiles"])

	c.Reset()
	require.Equal(t, 0.0, c.Values()["peak_tiles"])
}

func TestCollectorAsObserver(t *testing.T) {
	img := mosaic.NewBuffer(4, 4)
	src, err := mosaic.NewImageSource(img)
	require.NoError(t, err)

	cfg := mosaic.DefaultConfig()
	cfg.ResetThreshold = 5
	e, err := mosaic.New(cfg, src, nil, nil)
	require.NoError(t, err)

	c := Default()
	e.AddObserver(c)
	_, err = e.Run(context.Background(), 20, nil)
	require.NoError(t, err)
	require.Equal(t, 1.0, c.Values()["coverage"])
}

func TestPrometheus(t *testing.T) {
	p := NewPrometheus("test-observer")
	labels := prometheus.Labels{sourceLabel: "test-observer"}

	f := fullFrame(1)
	f.Detected = true
	f.ImageIndex = 2
	p.OnFrame(f)

	f = fullFrame(2)
	f.Splits = 0
	f.Reset = true
	f.Tiles = f.Tiles[:1]
	p.OnFrame(f)

	require.Equal(t, 2.0, testutil.ToFloat64(mosaicFrameCount.With(labels)))
	require.Equal(t, 1.0, testutil.ToFloat64(mosaicSplitCount.With(labels)))
	require.Equal(t, 1.0, testutil.ToFloat64(mosaicResetCount.With(labels)))
	require.Equal(t, 1.0, testutil.ToFloat64(mosaicDetectionCount.With(labels)))
	require.Equal(t, 1.0, testutil.ToFloat64(mosaicTileCount.With(labels)))
	require.Equal(t, 0.0, testutil.ToFloat64(mosaicImageIndex.With(labels)))
}

func TestServerHandler(t *testing.T) {
	NewPrometheus("test-server").OnFrame(fullFrame(1))

	ts := httptest.NewServer(NewServer("").Handler)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `mosaic_frames_total{source="test-server"} 1`)
}

func TestListenAndServeStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		ListenAndServe(ctx, NewServer("127.0.0.1:0"))
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
