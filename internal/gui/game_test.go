package gui

import (
	"strings"
	"testing"

	"github.com/san-kum/mosaic/internal/mosaic"
)

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	img := mosaic.NewBuffer(8, 8)
	img.Fill(mosaic.RGB{G: 200})
	src, err := mosaic.NewImageSource(img)
	if err != nil {
		t.Fatal(err)
	}
	cfg := mosaic.DefaultConfig()
	cfg.Mirror = false
	e, err := mosaic.New(cfg, src, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewGame(e, opts)
}

func TestLayoutResizesEngine(t *testing.T) {
	g := newTestGame(t, Options{})
	for i := 0; i < 3; i++ {
		g.engine.Step()
	}

	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Errorf("expected layout 1024x768, got %dx%d", w, h)
	}
	if g.engine.Canvas() != (mosaic.Size{W: 800, H: 600}) {
		t.Error("resize should wait for the next update")
	}

	if err := g.applyResize(); err != nil {
		t.Fatal(err)
	}
	if g.engine.Canvas() != (mosaic.Size{W: 1024, H: 768}) {
		t.Errorf("unexpected canvas %v", g.engine.Canvas())
	}
	if g.engine.TileCount() != 1 {
		t.Errorf("expected a fresh partition, got %d tiles", g.engine.TileCount())
	}
}

func TestLayoutSameSizeKeepsPartition(t *testing.T) {
	g := newTestGame(t, Options{})
	g.engine.Step()
	g.engine.Step()

	g.Layout(800, 600)
	if err := g.applyResize(); err != nil {
		t.Fatal(err)
	}
	if g.engine.TileCount() != 3 {
		t.Errorf("expected partition kept, got %d tiles", g.engine.TileCount())
	}

	g.Layout(0, 0)
	if err := g.applyResize(); err != nil {
		t.Error("minimized window should be ignored")
	}
}

func TestMoveTo(t *testing.T) {
	g := newTestGame(t, Options{Mouse: true})

	g.moveTo(100, 50)
	pt, detected := g.engine.PointerPosition()
	if !detected {
		t.Fatal("expected detection")
	}
	if pt.X < 99.999 || pt.X > 100.001 || pt.Y < 49.999 || pt.Y > 50.001 {
		t.Errorf("expected cursor position, got %v", pt)
	}

	g.moveTo(-1, 50)
	if _, detected := g.engine.PointerPosition(); detected {
		t.Error("cursor outside window should clear the pointer")
	}
}

func TestStatus(t *testing.T) {
	g := newTestGame(t, Options{})
	g.engine.Step()

	s := g.status()
	for _, want := range []string{"running", "frame 1", "tiles 2/3000", "image 1/1"} {
		if !strings.Contains(s, want) {
			t.Errorf("status %q missing %q", s, want)
		}
	}

	g.running = false
	if !strings.HasPrefix(g.status(), "paused") {
		t.Error("expected paused status")
	}
}
