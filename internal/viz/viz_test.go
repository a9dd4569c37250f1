package viz

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mosaic/internal/export"
	"github.com/san-kum/mosaic/internal/mosaic"
)

var (
	red  = mosaic.RGB{R: 255}
	blue = mosaic.RGB{B: 255}
)

func TestCanvasPaint(t *testing.T) {
	c := NewCanvas(4, 2)
	tiles := []mosaic.Tile{
		{Rect: mosaic.Rect{X: 0, Y: 0, W: 50, H: 40}, Color: red},
		{Rect: mosaic.Rect{X: 50, Y: 0, W: 50, H: 40}, Color: blue},
	}
	c.Paint(mosaic.Size{W: 100, H: 40}, tiles)

	w, h := c.Pixels()
	if w != 4 || h != 4 {
		t.Fatalf("expected 4x4 pixels, got %dx%d", w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := red
			if x >= 2 {
				want = blue
			}
			if got := c.At(x, y); got != want {
				t.Errorf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestCanvasPaintCoversEveryPixel(t *testing.T) {
	img := mosaic.NewBuffer(16, 16)
	img.Fill(red)
	src, _ := mosaic.NewImageSource(img)
	cfg := mosaic.DefaultConfig()
	cfg.Canvas = mosaic.Size{W: 97, H: 61}
	cfg.MinTileSize = 1
	e, err := mosaic.New(cfg, src, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		e.Step()
	}

	unpainted := mosaic.RGB{R: 1, G: 2, B: 3}
	c := NewCanvas(13, 7)
	c.Clear(unpainted)
	c.Paint(cfg.Canvas, e.Tiles())

	w, h := c.Pixels()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.At(x, y) == unpainted {
				t.Fatalf("pixel (%d,%d) left unpainted", x, y)
			}
		}
	}
}

func TestCenterSpan(t *testing.T) {
	tests := []struct {
		a, b, step float64
		n          int
		lo, hi     int
	}{
		{0, 10, 5, 4, 0, 2},
		{10, 20, 5, 4, 2, 4},
		{0, 2, 5, 4, 0, 0},
		{2, 3, 5, 4, 0, 1},
		{-10, 100, 5, 4, 0, 4},
	}
	for _, tt := range tests {
		lo, hi := centerSpan(tt.a, tt.b, tt.step, tt.n)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("centerSpan(%v, %v, %v, %d) = %d, %d; want %d, %d", tt.a, tt.b, tt.step, tt.n, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(5, 3)
	c.Mark(mosaic.Size{W: 50, H: 30}, mosaic.Point{X: 25, Y: 15})

	out := c.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "●") {
		t.Error("expected marker in middle row")
	}
	if strings.Count(out, halfBlock) != 14 {
		t.Errorf("expected 14 half blocks, got %d", strings.Count(out, halfBlock))
	}
}

func TestCanvasToCanvas(t *testing.T) {
	c := NewCanvas(10, 5)
	pt := c.ToCanvas(mosaic.Size{W: 100, H: 50}, 0, 4)
	if pt != (mosaic.Point{X: 5, Y: 45}) {
		t.Errorf("unexpected point %v", pt)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("neon").Name != "neon" {
		t.Error("expected neon theme")
	}
	if GetTheme("missing").Name != "studio" {
		t.Error("expected studio fallback")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
	last := Themes[len(Themes)-1]
	if nextTheme(last).Name != Themes[0].Name {
		t.Error("theme cycle should wrap")
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	a := mosaic.NewBuffer(8, 8)
	a.Fill(red)
	b := mosaic.NewBuffer(8, 8)
	b.Fill(blue)
	src, err := mosaic.NewImageSource(a, b)
	if err != nil {
		t.Fatal(err)
	}
	cfg := mosaic.DefaultConfig()
	cfg.Mirror = false
	e, err := mosaic.New(cfg, src, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Recorder != nil {
		e.AddObserver(opts.Recorder)
	}
	return NewModel(e, opts)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel(t, Options{})

	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	if m.engine.FrameNumber() != 2 {
		t.Errorf("expected 2 frames, got %d", m.engine.FrameNumber())
	}
	if len(m.tileHistory) != 2 {
		t.Errorf("expected 2 history points, got %d", len(m.tileHistory))
	}

	m = update(m, key(" "))
	m = update(m, TickMsg{})
	if m.engine.FrameNumber() != 2 {
		t.Error("paused model should not step")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg{})
	}

	m = update(m, key("r"))
	if m.engine.TileCount() != 1 {
		t.Errorf("expected restart to one tile, got %d", m.engine.TileCount())
	}

	m = update(m, key("n"))
	if m.engine.ImageIndex() != 1 {
		t.Errorf("expected image 1, got %d", m.engine.ImageIndex())
	}

	m = update(m, key("m"))
	if !m.engine.Config().Mirror {
		t.Error("expected mirror toggled on")
	}

	theme := m.theme.Name
	m = update(m, key("t"))
	if m.theme.Name == theme {
		t.Error("expected theme change")
	}

	m = update(m, key("?"))
	if !m.showHelp {
		t.Error("expected help overlay")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelMouse(t *testing.T) {
	m := newTestModel(t, Options{Mouse: true})

	m = update(m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	pt, detected := m.engine.PointerPosition()
	if !detected {
		t.Fatal("mouse motion should count as a detection")
	}
	if pt.X > 20 || pt.Y > 20 {
		t.Errorf("expected pointer near the top-left corner, got %v", pt)
	}

	m = update(m, tea.MouseMsg{X: 500, Y: 0, Action: tea.MouseActionMotion})
	if _, detected := m.engine.PointerPosition(); detected {
		t.Error("mouse outside the canvas should clear the pointer")
	}
}

func TestModelMouseIgnoredWithFeed(t *testing.T) {
	m := newTestModel(t, Options{Source: "walk"})
	m = update(m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
	if _, detected := m.engine.PointerPosition(); detected {
		t.Error("mouse should not drive the pointer when a feed is attached")
	}
}

func TestModelRecording(t *testing.T) {
	path := t.TempDir() + "/live.gif"
	rec := export.NewRecorder(0.05)
	rec.Every = 1
	m := newTestModel(t, Options{Recorder: rec, GIFPath: path})

	m = update(m, key("g"))
	if !rec.Recording() {
		t.Fatal("expected recording")
	}
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})
	m = update(m, key("g"))
	if rec.Recording() {
		t.Error("expected recording stopped")
	}
	if !strings.Contains(m.message, "saved 2 frames") {
		t.Errorf("unexpected message %q", m.message)
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, Options{Source: "sweep"})
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(m, TickMsg{})
	m = update(m, TickMsg{})

	out := m.View()
	for _, want := range []string{"MOSAIC", "RUNNING", "Tiles", "sweep", "(center)"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !utf8.ValidString(out) {
		t.Error("view is not valid utf-8")
	}
}

func TestLauncher(t *testing.T) {
	var gotPreset, gotSource string
	build := func(preset, source string) (Model, tea.Cmd, error) {
		gotPreset, gotSource = preset, source
		if source == "replay" {
			return Model{}, nil, errors.New("replay source needs a recording path")
		}
		return newTestModel(t, Options{Source: source}), nil, nil
	}

	var m tea.Model = NewLauncher([]string{"classic", "quick"}, []string{"center", "replay"}, build)
	step := func(msg tea.Msg) {
		m, _ = m.Update(msg)
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.View(), "quick") {
		t.Error("expected chosen preset in header")
	}

	// mouse, center, replay
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if gotSource != "replay" || !strings.Contains(m.View(), "recording path") {
		t.Error("expected build error to be shown")
	}

	step(tea.KeyMsg{Type: tea.KeyUp})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if gotPreset != "quick" || gotSource != "center" {
		t.Errorf("unexpected selection %s/%s", gotPreset, gotSource)
	}
	if !strings.Contains(m.View(), "MOSAIC") {
		t.Error("expected live view")
	}
}
