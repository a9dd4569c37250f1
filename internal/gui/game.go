package gui

import (
	"fmt"
	"image/color"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/mosaic/internal/mosaic"
)

var (
	colBg      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colPointer = color.RGBA{R: 255, A: 255}
)

// Game implements ebiten.Game over a mosaic engine.
type Game struct {
	engine  *mosaic.Engine
	opts    Options
	running bool
	hud     bool
	resets  int
	pending mosaic.Size
}

func NewGame(e *mosaic.Engine, opts Options) *Game {
	return &Game{
		engine:  e,
		opts:    opts,
		running: true,
		hud:     true,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.stopRecording()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.engine.NextImage()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.engine.SetMirror(!g.engine.Config().Mirror)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.toggleRecording()
	}

	if err := g.applyResize(); err != nil {
		return err
	}
	if g.opts.Mouse {
		g.moveTo(ebiten.CursorPosition())
	}
	if g.running {
		if f := g.engine.Step(); f.Reset {
			g.resets++
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBg)
	for _, t := range g.engine.Tiles() {
		vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(t.W), float32(t.H), t.Color.RGBA(), false)
	}
	if g.opts.ShowPointer {
		pt, _ := g.engine.PointerPosition()
		vector.DrawFilledCircle(screen, float32(pt.X), float32(pt.Y), 5, colPointer, true)
	}
	if g.hud {
		ebitenutil.DebugPrint(screen, g.status())
	}
}

// Layout keeps one canvas unit per window pixel. A new window size is
// applied on the next update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := mosaic.Size{W: float64(outsideWidth), H: float64(outsideHeight)}
	if size.Valid() && size != g.engine.Canvas() {
		g.pending = size
	}
	return outsideWidth, outsideHeight
}

func (g *Game) applyResize() error {
	if !g.pending.Valid() {
		return nil
	}
	size := g.pending
	g.pending = mosaic.Size{}
	if size == g.engine.Canvas() {
		return nil
	}
	return g.engine.Resize(size)
}

// moveTo publishes the cursor as a tracker detection. A cursor outside the
// canvas counts as no detection.
func (g *Game) moveTo(x, y int) {
	pt := mosaic.Point{X: float64(x), Y: float64(y)}
	canvas := g.engine.Canvas()
	if pt.X < 0 || pt.Y < 0 || pt.X >= canvas.W || pt.Y >= canvas.H {
		g.engine.Pointer().Clear()
		return
	}
	n := g.engine.Mapper().ToNormalized(pt)
	g.engine.Pointer().Set(n.X, n.Y)
}

func (g *Game) status() string {
	state := "running"
	if !g.running {
		state = "paused"
	}
	if g.opts.Recorder != nil && g.opts.Recorder.Recording() {
		state += " [rec]"
	}
	return fmt.Sprintf("%s  frame %d  tiles %d/%d  image %d/%d  resets %d\nSPACE pause  R restart  N next  M mirror  G record  H hud  Q quit",
		state,
		g.engine.FrameNumber(),
		g.engine.TileCount(), g.engine.ResetThreshold(),
		g.engine.ImageIndex()+1, g.engine.Source().Len(),
		g.resets)
}

func (g *Game) toggleRecording() {
	if g.opts.Recorder == nil {
		return
	}
	if g.opts.Recorder.Recording() {
		g.stopRecording()
		return
	}
	g.opts.Recorder.Start()
}

func (g *Game) stopRecording() {
	if g.opts.Recorder == nil || !g.opts.Recorder.Recording() {
		return
	}
	n := g.opts.Recorder.Stop()
	if err := g.opts.Recorder.Save(g.opts.GIFPath); err != nil {
		logs.Warn(errors.New("saving recording failed").Wrap(err))
		return
	}
	logs.WithTag("path", g.opts.GIFPath).
		WithTag("frames", n).
		Info("recording saved")
}
