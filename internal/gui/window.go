// Package gui shows the mosaic in a desktop window. The mouse cursor stands
// in for the tracker, and resizing the window restarts the mosaic at the new
// size.
package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/san-kum/mosaic/internal/export"
	"github.com/san-kum/mosaic/internal/mosaic"
)

type Options struct {
	Title string

	// Mouse drives the pointer from the cursor. Otherwise a tracking feed is
	// expected to publish into the engine's pointer.
	Mouse bool

	// ShowPointer marks the position used for the current frame.
	ShowPointer bool

	Recorder *export.Recorder
	GIFPath  string

	TPS int
}

// Run opens the window and blocks until it is closed.
func Run(e *mosaic.Engine, opts Options) error {
	if opts.Title == "" {
		opts.Title = "mosaic"
	}
	if opts.TPS <= 0 {
		opts.TPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "mosaic.gif"
	}

	g := NewGame(e, opts)
	canvas := e.Canvas()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(int(canvas.W), int(canvas.H))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.TPS)
	return ebiten.RunGame(g)
}
