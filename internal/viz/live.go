package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mosaic/internal/export"
	"github.com/san-kum/mosaic/internal/mosaic"
)

const (
	defaultCols     = 80
	defaultRows     = 30
	historyCapacity = 120
)

type TickMsg time.Time

type Options struct {
	// Source labels the tracking producer in the sidebar.
	Source string

	// Mouse drives the pointer from terminal mouse motion. Otherwise a
	// tracking feed is expected to publish into the engine's pointer.
	Mouse bool

	// Recorder, when set, must also be registered as an engine observer.
	Recorder *export.Recorder
	GIFPath  string

	FPS   float64
	Theme string
}

// Model is the live terminal view: the mosaic on the left, run stats and a
// tile-count chart on the right.
type Model struct {
	engine      *mosaic.Engine
	opts        Options
	canvas      *Canvas
	theme       Theme
	styles      styles
	running     bool
	showHelp    bool
	last        mosaic.Frame
	resets      int
	splits      int
	tileHistory []float64
	message     string
}

func NewModel(e *mosaic.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "mosaic.gif"
	}
	theme := GetTheme(opts.Theme)
	return Model{
		engine:      e,
		opts:        opts,
		canvas:      NewCanvas(defaultCols, defaultRows),
		theme:       theme,
		styles:      newStyles(theme),
		running:     true,
		tileHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles operator input and advances the engine on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.engine.Reset()
			m.message = "restarted"
		case "n":
			idx := m.engine.NextImage()
			m.message = fmt.Sprintf("image %d", idx)
		case "m":
			mirror := !m.engine.Config().Mirror
			m.engine.SetMirror(mirror)
			m.message = fmt.Sprintf("mirror %t", mirror)
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if m.opts.Mouse {
			m.pointAt(msg.X, msg.Y)
		}
	case tea.WindowSizeMsg:
		m.canvas = NewCanvas(msg.Width-sidebarWidth-4, msg.Height-1)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	f := m.engine.Step()
	m.last = f
	m.splits += f.Splits
	if f.Reset {
		m.resets++
	}
	if len(m.tileHistory) >= historyCapacity {
		m.tileHistory = m.tileHistory[1:]
	}
	m.tileHistory = append(m.tileHistory, float64(len(f.Tiles)))
}

// pointAt publishes the canvas point under a terminal cell as if a tracker
// had seen it there.
func (m *Model) pointAt(col, row int) {
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		m.engine.Pointer().Clear()
		return
	}
	pt := m.canvas.ToCanvas(m.engine.Canvas(), col, row)
	n := m.engine.Mapper().ToNormalized(pt)
	m.engine.Pointer().Set(n.X, n.Y)
}

func (m *Model) toggleRecording() {
	if m.opts.Recorder == nil {
		m.message = "recording unavailable"
		return
	}
	if m.opts.Recorder.Recording() {
		m.stopRecording()
		return
	}
	m.opts.Recorder.Start()
	m.message = "recording"
}

func (m *Model) stopRecording() {
	if m.opts.Recorder == nil || !m.opts.Recorder.Recording() {
		return
	}
	n := m.opts.Recorder.Stop()
	if err := m.opts.Recorder.Save(m.opts.GIFPath); err != nil {
		logs.Warn(errors.New("saving recording failed").Wrap(err))
		m.message = "recording failed"
		return
	}
	logs.WithTag("path", m.opts.GIFPath).
		WithTag("frames", n).
		Info("recording saved")
	m.message = fmt.Sprintf("saved %d frames", n)
}

// View renders the mosaic and the sidebar.
func (m Model) View() string {
	canvas := m.engine.Canvas()
	m.canvas.Paint(canvas, m.engine.Tiles())
	pt, _ := m.engine.PointerPosition()
	m.canvas.Mark(canvas, pt)
	mosaicView := m.canvas.Render(m.theme.Pointer)

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, mosaicView, m.sidebar())
	if m.showHelp {
		return m.styles.panel.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

func (m Model) sidebar() string {
	var s strings.Builder
	st := m.styles

	s.WriteString(st.header.Render("MOSAIC") + "\n")
	switch {
	case m.opts.Recorder != nil && m.opts.Recorder.Recording():
		s.WriteString(st.recording.Render("● REC") + "\n\n")
	case m.running:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	if len(m.tileHistory) > 1 {
		chart := asciigraph.Plot(m.tileHistory,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption("Tiles"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	pt, detected := m.engine.PointerPosition()
	pointer := fmt.Sprintf("%.0f, %.0f", pt.X, pt.Y)
	if !detected {
		pointer += " (center)"
	}
	img := m.engine.CurrentImage()
	source := m.opts.Source
	if m.opts.Mouse {
		source = "mouse"
	}

	rows := [][2]string{
		{"Frame", fmt.Sprintf("%d", m.engine.FrameNumber())},
		{"Tiles", fmt.Sprintf("%d / %d", m.engine.TileCount(), m.engine.ResetThreshold())},
		{"Splits", fmt.Sprintf("%d", m.splits)},
		{"Resets", fmt.Sprintf("%d", m.resets)},
		{"Image", fmt.Sprintf("%d/%d %dx%d", m.engine.ImageIndex()+1, m.engine.Source().Len(), img.Width(), img.Height())},
		{"Pointer", pointer},
		{"Source", source},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(st.label.Render(r[0]) + st.value.Render(r[1]) + "\n")
	}
	if m.message != "" {
		s.WriteString("\n" + st.value.Render(m.message) + "\n")
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Restart N:Next\nT:Theme  G:Record  ?:Help  Q:Quit"))
	return st.sidebar.Render(s.String())
}

const helpText = `KEYBOARD SHORTCUTS

Space  pause or resume
R      restart the current image
N      skip to the next image
M      toggle mirrored tracking
T      cycle themes
G      start or stop GIF recording
?      toggle this help
Q      quit`
