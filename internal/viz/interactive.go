package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	stateMenu = iota
	stateSource
	stateLive
)

// BuildFunc creates the live view for a chosen preset and tracking source.
type BuildFunc func(preset, source string) (Model, tea.Cmd, error)

var sourceInfo = map[string]string{
	"mouse":     "follow the terminal mouse",
	"center":    "no tracker, canvas center",
	"fixed":     "hold one point",
	"circle":    "orbit the center",
	"lissajous": "3:2 figure eight",
	"sweep":     "raster across the canvas",
	"walk":      "seeded random walk",
	"replay":    "recorded landmarks",
}

// launcher lets the operator pick a preset and a tracking source before the
// live view starts.
type launcher struct {
	state   int
	cursor  int
	presets []string
	sources []string
	preset  string
	build   BuildFunc
	live    Model
	err     error
	styles  styles
}

func NewLauncher(presets, sources []string, build BuildFunc) tea.Model {
	return launcher{
		state:   stateMenu,
		presets: presets,
		sources: append([]string{"mouse"}, sources...),
		build:   build,
		styles:  newStyles(ThemeStudio),
	}
}

func (m launcher) Init() tea.Cmd { return nil }

func (m launcher) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.items()
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.state == stateSource {
			m.state, m.cursor = stateMenu, 0
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(items) == 0 {
			return m, nil
		}
		if m.state == stateMenu {
			m.preset = items[m.cursor]
			m.state, m.cursor = stateSource, 0
			return m, nil
		}
		live, cmd, err := m.build(m.preset, items[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.live, m.state, m.err = live, stateLive, nil
		return m, cmd
	}
	return m, nil
}

func (m launcher) items() []string {
	if m.state == stateMenu {
		return m.presets
	}
	return m.sources
}

func (m launcher) View() string {
	if m.state == stateLive {
		return m.live.View()
	}

	st := m.styles
	var s strings.Builder
	if m.state == stateMenu {
		s.WriteString(st.header.Render("MOSAIC  choose a preset") + "\n")
	} else {
		s.WriteString(st.header.Render(fmt.Sprintf("MOSAIC  %s  choose a tracking source", m.preset)) + "\n")
	}

	for i, item := range m.items() {
		line := fmt.Sprintf("%-10s %s", item, sourceInfo[item])
		if m.state == stateMenu {
			line = item
		}
		if i == m.cursor {
			s.WriteString(st.selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.item.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + st.recording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("↑↓:Move  Enter:Select  Esc:Back  Q:Quit"))
	return st.panel.Render(s.String())
}
