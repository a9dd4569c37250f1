package viz

import "github.com/charmbracelet/lipgloss"

const sidebarWidth = 44

type styles struct {
	sidebar   lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	graph     lipgloss.Style
	help      lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	recording lipgloss.Style
	selected  lipgloss.Style
	item      lipgloss.Style
	panel     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(1, 2).
			Width(sidebarWidth),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Title).
			MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Muted),
		recording: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Alert).
			Blink(true),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		item:     lipgloss.NewStyle().Foreground(t.Text),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),
	}
}
