package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the sidebar and the pointer marker. The mosaic itself is
// always drawn in image colors.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Pointer lipgloss.Color
	Alert   lipgloss.Color
}

var (
	ThemeStudio = Theme{
		Name:    "studio",
		Title:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#00ccff"),
		Text:    lipgloss.Color("#e0e0e0"),
		Muted:   lipgloss.Color("#777788"),
		Border:  lipgloss.Color("#444466"),
		Pointer: lipgloss.Color("#ff2d55"),
		Alert:   lipgloss.Color("#ff4444"),
	}

	ThemeNeon = Theme{
		Name:    "neon",
		Title:   lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#ff00ff"),
		Pointer: lipgloss.Color("#ffff00"),
		Alert:   lipgloss.Color("#ff8800"),
	}

	ThemePaper = Theme{
		Name:    "paper",
		Title:   lipgloss.Color("#222222"),
		Accent:  lipgloss.Color("#0055aa"),
		Text:    lipgloss.Color("#333333"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#bbbbbb"),
		Pointer: lipgloss.Color("#d70000"),
		Alert:   lipgloss.Color("#d70000"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Title:   lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#ff9ff3"),
		Pointer: lipgloss.Color("#5fd068"),
		Alert:   lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeStudio,
		ThemeNeon,
		ThemePaper,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to studio.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeStudio
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after t in Themes, wrapping around.
func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
