package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a named palette. Dark is Catppuccin Mocha, light is Latte.
type Theme struct {
	Name     string
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Accent   lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Surface0 lipgloss.Color
	Mantle   lipgloss.Color
}

var (
	darkTheme = Theme{
		Name:     "dark",
		Text:     "#cdd6f4",
		Muted:    "#a6adc8",
		Border:   "#585b70",
		Accent:   "#89b4fa",
		Success:  "#a6e3a1",
		Warning:  "#f9e2af",
		Error:    "#f38ba8",
		Surface0: "#313244",
		Mantle:   "#181825",
	}
	lightTheme = Theme{
		Name:     "light",
		Text:     "#4c4f69",
		Muted:    "#6c6f85",
		Border:   "#acb0be",
		Accent:   "#1e66f5",
		Success:  "#40a02b",
		Warning:  "#df8e1d",
		Error:    "#d20f39",
		Surface0: "#ccd0da",
		Mantle:   "#e6e9ef",
	}
)

func themeByName(name string) Theme {
	if name == lightTheme.Name {
		return lightTheme
	}
	return darkTheme
}

type styles struct {
	title        lipgloss.Style
	muted        lipgloss.Style
	accent       lipgloss.Style
	good         lipgloss.Style
	warn         lipgloss.Style
	bad          lipgloss.Style
	selected     lipgloss.Style
	sidebar      lipgloss.Style
	sidebarTitle lipgloss.Style
	entry        lipgloss.Style
	entryActive  lipgloss.Style
	content      lipgloss.Style
	button       lipgloss.Style
	buttonFocus  lipgloss.Style
	status       lipgloss.Style
	statusErr    lipgloss.Style
	footerKey    lipgloss.Style
	footerDesc   lipgloss.Style
	footer       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:        lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		muted:        lipgloss.NewStyle().Foreground(t.Muted),
		accent:       lipgloss.NewStyle().Foreground(t.Accent),
		good:         lipgloss.NewStyle().Foreground(t.Success),
		warn:         lipgloss.NewStyle().Foreground(t.Warning),
		bad:          lipgloss.NewStyle().Foreground(t.Error),
		selected:     lipgloss.NewStyle().Background(t.Surface0).Foreground(t.Accent).Bold(true),
		sidebar:      lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(t.Border).Padding(0, 1),
		sidebarTitle: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		entry:        lipgloss.NewStyle().Foreground(t.Muted),
		entryActive:  lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface0).Bold(true),
		content:      lipgloss.NewStyle().Foreground(t.Text).Padding(0, 2),
		button:       lipgloss.NewStyle().Foreground(t.Text).Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 2),
		buttonFocus:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Border(lipgloss.RoundedBorder()).BorderForeground(t.Accent).Padding(0, 2),
		status:       lipgloss.NewStyle().Foreground(t.Success).Background(t.Surface0),
		statusErr:    lipgloss.NewStyle().Foreground(t.Error).Background(t.Surface0),
		footerKey:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Background(t.Mantle),
		footerDesc:   lipgloss.NewStyle().Foreground(t.Muted).Background(t.Mantle),
		footer:       lipgloss.NewStyle().Background(t.Mantle),
	}
}
