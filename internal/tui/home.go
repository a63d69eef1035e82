package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/golfduel/internal/shell"
)

type homePage struct {
	st      *styles
	actions []shell.Action
	cursor  int
}

func newHomePage(st *styles) *homePage {
	return &homePage{st: st, actions: shell.DashboardActions()}
}

func (p *homePage) Init() tea.Cmd   { return nil }
func (p *homePage) Capturing() bool { return false }

func (p *homePage) Hints() []hint {
	return []hint{{"←/→", "choose"}, {"enter", "open"}}
}

func (p *homePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch {
	case key.Matches(km, keys.Left), key.Matches(km, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(km, keys.Right), key.Matches(km, keys.Down):
		if p.cursor < len(p.actions)-1 {
			p.cursor++
		}
	case key.Matches(km, keys.Enter):
		v := p.actions[p.cursor].View
		return p, func() tea.Msg { return NavigateMsg{View: v} }
	}
	return p, nil
}

func (p *homePage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("Golf Duel"))
	b.WriteString("\n")
	b.WriteString(p.st.muted.Render("Keep score with friends, hole by hole."))
	b.WriteString("\n\n")

	buttons := make([]string, 0, len(p.actions))
	for i, a := range p.actions {
		style := p.st.button
		if i == p.cursor {
			style = p.st.buttonFocus
		}
		label := a.Label
		if a.Primary {
			label = "▶ " + label
		}
		buttons = append(buttons, style.Render(label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	if lipgloss.Width(row) > width {
		row = lipgloss.JoinVertical(lipgloss.Left, buttons...)
	}
	b.WriteString(row)
	return clip(b.String(), height)
}
