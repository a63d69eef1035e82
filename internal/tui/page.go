package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Page is one content area behind a sidebar entry.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View(width, height int) string
	// Capturing is true while the page owns plain character keys (text entry, score entry).
	Capturing() bool
	Hints() []hint
}

type hint struct{ key, desc string }

// newTable builds a bubbles table whose key map leaves letters free for page actions.
func newTable(cols []table.Column, st styles) table.Model {
	km := table.DefaultKeyMap()
	km.PageUp.SetKeys("pgup")
	km.PageDown.SetKeys("pgdown")
	km.HalfPageUp.SetKeys("ctrl+u")
	km.HalfPageDown.SetKeys("ctrl+d")
	km.GotoTop.SetKeys("home")
	km.GotoBottom.SetKeys("end")

	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithKeyMap(km), table.WithHeight(10))
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).BorderForeground(st.muted.GetForeground())
	ts.Selected = st.selected
	t.SetStyles(ts)
	return t
}

func sizeTable(t *table.Model, width, height int) {
	if height < 3 {
		height = 3
	}
	t.SetWidth(width)
	t.SetHeight(height)
}

// newInput returns a focused text input with a steady cursor.
func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "> "
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

func renderConfirm(st styles, question string) string {
	return st.warn.Render(question) + "  " + st.muted.Render("[y] yes  [n] no")
}

func clip(s string, height int) string {
	if height <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxHeight(height).Render(s)
}
