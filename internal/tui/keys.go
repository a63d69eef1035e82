package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Theme    key.Binding
	Collapse key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Back     key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Rename   key.Binding
	Delete   key.Binding
	Par      key.Binding
	Clear    key.Binding
	Finish   key.Binding
	Abandon  key.Binding
	More     key.Binding
	Less     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Collapse: key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "sidebar")),
	Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Toggle:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Par:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "set par")),
	Clear:    key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "clear")),
	Finish:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
	Abandon:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "abandon")),
	More:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "stroke")),
	Less:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "stroke")),
	Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	Cancel:   key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
}
