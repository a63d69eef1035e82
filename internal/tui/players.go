package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/golfduel/internal/database/repository"
	"github.com/jask/golfduel/internal/service"
)

type playerMode int

const (
	playerBrowse playerMode = iota
	playerAdding
	playerRenaming
	playerConfirmDelete
)

type playersMsg []repository.Player

type playersPage struct {
	ctx     context.Context
	svc     *service.PlayerService
	st      *styles
	dateFmt string
	players []repository.Player
	table   table.Model
	mode    playerMode
	input   textinput.Model
}

func newPlayersPage(ctx context.Context, svc *service.PlayerService, st *styles, dateFmt string) *playersPage {
	cols := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Handicap", Width: 9},
		{Title: "Added", Width: 12},
	}
	return &playersPage{ctx: ctx, svc: svc, st: st, dateFmt: dateFmt, table: newTable(cols, *st)}
}

func (p *playersPage) Init() tea.Cmd {
	return func() tea.Msg {
		list, err := p.svc.List(p.ctx)
		if err != nil {
			return errMsg{err}
		}
		return playersMsg(list)
	}
}

func (p *playersPage) Capturing() bool { return p.mode != playerBrowse }

func (p *playersPage) Hints() []hint {
	switch p.mode {
	case playerAdding, playerRenaming:
		return []hint{{"enter", "save"}, {"esc", "cancel"}}
	case playerConfirmDelete:
		return []hint{{"y", "delete"}, {"n", "keep"}}
	}
	return []hint{{"a", "add"}, {"r", "rename"}, {"d", "delete"}}
}

func (p *playersPage) selected() *repository.Player {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.players) {
		return nil
	}
	return &p.players[i]
}

func (p *playersPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch m := msg.(type) {
	case playersMsg:
		p.players = m
		rows := make([]table.Row, 0, len(m))
		for _, pl := range m {
			hc := "-"
			if pl.Handicap != nil {
				hc = fmt.Sprintf("%.1f", *pl.Handicap)
			}
			rows = append(rows, table.Row{pl.Name, hc, pl.CreatedAt.Format(p.dateFmt)})
		}
		p.table.SetRows(rows)
		if p.table.Cursor() >= len(rows) {
			p.table.SetCursor(max(0, len(rows)-1))
		}
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return p, nil
}

func (p *playersPage) handleKey(m tea.KeyMsg) (Page, tea.Cmd) {
	switch p.mode {
	case playerAdding, playerRenaming:
		switch m.String() {
		case "esc":
			p.mode = playerBrowse
			return p, nil
		case "enter":
			name := p.input.Value()
			mode := p.mode
			p.mode = playerBrowse
			if mode == playerAdding {
				return p, p.addCmd(name)
			}
			if sel := p.selected(); sel != nil {
				return p, p.renameCmd(sel.ID, name)
			}
			return p, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(m)
		return p, cmd
	case playerConfirmDelete:
		p.mode = playerBrowse
		if key.Matches(m, keys.Confirm) {
			if sel := p.selected(); sel != nil {
				return p, p.removeCmd(*sel)
			}
		}
		return p, nil
	}

	switch {
	case key.Matches(m, keys.Add):
		p.input = newInput("player name", 40)
		p.mode = playerAdding
		return p, nil
	case key.Matches(m, keys.Rename):
		if sel := p.selected(); sel != nil {
			p.input = newInput("new name", 40)
			p.input.SetValue(sel.Name)
			p.mode = playerRenaming
		}
		return p, nil
	case key.Matches(m, keys.Delete):
		if p.selected() != nil {
			p.mode = playerConfirmDelete
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(m)
	return p, cmd
}

func (p *playersPage) addCmd(name string) tea.Cmd {
	return func() tea.Msg {
		res, err := p.svc.Add(p.ctx, name, nil)
		if err != nil {
			return errMsg{err}
		}
		if len(res.Similar) > 0 {
			return done(p.Init(), fmt.Sprintf("added %s (looks like %s)", res.Player.Name, strings.Join(res.Similar, ", ")))
		}
		return done(p.Init(), "added "+res.Player.Name)
	}
}

func (p *playersPage) renameCmd(id, name string) tea.Cmd {
	return func() tea.Msg {
		pl, err := p.svc.Rename(p.ctx, id, name)
		if err != nil {
			return errMsg{err}
		}
		return done(p.Init(), "renamed to "+pl.Name)
	}
}

func (p *playersPage) removeCmd(pl repository.Player) tea.Cmd {
	return func() tea.Msg {
		if err := p.svc.Remove(p.ctx, pl.ID); err != nil {
			return errMsg{err}
		}
		return done(p.Init(), "removed "+pl.Name)
	}
}

func (p *playersPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("Players"))
	b.WriteString("\n\n")
	switch p.mode {
	case playerAdding:
		b.WriteString("New player\n" + p.input.View() + "\n\n")
	case playerRenaming:
		b.WriteString("Rename player\n" + p.input.View() + "\n\n")
	case playerConfirmDelete:
		if sel := p.selected(); sel != nil {
			b.WriteString(renderConfirm(*p.st, "Delete "+sel.Name+"? Finished rounds keep their cards.") + "\n\n")
		}
	}
	if len(p.players) == 0 {
		b.WriteString(p.st.muted.Render("No players yet. Press a to add one."))
		return clip(b.String(), height)
	}
	used := strings.Count(b.String(), "\n") + 1
	sizeTable(&p.table, width, height-used)
	b.WriteString(p.table.View())
	return clip(b.String(), height)
}
