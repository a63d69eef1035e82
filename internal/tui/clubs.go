package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/golfduel/internal/database/repository"
	"github.com/jask/golfduel/internal/service"
)

type clubMode int

const (
	clubBrowse clubMode = iota
	clubAddName
	clubAddLocation
	clubAddHoles
	clubSetPar
	clubConfirmDelete
)

type clubsMsg []repository.Club

type clubDraft struct {
	name     string
	location string
}

type clubsPage struct {
	ctx          context.Context
	svc          *service.ClubService
	st           *styles
	defaultHoles int
	clubs        []repository.Club
	table        table.Model
	hole         int // 0-based cursor in the selected club's par strip
	mode         clubMode
	input        textinput.Model
	draft        clubDraft
}

func newClubsPage(ctx context.Context, svc *service.ClubService, st *styles, defaultHoles int) *clubsPage {
	cols := []table.Column{
		{Title: "Club", Width: 24},
		{Title: "Location", Width: 18},
		{Title: "Holes", Width: 6},
		{Title: "Par", Width: 5},
	}
	return &clubsPage{ctx: ctx, svc: svc, st: st, defaultHoles: defaultHoles, table: newTable(cols, *st)}
}

func (p *clubsPage) Init() tea.Cmd {
	return func() tea.Msg {
		list, err := p.svc.List(p.ctx)
		if err != nil {
			return errMsg{err}
		}
		return clubsMsg(list)
	}
}

func (p *clubsPage) Capturing() bool { return p.mode != clubBrowse }

func (p *clubsPage) Hints() []hint {
	switch p.mode {
	case clubAddName, clubAddLocation, clubAddHoles:
		return []hint{{"enter", "next"}, {"esc", "cancel"}}
	case clubSetPar:
		return []hint{{"3-6", "par"}, {"esc", "cancel"}}
	case clubConfirmDelete:
		return []hint{{"y", "delete"}, {"n", "keep"}}
	}
	return []hint{{"a", "add"}, {"←/→", "hole"}, {"p", "set par"}, {"d", "delete"}}
}

func (p *clubsPage) selected() *repository.Club {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.clubs) {
		return nil
	}
	return &p.clubs[i]
}

func (p *clubsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch m := msg.(type) {
	case clubsMsg:
		p.clubs = m
		rows := make([]table.Row, 0, len(m))
		for _, c := range m {
			rows = append(rows, table.Row{c.Name, c.Location, strconv.Itoa(len(c.Pars)), strconv.Itoa(c.Par())})
		}
		p.table.SetRows(rows)
		if p.table.Cursor() >= len(rows) {
			p.table.SetCursor(max(0, len(rows)-1))
		}
		p.clampHole()
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return p, nil
}

func (p *clubsPage) clampHole() {
	sel := p.selected()
	if sel == nil {
		p.hole = 0
		return
	}
	if p.hole >= len(sel.Pars) {
		p.hole = len(sel.Pars) - 1
	}
}

func (p *clubsPage) handleKey(m tea.KeyMsg) (Page, tea.Cmd) {
	switch p.mode {
	case clubAddName, clubAddLocation, clubAddHoles:
		return p.handleForm(m)
	case clubSetPar:
		p.mode = clubBrowse
		sel := p.selected()
		par, err := strconv.Atoi(m.String())
		if sel == nil || err != nil {
			return p, nil
		}
		return p, p.setParCmd(sel.ID, p.hole+1, par)
	case clubConfirmDelete:
		p.mode = clubBrowse
		if key.Matches(m, keys.Confirm) {
			if sel := p.selected(); sel != nil {
				return p, p.removeCmd(*sel)
			}
		}
		return p, nil
	}

	switch {
	case key.Matches(m, keys.Add):
		p.draft = clubDraft{}
		p.input = newInput("club name", 40)
		p.mode = clubAddName
		return p, nil
	case key.Matches(m, keys.Left):
		if p.hole > 0 {
			p.hole--
		}
		return p, nil
	case key.Matches(m, keys.Right):
		if sel := p.selected(); sel != nil && p.hole < len(sel.Pars)-1 {
			p.hole++
		}
		return p, nil
	case key.Matches(m, keys.Par):
		if p.selected() != nil {
			p.mode = clubSetPar
		}
		return p, nil
	case key.Matches(m, keys.Delete):
		if p.selected() != nil {
			p.mode = clubConfirmDelete
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(m)
	p.clampHole()
	return p, cmd
}

func (p *clubsPage) handleForm(m tea.KeyMsg) (Page, tea.Cmd) {
	switch m.String() {
	case "esc":
		p.mode = clubBrowse
		return p, nil
	case "enter":
		value := p.input.Value()
		switch p.mode {
		case clubAddName:
			p.draft.name = value
			p.input = newInput("location (optional)", 40)
			p.mode = clubAddLocation
		case clubAddLocation:
			p.draft.location = value
			p.input = newInput("9 or 18", 2)
			p.input.SetValue(strconv.Itoa(p.defaultHoles))
			p.mode = clubAddHoles
		case clubAddHoles:
			p.mode = clubBrowse
			holes, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				holes = 0
			}
			return p, p.addCmd(p.draft, holes)
		}
		return p, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(m)
	return p, cmd
}

func (p *clubsPage) addCmd(d clubDraft, holes int) tea.Cmd {
	return func() tea.Msg {
		c, err := p.svc.Add(p.ctx, d.name, d.location, holes, nil)
		if err != nil {
			return errMsg{err}
		}
		return done(p.Init(), fmt.Sprintf("added %s, %d holes, par %d", c.Name, len(c.Pars), c.Par()))
	}
}

func (p *clubsPage) setParCmd(clubID string, hole, par int) tea.Cmd {
	return func() tea.Msg {
		c, err := p.svc.SetPar(p.ctx, clubID, hole, par)
		if err != nil {
			return errMsg{err}
		}
		return done(p.Init(), fmt.Sprintf("%s hole %d is now par %d", c.Name, hole, par))
	}
}

func (p *clubsPage) removeCmd(c repository.Club) tea.Cmd {
	return func() tea.Msg {
		if err := p.svc.Remove(p.ctx, c.ID); err != nil {
			return errMsg{err}
		}
		return done(p.Init(), "removed "+c.Name)
	}
}

func (p *clubsPage) renderPars(c repository.Club) string {
	var nums, pars strings.Builder
	nums.WriteString(p.st.muted.Render("Hole "))
	pars.WriteString(p.st.muted.Render("Par  "))
	for i, par := range c.Pars {
		n := fmt.Sprintf("%3d", i+1)
		v := fmt.Sprintf("%3d", par)
		if i == p.hole {
			n, v = p.st.selected.Render(n), p.st.selected.Render(v)
		}
		nums.WriteString(n)
		pars.WriteString(v)
	}
	return nums.String() + "\n" + pars.String()
}

func (p *clubsPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("Clubs"))
	b.WriteString("\n\n")
	switch p.mode {
	case clubAddName:
		b.WriteString("New club: name\n" + p.input.View() + "\n\n")
	case clubAddLocation:
		b.WriteString("New club: location\n" + p.input.View() + "\n\n")
	case clubAddHoles:
		b.WriteString("New club: holes\n" + p.input.View() + "\n\n")
	case clubSetPar:
		b.WriteString(p.st.warn.Render(fmt.Sprintf("Par for hole %d? Press 3, 4, 5 or 6.", p.hole+1)) + "\n\n")
	case clubConfirmDelete:
		if sel := p.selected(); sel != nil {
			b.WriteString(renderConfirm(*p.st, "Delete "+sel.Name+"? Finished rounds keep the club name.") + "\n\n")
		}
	}
	if len(p.clubs) == 0 {
		b.WriteString(p.st.muted.Render("No clubs yet. Press a to add one."))
		return clip(b.String(), height)
	}
	strip := ""
	if sel := p.selected(); sel != nil {
		strip = "\n\n" + p.renderPars(*sel)
	}
	used := strings.Count(b.String(), "\n") + strings.Count(strip, "\n") + 1
	sizeTable(&p.table, width, height-used)
	b.WriteString(p.table.View())
	b.WriteString(strip)
	return clip(b.String(), height)
}
