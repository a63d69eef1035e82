package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/golfduel/internal/database/repository"
	"github.com/jask/golfduel/internal/round"
	"github.com/jask/golfduel/internal/service"
)

type historyMsg []service.Summary

type historyPage struct {
	ctx        context.Context
	svc        *service.HistoryService
	st         *styles
	dateFmt    string
	summaries  []service.Summary
	table      table.Model
	detail     bool
	confirming bool
}

func newHistoryPage(ctx context.Context, svc *service.HistoryService, st *styles, dateFmt string) *historyPage {
	cols := []table.Column{
		{Title: "Date", Width: 11},
		{Title: "Club", Width: 16},
		{Title: "Scores", Width: 24},
		{Title: "Result", Width: 12},
	}
	return &historyPage{ctx: ctx, svc: svc, st: st, dateFmt: dateFmt, table: newTable(cols, *st)}
}

func (p *historyPage) Init() tea.Cmd {
	return func() tea.Msg {
		list, err := p.svc.List(p.ctx, repository.RoundFilters{})
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(list)
	}
}

func (p *historyPage) Capturing() bool { return p.confirming }

func (p *historyPage) Hints() []hint {
	switch {
	case p.confirming:
		return []hint{{"y", "delete"}, {"n", "keep"}}
	case p.detail:
		return []hint{{"esc", "back"}}
	}
	return []hint{{"enter", "scorecard"}, {"d", "delete"}}
}

func (p *historyPage) selected() *service.Summary {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.summaries) {
		return nil
	}
	return &p.summaries[i]
}

func (p *historyPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch m := msg.(type) {
	case historyMsg:
		p.summaries = m
		rows := make([]table.Row, 0, len(m))
		for _, s := range m {
			rows = append(rows, p.row(s))
		}
		p.table.SetRows(rows)
		if p.table.Cursor() >= len(rows) {
			p.table.SetCursor(max(0, len(rows)-1))
		}
		if len(rows) == 0 {
			p.detail = false
		}
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return p, nil
}

func (p *historyPage) row(s service.Summary) table.Row {
	at := s.Round.StartedAt
	if s.Round.FinishedAt != nil {
		at = *s.Round.FinishedAt
	}
	scores := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		scores = append(scores, fmt.Sprintf("%s %d (%s)", l.Name, l.Total, round.FormatToPar(l.ToPar)))
	}
	return table.Row{at.Local().Format(p.dateFmt), s.Round.ClubName, strings.Join(scores, ", "), s.Winner()}
}

func (p *historyPage) handleKey(m tea.KeyMsg) (Page, tea.Cmd) {
	if p.confirming {
		p.confirming = false
		if key.Matches(m, keys.Confirm) {
			if sel := p.selected(); sel != nil {
				p.detail = false
				return p, p.deleteCmd(sel.Round)
			}
		}
		return p, nil
	}
	switch {
	case key.Matches(m, keys.Enter):
		p.detail = p.selected() != nil
		return p, nil
	case key.Matches(m, keys.Back):
		p.detail = false
		return p, nil
	case key.Matches(m, keys.Delete):
		p.confirming = p.selected() != nil
		return p, nil
	}
	if p.detail {
		return p, nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(m)
	return p, cmd
}

func (p *historyPage) deleteCmd(r round.Round) tea.Cmd {
	return func() tea.Msg {
		if err := p.svc.Delete(p.ctx, r.ID); err != nil {
			return errMsg{err}
		}
		return done(p.Init(), "deleted round at "+r.ClubName)
	}
}

func (p *historyPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("History"))
	b.WriteString("\n\n")
	if p.confirming {
		if sel := p.selected(); sel != nil {
			b.WriteString(renderConfirm(*p.st, "Delete the round at "+sel.Round.ClubName+"?") + "\n\n")
		}
	}
	if len(p.summaries) == 0 {
		b.WriteString(p.st.muted.Render("No finished rounds yet."))
		return clip(b.String(), height)
	}
	if sel := p.selected(); p.detail && sel != nil {
		b.WriteString(p.st.accent.Render(sel.Round.ClubName))
		b.WriteString(p.st.muted.Render("  " + sel.Round.StartedAt.Local().Format(p.dateFmt)))
		b.WriteString("\n\n")
		b.WriteString(renderScorecard(*p.st, sel.Round, cardCursor{}))
		b.WriteString("\n\n")
		b.WriteString(renderOutcome(*p.st, sel.Round))
		return clip(b.String(), height)
	}
	used := strings.Count(b.String(), "\n") + 1
	sizeTable(&p.table, width, height-used)
	b.WriteString(p.table.View())
	return clip(b.String(), height)
}
