package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/golfduel/internal/database/repository"
	"github.com/jask/golfduel/internal/round"
	"github.com/jask/golfduel/internal/service"
)

type newRoundPage struct {
	ctx       context.Context
	clubsSvc  *service.ClubService
	players   *service.PlayerService
	rounds    *service.RoundService
	st        *styles
	clubList  []repository.Club
	roster    []repository.Player
	clubIdx   int
	playerIdx int
	column    int // 0 clubs, 1 players
	picked    []string
}

func newNewRoundPage(ctx context.Context, clubs *service.ClubService, players *service.PlayerService, rounds *service.RoundService, st *styles) *newRoundPage {
	return &newRoundPage{ctx: ctx, clubsSvc: clubs, players: players, rounds: rounds, st: st}
}

func (p *newRoundPage) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			list, err := p.clubsSvc.List(p.ctx)
			if err != nil {
				return errMsg{err}
			}
			return clubsMsg(list)
		},
		func() tea.Msg {
			list, err := p.players.List(p.ctx)
			if err != nil {
				return errMsg{err}
			}
			return playersMsg(list)
		},
	)
}

func (p *newRoundPage) Capturing() bool { return false }

func (p *newRoundPage) Hints() []hint {
	return []hint{{"←/→", "column"}, {"space", "pick player"}, {"enter", "tee off"}}
}

func (p *newRoundPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch m := msg.(type) {
	case clubsMsg:
		p.clubList = m
		p.clubIdx = min(p.clubIdx, max(0, len(m)-1))
	case playersMsg:
		p.roster = m
		p.playerIdx = min(p.playerIdx, max(0, len(m)-1))
		p.picked = slices.DeleteFunc(p.picked, func(id string) bool {
			return !slices.ContainsFunc(m, func(pl repository.Player) bool { return pl.ID == id })
		})
	case tea.KeyMsg:
		return p.handleKey(m)
	}
	return p, nil
}

func (p *newRoundPage) handleKey(m tea.KeyMsg) (Page, tea.Cmd) {
	switch {
	case key.Matches(m, keys.Left):
		p.column = 0
	case key.Matches(m, keys.Right):
		p.column = 1
	case key.Matches(m, keys.Up):
		if p.column == 0 && p.clubIdx > 0 {
			p.clubIdx--
		}
		if p.column == 1 && p.playerIdx > 0 {
			p.playerIdx--
		}
	case key.Matches(m, keys.Down):
		if p.column == 0 && p.clubIdx < len(p.clubList)-1 {
			p.clubIdx++
		}
		if p.column == 1 && p.playerIdx < len(p.roster)-1 {
			p.playerIdx++
		}
	case key.Matches(m, keys.Toggle):
		if len(p.roster) == 0 {
			return p, nil
		}
		p.column = 1
		id := p.roster[p.playerIdx].ID
		if i := slices.Index(p.picked, id); i >= 0 {
			p.picked = slices.Delete(p.picked, i, i+1)
		} else if len(p.picked) < round.MaxPlayers {
			p.picked = append(p.picked, id)
		} else {
			return p, func() tea.Msg { return statusMsg(fmt.Sprintf("at most %d players per round", round.MaxPlayers)) }
		}
	case key.Matches(m, keys.Enter):
		if len(p.clubList) == 0 {
			return p, func() tea.Msg { return statusMsg("add a club first") }
		}
		return p, p.startCmd(p.clubList[p.clubIdx].ID, slices.Clone(p.picked))
	}
	return p, nil
}

func (p *newRoundPage) startCmd(clubID string, playerIDs []string) tea.Cmd {
	return func() tea.Msg {
		r, err := p.rounds.Start(p.ctx, clubID, playerIDs)
		if err != nil {
			return errMsg{err}
		}
		return StartRoundMsg{Round: r}
	}
}

func (p *newRoundPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("New Round"))
	b.WriteString("\n")
	b.WriteString(p.st.muted.Render("Pick a club and up to four players, then press enter."))
	b.WriteString("\n\n")

	var clubs strings.Builder
	clubs.WriteString(p.heading("Club", p.column == 0) + "\n")
	if len(p.clubList) == 0 {
		clubs.WriteString(p.st.muted.Render("no clubs"))
	}
	for i, c := range p.clubList {
		line := fmt.Sprintf("%s (%d holes, par %d)", c.Name, len(c.Pars), c.Par())
		if i == p.clubIdx {
			line = p.st.selected.Render("● " + line)
		} else {
			line = "  " + line
		}
		clubs.WriteString(line + "\n")
	}

	var players strings.Builder
	players.WriteString(p.heading("Players", p.column == 1) + "\n")
	if len(p.roster) == 0 {
		players.WriteString(p.st.muted.Render("no players"))
	}
	for i, pl := range p.roster {
		box := "[ ]"
		if n := slices.Index(p.picked, pl.ID); n >= 0 {
			box = fmt.Sprintf("[%d]", n+1)
		}
		line := box + " " + pl.Name
		if p.column == 1 && i == p.playerIdx {
			line = p.st.selected.Render(line)
		}
		players.WriteString(line + "\n")
	}

	colW := max(20, (width-4)/2)
	left := lipgloss.NewStyle().Width(colW).Render(clubs.String())
	right := lipgloss.NewStyle().Width(colW).Render(players.String())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	return clip(b.String(), height)
}

func (p *newRoundPage) heading(s string, focused bool) string {
	if focused {
		return p.st.accent.Bold(true).Render(s)
	}
	return p.st.muted.Render(s)
}
