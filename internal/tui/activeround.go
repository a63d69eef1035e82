package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/golfduel/internal/round"
	"github.com/jask/golfduel/internal/service"
)

// activeRoundPage edits the shell's round. Each edit is applied to the page's card
// and sent to the shell as a full UpdateRoundMsg stamped with a revision, so keys
// queued before the shell catches up build on the latest card.
type activeRoundPage struct {
	ctx        context.Context
	rounds     *service.RoundService
	st         *styles
	timeFmt    string
	card       round.Round
	hole       int
	player     int
	rev        int
	confirming bool
	saving     bool
}

func newActiveRoundPage(ctx context.Context, rounds *service.RoundService, st *styles, r round.Round) *activeRoundPage {
	p := &activeRoundPage{ctx: ctx, rounds: rounds, st: st, timeFmt: "15:04"}
	p.bind(r)
	if next := r.NextHole(); next > 0 {
		p.hole = next - 1
	}
	return p
}

func (p *activeRoundPage) bind(r round.Round) {
	p.card = r
	p.hole = min(p.hole, max(0, len(r.Holes)-1))
	p.player = min(p.player, max(0, len(r.Players)-1))
}

func (p *activeRoundPage) Init() tea.Cmd   { return nil }
func (p *activeRoundPage) Capturing() bool { return true }

func (p *activeRoundPage) Hints() []hint {
	if p.confirming {
		return []hint{{"y", "abandon"}, {"n", "keep playing"}}
	}
	return []hint{{"1-9,0", "strokes"}, {"+/-", "adjust"}, {"⌫", "clear"}, {"f", "finish"}, {"x", "abandon"}, {"tab", "sidebar"}}
}

func (p *activeRoundPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if _, isErr := msg.(errMsg); isErr {
			p.saving = false
		}
		return p, nil
	}
	if p.confirming {
		p.confirming = false
		if key.Matches(km, keys.Confirm) {
			return p, func() tea.Msg { return FinishRoundMsg{} }
		}
		return p, nil
	}
	if p.saving {
		return p, nil
	}

	switch {
	case key.Matches(km, keys.Left):
		if p.hole > 0 {
			p.hole--
		}
	case key.Matches(km, keys.Right):
		if p.hole < len(p.card.Holes)-1 {
			p.hole++
		}
	case key.Matches(km, keys.Up):
		if p.player > 0 {
			p.player--
		}
	case key.Matches(km, keys.Down):
		if p.player < len(p.card.Players)-1 {
			p.player++
		}
	case key.Matches(km, keys.Clear):
		cmd, _ := p.edit(func(r round.Round, hole int, pid string) (round.Round, error) {
			return r.WithoutScore(hole, pid)
		})
		return p, cmd
	case key.Matches(km, keys.More), key.Matches(km, keys.Less):
		delta := 1
		if key.Matches(km, keys.Less) {
			delta = -1
		}
		cmd, _ := p.edit(func(r round.Round, hole int, pid string) (round.Round, error) {
			cur, ok := r.Score(hole, pid)
			if !ok {
				cur = r.Holes[hole-1].Par - delta
			}
			return r.WithScore(hole, pid, cur+delta)
		})
		return p, cmd
	case key.Matches(km, keys.Finish):
		p.saving = true
		return p, p.finishCmd(p.card)
	case key.Matches(km, keys.Abandon):
		p.confirming = true
	default:
		if s, ok := strokesForKey(km.String()); ok {
			cmd, ok := p.edit(func(r round.Round, hole int, pid string) (round.Round, error) {
				return r.WithScore(hole, pid, s)
			})
			if ok {
				p.advance()
			}
			return p, cmd
		}
	}
	return p, nil
}

func strokesForKey(k string) (int, bool) {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return 0, false
	}
	if k == "0" {
		return 10, true
	}
	return int(k[0] - '0'), true
}

// advance moves to the next player, wrapping to the next hole.
func (p *activeRoundPage) advance() {
	if p.player < len(p.card.Players)-1 {
		p.player++
		return
	}
	if p.hole < len(p.card.Holes)-1 {
		p.player = 0
		p.hole++
	}
}

// edit applies fn to the card under the cursor and reports whether it succeeded.
func (p *activeRoundPage) edit(fn func(r round.Round, hole int, pid string) (round.Round, error)) (tea.Cmd, bool) {
	if len(p.card.Players) == 0 || len(p.card.Holes) == 0 {
		return nil, false
	}
	next, err := fn(p.card, p.hole+1, p.card.Players[p.player].ID)
	if err != nil {
		return func() tea.Msg { return errMsg{err} }, false
	}
	p.bind(next)
	p.rev++
	rev := p.rev
	return func() tea.Msg { return UpdateRoundMsg{Round: next, rev: rev} }, true
}

func (p *activeRoundPage) finishCmd(r round.Round) tea.Cmd {
	return func() tea.Msg {
		saved, err := p.rounds.Finish(p.ctx, r)
		if err != nil {
			return errMsg{err}
		}
		return FinishRoundMsg{Saved: &saved}
	}
}

func (p *activeRoundPage) View(width, height int) string {
	r := p.card
	var b strings.Builder
	b.WriteString(p.st.title.Render("Round at " + r.ClubName))
	b.WriteString("  ")
	b.WriteString(p.st.muted.Render("teed off " + r.StartedAt.Local().Format(p.timeFmt)))
	b.WriteString("\n\n")
	b.WriteString(renderScorecard(*p.st, r, cardCursor{hole: p.hole, player: p.player, show: true}))
	b.WriteString("\n\n")

	if len(r.Holes) > 0 && len(r.Players) > 0 {
		h := r.Holes[p.hole]
		b.WriteString(fmt.Sprintf("Hole %d, par %d: %s", h.Number, h.Par, p.st.accent.Render(r.Players[p.player].Name)))
		b.WriteString("\n")
	}
	b.WriteString(renderOutcome(*p.st, r))
	b.WriteString("\n")
	if p.confirming {
		b.WriteString("\n" + renderConfirm(*p.st, "Abandon this round? Scores will not be saved."))
	}
	if p.saving {
		b.WriteString("\n" + p.st.muted.Render("saving..."))
	}
	return clip(b.String(), height)
}
