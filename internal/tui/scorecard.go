package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/golfduel/internal/round"
)

const nameWidth = 12

type cardCursor struct {
	hole, player int
	show         bool
}

func renderScorecard(st styles, r round.Round, cur cardCursor) string {
	var b strings.Builder

	b.WriteString(st.muted.Render(pad("Hole", nameWidth)))
	for _, h := range r.Holes {
		b.WriteString(st.muted.Render(fmt.Sprintf("%3d", h.Number)))
	}
	b.WriteString(st.muted.Render("   Tot  +/-"))
	b.WriteString("\n")

	b.WriteString(st.muted.Render(pad("Par", nameWidth)))
	for _, h := range r.Holes {
		b.WriteString(st.muted.Render(fmt.Sprintf("%3d", h.Par)))
	}
	b.WriteString(st.muted.Render(fmt.Sprintf("  %4d", r.Par())))
	b.WriteString("\n")

	for pi, p := range r.Players {
		name := pad(p.Name, nameWidth)
		if cur.show && pi == cur.player {
			name = st.accent.Render(name)
		}
		b.WriteString(name)
		for hi, h := range r.Holes {
			cell := "  ·"
			style := lipgloss.NewStyle()
			if s, ok := h.Strokes[p.ID]; ok {
				cell = fmt.Sprintf("%3d", s)
				style = scoreStyle(st, round.Classify(s, h.Par))
			}
			if cur.show && pi == cur.player && hi == cur.hole {
				style = st.selected
			}
			b.WriteString(style.Render(cell))
		}
		if r.HolesPlayed(p.ID) > 0 {
			b.WriteString(fmt.Sprintf("  %4d  %3s", r.Total(p.ID), round.FormatToPar(r.ToPar(p.ID))))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func scoreStyle(st styles, c round.ScoreClass) lipgloss.Style {
	switch c {
	case round.EagleOrBetter, round.Birdie:
		return st.good
	case round.Bogey:
		return st.warn
	case round.DoubleOrWorse:
		return st.bad
	}
	return lipgloss.NewStyle()
}

func renderOutcome(st styles, r round.Round) string {
	o := r.Result()
	switch {
	case len(r.Players) < 2:
		return st.muted.Render("Solo round")
	case len(o.Winners) == 0:
		return st.muted.Render("No shared holes yet")
	case o.Tie:
		names := make([]string, len(o.Winners))
		for i, id := range o.Winners {
			names[i] = r.PlayerName(id)
		}
		return fmt.Sprintf("All square after %d: %s", o.Holes, strings.Join(names, ", "))
	default:
		return st.good.Render(fmt.Sprintf("%s leads by %d after %d", r.PlayerName(o.Winners[0]), o.Margin, o.Holes))
	}
}

func pad(s string, w int) string {
	if lipgloss.Width(s) >= w {
		r := []rune(s)
		if len(r) > w-1 {
			r = r[:w-1]
		}
		return string(r) + " "
	}
	return s + strings.Repeat(" ", w-lipgloss.Width(s))
}
