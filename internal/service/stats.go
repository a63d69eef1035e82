package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jask/golfduel/internal/database/repository"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/round"
)

const trendLength = 10

// PlayerStats aggregates one player's finished rounds.
type PlayerStats struct {
	PlayerID     string
	Name         string
	Rounds       int
	HolesPlayed  int
	Strokes      int
	ToPar        int // summed over played holes
	BestTotal    int // lowest total over rounds where every hole was played; 0 if none
	BestPar      int // par of the round that produced BestTotal
	Wins         int
	Losses       int
	Ties         int
	Distribution map[round.ScoreClass]int
	Trend        []TrendPoint // oldest first, at most 10
}

// TrendPoint is one round's to-par on the day it finished.
type TrendPoint struct {
	At    time.Time
	ToPar int
}

// AveragePerHole is strokes per played hole.
func (p PlayerStats) AveragePerHole() float64 {
	if p.HolesPlayed == 0 {
		return 0
	}
	return float64(p.Strokes) / float64(p.HolesPlayed)
}

// AverageToPar18 is the per-hole to-par scaled to an 18-hole round.
func (p PlayerStats) AverageToPar18() float64 {
	if p.HolesPlayed == 0 {
		return 0
	}
	return float64(p.ToPar) / float64(p.HolesPlayed) * 18
}

// StatsService computes statistics from round history.
type StatsService struct {
	Rounds  *repository.RoundRepo
	Players *repository.PlayerRepo
}

// Compute returns stats for every roster player plus anyone who appears only on old cards.
// Players with rounds come first, ordered by average to par.
func (s *StatsService) Compute(ctx context.Context) ([]PlayerStats, error) {
	roster, err := s.Players.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("list players", err)
	}
	rounds, err := s.Rounds.List(ctx, repository.RoundFilters{})
	if err != nil {
		return nil, apperrors.InternalError("list rounds", err)
	}

	byID := map[string]*PlayerStats{}
	order := []string{}
	get := func(id, name string) *PlayerStats {
		if ps, ok := byID[id]; ok {
			return ps
		}
		ps := &PlayerStats{PlayerID: id, Name: name, Distribution: map[round.ScoreClass]int{}}
		byID[id] = ps
		order = append(order, id)
		return ps
	}
	for _, p := range roster {
		get(p.ID, p.Name)
	}

	// repository returns newest first; walk oldest first so Trend reads left to right
	for i := len(rounds) - 1; i >= 0; i-- {
		r := rounds[i]
		outcome := r.Result()
		for _, p := range r.Players {
			played := r.HolesPlayed(p.ID)
			if played == 0 {
				continue
			}
			ps := get(p.ID, p.Name)
			ps.Rounds++
			ps.HolesPlayed += played
			ps.Strokes += r.Total(p.ID)
			for _, h := range r.Holes {
				if st, ok := h.Strokes[p.ID]; ok {
					ps.Distribution[round.Classify(st, h.Par)]++
					ps.ToPar += st - h.Par
				}
			}
			if played == len(r.Holes) {
				total := r.Total(p.ID)
				if ps.BestTotal == 0 || total-r.Par() < ps.BestTotal-ps.BestPar {
					ps.BestTotal, ps.BestPar = total, r.Par()
				}
			}
			at := r.StartedAt
			if r.FinishedAt != nil {
				at = *r.FinishedAt
			}
			ps.Trend = append(ps.Trend, TrendPoint{At: at, ToPar: r.ToPar(p.ID)})
			if len(ps.Trend) > trendLength {
				ps.Trend = ps.Trend[len(ps.Trend)-trendLength:]
			}
			tallyOutcome(ps, p.ID, outcome)
		}
	}

	out := make([]PlayerStats, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Rounds == 0) != (b.Rounds == 0) {
			return a.Rounds > 0
		}
		return a.AverageToPar18() < b.AverageToPar18()
	})
	return out, nil
}

func tallyOutcome(ps *PlayerStats, id string, o round.Outcome) {
	if len(o.Winners) == 0 {
		return
	}
	won := false
	for _, w := range o.Winners {
		if w == id {
			won = true
			break
		}
	}
	switch {
	case won && o.Tie:
		ps.Ties++
	case won:
		ps.Wins++
	default:
		ps.Losses++
	}
}

// NumberFormat renders statistics for a locale.
type NumberFormat struct {
	p *message.Printer
}

// NewNumberFormat falls back to English for unknown locale tags.
func NewNumberFormat(locale string) NumberFormat {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return NumberFormat{p: message.NewPrinter(tag)}
}

// Decimal formats f with one decimal place.
func (f NumberFormat) Decimal(v float64) string {
	return f.p.Sprintf("%.1f", v)
}

// SignedDecimal formats a to-par average: +3.5, -1.0, E for zero.
func (f NumberFormat) SignedDecimal(v float64) string {
	rounded := f.p.Sprintf("%.1f", v)
	zero := f.p.Sprintf("%.1f", 0.0)
	switch {
	case rounded == zero || rounded == "-"+zero:
		return "E"
	case v > 0:
		return "+" + rounded
	default:
		return rounded
	}
}

// Count formats an integer with grouping separators.
func (f NumberFormat) Count(n int) string {
	return f.p.Sprintf("%d", n)
}
