package round

import (
	"sort"
	"strconv"
)

// Outcome is the stroke-play result over the holes all players have completed.
type Outcome struct {
	Winners []string
	Margin  int
	Tie     bool
	Holes   int
}

// Result compares players on the holes everyone has scored.
// With fewer than two players or no shared holes, Winners is empty.
func (r Round) Result() Outcome {
	if len(r.Players) < 2 {
		return Outcome{}
	}
	totals := make(map[string]int, len(r.Players))
	shared := 0
	for _, h := range r.Holes {
		all := true
		for _, p := range r.Players {
			if _, ok := h.Strokes[p.ID]; !ok {
				all = false
				break
			}
		}
		if !all {
			continue
		}
		shared++
		for _, p := range r.Players {
			totals[p.ID] += h.Strokes[p.ID]
		}
	}
	if shared == 0 {
		return Outcome{}
	}

	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ID)
	}
	sort.SliceStable(ids, func(i, j int) bool { return totals[ids[i]] < totals[ids[j]] })

	best := totals[ids[0]]
	var winners []string
	for _, id := range ids {
		if totals[id] == best {
			winners = append(winners, id)
		}
	}
	out := Outcome{Winners: winners, Holes: shared, Tie: len(winners) > 1}
	if !out.Tie {
		out.Margin = totals[ids[1]] - best
	}
	return out
}

// Standing is one row of a leaderboard.
type Standing struct {
	Player      Player
	Total       int
	ToPar       int
	HolesPlayed int
}

// Leaderboard orders players by to-par, then by holes played (more first), then card order.
func (r Round) Leaderboard() []Standing {
	out := make([]Standing, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, Standing{Player: p, Total: r.Total(p.ID), ToPar: r.ToPar(p.ID), HolesPlayed: r.HolesPlayed(p.ID)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ToPar != out[j].ToPar {
			return out[i].ToPar < out[j].ToPar
		}
		return out[i].HolesPlayed > out[j].HolesPlayed
	})
	return out
}

// ScoreClass buckets a hole score relative to par.
type ScoreClass int

const (
	EagleOrBetter ScoreClass = iota
	Birdie
	ParScore
	Bogey
	DoubleOrWorse
)

func (c ScoreClass) String() string {
	switch c {
	case EagleOrBetter:
		return "eagle+"
	case Birdie:
		return "birdie"
	case ParScore:
		return "par"
	case Bogey:
		return "bogey"
	default:
		return "double+"
	}
}

// Classify returns the bucket for strokes on a hole of par.
func Classify(strokes, par int) ScoreClass {
	switch d := strokes - par; {
	case d <= -2:
		return EagleOrBetter
	case d == -1:
		return Birdie
	case d == 0:
		return ParScore
	case d == 1:
		return Bogey
	default:
		return DoubleOrWorse
	}
}

// FormatToPar renders a to-par number the way golfers write it: E, +3, -2.
func FormatToPar(diff int) string {
	switch {
	case diff == 0:
		return "E"
	case diff > 0:
		return "+" + strconv.Itoa(diff)
	default:
		return strconv.Itoa(diff)
	}
}
