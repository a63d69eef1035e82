// Package round models a single golf round as an immutable scorecard.
//
// Every mutating operation returns a new Round and leaves the receiver untouched,
// so a caller can hand the result to the shell as a complete replacement snapshot.
package round

import (
	"slices"
	"strings"
	"time"

	apperrors "github.com/jask/golfduel/internal/errors"
)

const (
	MaxPlayers = 4
	MaxHoles   = 18
	MinStrokes = 1
	MaxStrokes = 20
)

// Player is a participant as recorded on the card at tee-off.
type Player struct {
	ID   string
	Name string
}

// Hole holds the par and each player's strokes. Missing keys mean not yet played.
type Hole struct {
	Number  int
	Par     int
	Strokes map[string]int
}

// Round is a scorecard for one club and a fixed set of players.
type Round struct {
	ID         string
	ClubID     string
	ClubName   string
	Players    []Player
	Holes      []Hole
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Course is the subset of a club needed to lay out a card.
type Course struct {
	ID   string
	Name string
	Pars []int
}

// New lays out an empty card for course and players.
func New(id string, course Course, players []Player, startedAt time.Time) (Round, error) {
	if len(players) == 0 {
		return Round{}, apperrors.ValidationError("select at least one player")
	}
	if len(players) > MaxPlayers {
		return Round{}, apperrors.ValidationError("a round allows at most 4 players")
	}
	if len(course.Pars) == 0 || len(course.Pars) > MaxHoles {
		return Round{}, apperrors.ValidationError("club must have between 1 and 18 holes").
			WithContext("club_id", course.ID)
	}
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if strings.TrimSpace(p.ID) == "" {
			return Round{}, apperrors.ValidationError("player id is required")
		}
		if _, dup := seen[p.ID]; dup {
			return Round{}, apperrors.ValidationError("player selected twice").WithContext("player_id", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	holes := make([]Hole, len(course.Pars))
	for i, par := range course.Pars {
		holes[i] = Hole{Number: i + 1, Par: par, Strokes: map[string]int{}}
	}
	return Round{
		ID:        id,
		ClubID:    course.ID,
		ClubName:  course.Name,
		Players:   slices.Clone(players),
		Holes:     holes,
		StartedAt: startedAt,
	}, nil
}

// Clone returns a deep copy.
func (r Round) Clone() Round {
	out := r
	out.Players = slices.Clone(r.Players)
	out.Holes = make([]Hole, len(r.Holes))
	for i, h := range r.Holes {
		out.Holes[i] = Hole{Number: h.Number, Par: h.Par, Strokes: make(map[string]int, len(h.Strokes))}
		for pid, s := range h.Strokes {
			out.Holes[i].Strokes[pid] = s
		}
	}
	if r.FinishedAt != nil {
		t := *r.FinishedAt
		out.FinishedAt = &t
	}
	return out
}

// WithScore returns a copy of r with strokes recorded for player on hole (1-based).
func (r Round) WithScore(hole int, playerID string, strokes int) (Round, error) {
	if err := r.checkTarget(hole, playerID); err != nil {
		return r, err
	}
	if strokes < MinStrokes || strokes > MaxStrokes {
		return r, apperrors.ValidationError("strokes must be between 1 and 20").WithContext("strokes", strokes)
	}
	out := r.Clone()
	out.Holes[hole-1].Strokes[playerID] = strokes
	return out, nil
}

// WithoutScore returns a copy of r with player's score on hole cleared.
func (r Round) WithoutScore(hole int, playerID string) (Round, error) {
	if err := r.checkTarget(hole, playerID); err != nil {
		return r, err
	}
	out := r.Clone()
	delete(out.Holes[hole-1].Strokes, playerID)
	return out, nil
}

// Finished returns a copy stamped with the finish time.
func (r Round) Finished(at time.Time) Round {
	out := r.Clone()
	out.FinishedAt = &at
	return out
}

func (r Round) checkTarget(hole int, playerID string) error {
	if hole < 1 || hole > len(r.Holes) {
		return apperrors.ValidationError("no such hole").WithContext("hole", hole)
	}
	if !r.HasPlayer(playerID) {
		return apperrors.ValidationError("player is not in this round").WithContext("player_id", playerID)
	}
	return nil
}

// HasPlayer reports whether playerID is on the card.
func (r Round) HasPlayer(playerID string) bool {
	for _, p := range r.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// Score returns the strokes for player on hole and whether they were recorded.
func (r Round) Score(hole int, playerID string) (int, bool) {
	if hole < 1 || hole > len(r.Holes) {
		return 0, false
	}
	s, ok := r.Holes[hole-1].Strokes[playerID]
	return s, ok
}

// Par is the sum of all hole pars.
func (r Round) Par() int {
	total := 0
	for _, h := range r.Holes {
		total += h.Par
	}
	return total
}

// Total is the sum of player's recorded strokes.
func (r Round) Total(playerID string) int {
	total := 0
	for _, h := range r.Holes {
		total += h.Strokes[playerID]
	}
	return total
}

// Totals maps every player to their stroke total.
func (r Round) Totals() map[string]int {
	out := make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		out[p.ID] = r.Total(p.ID)
	}
	return out
}

// ToPar is strokes minus par over the holes player has completed.
func (r Round) ToPar(playerID string) int {
	diff := 0
	for _, h := range r.Holes {
		if s, ok := h.Strokes[playerID]; ok {
			diff += s - h.Par
		}
	}
	return diff
}

// HolesPlayed counts holes with a score for player.
func (r Round) HolesPlayed(playerID string) int {
	n := 0
	for _, h := range r.Holes {
		if _, ok := h.Strokes[playerID]; ok {
			n++
		}
	}
	return n
}

// ScoreCount is the number of recorded scores across all players.
func (r Round) ScoreCount() int {
	n := 0
	for _, h := range r.Holes {
		n += len(h.Strokes)
	}
	return n
}

// Complete reports whether every player has a score on every hole.
func (r Round) Complete() bool {
	if len(r.Holes) == 0 || len(r.Players) == 0 {
		return false
	}
	return r.ScoreCount() == len(r.Holes)*len(r.Players)
}

// NextHole is the first hole not yet completed by every player, or 0 when the card is full.
func (r Round) NextHole() int {
	for _, h := range r.Holes {
		for _, p := range r.Players {
			if _, ok := h.Strokes[p.ID]; !ok {
				return h.Number
			}
		}
	}
	return 0
}

// PlayerName resolves a player id to the name on the card.
func (r Round) PlayerName(playerID string) string {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p.Name
		}
	}
	return playerID
}
