package repository

import "time"

// Player represents a players row.
type Player struct {
	ID        string
	Name      string
	Handicap  *float64
	CreatedAt time.Time
}

// Club represents a clubs row with its hole pars in hole order.
type Club struct {
	ID        string
	Name      string
	Location  string
	Pars      []int
	CreatedAt time.Time
}

// Par is the sum of the club's hole pars.
func (c Club) Par() int {
	total := 0
	for _, p := range c.Pars {
		total += p
	}
	return total
}

// RoundFilters narrows RoundRepo.List.
type RoundFilters struct {
	PlayerID string
	ClubID   string
	Limit    int // 0 = no limit
}
