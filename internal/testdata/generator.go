package testdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jask/golfduel/internal/database/repository"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/service"
)

// Services bundles the services used by Seed.
type Services struct {
	Players *service.PlayerService
	Clubs   *service.ClubService
	Rounds  *service.RoundService
}

// Report counts what Seed created.
type Report struct {
	Players int
	Clubs   int
	Rounds  int
}

const demoClub = "Ridgeview Links"

var (
	demoPlayers = []string{"Alex Morgan", "Sam Rivera"}
	demoPars    = []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 5, 4}
)

// Seed creates two players, one club and rounds finished over the weeks before now.
// Existing demo players and the demo club are reused, so running it twice only adds rounds.
func Seed(ctx context.Context, svc Services, rounds int, seed int64, now time.Time) (Report, error) {
	var rep Report
	rng := rand.New(rand.NewSource(seed))

	ids := make([]string, 0, len(demoPlayers))
	for _, name := range demoPlayers {
		id, created, err := ensurePlayer(ctx, svc.Players, name)
		if err != nil {
			return rep, err
		}
		if created {
			rep.Players++
		}
		ids = append(ids, id)
	}

	club, created, err := ensureClub(ctx, svc.Clubs)
	if err != nil {
		return rep, err
	}
	if created {
		rep.Clubs++
	}

	clock := clockwork.NewFakeClockAt(now.AddDate(0, 0, -7*rounds))
	rs := *svc.Rounds
	rs.Clock = clock
	for i := 0; i < rounds; i++ {
		r, err := rs.Start(ctx, club.ID, ids)
		if err != nil {
			return rep, err
		}
		for hole, par := range club.Pars {
			for _, pid := range ids {
				r, err = r.WithScore(hole+1, pid, strokes(rng, par))
				if err != nil {
					return rep, err
				}
			}
		}
		clock.Advance(4*time.Hour + time.Duration(rng.Intn(60))*time.Minute)
		if _, err := rs.Finish(ctx, r); err != nil {
			return rep, err
		}
		rep.Rounds++
		clock.Advance(7*24*time.Hour - 4*time.Hour)
	}
	return rep, nil
}

// strokes draws a weekend golfer's score: mostly par or bogey, the odd birdie.
func strokes(rng *rand.Rand, par int) int {
	switch n := rng.Intn(10); {
	case n == 0:
		return par - 1
	case n < 5:
		return par
	case n < 8:
		return par + 1
	default:
		return par + 2
	}
}

func ensurePlayer(ctx context.Context, players *service.PlayerService, name string) (string, bool, error) {
	res, err := players.Add(ctx, name, nil)
	if err == nil {
		return res.Player.ID, true, nil
	}
	if !apperrors.IsConflict(err) {
		return "", false, err
	}
	existing, err := players.Players.ByName(ctx, name)
	if err != nil {
		return "", false, err
	}
	if existing == nil {
		return "", false, apperrors.NotFoundError("player not found").WithContext("name", name)
	}
	return existing.ID, false, nil
}

func ensureClub(ctx context.Context, clubs *service.ClubService) (repository.Club, bool, error) {
	c, err := clubs.Add(ctx, demoClub, "Demo County", len(demoPars), demoPars)
	if err == nil {
		return c, true, nil
	}
	if !apperrors.IsConflict(err) {
		return repository.Club{}, false, err
	}
	existing, err := clubs.Clubs.ByName(ctx, demoClub)
	if err != nil {
		return repository.Club{}, false, err
	}
	if existing == nil {
		return repository.Club{}, false, apperrors.NotFoundError("club not found").WithContext("name", demoClub)
	}
	return *existing, false, nil
}
