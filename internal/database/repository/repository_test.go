package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/golfduel/internal/database/dbtest"
	"github.com/jask/golfduel/internal/database/repository"
	"github.com/jask/golfduel/internal/round"
)

func TestPlayerRepoCRUD(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPlayerRepo(dbtest.New(t))

	hcp := 12.4
	require.NoError(t, repo.Upsert(ctx, repository.Player{ID: "p2", Name: "bob"}))
	require.NoError(t, repo.Upsert(ctx, repository.Player{ID: "p1", Name: "Ann", Handicap: &hcp}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ann", list[0].Name, "ordered case-insensitively")
	require.NotNil(t, list[0].Handicap)
	assert.InDelta(t, 12.4, *list[0].Handicap, 0.001)
	assert.False(t, list[0].CreatedAt.IsZero())

	byName, err := repo.ByName(ctx, "BOB")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "p2", byName.ID)

	require.NoError(t, repo.Upsert(ctx, repository.Player{ID: "p2", Name: "Bobby"}))
	got, err := repo.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Bobby", got.Name)

	require.NoError(t, repo.Delete(ctx, "p2"))
	missing, err := repo.Get(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlayerRepoRejectsDuplicateNames(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPlayerRepo(dbtest.New(t))

	require.NoError(t, repo.Upsert(ctx, repository.Player{ID: "p1", Name: "Ann"}))
	require.Error(t, repo.Upsert(ctx, repository.Player{ID: "p2", Name: "ann"}))
}

func TestClubRepoStoresPars(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewClubRepo(dbtest.New(t))

	club := repository.Club{ID: "c1", Name: "Pine Links", Location: "Ballarat", Pars: []int{4, 3, 5}}
	require.NoError(t, repo.Upsert(ctx, club))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []int{4, 3, 5}, got.Pars)
	assert.Equal(t, 12, got.Par())
	assert.Equal(t, "Ballarat", got.Location)

	club.Pars = []int{4, 4, 4, 4}
	require.NoError(t, repo.Upsert(ctx, club))
	require.NoError(t, repo.SetPar(ctx, "c1", 2, 5))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []int{4, 5, 4, 4}, list[0].Pars)

	require.Error(t, repo.SetPar(ctx, "c1", 9, 4))
	require.Error(t, repo.SetPar(ctx, "c1", 1, 7), "par check constraint")

	byName, err := repo.ByName(ctx, "pine links")
	require.NoError(t, err)
	require.NotNil(t, byName)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.Delete(ctx, "c1"))
	got, err = repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func finishedRound(t *testing.T, id string, finished time.Time, scores map[string][]int) round.Round {
	t.Helper()
	course := round.Course{ID: "c1", Name: "Pine Links", Pars: []int{4, 3, 5}}
	r, err := round.New(id, course, []round.Player{{ID: "p1", Name: "Ann"}, {ID: "p2", Name: "Bob"}}, finished.Add(-3*time.Hour))
	require.NoError(t, err)
	for pid, card := range scores {
		for i, s := range card {
			r, err = r.WithScore(i+1, pid, s)
			require.NoError(t, err)
		}
	}
	return r.Finished(finished)
}

func TestRoundRepoSaveAndGet(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	require.NoError(t, repository.NewClubRepo(db).Upsert(ctx, repository.Club{ID: "c1", Name: "Pine Links", Pars: []int{4, 3, 5}}))
	repo := repository.NewRoundRepo(db)

	finished := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	r := finishedRound(t, "r1", finished, map[string][]int{"p1": {4, 3, 6}, "p2": {5, 2}})
	require.NoError(t, repo.Save(ctx, r))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c1", got.ClubID)
	assert.Equal(t, "Pine Links", got.ClubName)
	assert.Equal(t, r.Players, got.Players)
	require.Len(t, got.Holes, 3)
	assert.Equal(t, map[string]int{"p1": 4, "p2": 5}, got.Holes[0].Strokes)
	assert.Equal(t, map[string]int{"p1": 6}, got.Holes[2].Strokes)
	assert.True(t, r.StartedAt.Equal(got.StartedAt))
	require.NotNil(t, got.FinishedAt)
	assert.True(t, finished.Equal(*got.FinishedAt))

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRoundRepoSaveRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	require.NoError(t, repository.NewClubRepo(db).Upsert(ctx, repository.Club{ID: "c1", Name: "Pine Links", Pars: []int{4, 3, 5}}))
	repo := repository.NewRoundRepo(db)

	r := finishedRound(t, "r1", time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC), map[string][]int{"p1": {4, 3}})
	r.Holes[1].Strokes["p1"] = 99
	require.Error(t, repo.Save(ctx, r))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRoundRepoRejectsUnfinished(t *testing.T) {
	repo := repository.NewRoundRepo(dbtest.New(t))
	r, err := round.New("r1", round.Course{ID: "c1", Name: "x", Pars: []int{4}}, []round.Player{{ID: "p1"}}, time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(context.Background(), r), repository.ErrUnfinishedRound)
}

func TestRoundRepoListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	require.NoError(t, repository.NewClubRepo(db).Upsert(ctx, repository.Club{ID: "c1", Name: "Pine Links", Pars: []int{4, 3, 5}}))
	repo := repository.NewRoundRepo(db)

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, finishedRound(t, "old", base, map[string][]int{"p1": {4}})))
	require.NoError(t, repo.Save(ctx, finishedRound(t, "new", base.Add(48*time.Hour), map[string][]int{"p2": {4}})))

	all, err := repo.List(ctx, repository.RoundFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "old", all[1].ID)
	assert.Len(t, all[0].Holes, 3)

	limited, err := repo.List(ctx, repository.RoundFilters{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)

	forAnn, err := repo.List(ctx, repository.RoundFilters{PlayerID: "p1"})
	require.NoError(t, err)
	assert.Len(t, forAnn, 2, "both rounds list Ann on the card")

	none, err := repo.List(ctx, repository.RoundFilters{PlayerID: "p9"})
	require.NoError(t, err)
	assert.Empty(t, none)

	byClub, err := repo.List(ctx, repository.RoundFilters{ClubID: "c1"})
	require.NoError(t, err)
	assert.Len(t, byClub, 2)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRoundRepoDeleteCascadesAndClubDeleteKeepsHistory(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	clubs := repository.NewClubRepo(db)
	require.NoError(t, clubs.Upsert(ctx, repository.Club{ID: "c1", Name: "Pine Links", Pars: []int{4, 3, 5}}))
	repo := repository.NewRoundRepo(db)

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, finishedRound(t, "r1", base, map[string][]int{"p1": {4, 3}})))
	require.NoError(t, repo.Save(ctx, finishedRound(t, "r2", base.Add(time.Hour), map[string][]int{"p1": {5}})))

	require.NoError(t, clubs.Delete(ctx, "c1"))
	kept, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Empty(t, kept.ClubID)
	assert.Equal(t, "Pine Links", kept.ClubName)

	require.NoError(t, repo.Delete(ctx, "r1"))
	var scores int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM hole_scores WHERE round_id = 'r1'`).Scan(&scores))
	assert.Zero(t, scores)
}
