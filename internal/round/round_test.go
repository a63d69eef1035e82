package round

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jask/golfduel/internal/errors"
)

var (
	ann = Player{ID: "p-ann", Name: "Ann"}
	bob = Player{ID: "p-bob", Name: "Bob"}
	tee = time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)
)

func threeHoleCourse() Course {
	return Course{ID: "c1", Name: "Pine Links", Pars: []int{4, 3, 5}}
}

func newDuel(t *testing.T) Round {
	t.Helper()
	r, err := New("r1", threeHoleCourse(), []Player{ann, bob}, tee)
	require.NoError(t, err)
	return r
}

func TestNewLaysOutCard(t *testing.T) {
	r := newDuel(t)

	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "Pine Links", r.ClubName)
	require.Len(t, r.Holes, 3)
	assert.Equal(t, 1, r.Holes[0].Number)
	assert.Equal(t, 5, r.Holes[2].Par)
	assert.Equal(t, 12, r.Par())
	assert.Equal(t, tee, r.StartedAt)
	assert.Nil(t, r.FinishedAt)
	assert.Equal(t, 1, r.NextHole())
}

func TestNewRejectsBadInput(t *testing.T) {
	cases := map[string]struct {
		course  Course
		players []Player
	}{
		"no players":   {threeHoleCourse(), nil},
		"too many":     {threeHoleCourse(), []Player{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}},
		"no holes":     {Course{ID: "c"}, []Player{ann}},
		"19 holes":     {Course{ID: "c", Pars: make([]int, 19)}, []Player{ann}},
		"duplicate":    {threeHoleCourse(), []Player{ann, ann}},
		"blank player": {threeHoleCourse(), []Player{{Name: "nobody"}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New("r", tc.course, tc.players, tee)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestWithScoreReturnsNewSnapshot(t *testing.T) {
	r := newDuel(t)

	next, err := r.WithScore(1, ann.ID, 4)
	require.NoError(t, err)

	_, recorded := r.Score(1, ann.ID)
	assert.False(t, recorded, "original card must not change")
	s, ok := next.Score(1, ann.ID)
	require.True(t, ok)
	assert.Equal(t, 4, s)
}

func TestWithScoreValidates(t *testing.T) {
	r := newDuel(t)

	_, err := r.WithScore(0, ann.ID, 4)
	assert.True(t, apperrors.IsValidation(err))
	_, err = r.WithScore(4, ann.ID, 4)
	assert.True(t, apperrors.IsValidation(err))
	_, err = r.WithScore(1, "stranger", 4)
	assert.True(t, apperrors.IsValidation(err))
	_, err = r.WithScore(1, ann.ID, 0)
	assert.True(t, apperrors.IsValidation(err))
	_, err = r.WithScore(1, ann.ID, 21)
	assert.True(t, apperrors.IsValidation(err))
}

func TestWithoutScore(t *testing.T) {
	r := newDuel(t)
	r, err := r.WithScore(2, bob.ID, 3)
	require.NoError(t, err)

	cleared, err := r.WithoutScore(2, bob.ID)
	require.NoError(t, err)
	_, ok := cleared.Score(2, bob.ID)
	assert.False(t, ok)
	_, ok = r.Score(2, bob.ID)
	assert.True(t, ok)
}

func score(t *testing.T, r Round, cards map[string][]int) Round {
	t.Helper()
	for pid, strokes := range cards {
		for i, s := range strokes {
			var err error
			r, err = r.WithScore(i+1, pid, s)
			require.NoError(t, err)
		}
	}
	return r
}

func TestTotalsAndToPar(t *testing.T) {
	r := score(t, newDuel(t), map[string][]int{
		ann.ID: {4, 2, 6},
		bob.ID: {5, 3},
	})

	assert.Equal(t, map[string]int{ann.ID: 12, bob.ID: 8}, r.Totals())
	assert.Equal(t, 0, r.ToPar(ann.ID))
	assert.Equal(t, 1, r.ToPar(bob.ID))
	assert.Equal(t, 3, r.HolesPlayed(ann.ID))
	assert.Equal(t, 2, r.HolesPlayed(bob.ID))
	assert.Equal(t, 5, r.ScoreCount())
	assert.False(t, r.Complete())
	assert.Equal(t, 3, r.NextHole())
}

func TestResultUsesSharedHolesOnly(t *testing.T) {
	r := score(t, newDuel(t), map[string][]int{
		ann.ID: {4, 4, 9},
		bob.ID: {5, 4},
	})

	out := r.Result()
	assert.Equal(t, []string{ann.ID}, out.Winners)
	assert.Equal(t, 1, out.Margin)
	assert.Equal(t, 2, out.Holes)
	assert.False(t, out.Tie)
}

func TestResultTie(t *testing.T) {
	r := score(t, newDuel(t), map[string][]int{
		ann.ID: {4, 3, 5},
		bob.ID: {3, 4, 5},
	})

	out := r.Result()
	assert.True(t, r.Complete())
	assert.True(t, out.Tie)
	assert.ElementsMatch(t, []string{ann.ID, bob.ID}, out.Winners)
	assert.Zero(t, out.Margin)
	assert.Zero(t, r.NextHole())
}

func TestResultNeedsTwoPlayersAndScores(t *testing.T) {
	solo, err := New("s", threeHoleCourse(), []Player{ann}, tee)
	require.NoError(t, err)
	assert.Empty(t, solo.Result().Winners)
	assert.Empty(t, newDuel(t).Result().Winners)
}

func TestLeaderboardOrdering(t *testing.T) {
	r := score(t, newDuel(t), map[string][]int{
		ann.ID: {5},
		bob.ID: {4, 3},
	})

	board := r.Leaderboard()
	require.Len(t, board, 2)
	assert.Equal(t, bob.ID, board[0].Player.ID)
	assert.Equal(t, 0, board[0].ToPar)
	assert.Equal(t, 1, board[1].ToPar)
}

func TestFinishedStampsCopy(t *testing.T) {
	r := newDuel(t)
	done := r.Finished(tee.Add(4 * time.Hour))

	require.NotNil(t, done.FinishedAt)
	assert.Nil(t, r.FinishedAt)
	assert.Equal(t, tee.Add(4*time.Hour), *done.FinishedAt)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, EagleOrBetter, Classify(1, 4))
	assert.Equal(t, EagleOrBetter, Classify(3, 5))
	assert.Equal(t, Birdie, Classify(3, 4))
	assert.Equal(t, ParScore, Classify(4, 4))
	assert.Equal(t, Bogey, Classify(5, 4))
	assert.Equal(t, DoubleOrWorse, Classify(8, 4))
	assert.Equal(t, "birdie", Birdie.String())
	assert.Equal(t, "double+", DoubleOrWorse.String())
}

func TestFormatToPar(t *testing.T) {
	assert.Equal(t, "E", FormatToPar(0))
	assert.Equal(t, "+3", FormatToPar(3))
	assert.Equal(t, "-2", FormatToPar(-2))
}

func TestPlayerName(t *testing.T) {
	r := newDuel(t)
	assert.Equal(t, "Bob", r.PlayerName(bob.ID))
	assert.Equal(t, "ghost", r.PlayerName("ghost"))
}
