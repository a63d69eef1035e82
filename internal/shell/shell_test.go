package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/golfduel/internal/round"
)

func holesRound(id string, scores ...int) round.Round {
	r := round.Round{ID: id, Players: []round.Player{{ID: "p1", Name: "Ann"}}}
	for i, s := range scores {
		r.Holes = append(r.Holes, round.Hole{Number: i + 1, Par: 4, Strokes: map[string]int{"p1": s}})
	}
	return r
}

func TestFreshShellShowsHome(t *testing.T) {
	s := New()

	assert.Equal(t, Home, s.ActiveView())
	assert.False(t, s.InRound())
	assert.Equal(t, ContentHome, s.Content().Kind)
	assert.Nil(t, s.Content().Round)

	var zero Shell
	assert.Equal(t, Home, zero.ActiveView())
	assert.Equal(t, ContentHome, zero.Content().Kind)
}

func TestNavigateMapsEveryView(t *testing.T) {
	want := map[View]ContentKind{
		Home:       ContentHome,
		Players:    ContentPlayers,
		Clubs:      ContentClubs,
		NewRound:   ContentNewRound,
		Statistics: ContentStatistics,
		History:    ContentHistory,
	}
	require.Len(t, want, len(Views))
	for _, v := range Views {
		s := New()
		s.Navigate(v)
		assert.Equal(t, want[v], s.Content().Kind, "view %s", v)
		assert.Equal(t, v, s.ActiveView())
	}
}

func TestUnknownViewFallsBackToHome(t *testing.T) {
	s := New()
	s.Navigate(View("scorecards"))

	assert.Equal(t, ContentHome, s.Content().Kind)
	assert.Equal(t, View("scorecards"), s.ActiveView())
	assert.False(t, View("scorecards").Known())
	for _, e := range s.Sidebar() {
		assert.False(t, e.Active, "no entry should highlight for %s", e.View)
	}
}

func TestStartRoundOverridesEveryView(t *testing.T) {
	for _, v := range append(Views, View("bogus")) {
		s := New()
		s.Navigate(v)
		r := holesRound("r1")
		s.StartRound(r)

		c := s.Content()
		require.Equal(t, ContentActiveRound, c.Kind, "view %s", v)
		require.NotNil(t, c.Round)
		assert.Equal(t, r, *c.Round)
		assert.Equal(t, v, s.ActiveView(), "selector keeps its own value")
	}
}

func TestUpdateRoundReplacesWholesale(t *testing.T) {
	s := New()
	s.StartRound(round.Round{ID: "r1", ClubName: "Pine Links", Holes: []round.Hole{{Number: 1, Par: 4}}})

	r2 := round.Round{ID: "r2"}
	s.UpdateRound(r2)

	got, ok := s.CurrentRound()
	require.True(t, ok)
	assert.Equal(t, r2, got)
	assert.Empty(t, got.ClubName, "fields of the old record must not survive")
	assert.Empty(t, got.Holes)
}

func TestNavigateDuringRoundKeepsRound(t *testing.T) {
	s := New()
	s.StartRound(holesRound("r1"))
	s.Navigate(History)

	assert.Equal(t, ContentActiveRound, s.Content().Kind)
	s.FinishRound()
	assert.Equal(t, ContentHistory, s.Content().Kind)
}

func TestFinishRoundRevealsLastNavigation(t *testing.T) {
	s := New()
	s.StartRound(holesRound("r1"))
	s.UpdateRound(holesRound("r1", 4))
	s.FinishRound()

	_, ok := s.CurrentRound()
	assert.False(t, ok)
	assert.Equal(t, ContentHome, s.Content().Kind)
}

func TestFinishWithoutRoundIsHarmless(t *testing.T) {
	s := New()
	s.Navigate(Clubs)
	s.FinishRound()
	assert.Equal(t, ContentClubs, s.Content().Kind)
}

func TestScenarioStartFromDashboard(t *testing.T) {
	s := New()
	require.Equal(t, ContentHome, s.Content().Kind)

	actions := DashboardActions()
	require.Equal(t, "Start New Round", actions[0].Label)
	s.Navigate(actions[0].View)
	require.Equal(t, ContentNewRound, s.Content().Kind)

	empty := round.Round{Holes: []round.Hole{}}
	s.StartRound(empty)
	c := s.Content()
	require.Equal(t, ContentActiveRound, c.Kind)
	assert.Empty(t, c.Round.Holes)

	played := round.Round{Holes: []round.Hole{{Number: 1, Strokes: map[string]int{"p1": 4}}}}
	s.UpdateRound(played)
	c = s.Content()
	require.Equal(t, ContentActiveRound, c.Kind)
	assert.Equal(t, played, *c.Round)

	s.FinishRound()
	assert.Equal(t, ContentNewRound, s.Content().Kind)
}

func TestScenarioNeverNavigatedReturnsHome(t *testing.T) {
	s := New()
	s.StartRound(round.Round{Holes: []round.Hole{}})
	s.UpdateRound(round.Round{Holes: []round.Hole{{Number: 1, Strokes: map[string]int{"p1": 4}}}})
	s.FinishRound()
	assert.Equal(t, ContentHome, s.Content().Kind)
}

func TestScenarioPlayersSurvivesRound(t *testing.T) {
	s := New()
	s.Navigate(Players)
	s.StartRound(holesRound("r1"))
	assert.Equal(t, ContentActiveRound, s.Content().Kind)
	s.FinishRound()
	assert.Equal(t, ContentPlayers, s.Content().Kind)
	assert.Equal(t, Players, s.ActiveView())
}

func TestSidebarTracksSelectorNotContent(t *testing.T) {
	s := New()
	s.Navigate(Statistics)
	s.StartRound(holesRound("r1"))

	var active []View
	for _, e := range s.Sidebar() {
		if e.Active {
			active = append(active, e.View)
		}
	}
	assert.Equal(t, []View{Statistics}, active)
}

func TestSidebarEntries(t *testing.T) {
	entries := New().Sidebar()
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{"Home", "New Round", "Players", "Clubs", "Statistics", "History"}, labels)
	assert.True(t, entries[0].Active)

	// returned slice is a copy
	entries[0].Label = "changed"
	assert.Equal(t, "Home", New().Sidebar()[0].Label)
}

func TestViewForKey(t *testing.T) {
	v, ok := ViewForKey("4")
	require.True(t, ok)
	assert.Equal(t, Clubs, v)

	_, ok = ViewForKey("9")
	assert.False(t, ok)
}

func TestContentRoundIsACopy(t *testing.T) {
	s := New()
	s.StartRound(round.Round{ID: "r1"})
	c := s.Content()
	c.Round.ID = "mutated"

	got, _ := s.CurrentRound()
	assert.Equal(t, "r1", got.ID)
}

func TestContentKindString(t *testing.T) {
	assert.Equal(t, "active-round", ContentActiveRound.String())
	assert.Equal(t, "home", ContentHome.String())
	assert.Equal(t, "new-round", ContentNewRound.String())
}
