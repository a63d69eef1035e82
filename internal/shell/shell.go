// Package shell owns the application's top-level navigation state: which feature
// view is selected and which round, if any, is currently being played.
//
// A round in progress always takes over the content area. The selected view is
// kept underneath and reappears once the round is finished. Sidebar highlighting
// follows the selected view even while a round is displayed.
package shell

import "github.com/jask/golfduel/internal/round"

// View names a screen reachable from the sidebar.
type View string

const (
	Home       View = "home"
	Players    View = "players"
	Clubs      View = "clubs"
	NewRound   View = "new-round"
	Statistics View = "statistics"
	History    View = "history"
)

// Views lists every selectable view in sidebar order.
var Views = []View{Home, NewRound, Players, Clubs, Statistics, History}

// Known reports whether v is one of the fixed views.
func (v View) Known() bool {
	for _, known := range Views {
		if v == known {
			return true
		}
	}
	return false
}

// ContentKind identifies what the main area renders.
type ContentKind int

const (
	ContentHome ContentKind = iota
	ContentPlayers
	ContentClubs
	ContentNewRound
	ContentStatistics
	ContentHistory
	ContentActiveRound
)

func (k ContentKind) String() string {
	switch k {
	case ContentPlayers:
		return "players"
	case ContentClubs:
		return "clubs"
	case ContentNewRound:
		return "new-round"
	case ContentStatistics:
		return "statistics"
	case ContentHistory:
		return "history"
	case ContentActiveRound:
		return "active-round"
	default:
		return "home"
	}
}

// Content is the resolved main-area selection. Round is set only for ContentActiveRound.
type Content struct {
	Kind  ContentKind
	Round *round.Round
}

// Shell holds the selected view and the optional round in progress.
// The zero value is ready to use and starts on Home.
type Shell struct {
	view    View
	current *round.Round
}

// New returns a shell on the home view with no round in progress.
func New() *Shell {
	return &Shell{view: Home}
}

// Navigate selects v. The round in progress, if any, is left alone.
func (s *Shell) Navigate(v View) {
	s.view = v
}

// StartRound makes r the round in progress.
func (s *Shell) StartRound(r round.Round) {
	s.current = &r
}

// UpdateRound replaces the round in progress with r. Nothing from the previous
// snapshot is carried over.
func (s *Shell) UpdateRound(r round.Round) {
	s.current = &r
}

// FinishRound clears the round in progress.
func (s *Shell) FinishRound() {
	s.current = nil
}

// ActiveView is the selected view. An empty selector reads as Home.
func (s *Shell) ActiveView() View {
	if s.view == "" {
		return Home
	}
	return s.view
}

// CurrentRound returns the round in progress.
func (s *Shell) CurrentRound() (round.Round, bool) {
	if s.current == nil {
		return round.Round{}, false
	}
	return *s.current, true
}

// InRound reports whether a round is in progress.
func (s *Shell) InRound() bool {
	return s.current != nil
}

// Content resolves what the main area shows. A round in progress wins over the
// selected view; unknown views fall back to the home dashboard.
func (s *Shell) Content() Content {
	if s.current != nil {
		r := *s.current
		return Content{Kind: ContentActiveRound, Round: &r}
	}
	switch s.view {
	case Players:
		return Content{Kind: ContentPlayers}
	case Clubs:
		return Content{Kind: ContentClubs}
	case NewRound:
		return Content{Kind: ContentNewRound}
	case Statistics:
		return Content{Kind: ContentStatistics}
	case History:
		return Content{Kind: ContentHistory}
	default:
		return Content{Kind: ContentHome}
	}
}
