package shell

// Entry is one sidebar navigation item.
type Entry struct {
	View   View
	Label  string
	Key    string
	Active bool
}

var entries = []Entry{
	{View: Home, Label: "Home", Key: "1"},
	{View: NewRound, Label: "New Round", Key: "2"},
	{View: Players, Label: "Players", Key: "3"},
	{View: Clubs, Label: "Clubs", Key: "4"},
	{View: Statistics, Label: "Statistics", Key: "5"},
	{View: History, Label: "History", Key: "6"},
}

// Sidebar returns the navigation entries with Active set by comparing against the
// selected view. A round in progress does not affect highlighting.
func (s *Shell) Sidebar() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].Active = out[i].View == s.view || (s.view == "" && out[i].View == Home)
	}
	return out
}

// ViewForKey maps a sidebar shortcut to its view.
func ViewForKey(key string) (View, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.View, true
		}
	}
	return "", false
}

// Action is a home dashboard button.
type Action struct {
	Label   string
	View    View
	Primary bool
}

var dashboard = []Action{
	{Label: "Start New Round", View: NewRound, Primary: true},
	{Label: "Manage Players", View: Players},
	{Label: "Manage Clubs", View: Clubs},
	{Label: "View Statistics", View: Statistics},
}

// DashboardActions returns the home dashboard buttons in display order.
func DashboardActions() []Action {
	out := make([]Action, len(dashboard))
	copy(out, dashboard)
	return out
}
