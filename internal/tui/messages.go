package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/golfduel/internal/round"
	"github.com/jask/golfduel/internal/shell"
)

// NavigateMsg selects a sidebar view.
type NavigateMsg struct{ View shell.View }

// StartRoundMsg hands a freshly laid out card to the shell.
type StartRoundMsg struct{ Round round.Round }

// UpdateRoundMsg replaces the round in progress.
type UpdateRoundMsg struct {
	Round round.Round
	rev   int // set by the scorecard page; older revisions are dropped
}

// FinishRoundMsg clears the round in progress. Saved is nil when the round was abandoned.
type FinishRoundMsg struct{ Saved *round.Round }

type statusMsg string

type errMsg struct{ error }

type prefsSavedMsg struct{ err error }

// doneMsg reports a completed write along with the command that reloads the page.
type doneMsg struct {
	status string
	reload tea.Cmd
}

func done(reload tea.Cmd, status string) tea.Msg {
	return doneMsg{status: status, reload: reload}
}
