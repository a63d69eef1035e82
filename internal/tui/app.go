package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/golfduel/internal/config"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/logging"
	"github.com/jask/golfduel/internal/prefs"
	"github.com/jask/golfduel/internal/service"
	"github.com/jask/golfduel/internal/shell"
)

const (
	sidebarWidth          = 20
	sidebarCollapsedWidth = 5
)

// Services are the collaborators the pages call.
type Services struct {
	Players *service.PlayerService
	Clubs   *service.ClubService
	Rounds  *service.RoundService
	History *service.HistoryService
	Stats   *service.StatsService
}

// Options configure App. SavePrefs is called when the theme or sidebar changes; nil disables persistence.
type Options struct {
	Config    config.Config
	Prefs     prefs.UI
	SavePrefs func(prefs.UI) error
}

// App is the root bubbletea model. It owns the navigation shell and routes
// collaborator messages into it.
type App struct {
	ctx       context.Context
	svc       Services
	shell     *shell.Shell
	pages     map[shell.View]Page
	active    *activeRoundPage
	roundRev  int
	theme     Theme
	st        styles
	savePrefs func(prefs.UI) error
	help      helpCache

	width, height int
	collapsed     bool
	sidebarFocus  bool
	sidebarCursor int
	showHelp      bool
	status        string
	statusErr     bool
}

func New(ctx context.Context, svc Services, opts Options) *App {
	themeName := opts.Config.UI.Theme
	if opts.Prefs.Theme != "" {
		themeName = opts.Prefs.Theme
	}
	a := &App{
		ctx:       ctx,
		svc:       svc,
		shell:     shell.New(),
		theme:     themeByName(themeName),
		savePrefs: opts.SavePrefs,
		collapsed: opts.Prefs.SidebarCollapsed,
		width:     100,
		height:    30,
	}
	a.st = newStyles(a.theme)

	dateFmt := opts.Config.UI.DateFormat
	if dateFmt == "" {
		dateFmt = "02 Jan 2006"
	}
	holes := opts.Config.Round.DefaultHoles
	if holes == 0 {
		holes = 18
	}
	a.pages = map[shell.View]Page{
		shell.Home:       newHomePage(&a.st),
		shell.Players:    newPlayersPage(ctx, svc.Players, &a.st, dateFmt),
		shell.Clubs:      newClubsPage(ctx, svc.Clubs, &a.st, holes),
		shell.NewRound:   newNewRoundPage(ctx, svc.Clubs, svc.Players, svc.Rounds, &a.st),
		shell.Statistics: newStatsPage(ctx, svc.Stats, &a.st, &a.theme, opts.Config.UI.Locale, dateFmt),
		shell.History:    newHistoryPage(ctx, svc.History, &a.st, dateFmt),
	}
	return a
}

// Shell exposes the navigation state.
func (a *App) Shell() *shell.Shell { return a.shell }

func (a *App) Init() tea.Cmd {
	return a.selectedPage().Init()
}

func (a *App) selectedPage() Page {
	if p, ok := a.pages[a.shell.ActiveView()]; ok {
		return p
	}
	return a.pages[shell.Home]
}

// contentPage is the page the shell currently resolves to.
func (a *App) contentPage() Page {
	c := a.shell.Content()
	if c.Kind == shell.ContentActiveRound && a.active != nil {
		return a.active
	}
	return a.selectedPage()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(m)

	case NavigateMsg:
		a.shell.Navigate(m.View)
		a.sidebarCursor = sidebarIndex(m.View)
		a.showHelp = false
		return a, a.selectedPage().Init()
	case StartRoundMsg:
		a.shell.StartRound(m.Round)
		a.active = newActiveRoundPage(a.ctx, a.svc.Rounds, &a.st, m.Round)
		a.roundRev = 0
		a.sidebarFocus = false
		a.setStatus("round started at "+m.Round.ClubName, false)
		return a, nil
	case UpdateRoundMsg:
		if m.rev > 0 {
			if a.active == nil || m.rev <= a.roundRev {
				return a, nil
			}
			a.roundRev = m.rev
			a.shell.UpdateRound(m.Round)
			return a, nil
		}
		a.shell.UpdateRound(m.Round)
		if a.active != nil {
			a.active.bind(m.Round)
		}
		return a, nil
	case FinishRoundMsg:
		a.shell.FinishRound()
		a.active = nil
		if m.Saved != nil {
			a.setStatus("round saved", false)
		} else {
			a.setStatus("round abandoned", false)
		}
		return a, a.selectedPage().Init()

	case statusMsg:
		a.setStatus(string(m), false)
		return a, nil
	case doneMsg:
		a.setStatus(m.status, false)
		return a, m.reload
	case errMsg:
		a.setStatus(apperrors.AsStructuredError(m.error).UserMessage(), true)
		if apperrors.IsInternal(m.error) {
			logging.WithError(m.error).Error("action failed", "view", string(a.shell.ActiveView()))
		}
		if a.active != nil {
			a.active.Update(m)
		}
		return a, nil
	case prefsSavedMsg:
		if m.err != nil {
			logging.WithError(m.err).Warn("saving preferences failed")
			a.setStatus("could not save preferences", true)
		}
		return a, nil
	}

	// data messages go to every page; each ignores types it does not own
	var cmds []tea.Cmd
	for v, p := range a.pages {
		next, cmd := p.Update(msg)
		a.pages[v] = next
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) setStatus(s string, isErr bool) {
	a.status, a.statusErr = s, isErr
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case m.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(m, keys.Collapse):
		a.collapsed = !a.collapsed
		return a.persistPrefs()
	case key.Matches(m, keys.Focus):
		a.sidebarFocus = !a.sidebarFocus
		return nil
	}

	if a.showHelp {
		if key.Matches(m, keys.Back) || key.Matches(m, keys.Help) || m.String() == "q" {
			a.showHelp = false
		}
		return nil
	}

	page := a.contentPage()
	if !a.sidebarFocus && page.Capturing() {
		next, cmd := page.Update(m)
		a.storePage(next)
		return cmd
	}

	if v, ok := shell.ViewForKey(m.String()); ok {
		return navigate(v)
	}
	switch {
	case key.Matches(m, keys.Quit):
		return tea.Quit
	case key.Matches(m, keys.Help):
		a.showHelp = true
		return nil
	case key.Matches(m, keys.Theme):
		if a.theme.Name == darkTheme.Name {
			a.theme = lightTheme
		} else {
			a.theme = darkTheme
		}
		a.st = newStyles(a.theme)
		a.setStatus(a.theme.Name+" theme", false)
		return a.persistPrefs()
	}

	if a.sidebarFocus {
		return a.handleSidebarKey(m)
	}
	next, cmd := page.Update(m)
	a.storePage(next)
	return cmd
}

func (a *App) storePage(p Page) {
	if ar, ok := p.(*activeRoundPage); ok {
		a.active = ar
		return
	}
	if _, ok := a.pages[a.shell.ActiveView()]; ok {
		a.pages[a.shell.ActiveView()] = p
	}
}

func (a *App) handleSidebarKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, keys.Up):
		if a.sidebarCursor > 0 {
			a.sidebarCursor--
		}
	case key.Matches(m, keys.Down):
		if a.sidebarCursor < len(shell.Views)-1 {
			a.sidebarCursor++
		}
	case key.Matches(m, keys.Enter):
		a.sidebarFocus = false
		return navigate(a.shell.Sidebar()[a.sidebarCursor].View)
	case key.Matches(m, keys.Back):
		a.sidebarFocus = false
	}
	return nil
}

func navigate(v shell.View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{View: v} }
}

func sidebarIndex(v shell.View) int {
	for i, view := range shell.Views {
		if view == v {
			return i
		}
	}
	return 0
}

func (a *App) persistPrefs() tea.Cmd {
	if a.savePrefs == nil {
		return nil
	}
	p := prefs.UI{Theme: a.theme.Name, SidebarCollapsed: a.collapsed}
	save := a.savePrefs
	return func() tea.Msg { return prefsSavedMsg{err: save(p)} }
}

func (a *App) View() string {
	bodyH := max(3, a.height-2)
	side := a.renderSidebar(bodyH)
	contentW := max(20, a.width-lipgloss.Width(side))

	var body string
	if a.showHelp {
		body = a.help.render(contentW-4, a.theme.Name)
	} else {
		body = a.contentPage().View(contentW-4, bodyH)
	}
	content := a.st.content.Width(contentW).Height(bodyH).MaxHeight(bodyH).Render(clip(body, bodyH))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, side, content),
		a.renderStatus(),
		a.renderFooter(),
	)
}

func (a *App) renderSidebar(height int) string {
	entries := a.shell.Sidebar()
	var b strings.Builder
	if a.collapsed {
		b.WriteString(a.st.sidebarTitle.Render("GD"))
		b.WriteString("\n")
		for i, e := range entries {
			b.WriteString(a.entryStyle(e, i).Render(" " + e.Key + " "))
			b.WriteString("\n")
		}
		return a.st.sidebar.Width(sidebarCollapsedWidth).Height(height).Render(strings.TrimRight(b.String(), "\n"))
	}

	b.WriteString(a.st.sidebarTitle.Render("Golf Duel"))
	b.WriteString("\n")
	for i, e := range entries {
		b.WriteString(a.entryStyle(e, i).Width(sidebarWidth - 3).Render(e.Key + " " + e.Label))
		b.WriteString("\n")
	}
	if a.shell.InRound() {
		b.WriteString("\n")
		b.WriteString(a.st.good.Render("● round in play"))
	}
	return a.st.sidebar.Width(sidebarWidth).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) entryStyle(e shell.Entry, i int) lipgloss.Style {
	style := a.st.entry
	if e.Active {
		style = a.st.entryActive
	}
	if a.sidebarFocus && i == a.sidebarCursor {
		style = style.Underline(true)
	}
	return style
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	style := a.st.status
	if a.statusErr {
		style = a.st.statusErr
	}
	return renderBar(style, a.width, msg)
}

func (a *App) renderFooter() string {
	var hints []hint
	switch {
	case a.showHelp:
		hints = []hint{{"esc", "close help"}}
	case a.sidebarFocus:
		hints = []hint{{"↑/↓", "move"}, {"enter", "open"}, {"esc", "back"}}
	default:
		hints = a.contentPage().Hints()
		if !a.contentPage().Capturing() {
			hints = append(hints, hint{"1-6", "go"}, hint{"?", "help"}, hint{"q", "quit"})
		}
	}
	hints = append(hints, hint{keys.Collapse.Help().Key, keys.Collapse.Help().Desc})

	space := a.st.footer.Render(" ")
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, a.st.footerKey.Render(h.key)+space+a.st.footerDesc.Render(h.desc))
	}
	return renderBar(a.st.footer, a.width, strings.Join(parts, a.st.footer.Render("  ")))
}

func renderBar(style lipgloss.Style, width int, text string) string {
	width = max(1, width)
	line := ansi.Truncate(strings.ReplaceAll(text, "\n", " "), width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}
