package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/golfduel/internal/round"
	"github.com/jask/golfduel/internal/service"
)

const trendChartHeight = 8

type statsMsg []service.PlayerStats

type statsPage struct {
	ctx     context.Context
	svc     *service.StatsService
	st      *styles
	theme   *Theme
	nf      service.NumberFormat
	dateFmt string
	stats   []service.PlayerStats
	table   table.Model
}

func newStatsPage(ctx context.Context, svc *service.StatsService, st *styles, theme *Theme, locale, dateFmt string) *statsPage {
	cols := []table.Column{
		{Title: "Player", Width: 18},
		{Title: "Rounds", Width: 7},
		{Title: "Per hole", Width: 9},
		{Title: "To par/18", Width: 10},
		{Title: "Best", Width: 8},
		{Title: "W-L-T", Width: 9},
	}
	return &statsPage{
		ctx: ctx, svc: svc, st: st, theme: theme,
		nf:      service.NewNumberFormat(locale),
		dateFmt: dateFmt,
		table:   newTable(cols, *st),
	}
}

func (p *statsPage) Init() tea.Cmd {
	return func() tea.Msg {
		list, err := p.svc.Compute(p.ctx)
		if err != nil {
			return errMsg{err}
		}
		return statsMsg(list)
	}
}

func (p *statsPage) Capturing() bool { return false }

func (p *statsPage) Hints() []hint {
	return []hint{{"↑/↓", "player"}}
}

func (p *statsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch m := msg.(type) {
	case statsMsg:
		p.stats = m
		rows := make([]table.Row, 0, len(m))
		for _, s := range m {
			rows = append(rows, p.row(s))
		}
		p.table.SetRows(rows)
		if p.table.Cursor() >= len(rows) {
			p.table.SetCursor(max(0, len(rows)-1))
		}
	case tea.KeyMsg:
		var cmd tea.Cmd
		p.table, cmd = p.table.Update(m)
		return p, cmd
	}
	return p, nil
}

func (p *statsPage) row(s service.PlayerStats) table.Row {
	if s.Rounds == 0 {
		return table.Row{s.Name, "0", "-", "-", "-", "-"}
	}
	best := "-"
	if s.BestTotal > 0 {
		best = fmt.Sprintf("%d (%s)", s.BestTotal, round.FormatToPar(s.BestTotal-s.BestPar))
	}
	return table.Row{
		s.Name,
		p.nf.Count(s.Rounds),
		p.nf.Decimal(s.AveragePerHole()),
		p.nf.SignedDecimal(s.AverageToPar18()),
		best,
		fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.Ties),
	}
}

func (p *statsPage) View(width, height int) string {
	var b strings.Builder
	b.WriteString(p.st.title.Render("Statistics"))
	b.WriteString("\n\n")
	if len(p.stats) == 0 {
		b.WriteString(p.st.muted.Render("No players yet."))
		return clip(b.String(), height)
	}

	detail := ""
	if i := p.table.Cursor(); i >= 0 && i < len(p.stats) {
		detail = p.renderDetail(p.stats[i], width)
	}
	used := strings.Count(b.String(), "\n") + strings.Count(detail, "\n") + 3
	sizeTable(&p.table, width, min(len(p.stats)+3, height-used))
	b.WriteString(p.table.View())
	if detail != "" {
		b.WriteString("\n\n" + detail)
	}
	return clip(b.String(), height)
}

func (p *statsPage) renderDetail(s service.PlayerStats, width int) string {
	if s.Rounds == 0 {
		return p.st.muted.Render(s.Name + " has no finished rounds.")
	}
	var b strings.Builder
	b.WriteString(p.st.accent.Render(s.Name))
	b.WriteString(p.st.muted.Render(fmt.Sprintf("  %s holes, %s strokes", p.nf.Count(s.HolesPlayed), p.nf.Count(s.Strokes))))
	b.WriteString("\n")

	classes := []round.ScoreClass{round.EagleOrBetter, round.Birdie, round.ParScore, round.Bogey, round.DoubleOrWorse}
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		parts = append(parts, scoreStyle(*p.st, c).Render(fmt.Sprintf("%s %d", c, s.Distribution[c])))
	}
	b.WriteString(strings.Join(parts, "  "))

	if len(s.Trend) >= 2 {
		b.WriteString("\n\n")
		b.WriteString(p.st.muted.Render("To par, last rounds"))
		b.WriteString("\n")
		b.WriteString(p.renderTrend(s.Trend, width))
	}
	return b.String()
}

func (p *statsPage) renderTrend(points []service.TrendPoint, width int) string {
	width = max(20, min(width, 72))
	lo, hi := points[0].ToPar, points[0].ToPar
	for _, pt := range points {
		lo, hi = min(lo, pt.ToPar), max(hi, pt.ToPar)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	start, end := points[0].At, points[len(points)-1].At
	if !end.After(start) {
		end = start.Add(24 * time.Hour)
	}

	chart := tslc.New(width, trendChartHeight)
	chart.SetXStep(1)
	chart.SetYStep(1)
	chart.SetStyle(lipgloss.NewStyle().Foreground(p.theme.Accent))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(p.theme.Border)
	chart.LabelStyle = lipgloss.NewStyle().Foreground(p.theme.Muted)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(float64(lo), float64(hi))
	chart.SetViewYRange(float64(lo), float64(hi))
	chart.Model.XLabelFormatter = func(_ int, v float64) string {
		return time.Unix(int64(v), 0).Local().Format("02 Jan")
	}
	chart.Model.YLabelFormatter = func(_ int, v float64) string {
		return round.FormatToPar(int(v))
	}
	for _, pt := range points {
		chart.Push(tslc.TimePoint{Time: pt.At, Value: float64(pt.ToPar)})
	}
	chart.DrawBraille()
	return chart.View()
}
