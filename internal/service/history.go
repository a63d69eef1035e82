package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jask/golfduel/internal/database/repository"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/logging"
	"github.com/jask/golfduel/internal/round"
)

// HistoryService reads and exports finished rounds.
type HistoryService struct {
	Rounds *repository.RoundRepo
}

// PlayerLine is one player's score on a summary row.
type PlayerLine struct {
	PlayerID string
	Name     string
	Total    int
	ToPar    int
	Holes    int
}

// Summary is a compact view of one finished round.
type Summary struct {
	Round   round.Round
	Lines   []PlayerLine
	Outcome round.Outcome
}

// Winner describes the result in words.
func (s Summary) Winner() string {
	switch {
	case len(s.Outcome.Winners) == 0:
		return "-"
	case s.Outcome.Tie:
		return "tie"
	default:
		return fmt.Sprintf("%s by %d", s.Round.PlayerName(s.Outcome.Winners[0]), s.Outcome.Margin)
	}
}

func summarize(r round.Round) Summary {
	lines := make([]PlayerLine, 0, len(r.Players))
	for _, p := range r.Players {
		lines = append(lines, PlayerLine{PlayerID: p.ID, Name: p.Name, Total: r.Total(p.ID), ToPar: r.ToPar(p.ID), Holes: r.HolesPlayed(p.ID)})
	}
	return Summary{Round: r, Lines: lines, Outcome: r.Result()}
}

func (s *HistoryService) List(ctx context.Context, f repository.RoundFilters) ([]Summary, error) {
	rounds, err := s.Rounds.List(ctx, f)
	if err != nil {
		return nil, apperrors.InternalError("list rounds", err)
	}
	out := make([]Summary, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, summarize(r))
	}
	return out, nil
}

func (s *HistoryService) Get(ctx context.Context, id string) (Summary, error) {
	r, err := s.Rounds.Get(ctx, id)
	if err != nil {
		return Summary{}, apperrors.InternalError("load round", err)
	}
	if r == nil {
		return Summary{}, apperrors.NotFoundError("round not found").WithContext("round_id", id)
	}
	return summarize(*r), nil
}

func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if err := s.Rounds.Delete(ctx, id); err != nil {
		return apperrors.InternalError("delete round", err)
	}
	logging.WithRound(id).Info("round deleted")
	return nil
}

type exportDoc struct {
	Rounds []exportRound `yaml:"rounds"`
}

type exportRound struct {
	ID       string         `yaml:"id"`
	Club     string         `yaml:"club"`
	Started  time.Time      `yaml:"started"`
	Finished time.Time      `yaml:"finished"`
	Pars     []int          `yaml:"pars,flow"`
	Players  []exportPlayer `yaml:"players"`
	Result   string         `yaml:"result"`
}

type exportPlayer struct {
	Name    string `yaml:"name"`
	Total   int    `yaml:"total"`
	ToPar   string `yaml:"to_par"`
	Strokes []int  `yaml:"strokes,flow"`
}

// Export writes every finished round as YAML, newest first. Unplayed holes are written as 0.
func (s *HistoryService) Export(ctx context.Context, w io.Writer) (int, error) {
	summaries, err := s.List(ctx, repository.RoundFilters{})
	if err != nil {
		return 0, err
	}
	doc := exportDoc{Rounds: make([]exportRound, 0, len(summaries))}
	for _, sum := range summaries {
		r := sum.Round
		er := exportRound{ID: r.ID, Club: r.ClubName, Started: r.StartedAt, Result: sum.Winner()}
		if r.FinishedAt != nil {
			er.Finished = *r.FinishedAt
		}
		for _, h := range r.Holes {
			er.Pars = append(er.Pars, h.Par)
		}
		for _, line := range sum.Lines {
			strokes := make([]int, len(r.Holes))
			for i, h := range r.Holes {
				strokes[i] = h.Strokes[line.PlayerID]
			}
			er.Players = append(er.Players, exportPlayer{Name: line.Name, Total: line.Total, ToPar: round.FormatToPar(line.ToPar), Strokes: strokes})
		}
		doc.Rounds = append(doc.Rounds, er)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return 0, apperrors.InternalError("encode export", err)
	}
	if err := enc.Close(); err != nil {
		return 0, apperrors.InternalError("encode export", err)
	}
	return len(doc.Rounds), nil
}
