package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/jask/golfduel/internal/database/repository"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/logging"
	"github.com/jask/golfduel/internal/round"
)

// RoundService lays out new cards and records finished rounds.
type RoundService struct {
	Clubs   *repository.ClubRepo
	Players *repository.PlayerRepo
	Rounds  *repository.RoundRepo
	Clock   clockwork.Clock
}

func (s *RoundService) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC().Truncate(time.Second)
	}
	return s.Clock.Now().UTC().Truncate(time.Second)
}

// Start builds an empty scorecard at clubID for playerIDs in the given order.
// Nothing is stored until Finish.
func (s *RoundService) Start(ctx context.Context, clubID string, playerIDs []string) (round.Round, error) {
	if clubID == "" {
		return round.Round{}, apperrors.ValidationError("choose a club")
	}
	club, err := s.Clubs.Get(ctx, clubID)
	if err != nil {
		return round.Round{}, apperrors.InternalError("load club", err)
	}
	if club == nil {
		return round.Round{}, apperrors.NotFoundError("club not found").WithContext("club_id", clubID)
	}

	players := make([]round.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, err := s.Players.Get(ctx, id)
		if err != nil {
			return round.Round{}, apperrors.InternalError("load player", err)
		}
		if p == nil {
			return round.Round{}, apperrors.NotFoundError("player not found").WithContext("player_id", id)
		}
		players = append(players, round.Player{ID: p.ID, Name: p.Name})
	}

	r, err := round.New(uuid.NewString(), round.Course{ID: club.ID, Name: club.Name, Pars: club.Pars}, players, s.now())
	if err != nil {
		return round.Round{}, err
	}
	logging.WithRound(r.ID).Info("round started", "club", club.Name, "players", len(players))
	return r, nil
}

// Finish stamps the round and stores it in history. A card without any score is rejected.
func (s *RoundService) Finish(ctx context.Context, r round.Round) (round.Round, error) {
	if r.ScoreCount() == 0 {
		return round.Round{}, apperrors.ValidationError("enter at least one score before finishing")
	}
	done := r.Finished(s.now())
	if err := s.Rounds.Save(ctx, done); err != nil {
		return round.Round{}, apperrors.InternalError("save round", err).WithContext("round_id", r.ID)
	}
	logging.WithRound(r.ID).Info("round finished", "complete", done.Complete(), "scores", done.ScoreCount())
	return done, nil
}
