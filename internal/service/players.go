package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/golfduel/internal/database/repository"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/logging"
)

const (
	maxNameLength     = 40
	similarNameCutoff = 2
)

// PlayerService manages the player roster.
type PlayerService struct {
	Players *repository.PlayerRepo
}

// AddResult carries the created player and any roster names that look alike.
type AddResult struct {
	Player  repository.Player
	Similar []string
}

func (s *PlayerService) List(ctx context.Context) ([]repository.Player, error) {
	players, err := s.Players.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("list players", err)
	}
	return players, nil
}

// Add creates a player. Exact (case-insensitive) duplicates are rejected; names within
// a small edit distance of an existing player are reported but still created.
func (s *PlayerService) Add(ctx context.Context, name string, handicap *float64) (AddResult, error) {
	name, err := cleanName(name, "player")
	if err != nil {
		return AddResult{}, err
	}
	if handicap != nil && (*handicap < -10 || *handicap > 54) {
		return AddResult{}, apperrors.ValidationError("handicap must be between -10 and 54")
	}
	existing, err := s.Players.List(ctx)
	if err != nil {
		return AddResult{}, apperrors.InternalError("list players", err)
	}
	similar, err := checkNames(name, "", existing)
	if err != nil {
		return AddResult{}, err
	}

	p := repository.Player{ID: uuid.NewString(), Name: name, Handicap: handicap}
	if err := s.Players.Upsert(ctx, p); err != nil {
		return AddResult{}, apperrors.InternalError("save player", err)
	}
	logging.WithPlayer(p.ID).Info("player added", "name", name, "similar", len(similar))
	return AddResult{Player: p, Similar: similar}, nil
}

// Rename changes a player's display name. Finished rounds keep the name printed on their card.
func (s *PlayerService) Rename(ctx context.Context, id, name string) (repository.Player, error) {
	name, err := cleanName(name, "player")
	if err != nil {
		return repository.Player{}, err
	}
	p, err := s.Players.Get(ctx, id)
	if err != nil {
		return repository.Player{}, apperrors.InternalError("load player", err)
	}
	if p == nil {
		return repository.Player{}, apperrors.NotFoundError("player not found").WithContext("player_id", id)
	}
	existing, err := s.Players.List(ctx)
	if err != nil {
		return repository.Player{}, apperrors.InternalError("list players", err)
	}
	if _, err := checkNames(name, id, existing); err != nil {
		return repository.Player{}, err
	}
	p.Name = name
	if err := s.Players.Upsert(ctx, *p); err != nil {
		return repository.Player{}, apperrors.InternalError("save player", err)
	}
	return *p, nil
}

func (s *PlayerService) Remove(ctx context.Context, id string) error {
	p, err := s.Players.Get(ctx, id)
	if err != nil {
		return apperrors.InternalError("load player", err)
	}
	if p == nil {
		return apperrors.NotFoundError("player not found").WithContext("player_id", id)
	}
	if err := s.Players.Delete(ctx, id); err != nil {
		return apperrors.InternalError("delete player", err)
	}
	logging.WithPlayer(id).Info("player removed")
	return nil
}

func cleanName(name, what string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", apperrors.ValidationError(what + " name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", apperrors.ValidationError(what + " name must be at most 40 characters")
	}
	return name, nil
}

// checkNames rejects an exact match and returns near matches. skipID excludes the record being renamed.
func checkNames(name, skipID string, existing []repository.Player) ([]string, error) {
	lower := strings.ToLower(name)
	var similar []string
	for _, p := range existing {
		if p.ID == skipID {
			continue
		}
		other := strings.ToLower(p.Name)
		if other == lower {
			return nil, apperrors.ConflictError("a player named " + p.Name + " already exists")
		}
		if levenshtein.ComputeDistance(lower, other) <= similarNameCutoff {
			similar = append(similar, p.Name)
		}
	}
	return similar, nil
}
