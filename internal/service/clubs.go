package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/golfduel/internal/database/repository"
	apperrors "github.com/jask/golfduel/internal/errors"
	"github.com/jask/golfduel/internal/logging"
)

const (
	minPar     = 3
	maxPar     = 6
	defaultPar = 4
)

// ClubService manages clubs and their hole pars.
type ClubService struct {
	Clubs *repository.ClubRepo
}

func (s *ClubService) List(ctx context.Context) ([]repository.Club, error) {
	clubs, err := s.Clubs.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("list clubs", err)
	}
	return clubs, nil
}

func (s *ClubService) Get(ctx context.Context, id string) (repository.Club, error) {
	c, err := s.Clubs.Get(ctx, id)
	if err != nil {
		return repository.Club{}, apperrors.InternalError("load club", err)
	}
	if c == nil {
		return repository.Club{}, apperrors.NotFoundError("club not found").WithContext("club_id", id)
	}
	return *c, nil
}

// Add creates a club with holes holes (9 or 18). Missing pars default to 4.
func (s *ClubService) Add(ctx context.Context, name, location string, holes int, pars []int) (repository.Club, error) {
	name, err := cleanName(name, "club")
	if err != nil {
		return repository.Club{}, err
	}
	if holes != 9 && holes != 18 {
		return repository.Club{}, apperrors.ValidationError("a club has 9 or 18 holes")
	}
	if len(pars) > holes {
		return repository.Club{}, apperrors.ValidationError("more pars than holes")
	}
	layout := make([]int, holes)
	for i := range layout {
		layout[i] = defaultPar
		if i < len(pars) {
			if err := checkPar(pars[i]); err != nil {
				return repository.Club{}, err.WithContext("hole", i+1)
			}
			layout[i] = pars[i]
		}
	}
	existing, err := s.Clubs.ByName(ctx, name)
	if err != nil {
		return repository.Club{}, apperrors.InternalError("lookup club", err)
	}
	if existing != nil {
		return repository.Club{}, apperrors.ConflictError("a club named " + existing.Name + " already exists")
	}

	c := repository.Club{ID: uuid.NewString(), Name: name, Location: strings.TrimSpace(location), Pars: layout}
	if err := s.Clubs.Upsert(ctx, c); err != nil {
		return repository.Club{}, apperrors.InternalError("save club", err)
	}
	logging.WithClub(c.ID).Info("club added", "name", name, "holes", holes, "par", c.Par())
	return c, nil
}

// SetPar changes the par of one hole.
func (s *ClubService) SetPar(ctx context.Context, clubID string, hole, par int) (repository.Club, error) {
	if err := checkPar(par); err != nil {
		return repository.Club{}, err
	}
	c, err := s.Get(ctx, clubID)
	if err != nil {
		return repository.Club{}, err
	}
	if hole < 1 || hole > len(c.Pars) {
		return repository.Club{}, apperrors.ValidationError("no such hole").WithContext("hole", hole)
	}
	if err := s.Clubs.SetPar(ctx, clubID, hole, par); err != nil {
		return repository.Club{}, apperrors.InternalError("save par", err)
	}
	c.Pars[hole-1] = par
	return c, nil
}

func (s *ClubService) Remove(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.Clubs.Delete(ctx, id); err != nil {
		return apperrors.InternalError("delete club", err)
	}
	logging.WithClub(id).Info("club removed")
	return nil
}

func checkPar(par int) *apperrors.Error {
	if par < minPar || par > maxPar {
		return apperrors.ValidationError("par must be between 3 and 6")
	}
	return nil
}
