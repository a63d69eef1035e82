package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jask/golfduel/internal/round"
)

// ErrUnfinishedRound is returned when saving a round without a finish time.
var ErrUnfinishedRound = errors.New("round has no finish time")

// RoundRepo stores finished rounds.
type RoundRepo struct {
	db *sql.DB
}

func NewRoundRepo(db *sql.DB) *RoundRepo { return &RoundRepo{db: db} }

// Save inserts a finished round with its holes, players and scores.
func (r *RoundRepo) Save(ctx context.Context, rd round.Round) error {
	if rd.FinishedAt == nil {
		return ErrUnfinishedRound
	}
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var clubID *string
		if rd.ClubID != "" {
			clubID = &rd.ClubID
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO rounds(id, club_id, club_name, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
		`, rd.ID, clubID, rd.ClubName, rd.StartedAt.UTC(), rd.FinishedAt.UTC()); err != nil {
			return err
		}
		for i, p := range rd.Players {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO round_players(round_id, player_id, player_name, position) VALUES (?, ?, ?, ?)
			`, rd.ID, p.ID, p.Name, i); err != nil {
				return err
			}
		}
		for _, h := range rd.Holes {
			if _, err := tx.ExecContext(ctx, `INSERT INTO round_holes(round_id, number, par) VALUES (?, ?, ?)`, rd.ID, h.Number, h.Par); err != nil {
				return err
			}
			for pid, strokes := range h.Strokes {
				if _, err := tx.ExecContext(ctx, `
				INSERT INTO hole_scores(round_id, player_id, hole_number, strokes) VALUES (?, ?, ?, ?)
				`, rd.ID, pid, h.Number, strokes); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// List returns finished rounds, newest first.
func (r *RoundRepo) List(ctx context.Context, f RoundFilters) ([]round.Round, error) {
	var where []string
	var args []interface{}

	if f.PlayerID != "" {
		where = append(where, "id IN (SELECT round_id FROM round_players WHERE player_id = ?)")
		args = append(args, f.PlayerID)
	}
	if f.ClubID != "" {
		where = append(where, "club_id = ?")
		args = append(args, f.ClubID)
	}

	query := "SELECT id, club_id, club_name, started_at, finished_at FROM rounds"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY finished_at DESC, started_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var out []round.Round
	for rows.Next() {
		rd, err := scanRound(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, rd)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadCard(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Get returns the round or nil when it does not exist.
func (r *RoundRepo) Get(ctx context.Context, id string) (*round.Round, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, club_id, club_name, started_at, finished_at FROM rounds WHERE id = ?`, id)
	rd, err := scanRound(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadCard(ctx, &rd); err != nil {
		return nil, err
	}
	return &rd, nil
}

func (r *RoundRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = ?`, id)
	return err
}

func (r *RoundRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rounds`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(s scanner) (round.Round, error) {
	var rd round.Round
	var clubID sql.NullString
	var started, finished time.Time
	if err := s.Scan(&rd.ID, &clubID, &rd.ClubName, &started, &finished); err != nil {
		return round.Round{}, err
	}
	rd.ClubID = clubID.String
	rd.StartedAt = started.UTC()
	finished = finished.UTC()
	rd.FinishedAt = &finished
	return rd, nil
}

func (r *RoundRepo) loadCard(ctx context.Context, rd *round.Round) error {
	players, err := r.db.QueryContext(ctx, `SELECT player_id, player_name FROM round_players WHERE round_id = ? ORDER BY position`, rd.ID)
	if err != nil {
		return err
	}
	for players.Next() {
		var p round.Player
		if err := players.Scan(&p.ID, &p.Name); err != nil {
			players.Close()
			return err
		}
		rd.Players = append(rd.Players, p)
	}
	players.Close()
	if err := players.Err(); err != nil {
		return err
	}

	holes, err := r.db.QueryContext(ctx, `SELECT number, par FROM round_holes WHERE round_id = ? ORDER BY number`, rd.ID)
	if err != nil {
		return err
	}
	index := map[int]int{}
	for holes.Next() {
		h := round.Hole{Strokes: map[string]int{}}
		if err := holes.Scan(&h.Number, &h.Par); err != nil {
			holes.Close()
			return err
		}
		index[h.Number] = len(rd.Holes)
		rd.Holes = append(rd.Holes, h)
	}
	holes.Close()
	if err := holes.Err(); err != nil {
		return err
	}

	scores, err := r.db.QueryContext(ctx, `SELECT player_id, hole_number, strokes FROM hole_scores WHERE round_id = ?`, rd.ID)
	if err != nil {
		return err
	}
	defer scores.Close()
	for scores.Next() {
		var pid string
		var hole, strokes int
		if err := scores.Scan(&pid, &hole, &strokes); err != nil {
			return err
		}
		if i, ok := index[hole]; ok {
			rd.Holes[i].Strokes[pid] = strokes
		}
	}
	return scores.Err()
}
