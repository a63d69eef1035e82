package repository

import (
	"context"
	"database/sql"
)

// PlayerRepo handles players.
type PlayerRepo struct {
	db *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

func (r *PlayerRepo) Upsert(ctx context.Context, p Player) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO players(id, name, handicap, created_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 handicap=excluded.handicap;
	`, p.ID, p.Name, p.Handicap)
	return err
}

func (r *PlayerRepo) List(ctx context.Context) ([]Player, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, handicap, created_at FROM players ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Handicap, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlayerRepo) Get(ctx context.Context, id string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, handicap, created_at FROM players WHERE id = ?`, id)
	return scanPlayer(row)
}

// ByName matches case-insensitively.
func (r *PlayerRepo) ByName(ctx context.Context, name string) (*Player, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, handicap, created_at FROM players WHERE name = ? COLLATE NOCASE`, name)
	return scanPlayer(row)
}

func (r *PlayerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	return err
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	if err := row.Scan(&p.ID, &p.Name, &p.Handicap, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
