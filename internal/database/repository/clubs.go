package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ClubRepo handles clubs and their hole layout.
type ClubRepo struct {
	db *sql.DB
}

func NewClubRepo(db *sql.DB) *ClubRepo {
	return &ClubRepo{db: db}
}

// Upsert writes the club row and replaces its holes in one transaction.
func (r *ClubRepo) Upsert(ctx context.Context, c Club) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO clubs(id, name, location, created_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 location=excluded.location;
	`, c.ID, c.Name, c.Location); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM club_holes WHERE club_id = ?`, c.ID); err != nil {
		return err
	}
	for i, par := range c.Pars {
		if _, err := tx.ExecContext(ctx, `INSERT INTO club_holes(club_id, number, par) VALUES (?, ?, ?)`, c.ID, i+1, par); err != nil {
			return fmt.Errorf("hole %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// SetPar changes one hole's par.
func (r *ClubRepo) SetPar(ctx context.Context, clubID string, hole, par int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE club_holes SET par = ? WHERE club_id = ? AND number = ?`, par, clubID, hole)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ClubRepo) List(ctx context.Context) ([]Club, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, location, created_at FROM clubs ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Club
	for rows.Next() {
		var c Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	pars, err := r.allPars(ctx)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Pars = pars[out[i].ID]
	}
	return out, nil
}

func (r *ClubRepo) Get(ctx context.Context, id string) (*Club, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, location, created_at FROM clubs WHERE id = ?`, id)
	var c Club
	if err := row.Scan(&c.ID, &c.Name, &c.Location, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT par FROM club_holes WHERE club_id = ? ORDER BY number`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var par int
		if err := rows.Scan(&par); err != nil {
			return nil, err
		}
		c.Pars = append(c.Pars, par)
	}
	return &c, rows.Err()
}

func (r *ClubRepo) ByName(ctx context.Context, name string) (*Club, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM clubs WHERE name = ? COLLATE NOCASE`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *ClubRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clubs`).Scan(&n)
	return n, err
}

func (r *ClubRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM clubs WHERE id = ?`, id)
	return err
}

func (r *ClubRepo) allPars(ctx context.Context) (map[string][]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT club_id, par FROM club_holes ORDER BY club_id, number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string][]int{}
	for rows.Next() {
		var id string
		var par int
		if err := rows.Scan(&id, &par); err != nil {
			return nil, err
		}
		out[id] = append(out[id], par)
	}
	return out, rows.Err()
}
