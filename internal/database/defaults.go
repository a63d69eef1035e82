package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/golfduel/internal/database/repository"
)

// DefaultClubName is the club created for empty databases so a round can start immediately.
const DefaultClubName = "Home Course"

// SeedDefaults ensures a baseline club exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	clubs := repository.NewClubRepo(db)
	n, err := clubs.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5}
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("club:"+DefaultClubName)).String()
	return clubs.Upsert(ctx, repository.Club{ID: id, Name: DefaultClubName, Pars: pars})
}
