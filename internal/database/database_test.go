package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/golfduel/internal/database/repository"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golf.db")

	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))

	v, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
	assert.False(t, dirty)
}

func TestSchemaVersionOnEmptyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	v, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	assert.Zero(t, v)
	assert.False(t, dirty)
}

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "golf.db")
	require.NoError(t, RunMigrations(path))
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSeedDefaultsCreatesOneClub(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	db := openMigrated(t)

	require.NoError(t, SeedDefaults(ctx, db))
	require.NoError(t, SeedDefaults(ctx, db))

	clubs, err := repository.NewClubRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, DefaultClubName, clubs[0].Name)
	assert.Len(t, clubs[0].Pars, 18)
	assert.Equal(t, 72, clubs[0].Par())
}

func TestForeignKeysAreEnforced(t *testing.T) {
	db := openMigrated(t)
	_, err := db.Exec(`INSERT INTO club_holes(club_id, number, par) VALUES ('missing', 1, 4)`)
	require.Error(t, err)
}
