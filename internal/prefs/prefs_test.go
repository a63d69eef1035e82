package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsZero(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, UI{}, p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	require.NoError(t, Save(UI{Theme: "light", SidebarCollapsed: true}))
	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, UI{Theme: "light", SidebarCollapsed: true}, p)

	_, err = os.Stat(filepath.Join(dir, "golfduel", "prefs.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "golfduel"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golfduel", "prefs.json"), []byte("{"), 0o600))

	_, err := Load()
	assert.Error(t, err)
}
