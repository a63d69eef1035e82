package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestInitJSONIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "json", &buf)

	WithRound("r1").Info("round saved", "holes", 18)
	WithError(errors.New("boom")).Debug("failed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "round saved", first["msg"])
	assert.Equal(t, "r1", first["round_id"])
	assert.EqualValues(t, 18, first["holes"])

	var second map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "boom", second["error"])
}

func TestInitTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", "text", &buf)

	WithPlayer("p1").Info("hidden")
	WithClub("c1").Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "club_id=c1")
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "golfduel.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = f.WriteString("hello\n")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
