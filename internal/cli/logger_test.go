package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, zerolog.DebugLevel, selectLevel(true, false))
	assert.Equal(t, zerolog.WarnLevel, selectLevel(false, true))
	assert.Equal(t, zerolog.InfoLevel, selectLevel(false, false))
}

func TestInitLoggerWithWriter_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().Str("task_id", "t-1").Msg("task added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task added", entry["event"])
	assert.Equal(t, "t-1", entry["task_id"])
	assert.Contains(t, entry, "ts")
}

func TestInitLoggerWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, true, &buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogFilePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CADENCE_HOME", home)

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "cadence.log"), path)
}

func TestInitLogger_RedactsLogFile(t *testing.T) {
	env := newCLIEnv(t)
	secret := "ghp_" + "abcdefghijklmnopqrstuvwxyz012345"

	env.mustRun("--verbose", "task", "capture", "rotate", secret)
	CloseLogFile()

	path, err := LogFilePath()
	require.NoError(t, err)
	data, err := os.ReadFile(path) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Contains(t, string(data), "capture parsed")
	assert.Contains(t, string(data), "[REDACTED]")
	assert.NotContains(t, string(data), secret)
}
