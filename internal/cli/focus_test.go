package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/errors"
)

func TestParseMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"25", 25, false},
		{" 45 ", 45, false},
		{"1h30m", 90, false},
		{"90s", 2, false},
		{"0", 0, false},
		{"soon", 0, true},
	}
	for _, tc := range tests {
		got, err := parseMinutes(tc.in)
		if tc.wantErr {
			require.ErrorIs(t, err, errors.ErrInvalidInput, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFocus_LogAndList(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("task", "add", "Write chapter")

	session := mustJSON[domain.FocusSession](env, "focus", "log", "45", "--task", "t-1")
	assert.Equal(t, "f-1", session.ID)
	assert.Equal(t, 45, session.Minutes)
	assert.True(t, session.CompletedAt.Equal(testNow))

	mustJSON[domain.FocusSession](env, "focus", "log", "1h", "--at", "2024-06-11 18:00")

	task := mustJSON[taskDetail](env, "task", "show", "t-1")
	assert.Equal(t, 45, task.SpentMinutes)

	today := mustJSON[[]domain.FocusSession](env, "focus", "list")
	require.Len(t, today, 1)
	assert.Equal(t, "f-1", today[0].ID)

	yesterday := mustJSON[[]domain.FocusSession](env, "focus", "list", "--date", "yesterday")
	require.Len(t, yesterday, 1)
	assert.Equal(t, 60, yesterday[0].Minutes)

	text := env.mustRun("focus", "list")
	assert.Contains(t, text, "Write chapter")
	assert.Contains(t, text, "Total 45m")
}

func TestFocus_LogErrors(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("focus", "log", "0")
	require.ErrorIs(t, err, errors.ErrInvalidInput)

	_, err = env.run("focus", "log", "25", "--task", "t-9")
	require.ErrorIs(t, err, errors.ErrNotFound)

	_, err = env.run("focus", "log", "25", "--at", "tonight")
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}
