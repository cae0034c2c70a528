package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

func TestHasColorSupport(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	assert.False(t, HasColorSupport(), "NO_COLOR disables color even when empty")
}

func TestHasColorSupport_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.False(t, HasColorSupport())
}

func TestPriorityColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ColorError, PriorityColor(domain.PriorityUrgent))
	assert.Equal(t, ColorWarning, PriorityColor(domain.PriorityHigh))
	assert.Equal(t, ColorPrimary, PriorityColor(domain.PriorityMedium))
	assert.Equal(t, ColorMuted, PriorityColor(domain.PriorityLow))
}

func TestTaskIcon(t *testing.T) {
	t.Parallel()

	assert.Equal(t, IconDone, TaskIcon(true, true))
	assert.Equal(t, IconBlocked, TaskIcon(false, true))
	assert.Equal(t, IconOpen, TaskIcon(false, false))
}

func TestNewOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, FormatJSON))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, FormatText))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
	assert.True(t, NewOutput(&buf, FormatJSON).IsJSON())
}

func TestTTYOutput_ErrorIncludesAction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewTTYOutput(&buf).Error(fmt.Errorf("%w: \"t-1\" waits on t-2", cerrors.ErrBlocked))
	out := buf.String()
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "waits on t-2")
	assert.Contains(t, out, "cadence dep list")
}

func TestTTYOutput_Messages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Success("saved")
	out.Warning("careful")
	out.Info("fyi")
	text := buf.String()
	assert.Contains(t, text, "✓ saved")
	assert.Contains(t, text, "⚠ careful")
	assert.Contains(t, text, "fyi")
}

func TestJSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Success("ignored")
	out.Info("ignored")
	out.Warning("ignored")
	assert.Empty(t, buf.String())

	require.NoError(t, out.JSON(map[string]int{"tasks": 3}))
	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["tasks"])

	buf.Reset()
	out.Error(cerrors.ErrNotFound)
	assert.JSONEq(t, `{"error":"not found"}`, buf.String())
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "日本…", Truncate("日本語のタスク", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	CheckNoColor()

	var buf bytes.Buffer
	table := NewTable(&buf, []TableColumn{
		{Name: "ID", Width: 6},
		{Name: "TITLE", Width: 8},
		{Name: "MIN", Width: 4, Align: AlignRight},
	})
	table.WriteHeader()
	table.WriteRow("t-1", "a very long title", "45")
	table.WriteRow("t-2", "日本語")
	table.WriteStyledRow([]string{"t-3", "styled", "5"}, []string{"t-3", "styled", "5"})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID     TITLE     MIN", lines[0])
	assert.Equal(t, "t-1    a very …   45", lines[1])
	assert.Equal(t, "t-2    日本語", lines[2])
	assert.Equal(t, "t-3    styled      5", lines[3])
}

func TestProgressBar(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	bar := NewProgressBar(4)
	assert.Equal(t, 4, bar.Width())
	assert.Equal(t, "██░░", bar.Render(0.5))
	assert.Equal(t, "░░░░", bar.Render(-1))
	assert.Equal(t, "████", bar.Render(2))
	assert.Equal(t, "█░░░ 1/4", bar.RenderCount(1, 4))
	assert.Empty(t, bar.RenderCount(0, 0))
	assert.Equal(t, 10, NewProgressBar(0).Width())
	assert.Equal(t, "███░░░░░░░ 3/10", NewProgressBar(0).RenderCount(3, 10))
}

func TestProgressBar_NoEscapesWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	for _, ratio := range []float64{0, 0.3, 1} {
		out := NewProgressBar(12).Render(ratio)
		assert.NotContains(t, out, "\x1b[", "ratio %v", ratio)
		assert.Equal(t, 12, utf8.RuneCountInString(out), "ratio %v", ratio)
	}
}

func TestPadLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Mon   ", PadLabel("Mon", 6))
	assert.Equal(t, "Wedn…", PadLabel("Wednesday", 5))
}

func TestDueLabel(t *testing.T) {
	t.Parallel()

	today := calendar.New(2024, time.June, 12)
	tests := []struct {
		due  calendar.Day
		want string
	}{
		{calendar.Day{}, ""},
		{today, "today"},
		{today.AddDays(1), "tomorrow"},
		{today.AddDays(-1), "yesterday"},
		{today.AddDays(5), "in 5 days"},
		{today.AddDays(-4), "4 days overdue"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DueLabel(tc.due, today), tc.due.String())
	}
}

func TestFormatMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}
