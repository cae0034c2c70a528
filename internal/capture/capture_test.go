package capture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
)

func testContext() Context {
	return Context{
		Projects: []domain.Project{
			{ID: "p-1", Name: "Backend Infra"},
			{ID: "p-2", Name: "Backlog"},
			{ID: "p-3", Name: "Home"},
			{ID: "home", Name: "Chores"},
		},
		Today: calendar.New(2024, time.June, 12),
	}
}

func TestParse_ReleaseExample(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	res := Parse("Ship release #backend @tomorrow !high", ctx)

	assert.Equal(t, "Ship release", res.Title)
	assert.Equal(t, "p-1", res.ProjectID)
	assert.Equal(t, domain.PriorityHigh, res.Priority)
	require.NotNil(t, res.DueDate)
	assert.Equal(t, calendar.New(2024, time.June, 13), *res.DueDate)
}

func TestParse_PlainTextIsUnchanged(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"Buy milk",
		"Email  Sam about   the report",
		"Price is 5! and email me@today.com",
		"#",
	} {
		res := Parse(raw, testContext())
		assert.Equal(t, Result{Title: raw}, res, raw)
	}
}

func TestParse_Project(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantTitle string
		wantID    string
	}{
		{"prefix case-insensitive", "Fix bug #BACKEND", "Fix bug", "p-1"},
		{"first prefix match wins", "Fix bug #back", "Fix bug", "p-1"},
		{"exact id beats name prefix", "Sweep #home", "Sweep", "home"},
		{"id match", "Sweep #p-2", "Sweep", "p-2"},
		{"token at start", "#backlog groom tickets", "groom tickets", "p-2"},
		{"unresolved stays in title", "Call mom #family", "Call mom #family", ""},
		{"only the first reference counts", "Fix #nope #backend", "Fix #nope #backend", ""},
		{"second reference kept as text", "Fix #backend #home", "Fix #home", "p-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := Parse(tc.raw, testContext())
			assert.Equal(t, tc.wantTitle, res.Title)
			assert.Equal(t, tc.wantID, res.ProjectID)
		})
	}
}

func TestParse_ProjectFallsBackToContext(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	ctx.ProjectID = "p-3"

	assert.Equal(t, "p-3", Parse("Mow lawn", ctx).ProjectID)
	assert.Equal(t, "p-3", Parse("Mow lawn #unknown", ctx).ProjectID)
	assert.Equal(t, "p-2", Parse("Mow lawn #backlog", ctx).ProjectID)
}

func TestParse_Priority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.Priority
	}{
		{"Pay rent !urgent", domain.PriorityHigh},
		{"Pay rent !HIGH", domain.PriorityHigh},
		{"Pay rent !low", domain.PriorityLow},
		{"Pay rent !high !low", domain.PriorityLow},
		{"Pay rent !low !urgent", domain.PriorityLow},
		{"Pay rent", ""},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			res := Parse(tc.raw, testContext())
			assert.Equal(t, tc.want, res.Priority)
			assert.Equal(t, "Pay rent", res.Title)
		})
	}
}

func TestParse_DueDate(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	today := ctx.Today

	res := Parse("Standup @today", ctx)
	require.NotNil(t, res.DueDate)
	assert.Equal(t, today, *res.DueDate)
	assert.Equal(t, "Standup", res.Title)

	for _, raw := range []string{"Standup @today @tomorrow", "Standup @tomorrow @today"} {
		res = Parse(raw, ctx)
		require.NotNil(t, res.DueDate, raw)
		assert.Equal(t, today.AddDays(1), *res.DueDate, raw)
		assert.Equal(t, "Standup", res.Title, raw)
	}

	ctx.Today = calendar.Day{}
	res = Parse("Standup @today", ctx)
	assert.Nil(t, res.DueDate)
	assert.Equal(t, "Standup @today", res.Title)
}

func TestParse_TagsPassThrough(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	ctx.Tags = []string{"errand", "#notparsed"}

	res := Parse("Pick up parcel #errand", ctx)
	assert.Equal(t, []string{"errand", "#notparsed"}, res.Tags)
	assert.Equal(t, "Pick up parcel #errand", res.Title)

	res.Tags[0] = "changed"
	assert.Equal(t, "errand", ctx.Tags[0])
}

func TestParse_OnlyMarkers(t *testing.T) {
	t.Parallel()

	res := Parse("  !high @today  ", testContext())
	assert.Empty(t, res.Title)
	assert.Equal(t, domain.PriorityHigh, res.Priority)
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	ctx := testContext()
	first := Parse("Ship release #backend @tomorrow !high", ctx)
	second := Parse(first.Title, ctx)
	assert.Equal(t, first.Title, second.Title)
	assert.Empty(t, second.ProjectID)
	assert.Empty(t, second.Priority)
	assert.Nil(t, second.DueDate)
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tokens := split(" a\tbé  c ")
	require.Len(t, tokens, 3)
	assert.Equal(t, token{start: 1, end: 2, text: "a", mark: "a", markStart: 1, markEnd: 2}, tokens[0])
	assert.Equal(t, token{start: 3, end: 6, text: "bé", mark: "bé", markStart: 3, markEnd: 6}, tokens[1])
	assert.Equal(t, token{start: 8, end: 9, text: "c", mark: "c", markStart: 8, markEnd: 9}, tokens[2])
}

func TestSplit_MarkSkipsPunctuation(t *testing.T) {
	t.Parallel()

	tokens := split("(#home), !high;")
	require.Len(t, tokens, 2)
	assert.Equal(t, "#home", tokens[0].mark)
	assert.Equal(t, 1, tokens[0].markStart)
	assert.Equal(t, 6, tokens[0].markEnd)
	assert.False(t, tokens[0].wrapped())
	assert.Equal(t, "!high", tokens[1].mark)

	tokens = split("(!low) ...")
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].wrapped())
	assert.Equal(t, "...", tokens[1].mark)
}

func TestParse_MarkerPunctuation(t *testing.T) {
	t.Parallel()

	today := calendar.New(2024, time.June, 12)
	tests := []struct {
		name         string
		raw          string
		wantTitle    string
		wantProject  string
		wantPriority domain.Priority
		wantDue      *calendar.Day
	}{
		{name: "trailing comma", raw: "Fix !high, asap", wantTitle: "Fix, asap", wantPriority: domain.PriorityHigh},
		{name: "parenthesized project", raw: "Ship (#backend)", wantTitle: "Ship", wantProject: "p-1"},
		{name: "parenthesized priority", raw: "Review (!low) later", wantTitle: "Review later", wantPriority: domain.PriorityLow},
		{name: "trailing period", raw: "Call mom @today.", wantTitle: "Call mom.", wantDue: &today},
		{name: "semicolon", raw: "Plan trip #home; pack bags", wantTitle: "Plan trip; pack bags", wantProject: "home"},
		{name: "trailing bang is not a marker", raw: "Wow !high!", wantTitle: "Wow !high!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := testContext()
			res := Parse(tc.raw, ctx)
			assert.Equal(t, tc.wantTitle, res.Title)
			assert.Equal(t, tc.wantProject, res.ProjectID)
			assert.Equal(t, tc.wantPriority, res.Priority)
			assert.Equal(t, tc.wantDue, res.DueDate)

			again := Parse(res.Title, ctx)
			assert.Equal(t, res.Title, again.Title)
		})
	}
}
