package tracker

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

func TestNewShortID(t *testing.T) {
	t.Parallel()

	id := NewShortID(prefixTask)
	require.Len(t, id, len("t-")+8)
	assert.True(t, strings.HasPrefix(id, "t-"))
	assert.NotEqual(t, id, NewShortID(prefixTask))
}

func TestGenerateID_RetriesCollisions(t *testing.T) {
	t.Parallel()

	ids := []string{"t-dup", "t-dup", "t-new"}
	tr := New(WithIDGenerator(func(string) string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	first := mustAddTask(t, tr, "first")
	second := mustAddTask(t, tr, "second")
	assert.Equal(t, "t-dup", first.ID)
	assert.Equal(t, "t-new", second.ID)

	stuck := New(WithIDGenerator(func(string) string { return "t-same" }))
	mustAddTask(t, stuck, "one")
	_, err := stuck.AddTask(TaskInput{Title: "two"})
	require.ErrorIs(t, err, errIDExhausted)
}

func TestAddTask(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	p, err := tr.AddProject("Backend")
	require.NoError(t, err)
	due := calendar.New(2024, time.June, 20)

	task, err := tr.AddTask(TaskInput{
		Title:           "  Ship release ",
		Description:     " notes ",
		ProjectID:       p.ID,
		Priority:        domain.PriorityHigh,
		DueDate:         &due,
		EstimateMinutes: 45,
		Tags:            []string{"release", " ", "release", "ops"},
	})
	require.NoError(t, err)

	assert.Equal(t, "t-1", task.ID)
	assert.Equal(t, "Ship release", task.Title)
	assert.Equal(t, "notes", task.Description)
	assert.Equal(t, p.ID, task.ProjectID)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, due, *task.DueDate)
	assert.Equal(t, []string{"release", "ops"}, task.Tags)
	assert.Equal(t, testNow, task.CreatedAt)
	assert.False(t, task.Completed)
	assert.Empty(t, task.BlockedBy)
}

func TestAddTask_Defaults(t *testing.T) {
	t.Parallel()

	task := mustAddTask(t, newTestTracker(t), "plain")
	assert.Equal(t, domain.DefaultPriority, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.Tags)
}

func TestAddTask_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      TaskInput
		wantErr error
	}{
		{"blank title", TaskInput{Title: "  "}, cerrors.ErrInvalidInput},
		{"bad priority", TaskInput{Title: "x", Priority: "asap"}, cerrors.ErrInvalidInput},
		{"unknown project", TaskInput{Title: "x", ProjectID: "p-404"}, cerrors.ErrNotFound},
		{"negative estimate", TaskInput{Title: "x", EstimateMinutes: -5}, cerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tr := newTestTracker(t)
			_, err := tr.AddTask(tc.in)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, tr.Tasks())
		})
	}
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	p, err := tr.AddProject("Home")
	require.NoError(t, err)
	task, err := tr.AddTask(TaskInput{Title: "old", Tags: []string{"a", "b"}})
	require.NoError(t, err)

	title := "new"
	prio := domain.PriorityUrgent
	estimate := 30
	due := calendar.New(2024, time.July, 1)
	got, err := tr.UpdateTask(task.ID, TaskPatch{
		Title:           &title,
		ProjectID:       &p.ID,
		Priority:        &prio,
		DueDate:         &due,
		EstimateMinutes: &estimate,
		AddTags:         []string{"c"},
		RemoveTags:      []string{"a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, p.ID, got.ProjectID)
	assert.Equal(t, domain.PriorityUrgent, got.Priority)
	assert.Equal(t, due, *got.DueDate)
	assert.Equal(t, 30, got.EstimateMinutes)
	assert.Equal(t, []string{"b", "c"}, got.Tags)

	empty := ""
	got, err = tr.UpdateTask(task.ID, TaskPatch{ProjectID: &empty, ClearDueDate: true})
	require.NoError(t, err)
	assert.Empty(t, got.ProjectID)
	assert.Nil(t, got.DueDate)
}

func TestUpdateTask_ValidatesBeforeApplying(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	task := mustAddTask(t, tr, "keep")

	title := "changed"
	missing := "p-404"
	_, err := tr.UpdateTask(task.ID, TaskPatch{Title: &title, ProjectID: &missing})
	require.ErrorIs(t, err, cerrors.ErrNotFound)

	blank := " "
	_, err = tr.UpdateTask(task.ID, TaskPatch{Title: &blank})
	require.ErrorIs(t, err, cerrors.ErrInvalidInput)

	bad := domain.Priority("soon")
	_, err = tr.UpdateTask(task.ID, TaskPatch{Title: &title, Priority: &bad})
	require.ErrorIs(t, err, cerrors.ErrInvalidInput)

	got, err := tr.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Title)

	_, err = tr.UpdateTask("t-404", TaskPatch{})
	require.ErrorIs(t, err, cerrors.ErrNotFound)
}

func TestTasks_CreationOrder(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	a := mustAddTask(t, tr, "A")
	b := mustAddTask(t, tr, "B")
	c := mustAddTask(t, tr, "C")
	tr.DeleteTask(b.ID)

	var ids []string
	for _, task := range tr.Tasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{a.ID, c.ID}, ids)

	_, err := tr.Task(b.ID)
	require.ErrorIs(t, err, cerrors.ErrNotFound)
}
