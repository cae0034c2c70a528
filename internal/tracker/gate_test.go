package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/mrz1836/cadence/internal/errors"
)

func TestToggleTask_BlockedScenario(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	a := mustAddTask(t, tr, "A")
	b := mustAddTask(t, tr, "B")
	require.NoError(t, tr.AddDependency(b.ID, a.ID))

	_, err := tr.ToggleTask(b.ID)
	require.ErrorIs(t, err, cerrors.ErrBlocked)
	assert.Contains(t, err.Error(), a.ID)

	got, err := tr.Task(b.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)

	doneA, err := tr.ToggleTask(a.ID)
	require.NoError(t, err)
	assert.True(t, doneA.Completed)

	doneB, err := tr.ToggleTask(b.ID)
	require.NoError(t, err)
	assert.True(t, doneB.Completed)
}

func TestToggleTask_StampsAndClearsCompletedAt(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	a := mustAddTask(t, tr, "A")

	done, err := tr.ToggleTask(a.ID)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, testNow, *done.CompletedAt)

	reopened, err := tr.ToggleTask(a.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
}

func TestToggleTask_ReopenIsNeverBlocked(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	a := mustAddTask(t, tr, "A")
	b := mustAddTask(t, tr, "B")

	_, err := tr.ToggleTask(a.ID)
	require.NoError(t, err)
	// A completed task gains an incomplete blocker after the fact.
	require.NoError(t, tr.AddDependency(a.ID, b.ID))

	reopened, err := tr.ToggleTask(a.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)

	_, err = tr.ToggleTask(a.ID)
	require.ErrorIs(t, err, cerrors.ErrBlocked)
}

func TestToggleTask_NotFound(t *testing.T) {
	t.Parallel()

	_, err := newTestTracker(t).ToggleTask("t-404")
	require.ErrorIs(t, err, cerrors.ErrNotFound)
}

func TestToggleTask_ReturnedCopyCannotMutateStore(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(t)
	a := mustAddTask(t, tr, "A")
	b := mustAddTask(t, tr, "B")
	require.NoError(t, tr.AddDependency(a.ID, b.ID))

	got, err := tr.Task(a.ID)
	require.NoError(t, err)
	got.BlockedBy = nil
	got.Completed = true

	blocked, err := tr.IsTaskBlocked(a.ID)
	require.NoError(t, err)
	assert.True(t, blocked)
	stored, err := tr.Task(a.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
}
