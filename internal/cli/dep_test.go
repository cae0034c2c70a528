package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/errors"
)

func TestDep_AddListRemove(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("task", "add", "Tests")
	env.mustRun("task", "add", "Deploy")

	view := mustJSON[depView](env, "dep", "add", "t-2", "t-1")
	assert.True(t, view.Blocked)
	require.Len(t, view.BlockedBy, 1)
	assert.Equal(t, "t-1", view.BlockedBy[0].ID)

	upstream := mustJSON[depView](env, "dep", "list", "t-1")
	assert.False(t, upstream.Blocked)
	require.Len(t, upstream.Dependents, 1)
	assert.Equal(t, "t-2", upstream.Dependents[0].ID)

	text := env.mustRun("dep", "list", "t-2")
	assert.Contains(t, text, "blocked")
	assert.Contains(t, text, "Tests")

	view = mustJSON[depView](env, "dep", "rm", "t-2", "t-1")
	assert.False(t, view.Blocked)
	assert.Empty(t, view.BlockedBy)

	assert.Contains(t, env.mustRun("dep", "list", "t-2"), "No dependencies.")
}

func TestDep_RejectsInvalidEdges(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("task", "add", "A")
	env.mustRun("task", "add", "B")
	env.mustRun("task", "add", "C")
	env.mustRun("dep", "add", "t-2", "t-1")
	env.mustRun("dep", "add", "t-3", "t-2")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"self", []string{"t-1", "t-1"}, errors.ErrInvalidDependency},
		{"missing blocker", []string{"t-1", "t-9"}, errors.ErrInvalidDependency},
		{"missing task", []string{"t-9", "t-1"}, errors.ErrNotFound},
		{"direct cycle", []string{"t-1", "t-2"}, errors.ErrInvalidDependency},
		{"transitive cycle", []string{"t-1", "t-3"}, errors.ErrInvalidDependency},
	}
	for _, tc := range tests {
		_, err := env.run(append([]string{"dep", "add"}, tc.args...)...)
		require.ErrorIs(t, err, tc.want, tc.name)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err), tc.name)
	}

	view := mustJSON[depView](env, "dep", "list", "t-1")
	assert.Empty(t, view.BlockedBy, "rejected edges leave the graph unchanged")
}

func TestDep_AddIsIdempotent(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("task", "add", "A")
	env.mustRun("task", "add", "B")

	env.mustRun("dep", "add", "t-2", "t-1")
	view := mustJSON[depView](env, "dep", "add", "t-2", "t-1")
	assert.Len(t, view.BlockedBy, 1)
}
