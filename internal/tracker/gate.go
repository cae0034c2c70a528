package tracker

import (
	"fmt"
	"strings"

	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// ToggleTask flips the completion state of a task. It is the only operation
// that changes Completed or CompletedAt.
//
// Completing a task stamps CompletedAt with the current time; reopening it
// clears CompletedAt. Completing fails with ErrBlocked, and changes nothing,
// while any task in blockedBy is incomplete. Reopening is always allowed.
func (t *Tracker) ToggleTask(id string) (domain.Task, error) {
	task, err := t.lookupTask(id)
	if err != nil {
		return domain.Task{}, err
	}

	if task.Completed {
		task.Completed = false
		task.CompletedAt = nil
		t.logger.Debug().Str("task_id", id).Msg("task reopened")
		return task.Clone(), nil
	}

	if blockers := t.incompleteBlockers(task); len(blockers) > 0 {
		return domain.Task{}, fmt.Errorf("%w: %q waits on %s", cerrors.ErrBlocked, id, strings.Join(blockers, ", "))
	}

	now := t.clock.Now()
	task.Completed = true
	task.CompletedAt = &now
	t.logger.Debug().Str("task_id", id).Time("completed_at", now).Msg("task completed")
	return task.Clone(), nil
}
