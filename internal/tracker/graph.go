package tracker

import (
	"fmt"

	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// AddDependency records that taskID is blocked by dependsOnID.
//
// It fails with ErrNotFound if taskID does not exist, and with
// ErrInvalidDependency if dependsOnID is taskID itself, does not exist, or
// already reaches taskID through its own blockedBy edges. Adding an edge that
// already exists is a no-op.
func (t *Tracker) AddDependency(taskID, dependsOnID string) error {
	task, err := t.lookupTask(taskID)
	if err != nil {
		return err
	}
	if dependsOnID == taskID {
		return fmt.Errorf("%w: task %q cannot depend on itself", cerrors.ErrInvalidDependency, taskID)
	}
	if !t.hasTask(dependsOnID) {
		return fmt.Errorf("%w: task %q does not exist", cerrors.ErrInvalidDependency, dependsOnID)
	}
	if task.IsBlockedBy(dependsOnID) {
		return nil
	}
	if t.reaches(dependsOnID, taskID) {
		return fmt.Errorf("%w: %q already depends on %q", cerrors.ErrInvalidDependency, dependsOnID, taskID)
	}

	task.BlockedBy = append(task.BlockedBy, dependsOnID)
	t.logger.Debug().Str("task_id", taskID).Str("depends_on", dependsOnID).Msg("dependency added")
	return nil
}

// RemoveDependency deletes the edge taskID -> dependsOnID if present.
// Missing tasks and missing edges are no-ops.
func (t *Tracker) RemoveDependency(taskID, dependsOnID string) {
	task, ok := t.tasks[taskID]
	if !ok || !task.IsBlockedBy(dependsOnID) {
		return
	}
	task.BlockedBy = removeID(task.BlockedBy, dependsOnID)
	t.logger.Debug().Str("task_id", taskID).Str("depends_on", dependsOnID).Msg("dependency removed")
}

// IsTaskBlocked reports whether any task in taskID's blockedBy set is incomplete.
// Identifiers that no longer resolve are treated as non-blocking.
func (t *Tracker) IsTaskBlocked(taskID string) (bool, error) {
	task, err := t.lookupTask(taskID)
	if err != nil {
		return false, err
	}
	return len(t.incompleteBlockers(task)) > 0, nil
}

// BlockingTasks returns copies of the tasks in taskID's blockedBy set, in
// insertion order, skipping identifiers that no longer resolve. Completed
// blockers are included.
func (t *Tracker) BlockingTasks(taskID string) ([]domain.Task, error) {
	task, err := t.lookupTask(taskID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Task, 0, len(task.BlockedBy))
	for _, id := range task.BlockedBy {
		if dep, ok := t.tasks[id]; ok {
			out = append(out, dep.Clone())
		}
	}
	return out, nil
}

// DependentTasks returns copies of the tasks that list taskID in their
// blockedBy set, in creation order.
func (t *Tracker) DependentTasks(taskID string) ([]domain.Task, error) {
	if _, err := t.lookupTask(taskID); err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, id := range t.taskOrder {
		if other := t.tasks[id]; other.IsBlockedBy(taskID) {
			out = append(out, other.Clone())
		}
	}
	return out, nil
}

// incompleteBlockers returns the ids in task.BlockedBy that resolve to an
// incomplete task.
func (t *Tracker) incompleteBlockers(task *domain.Task) []string {
	var ids []string
	for _, id := range task.BlockedBy {
		if dep, ok := t.tasks[id]; ok && !dep.Completed {
			ids = append(ids, id)
		}
	}
	return ids
}

// reaches reports whether target is reachable from start by following
// blockedBy edges. The search only visits the component reachable from start.
func (t *Tracker) reaches(start, target string) bool {
	visited := make(map[string]struct{})
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == target {
			return true
		}
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		if task, ok := t.tasks[id]; ok {
			stack = append(stack, task.BlockedBy...)
		}
	}
	return false
}
