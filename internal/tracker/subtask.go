package tracker

import (
	"fmt"
	"slices"

	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// Progress is the completion rollup of a subtask list.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Ratio     float64 `json:"ratio"`
}

// SubtaskProgress rolls up subtasks. The boolean is false for an empty list,
// which has no progress to display.
func SubtaskProgress(subtasks []domain.Subtask) (Progress, bool) {
	if len(subtasks) == 0 {
		return Progress{}, false
	}
	p := Progress{Total: len(subtasks)}
	for _, s := range subtasks {
		if s.Completed {
			p.Completed++
		}
	}
	p.Ratio = float64(p.Completed) / float64(p.Total)
	return p, true
}

// AddSubtask appends a new incomplete subtask to taskID.
func (t *Tracker) AddSubtask(taskID, title string) (domain.Subtask, error) {
	task, err := t.lookupTask(taskID)
	if err != nil {
		return domain.Subtask{}, err
	}
	title, err = validTitle(title, "subtask")
	if err != nil {
		return domain.Subtask{}, err
	}
	id, err := t.generateID(prefixSubtask, func(id string) bool {
		return subtaskIndex(task, id) >= 0
	})
	if err != nil {
		return domain.Subtask{}, err
	}

	sub := domain.Subtask{ID: id, TaskID: taskID, Title: title}
	task.Subtasks = append(task.Subtasks, sub)
	t.logger.Debug().Str("task_id", taskID).Str("subtask_id", id).Msg("subtask added")
	return sub, nil
}

// ToggleSubtask flips a subtask's completion flag. The parent task's own
// completion state is not affected.
func (t *Tracker) ToggleSubtask(taskID, subtaskID string) (domain.Subtask, error) {
	task, err := t.lookupTask(taskID)
	if err != nil {
		return domain.Subtask{}, err
	}
	i := subtaskIndex(task, subtaskID)
	if i < 0 {
		return domain.Subtask{}, fmt.Errorf("%w: subtask %q of task %q", cerrors.ErrNotFound, subtaskID, taskID)
	}
	task.Subtasks[i].Completed = !task.Subtasks[i].Completed
	t.logger.Debug().Str("task_id", taskID).Str("subtask_id", subtaskID).
		Bool("completed", task.Subtasks[i].Completed).Msg("subtask toggled")
	return task.Subtasks[i], nil
}

// DeleteSubtask removes a subtask. It returns false when either the task or
// the subtask does not exist.
func (t *Tracker) DeleteSubtask(taskID, subtaskID string) bool {
	task, ok := t.tasks[taskID]
	if !ok {
		return false
	}
	i := subtaskIndex(task, subtaskID)
	if i < 0 {
		return false
	}
	task.Subtasks = slices.Delete(task.Subtasks, i, i+1)
	t.logger.Debug().Str("task_id", taskID).Str("subtask_id", subtaskID).Msg("subtask deleted")
	return true
}

func subtaskIndex(task *domain.Task, id string) int {
	return slices.IndexFunc(task.Subtasks, func(s domain.Subtask) bool {
		return s.ID == id
	})
}
