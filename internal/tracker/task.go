package tracker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// TaskInput describes a task to create.
type TaskInput struct {
	Title           string
	Description     string
	ProjectID       string
	Priority        domain.Priority // empty means domain.DefaultPriority
	DueDate         *calendar.Day
	EstimateMinutes int
	Tags            []string
}

// TaskPatch describes an edit to an existing task. Nil fields are left
// unchanged. Completion state, dependencies and subtasks are deliberately
// absent: they have their own operations.
type TaskPatch struct {
	Title           *string
	Description     *string
	ProjectID       *string // pointer to "" clears the project
	Priority        *domain.Priority
	DueDate         *calendar.Day
	ClearDueDate    bool
	EstimateMinutes *int
	AddTags         []string
	RemoveTags      []string
}

// AddTask creates a new incomplete task.
func (t *Tracker) AddTask(in TaskInput) (domain.Task, error) {
	title, err := validTitle(in.Title, "task")
	if err != nil {
		return domain.Task{}, err
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.DefaultPriority
	}
	if !priority.IsValid() {
		return domain.Task{}, fmt.Errorf("%w: priority %q must be one of %v", cerrors.ErrInvalidInput, priority, domain.ValidPriorities())
	}
	if in.ProjectID != "" {
		if _, ok := t.projects[in.ProjectID]; !ok {
			return domain.Task{}, fmt.Errorf("%w: project %q", cerrors.ErrNotFound, in.ProjectID)
		}
	}
	if in.EstimateMinutes < 0 {
		return domain.Task{}, fmt.Errorf("%w: estimate must not be negative", cerrors.ErrInvalidInput)
	}

	id, err := t.generateID(prefixTask, t.hasTask)
	if err != nil {
		return domain.Task{}, err
	}

	task := &domain.Task{
		ID:              id,
		Title:           title,
		Description:     strings.TrimSpace(in.Description),
		ProjectID:       in.ProjectID,
		Priority:        priority,
		EstimateMinutes: in.EstimateMinutes,
		Tags:            mergeTags(nil, in.Tags),
		CreatedAt:       t.clock.Now(),
	}
	if in.DueDate != nil && !in.DueDate.IsZero() {
		due := *in.DueDate
		task.DueDate = &due
	}

	t.tasks[id] = task
	t.taskOrder = append(t.taskOrder, id)

	t.logger.Debug().Str("task_id", id).Str("priority", string(priority)).Msg("task added")
	return task.Clone(), nil
}

// UpdateTask applies patch to the task. The patch is validated in full before
// anything changes.
func (t *Tracker) UpdateTask(id string, patch TaskPatch) (domain.Task, error) {
	task, err := t.lookupTask(id)
	if err != nil {
		return domain.Task{}, err
	}

	var title string
	if patch.Title != nil {
		if title, err = validTitle(*patch.Title, "task"); err != nil {
			return domain.Task{}, err
		}
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return domain.Task{}, fmt.Errorf("%w: priority %q must be one of %v", cerrors.ErrInvalidInput, *patch.Priority, domain.ValidPriorities())
	}
	if patch.ProjectID != nil && *patch.ProjectID != "" {
		if _, ok := t.projects[*patch.ProjectID]; !ok {
			return domain.Task{}, fmt.Errorf("%w: project %q", cerrors.ErrNotFound, *patch.ProjectID)
		}
	}
	if patch.EstimateMinutes != nil && *patch.EstimateMinutes < 0 {
		return domain.Task{}, fmt.Errorf("%w: estimate must not be negative", cerrors.ErrInvalidInput)
	}

	if patch.Title != nil {
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	switch {
	case patch.ClearDueDate:
		task.DueDate = nil
	case patch.DueDate != nil && !patch.DueDate.IsZero():
		due := *patch.DueDate
		task.DueDate = &due
	}
	if patch.EstimateMinutes != nil {
		task.EstimateMinutes = *patch.EstimateMinutes
	}
	if len(patch.RemoveTags) > 0 {
		task.Tags = removeTags(task.Tags, patch.RemoveTags)
	}
	if len(patch.AddTags) > 0 {
		task.Tags = mergeTags(task.Tags, patch.AddTags)
	}

	t.logger.Debug().Str("task_id", id).Msg("task updated")
	return task.Clone(), nil
}

// DeleteTask removes the task, its subtasks, and every blockedBy edge that
// points at it. Sessions logged against it keep their minutes but lose the
// reference. Deleting an unknown id is a no-op and returns false.
func (t *Tracker) DeleteTask(id string) bool {
	if _, ok := t.tasks[id]; !ok {
		return false
	}
	delete(t.tasks, id)
	t.taskOrder = removeID(t.taskOrder, id)

	pruned := 0
	for _, other := range t.tasks {
		if other.IsBlockedBy(id) {
			other.BlockedBy = removeID(other.BlockedBy, id)
			pruned++
		}
	}
	for i := range t.sessions {
		if t.sessions[i].TaskID == id {
			t.sessions[i].TaskID = ""
		}
	}

	t.logger.Debug().Str("task_id", id).Int("edges_pruned", pruned).Msg("task deleted")
	return true
}

// Task returns a copy of the task with id.
func (t *Tracker) Task(id string) (domain.Task, error) {
	task, err := t.lookupTask(id)
	if err != nil {
		return domain.Task{}, err
	}
	return task.Clone(), nil
}

// Tasks returns copies of every task in creation order.
func (t *Tracker) Tasks() []domain.Task {
	out := make([]domain.Task, 0, len(t.taskOrder))
	for _, id := range t.taskOrder {
		out = append(out, t.tasks[id].Clone())
	}
	return out
}

func (t *Tracker) hasTask(id string) bool {
	_, ok := t.tasks[id]
	return ok
}

func (t *Tracker) lookupTask(id string) (*domain.Task, error) {
	task, ok := t.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %q", cerrors.ErrNotFound, id)
	}
	return task, nil
}

// validTitle trims s and rejects blank input.
func validTitle(s, kind string) (string, error) {
	title := strings.TrimSpace(s)
	if title == "" {
		return "", fmt.Errorf("%w: %s title must not be blank", cerrors.ErrInvalidInput, kind)
	}
	return title, nil
}

// mergeTags appends the trimmed, non-empty tags in add that are not already present.
func mergeTags(tags, add []string) []string {
	for _, tag := range add {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

func removeTags(tags, remove []string) []string {
	out := tags[:0]
	for _, tag := range tags {
		if !slices.Contains(remove, tag) {
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
