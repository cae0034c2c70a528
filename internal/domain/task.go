// Package domain provides the shared record types for cadence.
//
// These types mirror what the tracking engine exchanges with its
// collaborators. They carry no behavior beyond validation helpers; every
// mutation goes through internal/tracker.
//
// IMPORTANT: This package may import internal/calendar and internal/errors,
// but MUST NOT import internal/tracker or any host package.
package domain

import (
	"time"

	"github.com/mrz1836/cadence/internal/calendar"
)

// Task is a unit of work that may be blocked by other tasks.
type Task struct {
	// ID is unique and stable for the lifetime of the task.
	ID string `yaml:"id" json:"id"`

	// Title is the non-blank display name.
	Title string `yaml:"title" json:"title"`

	// Description is optional free text.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// ProjectID references the owning project, empty when unassigned.
	ProjectID string `yaml:"project_id,omitempty" json:"project_id,omitempty"`

	// Priority is one of urgent, high, medium or low.
	Priority Priority `yaml:"priority" json:"priority"`

	// Completed is mutated only by the completion gate.
	Completed bool `yaml:"completed" json:"completed"`

	// CompletedAt is set exactly when Completed is true.
	CompletedAt *time.Time `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`

	// DueDate is an optional calendar day.
	DueDate *calendar.Day `yaml:"due_date,omitempty" json:"due_date,omitempty"`

	// EstimateMinutes is the optional time estimate; 0 means none.
	EstimateMinutes int `yaml:"estimate_minutes,omitempty" json:"estimate_minutes,omitempty"`

	// SpentMinutes accumulates focus session time logged against the task.
	SpentMinutes int `yaml:"spent_minutes,omitempty" json:"spent_minutes,omitempty"`

	// Tags is ordered with set semantics.
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// Subtasks is ordered by insertion.
	Subtasks []Subtask `yaml:"subtasks,omitempty" json:"subtasks,omitempty"`

	// BlockedBy lists the tasks that must be completed first, in insertion
	// order, without duplicates and never containing ID itself.
	BlockedBy []string `yaml:"blocked_by,omitempty" json:"blocked_by,omitempty"`

	// CreatedAt records when the task was added.
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// Subtask is a checklist item owned by a single task.
type Subtask struct {
	ID        string `yaml:"id" json:"id"`
	TaskID    string `yaml:"task_id" json:"task_id"`
	Title     string `yaml:"title" json:"title"`
	Completed bool   `yaml:"completed" json:"completed"`
}

// Clone returns a deep copy of t so callers cannot reach into store-owned slices.
func (t *Task) Clone() Task {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	c.Tags = cloneStrings(t.Tags)
	c.BlockedBy = cloneStrings(t.BlockedBy)
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// IsBlockedBy reports whether id is in t.BlockedBy.
func (t *Task) IsBlockedBy(id string) bool {
	for _, dep := range t.BlockedBy {
		if dep == id {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
