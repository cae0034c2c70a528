package domain

import (
	"time"

	"github.com/mrz1836/cadence/internal/calendar"
)

// Project groups tasks.
type Project struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Habit is a recurring activity checked off per calendar day.
type Habit struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`

	// Target is the intended frequency, e.g. "daily". It is informational;
	// completion is tracked through habit logs only.
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// HabitLogKey identifies one habit completion. A habit log is a set of these
// keys, so a (habit, day) pair can only be recorded once.
type HabitLogKey struct {
	HabitID string       `yaml:"habit_id" json:"habit_id"`
	Day     calendar.Day `yaml:"date" json:"date"`
}

// FocusSession is a finished block of tracked focus time. Sessions are
// immutable once recorded.
type FocusSession struct {
	ID          string    `yaml:"id" json:"id"`
	TaskID      string    `yaml:"task_id,omitempty" json:"task_id,omitempty"`
	Minutes     int       `yaml:"minutes" json:"minutes"`
	CompletedAt time.Time `yaml:"completed_at" json:"completed_at"`
}
