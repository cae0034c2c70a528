// Package tracker is the task dependency and completion-state engine.
//
// A Tracker is the single owner of every task, subtask, project, habit,
// habit log and focus session. All mutations go through its methods, which
// enforce:
//
//   - a task's blockedBy set never contains the task itself and the
//     blocked-by relation is acyclic
//   - a task cannot be completed while any task it is blocked by is incomplete
//   - deleting a task removes it from every other task's blockedBy set
//
// Derived values (blocked status, subtask progress) are computed on read and
// never stored. Reads return deep copies.
//
// A Tracker is not safe for concurrent use. Operations are synchronous, run
// to completion, and either apply fully or not at all.
package tracker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/cadence/internal/clock"
	"github.com/mrz1836/cadence/internal/domain"
)

// ID prefixes for generated identifiers.
const (
	prefixTask    = "t"
	prefixSubtask = "s"
	prefixProject = "p"
	prefixHabit   = "h"
	prefixSession = "f"
)

// maxIDAttempts bounds retries when a generated id collides.
const maxIDAttempts = 16

// errIDExhausted is returned when the id generator keeps producing ids in use.
var errIDExhausted = errors.New("could not generate a unique id")

// IDGenerator returns a new identifier for the given prefix.
type IDGenerator func(prefix string) string

// NewShortID returns prefix-xxxxxxxx using the first 8 hex digits of a random UUID.
func NewShortID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the clock used to stamp completion and session times.
func WithClock(c clock.Clock) Option {
	return func(t *Tracker) {
		t.clock = c
	}
}

// WithLogger sets the logger for mutation events.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithIDGenerator replaces the random id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(t *Tracker) {
		t.newID = gen
	}
}

// Tracker owns all tracked records.
type Tracker struct {
	clock  clock.Clock
	logger zerolog.Logger
	newID  IDGenerator

	tasks     map[string]*domain.Task
	taskOrder []string

	projects     map[string]*domain.Project
	projectOrder []string

	habits     map[string]*domain.Habit
	habitOrder []string
	habitLogs  map[domain.HabitLogKey]struct{}

	sessions []domain.FocusSession
	goals    *domain.DailyGoals
}

// New creates an empty Tracker.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		clock:     clock.RealClock{},
		logger:    zerolog.Nop(),
		newID:     NewShortID,
		tasks:     make(map[string]*domain.Task),
		projects:  make(map[string]*domain.Project),
		habits:    make(map[string]*domain.Habit),
		habitLogs: make(map[domain.HabitLogKey]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// generateID returns an id with prefix that is not already in use.
func (t *Tracker) generateID(prefix string, inUse func(string) bool) (string, error) {
	for range maxIDAttempts {
		id := t.newID(prefix)
		if id != "" && !inUse(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%s: %w", prefix, errIDExhausted)
}

// removeID deletes the first occurrence of id from order.
func removeID(order []string, id string) []string {
	if i := slices.Index(order, id); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}
