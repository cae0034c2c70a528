// Package metrics derives read-only productivity summaries from tracked records.
//
// All boundary math happens on calendar days in a single location: a task
// completed at 23:30 local time counts for that local day regardless of its
// UTC instant. Summaries are computed on demand and never written back.
package metrics

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// Score weights used to pick the best day of a week.
const (
	taskWeight  = 10
	habitWeight = 5
)

// Window selects the span a summary covers.
type Window string

// Supported windows.
const (
	WindowDay  Window = "day"
	WindowWeek Window = "week"
)

// ValidWindows returns the supported windows.
func ValidWindows() []Window {
	return []Window{WindowDay, WindowWeek}
}

// ParseWindow validates s case-insensitively. Empty input means WindowDay.
func ParseWindow(s string) (Window, error) {
	switch w := Window(strings.ToLower(strings.TrimSpace(s))); w {
	case "":
		return WindowDay, nil
	case WindowDay, WindowWeek:
		return w, nil
	default:
		return "", fmt.Errorf("%w: %q must be one of %v", cerrors.ErrInvalidWindow, s, ValidWindows())
	}
}

// Source is the read side of the entity store.
type Source interface {
	Tasks() []domain.Task
	Habits() []domain.Habit
	HabitLogs() []domain.HabitLogKey
	Sessions() []domain.FocusSession
}

// DayStats are the totals for one calendar day.
type DayStats struct {
	Date            calendar.Day `json:"date"`
	TasksCompleted  int          `json:"tasks_completed"`
	HabitsCompleted int          `json:"habits_completed"`
	FocusMinutes    int          `json:"focus_minutes"`
}

// Score ranks days against each other.
func (d DayStats) Score() int {
	return d.TasksCompleted*taskWeight + d.HabitsCompleted*habitWeight + d.FocusMinutes
}

func (d *DayStats) add(other DayStats) {
	d.TasksCompleted += other.TasksCompleted
	d.HabitsCompleted += other.HabitsCompleted
	d.FocusMinutes += other.FocusMinutes
}

// WindowStats are the totals for a full Monday through Sunday week.
type WindowStats struct {
	Start            calendar.Day `json:"start"`
	End              calendar.Day `json:"end"`
	TasksCompleted   int          `json:"tasks_completed"`
	HabitCompletions int          `json:"habit_completions"`
	// HabitSlots is days in the window times the number of habits.
	HabitSlots int `json:"habit_slots"`
	// HabitRate is HabitCompletions/HabitSlots as a percentage, 0 when there
	// are no slots.
	HabitRate    float64 `json:"habit_rate"`
	FocusMinutes int     `json:"focus_minutes"`
}

// Delta is the week-over-week change, current minus previous.
type Delta struct {
	TasksCompleted int `json:"tasks_completed"`
	FocusMinutes   int `json:"focus_minutes"`
	// HabitRate is in percentage points.
	HabitRate float64 `json:"habit_rate"`
}

// WeekSummary compares the week containing the reference date with the week before.
type WeekSummary struct {
	Current  WindowStats `json:"current"`
	Previous WindowStats `json:"previous"`
	// Days runs from the week's Monday through the reference date inclusive.
	Days    []DayStats `json:"days"`
	BestDay DayStats   `json:"best_day"`
	Delta   Delta      `json:"delta"`
}

// Summary is the result of Summarize. Exactly one of Day and Week is set,
// matching Window.
type Summary struct {
	Window    Window       `json:"window"`
	Reference calendar.Day `json:"reference"`
	Day       *DayStats    `json:"day,omitempty"`
	Week      *WeekSummary `json:"week,omitempty"`
}

// Aggregator computes summaries over a Source.
type Aggregator struct {
	src Source
	loc *time.Location
}

// New returns an Aggregator that buckets timestamps into days in loc.
// A nil loc means time.Local.
func New(src Source, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{src: src, loc: loc}
}
