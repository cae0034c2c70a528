package tracker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// AddHabit creates a habit. Target is informational (e.g. "daily").
func (t *Tracker) AddHabit(name, target string) (domain.Habit, error) {
	name, err := validTitle(name, "habit")
	if err != nil {
		return domain.Habit{}, err
	}
	id, err := t.generateID(prefixHabit, func(id string) bool {
		_, ok := t.habits[id]
		return ok
	})
	if err != nil {
		return domain.Habit{}, err
	}

	h := &domain.Habit{ID: id, Name: name, Target: strings.TrimSpace(target)}
	t.habits[id] = h
	t.habitOrder = append(t.habitOrder, id)
	t.logger.Debug().Str("habit_id", id).Msg("habit added")
	return *h, nil
}

// DeleteHabit removes a habit and all of its log entries.
// It returns false if the habit does not exist.
func (t *Tracker) DeleteHabit(id string) bool {
	if _, ok := t.habits[id]; !ok {
		return false
	}
	delete(t.habits, id)
	t.habitOrder = removeID(t.habitOrder, id)
	for key := range t.habitLogs {
		if key.HabitID == id {
			delete(t.habitLogs, key)
		}
	}
	t.logger.Debug().Str("habit_id", id).Msg("habit deleted")
	return true
}

// ToggleHabit flips whether habit id was completed on day and returns the new state.
func (t *Tracker) ToggleHabit(id string, day calendar.Day) (bool, error) {
	if _, ok := t.habits[id]; !ok {
		return false, fmt.Errorf("%w: habit %q", cerrors.ErrNotFound, id)
	}
	if day.IsZero() {
		return false, fmt.Errorf("%w: habit log needs a date", cerrors.ErrInvalidInput)
	}
	key := domain.HabitLogKey{HabitID: id, Day: day}
	if _, done := t.habitLogs[key]; done {
		delete(t.habitLogs, key)
		t.logger.Debug().Str("habit_id", id).Stringer("date", day).Msg("habit unchecked")
		return false, nil
	}
	t.habitLogs[key] = struct{}{}
	t.logger.Debug().Str("habit_id", id).Stringer("date", day).Msg("habit checked")
	return true, nil
}

// HabitDone reports whether habit id was completed on day.
func (t *Tracker) HabitDone(id string, day calendar.Day) bool {
	_, done := t.habitLogs[domain.HabitLogKey{HabitID: id, Day: day}]
	return done
}

// Habit returns the habit with id.
func (t *Tracker) Habit(id string) (domain.Habit, error) {
	h, ok := t.habits[id]
	if !ok {
		return domain.Habit{}, fmt.Errorf("%w: habit %q", cerrors.ErrNotFound, id)
	}
	return *h, nil
}

// Habits returns every habit in creation order.
func (t *Tracker) Habits() []domain.Habit {
	out := make([]domain.Habit, 0, len(t.habitOrder))
	for _, id := range t.habitOrder {
		out = append(out, *t.habits[id])
	}
	return out
}

// HabitLogs returns every log entry ordered by date, then by habit creation order.
func (t *Tracker) HabitLogs() []domain.HabitLogKey {
	rank := make(map[string]int, len(t.habitOrder))
	for i, id := range t.habitOrder {
		rank[id] = i
	}
	out := make([]domain.HabitLogKey, 0, len(t.habitLogs))
	for key := range t.habitLogs {
		out = append(out, key)
	}
	slices.SortFunc(out, func(a, b domain.HabitLogKey) int {
		if c := a.Day.Compare(b.Day); c != 0 {
			return c
		}
		return rank[a.HabitID] - rank[b.HabitID]
	})
	return out
}
