package tracker

import "github.com/mrz1836/cadence/internal/domain"

// SetDailyGoals replaces the stored goals.
func (t *Tracker) SetDailyGoals(g domain.DailyGoals) error {
	if err := g.Validate(); err != nil {
		return err
	}
	t.goals = &g
	t.logger.Debug().Int("tasks", g.Tasks).Int("habits", g.Habits).Int("focus_minutes", g.FocusMinutes).Msg("daily goals set")
	return nil
}

// ClearDailyGoals drops the stored goals so defaults apply again.
func (t *Tracker) ClearDailyGoals() {
	t.goals = nil
}

// StoredDailyGoals returns the user's goals, if any were set.
func (t *Tracker) StoredDailyGoals() (domain.DailyGoals, bool) {
	if t.goals == nil {
		return domain.DailyGoals{}, false
	}
	return *t.goals, true
}

// DailyGoals returns the stored goals, or the defaults for the current
// number of habits.
func (t *Tracker) DailyGoals() domain.DailyGoals {
	if g, ok := t.StoredDailyGoals(); ok {
		return g
	}
	return domain.DefaultDailyGoals(len(t.habits))
}
