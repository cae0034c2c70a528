package domain

import (
	"fmt"

	"github.com/mrz1836/cadence/internal/constants"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// DailyGoals are the per-day targets shown against the day summary.
// They have no identity and are replaced wholesale on edit.
type DailyGoals struct {
	Tasks        int `yaml:"tasks" json:"tasks"`
	Habits       int `yaml:"habits" json:"habits"`
	FocusMinutes int `yaml:"focus_minutes" json:"focus_minutes"`
}

// DefaultDailyGoals returns the goals used when none are stored.
func DefaultDailyGoals(habitCount int) DailyGoals {
	return DailyGoals{
		Tasks:        constants.DefaultGoalTasks,
		Habits:       habitCount,
		FocusMinutes: constants.DefaultGoalFocusMinutes,
	}
}

// Validate rejects negative targets.
func (g DailyGoals) Validate() error {
	if g.Tasks < 0 || g.Habits < 0 || g.FocusMinutes < 0 {
		return fmt.Errorf("%w: goals must not be negative, got %+v", cerrors.ErrInvalidInput, g)
	}
	return nil
}
