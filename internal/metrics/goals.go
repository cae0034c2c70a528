package metrics

import "github.com/mrz1836/cadence/internal/domain"

// GoalStatus is progress toward one daily target.
type GoalStatus struct {
	Current int `json:"current"`
	Target  int `json:"target"`
	// Percent is capped at 100. A zero target counts as met.
	Percent int  `json:"percent"`
	Met     bool `json:"met"`
}

// GoalReport is a day's progress toward every daily goal.
type GoalReport struct {
	Tasks        GoalStatus `json:"tasks"`
	Habits       GoalStatus `json:"habits"`
	FocusMinutes GoalStatus `json:"focus_minutes"`
}

// AllMet reports whether every goal was reached.
func (r GoalReport) AllMet() bool {
	return r.Tasks.Met && r.Habits.Met && r.FocusMinutes.Met
}

// GoalProgress measures day against goals.
func GoalProgress(day DayStats, goals domain.DailyGoals) GoalReport {
	return GoalReport{
		Tasks:        goalStatus(day.TasksCompleted, goals.Tasks),
		Habits:       goalStatus(day.HabitsCompleted, goals.Habits),
		FocusMinutes: goalStatus(day.FocusMinutes, goals.FocusMinutes),
	}
}

func goalStatus(current, target int) GoalStatus {
	s := GoalStatus{Current: current, Target: target}
	if target <= 0 {
		s.Percent = 100
		s.Met = true
		return s
	}
	s.Percent = min(current*100/target, 100)
	s.Met = current >= target
	return s
}
