package metrics

import (
	"fmt"

	"github.com/mrz1836/cadence/internal/calendar"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// Summarize computes the summary of window around ref.
//
// A reference date before any recorded data yields all-zero totals.
func (a *Aggregator) Summarize(ref calendar.Day, window Window) (Summary, error) {
	if ref.IsZero() {
		return Summary{}, fmt.Errorf("%w: summary needs a reference date", cerrors.ErrInvalidInput)
	}
	idx := a.index()

	switch window {
	case WindowDay:
		day := idx.day(ref)
		return Summary{Window: window, Reference: ref, Day: &day}, nil
	case WindowWeek:
		week := idx.week(ref)
		return Summary{Window: window, Reference: ref, Week: &week}, nil
	default:
		return Summary{}, fmt.Errorf("%w: %q must be one of %v", cerrors.ErrInvalidWindow, window, ValidWindows())
	}
}

// Day is shorthand for the day-mode totals of ref.
func (a *Aggregator) Day(ref calendar.Day) DayStats {
	return a.index().day(ref)
}

// dayIndex buckets every completion into its local calendar day.
type dayIndex struct {
	days       map[calendar.Day]*DayStats
	habitCount int
}

// index reads the source once. Habit logs for habits that no longer exist
// are ignored so the habit rate can never exceed 100%.
func (a *Aggregator) index() dayIndex {
	idx := dayIndex{days: make(map[calendar.Day]*DayStats)}

	for _, task := range a.src.Tasks() {
		if task.Completed && task.CompletedAt != nil {
			idx.bucket(calendar.Of(*task.CompletedAt, a.loc)).TasksCompleted++
		}
	}

	habits := a.src.Habits()
	idx.habitCount = len(habits)
	known := make(map[string]struct{}, len(habits))
	for _, h := range habits {
		known[h.ID] = struct{}{}
	}
	for _, key := range a.src.HabitLogs() {
		if _, ok := known[key.HabitID]; ok && !key.Day.IsZero() {
			idx.bucket(key.Day).HabitsCompleted++
		}
	}

	for _, s := range a.src.Sessions() {
		idx.bucket(calendar.Of(s.CompletedAt, a.loc)).FocusMinutes += s.Minutes
	}
	return idx
}

func (idx dayIndex) bucket(d calendar.Day) *DayStats {
	stats, ok := idx.days[d]
	if !ok {
		stats = &DayStats{Date: d}
		idx.days[d] = stats
	}
	return stats
}

func (idx dayIndex) day(d calendar.Day) DayStats {
	if stats, ok := idx.days[d]; ok {
		return *stats
	}
	return DayStats{Date: d}
}

func (idx dayIndex) window(w calendar.Week) WindowStats {
	var total DayStats
	days := w.Days()
	for _, d := range days {
		total.add(idx.day(d))
	}
	out := WindowStats{
		Start:            w.Start,
		End:              w.End,
		TasksCompleted:   total.TasksCompleted,
		HabitCompletions: total.HabitsCompleted,
		HabitSlots:       len(days) * idx.habitCount,
		FocusMinutes:     total.FocusMinutes,
	}
	out.HabitRate = rate(out.HabitCompletions, out.HabitSlots)
	return out
}

func (idx dayIndex) week(ref calendar.Day) WeekSummary {
	current := calendar.WeekOf(ref)
	summary := WeekSummary{
		Current:  idx.window(current),
		Previous: idx.window(current.Previous()),
	}

	for i, d := range calendar.Range(current.Start, ref) {
		stats := idx.day(d)
		summary.Days = append(summary.Days, stats)
		if i == 0 || stats.Score() > summary.BestDay.Score() {
			summary.BestDay = stats
		}
	}

	summary.Delta = Delta{
		TasksCompleted: summary.Current.TasksCompleted - summary.Previous.TasksCompleted,
		FocusMinutes:   summary.Current.FocusMinutes - summary.Previous.FocusMinutes,
		HabitRate:      summary.Current.HabitRate - summary.Previous.HabitRate,
	}
	return summary
}

// rate returns n/d as a percentage, or 0 when d is 0.
func rate(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
