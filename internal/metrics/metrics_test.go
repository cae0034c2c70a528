package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/clock"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/metrics"
	"github.com/mrz1836/cadence/internal/tracker"
)

// east is five hours behind UTC year round.
var east = time.FixedZone("EST", -5*60*60) //nolint:gochecknoglobals // test fixture

// monday starts the week used throughout (2024-06-10).
var monday = calendar.New(2024, time.June, 10) //nolint:gochecknoglobals // test fixture

type fakeSource struct {
	tasks    []domain.Task
	habits   []domain.Habit
	logs     []domain.HabitLogKey
	sessions []domain.FocusSession
}

func (f *fakeSource) Tasks() []domain.Task            { return f.tasks }
func (f *fakeSource) Habits() []domain.Habit          { return f.habits }
func (f *fakeSource) HabitLogs() []domain.HabitLogKey { return f.logs }
func (f *fakeSource) Sessions() []domain.FocusSession { return f.sessions }

func (f *fakeSource) complete(id string, when time.Time) {
	f.tasks = append(f.tasks, domain.Task{ID: id, Title: id, Completed: true, CompletedAt: &when})
}

func (f *fakeSource) session(minutes int, when time.Time) {
	f.sessions = append(f.sessions, domain.FocusSession{ID: "f", Minutes: minutes, CompletedAt: when})
}

func (f *fakeSource) check(habitID string, d calendar.Day) {
	f.logs = append(f.logs, domain.HabitLogKey{HabitID: habitID, Day: d})
}

// at returns hour o'clock on d in the test location.
func at(d calendar.Day, hour int) time.Time {
	return d.Start(east).Add(time.Duration(hour) * time.Hour)
}

// weekFixture has activity in the week of monday and the week before it.
func weekFixture() *fakeSource {
	src := &fakeSource{habits: []domain.Habit{{ID: "h-1"}, {ID: "h-2"}}}
	wednesday := monday.AddDays(2)
	prevMonday := monday.AddDays(-7)

	src.complete("a", at(monday, 10))
	src.complete("b", at(wednesday, 10))
	src.complete("c", at(wednesday, 11))
	src.complete("saturday", at(monday.AddDays(5), 10))
	src.complete("prev", at(prevMonday, 10))
	src.session(30, at(monday, 8))
	src.session(20, at(wednesday, 15))
	src.session(60, at(prevMonday.AddDays(3), 8))
	src.check("h-1", monday)
	src.check("h-1", monday.AddDays(1))
	src.check("h-1", wednesday)
	src.check("h-2", wednesday)
	src.check("h-gone", wednesday)
	src.check("h-1", prevMonday)
	return src
}

func TestParseWindow(t *testing.T) {
	t.Parallel()

	w, err := metrics.ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, metrics.WindowDay, w)

	w, err = metrics.ParseWindow(" WEEK ")
	require.NoError(t, err)
	assert.Equal(t, metrics.WindowWeek, w)

	_, err = metrics.ParseWindow("month")
	require.ErrorIs(t, err, cerrors.ErrInvalidWindow)
}

func TestSummarize_InvalidArguments(t *testing.T) {
	t.Parallel()

	agg := metrics.New(&fakeSource{}, east)
	_, err := agg.Summarize(monday, "month")
	require.ErrorIs(t, err, cerrors.ErrInvalidWindow)

	_, err = agg.Summarize(calendar.Day{}, metrics.WindowDay)
	require.ErrorIs(t, err, cerrors.ErrInvalidInput)
}

func TestSummarize_DayUsesLocalCalendar(t *testing.T) {
	t.Parallel()

	src := &fakeSource{habits: []domain.Habit{{ID: "h-1"}}}
	tuesday := monday.AddDays(1)
	// 23:30 local on Tuesday is already Wednesday in UTC.
	src.complete("late", tuesday.Start(east).Add(23*time.Hour+30*time.Minute))
	src.complete("early", at(tuesday, 0))
	src.complete("monday", at(monday, 12))
	src.tasks = append(src.tasks, domain.Task{ID: "open", Title: "open"})
	src.session(25, at(tuesday, 9))
	src.session(15, at(tuesday, 22))
	src.session(50, at(monday, 9))
	src.check("h-1", tuesday)

	summary, err := metrics.New(src, east).Summarize(tuesday, metrics.WindowDay)
	require.NoError(t, err)
	assert.Equal(t, metrics.WindowDay, summary.Window)
	assert.Equal(t, tuesday, summary.Reference)
	assert.Nil(t, summary.Week)
	require.NotNil(t, summary.Day)
	assert.Equal(t, metrics.DayStats{
		Date:            tuesday,
		TasksCompleted:  2,
		HabitsCompleted: 1,
		FocusMinutes:    40,
	}, *summary.Day)
}

func TestSummarize_Week(t *testing.T) {
	t.Parallel()

	wednesday := monday.AddDays(2)
	summary, err := metrics.New(weekFixture(), east).Summarize(wednesday, metrics.WindowWeek)
	require.NoError(t, err)
	assert.Nil(t, summary.Day)
	require.NotNil(t, summary.Week)
	week := summary.Week

	assert.InDelta(t, 4.0/14.0*100, week.Current.HabitRate, 1e-9)
	assert.Equal(t, metrics.WindowStats{
		Start:            monday,
		End:              monday.AddDays(6),
		TasksCompleted:   4,
		HabitCompletions: 4,
		HabitSlots:       14,
		HabitRate:        week.Current.HabitRate,
		FocusMinutes:     50,
	}, week.Current)

	assert.Equal(t, monday.AddDays(-7), week.Previous.Start)
	assert.Equal(t, monday.AddDays(-1), week.Previous.End)
	assert.Equal(t, 1, week.Previous.TasksCompleted)
	assert.Equal(t, 1, week.Previous.HabitCompletions)
	assert.Equal(t, 60, week.Previous.FocusMinutes)

	// Partial week: Monday through the reference date.
	require.Len(t, week.Days, 3)
	assert.Equal(t, monday, week.Days[0].Date)
	assert.Equal(t, wednesday, week.Days[2].Date)
	assert.Equal(t, metrics.DayStats{Date: wednesday, TasksCompleted: 2, HabitsCompleted: 2, FocusMinutes: 20}, week.BestDay)

	assert.Equal(t, 3, week.Delta.TasksCompleted)
	assert.Equal(t, -10, week.Delta.FocusMinutes)
	assert.InDelta(t, week.Current.HabitRate-week.Previous.HabitRate, week.Delta.HabitRate, 1e-9)
}

func TestSummarize_WeekBreakdownMatchesDayMode(t *testing.T) {
	t.Parallel()

	agg := metrics.New(weekFixture(), east)
	for _, ref := range calendar.WeekOf(monday).Days() {
		summary, err := agg.Summarize(ref, metrics.WindowWeek)
		require.NoError(t, err)

		for _, day := range summary.Week.Days {
			single, dayErr := agg.Summarize(day.Date, metrics.WindowDay)
			require.NoError(t, dayErr)
			assert.Equal(t, *single.Day, day, "breakdown for %s with ref %s", day.Date, ref)
		}
	}

	sunday := monday.AddDays(6)
	summary, err := agg.Summarize(sunday, metrics.WindowWeek)
	require.NoError(t, err)
	var total metrics.DayStats
	for _, day := range summary.Week.Days {
		total.TasksCompleted += day.TasksCompleted
		total.HabitsCompleted += day.HabitsCompleted
		total.FocusMinutes += day.FocusMinutes
	}
	assert.Equal(t, summary.Week.Current.TasksCompleted, total.TasksCompleted)
	assert.Equal(t, summary.Week.Current.HabitCompletions, total.HabitsCompleted)
	assert.Equal(t, summary.Week.Current.FocusMinutes, total.FocusMinutes)
}

func TestSummarize_NoHabitsHasZeroRate(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	src.complete("a", at(monday, 9))

	summary, err := metrics.New(src, east).Summarize(monday.AddDays(3), metrics.WindowWeek)
	require.NoError(t, err)
	assert.Zero(t, summary.Week.Current.HabitSlots)
	assert.Zero(t, summary.Week.Current.HabitRate)
	assert.Zero(t, summary.Week.Previous.HabitRate)
	assert.Zero(t, summary.Week.Delta.HabitRate)
}

func TestSummarize_BeforeAnyDataIsAllZero(t *testing.T) {
	t.Parallel()

	early := calendar.New(2001, time.January, 3)
	agg := metrics.New(weekFixture(), east)

	day, err := agg.Summarize(early, metrics.WindowDay)
	require.NoError(t, err)
	assert.Equal(t, metrics.DayStats{Date: early}, *day.Day)

	week, err := agg.Summarize(early, metrics.WindowWeek)
	require.NoError(t, err)
	assert.Zero(t, week.Week.Current.TasksCompleted)
	assert.Zero(t, week.Week.Current.HabitRate)
	assert.Zero(t, week.Week.Delta)
	// All scores tie at zero so the week's Monday wins.
	assert.Equal(t, calendar.WeekOf(early).Start, week.Week.BestDay.Date)
}

func TestSummarize_BestDayTieGoesToEarliest(t *testing.T) {
	t.Parallel()

	src := &fakeSource{}
	src.session(10, at(monday.AddDays(1), 9))
	src.session(10, at(monday.AddDays(2), 9))

	summary, err := metrics.New(src, east).Summarize(monday.AddDays(4), metrics.WindowWeek)
	require.NoError(t, err)
	assert.Equal(t, monday.AddDays(1), summary.Week.BestDay.Date)
}

func TestDayStats_Score(t *testing.T) {
	t.Parallel()

	d := metrics.DayStats{TasksCompleted: 2, HabitsCompleted: 3, FocusMinutes: 7}
	assert.Equal(t, 42, d.Score())
}

func TestSummarize_FromTracker(t *testing.T) {
	t.Parallel()

	now := at(monday, 14)
	tr := tracker.New(tracker.WithClock(clock.FixedClock{Time: now}))
	task, err := tr.AddTask(tracker.TaskInput{Title: "write"})
	require.NoError(t, err)
	_, err = tr.ToggleTask(task.ID)
	require.NoError(t, err)
	h, err := tr.AddHabit("Read", "daily")
	require.NoError(t, err)
	_, err = tr.ToggleHabit(h.ID, monday)
	require.NoError(t, err)
	_, err = tr.LogSession(tracker.SessionInput{TaskID: task.ID, Minutes: 45})
	require.NoError(t, err)

	agg := metrics.New(tr, east)
	day := agg.Day(monday)
	assert.Equal(t, metrics.DayStats{Date: monday, TasksCompleted: 1, HabitsCompleted: 1, FocusMinutes: 45}, day)

	report := metrics.GoalProgress(day, tr.DailyGoals())
	assert.Equal(t, metrics.GoalStatus{Current: 1, Target: 5, Percent: 20}, report.Tasks)
	assert.True(t, report.Habits.Met)
	assert.False(t, report.AllMet())

	// Reopening removes the completion from the summary.
	_, err = tr.ToggleTask(task.ID)
	require.NoError(t, err)
	assert.Zero(t, agg.Day(monday).TasksCompleted)
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()

	day := metrics.DayStats{TasksCompleted: 7, HabitsCompleted: 1, FocusMinutes: 45}
	report := metrics.GoalProgress(day, domain.DailyGoals{Tasks: 5, Habits: 0, FocusMinutes: 90})

	assert.Equal(t, metrics.GoalStatus{Current: 7, Target: 5, Percent: 100, Met: true}, report.Tasks)
	assert.Equal(t, metrics.GoalStatus{Current: 1, Target: 0, Percent: 100, Met: true}, report.Habits)
	assert.Equal(t, metrics.GoalStatus{Current: 45, Target: 90, Percent: 50}, report.FocusMinutes)
	assert.False(t, report.AllMet())

	report = metrics.GoalProgress(metrics.DayStats{FocusMinutes: 90}, domain.DailyGoals{FocusMinutes: 90})
	assert.True(t, report.AllMet())
}
