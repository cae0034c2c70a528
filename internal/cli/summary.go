package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/metrics"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// summaryLabelWidth aligns the labels in front of progress bars.
const summaryLabelWidth = 10

// summaryView is the JSON payload of summary. Goals are reported for day
// windows only.
type summaryView struct {
	metrics.Summary

	Goals *metrics.GoalReport `json:"goals,omitempty"`
}

// AddSummaryCommand adds the summary command to the root command.
func AddSummaryCommand(root *cobra.Command) {
	var (
		window string
		date   string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a day or week",
		Long: `Summarize completed tasks, habit check-ins and focus time.

The day window compares the day against your daily goals. The week window
covers Monday through Sunday of the week containing --date, compares it with
the previous week, and breaks it down day by day up to --date.

Examples:
  cadence summary
  cadence summary --window week
  cadence summary --date yesterday --output json`,
		Args: cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runSummary(ctx, cmd, out, window, date)
		}),
	}
	cmd.Flags().StringVarP(&window, "window", "w", string(metrics.WindowDay), "day or week")
	cmd.Flags().StringVar(&date, "date", "today", "reference day (today|yesterday|yyyy-mm-dd)")

	root.AddCommand(cmd)
}

func runSummary(ctx context.Context, cmd *cobra.Command, out tui.Output, window, date string) error {
	w, err := metrics.ParseWindow(window)
	if err != nil {
		return err
	}
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	ref, err := parseDay(date, s.today())
	if err != nil {
		return err
	}

	var view summaryView
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		if view.Summary, err = metrics.New(tr, s.loc).Summarize(ref, w); err != nil {
			return err
		}
		if view.Day != nil {
			report := metrics.GoalProgress(*view.Day, s.goals(tr))
			view.Goals = &report
		}
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, view, func(w io.Writer) {
		if view.Week != nil {
			writeWeekSummary(w, *view.Week, ref)
			return
		}
		writeDaySummary(w, *view.Day, view.Goals)
	})
}

func writeDaySummary(w io.Writer, day metrics.DayStats, goals *metrics.GoalReport) {
	styles := tui.NewOutputStyles()
	bar := tui.NewProgressBar(20)

	_, _ = fmt.Fprintln(w, styles.Heading.Render(fmt.Sprintf("%s, %s", day.Date.Weekday(), day.Date)))
	writeGoalLine(w, bar, "Tasks", goals.Tasks, strconv.Itoa)
	writeGoalLine(w, bar, "Habits", goals.Habits, strconv.Itoa)
	writeGoalLine(w, bar, "Focus", goals.FocusMinutes, tui.FormatMinutes)
	_, _ = fmt.Fprintf(w, "%s %d\n", tui.PadLabel("Score", summaryLabelWidth), day.Score())
	if goals.AllMet() {
		_, _ = fmt.Fprintln(w, styles.Success.Render(tui.IconDone+" All daily goals met"))
	}
}

func writeGoalLine(w io.Writer, bar *tui.ProgressBar, label string, g metrics.GoalStatus, format func(int) string) {
	ratio := 1.0
	if g.Target > 0 {
		ratio = float64(g.Current) / float64(g.Target)
	}
	_, _ = fmt.Fprintf(w, "%s %s %s / %s\n",
		tui.PadLabel(label, summaryLabelWidth), bar.Render(ratio), format(g.Current), format(g.Target))
}

func writeWeekSummary(w io.Writer, week metrics.WeekSummary, ref calendar.Day) {
	styles := tui.NewOutputStyles()
	cur, delta := week.Current, week.Delta

	_, _ = fmt.Fprintln(w, styles.Heading.Render(fmt.Sprintf("Week of %s to %s", cur.Start, cur.End)))
	_, _ = fmt.Fprintf(w, "%s %d (%+d vs last week)\n",
		tui.PadLabel("Tasks", summaryLabelWidth), cur.TasksCompleted, delta.TasksCompleted)
	_, _ = fmt.Fprintf(w, "%s %.1f%% of %d check-ins (%+.1f)\n",
		tui.PadLabel("Habits", summaryLabelWidth), cur.HabitRate, cur.HabitSlots, delta.HabitRate)
	_, _ = fmt.Fprintf(w, "%s %s (%s vs last week)\n",
		tui.PadLabel("Focus", summaryLabelWidth), tui.FormatMinutes(cur.FocusMinutes), signedMinutes(delta.FocusMinutes))

	best := 0
	for _, d := range week.Days {
		best = max(best, d.Score())
	}
	bar := tui.NewProgressBar(20)
	_, _ = fmt.Fprintf(w, "\nThrough %s\n", ref)
	for _, d := range week.Days {
		ratio := 0.0
		if best > 0 {
			ratio = float64(d.Score()) / float64(best)
		}
		_, _ = fmt.Fprintf(w, "%s %s %d\n", tui.PadLabel(d.Date.Weekday().String()[:3], 4), bar.Render(ratio), d.Score())
	}
	_, _ = fmt.Fprintf(w, "\nBest day: %s %s (score %d)\n", week.BestDay.Date.Weekday(), week.BestDay.Date, week.BestDay.Score())
}

func signedMinutes(m int) string {
	if m < 0 {
		return "-" + tui.FormatMinutes(-m)
	}
	return "+" + tui.FormatMinutes(m)
}
