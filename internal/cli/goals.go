package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/metrics"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// AddGoalsCommand adds the goals command group to the root command.
func AddGoalsCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show or change your daily goals",
		Long: `Daily goals are targets for completed tasks, habit check-ins and focus
minutes. Until you set your own, the goals.* configuration values apply.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show today's progress toward your goals",
		Args:  cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runGoalsShow(ctx, cmd, out)
		}),
	})
	addGoalsSetCmd(cmd)

	root.AddCommand(cmd)
}

// goalsView is the JSON payload of the goals commands.
type goalsView struct {
	Goals    domain.DailyGoals  `json:"goals"`
	Stored   bool               `json:"stored"`
	Progress metrics.GoalReport `json:"progress"`
}

func loadGoalsView(s *session, tr *tracker.Tracker) goalsView {
	_, stored := tr.StoredDailyGoals()
	goals := s.goals(tr)
	day := metrics.New(tr, s.loc).Day(s.today())
	return goalsView{Goals: goals, Stored: stored, Progress: metrics.GoalProgress(day, goals)}
}

func runGoalsShow(ctx context.Context, cmd *cobra.Command, out tui.Output) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var view goalsView
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		view = loadGoalsView(s, tr)
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, view, func(w io.Writer) {
		writeGoals(w, view)
	})
}

func writeGoals(w io.Writer, view goalsView) {
	source := "defaults"
	if view.Stored {
		source = "custom"
	}
	_, _ = fmt.Fprintf(w, "Daily goals (%s)\n", source)
	for _, row := range []struct {
		label  string
		status metrics.GoalStatus
		format func(int) string
	}{
		{"Tasks", view.Progress.Tasks, strconv.Itoa},
		{"Habits", view.Progress.Habits, strconv.Itoa},
		{"Focus", view.Progress.FocusMinutes, tui.FormatMinutes},
	} {
		icon := tui.IconOpen
		if row.status.Met {
			icon = tui.IconDone
		}
		_, _ = fmt.Fprintf(w, "  %s %s %s / %s (%d%%)\n", icon,
			tui.PadLabel(row.label, 7), row.format(row.status.Current), row.format(row.status.Target), row.status.Percent)
	}
}

// goalsSetOptions holds the flags of goals set.
type goalsSetOptions struct {
	tasks  int
	habits int
	focus  int
	reset  bool
}

func addGoalsSetCmd(parent *cobra.Command) {
	var opts goalsSetOptions

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set your daily goals",
		Long: `Set your daily goals. Flags you omit keep their current value.

Examples:
  cadence goals set --tasks 3 --focus 120
  cadence goals set --reset`,
		Args: cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runGoalsSet(ctx, cmd, out, opts)
		}),
	}
	cmd.Flags().IntVar(&opts.tasks, "tasks", 0, "tasks to complete per day")
	cmd.Flags().IntVar(&opts.habits, "habits", 0, "habit check-ins per day")
	cmd.Flags().IntVar(&opts.focus, "focus", 0, "focus minutes per day")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "forget custom goals and use the defaults")
	cmd.MarkFlagsMutuallyExclusive("reset", "tasks")
	cmd.MarkFlagsMutuallyExclusive("reset", "habits")
	cmd.MarkFlagsMutuallyExclusive("reset", "focus")

	parent.AddCommand(cmd)
}

func runGoalsSet(ctx context.Context, cmd *cobra.Command, out tui.Output, opts goalsSetOptions) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	var view goalsView
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if opts.reset {
			tr.ClearDailyGoals()
		} else {
			goals := s.goals(tr)
			if changed("tasks") {
				goals.Tasks = opts.tasks
			}
			if changed("habits") {
				goals.Habits = opts.habits
			}
			if changed("focus") {
				goals.FocusMinutes = opts.focus
			}
			if err := tr.SetDailyGoals(goals); err != nil {
				return err
			}
		}
		view = loadGoalsView(s, tr)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Bool("reset", opts.reset).Msg("daily goals changed")
	return emit(cmd, out, view, func(w io.Writer) {
		out.Success("Daily goals updated")
		writeGoals(w, view)
	})
}
