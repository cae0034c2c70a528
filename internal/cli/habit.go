package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// habitHistoryDays is how many days habit list shows, ending at the given date.
const habitHistoryDays = 7

// AddHabitCommand adds the habit command group to the root command.
func AddHabitCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track recurring habits",
	}

	addHabitAddCmd(cmd)
	addHabitListCmd(cmd)
	addHabitCheckCmd(cmd)
	addHabitRmCmd(cmd)

	root.AddCommand(cmd)
}

func addHabitAddCmd(parent *cobra.Command) {
	var target string

	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a habit",
		Example: `  cadence habit add Read 20 pages
  cadence habit add Stretch --target "twice a day"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runHabitAdd(ctx, cmd, out, joinArgs(args), target)
		}),
	}
	cmd.Flags().StringVar(&target, "target", "daily", "intended frequency, for display")

	parent.AddCommand(cmd)
}

func runHabitAdd(ctx context.Context, cmd *cobra.Command, out tui.Output, name, target string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var h domain.Habit
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		h, err = tr.AddHabit(name, target)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("habit_id", h.ID).Msg("habit added")
	return emit(cmd, out, h, func(_ io.Writer) {
		out.Success(fmt.Sprintf("Added habit %s %s", h.ID, h.Name))
	})
}

// habitView is a habit with its recent history, oldest day first.
type habitView struct {
	domain.Habit

	Date    calendar.Day `json:"date"`
	Done    bool         `json:"done"`
	History []bool       `json:"history"`
}

func addHabitListCmd(parent *cobra.Command) {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with the last week of check-ins",
		Args:    cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runHabitList(ctx, cmd, out, date)
		}),
	}
	cmd.Flags().StringVar(&date, "date", "today", "day to show (today|yesterday|yyyy-mm-dd)")

	parent.AddCommand(cmd)
}

func runHabitList(ctx context.Context, cmd *cobra.Command, out tui.Output, date string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	day, err := parseDay(date, s.today())
	if err != nil {
		return err
	}
	days := calendar.Range(day.AddDays(-(habitHistoryDays - 1)), day)

	views := []habitView{}
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		for _, h := range tr.Habits() {
			v := habitView{Habit: h, Date: day, Done: tr.HabitDone(h.ID, day)}
			for _, d := range days {
				v.History = append(v.History, tr.HabitDone(h.ID, d))
			}
			views = append(views, v)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, views, func(w io.Writer) {
		if len(views) == 0 {
			_, _ = fmt.Fprintln(w, "No habits.")
			return
		}
		table := tui.NewTable(w, []tui.TableColumn{
			{Name: "", Width: 1},
			{Name: "ID", Width: 10},
			{Name: "NAME", Width: 30},
			{Name: "TARGET", Width: 12},
			{Name: "LAST 7", Width: habitHistoryDays},
		})
		table.WriteHeader()
		for _, v := range views {
			table.WriteRow(tui.TaskIcon(v.Done, false), v.ID, v.Name, v.Target, historyStrip(v.History))
		}
	})
}

// historyStrip renders one cell per day: ✓ for done, · for missed.
func historyStrip(history []bool) string {
	var b strings.Builder
	for _, done := range history {
		if done {
			b.WriteString(tui.IconDone)
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

func addHabitCheckCmd(parent *cobra.Command) {
	var date string

	cmd := &cobra.Command{
		Use:   "check <habit-id>",
		Short: "Check a habit off for a day, or undo the check",
		Example: `  cadence habit check h-1a2b3c4d
  cadence habit check h-1a2b3c4d --date yesterday`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runHabitCheck(ctx, cmd, out, args[0], date)
		}),
	}
	cmd.Flags().StringVar(&date, "date", "today", "day to check (today|yesterday|yyyy-mm-dd)")

	parent.AddCommand(cmd)
}

// habitCheckResult is the JSON payload of habit check.
type habitCheckResult struct {
	HabitID string       `json:"habit_id"`
	Date    calendar.Day `json:"date"`
	Done    bool         `json:"done"`
}

func runHabitCheck(ctx context.Context, cmd *cobra.Command, out tui.Output, id, date string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	day, err := parseDay(date, s.today())
	if err != nil {
		return err
	}

	result := habitCheckResult{HabitID: id, Date: day}
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		result.Done, err = tr.ToggleHabit(id, day)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("habit_id", id).Stringer("date", day).Bool("done", result.Done).Msg("habit toggled")
	return emit(cmd, out, result, func(_ io.Writer) {
		if result.Done {
			out.Success(fmt.Sprintf("Checked %s for %s", id, day))
		} else {
			out.Info(fmt.Sprintf("Unchecked %s for %s", id, day))
		}
	})
}

func addHabitRmCmd(parent *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <habit-id>",
		Short: "Delete a habit and its history",
		Args:  cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runHabitRm(ctx, cmd, out, args[0], force)
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	parent.AddCommand(cmd)
}

func runHabitRm(ctx context.Context, cmd *cobra.Command, out tui.Output, id string, force bool) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var h domain.Habit
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		h, err = tr.Habit(id)
		return err
	})
	if err != nil {
		return err
	}
	ok, err := confirmDelete(out, force,
		fmt.Sprintf("Delete habit %s %q?", h.ID, h.Name),
		"Every check-in recorded for it is erased. This cannot be undone.")
	if err != nil || !ok {
		return err
	}

	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if !tr.DeleteHabit(id) {
			return fmt.Errorf("%w: habit %q", errors.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("habit_id", id).Msg("habit deleted")
	return emit(cmd, out, map[string]string{"id": id}, func(_ io.Writer) {
		out.Success("Deleted habit " + id)
	})
}
