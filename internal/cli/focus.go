package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// focusAtLayout is the --at format, read in the configured timezone.
const focusAtLayout = "2006-01-02 15:04"

// AddFocusCommand adds the focus command group to the root command.
func AddFocusCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Record focus time",
	}

	addFocusLogCmd(cmd)
	addFocusListCmd(cmd)

	root.AddCommand(cmd)
}

func addFocusLogCmd(parent *cobra.Command) {
	var (
		taskID string
		at     string
	)

	cmd := &cobra.Command{
		Use:   "log <minutes|duration>",
		Short: "Record a finished focus session",
		Long: `Record a finished focus session. Time logged against a task is added
to the task's spent time.

Examples:
  cadence focus log 25
  cadence focus log 1h30m --task t-1a2b3c4d
  cadence focus log 45 --at "2024-06-12 16:00"`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runFocusLog(ctx, cmd, out, args[0], taskID, at)
		}),
	}
	cmd.Flags().StringVarP(&taskID, "task", "t", "", "task the time was spent on")
	cmd.Flags().StringVar(&at, "at", "", `when the session ended ("yyyy-mm-dd hh:mm", default now)`)

	parent.AddCommand(cmd)
}

// parseMinutes accepts a whole number of minutes or a Go duration such as 1h30m.
func parseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is neither minutes nor a duration like 1h30m", errors.ErrInvalidInput, s)
	}
	return int(d.Round(time.Minute) / time.Minute), nil
}

func runFocusLog(ctx context.Context, cmd *cobra.Command, out tui.Output, duration, taskID, at string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	minutes, err := parseMinutes(duration)
	if err != nil {
		return err
	}
	in := tracker.SessionInput{TaskID: taskID, Minutes: minutes}
	if at != "" {
		if in.CompletedAt, err = time.ParseInLocation(focusAtLayout, at, s.loc); err != nil {
			return fmt.Errorf("%w: --at %q must look like %q", errors.ErrInvalidInput, at, focusAtLayout)
		}
	}

	var session domain.FocusSession
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		session, err = tr.LogSession(in)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("session_id", session.ID).Int("minutes", session.Minutes).Msg("focus session logged")
	return emit(cmd, out, session, func(_ io.Writer) {
		msg := "Logged " + tui.FormatMinutes(session.Minutes) + " of focus"
		if session.TaskID != "" {
			msg += " on " + session.TaskID
		}
		out.Success(msg)
	})
}

func addFocusListCmd(parent *cobra.Command) {
	var date string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the focus sessions of a day",
		Args:    cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runFocusList(ctx, cmd, out, date)
		}),
	}
	cmd.Flags().StringVar(&date, "date", "today", "day to show (today|yesterday|yyyy-mm-dd)")

	parent.AddCommand(cmd)
}

func runFocusList(ctx context.Context, cmd *cobra.Command, out tui.Output, date string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	day, err := parseDay(date, s.today())
	if err != nil {
		return err
	}

	sessions := []domain.FocusSession{}
	titles := map[string]string{}
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		for _, fs := range tr.Sessions() {
			if !day.Contains(fs.CompletedAt, s.loc) {
				continue
			}
			sessions = append(sessions, fs)
			if task, err := tr.Task(fs.TaskID); err == nil {
				titles[fs.TaskID] = task.Title
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, sessions, func(w io.Writer) {
		if len(sessions) == 0 {
			_, _ = fmt.Fprintf(w, "No focus sessions on %s.\n", day)
			return
		}
		total := 0
		table := tui.NewTable(w, []tui.TableColumn{
			{Name: "ENDED", Width: 5},
			{Name: "TIME", Width: 7, Align: tui.AlignRight},
			{Name: "TASK", Width: 40},
		})
		table.WriteHeader()
		for _, fs := range sessions {
			total += fs.Minutes
			table.WriteRow(fs.CompletedAt.In(s.loc).Format("15:04"), tui.FormatMinutes(fs.Minutes), titles[fs.TaskID])
		}
		_, _ = fmt.Fprintf(w, "\nTotal %s\n", tui.FormatMinutes(total))
	})
}
