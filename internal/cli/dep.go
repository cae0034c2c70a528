package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// AddDepCommand adds the dep command group to the root command.
func AddDepCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage which tasks block which",
		Long: `A task that depends on another is blocked until that task is done.
Dependencies cannot form a cycle.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <task-id> <blocker-id>",
		Short: "Make a task wait on another task",
		Example: `  cadence dep add t-deploy t-tests   # deploy waits on tests`,
		Args: cobra.ExactArgs(2),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runDepChange(ctx, cmd, out, args[0], args[1], true)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <task-id> <blocker-id>",
		Short: "Remove a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runDepChange(ctx, cmd, out, args[0], args[1], false)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list <task-id>",
		Short: "Show what a task waits on and what it unblocks",
		Args:  cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runDepList(ctx, cmd, out, args[0])
		}),
	})

	root.AddCommand(cmd)
}

// depView is the JSON payload of the dep commands.
type depView struct {
	TaskID     string        `json:"task_id"`
	Blocked    bool          `json:"blocked"`
	BlockedBy  []domain.Task `json:"blocked_by"`
	Dependents []domain.Task `json:"dependents"`
}

func loadDepView(tr *tracker.Tracker, id string) (depView, error) {
	v := depView{TaskID: id}
	var err error
	if v.Blocked, err = tr.IsTaskBlocked(id); err != nil {
		return v, err
	}
	if v.BlockedBy, err = tr.BlockingTasks(id); err != nil {
		return v, err
	}
	v.Dependents, err = tr.DependentTasks(id)
	return v, err
}

func runDepChange(ctx context.Context, cmd *cobra.Command, out tui.Output, taskID, blockerID string, add bool) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var view depView
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if add {
			if err := tr.AddDependency(taskID, blockerID); err != nil {
				return err
			}
		} else {
			tr.RemoveDependency(taskID, blockerID)
		}
		view, err = loadDepView(tr, taskID)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("task_id", taskID).Str("depends_on", blockerID).Bool("added", add).Msg("dependency changed")
	return emit(cmd, out, view, func(_ io.Writer) {
		if add {
			out.Success(fmt.Sprintf("%s now waits on %s", taskID, blockerID))
		} else {
			out.Success(fmt.Sprintf("%s no longer waits on %s", taskID, blockerID))
		}
	})
}

func runDepList(ctx context.Context, cmd *cobra.Command, out tui.Output, id string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var view depView
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		view, err = loadDepView(tr, id)
		return err
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, view, func(w io.Writer) {
		state := "ready"
		if view.Blocked {
			state = "blocked"
		}
		_, _ = fmt.Fprintf(w, "%s %s (%s)\n", tui.TaskIcon(false, view.Blocked), id, state)
		if len(view.BlockedBy) == 0 && len(view.Dependents) == 0 {
			_, _ = fmt.Fprintln(w, "No dependencies.")
			return
		}
		writeTaskRefs(w, "Blocked by", view.BlockedBy)
		writeTaskRefs(w, "Unblocks", view.Dependents)
	})
}
