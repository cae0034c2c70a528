package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// AddSubtaskCommand adds the subtask command group to the root command.
func AddSubtaskCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "subtask",
		Aliases: []string{"st"},
		Short:   "Manage a task's checklist",
		Long: `Subtasks are checklist items inside a task. Their progress is shown
next to the task; checking every item does not complete the task itself.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <task-id> <title...>",
		Short: "Add a checklist item",
		Args:  cobra.MinimumNArgs(2),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runSubtaskAdd(ctx, cmd, out, args[0], joinArgs(args[1:]))
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <task-id> <subtask-id>",
		Short: "Check or uncheck a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runSubtaskToggle(ctx, cmd, out, args[0], args[1])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <task-id> <subtask-id>",
		Short: "Delete a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runSubtaskRm(ctx, cmd, out, args[0], args[1])
		}),
	})

	root.AddCommand(cmd)
}

// subtaskView is the JSON payload of the subtask commands.
type subtaskView struct {
	Subtask  domain.Subtask    `json:"subtask"`
	Progress *tracker.Progress `json:"progress,omitempty"`
}

func progressOf(tr *tracker.Tracker, taskID string) *tracker.Progress {
	task, err := tr.Task(taskID)
	if err != nil {
		return nil
	}
	if p, ok := tracker.SubtaskProgress(task.Subtasks); ok {
		return &p
	}
	return nil
}

func writeProgress(out tui.Output, p *tracker.Progress) {
	if p == nil {
		return
	}
	out.Info("  " + tui.NewProgressBar(10).RenderCount(p.Completed, p.Total))
}

func runSubtaskAdd(ctx context.Context, cmd *cobra.Command, out tui.Output, taskID, title string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var view subtaskView
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if view.Subtask, err = tr.AddSubtask(taskID, title); err != nil {
			return err
		}
		view.Progress = progressOf(tr, taskID)
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, view, func(_ io.Writer) {
		out.Success(fmt.Sprintf("Added %s %s", view.Subtask.ID, view.Subtask.Title))
		writeProgress(out, view.Progress)
	})
}

func runSubtaskToggle(ctx context.Context, cmd *cobra.Command, out tui.Output, taskID, subtaskID string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var view subtaskView
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if view.Subtask, err = tr.ToggleSubtask(taskID, subtaskID); err != nil {
			return err
		}
		view.Progress = progressOf(tr, taskID)
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, view, func(_ io.Writer) {
		verb := "Unchecked"
		if view.Subtask.Completed {
			verb = "Checked"
		}
		out.Success(fmt.Sprintf("%s %s %s", verb, view.Subtask.ID, view.Subtask.Title))
		writeProgress(out, view.Progress)
	})
}

func runSubtaskRm(ctx context.Context, cmd *cobra.Command, out tui.Output, taskID, subtaskID string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var progress *tracker.Progress
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if !tr.DeleteSubtask(taskID, subtaskID) {
			return fmt.Errorf("%w: subtask %q of task %q", errors.ErrNotFound, subtaskID, taskID)
		}
		progress = progressOf(tr, taskID)
		return nil
	})
	if err != nil {
		return err
	}

	data := map[string]any{"id": subtaskID, "task_id": taskID, "progress": progress}
	return emit(cmd, out, data, func(_ io.Writer) {
		out.Success("Deleted " + subtaskID)
		writeProgress(out, progress)
	})
}
