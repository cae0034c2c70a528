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

// taskEditOptions holds the flags of task edit. Only flags the user set are
// applied.
type taskEditOptions struct {
	title       string
	description string
	project     string
	priority    string
	due         string
	clearDue    bool
	estimate    int
	addTags     []string
	removeTags  []string
}

func addTaskEditCmd(parent *cobra.Command) {
	var opts taskEditOptions

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Change a task's title, details or tags",
		Long: `Change a task. Only the flags you pass are applied.

Completion, dependencies and the checklist have their own commands:
task done, dep add|rm and subtask add|toggle|rm.

Examples:
  cadence task edit t-1a2b3c4d --title "Write Q3 report" --priority urgent
  cadence task edit t-1a2b3c4d --project "" --clear-due
  cadence task edit t-1a2b3c4d --tag review --untag draft`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runTaskEdit(ctx, cmd, out, args[0], opts)
		}),
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "new title")
	cmd.Flags().StringVarP(&opts.description, "desc", "d", "", "new description")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", `project id ("" to unassign)`)
	cmd.Flags().StringVar(&opts.priority, "priority", "", "priority (urgent|high|medium|low)")
	cmd.Flags().StringVar(&opts.due, "due", "", "due date (today|tomorrow|yyyy-mm-dd)")
	cmd.Flags().BoolVar(&opts.clearDue, "clear-due", false, "remove the due date")
	cmd.Flags().IntVar(&opts.estimate, "estimate", 0, "time estimate in minutes")
	cmd.Flags().StringSliceVarP(&opts.addTags, "tag", "t", nil, "add a tag (repeatable)")
	cmd.Flags().StringSliceVar(&opts.removeTags, "untag", nil, "remove a tag (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")

	parent.AddCommand(cmd)
}

func runTaskEdit(ctx context.Context, cmd *cobra.Command, out tui.Output, id string, opts taskEditOptions) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	patch, err := buildTaskPatch(cmd, opts, s)
	if err != nil {
		return err
	}

	var task domain.Task
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		task, err = tr.UpdateTask(id, patch)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("task_id", task.ID).Msg("task updated")
	return emit(cmd, out, task, func(w io.Writer) {
		out.Success(fmt.Sprintf("Updated %s %s", task.ID, task.Title))
		writeTaskMeta(w, task, s.today())
	})
}

func buildTaskPatch(cmd *cobra.Command, opts taskEditOptions, s *session) (tracker.TaskPatch, error) {
	changed := cmd.Flags().Changed
	patch := tracker.TaskPatch{
		ClearDueDate: opts.clearDue,
		AddTags:      opts.addTags,
		RemoveTags:   opts.removeTags,
	}
	if changed("title") {
		patch.Title = &opts.title
	}
	if changed("desc") {
		patch.Description = &opts.description
	}
	if changed("project") {
		patch.ProjectID = &opts.project
	}
	if changed("estimate") {
		patch.EstimateMinutes = &opts.estimate
	}
	if changed("priority") {
		p, err := domain.ParsePriority(opts.priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if changed("due") {
		due, err := parseDay(opts.due, s.today())
		if err != nil {
			return patch, err
		}
		patch.DueDate = &due
	}
	return patch, nil
}

func addTaskDoneCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "done <task-id>",
		Aliases: []string{"toggle"},
		Short:   "Complete a task, or reopen a completed one",
		Long: `Toggle a task's completion.

A task cannot be completed while any task it depends on is still open.
Reopening is always allowed.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runTaskDone(ctx, cmd, out, args[0])
		}),
	}
	parent.AddCommand(cmd)
}

func runTaskDone(ctx context.Context, cmd *cobra.Command, out tui.Output, id string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var (
		task      domain.Task
		unblocked []domain.Task
	)
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if task, err = tr.ToggleTask(id); err != nil {
			return err
		}
		if !task.Completed {
			return nil
		}
		dependents, err := tr.DependentTasks(id)
		if err != nil {
			return err
		}
		for _, d := range dependents {
			if blocked, _ := tr.IsTaskBlocked(d.ID); !blocked && !d.Completed {
				unblocked = append(unblocked, d)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("task_id", task.ID).Bool("completed", task.Completed).Msg("task toggled")
	return emit(cmd, out, task, func(_ io.Writer) {
		if !task.Completed {
			out.Info(fmt.Sprintf("Reopened %s %s", task.ID, task.Title))
			return
		}
		out.Success(fmt.Sprintf("Completed %s %s", task.ID, task.Title))
		for _, d := range unblocked {
			out.Info(fmt.Sprintf("  unblocked %s %s", d.ID, d.Title))
		}
	})
}

func addTaskRmCmd(parent *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task with its checklist. Tasks that depended on it no longer
do; focus time logged against it is kept.

At a terminal you are asked to confirm. Use --force to skip the prompt.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runTaskRm(ctx, cmd, out, args[0], force)
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	parent.AddCommand(cmd)
}

func runTaskRm(ctx context.Context, cmd *cobra.Command, out tui.Output, id string, force bool) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var task domain.Task
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		task, err = tr.Task(id)
		return err
	})
	if err != nil {
		return err
	}
	ok, err := confirmDelete(out, force,
		fmt.Sprintf("Delete task %s %q?", task.ID, task.Title),
		"Its checklist is deleted and tasks waiting on it are unblocked. This cannot be undone.")
	if err != nil || !ok {
		return err
	}

	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if !tr.DeleteTask(id) {
			return fmt.Errorf("%w: task %q", errors.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return emit(cmd, out, map[string]string{"id": id}, func(_ io.Writer) {
		out.Success("Deleted " + id)
	})
}
