package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/capture"
	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// AddTaskCommand adds the task command group to the root command.
func AddTaskCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Add, list, edit and complete tasks",
	}

	addTaskAddCmd(cmd)
	addTaskCaptureCmd(cmd)
	addTaskListCmd(cmd)
	addTaskShowCmd(cmd)
	addTaskEditCmd(cmd)
	addTaskDoneCmd(cmd)
	addTaskRmCmd(cmd)

	root.AddCommand(cmd)
}

// taskAddOptions holds the flags of task add.
type taskAddOptions struct {
	description string
	project     string
	priority    string
	due         string
	estimate    int
	tags        []string
}

func addTaskAddCmd(parent *cobra.Command) {
	var opts taskAddOptions

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task",
		Long: `Add a new incomplete task.

Examples:
  cadence task add Write quarterly report
  cadence task add "Call the bank" --priority high --due tomorrow
  cadence task add Refactor parser --project p-1a2b3c4d --tag code --estimate 90`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runTaskAdd(ctx, cmd, out, joinArgs(args), opts)
		}),
	}

	cmd.Flags().StringVarP(&opts.description, "desc", "d", "", "task description")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "project id")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "priority (urgent|high|medium|low)")
	cmd.Flags().StringVar(&opts.due, "due", "", "due date (today|tomorrow|yyyy-mm-dd)")
	cmd.Flags().IntVar(&opts.estimate, "estimate", 0, "time estimate in minutes")
	cmd.Flags().StringSliceVarP(&opts.tags, "tag", "t", nil, "tag (repeatable)")

	parent.AddCommand(cmd)
}

func runTaskAdd(ctx context.Context, cmd *cobra.Command, out tui.Output, title string, opts taskAddOptions) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	priority, err := domain.ParsePriority(opts.priority)
	if err != nil {
		return err
	}
	in := tracker.TaskInput{
		Title:           title,
		Description:     opts.description,
		ProjectID:       opts.project,
		Priority:        priority,
		EstimateMinutes: opts.estimate,
		Tags:            opts.tags,
	}
	if opts.due != "" {
		due, err := parseDay(opts.due, s.today())
		if err != nil {
			return err
		}
		in.DueDate = &due
	}

	var task domain.Task
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		task, err = tr.AddTask(in)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("task_id", task.ID).Msg("task added")
	return emit(cmd, out, task, func(_ io.Writer) {
		out.Success(fmt.Sprintf("Added %s %s", task.ID, task.Title))
	})
}

// captureView is the JSON payload of task capture.
type captureView struct {
	Parsed capture.Result `json:"parsed"`
	Task   domain.Task    `json:"task"`
}

func addTaskCaptureCmd(parent *cobra.Command) {
	var (
		project string
		tags    []string
	)

	cmd := &cobra.Command{
		Use:   "capture <text...>",
		Short: "Add a task from a quick-capture line",
		Long: `Add a task from a single line of text with inline markers:

  #project   assign to a project by id or name prefix (first marker only)
  !high      high priority (also !urgent); !low for low priority
  @today     due today; @tomorrow due tomorrow

Recognized markers are removed from the title. Unknown #names stay in it.

Examples:
  cadence task capture Write report #work !high @tomorrow
  cadence task capture "Buy milk @today" --tag errands`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runTaskCapture(ctx, cmd, out, joinArgs(args), project, tags)
		}),
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project id used when the text names none")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")

	parent.AddCommand(cmd)
}

func runTaskCapture(ctx context.Context, cmd *cobra.Command, out tui.Output, text, project string, tags []string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var view captureView
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		view.Parsed = capture.Parse(text, capture.Context{
			Projects:  tr.Projects(),
			ProjectID: project,
			Tags:      tags,
			Today:     s.today(),
		})
		view.Task, err = tr.AddTask(tracker.TaskInput{
			Title:     view.Parsed.Title,
			ProjectID: view.Parsed.ProjectID,
			Priority:  view.Parsed.Priority,
			DueDate:   view.Parsed.DueDate,
			Tags:      view.Parsed.Tags,
		})
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Debug().Str("text", text).Str("title", view.Parsed.Title).Msg("capture parsed")
	s.logger.Info().Str("task_id", view.Task.ID).Msg("task captured")
	return emit(cmd, out, view, func(w io.Writer) {
		out.Success(fmt.Sprintf("Added %s %s", view.Task.ID, view.Task.Title))
		writeTaskMeta(w, view.Task, s.today())
	})
}

// writeTaskMeta prints the optional attributes of a task, one per line.
func writeTaskMeta(w io.Writer, task domain.Task, today calendar.Day) {
	_, _ = fmt.Fprintf(w, "  priority: %s\n", tui.PriorityStyle(task.Priority).Render(titleCase(string(task.Priority))))
	if task.ProjectID != "" {
		_, _ = fmt.Fprintf(w, "  project:  %s\n", task.ProjectID)
	}
	if task.DueDate != nil {
		_, _ = fmt.Fprintf(w, "  due:      %s (%s)\n", task.DueDate, tui.DueLabel(*task.DueDate, today))
	}
	if len(task.Tags) > 0 {
		_, _ = fmt.Fprintf(w, "  tags:     %v\n", task.Tags)
	}
}
