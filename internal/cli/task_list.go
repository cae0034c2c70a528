package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/tracker"
	"github.com/mrz1836/cadence/internal/tui"
)

// taskView is a task with its derived state.
type taskView struct {
	domain.Task

	Blocked  bool              `json:"blocked"`
	Progress *tracker.Progress `json:"progress,omitempty"`
}

func newTaskView(tr *tracker.Tracker, task domain.Task) (taskView, error) {
	blocked, err := tr.IsTaskBlocked(task.ID)
	if err != nil {
		return taskView{}, err
	}
	v := taskView{Task: task, Blocked: blocked}
	if p, ok := tracker.SubtaskProgress(task.Subtasks); ok {
		v.Progress = &p
	}
	return v, nil
}

// taskListOptions holds the filters of task list.
type taskListOptions struct {
	all     bool
	blocked bool
	project string
	tag     string
}

func (o taskListOptions) matches(v taskView) bool {
	switch {
	case v.Completed && !o.all:
		return false
	case o.blocked && !v.Blocked:
		return false
	case o.project != "" && v.ProjectID != o.project:
		return false
	case o.tag != "" && !slices.Contains(v.Tags, o.tag):
		return false
	}
	return true
}

func addTaskListCmd(parent *cobra.Command) {
	var opts taskListOptions

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List open tasks, most pressing first. Blocked tasks are marked ⊘.

Examples:
  cadence task list
  cadence task list --all --project p-1a2b3c4d
  cadence task list --blocked --output json`,
		Args: cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runTaskList(ctx, cmd, out, opts)
		}),
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include completed tasks")
	cmd.Flags().BoolVar(&opts.blocked, "blocked", false, "only blocked tasks")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "only tasks in this project")
	cmd.Flags().StringVarP(&opts.tag, "tag", "t", "", "only tasks with this tag")

	parent.AddCommand(cmd)
}

func runTaskList(ctx context.Context, cmd *cobra.Command, out tui.Output, opts taskListOptions) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	views := []taskView{}
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		for _, task := range tr.Tasks() {
			v, err := newTaskView(tr, task)
			if err != nil {
				return err
			}
			if opts.matches(v) {
				views = append(views, v)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	sortTaskViews(views)
	return emit(cmd, out, views, func(w io.Writer) {
		writeTaskTable(w, views, s.today())
	})
}

// sortTaskViews puts open tasks before completed ones, then orders by
// priority. Creation order is kept within a priority.
func sortTaskViews(views []taskView) {
	slices.SortStableFunc(views, func(a, b taskView) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	})
}

func writeTaskTable(w io.Writer, views []taskView, today calendar.Day) {
	if len(views) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks.")
		return
	}

	table := tui.NewTable(w, []tui.TableColumn{
		{Name: "", Width: 1},
		{Name: "ID", Width: 10},
		{Name: "PRIORITY", Width: 8},
		{Name: "TITLE", Width: 40},
		{Name: "DUE", Width: 14},
		{Name: "CHECKLIST", Width: 9, Align: tui.AlignRight},
	})
	table.WriteHeader()
	for _, v := range views {
		priority := titleCase(string(v.Priority))
		plain := []string{
			tui.TaskIcon(v.Completed, v.Blocked),
			v.ID,
			priority,
			v.Title,
			dueText(v.DueDate, today),
			checklistText(v.Progress),
		}
		styled := slices.Clone(plain)
		styled[2] = tui.PriorityStyle(v.Priority).Render(priority)
		if v.Completed {
			styled[3] = tui.StyleDim.Render(v.Title)
		}
		table.WriteStyledRow(styled, plain)
	}
}

func dueText(due *calendar.Day, today calendar.Day) string {
	if due == nil {
		return ""
	}
	return tui.DueLabel(*due, today)
}

func checklistText(p *tracker.Progress) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", p.Completed, p.Total)
}

// taskDetail is the JSON payload of task show.
type taskDetail struct {
	taskView

	BlockingTasks  []domain.Task `json:"blocking_tasks"`
	DependentTasks []domain.Task `json:"dependent_tasks"`
}

func addTaskShowCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task with its checklist and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runTaskShow(ctx, cmd, out, args[0])
		}),
	}
	parent.AddCommand(cmd)
}

func runTaskShow(ctx context.Context, cmd *cobra.Command, out tui.Output, id string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var detail taskDetail
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		task, err := tr.Task(id)
		if err != nil {
			return err
		}
		if detail.taskView, err = newTaskView(tr, task); err != nil {
			return err
		}
		if detail.BlockingTasks, err = tr.BlockingTasks(id); err != nil {
			return err
		}
		detail.DependentTasks, err = tr.DependentTasks(id)
		return err
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, detail, func(w io.Writer) {
		writeTaskDetail(w, detail, s.today(), s.loc)
	})
}

func writeTaskDetail(w io.Writer, d taskDetail, today calendar.Day, loc *time.Location) {
	styles := tui.NewOutputStyles()
	state := "open"
	switch {
	case d.Completed:
		state = "done " + d.CompletedAt.In(loc).Format("2006-01-02 15:04")
	case d.Blocked:
		state = "blocked"
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", tui.TaskIcon(d.Completed, d.Blocked), styles.Heading.Render(d.Title))
	_, _ = fmt.Fprintf(w, "  id:       %s (%s)\n", d.ID, state)
	writeTaskMeta(w, d.Task, today)
	if d.EstimateMinutes > 0 || d.SpentMinutes > 0 {
		_, _ = fmt.Fprintf(w, "  time:     %s spent of %s\n", tui.FormatMinutes(d.SpentMinutes), tui.FormatMinutes(d.EstimateMinutes))
	}
	if d.Description != "" {
		_, _ = fmt.Fprintf(w, "\n  %s\n", strings.ReplaceAll(d.Description, "\n", "\n  "))
	}

	if d.Progress != nil {
		_, _ = fmt.Fprintf(w, "\nChecklist %s\n", tui.NewProgressBar(10).RenderCount(d.Progress.Completed, d.Progress.Total))
		for _, st := range d.Subtasks {
			_, _ = fmt.Fprintf(w, "  %s %s  %s\n", tui.TaskIcon(st.Completed, false), st.ID, st.Title)
		}
	}
	writeTaskRefs(w, "Blocked by", d.BlockingTasks)
	writeTaskRefs(w, "Unblocks", d.DependentTasks)
}

func writeTaskRefs(w io.Writer, label string, tasks []domain.Task) {
	if len(tasks) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", label)
	for _, t := range tasks {
		_, _ = fmt.Fprintf(w, "  %s %s  %s\n", tui.TaskIcon(t.Completed, false), t.ID, t.Title)
	}
}
