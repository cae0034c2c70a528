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

// AddProjectCommand adds the project command group to the root command.
func AddProjectCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long: `Projects group tasks. Quick capture resolves #name markers against
project ids and name prefixes.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name...>",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runProjectAdd(ctx, cmd, out, joinArgs(args))
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects with their open task counts",
		Args:    cobra.NoArgs,
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, _ []string, out tui.Output) error {
			return runProjectList(ctx, cmd, out)
		}),
	})
	addProjectRmCmd(cmd)

	root.AddCommand(cmd)
}

func runProjectAdd(ctx context.Context, cmd *cobra.Command, out tui.Output, name string) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var p domain.Project
	err = s.write(ctx, func(tr *tracker.Tracker) error {
		p, err = tr.AddProject(name)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("project_id", p.ID).Msg("project added")
	return emit(cmd, out, p, func(_ io.Writer) {
		out.Success(fmt.Sprintf("Added project %s %s", p.ID, p.Name))
	})
}

// projectView is a project with task counts.
type projectView struct {
	domain.Project

	OpenTasks int `json:"open_tasks"`
	DoneTasks int `json:"done_tasks"`
}

func runProjectList(ctx context.Context, cmd *cobra.Command, out tui.Output) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	views := []projectView{}
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		index := map[string]int{}
		for _, p := range tr.Projects() {
			index[p.ID] = len(views)
			views = append(views, projectView{Project: p})
		}
		for _, t := range tr.Tasks() {
			i, ok := index[t.ProjectID]
			if !ok {
				continue
			}
			if t.Completed {
				views[i].DoneTasks++
			} else {
				views[i].OpenTasks++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return emit(cmd, out, views, func(w io.Writer) {
		if len(views) == 0 {
			_, _ = fmt.Fprintln(w, "No projects.")
			return
		}
		table := tui.NewTable(w, []tui.TableColumn{
			{Name: "ID", Width: 10},
			{Name: "NAME", Width: 30},
			{Name: "OPEN", Width: 5, Align: tui.AlignRight},
			{Name: "DONE", Width: 5, Align: tui.AlignRight},
		})
		table.WriteHeader()
		for _, v := range views {
			table.WriteRow(v.ID, v.Name, fmt.Sprint(v.OpenTasks), fmt.Sprint(v.DoneTasks))
		}
	})
}

func addProjectRmCmd(parent *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm <project-id>",
		Short: "Delete a project; its tasks become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: runCommand(func(ctx context.Context, cmd *cobra.Command, args []string, out tui.Output) error {
			return runProjectRm(ctx, cmd, out, args[0], force)
		}),
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	parent.AddCommand(cmd)
}

func runProjectRm(ctx context.Context, cmd *cobra.Command, out tui.Output, id string, force bool) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	var p domain.Project
	err = s.read(ctx, func(tr *tracker.Tracker) error {
		p, err = tr.Project(id)
		return err
	})
	if err != nil {
		return err
	}
	ok, err := confirmDelete(out, force,
		fmt.Sprintf("Delete project %s %q?", p.ID, p.Name),
		"Its tasks are kept and become unassigned.")
	if err != nil || !ok {
		return err
	}

	err = s.write(ctx, func(tr *tracker.Tracker) error {
		if !tr.DeleteProject(id) {
			return fmt.Errorf("%w: project %q", errors.ErrNotFound, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return emit(cmd, out, map[string]string{"id": id}, func(_ io.Writer) {
		out.Success("Deleted project " + id)
	})
}
