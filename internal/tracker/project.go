package tracker

import (
	"fmt"

	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// AddProject creates a project.
func (t *Tracker) AddProject(name string) (domain.Project, error) {
	name, err := validTitle(name, "project")
	if err != nil {
		return domain.Project{}, err
	}
	id, err := t.generateID(prefixProject, func(id string) bool {
		_, ok := t.projects[id]
		return ok
	})
	if err != nil {
		return domain.Project{}, err
	}

	p := &domain.Project{ID: id, Name: name}
	t.projects[id] = p
	t.projectOrder = append(t.projectOrder, id)
	t.logger.Debug().Str("project_id", id).Msg("project added")
	return *p, nil
}

// DeleteProject removes a project and clears it from every task that
// referenced it. It returns false if the project does not exist.
func (t *Tracker) DeleteProject(id string) bool {
	if _, ok := t.projects[id]; !ok {
		return false
	}
	delete(t.projects, id)
	t.projectOrder = removeID(t.projectOrder, id)
	for _, task := range t.tasks {
		if task.ProjectID == id {
			task.ProjectID = ""
		}
	}
	t.logger.Debug().Str("project_id", id).Msg("project deleted")
	return true
}

// Project returns the project with id.
func (t *Tracker) Project(id string) (domain.Project, error) {
	p, ok := t.projects[id]
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: project %q", cerrors.ErrNotFound, id)
	}
	return *p, nil
}

// Projects returns every project in creation order.
func (t *Tracker) Projects() []domain.Project {
	out := make([]domain.Project, 0, len(t.projectOrder))
	for _, id := range t.projectOrder {
		out = append(out, *t.projects[id])
	}
	return out
}
