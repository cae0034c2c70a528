package tracker

import (
	"fmt"

	"github.com/mrz1836/cadence/internal/constants"
	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// State is a detached, serializable copy of everything a Tracker owns.
// Mutating a State never affects the Tracker it came from.
type State struct {
	SchemaVersion string                `yaml:"schema_version" json:"schema_version"`
	Projects      []domain.Project      `yaml:"projects,omitempty" json:"projects,omitempty"`
	Tasks         []domain.Task         `yaml:"tasks,omitempty" json:"tasks,omitempty"`
	Habits        []domain.Habit        `yaml:"habits,omitempty" json:"habits,omitempty"`
	HabitLogs     []domain.HabitLogKey  `yaml:"habit_logs,omitempty" json:"habit_logs,omitempty"`
	Sessions      []domain.FocusSession `yaml:"sessions,omitempty" json:"sessions,omitempty"`
	Goals         *domain.DailyGoals    `yaml:"goals,omitempty" json:"goals,omitempty"`
}

// State exports a deep copy of the tracker's records.
func (t *Tracker) State() State {
	s := State{
		SchemaVersion: constants.SnapshotSchemaVersion,
		Projects:      t.Projects(),
		Tasks:         t.Tasks(),
		Habits:        t.Habits(),
		HabitLogs:     t.HabitLogs(),
		Sessions:      t.Sessions(),
	}
	if g, ok := t.StoredDailyGoals(); ok {
		s.Goals = &g
	}
	return s
}

// Restore rebuilds a Tracker from state.
//
// Records with blank or duplicate identifiers (subtask ids are checked per
// task) and tasks with an unknown priority are rejected with ErrInvalidInput.
// Everything else is repaired rather than refused: a missing priority becomes
// the default, tags are trimmed and deduplicated, dangling
// references are cleared, self edges and edges that would close a cycle are
// dropped (first edge in task order wins), and habit logs for unknown habits
// are discarded. Each repair is logged at warn level.
func Restore(state State, opts ...Option) (*Tracker, error) {
	t := New(opts...)

	for _, p := range state.Projects {
		if err := checkID("project", p.ID, t.projects); err != nil {
			return nil, err
		}
		t.projects[p.ID] = &p
		t.projectOrder = append(t.projectOrder, p.ID)
	}

	for _, h := range state.Habits {
		if err := checkID("habit", h.ID, t.habits); err != nil {
			return nil, err
		}
		t.habits[h.ID] = &h
		t.habitOrder = append(t.habitOrder, h.ID)
	}

	// Insert every task without edges first so edges can be validated
	// against the full set of ids.
	for i := range state.Tasks {
		src := &state.Tasks[i]
		if err := checkID("task", src.ID, t.tasks); err != nil {
			return nil, err
		}
		if err := checkTaskFields(src); err != nil {
			return nil, err
		}
		task := src.Clone()
		task.BlockedBy = nil
		if task.Priority == "" {
			task.Priority = domain.DefaultPriority
		}
		task.Tags = mergeTags(nil, task.Tags)
		if task.ProjectID != "" && t.projects[task.ProjectID] == nil {
			t.logger.Warn().Str("task_id", task.ID).Str("project_id", task.ProjectID).Msg("clearing unknown project reference")
			task.ProjectID = ""
		}
		for j := range task.Subtasks {
			task.Subtasks[j].TaskID = task.ID
		}
		if !task.Completed {
			task.CompletedAt = nil
		}
		t.tasks[task.ID] = &task
		t.taskOrder = append(t.taskOrder, task.ID)
	}

	for i := range state.Tasks {
		src := &state.Tasks[i]
		task := t.tasks[src.ID]
		for _, dep := range src.BlockedBy {
			switch {
			case dep == src.ID, !t.hasTask(dep):
				t.logger.Warn().Str("task_id", src.ID).Str("depends_on", dep).Msg("dropping invalid dependency")
			case task.IsBlockedBy(dep):
				// duplicate
			case t.reaches(dep, src.ID):
				t.logger.Warn().Str("task_id", src.ID).Str("depends_on", dep).Msg("dropping cyclic dependency")
			default:
				task.BlockedBy = append(task.BlockedBy, dep)
			}
		}
	}

	for _, key := range state.HabitLogs {
		if t.habits[key.HabitID] == nil || key.Day.IsZero() {
			t.logger.Warn().Str("habit_id", key.HabitID).Stringer("date", key.Day).Msg("dropping orphan habit log")
			continue
		}
		t.habitLogs[key] = struct{}{}
	}

	for _, s := range state.Sessions {
		if s.ID == "" || s.Minutes <= 0 {
			t.logger.Warn().Str("session_id", s.ID).Int("minutes", s.Minutes).Msg("dropping invalid focus session")
			continue
		}
		if s.TaskID != "" && !t.hasTask(s.TaskID) {
			s.TaskID = ""
		}
		t.sessions = append(t.sessions, s)
	}

	if state.Goals != nil {
		if err := t.SetDailyGoals(*state.Goals); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func checkID[V any](kind, id string, seen map[string]*V) error {
	if id == "" {
		return fmt.Errorf("%w: %s with empty id", cerrors.ErrInvalidInput, kind)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%w: duplicate %s id %q", cerrors.ErrInvalidInput, kind, id)
	}
	return nil
}

func checkTaskFields(task *domain.Task) error {
	if task.Priority != "" && !task.Priority.IsValid() {
		return fmt.Errorf("%w: task %q has priority %q, want one of %v",
			cerrors.ErrInvalidInput, task.ID, task.Priority, domain.ValidPriorities())
	}
	seen := make(map[string]*domain.Subtask, len(task.Subtasks))
	for i := range task.Subtasks {
		sub := &task.Subtasks[i]
		if err := checkID("subtask", sub.ID, seen); err != nil {
			return fmt.Errorf("task %q: %w", task.ID, err)
		}
		seen[sub.ID] = sub
	}
	return nil
}
