package tracker

import (
	"fmt"
	"time"

	"github.com/mrz1836/cadence/internal/domain"
	cerrors "github.com/mrz1836/cadence/internal/errors"
)

// SessionInput describes a finished focus session.
type SessionInput struct {
	// TaskID optionally attributes the time to a task.
	TaskID string
	// Minutes must be positive.
	Minutes int
	// CompletedAt defaults to now when zero.
	CompletedAt time.Time
}

// LogSession records a completed focus session. Minutes attributed to a task
// are added to that task's spent time.
func (t *Tracker) LogSession(in SessionInput) (domain.FocusSession, error) {
	if in.Minutes <= 0 {
		return domain.FocusSession{}, fmt.Errorf("%w: session duration must be positive, got %d", cerrors.ErrInvalidInput, in.Minutes)
	}
	var task *domain.Task
	if in.TaskID != "" {
		var err error
		if task, err = t.lookupTask(in.TaskID); err != nil {
			return domain.FocusSession{}, err
		}
	}
	id, err := t.generateID(prefixSession, t.hasSession)
	if err != nil {
		return domain.FocusSession{}, err
	}

	at := in.CompletedAt
	if at.IsZero() {
		at = t.clock.Now()
	}
	s := domain.FocusSession{ID: id, TaskID: in.TaskID, Minutes: in.Minutes, CompletedAt: at}
	t.sessions = append(t.sessions, s)
	if task != nil {
		task.SpentMinutes += in.Minutes
	}
	t.logger.Debug().Str("session_id", id).Str("task_id", in.TaskID).Int("minutes", in.Minutes).Msg("focus session logged")
	return s, nil
}

// Sessions returns every focus session in the order they were logged.
func (t *Tracker) Sessions() []domain.FocusSession {
	out := make([]domain.FocusSession, len(t.sessions))
	copy(out, t.sessions)
	return out
}

func (t *Tracker) hasSession(id string) bool {
	for _, s := range t.sessions {
		if s.ID == id {
			return true
		}
	}
	return false
}
