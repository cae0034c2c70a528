package cli

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/cadence/internal/calendar"
	"github.com/mrz1836/cadence/internal/clock"
	"github.com/mrz1836/cadence/internal/config"
	"github.com/mrz1836/cadence/internal/domain"
	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/snapshot"
	"github.com/mrz1836/cadence/internal/tracker"
)

type (
	clockKey struct{}
	idGenKey struct{}
)

// contextWithClock makes commands run against c instead of the system clock.
func contextWithClock(ctx context.Context, c clock.Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, c)
}

// contextWithIDGenerator makes commands mint identifiers with gen.
func contextWithIDGenerator(ctx context.Context, gen tracker.IDGenerator) context.Context {
	return context.WithValue(ctx, idGenKey{}, gen)
}

// session is everything one command invocation needs to reach the data file.
// Each command loads the snapshot, runs exactly one engine operation on a
// restored tracker, and saves the result.
type session struct {
	cfg    *config.Config
	loc    *time.Location
	store  *snapshot.FileStore
	clock  clock.Clock
	idGen  tracker.IDGenerator
	logger zerolog.Logger
}

// openSession loads configuration and prepares the data file store.
func openSession(ctx context.Context) (*session, error) {
	logger := GetLogger()

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalidCalendar, "timezone %q: %v", cfg.Calendar.Timezone, err)
	}
	path, err := cfg.DataFilePath()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		loc:    loc,
		store:  snapshot.NewFileStore(path, cfg.Storage.LockTimeout, logger),
		clock:  clock.RealClock{},
		logger: logger,
	}
	if c, ok := ctx.Value(clockKey{}).(clock.Clock); ok {
		s.clock = c
	}
	if gen, ok := ctx.Value(idGenKey{}).(tracker.IDGenerator); ok {
		s.idGen = gen
	}
	return s, nil
}

// today is the current calendar day in the configured timezone.
func (s *session) today() calendar.Day {
	return calendar.Today(s.clock, s.loc)
}

func (s *session) restore(state tracker.State) (*tracker.Tracker, error) {
	opts := []tracker.Option{tracker.WithClock(s.clock), tracker.WithLogger(s.logger)}
	if s.idGen != nil {
		opts = append(opts, tracker.WithIDGenerator(s.idGen))
	}
	return tracker.Restore(state, opts...)
}

// read hands fn a tracker restored from the data file. Changes fn makes are
// discarded.
func (s *session) read(ctx context.Context, fn func(*tracker.Tracker) error) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	tr, err := s.restore(state)
	if err != nil {
		return err
	}
	return fn(tr)
}

// write runs fn against a restored tracker and saves the result under the
// data file lock. Nothing is saved when fn fails.
func (s *session) write(ctx context.Context, fn func(*tracker.Tracker) error) error {
	return s.store.Update(ctx, func(state tracker.State) (tracker.State, error) {
		tr, err := s.restore(state)
		if err != nil {
			return state, err
		}
		if err := fn(tr); err != nil {
			return state, err
		}
		return tr.State(), nil
	})
}

// goals returns the stored daily goals, falling back to the configured
// defaults. A configured habit goal of zero means one per current habit.
func (s *session) goals(tr *tracker.Tracker) domain.DailyGoals {
	if g, ok := tr.StoredDailyGoals(); ok {
		return g
	}
	g := domain.DailyGoals{
		Tasks:        s.cfg.Goals.Tasks,
		Habits:       s.cfg.Goals.Habits,
		FocusMinutes: s.cfg.Goals.FocusMinutes,
	}
	if g.Habits == 0 {
		g.Habits = len(tr.Habits())
	}
	return g
}

// parseDay accepts today, tomorrow, yesterday or a yyyy-mm-dd date.
func parseDay(s string, today calendar.Day) (calendar.Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return calendar.Parse(s)
}
