// Package snapshot persists tracker state as a YAML data file.
//
// The engine itself is purely in-memory. The CLI host loads a snapshot,
// restores a Tracker from it, runs one command and writes the result back.
// Every access holds an exclusive lock on a sibling lock file, and writes go
// through a temp file and rename so a crash never leaves a half-written file.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/cadence/internal/constants"
	"github.com/mrz1836/cadence/internal/errors"
	"github.com/mrz1836/cadence/internal/flock"
	"github.com/mrz1836/cadence/internal/tracker"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// FileStore reads and writes one data file.
type FileStore struct {
	path        string
	lockPath    string
	lockTimeout time.Duration
	logger      zerolog.Logger
}

// NewFileStore returns a store for the data file at path. The lock file
// lives next to it.
func NewFileStore(path string, lockTimeout time.Duration, logger zerolog.Logger) *FileStore {
	if lockTimeout <= 0 {
		lockTimeout = constants.DefaultLockTimeout
	}
	return &FileStore{
		path:        path,
		lockPath:    filepath.Join(filepath.Dir(path), constants.LockFileName),
		lockTimeout: lockTimeout,
		logger:      logger.With().Str("component", "snapshot").Logger(),
	}
}

// Path returns the data file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the data file. A missing or empty file yields an empty state.
func (s *FileStore) Load(ctx context.Context) (tracker.State, error) {
	if err := ctx.Err(); err != nil {
		return tracker.State{}, err
	}
	lock, err := flock.Acquire(ctx, s.lockPath, s.lockTimeout)
	if err != nil {
		return tracker.State{}, fmt.Errorf("failed to read data file: %w", err)
	}
	defer func() { _ = lock.Release() }()

	return s.read()
}

// Save replaces the data file with state.
func (s *FileStore) Save(ctx context.Context, state tracker.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock, err := flock.Acquire(ctx, s.lockPath, s.lockTimeout)
	if err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	defer func() { _ = lock.Release() }()

	return s.write(state)
}

// Update reads the state, passes it to fn and saves what fn returns, all
// under one lock. Nothing is written when fn fails.
func (s *FileStore) Update(ctx context.Context, fn func(tracker.State) (tracker.State, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock, err := flock.Acquire(ctx, s.lockPath, s.lockTimeout)
	if err != nil {
		return fmt.Errorf("failed to update data file: %w", err)
	}
	defer func() { _ = lock.Release() }()

	state, err := s.read()
	if err != nil {
		return err
	}
	next, err := fn(state)
	if err != nil {
		return err
	}
	return s.write(next)
}

func (s *FileStore) read() (tracker.State, error) {
	data, err := os.ReadFile(s.path) //#nosec G304 -- path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", s.path).Msg("data file not found, starting empty")
			return emptyState(), nil
		}
		return tracker.State{}, fmt.Errorf("failed to read data file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return emptyState(), nil
	}

	var state tracker.State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return tracker.State{}, fmt.Errorf("%w: %s: %v", errors.ErrSnapshotCorrupted, s.path, err) //nolint:errorlint // parse detail only
	}
	// Files written by a newer cadence are accepted as-is; files without a
	// version predate versioning.
	if state.SchemaVersion == "" {
		state.SchemaVersion = constants.SnapshotSchemaVersion
	}
	s.logger.Debug().
		Str("path", s.path).
		Str("schema_version", state.SchemaVersion).
		Int("tasks", len(state.Tasks)).
		Int("habits", len(state.Habits)).
		Msg("data file loaded")
	return state, nil
}

func (s *FileStore) write(state tracker.State) error {
	if state.SchemaVersion == "" {
		state.SchemaVersion = constants.SnapshotSchemaVersion
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := atomicWrite(s.path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	s.logger.Debug().Str("path", s.path).Int("bytes", buf.Len()).Msg("data file saved")
	return nil
}

func emptyState() tracker.State {
	return tracker.State{SchemaVersion: constants.SnapshotSchemaVersion}
}

// atomicWrite writes data to a file atomically using write-then-rename.
//
//nolint:unparam // perm kept explicit at the call site
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //#nosec G304 -- path is constructed internally
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Data must reach the disk before the rename makes it visible.
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
