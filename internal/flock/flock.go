package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/cadence/internal/constants"
	"github.com/mrz1836/cadence/internal/errors"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Lock is a held exclusive lock on a file.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive lock on path, creating the file and its parent
// directory if needed. It retries until timeout elapses, then fails with
// errors.ErrLockTimeout. Cancelling ctx stops the retry loop.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, filePerm) //#nosec G302,G304 -- lock file needs write access, path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := tryExclusive(f.Fd()); err == nil {
			return &Lock{f: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, errors.ErrLockTimeout)
		}

		time.Sleep(constants.LockRetryInterval)
	}
}

// Release unlocks and closes the lock file. Releasing a nil Lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil

	if err := unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}
