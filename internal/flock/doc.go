// Package flock provides cross-platform advisory file locks.
//
// cadence commands load the data file, apply one change and save it again.
// Two commands running at once would otherwise overwrite each other, so every
// load-modify-save cycle holds an exclusive lock on a sibling lock file:
//
//	lock, err := flock.Acquire(ctx, "/home/me/.cadence/data.lock", 5*time.Second)
//	if err != nil {
//	    return err // errors.ErrLockTimeout when another process holds it
//	}
//	defer func() { _ = lock.Release() }()
package flock
