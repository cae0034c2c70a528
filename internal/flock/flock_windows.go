//go:build windows

package flock

import "golang.org/x/sys/windows"

// LockFileEx parameters: lock the first byte of the file, which is enough
// for an advisory lock.
const (
	lockReserved  = 0
	lockBytesLow  = 1
	lockBytesHigh = 0
)

// tryExclusive takes an exclusive lock on fd without blocking.
func tryExclusive(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

func unlock(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}
