//go:build unix

package flock

import "syscall"

// tryExclusive takes an exclusive lock on fd without blocking.
func tryExclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

func unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
