// Package flock provides non-blocking advisory file locking used by
// the memory-mapped directory backend to enforce single-writer/
// multiple-readers access to a directory root.
package flock

import (
	"errors"
	"os"
)

// ErrLocked is returned when the lock is already held by another
// process or file descriptor and Lock was asked not to block.
var ErrLocked = errors.New("flock: already locked")

// Lock attempts to take an exclusive, non-blocking advisory lock on
// f. It returns ErrLocked immediately if the lock is already held.
func Lock(f *os.File) error {
	return lock(f, true)
}

// RLock attempts to take a shared, non-blocking advisory lock on f.
// It returns ErrLocked immediately if an exclusive lock is held.
func RLock(f *os.File) error {
	return lock(f, false)
}

// Unlock releases a lock taken by Lock or RLock.
func Unlock(f *os.File) error {
	return unlock(f)
}
