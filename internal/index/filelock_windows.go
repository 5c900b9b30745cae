//go:build windows

package index

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// Windows has no flock; LockFileEx over a one-byte region of the lock file
// gives the same exclusive, fail-fast semantics.
const lockRegionBytes uint32 = 1

func tryLockExclusive(f *os.File) error {
	var ov windows.Overlapped
	return windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		0,
		lockRegionBytes,
		0,
		&ov,
	)
}

func releaseLock(f *os.File) error {
	var ov windows.Overlapped
	return windows.UnlockFileEx(
		windows.Handle(f.Fd()),
		0,
		lockRegionBytes,
		0,
		&ov,
	)
}

// lockIsBusy reports whether err means another process holds the lock.
func lockIsBusy(err error) bool {
	return errors.Is(err, windows.ERROR_LOCK_VIOLATION) ||
		errors.Is(err, windows.ERROR_SHARING_VIOLATION)
}
