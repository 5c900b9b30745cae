//go:build !windows

package index

import (
	"errors"
	"os"
	"syscall"
)

// tryLockExclusive takes a non-blocking flock on the rebuild lock file.
// A lock held by another process surfaces as a busy error instead of waiting.
func tryLockExclusive(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

func releaseLock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

// lockIsBusy reports whether err means another process holds the lock.
// Linux returns EWOULDBLOCK, some BSDs return EAGAIN.
func lockIsBusy(err error) bool {
	return errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN)
}
