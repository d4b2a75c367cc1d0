package lifecycle

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/somnisoft/crond/internal/cronerr"
)

// Lock is the single-instance guard: an exclusively-created file whose
// mere existence signals that a crond instance already owns this user's
// schedule. The default mode mirrors the original's
// O_CREAT|O_EXCL|O_WRONLY|O_TRUNC open; with FlockUpgrade the file is
// opened without O_EXCL and a non-blocking advisory flock on it decides
// ownership instead, so a lock file left behind by a crashed instance
// (whose flock the kernel released) does not wedge every future start
// (spec §9's resolved Open Question: this upgrade is opt-in, the plain
// create-exclusive default is unchanged).
type Lock struct {
	path  string
	file  *os.File
	flock bool
}

// NewLock builds a Lock for path without acquiring it.
func NewLock(path string, flockUpgrade bool) *Lock {
	return &Lock{path: path, flock: flockUpgrade}
}

// Acquire creates the lock file exclusively (or, with the flock upgrade,
// opens it and takes the flock). It returns cronerr.ErrLockHeld if another
// instance already holds it.
func (l *Lock) Acquire() error {
	flags := os.O_CREATE | os.O_EXCL | os.O_WRONLY | os.O_TRUNC
	if l.flock {
		flags = os.O_CREATE | os.O_WRONLY
	}
	f, err := os.OpenFile(l.path, flags, 0o200)
	if err != nil {
		if os.IsExist(err) {
			return cronerr.ErrLockHeld
		}
		return cronerr.Wrap(err, cronerr.KindLock, "lock create")
	}

	if l.flock {
		if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			f.Close()
			if err == unix.EWOULDBLOCK {
				return cronerr.ErrLockHeld
			}
			return cronerr.Wrap(err, cronerr.KindLock, "flock")
		}
	}
	l.file = f
	return nil
}

// Release closes and removes the lock file.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}
	closeErr := l.file.Close()
	removeErr := os.Remove(l.path)
	l.file = nil
	if closeErr != nil {
		return cronerr.Wrap(closeErr, cronerr.KindLock, "lock close")
	}
	if removeErr != nil {
		return cronerr.Wrap(removeErr, cronerr.KindLock, "lock remove")
	}
	return nil
}
