//go:build unix

package descriptor

import (
	"os"

	"github.com/arthur-debert/deskset/pkg/errors"
	"golang.org/x/sys/unix"
)

// FileLocker takes a non-blocking flock(2) on a sidecar "<path>.lock" file.
// The lock lives on the real filesystem regardless of the FS used for the
// descriptor itself, and is released when the process exits.
type FileLocker struct{}

func (FileLocker) Lock(path string) (func() error, error) {
	name := lockPath(path)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigWrite, "cannot open lock file %s", name)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, errors.Newf(errors.ErrLocked, "descriptor %s is being modified by another deskset process", path).
				WithDetail("lock", name)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigWrite, "cannot lock %s", name)
	}

	return func() error {
		uerr := unix.Flock(int(f.Fd()), unix.LOCK_UN)
		cerr := f.Close()
		if uerr != nil {
			return uerr
		}
		return cerr
	}, nil
}
