//go:build unix

package sanitize

import (
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// lockExclusive takes a non-blocking kernel-level exclusive lock on f.
// The lock rides on the descriptor and is released when f is closed, even
// if the process dies mid-wipe.
func lockExclusive(f *os.File) error {
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return errors.Wrap(err, "exclusive lock unavailable")
	}
	return nil
}
