//go:build linux

package preflight

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const mountsPath = "/proc/self/mounts"

// DiscardActive reports whether the filesystem holding path is mounted
// with the discard option. An unanswerable probe is a hard failure: the
// caller must not start wiping without knowing.
func DiscardActive(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to resolve %q", path)
	}
	f, err := os.Open(mountsPath)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", mountsPath)
	}
	defer f.Close()
	return discardActiveIn(f, abs)
}
