// Package preflight answers one question before any file is touched:
// does the storage backing the target discard freed blocks on deletion?
// On such storage a content overwrite is pointless and possibly
// ineffective, so the tool refuses to run.
package preflight

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// discardActiveIn scans an fstab-style mount table and reports whether
// the mount point holding path carries the discard option. The holding
// mount is the longest mount point that prefixes path, so nested mounts
// resolve to the innermost one.
func discardActiveIn(r io.Reader, path string) (bool, error) {
	best := ""
	bestDiscard := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		mount, opts := fields[1], fields[3]
		if !within(path, mount) {
			continue
		}
		if len(mount) > len(best) || best == "" {
			best = mount
			bestDiscard = hasOption(opts, "discard")
		}
	}
	if err := sc.Err(); err != nil {
		return false, errors.Wrap(err, "failed to scan mount table")
	}
	return bestDiscard, nil
}

func hasOption(opts, want string) bool {
	for _, opt := range strings.Split(opts, ",") {
		if opt == want || strings.HasPrefix(opt, want+"=") {
			return true
		}
	}
	return false
}

func within(path, mount string) bool {
	if mount == "/" {
		return true
	}
	return path == mount || strings.HasPrefix(path, mount+"/")
}
