//go:build !linux

package preflight

// DiscardActive reports whether the filesystem holding path discards
// freed blocks on deletion. Only linux exposes per-mount discard state;
// elsewhere we assume the overwrite is still required.
func DiscardActive(path string) (bool, error) {
	return false, nil
}
