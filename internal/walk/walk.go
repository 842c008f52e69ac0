// Package walk drives the wipe of whole directory trees: every file under
// a root is sanitized, then directories are removed strictly inside-out,
// each one checked to be empty immediately before its deletion.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/stefanos/scour/internal/sanitize"
)

// Summary counts what a single WipeTree call deleted.
type Summary struct {
	FilesDeleted  int
	DirsDeleted   int
	FilesRetained int
}

type fileEntry struct {
	path string
	size int64
}

// Walker wipes directory trees using a shared Sanitizer.
type Walker struct {
	san    *sanitize.Sanitizer
	logger *zap.Logger
}

// New creates a Walker.
func New(san *sanitize.Sanitizer, logger *zap.Logger) *Walker {
	return &Walker{
		san:    san,
		logger: logger.Named("walk"),
	}
}

// WipeTree sanitizes every file under root and removes the emptied
// directory structure, root included. A root that does not exist, or a
// subtree containing no files at all, is left untouched and reported as a
// no-op. A per-file failure retains that file and continues; the root
// removal at the end then fails loudly because the directory is not empty.
func (w *Walker) WipeTree(root string) (Summary, error) {
	var sum Summary

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("path does not exist, skipping", zap.String("root", root))
		return sum, nil
	}
	if err != nil {
		return sum, errors.Wrapf(err, "failed to stat %q", root)
	}

	// A plain file as root wipes just that file.
	if !info.IsDir() {
		deleted, serr := w.san.Sanitize(root)
		if !deleted {
			sum.FilesRetained++
			return sum, serr
		}
		sum.FilesDeleted++
		return sum, nil
	}

	files, err := collectFiles(root)
	if err != nil {
		return sum, errors.Wrapf(err, "failed to enumerate %q", root)
	}
	if len(files) == 0 {
		w.logger.Info("no files under root, leaving untouched", zap.String("root", root))
		return sum, nil
	}

	// Smaller files first so quick deletions surface progress early.
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].size < files[j].size
	})

	for _, fe := range files {
		deleted, serr := w.san.Sanitize(fe.path)
		if !deleted {
			sum.FilesRetained++
			w.logger.Warn("file retained", zap.String("path", fe.path), zap.Error(serr))
			continue
		}
		sum.FilesDeleted++
	}
	w.logger.Info("files processed",
		zap.String("root", root),
		zap.Int("deleted", sum.FilesDeleted),
		zap.Int("retained", sum.FilesRetained))

	n, err := w.removeEmptyDirs(root)
	sum.DirsDeleted += n
	if err != nil {
		return sum, err
	}

	// The root goes last and unconditionally: if a retained file kept part
	// of the tree alive this fails, which is exactly the signal we want.
	if err := removeDir(root); err != nil {
		return sum, errors.Wrapf(err, "failed to delete root %q", root)
	}
	sum.DirsDeleted++

	w.logger.Info("tree removed",
		zap.String("root", root),
		zap.Int("files", sum.FilesDeleted),
		zap.Int("dirs", sum.DirsDeleted))
	return sum, nil
}

// collectFiles lists every regular file under root with its size.
func collectFiles(root string) ([]fileEntry, error) {
	var files []fileEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, fileEntry{path: path, size: info.Size()})
		return nil
	})
	return files, err
}

// removeEmptyDirs deletes every directory strictly below root that is
// empty at the moment of its deletion, working deepest-first so parents
// empty out as their children go. The emptiness check is a live ReadDir,
// never a snapshot from the earlier enumeration: sanitization may have
// retained files that were expected to be gone.
func (w *Walker) removeEmptyDirs(root string) (int, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to enumerate directories under %q", root)
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})

	deleted := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return deleted, errors.Wrapf(err, "failed to re-check %q", dir)
		}
		if len(entries) != 0 {
			// Still holds a retained file or a non-empty child; not ours
			// to delete.
			continue
		}
		if err := removeDir(dir); err != nil {
			return deleted, errors.Wrapf(err, "failed to delete directory %q", dir)
		}
		deleted++
	}
	return deleted, nil
}

func removeDir(dir string) error {
	// Clear restrictive bits first so the removal cannot be blocked.
	if err := os.Chmod(dir, 0o700); err != nil {
		return err
	}
	return os.Remove(dir)
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
