// Package sanitize implements the per-file overwrite-verify-delete
// pipeline. A file is deleted only after its full content has been
// overwritten with the pattern byte and the overwrite has been confirmed
// by an independent read-back; any failure along the way retains the file.
package sanitize

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Sanitizer wipes single files using a shared pair of chunk buffers. It is
// not safe for concurrent use; callers process one file at a time.
type Sanitizer struct {
	bufs   *Buffers
	logger *zap.Logger
}

// New creates a Sanitizer around the given buffers.
func New(bufs *Buffers, logger *zap.Logger) *Sanitizer {
	return &Sanitizer{
		bufs:   bufs,
		logger: logger.Named("sanitize"),
	}
}

// Sanitize overwrites, verifies and deletes the file at path. It returns
// true when the file was deleted. When it returns false the file was
// retained and the error carries the reason; the caller reports it and
// moves on to the next file. Note that a retained file may already have
// been overwritten: its original content is gone either way, only the
// wipe was not confirmed.
func (s *Sanitizer) Sanitize(path string) (bool, error) {
	// Restrictive permission bits must not block the deletion later on.
	if err := os.Chmod(path, 0o600); err != nil {
		return false, errors.Wrapf(err, "failed to clear attributes of %q", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to stat %q", path)
	}
	length := info.Size()

	// Nothing to overwrite in an empty file.
	if length == 0 {
		if err := os.Remove(path); err != nil {
			return false, errors.Wrapf(err, "failed to delete empty file %q", path)
		}
		s.logger.Debug("empty file deleted", zap.String("path", path))
		return true, nil
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %q for read-write", path)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	// Hold an exclusive lock across overwrite and verify so no other
	// process can alter bytes between the write and the read-back.
	if err := lockExclusive(f); err != nil {
		return false, errors.Wrapf(err, "failed to lock %q", path)
	}

	if err := s.overwrite(f, length); err != nil {
		return false, errors.Wrapf(err, "failed to overwrite %q", path)
	}
	s.logger.Debug("overwrite complete",
		zap.String("path", path),
		zap.Int64("bytes", length))

	if err := s.verify(f, length); err != nil {
		return false, errors.Wrapf(err, "failed to verify %q", path)
	}

	// Close first: deletion happens only on a fully verified file, and
	// closing releases the lock.
	if err := f.Close(); err != nil {
		f = nil
		return false, errors.Wrapf(err, "failed to close %q", path)
	}
	f = nil

	if err := os.Remove(path); err != nil {
		return false, errors.Wrapf(err, "failed to delete %q", path)
	}
	s.logger.Debug("file wiped and deleted",
		zap.String("path", path),
		zap.Int64("bytes", length))
	return true, nil
}
