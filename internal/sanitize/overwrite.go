package sanitize

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// overwrite writes the pattern across the first length bytes of f: full
// chunks first, then the remainder. The data is flushed to stable storage
// and the handle is rewound to offset 0 so verification can start
// immediately. A write failure leaves the file partially overwritten; the
// caller must retain the file, never delete it.
func (s *Sanitizer) overwrite(f *os.File, length int64) error {
	chunk := int64(s.bufs.ChunkSize())
	full := length / chunk
	remainder := length % chunk

	for i := int64(0); i < full; i++ {
		if _, err := f.Write(s.bufs.pattern); err != nil {
			return errors.Wrapf(err, "failed to write chunk %d", i)
		}
	}
	if remainder > 0 {
		if _, err := f.Write(s.bufs.pattern[:remainder]); err != nil {
			return errors.Wrap(err, "failed to write final partial chunk")
		}
	}

	if err := f.Sync(); err != nil {
		return errors.Wrap(err, "failed to flush to stable storage")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to rewind for verification")
	}
	return nil
}
