package sanitize

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// ErrMismatch reports that a read-back found at least one byte that does
// not carry the pattern value.
var ErrMismatch = errors.New("content not fully pattern-filled")

// verify re-reads the first length bytes of f using the exact chunk
// boundaries the overwrite phase used, so coverage of the two phases is
// identical. It short-circuits on the first mismatching byte. The handle
// position is undefined afterwards; callers discard the handle before
// deleting the file.
func (s *Sanitizer) verify(f *os.File, length int64) error {
	chunk := int64(s.bufs.ChunkSize())
	full := length / chunk
	remainder := length % chunk

	for i := int64(0); i < full; i++ {
		if err := s.verifyChunk(f, int(chunk)); err != nil {
			return err
		}
	}
	if remainder > 0 {
		if err := s.verifyChunk(f, int(remainder)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sanitizer) verifyChunk(f io.Reader, n int) error {
	buf := s.bufs.scratch[:n]
	if _, err := io.ReadFull(f, buf); err != nil {
		return errors.Wrap(err, "failed to read back for verification")
	}
	if !bytes.Equal(buf, s.bufs.pattern[:n]) {
		return ErrMismatch
	}
	return nil
}
