package sanitize

// PatternByte is the value written to every byte position during overwrite.
const PatternByte = 0x00

// Buffers holds the two chunk buffers shared by the overwrite and verify
// phases: a pattern buffer whose contents never change after construction
// and a scratch buffer for reading data back. Both are allocated once and
// reused for every file, so they must never be used by two in-flight
// sanitizations at the same time.
type Buffers struct {
	pattern []byte
	scratch []byte
}

// NewBuffers allocates pattern and scratch buffers of the given capacity.
func NewBuffers(size int) *Buffers {
	pattern := make([]byte, size)
	for i := range pattern {
		pattern[i] = PatternByte
	}
	return &Buffers{
		pattern: pattern,
		scratch: make([]byte, size),
	}
}

// ChunkSize returns the capacity both engines use to batch I/O.
func (b *Buffers) ChunkSize() int {
	return len(b.pattern)
}
