package directory

// byteSource is the shared ReadOnlySource implementation for both the
// RAM and memory-mapped backends: a plain Go byte slice. GC keeps the
// backing array reachable for as long as any slice over it (including
// one produced by Slice) is reachable, which is what gives Remove's
// "outstanding sources stay valid" guarantee for free — no explicit
// reference count is needed in idiomatic Go.
type byteSource struct {
	data []byte
}

func newByteSource(data []byte) ReadOnlySource {
	return &byteSource{data: data}
}

func (s *byteSource) Deref() []byte { return s.data }

func (s *byteSource) Size() int { return len(s.data) }

func (s *byteSource) Slice(from, to int) ReadOnlySource {
	return &byteSource{data: s.data[from:to]}
}
