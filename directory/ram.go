package directory

import (
	"bytes"
	"sync"
)

// RAMDirectory is an in-memory Directory backend: a plain
// name→byte-vector map guarded by a mutex, with the same
// single-writer/multiple-readers try-lock discipline as the
// file-mapped backend. Intended for tests and ephemeral storage.
type RAMDirectory struct {
	mu           sync.Mutex
	files        map[string][]byte
	writerLocked bool
	readerCount  int
}

// NewRAMDirectory creates an empty in-memory directory.
func NewRAMDirectory() *RAMDirectory {
	return &RAMDirectory{files: make(map[string][]byte)}
}

func (d *RAMDirectory) OpenWrite(name string) (Writer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked || d.readerCount > 0 {
		return nil, &LockedError{Op: "open_write"}
	}
	if _, ok := d.files[name]; ok {
		return nil, &AlreadyExistsError{Name: name}
	}
	d.writerLocked = true
	return &ramWriter{dir: d, name: name}, nil
}

func (d *RAMDirectory) OpenRead(name string) (Reader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked {
		return nil, &LockedError{Op: "open_read"}
	}
	data, ok := d.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	d.readerCount++
	return &ramReader{dir: d, r: bytes.NewReader(data)}, nil
}

// Source returns a ReadOnlySource over name. Unlike OpenRead, the
// returned value carries no Close method (there is no idiomatic Go
// destructor to hang one off), so Source only checks that no writer
// currently holds the directory at the moment of the call; it does
// not hold a persistent reader slot the way OpenRead's Reader does.
func (d *RAMDirectory) Source(name string) (ReadOnlySource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked {
		return nil, &LockedError{Op: "source"}
	}
	data, ok := d.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return newByteSource(data), nil
}

func (d *RAMDirectory) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked || d.readerCount > 0 {
		return &LockedError{Op: "remove"}
	}
	if _, ok := d.files[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(d.files, name)
	return nil
}

func (d *RAMDirectory) ReplaceContent(name string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked || d.readerCount > 0 {
		return &LockedError{Op: "replace_content"}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	d.files[name] = cp
	return nil
}

type ramWriter struct {
	dir  *RAMDirectory
	name string
	buf  bytes.Buffer
}

func (w *ramWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *ramWriter) Close() error {
	w.dir.mu.Lock()
	defer w.dir.mu.Unlock()
	w.dir.files[w.name] = w.buf.Bytes()
	w.dir.writerLocked = false
	return nil
}

type ramReader struct {
	dir *RAMDirectory
	r   *bytes.Reader
}

func (r *ramReader) Read(p []byte) (int, error) { return r.r.Read(p) }

func (r *ramReader) Seek(offset int64, whence int) (int64, error) {
	return r.r.Seek(offset, whence)
}

func (r *ramReader) Close() error {
	r.dir.mu.Lock()
	defer r.dir.mu.Unlock()
	r.dir.readerCount--
	return nil
}
