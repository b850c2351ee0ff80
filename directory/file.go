package directory

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/marcosfpr/bridge/internal/flock"
)

// FileDirectory is a Directory rooted at a filesystem directory.
// Reads go through memory-mapped views cached by name; writes go
// directly to the file and are synced on Close. Single-writer/
// multiple-readers access is enforced both in-process (a mutex plus
// counters, mirroring RAMDirectory) and across processes, via a
// non-blocking advisory lock on a dedicated lock file in root.
type FileDirectory struct {
	root string

	mu           sync.Mutex
	writerLocked bool
	readerCount  int
	views        map[string][]byte

	lockFile *os.File
}

// NewFileDirectory opens (creating if necessary) a file-mapped
// directory rooted at root.
func NewFileDirectory(root string) (*FileDirectory, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	lf, err := os.OpenFile(filepath.Join(root, ".lock"), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileDirectory{root: root, views: make(map[string][]byte), lockFile: lf}, nil
}

func (d *FileDirectory) path(name string) string { return filepath.Join(d.root, name) }

func (d *FileDirectory) OpenWrite(name string) (Writer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked || d.readerCount > 0 {
		return nil, &LockedError{Op: "open_write"}
	}
	if err := flock.Lock(d.lockFile); err != nil {
		return nil, &LockedError{Op: "open_write"}
	}
	if _, err := os.Stat(d.path(name)); err == nil {
		_ = flock.Unlock(d.lockFile)
		return nil, &AlreadyExistsError{Name: name}
	}
	f, err := os.OpenFile(d.path(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		_ = flock.Unlock(d.lockFile)
		return nil, err
	}
	d.writerLocked = true
	return &fileWriter{dir: d, name: name, f: f}, nil
}

func (d *FileDirectory) OpenRead(name string) (Reader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked {
		return nil, &LockedError{Op: "open_read"}
	}
	if err := flock.RLock(d.lockFile); err != nil {
		return nil, &LockedError{Op: "open_read"}
	}
	f, err := os.Open(d.path(name))
	if err != nil {
		if d.readerCount == 0 {
			_ = flock.Unlock(d.lockFile)
		}
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, err
	}
	d.readerCount++
	return &fileReader{dir: d, f: f}, nil
}

// Source returns a ReadOnlySource backed by a memory-mapped view of
// name, cached by name for subsequent calls. Like RAMDirectory.Source,
// it only checks at call time that no writer holds the directory; it
// does not hold a persistent reader slot, since ReadOnlySource has no
// release hook.
func (d *FileDirectory) Source(name string) (ReadOnlySource, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked {
		return nil, &LockedError{Op: "source"}
	}
	if cached, ok := d.views[name]; ok {
		return newByteSource(cached), nil
	}

	f, err := os.Open(d.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Name: name}
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := int(info.Size())
	if size == 0 {
		d.views[name] = []byte{}
		return newByteSource(nil), nil
	}
	b, err := mmapFile(f, size)
	if err != nil {
		return nil, err
	}
	d.views[name] = b
	return newByteSource(b), nil
}

func (d *FileDirectory) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked || d.readerCount > 0 {
		return &LockedError{Op: "remove"}
	}
	if _, err := os.Stat(d.path(name)); err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Name: name}
		}
		return err
	}
	// A cached mmap view, if any, is dropped from the cache but left
	// mapped: outstanding ReadOnlySources over it keep returning the
	// same bytes after removal.
	delete(d.views, name)
	return os.Remove(d.path(name))
}

func (d *FileDirectory) ReplaceContent(name string, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writerLocked || d.readerCount > 0 {
		return &LockedError{Op: "replace_content"}
	}
	delete(d.views, name)
	tmp := d.path(name) + ".replace"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, d.path(name))
}

type fileWriter struct {
	dir  *FileDirectory
	name string
	f    *os.File
}

func (w *fileWriter) Write(p []byte) (int, error) { return w.f.Write(p) }

func (w *fileWriter) Close() error {
	w.dir.mu.Lock()
	defer w.dir.mu.Unlock()
	err := w.f.Sync()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	w.dir.writerLocked = false
	_ = flock.Unlock(w.dir.lockFile)
	return err
}

type fileReader struct {
	dir *FileDirectory
	f   *os.File
}

func (r *fileReader) Read(p []byte) (int, error) { return r.f.Read(p) }

func (r *fileReader) Seek(offset int64, whence int) (int64, error) {
	return r.f.Seek(offset, whence)
}

func (r *fileReader) Close() error {
	r.dir.mu.Lock()
	defer r.dir.mu.Unlock()
	err := r.f.Close()
	r.dir.readerCount--
	if r.dir.readerCount == 0 {
		_ = flock.Unlock(r.dir.lockFile)
	}
	return err
}
