package directory

import (
	"errors"
	"io"
	"testing"
)

func TestRAMDirectoryRoundTrip(t *testing.T) {
	d := NewRAMDirectory()
	w, err := d.OpenWrite("greeting")
	if err != nil {
		t.Fatalf("open write: %v", err)
	}
	if _, err := w.Write([]byte("Hello, World!")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	r, err := d.OpenRead("greeting")
	if err != nil {
		t.Fatalf("open read: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if string(got) != "Hello, World!" {
		t.Fatalf("got %q", got)
	}
}

func TestRAMDirectoryEmptyFile(t *testing.T) {
	d := NewRAMDirectory()
	w, err := d.OpenWrite("empty")
	if err != nil {
		t.Fatalf("open write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	src, err := d.Source("empty")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if src.Size() != 0 {
		t.Fatalf("expected zero-length source, got %d", src.Size())
	}
}

func TestRAMDirectoryOpenWriteAlreadyExists(t *testing.T) {
	d := NewRAMDirectory()
	w, _ := d.OpenWrite("f")
	_ = w.Close()

	if _, err := d.OpenWrite("f"); !errors.Is(err, ErrFileAlreadyExists) {
		t.Fatalf("expected ErrFileAlreadyExists, got %v", err)
	}
}

func TestRAMDirectoryOpenReadNotFound(t *testing.T) {
	d := NewRAMDirectory()
	if _, err := d.OpenRead("missing"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestRAMDirectorySourceSurvivesRemove(t *testing.T) {
	d := NewRAMDirectory()
	w, _ := d.OpenWrite("doomed")
	_, _ = w.Write([]byte("payload"))
	_ = w.Close()

	src, err := d.Source("doomed")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if err := d.Remove("doomed"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if string(src.Deref()) != "payload" {
		t.Fatalf("source bytes changed after remove: %q", src.Deref())
	}
	if _, err := d.Source("doomed"); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected removed name to be gone, got %v", err)
	}
}

func TestRAMDirectoryWriterLockDeniesReader(t *testing.T) {
	d := NewRAMDirectory()
	w, err := d.OpenWrite("locked")
	if err != nil {
		t.Fatalf("open write: %v", err)
	}
	defer w.Close()

	if _, err := d.OpenWrite("other"); !errors.Is(err, ErrDirectoryAlreadyLocked) {
		t.Fatalf("expected ErrDirectoryAlreadyLocked for concurrent writer, got %v", err)
	}
	if _, err := d.OpenRead("locked"); !errors.Is(err, ErrDirectoryAlreadyLocked) {
		t.Fatalf("expected ErrDirectoryAlreadyLocked for reader during write, got %v", err)
	}
}

func TestRAMDirectorySliceSharesStorage(t *testing.T) {
	d := NewRAMDirectory()
	w, _ := d.OpenWrite("blob")
	_, _ = w.Write([]byte("0123456789"))
	_ = w.Close()

	src, err := d.Source("blob")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	view := src.Slice(2, 5)
	if string(view.Deref()) != "234" {
		t.Fatalf("got %q", view.Deref())
	}
	if &view.Deref()[0] != &src.Deref()[2] {
		t.Fatalf("slice does not share the source's backing storage")
	}
}
