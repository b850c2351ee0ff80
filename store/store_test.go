package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/marcosfpr/bridge/compress"
	"github.com/marcosfpr/bridge/directory"
	"github.com/marcosfpr/bridge/document"
)

func writeLoremIpsum(t *testing.T, strategy compress.Strategy, n int) (directory.Directory, string) {
	t.Helper()
	dir := directory.NewRAMDirectory()
	dw, err := dir.OpenWrite("docs.store")
	if err != nil {
		t.Fatalf("open write: %v", err)
	}
	w := NewWriter(dw, strategy)
	for i := 0; i < n; i++ {
		doc := document.New()
		doc.AddText(0, fmt.Sprintf("lorem ipsum dolor sit amet, document number %d", i))
		doc.AddU32(1, uint32(i))
		if _, err := w.WriteDocument(doc); err != nil {
			t.Fatalf("write doc %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return dir, "docs.store"
}

func TestWriteReadRoundTripIdentity(t *testing.T) {
	dir, name := writeLoremIpsum(t, compress.IdentityStrategy{}, 100)

	src, err := dir.Source(name)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	r, err := NewReader(src, compress.IdentityStrategy{})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}

	for i := uint32(0); i < 100; i++ {
		doc, err := r.Get(i)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		v, ok := doc.GetFirstByID(0)
		if !ok {
			t.Fatalf("doc %d: expected field 0", i)
		}
		text, ok := v.Text()
		if !ok {
			t.Fatalf("doc %d: expected text field", i)
		}
		want := fmt.Sprintf("lorem ipsum dolor sit amet, document number %d", i)
		if text != want {
			t.Fatalf("doc %d: got %q want %q", i, text, want)
		}
	}
}

func TestWriteReadRoundTripLZ4(t *testing.T) {
	dir, name := writeLoremIpsum(t, compress.LZ4Strategy{}, 40)

	src, err := dir.Source(name)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	r, err := NewReader(src, compress.LZ4Strategy{})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}

	doc, err := r.Get(39)
	if err != nil {
		t.Fatalf("get 39: %v", err)
	}
	v, ok := doc.GetFirstByID(1)
	if !ok {
		t.Fatalf("expected field 1")
	}
	n, ok := v.U32()
	if !ok || n != 39 {
		t.Fatalf("got %v", doc)
	}
}

func TestUnknownDocId(t *testing.T) {
	dir, name := writeLoremIpsum(t, compress.IdentityStrategy{}, 5)
	src, err := dir.Source(name)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	r, err := NewReader(src, compress.IdentityStrategy{})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if _, err := r.Get(999); !errors.Is(err, ErrUnknownDocId) {
		t.Fatalf("expected ErrUnknownDocId, got %v", err)
	}
}

func TestWriteAfterCloseFails(t *testing.T) {
	dir := directory.NewRAMDirectory()
	dw, _ := dir.OpenWrite("x")
	w := NewWriter(dw, compress.IdentityStrategy{})
	doc := document.New()
	doc.AddText(0, "hello")
	if _, err := w.WriteDocument(doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.WriteDocument(doc); !errors.Is(err, ErrWriterClosed) {
		t.Fatalf("expected ErrWriterClosed, got %v", err)
	}
}

func TestMultiBlockRoundTrip(t *testing.T) {
	// Force several block flushes with a large-ish document count and body size.
	dir, name := writeLoremIpsum(t, compress.IdentityStrategy{}, 2000)
	src, err := dir.Source(name)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	r, err := NewReader(src, compress.IdentityStrategy{})
	if err != nil {
		t.Fatalf("new reader: %v", err)
	}
	if r.NumBlocks() < 2 {
		t.Fatalf("expected writer to flush multiple blocks, got %d", r.NumBlocks())
	}
	for _, id := range []uint32{0, 999, 1999} {
		doc, err := r.Get(id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		v, ok := doc.GetFirstByID(1)
		if !ok {
			t.Fatalf("doc %d: expected field 1", id)
		}
		n, ok := v.U32()
		if !ok || n != id {
			t.Fatalf("doc %d: got %v", id, doc)
		}
	}
}
