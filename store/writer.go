package store

import (
	"bytes"
	"sync"

	"github.com/marcosfpr/bridge/codec"
	"github.com/marcosfpr/bridge/compress"
	"github.com/marcosfpr/bridge/directory"
	"github.com/marcosfpr/bridge/document"
	"github.com/marcosfpr/bridge/logx"
)

// BlockSizeThreshold is the uncompressed block size, in bytes, past
// which a block is flushed: 16 KiB.
const BlockSizeThreshold = 16384

// Writer serializes a sequence of documents into a compact,
// compressed, random-accessible blob over a directory.Writer. Its
// encoding state is single-threaded, but Write itself is guarded by a
// mutex so PackageDir's worker pool can feed it from many goroutines
// without corrupting the block buffer.
type Writer struct {
	out      directory.Writer
	strategy compress.Strategy

	mu                  sync.Mutex
	docID               uint32
	currentBlock        bytes.Buffer
	currentBlockOffsets []codec.U32U64Entry
	blockOffsets        []codec.U32U64Entry
	bytesWritten        uint64
	closed              bool
}

// NewWriter wraps an already-opened directory.Writer. strategy
// compresses each flushed block; pass compress.IdentityStrategy{} for
// the default uncompressed behavior.
func NewWriter(out directory.Writer, strategy compress.Strategy) *Writer {
	return &Writer{out: out, strategy: strategy}
}

// Write appends one document's fields to the store, assigning it the
// next sequential document id, and returns that id.
func (w *Writer) Write(fields ...document.Field) (uint32, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrWriterClosed
	}

	start := w.currentBlock.Len()
	if err := codec.WriteLen(&w.currentBlock, len(fields)); err != nil {
		return 0, encodeFailed("write field count", err)
	}
	for _, f := range fields {
		if err := f.Encode(&w.currentBlock); err != nil {
			return 0, encodeFailed("write field", err)
		}
	}

	id := w.docID
	w.currentBlockOffsets = append(w.currentBlockOffsets, codec.U32U64Entry{
		Key: id, Value: uint64(start),
	})
	w.docID++

	if w.currentBlock.Len() > BlockSizeThreshold {
		if err := w.flushBlock(); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// WriteDocument is a convenience over Write for an already-assembled
// Document.
func (w *Writer) WriteDocument(doc *document.Document) (uint32, error) {
	return w.Write(doc.GetFields()...)
}

func (w *Writer) flushBlock() error {
	if err := codec.WriteU32U64Map(&w.currentBlock, w.currentBlockOffsets); err != nil {
		return encodeFailed("write block offsets", err)
	}
	prefixLength := w.currentBlock.Len() - trailerLen(w.currentBlockOffsets)
	if err := codec.WriteU64(&w.currentBlock, uint64(prefixLength)); err != nil {
		return encodeFailed("write prefix length", err)
	}

	compressed, err := w.strategy.Compress(w.currentBlock.Bytes())
	if err != nil {
		return encodeFailed("compress block", err)
	}

	before := w.bytesWritten
	if err := codec.WriteBytes(w.out, compressed); err != nil {
		return encodeFailed("write block", err)
	}
	w.bytesWritten += uint64(8 + len(compressed))

	w.blockOffsets = append(w.blockOffsets, codec.U32U64Entry{
		Key: w.docID, Value: w.bytesWritten,
	})
	logx.Debugf("store: flushed block up to doc %d (%d -> %d bytes written)", w.docID, before, w.bytesWritten)

	w.currentBlock.Reset()
	w.currentBlockOffsets = nil
	return nil
}

// trailerLen computes how many bytes codec.WriteU32U64Map just wrote
// for entries, so the prefix length can be derived without re-encoding.
func trailerLen(entries []codec.U32U64Entry) int {
	return 8 + len(entries)*(4+8)
}

// Close flushes any pending block, writes the block-offset header and
// header_offset trailer, and flushes the underlying directory writer.
// Close is idempotent: calling it again after a successful close is a
// no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	if w.currentBlock.Len() > 0 {
		if err := w.flushBlock(); err != nil {
			return err
		}
	}
	if err := codec.WriteU32U64Map(w.out, w.blockOffsets); err != nil {
		return encodeFailed("write block offset table", err)
	}
	headerOffset := w.bytesWritten
	if err := codec.WriteU64(w.out, headerOffset); err != nil {
		return encodeFailed("write header offset", err)
	}
	w.closed = true
	return w.out.Close()
}

func encodeFailed(context string, err error) error {
	return &codec.EncodeFailed{Context: context, Err: err}
}
