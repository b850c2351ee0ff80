package store

import (
	"bytes"
	"io"
	"sort"

	"github.com/marcosfpr/bridge/codec"
	"github.com/marcosfpr/bridge/compress"
	"github.com/marcosfpr/bridge/directory"
	"github.com/marcosfpr/bridge/document"
)

// blockRecord is one parsed entry of the reader's normalized block
// index: the block holds every doc id in [prevID, docID) starting at
// byte offset Start within the source.
type blockRecord struct {
	docID uint32 // exclusive upper bound: first doc id NOT in this block
	start uint64 // byte offset this block's length-prefixed bytes start at
}

// loadedBlock caches the most recently decompressed block so repeat
// or sequential lookups against the same block avoid re-reading and
// re-decompressing it.
type loadedBlock struct {
	firstDocAfter uint32
	data          []byte
	offsets       map[uint32]int
}

// Reader provides random access to documents in a store file by id.
// It is single-threaded; construct one Reader per goroutine from
// distinct ReadOnlySource clones for concurrent access.
type Reader struct {
	src      directory.ReadOnlySource
	strategy compress.Strategy
	blocks   []blockRecord
	loaded   *loadedBlock
}

// NewReader parses the header of src (block offset table and
// header_offset trailer) and returns a Reader ready to serve Get.
func NewReader(src directory.ReadOnlySource, strategy compress.Strategy) (*Reader, error) {
	data := src.Deref()
	if len(data) < 8 {
		return nil, corrupted("header", io.ErrUnexpectedEOF)
	}

	headerOffset, err := codec.ReadU64(bytes.NewReader(data[len(data)-8:]))
	if err != nil {
		return nil, corrupted("header_offset", err)
	}
	if headerOffset > uint64(len(data)-8) {
		return nil, corrupted("header_offset out of range", nil)
	}

	raw, err := codec.ReadU32U64Map(bytes.NewReader(data[headerOffset : len(data)-8]))
	if err != nil {
		return nil, corrupted("block_offsets", err)
	}

	blocks := make([]blockRecord, len(raw))
	var prevCumulative uint64
	for i, e := range raw {
		blocks[i] = blockRecord{docID: e.Key, start: prevCumulative}
		prevCumulative = e.Value
	}

	return &Reader{src: src, strategy: strategy, blocks: blocks}, nil
}

// Get decodes and returns the document stored under docID.
func (r *Reader) Get(docID uint32) (*document.Document, error) {
	i := sort.Search(len(r.blocks), func(i int) bool { return r.blocks[i].docID > docID })
	if i == len(r.blocks) {
		return nil, &UnknownDocIdError{DocId: docID}
	}
	block := r.blocks[i]

	if r.loaded == nil || r.loaded.firstDocAfter != block.docID {
		if err := r.loadBlock(block); err != nil {
			return nil, err
		}
	}

	offset, ok := r.loaded.offsets[docID]
	if !ok {
		return nil, &UnknownDocIdError{DocId: docID}
	}

	doc, n, err := document.Decode(bytes.NewReader(r.loaded.data[offset:]))
	if err != nil {
		return nil, corrupted("decode document", err)
	}
	if n != doc.Len() {
		return nil, corrupted("field count mismatch", nil)
	}
	return doc, nil
}

func (r *Reader) loadBlock(block blockRecord) error {
	data := r.src.Deref()
	if block.start > uint64(len(data)) {
		return corrupted("block start out of range", nil)
	}

	compressed, err := codec.ReadBytes(bytes.NewReader(data[block.start:]))
	if err != nil {
		return corrupted("read block", err)
	}

	decompressed, err := r.strategy.Decompress(compressed)
	if err != nil {
		return corrupted("decompress block", err)
	}
	if len(decompressed) < 8 {
		return corrupted("block trailer", io.ErrUnexpectedEOF)
	}

	prefixLength, err := codec.ReadU64(bytes.NewReader(decompressed[len(decompressed)-8:]))
	if err != nil {
		return corrupted("block trailer prefix length", err)
	}
	if prefixLength > uint64(len(decompressed)-8) {
		return corrupted("block trailer prefix length out of range", nil)
	}

	entries, err := codec.ReadU32U64Map(bytes.NewReader(decompressed[prefixLength : len(decompressed)-8]))
	if err != nil {
		return corrupted("block offsets", err)
	}

	offsets := make(map[uint32]int, len(entries))
	for _, e := range entries {
		offsets[e.Key] = int(e.Value)
	}

	r.loaded = &loadedBlock{firstDocAfter: block.docID, data: decompressed, offsets: offsets}
	return nil
}

// NumBlocks reports how many blocks the store file has, mostly for
// diagnostics and tests.
func (r *Reader) NumBlocks() int { return len(r.blocks) }
