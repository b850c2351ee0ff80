package codec

import (
	"io"
	"sort"
)

// WriteLen writes a u64 length prefix, shared by every sequence/map/string
// shape in the wire format.
func WriteLen(w io.Writer, n int) error {
	return WriteU64(w, uint64(n))
}

// ReadLen reads a u64 length prefix.
func ReadLen(r io.Reader) (int, error) {
	n, err := ReadU64(r)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// U32U64Entry is one (doc_id, byte_offset) pair of an offset table.
type U32U64Entry struct {
	Key   uint32
	Value uint64
}

// WriteU32U64Map writes a key-ordered map: u64 count, then ascending-key
// (u32, u64) entries. Entries need not already be sorted; WriteU32U64Map
// sorts a copy before encoding so callers can build the table in
// insertion order.
func WriteU32U64Map(w io.Writer, entries []U32U64Entry) error {
	sorted := make([]U32U64Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	if err := WriteLen(w, len(sorted)); err != nil {
		return err
	}
	for _, e := range sorted {
		if err := WriteU32(w, e.Key); err != nil {
			return err
		}
		if err := WriteU64(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}

// ReadU32U64Map reads a key-ordered (u32, u64) map back into entries in
// ascending-key order.
func ReadU32U64Map(r io.Reader) ([]U32U64Entry, error) {
	n, err := ReadLen(r)
	if err != nil {
		return nil, err
	}
	entries := make([]U32U64Entry, n)
	for i := 0; i < n; i++ {
		key, err := ReadU32(r)
		if err != nil {
			return nil, err
		}
		value, err := ReadU64(r)
		if err != nil {
			return nil, err
		}
		entries[i] = U32U64Entry{Key: key, Value: value}
	}
	return entries, nil
}
