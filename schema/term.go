package schema

import (
	"encoding/binary"
	"fmt"

	"github.com/marcosfpr/bridge/document"
)

// Term is a standalone dictionary-key encoding for a (field id, value)
// pair: one field-id byte, one value-kind tag byte, then the value's
// natural bytes (big-endian u32 for numeric values, raw UTF-8 for text).
// Nothing in the schema, document or store packages consumes Term today
// — it exists as byte-encoding groundwork for an inverted index that is
// out of scope here, matching spec.md's framing of "term byte-encoding
// helpers (not yet consumed by an inverted index)".
type Term []byte

// NewTerm encodes a (field id, value) pair into its term byte form.
// FieldId must fit in a single byte (dense ids 0..255), matching the
// spec's "fits in one byte in the on-disk term encoding" note.
func NewTerm(id FieldId, v document.Value) (Term, error) {
	if id > 0xff {
		return nil, fmt.Errorf("term: field id %d does not fit in one byte", id)
	}
	t := Term{byte(id), byte(v.Kind())}
	switch v.Kind() {
	case document.KindU32:
		n, _ := v.U32()
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], n)
		t = append(t, buf[:]...)
	case document.KindText:
		s, _ := v.Text()
		t = append(t, []byte(s)...)
	default:
		return nil, fmt.Errorf("term: unknown value kind %d", v.Kind())
	}
	return t, nil
}

// FieldID returns the field id byte this term was built from.
func (t Term) FieldID() FieldId {
	if len(t) == 0 {
		return 0
	}
	return FieldId(t[0])
}

// Kind returns the value kind byte this term was built from.
func (t Term) Kind() document.ValueKind {
	if len(t) < 2 {
		return document.KindText
	}
	return document.ValueKind(t[1])
}
