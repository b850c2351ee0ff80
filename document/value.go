package document

import (
	"fmt"
	"io"

	"github.com/marcosfpr/bridge/codec"
)

// ValueKind discriminates the tagged-sum Value wire format. The tag
// assignment is fixed and part of the wire contract: changing it, or
// adding a third variant, is a breaking on-disk format change.
type ValueKind uint32

const (
	// KindText tags a Value holding a string.
	KindText ValueKind = 0
	// KindU32 tags a Value holding a uint32.
	KindU32 ValueKind = 1
)

// Value is the closed tagged union of primitive payloads a Field may
// carry. The on-disk tag space is fixed to these two variants.
type Value struct {
	kind ValueKind
	text string
	u32  uint32
}

// NewTextValue builds a Value wrapping a string.
func NewTextValue(s string) Value { return Value{kind: KindText, text: s} }

// NewU32Value builds a Value wrapping a uint32.
func NewU32Value(v uint32) Value { return Value{kind: KindU32, u32: v} }

// Kind reports which variant this Value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsText reports whether this Value holds a string.
func (v Value) IsText() bool { return v.kind == KindText }

// IsU32 reports whether this Value holds a uint32.
func (v Value) IsU32() bool { return v.kind == KindU32 }

// Text returns the wrapped string and true, or "" and false if this
// Value does not hold a string.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// U32 returns the wrapped uint32 and true, or 0 and false if this Value
// does not hold a uint32.
func (v Value) U32() (uint32, bool) {
	if v.kind != KindU32 {
		return 0, false
	}
	return v.u32, true
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindU32:
		return v.u32 == o.u32
	default:
		return false
	}
}

// String renders the Value for debugging and for serialization-order
// comparisons (Document equality sorts by this representation).
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return fmt.Sprintf("Text(%q)", v.text)
	case KindU32:
		return fmt.Sprintf("U32(%d)", v.u32)
	default:
		return "Value(?)"
	}
}

// Encode writes the tagged-variant wire form: u32 tag, then the
// variant's payload.
func (v Value) Encode(w io.Writer) error {
	if err := codec.WriteU32(w, uint32(v.kind)); err != nil {
		return err
	}
	switch v.kind {
	case KindText:
		return codec.WriteString(w, v.text)
	case KindU32:
		return codec.WriteU32(w, v.u32)
	default:
		return fmt.Errorf("value: unknown kind %d", v.kind)
	}
}

// DecodeValue reads a tagged-variant Value.
func DecodeValue(r io.Reader) (Value, error) {
	tag, err := codec.ReadU32(r)
	if err != nil {
		return Value{}, err
	}
	switch ValueKind(tag) {
	case KindText:
		s, err := codec.ReadString(r)
		if err != nil {
			return Value{}, err
		}
		return NewTextValue(s), nil
	case KindU32:
		n, err := codec.ReadU32(r)
		if err != nil {
			return Value{}, err
		}
		return NewU32Value(n), nil
	default:
		return Value{}, &codec.DecodeFailed{Context: "value tag", Err: fmt.Errorf("unknown tag %d", tag)}
	}
}
