package schema

import (
	"fmt"

	"github.com/marcosfpr/bridge/document"
)

// FieldId re-exports document.FieldId: schema assigns ids, document
// carries them, so both packages agree on the same small unsigned type.
type FieldId = document.FieldId

// FieldKind discriminates FieldEntry's type variant.
type FieldKind int

const (
	// FieldKindText marks a field declared with TextOptions.
	FieldKindText FieldKind = iota
	// FieldKindNumeric marks a field declared with NumericOptions.
	FieldKindNumeric
)

// FieldEntry describes one field declaration: its name and its typed
// options. Equality compares name and type (including options).
type FieldEntry struct {
	Name string
	Kind FieldKind
	Text TextOptions
	Num  NumericOptions
}

// NewTextFieldEntry builds a text FieldEntry.
func NewTextFieldEntry(name string, opts TextOptions) FieldEntry {
	return FieldEntry{Name: name, Kind: FieldKindText, Text: opts}
}

// NewNumericFieldEntry builds a numeric FieldEntry.
func NewNumericFieldEntry(name string, opts NumericOptions) FieldEntry {
	return FieldEntry{Name: name, Kind: FieldKindNumeric, Num: opts}
}

// IsIndexed reports whether a text field is indexed; numeric fields
// report their own Indexed flag instead (see IsNumericFast for the
// separate numeric "fast" flag).
func (e FieldEntry) IsIndexed() bool {
	switch e.Kind {
	case FieldKindText:
		return e.Text.Indexing.IsIndexed()
	case FieldKindNumeric:
		return e.Num.Indexed
	default:
		return false
	}
}

// IsNumericFast reports whether this is a numeric field with fast
// access enabled.
func (e FieldEntry) IsNumericFast() bool {
	return e.Kind == FieldKindNumeric && e.Num.Fast
}

// IsStored reports whether the field's original value is retained.
func (e FieldEntry) IsStored() bool {
	switch e.Kind {
	case FieldKindText:
		return e.Text.Stored
	case FieldKindNumeric:
		return e.Num.Stored
	default:
		return false
	}
}

// Equal compares name and type (kind + options).
func (e FieldEntry) Equal(o FieldEntry) bool {
	if e.Name != o.Name || e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case FieldKindText:
		return e.Text == o.Text
	case FieldKindNumeric:
		return e.Num == o.Num
	default:
		return false
	}
}

func (e FieldEntry) String() string {
	switch e.Kind {
	case FieldKindText:
		return fmt.Sprintf("FieldEntry{%s: text %+v}", e.Name, e.Text)
	case FieldKindNumeric:
		return fmt.Sprintf("FieldEntry{%s: numeric %+v}", e.Name, e.Num)
	default:
		return fmt.Sprintf("FieldEntry{%s: ?}", e.Name)
	}
}
