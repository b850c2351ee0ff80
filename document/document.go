// Package document implements the canonical in-memory document
// representation: an unordered multiset of (field id, typed value)
// pairs, plus its JSON projection against a schema (NamedDocument).
package document

import (
	"io"
	"sort"

	"github.com/marcosfpr/bridge/codec"
)

// FieldId is the dense 0..N-1 index of a field within a schema. It fits
// in a single byte in the on-disk term encoding.
type FieldId uint32

// Field is a (FieldId, Value) pair contained in a document. Equality and
// ordering are by id only: two fields with the same id are "the same
// field" for sorting purposes, even if their values differ.
type Field struct {
	ID    FieldId
	Value Value
}

// Encode writes one document-body entry: the field id followed by its
// tagged Value, matching spec.md §6's "field_count tagged values" (each
// entry tags the value that follows its id).
func (f Field) Encode(w io.Writer) error {
	if err := codec.WriteU32(w, uint32(f.ID)); err != nil {
		return err
	}
	return f.Value.Encode(w)
}

// DecodeField reads one (field id, tagged value) entry.
func DecodeField(r io.Reader) (Field, error) {
	id, err := codec.ReadU32(r)
	if err != nil {
		return Field{}, err
	}
	v, err := DecodeValue(r)
	if err != nil {
		return Field{}, err
	}
	return Field{ID: FieldId(id), Value: v}, nil
}

// Document is an unordered multiset of fields. The same field id may
// appear more than once. A cached "is sorted" hint avoids re-sorting an
// already-sorted field slice; it is invalidated by any mutating Add.
type Document struct {
	fields []Field
	sorted bool
}

// New builds an empty Document.
func New() *Document {
	return &Document{sorted: true}
}

// FromFields builds a Document from an explicit field slice, in
// insertion order, matching the order given.
func FromFields(fields ...Field) *Document {
	d := &Document{fields: append([]Field(nil), fields...)}
	d.sorted = sort.SliceIsSorted(d.fields, func(i, j int) bool { return d.fields[i].ID < d.fields[j].ID })
	return d
}

// AddText appends a text field.
func (d *Document) AddText(id FieldId, value string) {
	d.Add(Field{ID: id, Value: NewTextValue(value)})
}

// AddU32 appends a numeric field.
func (d *Document) AddU32(id FieldId, value uint32) {
	d.Add(Field{ID: id, Value: NewU32Value(value)})
}

// Add appends a field in whatever kind it already carries.
func (d *Document) Add(f Field) {
	d.fields = append(d.fields, f)
	d.sorted = false
}

// Len returns the number of fields in the document.
func (d *Document) Len() int { return len(d.fields) }

// GetFields returns the fields in insertion order until GetSortedFields
// is called; that call stable-sorts the fields by id in place, so from
// then on (until the next Add) they come back in ascending id order,
// with equal ids in insertion order. The returned slice must not be
// mutated by the caller.
func (d *Document) GetFields() []Field { return d.fields }

// GetSortedFields groups fields by ascending id and returns pairs of
// (id, values). Sorting is idempotent and memoized: calling it again
// without an intervening Add returns the same result without re-sorting.
func (d *Document) GetSortedFields() []SortedFieldGroup {
	if !d.sorted {
		sort.SliceStable(d.fields, func(i, j int) bool { return d.fields[i].ID < d.fields[j].ID })
		d.sorted = true
	}
	groups := make([]SortedFieldGroup, 0, len(d.fields))
	var i int
	for i < len(d.fields) {
		j := i + 1
		for j < len(d.fields) && d.fields[j].ID == d.fields[i].ID {
			j++
		}
		values := make([]Value, 0, j-i)
		for _, f := range d.fields[i:j] {
			values = append(values, f.Value)
		}
		groups = append(groups, SortedFieldGroup{ID: d.fields[i].ID, Values: values})
		i = j
	}
	return groups
}

// SortedFieldGroup is one (field id, values) entry of GetSortedFields.
type SortedFieldGroup struct {
	ID     FieldId
	Values []Value
}

// GetFirstByID returns the first field with the given id, in insertion
// order, and true; or false if no field has that id.
func (d *Document) GetFirstByID(id FieldId) (Value, bool) {
	for _, f := range d.fields {
		if f.ID == id {
			return f.Value, true
		}
	}
	return Value{}, false
}

// GetAllByID returns every value of fields with the given id, in
// insertion order.
func (d *Document) GetAllByID(id FieldId) []Value {
	var values []Value
	for _, f := range d.fields {
		if f.ID == id {
			values = append(values, f.Value)
		}
	}
	return values
}

// Equal reports whether two documents hold the same multiset of fields:
// equal once both are sorted by id then by value representation.
func (d *Document) Equal(o *Document) bool {
	if d.Len() != o.Len() {
		return false
	}
	a := append([]Field(nil), d.fields...)
	b := append([]Field(nil), o.fields...)
	byIDThenValue := func(fs []Field) func(i, j int) bool {
		return func(i, j int) bool {
			if fs[i].ID != fs[j].ID {
				return fs[i].ID < fs[j].ID
			}
			return fs[i].Value.String() < fs[j].Value.String()
		}
	}
	sort.Slice(a, byIDThenValue(a))
	sort.Slice(b, byIDThenValue(b))
	for i := range a {
		if a[i].ID != b[i].ID || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}

// Encode writes the document body: u64 field_count, then field_count
// tagged values, in the document's current field order (callers that
// need deterministic ordering should sort first via GetSortedFields).
func (d *Document) Encode(w io.Writer) error {
	if err := codec.WriteLen(w, len(d.fields)); err != nil {
		return err
	}
	for _, f := range d.fields {
		if err := f.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a document body written by Encode: u64 field_count then
// field_count (id, tagged value) entries. It returns the decoded field
// count alongside the Document so callers can verify it against an
// independently tracked count (spec.md's CorruptedStore check).
func Decode(r io.Reader) (*Document, int, error) {
	n, err := codec.ReadLen(r)
	if err != nil {
		return nil, 0, err
	}
	d := &Document{fields: make([]Field, 0, n)}
	for i := 0; i < n; i++ {
		f, err := DecodeField(r)
		if err != nil {
			return nil, 0, err
		}
		d.fields = append(d.fields, f)
	}
	return d, n, nil
}
