package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/marcosfpr/bridge/document"
)

// ErrUnknownField is returned when a field name has no entry in the
// schema.
var ErrUnknownField = errors.New("unknown field")

// Schema is an ordered, immutable sequence of field declarations plus a
// name→id map. FieldId equals declaration position.
type Schema struct {
	entries []FieldEntry
	byName  map[string]FieldId
}

// newSchema builds a Schema from already-validated entries.
func newSchema(entries []FieldEntry) *Schema {
	byName := make(map[string]FieldId, len(entries))
	for i, e := range entries {
		byName[e.Name] = FieldId(i)
	}
	return &Schema{entries: entries, byName: byName}
}

// GetFieldEntry returns the entry declared at the given id.
func (s *Schema) GetFieldEntry(id FieldId) (FieldEntry, error) {
	if int(id) < 0 || int(id) >= len(s.entries) {
		return FieldEntry{}, fmt.Errorf("%w: id %d", ErrUnknownField, id)
	}
	return s.entries[id], nil
}

// GetFieldName returns the declared name of the given id.
func (s *Schema) GetFieldName(id FieldId) (string, error) {
	e, err := s.GetFieldEntry(id)
	if err != nil {
		return "", err
	}
	return e.Name, nil
}

// GetFieldID resolves a field name to its id.
func (s *Schema) GetFieldID(name string) (FieldId, error) {
	id, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return id, nil
}

// Fields returns every declared entry, in declaration order.
func (s *Schema) Fields() []FieldEntry {
	return s.entries
}

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.entries) }

// Equal reports whether two schemas declare the same fields in the same
// order.
func (s *Schema) Equal(o *Schema) bool {
	if len(s.entries) != len(o.entries) {
		return false
	}
	for i := range s.entries {
		if !s.entries[i].Equal(o.entries[i]) {
			return false
		}
	}
	return true
}

// ToNamedDoc projects a Document into its NamedDocument form: fields
// sorted by ascending id, then mapped to their declared name.
func (s *Schema) ToNamedDoc(doc *document.Document) (NamedDocument, error) {
	nd := make(NamedDocument)
	for _, group := range doc.GetSortedFields() {
		name, err := s.GetFieldName(group.ID)
		if err != nil {
			return nil, err
		}
		nd[name] = append(nd[name], group.Values...)
	}
	return nd, nil
}

// FromNamedDoc resolves each name to its field id, appends one Field per
// value, and stable-sorts the result by id. A JSON scalar kind that
// doesn't match the field's declared type fails with
// ErrUnsupportedValueKind rather than being silently coerced.
func (s *Schema) FromNamedDoc(nd NamedDocument) (*document.Document, error) {
	doc := document.New()
	names := make([]string, 0, len(nd))
	for name := range nd {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id, err := s.GetFieldID(name)
		if err != nil {
			return nil, err
		}
		entry, err := s.GetFieldEntry(id)
		if err != nil {
			return nil, err
		}
		for _, v := range nd[name] {
			if err := checkValueKind(entry, v); err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			doc.Add(document.Field{ID: id, Value: v})
		}
	}
	doc.GetSortedFields() // force the stable sort + memoization hint
	return doc, nil
}

func checkValueKind(entry FieldEntry, v document.Value) error {
	switch entry.Kind {
	case FieldKindText:
		if !v.IsText() {
			return ErrUnsupportedValueKind
		}
	case FieldKindNumeric:
		if !v.IsU32() {
			return ErrUnsupportedValueKind
		}
	}
	return nil
}

// NamedDocument maps field names to their sequence of values; it is the
// JSON projection of a Document against a Schema.
type NamedDocument map[string][]document.Value
