package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/marcosfpr/bridge/document"
)

// ErrUnsupportedValueKind is returned when a JSON scalar ingested
// against a schema field is neither a string nor a number, or doesn't
// match the field's declared type.
var ErrUnsupportedValueKind = errors.New("unsupported value kind")

// ErrMissingJSONKey is returned when a required JSON object key is
// absent.
var ErrMissingJSONKey = errors.New("missing json key")

// ErrInvalidJSONValue is returned when a JSON value has the wrong shape
// for its context.
var ErrInvalidJSONValue = errors.New("invalid json value")

type jsonTextOptions struct {
	Indexing string `json:"indexing"`
	Stored   bool   `json:"stored"`
}

type jsonNumericOptions struct {
	Indexed bool `json:"indexed"`
	Fast    bool `json:"fast"`
	Stored  bool `json:"stored"`
}

type jsonFieldType struct {
	Field   string          `json:"field"`
	Options json.RawMessage `json:"options"`
}

type jsonFieldEntry struct {
	Name string        `json:"name"`
	Type jsonFieldType `json:"type"`
}

type jsonSchema struct {
	Fields []jsonFieldEntry `json:"fields"`
}

// ToJSON serializes the schema to its canonical JSON form, with fields
// in declaration order.
func (s *Schema) ToJSON() ([]byte, error) {
	out := jsonSchema{Fields: make([]jsonFieldEntry, 0, len(s.entries))}
	for _, e := range s.entries {
		var kind string
		var opts interface{}
		switch e.Kind {
		case FieldKindText:
			kind = "text"
			opts = jsonTextOptions{Indexing: e.Text.Indexing.String(), Stored: e.Text.Stored}
		case FieldKindNumeric:
			kind = "numeric"
			opts = jsonNumericOptions{Indexed: e.Num.Indexed, Fast: e.Num.Fast, Stored: e.Num.Stored}
		default:
			return nil, fmt.Errorf("field %q: unknown kind", e.Name)
		}
		rawOpts, err := json.Marshal(opts)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, jsonFieldEntry{
			Name: e.Name,
			Type: jsonFieldType{Field: kind, Options: rawOpts},
		})
	}
	return json.Marshal(out)
}

// FromJSON parses a schema from its canonical JSON form.
func FromJSON(data []byte) (*Schema, error) {
	var in jsonSchema
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONValue, err)
	}
	entries := make([]FieldEntry, 0, len(in.Fields))
	for _, f := range in.Fields {
		switch f.Type.Field {
		case "text":
			var opts jsonTextOptions
			if err := json.Unmarshal(f.Type.Options, &opts); err != nil {
				return nil, fmt.Errorf("field %q: %w: %v", f.Name, ErrInvalidJSONValue, err)
			}
			mode, err := IndexingModeFromString(opts.Indexing)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			entries = append(entries, NewTextFieldEntry(f.Name, TextOptions{Indexing: mode, Stored: opts.Stored}))
		case "numeric":
			var opts jsonNumericOptions
			if err := json.Unmarshal(f.Type.Options, &opts); err != nil {
				return nil, fmt.Errorf("field %q: %w: %v", f.Name, ErrInvalidJSONValue, err)
			}
			entries = append(entries, NewNumericFieldEntry(f.Name, NumericOptions(opts)))
		default:
			return nil, fmt.Errorf("field %q: %w: unknown field kind %q", f.Name, ErrInvalidJSONValue, f.Type.Field)
		}
	}
	return newSchema(entries), nil
}

// DocToJSON projects a Document to its NamedDocument JSON form via
// ToNamedDoc: an object whose keys are field names (ascending) and
// whose values are JSON arrays of scalars.
func (s *Schema) DocToJSON(doc *document.Document) ([]byte, error) {
	nd, err := s.ToNamedDoc(doc)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]interface{}, len(nd))
	for name, values := range nd {
		arr := make([]interface{}, 0, len(values))
		for _, v := range values {
			if s, ok := v.Text(); ok {
				arr = append(arr, s)
			} else if n, ok := v.U32(); ok {
				arr = append(arr, n)
			}
		}
		out[name] = arr
	}
	return json.Marshal(out)
}

// DocFromJSON parses a NamedDocument JSON object and resolves it against
// the schema via FromNamedDoc. Only JSON strings and JSON numbers are
// accepted scalars; any other JSON kind fails with
// ErrUnsupportedValueKind.
func (s *Schema) DocFromJSON(data []byte) (*document.Document, error) {
	var raw map[string][]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSONValue, err)
	}
	nd := make(NamedDocument, len(raw))
	for name, values := range raw {
		for _, v := range values {
			switch x := v.(type) {
			case string:
				nd[name] = append(nd[name], document.NewTextValue(x))
			case float64:
				nd[name] = append(nd[name], document.NewU32Value(uint32(x)))
			default:
				return nil, fmt.Errorf("field %q: %w", name, ErrUnsupportedValueKind)
			}
		}
	}
	return s.FromNamedDoc(nd)
}
