package schema

import (
	"encoding/json"
	"testing"

	"github.com/marcosfpr/bridge/document"
)

func TestIndexingModeCombine(t *testing.T) {
	cases := []struct {
		a, b IndexingMode
		want IndexingMode
		err  bool
	}{
		{Unindexed, TokenizedWithFreq, TokenizedWithFreq, false},
		{TokenizedWithFreq, Unindexed, TokenizedWithFreq, false},
		{TokenizedWithFreq, TokenizedWithFreq, TokenizedWithFreq, false},
		{TokenizedWithFreq, Untokenized, 0, true},
	}
	for _, c := range cases {
		got, err := c.a.Combine(c.b)
		if c.err {
			if err == nil {
				t.Fatalf("combine(%v,%v): expected error", c.a, c.b)
			}
			continue
		}
		if err != nil {
			t.Fatalf("combine(%v,%v): unexpected error %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Fatalf("combine(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestTextOptionsCombine(t *testing.T) {
	got, err := TEXT.Combine(STORED)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if got.Indexing != TokenizedWithFreqAndPosition || !got.IsStored() {
		t.Fatalf("got %+v", got)
	}
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.AddNumericField("count", NumericOptions{Indexed: false, Fast: true, Stored: true})
	b.AddTextField("title", TEXT)
	b.AddTextField("author", TEXT)
	s := b.Build()

	data, err := s.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	fields := generic["fields"].([]interface{})
	first := fields[0].(map[string]interface{})
	if first["name"] != "count" {
		t.Fatalf("expected count first, got %v", first["name"])
	}
	ft := first["type"].(map[string]interface{})
	opts := ft["options"].(map[string]interface{})
	if opts["indexed"] != false || opts["fast"] != true || opts["stored"] != true {
		t.Fatalf("unexpected count options: %v", opts)
	}

	second := fields[1].(map[string]interface{})
	ft2 := second["type"].(map[string]interface{})
	opts2 := ft2["options"].(map[string]interface{})
	if opts2["indexing"] != "tokenized_with_freq_and_position" || opts2["stored"] != false {
		t.Fatalf("unexpected title options: %v", opts2)
	}

	s2, err := FromJSON(data)
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if !s.Equal(s2) {
		t.Fatalf("round trip schema mismatch")
	}
}

func TestNamedDocRoundTrip(t *testing.T) {
	b := NewBuilder()
	bodyID := b.AddTextField("body", STORED)
	titleID := b.AddTextField("title", STORED)
	s := b.Build()

	doc := document.New()
	doc.AddText(bodyID, "lorem ipsum")
	doc.AddText(titleID, "Doc 1")

	nd, err := s.ToNamedDoc(doc)
	if err != nil {
		t.Fatalf("to named doc: %v", err)
	}
	back, err := s.FromNamedDoc(nd)
	if err != nil {
		t.Fatalf("from named doc: %v", err)
	}
	if !back.Equal(doc) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDocFromJSONRejectsWrongKind(t *testing.T) {
	b := NewBuilder()
	b.AddNumericField("count", NUMERIC)
	s := b.Build()

	_, err := s.DocFromJSON([]byte(`{"count": ["not-a-number"]}`))
	if err == nil {
		t.Fatalf("expected unsupported value kind error")
	}
}

func TestUnknownFieldName(t *testing.T) {
	s := NewBuilder().Build()
	if _, err := s.GetFieldID("missing"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
