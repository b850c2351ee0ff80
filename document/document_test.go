package document

import (
	"bytes"
	"testing"
)

func TestGetSortedFieldsOrdersByID(t *testing.T) {
	d := New()
	d.AddU32(3, 1)
	d.AddU32(1, 2)
	d.AddU32(10, 3)
	d.AddU32(2, 4)

	groups := d.GetSortedFields()
	got := make([]FieldId, 0, len(groups))
	for _, g := range groups {
		got = append(got, g.ID)
	}
	want := []FieldId{1, 2, 3, 10}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestGetSortedFieldsIsIdempotent(t *testing.T) {
	d := New()
	d.AddU32(5, 1)
	d.AddU32(1, 2)

	first := d.GetSortedFields()
	second := d.GetSortedFields()
	if len(first) != len(second) {
		t.Fatalf("mismatched lengths")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("second call changed order: %v vs %v", first, second)
		}
	}
}

func TestDocumentEqualityIgnoresInsertionOrder(t *testing.T) {
	a := New()
	a.AddU32(1, 10)
	a.AddText(2, "x")

	b := New()
	b.AddText(2, "x")
	b.AddU32(1, 10)

	if !a.Equal(b) {
		t.Fatalf("expected documents to be equal regardless of insertion order")
	}
}

func TestDocumentEncodeDecodeRoundTrip(t *testing.T) {
	d := New()
	d.AddU32(0, 42)
	d.AddText(1, "hello")
	d.AddText(1, "world")

	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, n, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != d.Len() {
		t.Fatalf("decoded count %d want %d", n, d.Len())
	}
	if !decoded.Equal(d) {
		t.Fatalf("round trip mismatch: got %+v want %+v", decoded.GetFields(), d.GetFields())
	}
}

func TestGetFirstAndAllByID(t *testing.T) {
	d := New()
	d.AddText(0, "a")
	d.AddText(0, "b")
	d.AddU32(1, 7)

	first, ok := d.GetFirstByID(0)
	if !ok {
		t.Fatalf("expected field 0 to exist")
	}
	if s, _ := first.Text(); s != "a" {
		t.Fatalf("got %v want a", s)
	}

	all := d.GetAllByID(0)
	if len(all) != 2 {
		t.Fatalf("expected 2 values, got %d", len(all))
	}
}
