package compress

import (
	"bytes"
	"testing"
)

func TestIdentityRoundTrip(t *testing.T) {
	s := IdentityStrategy{}
	data := []byte("lorem ipsum dolor sit amet")
	c, err := s.Compress(data)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	d, err := s.Decompress(c)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(d, data) {
		t.Fatalf("got %q", d)
	}
}

func TestLZ4RoundTrip(t *testing.T) {
	s := LZ4Strategy{}
	data := bytes.Repeat([]byte("lorem ipsum dolor sit amet "), 200)
	c, err := s.Compress(data)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if len(c) >= len(data) {
		t.Fatalf("expected compression to shrink repetitive input")
	}
	d, err := s.Decompress(c)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(d, data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestByNameAndByID(t *testing.T) {
	s, err := ByName("lz4")
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	if s.ID() != LZ4 {
		t.Fatalf("expected LZ4 id")
	}
	if _, err := ByName("bogus"); err == nil {
		t.Fatalf("expected error for unknown strategy name")
	}
	if _, err := ByID(Identity); err != nil {
		t.Fatalf("by id identity: %v", err)
	}
}
