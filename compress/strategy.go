// Package compress implements the store's pluggable block compression
// seam: each flushed block is compressed with the store writer's
// configured Strategy, and decompressed with the same Strategy by the
// reader.
package compress

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned by ByName/ByID for an unrecognized
// strategy identifier.
var ErrUnknownStrategy = errors.New("compress: unknown strategy")

// ID identifies a strategy for ByID lookups. The store file does not
// record it: a reader must be given the Strategy the file was written
// with.
type ID uint8

const (
	// Identity is the default: blocks are stored uncompressed.
	Identity ID = iota
	// LZ4 compresses blocks with LZ4's frame format.
	LZ4
)

func (id ID) String() string {
	switch id {
	case Identity:
		return "identity"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", id)
	}
}

// Strategy compresses and decompresses whole byte buffers: each
// flushed block is compressed (or left alone) as a single unit, never
// streamed.
type Strategy interface {
	ID() ID
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// ByID resolves a strategy from its wire identifier.
func ByID(id ID) (Strategy, error) {
	switch id {
	case Identity:
		return IdentityStrategy{}, nil
	case LZ4:
		return LZ4Strategy{}, nil
	default:
		return nil, fmt.Errorf("%w: id %d", ErrUnknownStrategy, id)
	}
}

// ByName resolves a strategy from its canonical name ("identity" or
// "lz4"), for configuration surfaces like the CLI.
func ByName(name string) (Strategy, error) {
	switch name {
	case "identity", "":
		return IdentityStrategy{}, nil
	case "lz4":
		return LZ4Strategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
