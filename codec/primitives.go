// Package codec implements the length-prefixed little-endian wire format
// shared by the schema, document and store packages: a self-describing
// stream that needs no external schema registry to decode.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// EncodeFailed wraps an I/O error that happened while writing a value.
type EncodeFailed struct {
	Context string
	Err     error
}

func (e *EncodeFailed) Error() string {
	return fmt.Sprintf("encode failed (%s): %v", e.Context, e.Err)
}

func (e *EncodeFailed) Unwrap() error { return e.Err }

// DecodeFailed wraps a short read, tag mismatch or size mismatch.
type DecodeFailed struct {
	Context string
	Err     error
}

func (e *DecodeFailed) Error() string {
	return fmt.Sprintf("decode failed (%s): %v", e.Context, e.Err)
}

func (e *DecodeFailed) Unwrap() error { return e.Err }

func encodeErr(ctx string, err error) error {
	if err == nil {
		return nil
	}
	return &EncodeFailed{Context: ctx, Err: err}
}

func decodeErr(ctx string, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeFailed{Context: ctx, Err: err}
}

// WriteU32 writes a little-endian uint32.
func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return encodeErr("u32", err)
}

// ReadU32 reads a little-endian uint32.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, decodeErr("u32", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteU64 writes a little-endian uint64.
func WriteU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return encodeErr("u64", err)
}

// ReadU64 reads a little-endian uint64.
func ReadU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, decodeErr("u64", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteBool writes a single-byte boolean.
func WriteBool(w io.Writer, v bool) error {
	var b byte
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return encodeErr("bool", err)
}

// ReadBool reads a single-byte boolean.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, decodeErr("bool", err)
	}
	return buf[0] != 0, nil
}

// WriteBytes writes a u64 length prefix followed by the raw bytes.
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteU64(w, uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return encodeErr("bytes", err)
}

// ReadBytes reads a u64-length-prefixed byte sequence.
func ReadBytes(r io.Reader) ([]byte, error) {
	n, err := ReadU64(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, decodeErr("bytes", err)
	}
	return buf, nil
}

// WriteString writes a u64-length-prefixed UTF-8 string.
func WriteString(w io.Writer, s string) error {
	return WriteBytes(w, []byte(s))
}

// ReadString reads a u64-length-prefixed UTF-8 string.
func ReadString(r io.Reader) (string, error) {
	b, err := ReadBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
