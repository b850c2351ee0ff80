package store

import (
	"errors"
	"fmt"
)

// ErrUnknownDocId is returned when a requested document id is not
// covered by the reader's offset tables.
var ErrUnknownDocId = errors.New("store: unknown document id")

// ErrCorruptedStore is returned when a decode or consistency check
// against the on-disk layout fails.
var ErrCorruptedStore = errors.New("store: corrupted store")

// ErrWriterClosed is returned by Write and WriteDocument called after
// Close. A repeated Close returns nil.
var ErrWriterClosed = errors.New("store: writer already closed")

// UnknownDocIdError names the offending document id.
type UnknownDocIdError struct {
	DocId uint32
}

func (e *UnknownDocIdError) Error() string {
	return fmt.Sprintf("store: unknown document id %d", e.DocId)
}

func (e *UnknownDocIdError) Unwrap() error { return ErrUnknownDocId }

// CorruptedStoreError carries the block and/or document context in
// which a decode or consistency check failed.
type CorruptedStoreError struct {
	Context string
	Err     error
}

func (e *CorruptedStoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store: corrupted store (%s): %v", e.Context, e.Err)
	}
	return fmt.Sprintf("store: corrupted store (%s)", e.Context)
}

func (e *CorruptedStoreError) Unwrap() error { return ErrCorruptedStore }

func corrupted(context string, err error) error {
	return &CorruptedStoreError{Context: context, Err: err}
}
