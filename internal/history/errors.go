package history

import (
	"fmt"

	"github.com/rshade/ecoroute/internal/kvstore"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is().
var (
	// ErrStoreCorrupted is returned by Load when the persisted history cannot
	// be decoded or carries an unsupported version.
	ErrStoreCorrupted = constError("history store corrupted")

	// ErrStorageUnavailable wraps persistence failures. It is the same value
	// as kvstore.ErrStorageUnavailable.
	ErrStorageUnavailable = kvstore.ErrStorageUnavailable
)

// InvalidIndexError reports a history position outside the current list.
type InvalidIndexError struct {
	Index int
	Len   int
}

func (e *InvalidIndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("invalid history index %d: history is empty", e.Index)
	}
	return fmt.Sprintf("invalid history index %d: must be between 0 and %d", e.Index, e.Len-1)
}

// InvalidImportDataError rejects an import batch. Index is the position of
// the first offending record, or -1 when the payload itself is malformed.
type InvalidImportDataError struct {
	Index int
	Field string
	Err   error
}

func (e *InvalidImportDataError) Error() string {
	switch {
	case e.Index < 0 && e.Err != nil:
		return fmt.Sprintf("invalid import data: %v", e.Err)
	case e.Index < 0:
		return "invalid import data"
	default:
		return fmt.Sprintf("invalid import data: record %d: missing or invalid %s", e.Index, e.Field)
	}
}

func (e *InvalidImportDataError) Unwrap() error { return e.Err }
