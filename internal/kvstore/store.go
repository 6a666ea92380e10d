// Package kvstore is the key-value persistence layer behind the calculation
// history. Values are opaque strings; every backend reports failures wrapped
// in ErrStorageUnavailable.
package kvstore

import (
	"context"
	"fmt"

	"github.com/rshade/ecoroute/internal/config"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors, comparable with errors.Is().
var (
	// ErrStorageUnavailable wraps every backend failure.
	ErrStorageUnavailable = constError("storage unavailable")

	// ErrInvalidKey is returned for an empty key.
	ErrInvalidKey = constError("storage key cannot be empty")
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile, "":
		return asStore[*FileStore](NewFileStore(cfg.Directory))
	case config.BackendRedis:
		return asStore[*RedisStore](OpenRedis(ctx, cfg))
	case config.BackendPostgres:
		return asStore[*PostgresStore](OpenPostgres(ctx, cfg.PostgresURL))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// asStore keeps a nil concrete pointer from becoming a non-nil interface.
func asStore[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrStorageUnavailable, op, key, err)
}
