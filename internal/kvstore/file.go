package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// fileExtension is the extension of value files.
const fileExtension = ".json"

// FileStore keeps one file per key under a directory. Writes go to a temp
// file renamed into place, guarded by a lockfile so concurrent ecoroute
// processes do not interleave.
type FileStore struct {
	directory string

	// mu serializes access within the process; the lockfile covers other
	// processes.
	mu sync.RWMutex
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(directory string) (*FileStore, error) {
	if directory == "" {
		return nil, errors.New("storage directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0o750); err != nil {
		return nil, fmt.Errorf("%w: creating storage directory: %w", ErrStorageUnavailable, err)
	}
	return &FileStore{directory: directory}, nil
}

// Directory returns the directory holding the value files.
func (s *FileStore) Directory() string {
	return s.directory
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyToFilePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, unavailable("read", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	filePath := s.keyToFilePath(key)
	unlock, err := acquireFileLock(filePath + ".lock")
	if err != nil {
		return unavailable("lock", key, err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write to temporary file first, then rename for atomicity
	tmpPath := filePath + ".tmp"
	if writeErr := os.WriteFile(tmpPath, []byte(value), 0o600); writeErr != nil {
		return unavailable("write", key, writeErr)
	}
	if renameErr := os.Rename(tmpPath, filePath); renameErr != nil {
		_ = os.Remove(tmpPath)
		return unavailable("rename", key, renameErr)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	filePath := s.keyToFilePath(key)
	unlock, err := acquireFileLock(filePath + ".lock")
	if err != nil {
		return unavailable("lock", key, err)
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if removeErr := os.Remove(filePath); removeErr != nil && !os.IsNotExist(removeErr) {
		return unavailable("delete", key, removeErr)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// keyToFilePath converts a key to a file path.
// The key is sanitized to ensure filesystem safety.
func (s *FileStore) keyToFilePath(key string) string {
	safeKey := strings.ReplaceAll(key, "/", "_")
	safeKey = strings.ReplaceAll(safeKey, "\\", "_")
	safeKey = strings.ReplaceAll(safeKey, ":", "_")
	safeKey = strings.ReplaceAll(safeKey, "..", "_")
	return filepath.Join(s.directory, safeKey+fileExtension)
}
