package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestNewFileStore_EmptyDirectory(t *testing.T) {
	_, err := NewFileStore("")
	require.Error(t, err)
}

func TestFileStore_SanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "../team:a/b", "v"))

	_, statErr := os.Stat(filepath.Join(dir, "__team_a_b.json"))
	require.NoError(t, statErr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no lock or temp files left behind")
}

func TestFileStore_ConcurrentWriters(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Set(ctx, "shared", fmt.Sprintf("writer-%d", i)))
		}()
	}
	wg.Wait()

	v, ok, err := s.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, v, "writer-")
}

func TestAcquireFileLock_RemovesStaleLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "history.json.lock")
	require.NoError(t, os.WriteFile(lockPath, []byte("999999999"), 0o600))
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(lockPath, old, old))

	unlock, err := acquireFileLock(lockPath)
	require.NoError(t, err)

	data, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d", os.Getpid()), string(data))

	unlock()
	_, err = os.Stat(lockPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveStaleLock(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Minute)

	t.Run("fresh lock is kept", func(t *testing.T) {
		p := filepath.Join(dir, "fresh.lock")
		require.NoError(t, os.WriteFile(p, []byte("999999999"), 0o600))
		assert.False(t, removeStaleLock(p, staleLockAge))
	})

	t.Run("old lock held by live process is kept", func(t *testing.T) {
		p := filepath.Join(dir, "live.lock")
		require.NoError(t, os.WriteFile(p, []byte(fmt.Sprintf("%d", os.Getpid())), 0o600))
		require.NoError(t, os.Chtimes(p, old, old))
		assert.False(t, removeStaleLock(p, staleLockAge))
	})

	t.Run("old lock without pid is removed", func(t *testing.T) {
		p := filepath.Join(dir, "empty.lock")
		require.NoError(t, os.WriteFile(p, nil, 0o600))
		require.NoError(t, os.Chtimes(p, old, old))
		assert.True(t, removeStaleLock(p, staleLockAge))
		_, err := os.Stat(p)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing lock", func(t *testing.T) {
		assert.False(t, removeStaleLock(filepath.Join(dir, "none.lock"), staleLockAge))
	})
}
