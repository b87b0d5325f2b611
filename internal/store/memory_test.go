package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kvContract runs the behaviour every backend must share.
func kvContract(t *testing.T, kv KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "passwordHash")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "passwordHash", "abc"))
	require.NoError(t, kv.Set(ctx, "secure:customers", "blob-1"))
	require.NoError(t, kv.Set(ctx, "secure:notes", "blob-2"))

	v, err := kv.Get(ctx, "passwordHash")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	// whole-value replacement
	require.NoError(t, kv.Set(ctx, "passwordHash", "def"))
	v, err = kv.Get(ctx, "passwordHash")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	keys, err := kv.Keys(ctx, "secure:")
	require.NoError(t, err)
	assert.Equal(t, []string{"secure:customers", "secure:notes"}, keys)

	require.NoError(t, kv.Remove(ctx, "secure:customers"))
	require.NoError(t, kv.Remove(ctx, "secure:customers"), "removing an absent key is not an error")

	_, err = kv.Get(ctx, "secure:customers")
	require.ErrorIs(t, err, ErrKeyNotFound)

	keys, err = kv.Keys(ctx, "secure:")
	require.NoError(t, err)
	assert.Equal(t, []string{"secure:notes"}, keys)
}

func TestMemoryStore_Contract(t *testing.T) {
	kv := NewMemoryStore()
	defer kv.Close()

	kvContract(t, kv)
}

func TestFileStore_Contract(t *testing.T) {
	kv, err := NewFileStore(filepath.Join(t.TempDir(), "guard.json"))
	require.NoError(t, err)
	defer kv.Close()

	kvContract(t, kv)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "guard.json")
	ctx := context.Background()

	kv, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "legalAccepted", "true"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	v, err := reopened.Get(ctx, "legalAccepted")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guard.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path)
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestFileStore_FailedWriteKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guard.json")
	ctx := context.Background()

	kv, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "hasPassword", "true"))

	// point the store at a directory that cannot hold the temp file
	fs := kv.(*fileStore)
	fs.path = filepath.Join(dir, "missing-parent-file", "x", "guard.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "missing-parent-file"), nil, 0o600))

	err = kv.Set(ctx, "hasPassword", "changed")
	require.ErrorIs(t, err, ErrStorageUnavailable)

	v, err := kv.Get(ctx, "hasPassword")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}
