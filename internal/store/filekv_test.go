package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := kv.Get("absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set("user.uid", "abc-123"))
		v, ok, err := kv.Get("user.uid")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "abc-123", v)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Set("temp", "x"))
		require.NoError(t, kv.Delete("temp"))
		_, ok, err := kv.Get("temp")
		require.NoError(t, err)
		assert.False(t, ok)

		// Deleting an absent key is a no-op.
		require.NoError(t, kv.Delete("temp"))
	})

	t.Run("survives reopen", func(t *testing.T) {
		require.NoError(t, kv.Set("persist", "yes"))

		reopened, err := OpenFileKV(path)
		require.NoError(t, err)
		v, ok, err := reopened.Get("persist")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "yes", v)
	})
}

func TestOpenFileKVCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	kv, err := OpenFileKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("k", "v"))

	reopened, err := OpenFileKV(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
