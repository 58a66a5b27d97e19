package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s := NewFileStore(DefaultStorePath(filepath.Join(t.TempDir(), "data")))

	_, ok, err := s.Get(StoreKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(StoreKey, `{"enabled":false}`))
	require.NoError(t, s.Set("other.key", "x"))

	v, ok, err := s.Get(StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"enabled":false}`, v)

	v, ok, err = s.Get("other.key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	s := NewFileStore(path)

	_, _, err := s.Get(StoreKey)
	require.ErrorIs(t, err, ErrCorruptStore)

	require.NoError(t, s.Set(StoreKey, "{}"))
	v, ok, err := s.Get(StoreKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("a", "1"))
	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok, _ = s.Get("b")
	assert.False(t, ok)
}
