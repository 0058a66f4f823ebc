package geocode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/listing-site-builder/internal/types"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geocache.json")

	store := NewFileStore(path)
	require.NoError(t, store.Load())
	store.Put("台中市西區五權三街", &types.Point{Lat: 24.14, Lng: 120.66})
	store.Put("查不到的地址", nil) // negative marker
	require.NoError(t, store.Save())

	reloaded := NewFileStore(path)
	require.NoError(t, reloaded.Load())

	point, found := reloaded.Get("台中市西區五權三街")
	require.True(t, found)
	require.NotNil(t, point)
	assert.InDelta(t, 24.14, point.Lat, 1e-9)
	assert.InDelta(t, 120.66, point.Lng, 1e-9)

	negative, found := reloaded.Get("查不到的地址")
	assert.True(t, found) // the failure itself is cached
	assert.Nil(t, negative)

	_, found = reloaded.Get("沒查過的地址")
	assert.False(t, found)
}

func TestFileStore_MissingFileIsEmptyCache(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, store.Load())

	_, found := store.Get("任何地址")
	assert.False(t, found)
}

func TestFileStore_CorruptFileIsEmptyCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geocache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewFileStore(path)
	require.NoError(t, store.Load()) // must not abort the build

	_, found := store.Get("任何地址")
	assert.False(t, found)
}

func TestFileStore_SaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache", "geocache.json")

	store := NewFileStore(path)
	require.NoError(t, store.Load())
	store.Put("地址", &types.Point{Lat: 1, Lng: 2})
	require.NoError(t, store.Save())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
