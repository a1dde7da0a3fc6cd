package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func TestFileCacheRoundTrip(t *testing.T) {
	fc := NewFileCacheAt[sample](t.TempDir(), 0)
	key := fc.GenerateKey("pattern", 42)

	_, ok := fc.Get(key)
	assert.False(t, ok)

	require.NoError(t, fc.Set(key, sample{Name: "centroid", Value: 1.5}))

	got, ok := fc.Get(key)
	require.True(t, ok)
	assert.Equal(t, sample{Name: "centroid", Value: 1.5}, got)
}

func TestFileCacheKeysAreStable(t *testing.T) {
	fc := NewFileCacheAt[sample](t.TempDir(), 0)

	assert.Equal(t, fc.GenerateKey("a", 1), fc.GenerateKey("a", 1))
	assert.NotEqual(t, fc.GenerateKey("a", 1), fc.GenerateKey("a", 2))
}

func TestFileCacheExpiredEntryIsMiss(t *testing.T) {
	fc := NewFileCacheAt[sample](t.TempDir(), time.Hour)
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	fc.now = func() time.Time { return now }

	require.NoError(t, fc.Set("k", sample{Name: "x"}))

	now = now.Add(30 * time.Minute)
	_, ok := fc.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Hour)
	_, ok = fc.Get("k")
	assert.False(t, ok)
}

func TestFileCacheRejectsTamperedEntry(t *testing.T) {
	dir := t.TempDir()
	fc := NewFileCacheAt[sample](dir, 0)
	require.NoError(t, fc.Set("k", sample{Name: "x", Value: 1}))

	path := filepath.Join(dir, "k.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"value":1`, `"value":2`, 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0644))

	_, ok := fc.Get("k")
	assert.False(t, ok)
}

func TestFileCacheDelete(t *testing.T) {
	fc := NewFileCacheAt[sample](t.TempDir(), 0)
	require.NoError(t, fc.Set("k", sample{Name: "x"}))
	require.NoError(t, fc.Delete("k"))
	require.NoError(t, fc.Delete("k"))

	_, ok := fc.Get("k")
	assert.False(t, ok)
}

func TestFileCacheClear(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	fc := NewFileCacheAt[sample](dir, 0)
	require.NoError(t, fc.Set(fc.GenerateKey("a"), sample{Name: "a"}))
	require.NoError(t, fc.Set(fc.GenerateKey("b"), sample{Name: "b"}))

	require.NoError(t, fc.Clear())

	_, err := os.Stat(fc.Dir())
	assert.True(t, os.IsNotExist(err))
	_, ok := fc.Get(fc.GenerateKey("a"))
	assert.False(t, ok)

	require.NoError(t, fc.Clear(), "clearing a missing folder is not an error")
	require.NoError(t, fc.Set(fc.GenerateKey("a"), sample{Name: "again"}))
}
