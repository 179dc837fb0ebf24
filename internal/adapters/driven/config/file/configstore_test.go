package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestSetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("backend.url", "http://localhost:8000"))
	require.NoError(t, store.Set("search.page_size", 20))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "http://localhost:8000", store.GetString("backend.url", ""))
	assert.Equal(t, 20, store.GetInt("search.page_size", 10))
	assert.True(t, store.GetBool("verbose", false))
}

func TestFallbacks(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", store.GetString("backend.url", "http://localhost:8000"))
	assert.Equal(t, 10, store.GetInt("search.page_size", 10))
	assert.False(t, store.GetBool("verbose", false))
	assert.True(t, store.GetBool("colours", true))
}

func TestFallbackOnWrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("search.page_size", "twenty"))
	assert.Equal(t, 10, store.GetInt("search.page_size", 10))
}

func TestPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.url", "http://ranked.example.com"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://ranked.example.com", reopened.GetString("backend.url", ""))
}

func TestLoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[backend]\nurl = \"http://localhost:8000\"\n\n[search]\npage_size = 25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", store.GetString("backend.url", ""))
	assert.Equal(t, 25, store.GetInt("search.page_size", 10))
}

func TestConfigFilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
