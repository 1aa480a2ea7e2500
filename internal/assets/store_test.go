package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Put([]byte("png-bytes"), "png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, URLPrefix))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := store.Get(url)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestPutRejectsEmptyData(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Put(nil, "png")
	assert.Error(t, err)
}

func TestPutDefaultsExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Put([]byte("png-bytes"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestGetRejectsForeignReferences(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("https://example.com/image.png")
	assert.Error(t, err)

	_, err = store.Get("/assets/")
	assert.Error(t, err)

	_, err = store.Get("/assets/../../etc/passwd")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Put([]byte("png-bytes"), "png")
	require.NoError(t, err)

	assert.True(t, store.Exists(url))
	assert.False(t, store.Exists("/assets/missing.png"))
	assert.False(t, store.Exists("/assets/../store.go"))
	assert.False(t, store.Exists("not-a-url"))
}

func TestUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Put([]byte("a"), "png")
	require.NoError(t, err)
	second, err := store.Put([]byte("b"), "png")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
