package filestore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutAndGet(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	data := []byte("fake-jpeg-bytes")
	path, err := store.PutProfileImage(42, data, "avatar.jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "customer-42/"), "path %q", path)
	assert.True(t, strings.HasSuffix(path, ".jpeg"), "path %q", path)

	got, err := store.GetProfileImage(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_FreshNamePerUpload(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.PutProfileImage(1, []byte("one"), "a.jpg")
	require.NoError(t, err)
	second, err := store.PutProfileImage(1, []byte("two"), "a.jpg")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_MissingExtensionDefaultsToJPG(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.PutProfileImage(1, []byte("img"), "avatar")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".jpg"), "path %q", path)
}

func TestStore_Remove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.PutProfileImage(7, []byte("img"), "a.png")
	require.NoError(t, err)

	require.NoError(t, store.Remove(path))

	_, err = store.GetProfileImage(path)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Remove(path), ErrNotFound)
}

func TestStore_RejectsEscapingPaths(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, path := range []string{
		"../outside.jpg",
		"../../etc/passwd",
		"/etc/passwd",
		"customer-1/../../outside.jpg",
	} {
		_, err := store.GetProfileImage(path)
		assert.Error(t, err, "path %q", path)
		assert.NotErrorIs(t, err, ErrNotFound, "path %q must be rejected, not merely missing", path)
	}
}
