package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyforge/studio/pkg/studio"
)

func TestRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	data := []byte("hello")
	require.NoError(t, store.Upload(ctx, "a/b.txt", bytes.NewReader(data)))

	rc, err := store.Download(ctx, "a/b.txt")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, data, got)

	info, err := store.Meta(ctx, "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
}

func TestDownloadMissing(t *testing.T) {
	store := New()
	_, err := store.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, studio.ErrFileNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "a/b.txt", bytes.NewReader([]byte("x"))))
	require.NoError(t, store.Delete(ctx, "a/b.txt"))
	assert.NoError(t, store.Delete(ctx, "a/b.txt"))
	assert.NoError(t, store.Delete(ctx, "never"))
}

func TestDeleteTreePrefixBoundary(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "show/scene_1/a.png", bytes.NewReader([]byte("a"))))
	require.NoError(t, store.Upload(ctx, "show/scene_1/sub/b.png", bytes.NewReader([]byte("b"))))
	require.NoError(t, store.Upload(ctx, "show/scene_10/c.png", bytes.NewReader([]byte("c"))))

	require.NoError(t, store.DeleteTree(ctx, "show/scene_1"))

	// scene_10 shares the string prefix but is a different directory.
	assert.Equal(t, []string{"show/scene_10/c.png"}, store.Keys())
}
