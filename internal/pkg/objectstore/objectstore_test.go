package objectstore

import (
	"context"
	"io"
	"strings"
	"testing"

	appcfg "github.com/brandhub/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	url, err := store.Put(ctx, "profiles/p1/brand voice.txt", strings.NewReader("warm and playful"), 16, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profiles/p1/brand%20voice.txt", url)

	key, ok := store.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "profiles/p1/brand voice.txt", key)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "warm and playful", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/etc/passwd", url)

	_, err = store.Put(context.Background(), "../..", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
}

func TestKeyFromURL(t *testing.T) {
	_, ok := keyAfterPrefix("https://cdn.example/other/x.pdf", "https://cdn.example/brand")
	assert.False(t, ok)

	key, ok := keyAfterPrefix("https://cdn.example/brand/a/b.pdf?X-Amz-Signature=1", "https://cdn.example/brand")
	require.True(t, ok)
	assert.Equal(t, "a/b.pdf", key)
}

func TestNewSelectsDriver(t *testing.T) {
	store, err := New(context.Background(), appcfg.StorageConfig{Driver: appcfg.StorageLocal}, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), appcfg.StorageConfig{Driver: appcfg.StorageS3}, "")
	assert.Error(t, err)

	s3Store, err := NewS3Store(appcfg.S3Options{
		Bucket: "brand", Region: "us-east-1", AccessKeyID: "ak", SecretAccessKey: "sk",
		Endpoint: "s3.internal:9000",
	})
	require.NoError(t, err)
	key, ok := s3Store.KeyFromURL("https://s3.internal:9000/brand/profiles/x.pdf")
	require.True(t, ok)
	assert.Equal(t, "profiles/x.pdf", key)

	_, err = New(context.Background(), appcfg.StorageConfig{Driver: "ftp"}, "")
	assert.Error(t, err)
}
