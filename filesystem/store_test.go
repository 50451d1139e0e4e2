package filesystem_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/facerelay"
	"github.com/sagarc03/facerelay/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*filesystem.Store, string) {
	t.Helper()

	tempDir := t.TempDir()
	root, err := os.OpenRoot(tempDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	return filesystem.NewFileStorage(root), tempDir
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	store, root, err := filesystem.Open(dir)
	require.NoError(t, err)
	defer func() { _ = root.Close() }()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "image.png")), store.Location("image.png"))
}

func TestStore_Get_Success(t *testing.T) {
	store, tempDir := newStore(t)

	content := []byte("test content")
	err := os.WriteFile(filepath.Join(tempDir, "test.txt"), content, 0o644)
	require.NoError(t, err)

	result, err := store.Get(context.Background(), "test.txt")
	require.NoError(t, err)

	readContent, err := io.ReadAll(result)
	assert.NoError(t, err)
	assert.Equal(t, content, readContent)
	assert.NoError(t, result.Close())
}

func TestStore_Get_ContextCanceled(t *testing.T) {
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := store.Get(ctx, "test.txt")

	assert.Nil(t, result)
	assert.Equal(t, context.Canceled, err)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, _ := newStore(t)

	result, err := store.Get(context.Background(), "nonexistent.txt")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, facerelay.ErrNotFound)
}

func TestStore_Write_Success(t *testing.T) {
	store, tempDir := newStore(t)

	result, err := store.Write(context.Background(), "image.png", bytes.NewReader([]byte("test content")))

	require.NoError(t, err)
	assert.Equal(t, int64(12), result.BytesWritten)
	assert.Equal(t, 64, len(result.Etag)) // SHA256 hex length
	assert.Equal(t, filepath.ToSlash(filepath.Join(tempDir, "image.png")), result.Location)
	assert.Equal(t, "image/png", result.ContentType)

	data, err := os.ReadFile(filepath.Join(tempDir, "image.png"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("test content"), data)
}

func TestStore_Write_SameNameOverwrites(t *testing.T) {
	store, tempDir := newStore(t)
	ctx := context.Background()

	first, err := store.Write(ctx, "image.png", bytes.NewReader([]byte("first")))
	require.NoError(t, err)

	second, err := store.Write(ctx, "image.png", bytes.NewReader([]byte("second upload")))
	require.NoError(t, err)

	assert.Equal(t, first.Location, second.Location)
	assert.NotEqual(t, first.Etag, second.Etag)

	data, err := os.ReadFile(filepath.Join(tempDir, "image.png"))
	require.NoError(t, err)
	assert.Equal(t, "second upload", string(data))

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_Write_EscapingNameRejected(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Write(context.Background(), "../escape.txt", bytes.NewReader([]byte("x")))

	assert.Error(t, err)
}

func TestStore_Write_ContextCanceledBefore(t *testing.T) {
	store, _ := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := store.Write(ctx, "test.txt", bytes.NewReader([]byte("test")))

	assert.Equal(t, int64(0), result.BytesWritten)
	assert.Empty(t, result.Etag)
	assert.Equal(t, context.Canceled, err)
}

func TestStore_Write_ContextCanceledDuringCopy(t *testing.T) {
	store, tempDir := newStore(t)

	ctx, cancel := context.WithCancel(context.Background())

	slowReader := &slowReader{
		data:   []byte("test content"),
		cancel: cancel,
	}

	result, err := store.Write(ctx, "test.txt", slowReader)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), result.BytesWritten)
	assert.Empty(t, result.Etag)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial write must be removed")
}

type slowReader struct {
	data   []byte
	pos    int
	cancel context.CancelFunc
}

func (r *slowReader) Read(p []byte) (n int, err error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	r.cancel()
	n = copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func TestContentType(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"image.png", "image/png"},
		{"frame.jpg", "image/jpeg"},
		{"data.json", "application/json"},
		{"noext", "application/octet-stream"},
		{"weird.zzzunknown", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filesystem.ContentType(tt.name))
		})
	}
}
