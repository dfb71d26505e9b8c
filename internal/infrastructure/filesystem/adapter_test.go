package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestAdapter_WriteFile(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	ctx := context.Background()
	path := filepath.Join(dir, "report.pdf")

	require.NoError(t, a.WriteFile(ctx, path, []byte("%PDF-1.7")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
	assert.Equal(t, []string{"report.pdf"}, listDir(t, dir), "temp file must be cleaned up")
}

func TestAdapter_WriteFile_NeverClobbers(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	ctx := context.Background()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("original"), filePerm))

	err := a.WriteFile(ctx, path, []byte("new"))
	require.ErrorIs(t, err, port.ErrDestinationExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.Equal(t, []string{"a.txt"}, listDir(t, dir))
}

func TestAdapter_WriteFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "Downloads")
	a := New(dir)

	require.NoError(t, a.WriteFile(context.Background(), filepath.Join(dir, "x.bin"), []byte{1, 2, 3}))
	assert.Equal(t, dir, a.Dir())
	assert.FileExists(t, filepath.Join(dir, "x.bin"))
}

func TestAdapter_WriteStream(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	path := filepath.Join(dir, "stream.txt")

	n, err := a.WriteStream(context.Background(), path, strings.NewReader("hello stream"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello stream")), n)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, n, info.Size())
}

func TestAdapter_WriteStream_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.WriteStream(ctx, filepath.Join(dir, "never.txt"), strings.NewReader("data"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, listDir(t, dir))
}

func TestAdapter_Exists(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	ctx := context.Background()

	ok, err := a.Exists(ctx, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "present"), nil, 0o600))
	ok, err = a.Exists(ctx, filepath.Join(dir, "present"))
	require.NoError(t, err)
	assert.True(t, ok)
}
