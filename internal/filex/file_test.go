package filex

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal PNG signature + IHDR chunk header
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestOpenLocalFile_DetectsType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover photo.png")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

	f, err := OpenLocalFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, "cover photo.png", f.Name)
	assert.Equal(t, "image/png", f.ContentType)
	assert.Equal(t, int64(len(pngHeader)), f.Size)
	assert.True(t, f.IsImage())

	data, err := io.ReadAll(f.Reader)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestOpenLocalFile_TextDropsCharset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o600))

	f, err := OpenLocalFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, "text/plain", f.ContentType)
}

func TestOpenLocalFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := OpenLocalFile(filepath.Join(dir, "missing.mp4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = OpenLocalFile(dir)
	require.ErrorContains(t, err, "is a directory")
}

func TestBaseType(t *testing.T) {
	assert.Equal(t, "text/plain", baseType("text/plain; charset=utf-8"))
	assert.Equal(t, "video/mp4", baseType("video/mp4"))
}
