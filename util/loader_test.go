package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBitmapFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame-2.bmp", "frame-1.BMP", "notes.txt", "frame-3.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.bmp"), 0o700))

	files, err := ListBitmapFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "frame-1.BMP", files[0].Name)
	assert.Equal(t, "frame-2.bmp", files[1].Name)
	assert.Equal(t, filepath.Join(dir, "frame-2.bmp"), files[1].Path)
}

func TestListBitmapFilesMissingDir(t *testing.T) {
	_, err := ListBitmapFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHasBitmapExt(t *testing.T) {
	assert.True(t, HasBitmapExt("a/b/c.bmp"))
	assert.True(t, HasBitmapExt("C.BMP"))
	assert.False(t, HasBitmapExt("c.png"))
	assert.False(t, HasBitmapExt("bmp"))
}
