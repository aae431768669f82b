package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageMIMEType(t *testing.T) {
	assert.Equal(t, "image/jpeg", ImageMIMEType("garden.JPG"))
	assert.Equal(t, "image/png", ImageMIMEType("a/b/front.png"))
	assert.Equal(t, "image/webp", ImageMIMEType("x.webp"))
	assert.Equal(t, "", ImageMIMEType("notes.txt"))
	assert.Equal(t, "", ImageMIMEType("noext"))
}

func TestFindImages_RecursiveNewestFirst(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))

	older := filepath.Join(root, "a", "front.jpg")
	newer := filepath.Join(root, "a", "b", "back.png")
	skipped := filepath.Join(root, "a", "readme.md")
	for _, p := range []string{older, newer, skipped} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(older, past, past))

	files, truncated, err := FindImages(root, "**/*")
	require.NoError(t, err)
	assert.False(t, truncated)
	assert.Equal(t, []string{newer, older}, files)
}

func TestFindImages_EmptyPattern(t *testing.T) {
	_, _, err := FindImages(t.TempDir(), "  ")
	assert.Error(t, err)
}

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, DirectoryExists(dir))
	assert.False(t, DirectoryExists(filepath.Join(dir, "missing")))
}
