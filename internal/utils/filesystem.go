package utils

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	filepathx "github.com/yargevad/filepathx"
)

const imageResultLimit = 500

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// ImageMIMEType guesses the MIME type of an image file from its extension.
// It returns an empty string for anything that is not an image.
func ImageMIMEType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".webp" {
		return "image/webp"
	}
	t := mime.TypeByExtension(ext)
	if !strings.HasPrefix(t, "image/") {
		return ""
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

// FindImages expands pattern (which may contain **) relative to root and
// returns the image files it matches, newest first. The second result
// reports whether the list was truncated.
func FindImages(root, pattern string) ([]string, bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, false, fmt.Errorf("pattern is required")
	}
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(root, pattern)
	}

	matches, err := filepathx.Glob(absPattern)
	if err != nil {
		return nil, false, fmt.Errorf("invalid glob pattern: %w", err)
	}

	type fileInfo struct {
		path  string
		mtime int64
	}
	files := make([]fileInfo, 0, len(matches))
	truncated := false
	for _, p := range matches {
		st, err := os.Stat(p)
		if err != nil || st.IsDir() {
			continue
		}
		if ImageMIMEType(p) == "" {
			continue
		}
		files = append(files, fileInfo{path: filepath.Clean(p), mtime: st.ModTime().UnixNano()})
		if len(files) >= imageResultLimit {
			truncated = true
			break
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].mtime > files[j].mtime })

	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.path
	}
	return out, truncated, nil
}
