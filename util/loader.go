package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// BitmapExt is the extension of files handled by the tool.
const BitmapExt = ".bmp"

// ImageFile represents a bitmap file found on disk.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Name is the base name of the file.
	Name string
}

// HasBitmapExt reports whether path ends in .bmp, ignoring case.
func HasBitmapExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BitmapExt)
}

// ListBitmapFiles lists the bitmap files directly inside a directory.
//
// Arguments:
// - dir: Directory path containing image files.
//
// Returns:
// - []ImageFile: The bitmap files sorted by name.
// - error: Error if the directory cannot be read.
func ListBitmapFiles(dir string) ([]ImageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !HasBitmapExt(entry.Name()) {
			continue
		}
		files = append(files, ImageFile{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}
