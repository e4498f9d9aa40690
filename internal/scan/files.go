// Package scan finds image files in a directory and its subdirectories.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern matches every file at any depth. IsImage still applies.
const DefaultPattern = "**/*"

// FileItem is an image file found by a scan.
type FileItem struct {
	Path string
	Info os.FileInfo
}

// FileItems is a slice of FileItem
type FileItems []FileItem

// NewFileItem creates a new FileItem
func NewFileItem(p string, info os.FileInfo) FileItem {
	return FileItem{
		Path: p,
		Info: info,
	}
}

// Run walks dir and returns the non-empty image files whose path relative to
// dir matches pattern, sorted by absolute path. Matching is case-insensitive and an
// empty pattern selects DefaultPattern.
func Run(dir, pattern string) (FileItems, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	pattern = strings.ToLower(filepath.ToSlash(pattern))
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var items FileItems
	err = doublestar.GlobWalk(os.DirFS(root), "**", func(p string, d fs.DirEntry) error {
		if d.IsDir() || !IsImage(p) {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, strings.ToLower(p)); !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() && info.Size() > 0 {
			items = append(items, NewFileItem(filepath.Join(root, filepath.FromSlash(p)), info))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// IsImage checks if a file is an image
func IsImage(n string) bool {
	switch strings.ToLower(filepath.Ext(n)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".tif", ".tiff":
		return true
	default:
		return false
	}
}
