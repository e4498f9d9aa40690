// Package gallery is a thumbnail browser that opens images in the viewer.
package gallery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fyviewer/internal/loader"
	"fyviewer/internal/scan"

	"gopkg.in/yaml.v3"
)

// ErrNoRef is returned for manifest items without a path or URL.
var ErrNoRef = errors.New("item has neither path nor url")

// Style is a rendition of an item with its own copy URL.
type Style struct {
	Title   string `yaml:"title"`
	CopyURL string `yaml:"copy_url"`
}

// Item is one image in the gallery.
type Item struct {
	Name    string  `yaml:"name"`
	Path    string  `yaml:"path"`
	URL     string  `yaml:"url"`
	CopyURL string  `yaml:"copy_url"`
	Styles  []Style `yaml:"styles"`
}

// Manifest lists gallery items.
type Manifest struct {
	Items []Item `yaml:"items"`
}

// Ref is what the loader fetches for the item.
func (it Item) Ref() string {
	if it.URL != "" {
		return it.URL
	}
	return it.Path
}

// DisplayName is the name shown in the toolbar.
func (it Item) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	return filepath.Base(it.Ref())
}

// StyleTitles returns the titles of the styles in order.
func (it Item) StyleTitles() []string {
	titles := make([]string, len(it.Styles))
	for i, s := range it.Styles {
		titles[i] = s.Title
	}
	return titles
}

// CopyURLFor returns the URL copied for the style at index. Indices without a
// style URL fall back to the item's copy URL, then to its reference.
func (it Item) CopyURLFor(index int) string {
	if index >= 0 && index < len(it.Styles) && it.Styles[index].CopyURL != "" {
		return it.Styles[index].CopyURL
	}
	if it.CopyURL != "" {
		return it.CopyURL
	}
	return it.Ref()
}

// ParseManifest decodes a YAML manifest. Relative paths are resolved
// against base.
func ParseManifest(data []byte, base string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	for i := range m.Items {
		it := &m.Items[i]
		if it.Ref() == "" {
			return nil, fmt.Errorf("manifest item %d (%s): %w", i, it.Name, ErrNoRef)
		}
		if it.Path != "" && !filepath.IsAbs(it.Path) && !loader.IsRemote(it.Path) {
			it.Path = filepath.Join(base, it.Path)
		}
	}
	return &m, nil
}

// LoadManifest reads a YAML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, filepath.Dir(path))
}

// ItemsFromScan turns scanned files into gallery items.
func ItemsFromScan(files scan.FileItems) []Item {
	items := make([]Item, len(files))
	for i, f := range files {
		items[i] = Item{Name: filepath.Base(f.Path), Path: f.Path}
	}
	return items
}
