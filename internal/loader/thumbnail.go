package loader

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/nfnt/resize"
)

const (
	// ThumbnailWidth is the width of the thumbnails in the gallery.
	ThumbnailWidth = 160
	// ThumbnailHeight is the height of the thumbnails in the gallery.
	ThumbnailHeight = 160
)

// Thumbnail scales img down to fit within w by h, keeping the aspect ratio.
// Images already small enough are returned unchanged.
func Thumbnail(img image.Image, w, h uint) image.Image {
	return resize.Thumbnail(w, h, img, resize.Lanczos3)
}

// imageToBytes converts img to PNG bytes for Fyne resources.
func imageToBytes(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumb is a generated thumbnail: the scaled image and its PNG resource.
type Thumb struct {
	Image    image.Image
	Resource fyne.Resource
}

// Thumbnails generates and remembers thumbnails for image files.
type Thumbnails struct {
	loader *Loader
	cache  map[string]Thumb
	mu     sync.RWMutex
}

// NewThumbnails creates a thumbnail manager that fetches through l.
func NewThumbnails(l *Loader) *Thumbnails {
	return &Thumbnails{loader: l, cache: make(map[string]Thumb)}
}

// Get returns the thumbnail for ref when it is known. Otherwise it returns a
// placeholder icon and calls onComplete on the UI goroutine once the
// thumbnail has been generated.
func (t *Thumbnails) Get(ref string, onComplete func(Thumb)) fyne.Resource {
	t.mu.RLock()
	if th, ok := t.cache[ref]; ok {
		t.mu.RUnlock()
		return th.Resource
	}
	t.mu.RUnlock()

	go func() {
		img, err := t.loader.Fetch(ref)
		if err != nil {
			t.loader.logMessage("Thumbnail error for %s: %v", filepath.Base(ref), err)
			return
		}
		small := Thumbnail(img, ThumbnailWidth, ThumbnailHeight)
		data, err := imageToBytes(small)
		if err != nil {
			t.loader.logMessage("Thumbnail error for %s: %v", filepath.Base(ref), err)
			return
		}
		th := Thumb{Image: small, Resource: fyne.NewStaticResource(filepath.Base(ref)+".png", data)}

		t.mu.Lock()
		t.cache[ref] = th
		t.mu.Unlock()

		t.loader.dispatch(func() {
			onComplete(th)
		})
	}()

	return theme.FileImageIcon()
}

// Lookup returns the generated thumbnail for ref, if any.
func (t *Thumbnails) Lookup(ref string) (Thumb, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	th, ok := t.cache[ref]
	return th, ok
}
