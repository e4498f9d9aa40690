package transition

import (
	"image"
	"image/color"

	"fyviewer/internal/chrome"
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// Surrogate is the stand-in image that flies during a transition so the real
// image views can stay hidden. It shares the bitmap of the image it copies.
type Surrogate struct {
	img       *canvas.Image
	source    image.Image
	frame     geometry.Rect
	transform geometry.Transform
	mode      geometry.ContentMode
	host      chrome.Host
	removed   bool
}

// NewSurrogate creates a surrogate showing img at frame.
func NewSurrogate(img image.Image, frame geometry.Rect, mode geometry.ContentMode) *Surrogate {
	s := &Surrogate{
		img:       canvas.NewImageFromImage(img),
		source:    img,
		frame:     frame,
		transform: geometry.Identity,
	}
	s.img.ScaleMode = canvas.ImageScaleSmooth
	s.SetContentMode(mode)
	return s
}

// AddTo places the surrogate on top of h.
func (s *Surrogate) AddTo(h chrome.Host) {
	s.host = h
	h.Add(s.img)
}

// Remove takes the surrogate out of its host. Later calls do nothing.
func (s *Surrogate) Remove() {
	if s.removed {
		return
	}
	s.removed = true
	if s.host != nil {
		s.host.Remove(s.img)
	}
	s.host = nil
}

// Removed reports whether Remove has run.
func (s *Surrogate) Removed() bool {
	return s.removed
}

// Object returns the canvas object that is drawn.
func (s *Surrogate) Object() fyne.CanvasObject {
	return s.img
}

// Image returns the bitmap the surrogate copies.
func (s *Surrogate) Image() image.Image {
	return s.source
}

// Frame returns the untransformed frame.
func (s *Surrogate) Frame() geometry.Rect {
	return s.frame
}

// SetFrame sets the untransformed frame.
func (s *Surrogate) SetFrame(r geometry.Rect) {
	s.frame = r
	s.layout()
}

// Transform returns the transform applied about the frame centre.
func (s *Surrogate) Transform() geometry.Transform {
	return s.transform
}

// SetTransform sets the transform applied about the frame centre.
func (s *Surrogate) SetTransform(t geometry.Transform) {
	s.transform = t
	s.layout()
}

// DisplayedFrame is the frame after the transform.
func (s *Surrogate) DisplayedFrame() geometry.Rect {
	return s.transform.ApplyRect(s.frame)
}

// ContentMode returns how the bitmap is drawn inside the frame.
func (s *Surrogate) ContentMode() geometry.ContentMode {
	return s.mode
}

// SetContentMode changes how the bitmap is drawn. Mode changes are not
// interpolated.
func (s *Surrogate) SetContentMode(m geometry.ContentMode) {
	s.mode = m
	s.img.FillMode = m.FillMode()
	s.layout()
}

// layout places the image and, for aspect fill, crops the bitmap to the
// displayed frame.
func (s *Surrogate) layout() {
	r := s.DisplayedFrame()
	r.Apply(s.img)
	shown := s.source
	if s.mode == geometry.ContentAspectFill {
		shown = geometry.CropToFill(s.source, r.Size)
	}
	s.img.Image = shown
	canvas.Refresh(s.img)
}

// Backdrop is the black layer that dims whatever lies behind the viewer.
type Backdrop struct {
	rect    *canvas.Rectangle
	alpha   float32
	host    chrome.Host
	removed bool
}

// NewBackdrop creates a backdrop with the given alpha.
func NewBackdrop(alpha float32) *Backdrop {
	b := &Backdrop{rect: canvas.NewRectangle(color.Black)}
	b.SetAlpha(alpha)
	return b
}

// AddTo covers h with the backdrop.
func (b *Backdrop) AddTo(h chrome.Host) {
	b.host = h
	b.rect.Move(fyne.NewPos(0, 0))
	b.rect.Resize(h.Size())
	h.Add(b.rect)
}

// SetAlpha sets the opacity.
func (b *Backdrop) SetAlpha(a float32) {
	b.alpha = a
	b.rect.FillColor = color.NRGBA{A: uint8(255 * min(max(a, 0), 1))}
	canvas.Refresh(b.rect)
}

// Alpha returns the opacity.
func (b *Backdrop) Alpha() float32 {
	return b.alpha
}

// Object returns the canvas object that is drawn.
func (b *Backdrop) Object() fyne.CanvasObject {
	return b.rect
}

// Remove takes the backdrop out of its host. Later calls do nothing.
func (b *Backdrop) Remove() {
	if b.removed {
		return
	}
	b.removed = true
	if b.host != nil {
		b.host.Remove(b.rect)
	}
	b.host = nil
}

// Removed reports whether Remove has run.
func (b *Backdrop) Removed() bool {
	return b.removed
}
