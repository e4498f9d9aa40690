package viewer

import (
	"image"

	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const zoomScrollStep float32 = 0.1 // Zoom step for scroll events

// Surface is a zoomable image view. At zoom 1 the image is fitted to the
// surface; drags at that zoom are reported through OnPan and OnPanEnd
// instead of panning.
type Surface struct {
	widget.BaseWidget

	source image.Image
	img    *canvas.Image

	zoom    float32
	maxZoom float32
	scroll  fyne.Position

	panning bool

	// OnTapped is called after a single tap.
	OnTapped func()
	// OnPan receives drags made at minimum zoom. It returns false to decline
	// the gesture, in which case the drag is ignored until it ends.
	OnPan func(ev *fyne.DragEvent) bool
	// OnPanEnd is called when a drag reported through OnPan ends.
	OnPanEnd func()
	// OnZoom is called whenever the zoom scale changes.
	OnZoom func(scale float32)

	declined bool
}

// NewSurface creates a surface showing img, zoomable up to maxZoom.
func NewSurface(img image.Image, maxZoom float32) *Surface {
	s := &Surface{
		source:  img,
		img:     canvas.NewImageFromImage(img),
		zoom:    1,
		maxZoom: max(maxZoom, 1),
	}
	s.img.FillMode = canvas.ImageFillContain
	s.img.ScaleMode = canvas.ImageScaleSmooth
	s.ExtendBaseWidget(s)
	return s
}

// Image returns the bitmap shown.
func (s *Surface) Image() image.Image {
	return s.source
}

// SetImage replaces the bitmap and resets the zoom.
func (s *Surface) SetImage(img image.Image) {
	s.source = img
	s.img.Image = img
	s.Reset()
}

// Reset returns to the fitted zoom.
func (s *Surface) Reset() {
	s.setZoom(1, fyne.Position{})
}

// ZoomScale returns the current zoom, where 1 is fitted.
func (s *Surface) ZoomScale() float32 {
	return s.zoom
}

// AtMinimumZoom reports whether the image is fitted.
func (s *Surface) AtMinimumZoom() bool {
	return s.zoom <= 1
}

// ContentFrame is the frame of the zoomed image view in surface coordinates.
// The image is drawn aspect fit inside it.
func (s *Surface) ContentFrame() geometry.Rect {
	size := s.Size()
	return geometry.NewRect(-s.scroll.X, -s.scroll.Y, size.Width*s.zoom, size.Height*s.zoom)
}

// ImageRect is where the bitmap is drawn in surface coordinates.
func (s *Surface) ImageRect() geometry.Rect {
	frame := s.ContentFrame()
	if s.source == nil {
		return frame
	}
	b := s.source.Bounds()
	return geometry.Fit(fyne.NewSize(float32(b.Dx()), float32(b.Dy())), frame)
}

// insets returns the content insets that keep the image centered while it is
// smaller than the surface.
func (s *Surface) insets() geometry.Insets {
	frame := s.ContentFrame()
	fitted := frame.Size
	if s.source != nil {
		fitted = s.ImageRect().Size
	}
	return geometry.CenteringInsets(frame.Size, fitted, s.Size())
}

func (s *Surface) clampScroll() {
	size := s.Size()
	content := s.ContentFrame().Size
	in := s.insets()
	s.scroll.X = min(max(s.scroll.X, -in.Left), content.Width-size.Width+in.Right)
	s.scroll.Y = min(max(s.scroll.Y, -in.Top), content.Height-size.Height+in.Bottom)
}

func (s *Surface) setZoom(z float32, scroll fyne.Position) {
	z = min(max(z, 1), s.maxZoom)
	changed := z != s.zoom
	s.zoom = z
	s.scroll = scroll
	s.clampScroll()
	s.layout()
	if changed && s.OnZoom != nil {
		s.OnZoom(z)
	}
}

// ZoomTo zooms so that rect, in unzoomed surface coordinates, fills the
// surface.
func (s *Surface) ZoomTo(rect geometry.Rect) {
	if rect.IsEmpty() {
		return
	}
	z := s.Size().Width / rect.Size.Width
	s.setZoom(z, fyne.NewPos(rect.Origin.X*z, rect.Origin.Y*z))
}

// ToggleZoom returns to the fitted zoom when zoomed in, and otherwise zooms to
// the maximum scale around at.
func (s *Surface) ToggleZoom(at fyne.Position) {
	if !s.AtMinimumZoom() {
		s.Reset()
		return
	}
	s.ZoomTo(geometry.ZoomRect(s.Size(), s.maxZoom, at))
}

func (s *Surface) layout() {
	s.ContentFrame().Apply(s.img)
	canvas.Refresh(s.img)
}

// Resize keeps the zoom and scroll position valid for the new size.
func (s *Surface) Resize(size fyne.Size) {
	s.BaseWidget.Resize(size)
	s.clampScroll()
	s.layout()
}

// HideImage hides the bitmap while the surrounding surface stays visible.
func (s *Surface) HideImage() {
	s.img.Hide()
}

// ShowImage reveals the bitmap.
func (s *Surface) ShowImage() {
	s.img.Show()
}

// ImageVisible reports whether the bitmap is shown.
func (s *Surface) ImageVisible() bool {
	return s.img.Visible()
}

// CreateRenderer is a Fyne lifecycle method.
func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{s: s}
}

// Tapped forwards single taps.
func (s *Surface) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// DoubleTapped toggles between fitted and maximum zoom around the tap.
func (s *Surface) DoubleTapped(ev *fyne.PointEvent) {
	s.ToggleZoom(ev.Position)
}

// Scrolled handles mouse wheel events for zooming towards the centre.
func (s *Surface) Scrolled(ev *fyne.ScrollEvent) {
	size := s.Size()
	cx, cy := size.Width/2, size.Height/2
	// Point in unzoomed content space under the centre.
	px := (cx + s.scroll.X) / s.zoom
	py := (cy + s.scroll.Y) / s.zoom

	z := s.zoom
	if ev.Scrolled.DY < 0 {
		z /= 1.0 + zoomScrollStep
	} else if ev.Scrolled.DY > 0 {
		z *= 1.0 + zoomScrollStep
	}
	z = min(max(z, 1), s.maxZoom)
	s.setZoom(z, fyne.NewPos(px*z-cx, py*z-cy))
}

// Dragged pans the zoomed image, or reports the drag through OnPan at
// minimum zoom.
func (s *Surface) Dragged(ev *fyne.DragEvent) {
	if s.declined {
		return
	}
	if s.AtMinimumZoom() && !s.panning {
		if s.OnPan != nil && !s.OnPan(ev) {
			s.declined = true
		}
		return
	}
	s.panning = true
	s.scroll = s.scroll.Subtract(ev.Dragged)
	s.clampScroll()
	s.layout()
}

// DragEnd finishes the current drag.
func (s *Surface) DragEnd() {
	wasPanning, wasDeclined := s.panning, s.declined
	s.panning, s.declined = false, false
	if !wasPanning && !wasDeclined && s.OnPanEnd != nil {
		s.OnPanEnd()
	}
}

type surfaceRenderer struct{ s *Surface }

func (r *surfaceRenderer) Layout(size fyne.Size)        { r.s.layout() }
func (r *surfaceRenderer) MinSize() fyne.Size           { return fyne.NewSize(100, 100) }
func (r *surfaceRenderer) Refresh()                     { canvas.Refresh(r.s.img) }
func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.s.img} }
func (r *surfaceRenderer) Destroy()                     {}

var (
	_ fyne.Widget         = (*Surface)(nil)
	_ fyne.Scrollable     = (*Surface)(nil)
	_ fyne.Draggable      = (*Surface)(nil)
	_ fyne.DoubleTappable = (*Surface)(nil)
)
