// Package geometry holds the rectangle math used to fit, zoom and fly an image
// between two frames.
package geometry

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// Rect is an axis aligned rectangle in canvas coordinates.
type Rect struct {
	Origin fyne.Position
	Size   fyne.Size
}

// NewRect builds a Rect from its origin and size components.
func NewRect(x, y, w, h float32) Rect {
	return Rect{Origin: fyne.NewPos(x, y), Size: fyne.NewSize(w, h)}
}

// RectOf returns the frame currently occupied by obj inside its parent.
func RectOf(obj fyne.CanvasObject) Rect {
	return Rect{Origin: obj.Position(), Size: obj.Size()}
}

// IsEmpty reports whether the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Center returns the mid point of the rect.
func (r Rect) Center() fyne.Position {
	return fyne.NewPos(r.Origin.X+r.Size.Width/2, r.Origin.Y+r.Size.Height/2)
}

// Offset returns the rect moved by dx, dy.
func (r Rect) Offset(dx, dy float32) Rect {
	return Rect{Origin: r.Origin.AddXY(dx, dy), Size: r.Size}
}

// Apply moves and resizes obj to occupy the rect.
func (r Rect) Apply(obj fyne.CanvasObject) {
	obj.Move(r.Origin)
	obj.Resize(r.Size)
}

// ContentMode describes how an image is drawn inside its frame.
type ContentMode int

const (
	// ContentFill stretches the image to the frame.
	ContentFill ContentMode = iota
	// ContentAspectFit scales the image to fit inside the frame.
	ContentAspectFit
	// ContentAspectFill scales the image to cover the frame.
	ContentAspectFill
	// ContentCenter draws the image at its natural size in the middle of the frame.
	ContentCenter
)

// String returns the mode name.
func (m ContentMode) String() string {
	switch m {
	case ContentFill:
		return "fill"
	case ContentAspectFit:
		return "aspect-fit"
	case ContentAspectFill:
		return "aspect-fill"
	case ContentCenter:
		return "center"
	default:
		return "unknown"
	}
}

// FillMode maps the mode onto the canvas image fill mode. Canvas images have
// no cover mode, so ContentAspectFill is drawn contained from a bitmap that
// has been cropped to the frame with CropToFill.
func (m ContentMode) FillMode() canvas.ImageFill {
	switch m {
	case ContentAspectFit, ContentAspectFill:
		return canvas.ImageFillContain
	case ContentCenter:
		return canvas.ImageFillOriginal
	default:
		return canvas.ImageFillStretch
	}
}

// Fit returns the largest rectangle with the aspect ratio of size that fits
// inside container, centered. Degenerate input yields the zero Rect.
func Fit(size fyne.Size, container Rect) Rect {
	return scaled(size, container, false)
}

// Fill returns the smallest rectangle with the aspect ratio of size that
// covers container, centered.
func Fill(size fyne.Size, container Rect) Rect {
	return scaled(size, container, true)
}

func scaled(size fyne.Size, container Rect, cover bool) Rect {
	if size.Width <= 0 || size.Height <= 0 || container.IsEmpty() {
		return Rect{}
	}
	scaleW := container.Size.Width / size.Width
	scaleH := container.Size.Height / size.Height
	scale := scaleW
	if (cover && scaleH > scaleW) || (!cover && scaleH < scaleW) {
		scale = scaleH
	}
	w := size.Width * scale
	h := size.Height * scale
	return NewRect(
		container.Origin.X+(container.Size.Width-w)/2,
		container.Origin.Y+(container.Size.Height-h)/2,
		w, h,
	)
}

// DisplayRect returns where an image of the given natural size is drawn when
// it occupies frame with mode.
func DisplayRect(mode ContentMode, size fyne.Size, frame Rect) Rect {
	switch mode {
	case ContentAspectFit:
		return Fit(size, frame)
	case ContentAspectFill:
		return Fill(size, frame)
	case ContentCenter:
		c := frame.Center()
		return NewRect(c.X-size.Width/2, c.Y-size.Height/2, size.Width, size.Height)
	default:
		return frame
	}
}

// ZoomRect returns the rectangle that should fill the viewport after zooming
// to scale around center. frame is the unzoomed size of the zoomed content.
func ZoomRect(frame fyne.Size, scale float32, center fyne.Position) Rect {
	if scale <= 0 {
		return Rect{Size: frame}
	}
	w := frame.Width / scale
	h := frame.Height / scale
	return NewRect(center.X-w/2, center.Y-h/2, w, h)
}

// Insets are edge distances, positive inwards.
type Insets struct {
	Top, Left, Bottom, Right float32
}

// CenteringInsets returns the content insets that keep a fitted image centered
// in bounds while the scrolled content has contentSize.
func CenteringInsets(contentSize, fitted, bounds fyne.Size) Insets {
	v := -(contentSize.Height - max(fitted.Height, bounds.Height)) / 2
	h := -(contentSize.Width - max(fitted.Width, bounds.Width)) / 2
	return Insets{Top: v, Left: h, Bottom: v, Right: h}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpRect interpolates origin and size of two rects.
func LerpRect(a, b Rect, t float32) Rect {
	return NewRect(
		Lerp(a.Origin.X, b.Origin.X, t),
		Lerp(a.Origin.Y, b.Origin.Y, t),
		Lerp(a.Size.Width, b.Size.Width, t),
		Lerp(a.Size.Height, b.Size.Height, t),
	)
}
