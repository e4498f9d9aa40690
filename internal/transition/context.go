package transition

import (
	"image"

	"fyviewer/internal/chrome"
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
)

// Context is supplied by the host for one transition run. It is only valid
// until CompleteTransition is called.
type Context interface {
	// Container is the shared layer the flight happens in. Frames reported by
	// image views are in its coordinate space.
	Container() chrome.Host
	// From is the screen the transition starts on.
	From() Screen
	// To is the screen the transition ends on.
	To() Screen
	// CompleteTransition reports the outcome. It must be called exactly once.
	CompleteTransition(didComplete bool)
	// CancelInteractiveTransition tells the host an interactive run will not
	// complete.
	CancelInteractiveTransition()
	// TransitionWasCancelled reports whether CancelInteractiveTransition was
	// called.
	TransitionWasCancelled() bool
}

// Screen is one side of a transition.
type Screen interface {
	// Root is the screen's top level object.
	Root() fyne.CanvasObject
	// ImageView is the image taking part in the flight, or nil.
	ImageView() ImageView
	// ChromeHost is where chrome lives while this screen owns it.
	ChromeHost() chrome.Host
}

// ImageView is an image element on a screen.
type ImageView interface {
	// Frame returns the frame in container coordinates.
	Frame() geometry.Rect
	// Image returns the bitmap shown, or nil while nothing is loaded.
	Image() image.Image
	// ContentMode returns how the bitmap is drawn inside the frame.
	ContentMode() geometry.ContentMode
	Hide()
	Show()
}

// Chrome is the pair of bars a viewer session owns. Either may be nil.
type Chrome struct {
	Nav     *chrome.NavigationBar
	ToolBar *chrome.BottomToolBar
}

// chromeBar is the part of a bar the animators drive.
type chromeBar interface {
	Attach(chrome.Host, chrome.Attachment)
	SetAlpha(float32)
	SetOffset(float32)
}

type placedBar struct {
	bar  chromeBar
	sign float32
}

// bars returns the non-nil bars with the direction they slide out in.
func (c Chrome) bars() []placedBar {
	var out []placedBar
	if c.Nav != nil {
		out = append(out, placedBar{bar: c.Nav, sign: -1})
	}
	if c.ToolBar != nil {
		out = append(out, placedBar{bar: c.ToolBar, sign: 1})
	}
	return out
}

func (c Chrome) attach(h chrome.Host, role chrome.Attachment) {
	for _, b := range c.bars() {
		b.bar.Attach(h, role)
	}
}

// apply sets every bar to alpha and shifts it out by (1-alpha)*distance.
func (c Chrome) apply(alpha, distance float32) {
	for _, b := range c.bars() {
		b.bar.SetAlpha(alpha)
		b.bar.SetOffset(b.sign * (distance - alpha*distance))
	}
}
