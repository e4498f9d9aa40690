// Package viewer implements the full-screen image viewer screen: a zoomable
// surface under the navigation bar and toolbar, gesture driven dismissal and
// the loading and error states.
package viewer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"time"

	"fyviewer/internal/anim"
	"fyviewer/internal/chrome"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"
	"fyviewer/internal/stage"
	"fyviewer/internal/transition"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ErrNoImage is reported when a session has nothing to show.
var ErrNoImage = errors.New("no image")

// LoadState is the state of the image fetch.
type LoadState int

const (
	// Loaded means the final image is shown.
	Loaded LoadState = iota
	// Loading means a fetch is in flight and the placeholder is shown.
	Loading
	// Failed means the fetch failed and the error is shown.
	Failed
)

// String returns a readable load state.
func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Loader fetches an image asynchronously. done runs on the UI goroutine with
// either the final image or an error.
type Loader interface {
	Load(ref string, placeholder image.Image, done func(image.Image, error))
}

// Presenter is the host that shows and hides the viewer.
type Presenter interface {
	Dismiss(p stage.Presentable) error
	BeginInteractiveDismiss(p stage.Presentable) (transition.Interactive, error)
}

// Controller is one viewer session.
type Controller struct {
	Logger transition.LoggerFunc

	cfg       *config.Configuration
	settings  config.Settings
	presenter Presenter

	root       *fyne.Container
	host       *rootHost
	background *canvas.Rectangle
	surface    *Surface
	nav        *chrome.NavigationBar
	toolbar    *chrome.BottomToolBar
	activity   *widget.Activity
	errorBox   *fyne.Container
	handler    *transition.Handler

	state    LoadState
	released bool

	dismissal   transition.Interactive
	panOrigin   fyne.Position
	translation fyne.Position
	tracker     velocityTracker
	now         func() time.Time
}

var _ stage.Presentable = (*Controller)(nil)

// New builds a viewer for cfg. presenter and loader may be nil. The image
// fetch, if any, starts immediately.
func New(cfg *config.Configuration, settings config.Settings, runner anim.Runner, presenter Presenter, loader Loader) *Controller {
	c := &Controller{
		cfg:        cfg,
		settings:   settings,
		presenter:  presenter,
		background: canvas.NewRectangle(color.Black),
		surface:    NewSurface(placeholder(cfg), settings.MaxZoom),
		nav:        chrome.NewNavigationBar(cfg, settings, runner),
		toolbar:    chrome.NewBottomToolBar(cfg, settings, runner),
		activity:   widget.NewActivity(),
		now:        time.Now,
	}
	c.handler = transition.NewHandler(transition.Chrome{Nav: c.nav, ToolBar: c.toolbar}, settings, runner, cfg.Finish)

	msg := widget.NewLabel(cfg.ErrorMessage())
	msg.Alignment = fyne.TextAlignCenter
	panel := canvas.NewRectangle(color.NRGBA{R: 40, G: 40, B: 40, A: 230})
	panel.CornerRadius = 5
	c.errorBox = container.NewStack(panel, container.NewPadded(container.NewVBox(
		widget.NewIcon(theme.ErrorIcon()),
		msg,
	)))
	c.errorBox.Hide()
	c.activity.Hide()

	c.root = container.New(&screenLayout{c: c}, c.background, c.surface, c.activity, c.errorBox)
	c.host = &rootHost{Container: c.root}

	c.surface.OnTapped = c.ToggleChrome
	c.surface.OnPan = c.panned
	c.surface.OnPanEnd = c.panEnded
	c.nav.OnClose = c.Close

	// The viewer owns its chrome from the start; transitions borrow it.
	c.nav.Attach(c.host, chrome.AttachedToDestination)
	c.toolbar.Attach(c.host, chrome.AttachedToDestination)

	c.startLoading(loader)
	return c
}

// placeholder returns the image to show before any fetch completes.
func placeholder(cfg *config.Configuration) image.Image {
	if img, ok := cfg.ImageView().(*canvas.Image); ok && img.Image != nil {
		return img.Image
	}
	return cfg.Image()
}

func (c *Controller) startLoading(loader Loader) {
	ref, block := c.cfg.ImageRef(), c.cfg.ImageBlock()
	switch {
	case ref != "" && loader != nil:
		c.beginLoading()
		loader.Load(ref, c.surface.Image(), c.loadFinished)
	case block != nil:
		c.beginLoading()
		block(func(img image.Image) {
			if img == nil {
				c.loadFinished(nil, ErrNoImage)
				return
			}
			c.loadFinished(img, nil)
		})
	case c.surface.Image() != nil:
		c.state = Loaded
		c.nav.SetActionEnabled(true)
	default:
		c.loadFinished(nil, ErrNoImage)
	}
}

func (c *Controller) beginLoading() {
	c.state = Loading
	c.nav.SetActionEnabled(false)
	c.activity.Show()
	c.activity.Start()
}

func (c *Controller) loadFinished(img image.Image, err error) {
	c.activity.Stop()
	c.activity.Hide()
	if err != nil {
		c.state = Failed
		c.nav.SetActionEnabled(false)
		c.errorBox.Show()
		c.logMessage("Failed to load %q: %v", c.cfg.ImageRef(), err)
		return
	}
	c.state = Loaded
	c.surface.SetImage(img)
	c.errorBox.Hide()
	c.nav.SetActionEnabled(true)
}

// LoadState returns the state of the image fetch.
func (c *Controller) LoadState() LoadState {
	return c.state
}

// ErrorVisible reports whether the error affordance is shown.
func (c *Controller) ErrorVisible() bool {
	return c.errorBox.Visible()
}

// Loading reports whether the activity indicator is shown.
func (c *Controller) Loading() bool {
	return c.activity.Visible()
}

// Surface returns the zoomable image surface.
func (c *Controller) Surface() *Surface {
	return c.surface
}

// NavigationBar returns the top bar.
func (c *Controller) NavigationBar() *chrome.NavigationBar {
	return c.nav
}

// ToolBar returns the bottom bar.
func (c *Controller) ToolBar() *chrome.BottomToolBar {
	return c.toolbar
}

// SetCopyURL replaces the URL shown in the toolbar.
func (c *Controller) SetCopyURL(text string) {
	c.toolbar.SetCopyURL(text)
}

// SetSafeArea installs the source of safe area insets for the chrome.
func (c *Controller) SetSafeArea(fn func() geometry.Insets) {
	c.host.safeArea = fn
	c.nav.Relayout()
	c.toolbar.Relayout()
}

// Root implements transition.Screen.
func (c *Controller) Root() fyne.CanvasObject {
	return c.root
}

// ImageView implements transition.Screen.
func (c *Controller) ImageView() transition.ImageView {
	return surfaceView{c: c}
}

// ChromeHost implements transition.Screen.
func (c *Controller) ChromeHost() chrome.Host {
	return c.host
}

// Handler implements stage.Presentable.
func (c *Controller) Handler() *transition.Handler {
	return c.handler
}

// Release implements stage.Presentable. It drops the chrome once the session
// has been dismissed.
func (c *Controller) Release() {
	c.released = true
	c.nav.Detach()
	c.toolbar.Detach()
}

// Released reports whether the session is over.
func (c *Controller) Released() bool {
	return c.released
}

// ToggleChrome fades both bars in or out.
func (c *Controller) ToggleChrome() {
	c.nav.ToggleVisible()
	c.toolbar.ToggleVisible()
}

// Close runs the close hook and dismisses the viewer.
func (c *Controller) Close() {
	c.cfg.Close()
	if c.presenter == nil || c.dismissal != nil {
		return
	}
	if err := c.presenter.Dismiss(c); err != nil {
		c.logMessage("Failed to dismiss viewer: %v", err)
	}
}

// TypedKey handles the viewer keyboard shortcuts.
func (c *Controller) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		c.Close()
	case fyne.KeySpace:
		c.ToggleChrome()
	}
}

func (c *Controller) panned(ev *fyne.DragEvent) bool {
	if c.dismissal == nil {
		if c.presenter == nil {
			return false
		}
		d, err := c.presenter.BeginInteractiveDismiss(c)
		if errors.Is(err, stage.ErrBusy) {
			// Presentation still running; the drag is ignored until it ends.
			return false
		}
		if err != nil {
			c.logMessage("Not dismissing: %v", err)
			return false
		}
		c.dismissal = d
		c.panOrigin = ev.Position.Subtract(ev.Dragged)
		c.tracker.reset()
		c.tracker.add(c.now(), fyne.Position{})
	}
	c.translation = ev.Position.Subtract(c.panOrigin)
	c.tracker.add(c.now(), c.translation)

	if h := c.surface.Size().Height; h > 0 {
		c.dismissal.Update(float32(math.Abs(float64(c.translation.Y))) / h)
	}
	c.dismissal.UpdateTransform(geometry.Translate(c.translation.X, c.translation.Y))
	return true
}

func (c *Controller) panEnded() {
	d := c.dismissal
	if d == nil {
		return
	}
	c.dismissal = nil
	v := c.tracker.velocity()
	var err error
	if transition.Decide(c.translation.Y, v.DY, c.surface.Size().Height, c.settings.DismissThreshold) {
		err = d.Finish()
	} else {
		err = d.Cancel()
	}
	if err != nil {
		c.logMessage("Failed to settle dismissal: %v", err)
	}
}

func (c *Controller) logMessage(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// surfaceView exposes the surface image to transitions.
type surfaceView struct {
	c *Controller
}

func (v surfaceView) Frame() geometry.Rect {
	f := v.c.surface.ContentFrame()
	origin := v.c.root.Position().Add(v.c.surface.Position())
	return f.Offset(origin.X, origin.Y)
}

func (v surfaceView) Image() image.Image                { return v.c.surface.Image() }
func (v surfaceView) ContentMode() geometry.ContentMode { return geometry.ContentAspectFit }
func (v surfaceView) Hide()                             { v.c.surface.HideImage() }
func (v surfaceView) Show()                             { v.c.surface.ShowImage() }

// rootHost is the chrome host of the viewer screen.
type rootHost struct {
	*fyne.Container
	safeArea func() geometry.Insets
}

func (h *rootHost) SafeArea() geometry.Insets {
	if h.safeArea == nil {
		return geometry.Insets{}
	}
	return h.safeArea()
}

// screenLayout fills the screen with the surface and centres the status
// views. Chrome lays itself out.
type screenLayout struct {
	c *Controller
}

func (l *screenLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	c := l.c
	for _, o := range []fyne.CanvasObject{c.background, c.surface} {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	for _, o := range []fyne.CanvasObject{c.activity, c.errorBox} {
		ms := o.MinSize()
		o.Resize(ms)
		o.Move(fyne.NewPos((size.Width-ms.Width)/2, (size.Height-ms.Height)/2))
	}
	if c.host == nil {
		return
	}
	if c.nav.Host() == chrome.Host(c.host) {
		c.nav.Relayout()
	}
	if c.toolbar.Host() == chrome.Host(c.host) {
		c.toolbar.Relayout()
	}
}

func (l *screenLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
