package chrome

import (
	"image/color"

	"fyviewer/internal/anim"
	"fyviewer/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	navBarHeight  float32 = 44
	buttonSize    float32 = 32
	buttonSpacing float32 = 8
)

var barBackground = color.NRGBA{A: 128}

// NavigationBar is the top bar: a close button on the left, and on the right
// whichever of action, share, download and delete the configuration enables.
type NavigationBar struct {
	widget.BaseWidget
	View

	// OnClose is called when the close button is tapped.
	OnClose func()

	cfg        *config.Configuration
	background *canvas.Rectangle
	close      *IconButton
	action     *IconButton
	share      *IconButton
	download   *IconButton
	delete     *IconButton
	right      []*IconButton
}

// NewNavigationBar builds a navigation bar for one viewer session.
func NewNavigationBar(cfg *config.Configuration, settings config.Settings, runner anim.Runner) *NavigationBar {
	n := &NavigationBar{
		cfg:        cfg,
		background: canvas.NewRectangle(barBackground),
	}
	n.close = NewIconButton(theme.NavigateBackIcon(), func(fyne.CanvasObject) {
		if n.OnClose != nil {
			n.OnClose()
		}
	})
	if cfg.HasAction() {
		n.action = NewIconButton(theme.MoreHorizontalIcon(), cfg.Action)
		n.right = append(n.right, n.action)
	}
	if cfg.HasShare() {
		n.share = NewIconButton(theme.MailForwardIcon(), cfg.Share)
		n.right = append(n.right, n.share)
	}
	if cfg.HasDownload() {
		n.download = NewIconButton(theme.DownloadIcon(), cfg.Download)
		n.right = append(n.right, n.download)
	}
	if cfg.HasDelete() {
		n.delete = NewIconButton(theme.DeleteIcon(), cfg.Delete)
		n.right = append(n.right, n.delete)
	}

	n.ExtendBaseWidget(n)
	n.View.init(n, EdgeTop, func() float32 { return navBarHeight }, runner, settings.FadeDuration)
	n.addFader(func(a float32) {
		n.background.FillColor = withAlpha(barBackground, a)
		canvas.Refresh(n.background)
	})
	for _, b := range n.buttons() {
		b := b
		n.addFader(b.setAlpha)
	}
	return n
}

func (n *NavigationBar) buttons() []*IconButton {
	return append([]*IconButton{n.close}, n.right...)
}

// SetActionEnabled enables or disables the controls that need a loaded image.
func (n *NavigationBar) SetActionEnabled(enabled bool) {
	for _, b := range []*IconButton{n.action, n.share} {
		if b == nil {
			continue
		}
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

// ActionEnabled reports whether the action control accepts taps. A bar without
// action and share controls reports true.
func (n *NavigationBar) ActionEnabled() bool {
	for _, b := range []*IconButton{n.action, n.share} {
		if b != nil {
			return !b.Disabled()
		}
	}
	return true
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (n *NavigationBar) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{n.background}
	for _, b := range n.buttons() {
		objects = append(objects, b)
	}
	return &barRenderer{objects: objects, layout: n.layout}
}

func (n *NavigationBar) layout(size fyne.Size) {
	n.background.Resize(size)
	n.background.Move(fyne.NewPos(0, 0))

	// Buttons sit in the lower navBarHeight points; anything above is safe area.
	y := size.Height - navBarHeight + (navBarHeight-buttonSize)/2
	n.close.Move(fyne.NewPos(buttonSpacing, y))
	n.close.Resize(fyne.NewSize(buttonSize, buttonSize))

	x := size.Width - buttonSpacing - buttonSize
	for _, b := range n.right {
		b.Move(fyne.NewPos(x, y))
		b.Resize(fyne.NewSize(buttonSize, buttonSize))
		x -= buttonSize + buttonSpacing
	}
}

// barRenderer lays out a fixed set of objects with a layout callback.
type barRenderer struct {
	objects []fyne.CanvasObject
	layout  func(fyne.Size)
}

func (r *barRenderer) Layout(size fyne.Size)        { r.layout(size) }
func (r *barRenderer) MinSize() fyne.Size           { return fyne.NewSize(0, 0) }
func (r *barRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *barRenderer) Destroy()                     {}
func (r *barRenderer) Refresh() {
	for _, o := range r.objects {
		o.Refresh()
	}
}

var _ fyne.Widget = (*NavigationBar)(nil)
