package chrome

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

const disabledAlpha = 0.35

// IconButton is a borderless icon that reports taps. It fades with the bar it
// belongs to.
type IconButton struct {
	widget.BaseWidget
	image    *canvas.Image
	onTapped func(anchor fyne.CanvasObject)
	disabled bool
	alpha    float32
}

// NewIconButton creates an icon button. onTapped receives the button itself so
// callers can anchor popups to it.
func NewIconButton(res fyne.Resource, onTapped func(anchor fyne.CanvasObject)) *IconButton {
	b := &IconButton{
		image:    canvas.NewImageFromResource(res),
		onTapped: onTapped,
		alpha:    1,
	}
	b.image.FillMode = canvas.ImageFillContain
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (b *IconButton) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.image)
}

// MinSize keeps icons at a comfortable touch size.
func (b *IconButton) MinSize() fyne.Size {
	return fyne.NewSize(32, 32)
}

// Tapped forwards the tap unless the button is disabled.
func (b *IconButton) Tapped(_ *fyne.PointEvent) {
	if b.disabled || b.onTapped == nil {
		return
	}
	b.onTapped(b)
}

// Enable lets the button react to taps.
func (b *IconButton) Enable() {
	b.disabled = false
	b.apply()
}

// Disable dims the button and ignores taps.
func (b *IconButton) Disable() {
	b.disabled = true
	b.apply()
}

// Disabled reports whether taps are ignored.
func (b *IconButton) Disabled() bool {
	return b.disabled
}

func (b *IconButton) setAlpha(a float32) {
	b.alpha = a
	b.apply()
}

func (b *IconButton) apply() {
	a := b.alpha
	if b.disabled {
		a *= disabledAlpha
	}
	b.image.Translucency = float64(1 - min(max(a, 0), 1))
	canvas.Refresh(b.image)
}

var _ fyne.Tappable = (*IconButton)(nil)
