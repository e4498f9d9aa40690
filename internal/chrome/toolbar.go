package chrome

import (
	"image/color"
	"time"

	"fyviewer/internal/anim"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	toolbarPadding float32 = 12
	lineHeight     float32 = 20
	segmentHeight  float32 = 28
	urlBoxHeight   float32 = 32
	rowSpacing     float32 = 6
)

var (
	textPrimary   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	textSecondary = color.NRGBA{R: 255, G: 255, B: 255, A: 180}
	urlBoxFill    = color.NRGBA{R: 255, G: 255, B: 255, A: 40}
)

// BottomToolBar shows the image metadata, the style selector and the copyable
// URL box.
type BottomToolBar struct {
	widget.BaseWidget
	View

	cfg        *config.Configuration
	styleIndex int

	background *canvas.Rectangle
	name       *canvas.Text
	dateIcon   *canvas.Image
	date       *canvas.Text
	size       *canvas.Text
	styles     *Segmented
	url        *urlBox
	copy       *IconButton

	revertDelay time.Duration
	dragToCopy  float32
	swap        float32
	copyGen     int
}

// NewBottomToolBar builds a toolbar for one viewer session.
func NewBottomToolBar(cfg *config.Configuration, settings config.Settings, runner anim.Runner) *BottomToolBar {
	b := &BottomToolBar{
		cfg:         cfg,
		styleIndex:  cfg.StyleIndex(),
		background:  canvas.NewRectangle(barBackground),
		name:        canvas.NewText(cfg.Name(), textPrimary),
		dateIcon:    canvas.NewImageFromResource(theme.HistoryIcon()),
		date:        canvas.NewText(cfg.Date(), textSecondary),
		size:        canvas.NewText(cfg.Size(), textSecondary),
		revertDelay: settings.CopyRevertDelay,
		dragToCopy:  settings.DragToCopyDistance,
	}
	b.name.TextStyle = fyne.TextStyle{Bold: true}
	b.dateIcon.FillMode = canvas.ImageFillContain
	b.date.TextSize = theme.CaptionTextSize()
	b.size.TextSize = theme.CaptionTextSize()
	b.size.Alignment = fyne.TextAlignTrailing

	if titles := cfg.StyleTitles(); len(titles) > 0 {
		b.styles = NewSegmented(titles, b.styleIndex)
		b.styles.OnChanged = func(i int) {
			b.styleIndex = i
			b.cfg.StyleChanged(i)
		}
	}
	b.url = newURLBox(cfg.CopyURL(), b)
	b.copy = NewIconButton(theme.ContentCopyIcon(), func(fyne.CanvasObject) { b.CopyURL() })

	b.ExtendBaseWidget(b)
	b.View.init(b, EdgeBottom, b.contentHeight, runner, settings.FadeDuration)
	b.addFader(func(a float32) {
		b.background.FillColor = withAlpha(barBackground, a)
		b.name.Color = withAlpha(textPrimary, a)
		b.date.Color = withAlpha(textSecondary, a)
		b.size.Color = withAlpha(textSecondary, a)
		b.dateIcon.Translucency = float64(1 - min(max(a, 0), 1))
		b.url.apply()
		b.Refresh()
	})
	b.addFader(b.copy.setAlpha)
	if b.styles != nil {
		b.addFader(b.styles.setAlpha)
	}
	return b
}

func (b *BottomToolBar) contentHeight() float32 {
	h := toolbarPadding + lineHeight + rowSpacing + lineHeight + rowSpacing + urlBoxHeight + toolbarPadding
	if b.styles != nil {
		h += segmentHeight + rowSpacing
	}
	return h
}

// StyleIndex returns the selected style.
func (b *BottomToolBar) StyleIndex() int {
	return b.styleIndex
}

// SetCopyURL replaces the text shown in the URL box.
func (b *BottomToolBar) SetCopyURL(text string) {
	b.url.setText(text)
}

// CopyURLText returns the text shown in the URL box.
func (b *BottomToolBar) CopyURLText() string {
	return b.url.text.Text
}

// ShowingCopyMessage reports whether the confirmation message is at least
// partly visible in place of the URL.
func (b *BottomToolBar) ShowingCopyMessage() bool {
	return b.swap > 0
}

// CopyURL forwards the copy request for the selected style and then swaps
// the URL for the confirmation message. The hook runs before any animation
// starts. Only the revert scheduled by the latest copy runs.
func (b *BottomToolBar) CopyURL() {
	if !b.cfg.HasCopy() {
		return
	}
	b.cfg.CopyURLFor(b.styleIndex)

	b.copyGen++
	gen := b.copyGen
	b.url.message.Text = b.cfg.CopyMessage(b.styleIndex)
	b.animateSwap(gen, 1)
	b.runner.After(b.revertDelay, func() {
		if gen != b.copyGen {
			return
		}
		b.animateSwap(gen, 0)
	})
}

func (b *BottomToolBar) animateSwap(gen int, to float32) {
	from := b.swap
	b.runner.Run(anim.Spec{Duration: b.fade, Curve: anim.EaseInOut}, func(p float32) {
		if gen != b.copyGen {
			return
		}
		b.swap = geometry.Lerp(from, to, p)
		b.url.apply()
	}, nil)
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (b *BottomToolBar) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{b.background, b.name, b.dateIcon, b.date, b.size}
	if b.styles != nil {
		objects = append(objects, b.styles)
	}
	objects = append(objects, b.url, b.copy)
	return &barRenderer{objects: objects, layout: b.layout}
}

func (b *BottomToolBar) layout(size fyne.Size) {
	b.background.Move(fyne.NewPos(0, 0))
	b.background.Resize(size)

	inner := size.Width - 2*toolbarPadding
	y := toolbarPadding
	b.name.Move(fyne.NewPos(toolbarPadding, y))
	b.name.Resize(fyne.NewSize(inner, lineHeight))
	y += lineHeight + rowSpacing

	icon := lineHeight - 4
	b.dateIcon.Move(fyne.NewPos(toolbarPadding, y+2))
	b.dateIcon.Resize(fyne.NewSize(icon, icon))
	b.date.Move(fyne.NewPos(toolbarPadding+icon+4, y))
	b.date.Resize(fyne.NewSize(inner/2, lineHeight))
	b.size.Move(fyne.NewPos(toolbarPadding+inner/2, y))
	b.size.Resize(fyne.NewSize(inner/2, lineHeight))
	y += lineHeight + rowSpacing

	if b.styles != nil {
		b.styles.Move(fyne.NewPos(toolbarPadding, y))
		b.styles.Resize(fyne.NewSize(inner, segmentHeight))
		y += segmentHeight + rowSpacing
	}

	b.url.Move(fyne.NewPos(toolbarPadding, y))
	b.url.Resize(fyne.NewSize(inner-buttonSize-buttonSpacing, urlBoxHeight))
	b.copy.Move(fyne.NewPos(size.Width-toolbarPadding-buttonSize, y))
	b.copy.Resize(fyne.NewSize(buttonSize, urlBoxHeight))
}

// urlBox shows the copy URL, or the confirmation message after a copy. A
// sideways drag past the drag-to-copy distance copies the URL.
type urlBox struct {
	widget.BaseWidget
	bar     *BottomToolBar
	box     *canvas.Rectangle
	text    *canvas.Text
	message *canvas.Text
	dragX   float32
	copied  bool
}

func newURLBox(text string, bar *BottomToolBar) *urlBox {
	u := &urlBox{
		bar:     bar,
		box:     canvas.NewRectangle(urlBoxFill),
		text:    canvas.NewText(text, textPrimary),
		message: canvas.NewText("", textPrimary),
	}
	u.box.CornerRadius = 4
	u.text.TextSize = theme.CaptionTextSize()
	u.message.TextSize = theme.CaptionTextSize()
	u.message.Alignment = fyne.TextAlignCenter
	u.ExtendBaseWidget(u)
	return u
}

func (u *urlBox) setText(text string) {
	u.text.Text = text
	u.text.Refresh()
}

func (u *urlBox) apply() {
	a := u.bar.alpha
	u.box.FillColor = withAlpha(urlBoxFill, a)
	u.text.Color = withAlpha(textPrimary, a*(1-u.bar.swap))
	u.message.Color = withAlpha(textPrimary, a*u.bar.swap)
	u.Refresh()
}

// Dragged slides the URL with the pointer and copies once it has moved far
// enough.
func (u *urlBox) Dragged(ev *fyne.DragEvent) {
	u.dragX += ev.Dragged.DX
	limit := u.bar.dragToCopy
	u.text.Move(fyne.NewPos(8+min(max(u.dragX, -limit), limit), u.text.Position().Y))
	if !u.copied && (u.dragX > limit || u.dragX < -limit) {
		u.copied = true
		u.bar.CopyURL()
	}
}

// DragEnd snaps the URL back.
func (u *urlBox) DragEnd() {
	u.dragX = 0
	u.copied = false
	u.text.Move(fyne.NewPos(8, u.text.Position().Y))
}

func (u *urlBox) CreateRenderer() fyne.WidgetRenderer {
	return &barRenderer{objects: []fyne.CanvasObject{u.box, u.text, u.message}, layout: u.layout}
}

func (u *urlBox) layout(size fyne.Size) {
	u.box.Move(fyne.NewPos(0, 0))
	u.box.Resize(size)
	u.text.Move(fyne.NewPos(8, 0))
	u.text.Resize(fyne.NewSize(size.Width-16, size.Height))
	u.message.Move(fyne.NewPos(0, 0))
	u.message.Resize(size)
}

var (
	_ fyne.Widget    = (*BottomToolBar)(nil)
	_ fyne.Draggable = (*urlBox)(nil)
)
