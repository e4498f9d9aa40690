package gallery

import (
	"image"

	"fyviewer/internal/chrome"
	"fyviewer/internal/geometry"
	"fyviewer/internal/loader"
	"fyviewer/internal/transition"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	tileSize    = 120
	labelHeight = 36
)

// tile is one thumbnail in the grid. It is also the image view a viewer
// flies from and back to.
type tile struct {
	widget.BaseWidget

	g     *Gallery
	item  Item
	img   *canvas.Image
	label *widget.Label
	thumb image.Image
}

func newTile(g *Gallery, item Item, placeholder fyne.Resource) *tile {
	t := &tile{
		g:     g,
		item:  item,
		img:   canvas.NewImageFromResource(placeholder),
		label: widget.NewLabel(item.DisplayName()),
	}
	t.img.FillMode = geometry.ContentAspectFill.FillMode()
	t.img.ScaleMode = canvas.ImageScaleFastest
	t.label.Truncation = fyne.TextTruncateEllipsis
	t.label.Alignment = fyne.TextAlignCenter
	t.ExtendBaseWidget(t)
	return t
}

func (t *tile) setThumb(th loader.Thumb) {
	t.thumb = th.Image
	t.img.Resource = nil
	t.cropThumb()
}

// cropThumb shows the part of the thumbnail that covers the image area.
func (t *tile) cropThumb() {
	if t.thumb == nil {
		return
	}
	t.img.Image = geometry.CropToFill(t.thumb, t.img.Size())
	canvas.Refresh(t.img)
}

// Tapped opens the item in the viewer.
func (t *tile) Tapped(_ *fyne.PointEvent) {
	if err := t.g.OpenItem(t); err != nil {
		t.g.logMessage("Cannot open %s: %v", t.item.DisplayName(), err)
	}
}

func (t *tile) CreateRenderer() fyne.WidgetRenderer {
	return &tileRenderer{t: t, content: container.NewBorder(nil, t.label, nil, nil, t.img)}
}

// tileRenderer crops the thumbnail again whenever the image area changes.
type tileRenderer struct {
	t       *tile
	content *fyne.Container
}

func (r *tileRenderer) Layout(size fyne.Size) {
	r.content.Resize(size)
	r.t.cropThumb()
}

func (r *tileRenderer) MinSize() fyne.Size           { return r.content.MinSize() }
func (r *tileRenderer) Refresh()                     { r.content.Refresh() }
func (r *tileRenderer) Objects() []fyne.CanvasObject { return []fyne.CanvasObject{r.content} }
func (r *tileRenderer) Destroy()                     {}

func (t *tile) MinSize() fyne.Size {
	return fyne.NewSize(tileSize, tileSize+labelHeight)
}

func (t *tile) screen() transition.Screen {
	return sourceScreen{t: t}
}

// tileView is the thumbnail image of a tile. Hiding it leaves the label.
type tileView struct{ t *tile }

func (v tileView) Frame() geometry.Rect              { return v.t.g.stage.FrameOf(v.t.img) }
func (v tileView) Image() image.Image                { return v.t.thumb }
func (v tileView) ContentMode() geometry.ContentMode { return geometry.ContentAspectFill }
func (v tileView) Hide()                             { v.t.img.Hide() }
func (v tileView) Show()                             { v.t.img.Show() }

// sourceScreen is the gallery as seen by a transition that starts or ends at
// a tile.
type sourceScreen struct{ t *tile }

func (s sourceScreen) Root() fyne.CanvasObject         { return s.t.g.base }
func (s sourceScreen) ImageView() transition.ImageView { return tileView{t: s.t} }
func (s sourceScreen) ChromeHost() chrome.Host         { return s.t.g.stage.Layer() }
