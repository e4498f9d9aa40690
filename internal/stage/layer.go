package stage

import (
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Layer is the overlay of a Stage. Presented screens fill it. Objects added
// by transitions keep the frame they are given.
type Layer struct {
	*fyne.Container
	canvas fyne.Canvas
	full   map[fyne.CanvasObject]bool
}

func newLayer(c fyne.Canvas) *Layer {
	l := &Layer{canvas: c, full: map[fyne.CanvasObject]bool{}}
	l.Container = container.New(&layerLayout{layer: l})
	return l
}

func (l *Layer) addFull(obj fyne.CanvasObject) {
	l.full[obj] = true
	obj.Move(fyne.NewPos(0, 0))
	obj.Resize(l.Size())
	l.Add(obj)
}

// Remove takes obj out of the layer.
func (l *Layer) Remove(obj fyne.CanvasObject) {
	delete(l.full, obj)
	l.Container.Remove(obj)
}

// SafeArea returns the part of the window edges the device keeps for itself.
func (l *Layer) SafeArea() geometry.Insets {
	if l.canvas == nil {
		return geometry.Insets{}
	}
	pos, size := l.canvas.InteractiveArea()
	total := l.canvas.Size()
	return geometry.Insets{
		Top:    pos.Y,
		Left:   pos.X,
		Bottom: max(total.Height-pos.Y-size.Height, 0),
		Right:  max(total.Width-pos.X-size.Width, 0),
	}
}

type layerLayout struct {
	layer *Layer
}

func (ll *layerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		if ll.layer.full[o] {
			o.Move(fyne.NewPos(0, 0))
			o.Resize(size)
		}
	}
}

func (ll *layerLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(0, 0)
}
