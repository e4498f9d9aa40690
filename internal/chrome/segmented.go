package chrome

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	segmentBorder   = color.NRGBA{R: 255, G: 255, B: 255, A: 160}
	segmentSelected = color.NRGBA{R: 255, G: 255, B: 255, A: 220}
	segmentText     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	segmentTextSel  = color.NRGBA{A: 255}
)

// Segmented is a row of mutually exclusive text segments.
type Segmented struct {
	widget.BaseWidget

	// OnChanged is called with the new index after a segment is tapped.
	OnChanged func(index int)

	titles   []string
	selected int
	alpha    float32

	border *canvas.Rectangle
	fills  []*canvas.Rectangle
	labels []*canvas.Text
}

// NewSegmented creates a segmented control with selected pre-selected.
func NewSegmented(titles []string, selected int) *Segmented {
	s := &Segmented{
		titles:   titles,
		selected: selected,
		alpha:    1,
		border:   canvas.NewRectangle(color.Transparent),
	}
	s.border.StrokeWidth = 1
	s.border.CornerRadius = 4
	for _, t := range titles {
		s.fills = append(s.fills, canvas.NewRectangle(color.Transparent))
		l := canvas.NewText(t, segmentText)
		l.Alignment = fyne.TextAlignCenter
		l.TextSize = theme.CaptionTextSize()
		s.labels = append(s.labels, l)
	}
	s.ExtendBaseWidget(s)
	s.apply()
	return s
}

// Selected returns the selected index.
func (s *Segmented) Selected() int {
	return s.selected
}

// SetSelected selects index without calling OnChanged.
func (s *Segmented) SetSelected(index int) {
	if index < 0 || index >= len(s.titles) {
		return
	}
	s.selected = index
	s.apply()
}

// Tapped selects the segment under the pointer.
func (s *Segmented) Tapped(ev *fyne.PointEvent) {
	n := len(s.titles)
	w := s.Size().Width
	if n == 0 || w <= 0 {
		return
	}
	i := int(ev.Position.X / (w / float32(n)))
	if i < 0 || i >= n || i == s.selected {
		return
	}
	s.selected = i
	s.apply()
	if s.OnChanged != nil {
		s.OnChanged(i)
	}
}

func (s *Segmented) setAlpha(a float32) {
	s.alpha = a
	s.apply()
}

func (s *Segmented) apply() {
	s.border.StrokeColor = withAlpha(segmentBorder, s.alpha)
	for i := range s.titles {
		if i == s.selected {
			s.fills[i].FillColor = withAlpha(segmentSelected, s.alpha)
			s.labels[i].Color = withAlpha(segmentTextSel, s.alpha)
		} else {
			s.fills[i].FillColor = color.Transparent
			s.labels[i].Color = withAlpha(segmentText, s.alpha)
		}
	}
	s.Refresh()
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (s *Segmented) CreateRenderer() fyne.WidgetRenderer {
	objects := []fyne.CanvasObject{s.border}
	for i := range s.titles {
		objects = append(objects, s.fills[i], s.labels[i])
	}
	return &barRenderer{objects: objects, layout: s.layout}
}

func (s *Segmented) layout(size fyne.Size) {
	s.border.Move(fyne.NewPos(0, 0))
	s.border.Resize(size)
	n := len(s.titles)
	if n == 0 {
		return
	}
	w := size.Width / float32(n)
	for i := range s.titles {
		pos := fyne.NewPos(float32(i)*w, 0)
		s.fills[i].Move(pos)
		s.fills[i].Resize(fyne.NewSize(w, size.Height))
		s.labels[i].Move(pos)
		s.labels[i].Resize(fyne.NewSize(w, size.Height))
	}
}

var _ fyne.Tappable = (*Segmented)(nil)
