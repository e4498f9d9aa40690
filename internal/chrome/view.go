// Package chrome implements the overlay bars shown above the viewer image.
//
// A bar is relocatable: it can be detached from one host and attached to
// another without losing its state. Transitions move bars between the viewer
// screen and the shared transition layer by calling Attach, never by touching
// the bar's layout directly.
package chrome

import (
	"image/color"
	"time"

	"fyviewer/internal/anim"
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
)

// Attachment records which kind of host currently parents a bar.
type Attachment int

const (
	// Unattached bars are not part of any view hierarchy.
	Unattached Attachment = iota
	// AttachedToSource means the bar lives on the screen a transition starts from.
	AttachedToSource
	// AttachedToContainer means the bar is borrowed by an in-flight transition.
	AttachedToContainer
	// AttachedToDestination means the bar lives on the screen a transition ends on.
	AttachedToDestination
)

// String returns a readable attachment name.
func (a Attachment) String() string {
	switch a {
	case Unattached:
		return "unattached"
	case AttachedToSource:
		return "source"
	case AttachedToContainer:
		return "container"
	case AttachedToDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// Host is a surface bars can be attached to. *fyne.Container satisfies it.
type Host interface {
	Add(fyne.CanvasObject)
	Remove(fyne.CanvasObject)
	Size() fyne.Size
}

// SafeAreaHost is a Host that keeps part of its edges clear of content.
type SafeAreaHost interface {
	Host
	SafeArea() geometry.Insets
}

// Edge is the host edge a bar docks to.
type Edge int

const (
	// EdgeTop docks the bar to the top of its host.
	EdgeTop Edge = iota
	// EdgeBottom docks the bar to the bottom of its host.
	EdgeBottom
)

// View is the relocatable state shared by NavigationBar and BottomToolBar:
// its host, visibility alpha and transition offset.
type View struct {
	obj        fyne.CanvasObject
	edge       Edge
	height     func() float32
	host       Host
	attachment Attachment
	alpha      float32
	offset     float32
	fading     bool
	fadeGen    int
	fade       time.Duration
	runner     anim.Runner
	faders     []func(alpha float32)
}

func (v *View) init(obj fyne.CanvasObject, edge Edge, height func() float32, runner anim.Runner, fade time.Duration) {
	v.obj = obj
	v.edge = edge
	v.height = height
	v.runner = runner
	v.fade = fade
	v.alpha = 1
}

func (v *View) addFader(f func(alpha float32)) {
	v.faders = append(v.faders, f)
}

// Attach removes the bar from its previous host, if any, adds it to h and
// lays it out against h. A nil host detaches the bar. Any running fade is
// stopped, so the new owner controls the alpha.
func (v *View) Attach(h Host, role Attachment) {
	v.StopFade()
	if h == nil {
		v.Detach()
		return
	}
	if v.host != nil {
		v.host.Remove(v.obj)
	}
	h.Add(v.obj)
	v.host = h
	v.attachment = role
	v.Relayout()
}

// Detach removes the bar from its host.
func (v *View) Detach() {
	if v.host != nil {
		v.host.Remove(v.obj)
	}
	v.host = nil
	v.attachment = Unattached
}

// Host returns the current host, or nil.
func (v *View) Host() Host {
	return v.host
}

// Attachment returns the current attachment state.
func (v *View) Attachment() Attachment {
	return v.attachment
}

// Frame returns the docked frame of the bar, ignoring the transition offset.
func (v *View) Frame() geometry.Rect {
	if v.host == nil {
		return geometry.Rect{}
	}
	size := v.host.Size()
	var insets geometry.Insets
	if sa, ok := v.host.(SafeAreaHost); ok {
		insets = sa.SafeArea()
	}
	h := v.height()
	if v.edge == EdgeTop {
		h += insets.Top
		return geometry.NewRect(0, 0, size.Width, h)
	}
	h += insets.Bottom
	return geometry.NewRect(0, size.Height-h, size.Width, h)
}

// Relayout recomputes the frame of the bar inside its host.
func (v *View) Relayout() {
	if v.host == nil {
		return
	}
	v.Frame().Offset(0, v.offset).Apply(v.obj)
}

// SetAlpha sets the visibility alpha. A fully transparent bar is hidden so it
// takes no input.
func (v *View) SetAlpha(a float32) {
	v.alpha = a
	for _, f := range v.faders {
		f(a)
	}
	if a <= 0 {
		if v.obj.Visible() {
			v.obj.Hide()
		}
	} else if !v.obj.Visible() {
		v.obj.Show()
	}
}

// Alpha returns the visibility alpha.
func (v *View) Alpha() float32 {
	return v.alpha
}

// SetOffset shifts the bar vertically from its docked frame.
func (v *View) SetOffset(dy float32) {
	v.offset = dy
	v.Relayout()
}

// Offset returns the vertical shift from the docked frame.
func (v *View) Offset() float32 {
	return v.offset
}

// ToggleVisible fades the bar in when hidden and out when shown. Requests
// made while the alpha is between 0 and 1 are ignored. It reports whether a
// fade was started.
func (v *View) ToggleVisible() bool {
	if v.fading || (v.alpha != 0 && v.alpha != 1) {
		return false
	}
	from := v.alpha
	to := 1 - from
	v.fading = true
	gen := v.fadeGen
	v.runner.Run(anim.Spec{Duration: v.fade, Curve: anim.EaseInOut}, func(p float32) {
		if gen == v.fadeGen {
			v.SetAlpha(geometry.Lerp(from, to, p))
		}
	}, func() {
		if gen != v.fadeGen {
			return
		}
		v.fading = false
		v.SetAlpha(to)
	})
	return true
}

// StopFade abandons a running fade at its current alpha. Later frames of
// that fade are dropped.
func (v *View) StopFade() {
	v.fadeGen++
	v.fading = false
}

// Fading reports whether a fade is running.
func (v *View) Fading() bool {
	return v.fading
}

// withAlpha scales the alpha channel of c by a.
func withAlpha(c color.Color, a float32) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	a = min(max(a, 0), 1)
	n.A = uint8(float32(n.A) * a)
	return n
}
