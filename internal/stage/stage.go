// Package stage hosts viewer sessions above a base screen in a Fyne window
// and supplies the transition context for their animations.
package stage

import (
	"errors"
	"fmt"
	"log"

	"fyviewer/internal/chrome"
	"fyviewer/internal/geometry"
	"fyviewer/internal/transition"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

var (
	// ErrAlreadyPresented is returned when a presentable is shown twice.
	ErrAlreadyPresented = errors.New("already presented")
	// ErrNotPresented is returned when dismissing something that is not shown.
	ErrNotPresented = errors.New("not presented")
	// ErrBusy is returned while another transition is running.
	ErrBusy = errors.New("a transition is in progress")
)

// Presentable is a screen that can be shown modally on a Stage.
type Presentable interface {
	transition.Screen
	// Handler supplies the animators for the session.
	Handler() *transition.Handler
	// Release ends the session after a successful dismissal.
	Release()
}

// Stage stacks an overlay layer above a base screen. Presented screens, and
// everything a transition flies, live in the overlay.
type Stage struct {
	Logger transition.LoggerFunc

	content  *fyne.Container
	layer    *Layer
	sessions map[Presentable]transition.Screen
	active   *runContext
}

// New creates a stage over base. c is the canvas the stage is shown on and
// may be nil in tests.
func New(base fyne.CanvasObject, c fyne.Canvas) *Stage {
	s := &Stage{sessions: map[Presentable]transition.Screen{}}
	s.layer = newLayer(c)
	s.content = container.NewStack(base, s.layer.Container)
	return s
}

// Content is the object to put in the window.
func (s *Stage) Content() fyne.CanvasObject {
	return s.content
}

// Layer returns the overlay layer.
func (s *Stage) Layer() *Layer {
	return s.layer
}

// IsPresented reports whether p is currently shown.
func (s *Stage) IsPresented(p Presentable) bool {
	_, ok := s.sessions[p]
	return ok
}

// Busy reports whether a transition is running.
func (s *Stage) Busy() bool {
	return s.active != nil
}

// FrameOf returns the frame of obj in layer coordinates. obj must be on the
// same canvas as the stage.
func (s *Stage) FrameOf(obj fyne.CanvasObject) geometry.Rect {
	d := fyne.CurrentApp().Driver()
	pos := d.AbsolutePositionForObject(obj).Subtract(d.AbsolutePositionForObject(s.layer.Container))
	return geometry.Rect{Origin: pos, Size: obj.Size()}
}

// Present shows p above the base screen, flying its image from source.
func (s *Stage) Present(p Presentable, source transition.Screen) error {
	if s.IsPresented(p) {
		return ErrAlreadyPresented
	}
	if s.active != nil {
		return ErrBusy
	}
	s.layer.addFull(p.Root())
	ctx := s.newContext(source, p, func(ok bool) {
		if ok {
			s.sessions[p] = source
			s.logMessage("Presented viewer")
			return
		}
		s.layer.Remove(p.Root())
	})
	if err := p.Handler().PresentationAnimator().Animate(ctx); err != nil {
		s.active = nil
		s.layer.Remove(p.Root())
		return fmt.Errorf("failed to present: %w", err)
	}
	return nil
}

// Dismiss hides p without user interaction.
func (s *Stage) Dismiss(p Presentable) error {
	ctx, h, err := s.dismissContext(p)
	if err != nil {
		return err
	}
	h.SetInteractive(false)
	if err := h.DismissalAnimator().Animate(ctx); err != nil {
		s.active = nil
		return fmt.Errorf("failed to dismiss: %w", err)
	}
	return nil
}

// BeginInteractiveDismiss starts a gesture driven dismissal of p. The caller
// drives the returned transition and must settle it with Finish or Cancel.
func (s *Stage) BeginInteractiveDismiss(p Presentable) (transition.Interactive, error) {
	ctx, h, err := s.dismissContext(p)
	if err != nil {
		return nil, err
	}
	h.SetInteractive(true)
	h.DismissalAnimator()
	d := h.InteractiveDismissal()
	if err := d.Start(ctx); err != nil {
		s.active = nil
		return nil, fmt.Errorf("failed to start dismissal: %w", err)
	}
	return d, nil
}

func (s *Stage) dismissContext(p Presentable) (*runContext, *transition.Handler, error) {
	if s.active != nil {
		return nil, nil, ErrBusy
	}
	source, ok := s.sessions[p]
	if !ok {
		return nil, nil, ErrNotPresented
	}
	ctx := s.newContext(p, source, func(ok bool) {
		if !ok {
			s.logMessage("Dismissal cancelled")
			return
		}
		delete(s.sessions, p)
		s.layer.Remove(p.Root())
		p.Release()
		s.logMessage("Dismissed viewer")
	})
	return ctx, p.Handler(), nil
}

func (s *Stage) newContext(from, to transition.Screen, onComplete func(bool)) *runContext {
	ctx := &runContext{stage: s, from: from, to: to, onComplete: onComplete}
	s.active = ctx
	return ctx
}

func (s *Stage) logMessage(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// runContext is the transition.Context for one run on a Stage.
type runContext struct {
	stage      *Stage
	from, to   transition.Screen
	cancelled  bool
	done       bool
	onComplete func(bool)
}

var _ transition.Context = (*runContext)(nil)

func (c *runContext) Container() chrome.Host  { return c.stage.layer }
func (c *runContext) From() transition.Screen { return c.from }
func (c *runContext) To() transition.Screen   { return c.to }

func (c *runContext) CompleteTransition(didComplete bool) {
	if c.done {
		c.stage.logMessage("Ignoring repeated transition completion (%v)", didComplete)
		return
	}
	c.done = true
	if c.stage.active == c {
		c.stage.active = nil
	}
	c.onComplete(didComplete)
}

func (c *runContext) CancelInteractiveTransition() { c.cancelled = true }

func (c *runContext) TransitionWasCancelled() bool { return c.cancelled }
