package transition

import (
	"fyviewer/internal/anim"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"
)

// Animator runs one transition to completion.
type Animator interface {
	Animate(ctx Context) error
	State() State
}

// Interactive is an animator whose progress can be driven by a gesture.
type Interactive interface {
	Animator
	Start(ctx Context) error
	Update(p float32)
	UpdateTransform(t geometry.Transform)
	Finish() error
	Cancel() error
}

var (
	_ Animator    = (*Presentation)(nil)
	_ Interactive = (*Dismissal)(nil)
)

// Handler hands out the animators for one viewer session. The host asks it
// for a presentation animator when the viewer is shown and for a dismissal
// animator when it goes away.
type Handler struct {
	Logger LoggerFunc

	chrome   Chrome
	settings config.Settings
	runner   anim.Runner
	onFinish func()

	interactive bool
	dismissal   *Dismissal
}

// NewHandler returns a handler for a viewer owning c. onFinish runs after a
// successful dismissal.
func NewHandler(c Chrome, settings config.Settings, runner anim.Runner, onFinish func()) *Handler {
	return &Handler{chrome: c, settings: settings, runner: runner, onFinish: onFinish}
}

// SetInteractive selects whether the next dismissal is gesture driven.
func (h *Handler) SetInteractive(interactive bool) {
	h.interactive = interactive
}

// IsInteractive reports whether the next dismissal is gesture driven.
func (h *Handler) IsInteractive() bool {
	return h.interactive
}

// PresentationAnimator returns a fresh presentation animator.
func (h *Handler) PresentationAnimator() Animator {
	p := NewPresentation(h.chrome, h.settings, h.runner)
	p.Logger = h.Logger
	return p
}

// DismissalAnimator returns a fresh dismissal animator and remembers it as
// the current one.
func (h *Handler) DismissalAnimator() Animator {
	d := NewDismissal(h.chrome, h.settings, h.runner, h.onFinish)
	d.Logger = h.Logger
	h.dismissal = d
	return d
}

// InteractiveDismissal returns the current dismissal when the handler is in
// interactive mode, or nil.
func (h *Handler) InteractiveDismissal() Interactive {
	if !h.interactive || h.dismissal == nil {
		return nil
	}
	return h.dismissal
}

// Dismissal returns the most recent dismissal animator, or nil.
func (h *Handler) Dismissal() *Dismissal {
	return h.dismissal
}
