package transition

import (
	"math"

	"fyviewer/internal/anim"
	"fyviewer/internal/chrome"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"
)

// Dismissal flies the viewer image back to its thumbnail. It can run straight
// through with Animate, or be started with Start, driven with Update and
// UpdateTransform, and settled with Finish or Cancel.
type Dismissal struct {
	Logger LoggerFunc

	chrome   Chrome
	settings config.Settings
	runner   anim.Runner
	onFinish func()

	ctx       Context
	from, to  ImageView
	state     State
	surrogate *Surrogate
	backdrop  *Backdrop

	start       geometry.Rect
	percentage  float32
	scale       geometry.Transform
	translation geometry.Transform
}

// NewDismissal returns a dismissal animator for a viewer owning c. onFinish
// runs after a successful dismissal and may be nil.
func NewDismissal(c Chrome, settings config.Settings, runner anim.Runner, onFinish func()) *Dismissal {
	return &Dismissal{
		chrome:      c,
		settings:    settings,
		runner:      runner,
		onFinish:    onFinish,
		scale:       geometry.Identity,
		translation: geometry.Identity,
	}
}

// State returns the progress of the run.
func (d *Dismissal) State() State {
	return d.state
}

// Percentage returns the last value passed to Update.
func (d *Dismissal) Percentage() float32 {
	return d.percentage
}

// Surrogate returns the flying image once started.
func (d *Dismissal) Surrogate() *Surrogate {
	return d.surrogate
}

// Backdrop returns the dimming layer once started.
func (d *Dismissal) Backdrop() *Backdrop {
	return d.backdrop
}

// Animate dismisses without user interaction.
func (d *Dismissal) Animate(ctx Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	return d.Finish()
}

// Start hides the viewer, borrows its chrome into the shared container and
// puts the surrogate where the viewer image is.
func (d *Dismissal) Start(ctx Context) error {
	if d.state != Idle {
		logMessage(d.Logger, "Ignoring dismissal start: state is %s", d.state)
		return ErrAlreadyStarted
	}
	d.ctx = ctx
	d.state = Pending

	layer := ctx.Container()
	d.from, d.to = ctx.From().ImageView(), ctx.To().ImageView()
	if d.from != nil {
		d.start = d.from.Frame()
	} else {
		d.start = geometry.Rect{Size: layer.Size()}
	}

	img := imageOf(d.from)
	if img == nil {
		img = imageOf(d.to)
	}

	ctx.From().Root().Hide()
	if d.to != nil {
		d.to.Hide()
	}

	d.backdrop = NewBackdrop(1)
	d.backdrop.AddTo(layer)
	d.surrogate = NewSurrogate(img, d.start, geometry.ContentAspectFit)
	d.surrogate.AddTo(layer)
	d.chrome.attach(layer, chrome.AttachedToContainer)
	d.chrome.apply(1, d.settings.ChromeOffset)
	return nil
}

// Update applies interactive progress p, where 0 is the presented state and 1
// is fully dismissed. p is not clamped. Calls outside an active drag are
// ignored.
func (d *Dismissal) Update(p float32) {
	if d.state != Pending && d.state != InteractiveUpdating {
		return
	}
	d.state = InteractiveUpdating
	d.percentage = p
	inv := 1 - p
	d.backdrop.SetAlpha(inv)
	d.chrome.apply(inv, d.settings.ChromeOffset)
	d.scale = geometry.Scale(inv, inv)
	d.applyTransform()
}

// UpdateTransform sets the translation that follows the finger. It composes
// with the scale from Update.
func (d *Dismissal) UpdateTransform(t geometry.Transform) {
	if d.state != Pending && d.state != InteractiveUpdating {
		return
	}
	d.translation = t
	d.applyTransform()
}

func (d *Dismissal) applyTransform() {
	d.surrogate.SetTransform(d.scale.Concat(d.translation))
}

// Finish animates to the dismissed state, hands the chrome to the destination
// screen and reports success.
func (d *Dismissal) Finish() error {
	if err := d.settleable(); err != nil {
		return err
	}
	d.state = Finishing

	end := d.surrogate.DisplayedFrame()
	endMode := geometry.ContentAspectFill
	if d.to != nil {
		end = d.to.Frame()
		endMode = d.to.ContentMode()
	}
	d.surrogate.SetContentMode(endMode)
	d.settle(end, 0, func() {
		if d.to != nil {
			d.to.Show()
		}
		d.chrome.attach(d.ctx.To().ChromeHost(), chrome.AttachedToDestination)
		d.ctx.CompleteTransition(true)
		if d.onFinish != nil {
			d.onFinish()
		}
	})
	return nil
}

// Cancel animates back to the presented state, returns the chrome to the
// viewer and reports that the transition did not complete.
func (d *Dismissal) Cancel() error {
	if err := d.settleable(); err != nil {
		return err
	}
	d.state = Cancelling
	d.ctx.CancelInteractiveTransition()

	d.surrogate.SetContentMode(geometry.ContentAspectFit)
	d.settle(d.start, 1, func() {
		d.ctx.From().Root().Show()
		d.chrome.attach(d.ctx.From().ChromeHost(), chrome.AttachedToSource)
		d.ctx.CompleteTransition(false)
	})
	return nil
}

func (d *Dismissal) settleable() error {
	switch d.state {
	case Idle:
		logMessage(d.Logger, "Ignoring dismissal settle: not started")
		return ErrNotStarted
	case Cancelling, Finishing, Completed:
		logMessage(d.Logger, "Ignoring dismissal settle: state is %s", d.state)
		return ErrCompleted
	}
	return nil
}

// settle animates from the current state to the surrogate frame target and
// the given backdrop and chrome alpha, then tears the flight down.
func (d *Dismissal) settle(target geometry.Rect, alpha float32, done func()) {
	from := d.surrogate.DisplayedFrame()
	inv := 1 - d.percentage
	distance := d.settings.ChromeOffset

	d.scale, d.translation = geometry.Identity, geometry.Identity
	d.surrogate.SetTransform(geometry.Identity)
	d.surrogate.SetFrame(from)

	spec := anim.Spec{Duration: d.settings.DismissDuration, Curve: anim.EaseInOut}
	d.runner.Run(spec, func(t float32) {
		a := geometry.Lerp(inv, alpha, t)
		d.surrogate.SetFrame(geometry.LerpRect(from, target, t))
		d.backdrop.SetAlpha(a)
		d.chrome.apply(a, distance)
	}, func() {
		d.surrogate.SetFrame(target)
		d.backdrop.SetAlpha(alpha)
		d.chrome.apply(alpha, distance)

		d.surrogate.Remove()
		d.backdrop.Remove()
		d.state = Completed
		done()
	})
}

// Decide reports whether a drag that ended with vertical translation ty and
// vertical velocity vy over an image of the given height should finish the
// dismissal. A non-positive height always cancels.
func Decide(ty, vy, height, threshold float32) bool {
	if height <= 0 {
		return false
	}
	return float32(math.Abs(float64(ty+vy)))/height > threshold
}
