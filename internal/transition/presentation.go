package transition

import (
	"image"

	"fyviewer/internal/anim"
	"fyviewer/internal/chrome"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"
)

// Presentation flies the thumbnail to full screen and fades the viewer chrome
// in. It has no cancel path.
type Presentation struct {
	Logger LoggerFunc

	chrome   Chrome
	settings config.Settings
	runner   anim.Runner

	state     State
	surrogate *Surrogate
	backdrop  *Backdrop
}

// NewPresentation returns a presentation animator for a viewer owning c.
func NewPresentation(c Chrome, settings config.Settings, runner anim.Runner) *Presentation {
	return &Presentation{chrome: c, settings: settings, runner: runner}
}

// State returns the progress of the run.
func (p *Presentation) State() State {
	return p.state
}

// Surrogate returns the flying image while the run is in progress.
func (p *Presentation) Surrogate() *Surrogate {
	return p.surrogate
}

// Backdrop returns the dimming layer while the run is in progress.
func (p *Presentation) Backdrop() *Backdrop {
	return p.backdrop
}

// Animate runs the presentation. The run always completes successfully.
func (p *Presentation) Animate(ctx Context) error {
	if p.state != Idle {
		logMessage(p.Logger, "Ignoring presentation request: state is %s", p.state)
		return ErrAlreadyStarted
	}
	p.state = Pending

	layer := ctx.Container()
	from, to := ctx.From().ImageView(), ctx.To().ImageView()
	bounds := geometry.Rect{Size: layer.Size()}

	start := geometry.Rect{Origin: bounds.Center()}
	startMode := geometry.ContentAspectFit
	if from != nil {
		start = from.Frame()
		startMode = from.ContentMode()
	}
	end := bounds
	if to != nil && !to.Frame().IsEmpty() {
		end = to.Frame()
	}

	img := imageOf(from)
	if img == nil {
		img = imageOf(to)
	}

	p.backdrop = NewBackdrop(0)
	p.backdrop.AddTo(layer)
	p.surrogate = NewSurrogate(img, start, startMode)
	p.surrogate.AddTo(layer)

	root := ctx.To().Root()
	root.Hide()
	if from != nil {
		from.Hide()
	}
	if to != nil {
		to.Hide()
	}

	distance := p.settings.ChromeOffset
	p.chrome.attach(layer, chrome.AttachedToContainer)
	p.chrome.apply(0, distance)

	p.surrogate.SetContentMode(geometry.ContentAspectFit)
	spec := anim.Spec{
		Duration: p.settings.PresentDuration,
		Curve:    anim.Spring(p.settings.SpringDamping, 0),
	}
	p.state = Finishing
	p.runner.Run(spec, func(t float32) {
		p.surrogate.SetFrame(geometry.LerpRect(start, end, t))
		p.backdrop.SetAlpha(t)
		p.chrome.apply(t, distance)
	}, func() {
		p.surrogate.SetFrame(end)
		p.chrome.apply(1, distance)

		root.Show()
		if to != nil {
			to.Show()
		}
		p.backdrop.Remove()
		p.surrogate.Remove()
		p.chrome.attach(ctx.To().ChromeHost(), chrome.AttachedToDestination)
		p.state = Completed
		ctx.CompleteTransition(true)
	})
	return nil
}

func imageOf(v ImageView) image.Image {
	if v == nil {
		return nil
	}
	return v.Image()
}
