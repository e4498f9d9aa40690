// Package anim runs the short tweens used by the viewer chrome and transitions.
package anim

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
)

// Curve maps linear progress in [0, 1] to eased progress.
type Curve func(float32) float32

// Linear applies no easing.
func Linear(t float32) float32 { return t }

// EaseInOut is the toolkit's standard ease-in-out curve.
var EaseInOut = Curve(fyne.AnimationEaseInOut)

// Spring returns the curve of a damped spring released with the given initial
// velocity (in units of the full distance per animation duration). Damping
// below 1 overshoots before settling. The curve always ends exactly at 1.
func Spring(damping, velocity float32) Curve {
	if damping <= 0 {
		damping = 1
	}
	z := float64(damping)
	v := float64(velocity)
	// Natural frequency chosen so the envelope decays to 0.1% by t == 1.
	w := math.Log(1000) / z
	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := float64(t)
		if z >= 1 {
			// Overdamped springs are treated as critically damped.
			const wc = 9.25
			return float32(1 - math.Exp(-wc*x)*(1+(wc-v)*x))
		}
		wd := w * math.Sqrt(1-z*z)
		env := math.Exp(-z * w * x)
		return float32(1 - env*(math.Cos(wd*x)+((z*w-v)/wd)*math.Sin(wd*x)))
	}
}

// Spec describes a single animation run.
type Spec struct {
	Duration time.Duration
	Curve    Curve
}

// Runner drives animations and delayed calls. All callbacks run on the UI
// goroutine, one at a time.
type Runner interface {
	// Run calls tick with eased progress until it reaches 1 and then calls
	// done exactly once. done may be nil.
	Run(spec Spec, tick func(float32), done func())
	// After calls fn once d has elapsed.
	After(d time.Duration, fn func())
}

// FyneRunner runs animations through the Fyne animation driver.
type FyneRunner struct{}

var _ Runner = FyneRunner{}

// Run implements Runner.
func (FyneRunner) Run(spec Spec, tick func(float32), done func()) {
	curve := spec.Curve
	if curve == nil {
		curve = Linear
	}
	if spec.Duration <= 0 {
		tick(curve(1))
		if done != nil {
			done()
		}
		return
	}

	finished := false
	a := fyne.NewAnimation(spec.Duration, func(p float32) {
		if finished {
			return
		}
		tick(curve(p))
		if p >= 1 {
			finished = true
			if done != nil {
				done()
			}
		}
	})
	// The curve is applied in the tick so completion can be detected on raw progress.
	a.Curve = fyne.AnimationLinear
	a.Start()
}

// After implements Runner.
func (FyneRunner) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { fyne.Do(fn) })
}
