package viewer

import (
	"time"

	"fyne.io/fyne/v2"
)

const velocityWindow = 100 * time.Millisecond

type sample struct {
	at  time.Time
	pos fyne.Position
}

// velocityTracker estimates drag velocity in points per second from the most
// recent samples.
type velocityTracker struct {
	samples []sample
}

func (v *velocityTracker) reset() {
	v.samples = v.samples[:0]
}

func (v *velocityTracker) add(at time.Time, pos fyne.Position) {
	v.samples = append(v.samples, sample{at: at, pos: pos})
	cut := 0
	for cut < len(v.samples)-2 && at.Sub(v.samples[cut].at) > velocityWindow {
		cut++
	}
	v.samples = v.samples[cut:]
}

func (v *velocityTracker) velocity() fyne.Delta {
	if len(v.samples) < 2 {
		return fyne.Delta{}
	}
	first, last := v.samples[0], v.samples[len(v.samples)-1]
	dt := float32(last.at.Sub(first.at).Seconds())
	if dt <= 0 {
		return fyne.Delta{}
	}
	return fyne.NewDelta((last.pos.X-first.pos.X)/dt, (last.pos.Y-first.pos.Y)/dt)
}
