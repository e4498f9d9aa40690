package anim

import (
	"sort"
	"time"
)

// Manual is a Runner that only moves when told to. Tests use it to sample
// transitions at chosen points and to fire delayed calls deterministically.
type Manual struct {
	running []*manualRun
	timers  []*manualTimer
	now     time.Duration
	seq     int
}

type manualRun struct {
	spec Spec
	tick func(float32)
	done func()
}

type manualTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

var _ Runner = (*Manual)(nil)

// NewManual returns an idle manual runner.
func NewManual() *Manual {
	return &Manual{}
}

// Run implements Runner. Nothing happens until Step or Finish is called.
func (m *Manual) Run(spec Spec, tick func(float32), done func()) {
	m.running = append(m.running, &manualRun{spec: spec, tick: tick, done: done})
}

// Pending returns the number of animations that have not completed.
func (m *Manual) Pending() int {
	return len(m.running)
}

// LastSpec returns the spec of the most recently started pending animation.
func (m *Manual) LastSpec() (Spec, bool) {
	if len(m.running) == 0 {
		return Spec{}, false
	}
	return m.running[len(m.running)-1].spec, true
}

// Step moves every pending animation to raw progress p. Progress of 1 or
// more completes them.
func (m *Manual) Step(p float32) {
	if p >= 1 {
		m.complete()
		return
	}
	for _, r := range m.running {
		r.tick(curveOf(r.spec)(p))
	}
}

// Finish completes every pending animation, including any started by the
// completion callbacks of others.
func (m *Manual) Finish() {
	for len(m.running) > 0 {
		m.complete()
	}
}

func (m *Manual) complete() {
	batch := m.running
	m.running = nil
	for _, r := range batch {
		r.tick(curveOf(r.spec)(1))
		if r.done != nil {
			r.done()
		}
	}
}

// After implements Runner using a virtual clock moved by Advance.
func (m *Manual) After(d time.Duration, fn func()) {
	m.seq++
	m.timers = append(m.timers, &manualTimer{at: m.now + d, seq: m.seq, fn: fn})
}

// Advance moves the virtual clock forward and fires due calls in order.
func (m *Manual) Advance(d time.Duration) {
	m.now += d
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at == m.timers[j].at {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at < m.timers[j].at
	})
	var due []*manualTimer
	keep := m.timers[:0]
	for _, t := range m.timers {
		if t.at <= m.now {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	m.timers = keep
	for _, t := range due {
		t.fn()
	}
}

func curveOf(spec Spec) Curve {
	if spec.Curve == nil {
		return Linear
	}
	return spec.Curve
}
