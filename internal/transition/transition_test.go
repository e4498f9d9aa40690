package transition

import (
	"image"
	"testing"

	"fyviewer/internal/anim"
	"fyviewer/internal/chrome"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyHost struct {
	*fyne.Container
	removed map[fyne.CanvasObject]int
}

func newSpyHost(w, h float32) *spyHost {
	c := container.NewWithoutLayout()
	c.Resize(fyne.NewSize(w, h))
	return &spyHost{Container: c, removed: map[fyne.CanvasObject]int{}}
}

func (h *spyHost) Remove(o fyne.CanvasObject) {
	h.removed[o]++
	h.Container.Remove(o)
}

func (h *spyHost) has(o fyne.CanvasObject) bool {
	for _, c := range h.Objects {
		if c == o {
			return true
		}
	}
	return false
}

type fakeImageView struct {
	frame  geometry.Rect
	img    image.Image
	mode   geometry.ContentMode
	hidden bool
}

func (v *fakeImageView) Frame() geometry.Rect              { return v.frame }
func (v *fakeImageView) Image() image.Image                { return v.img }
func (v *fakeImageView) ContentMode() geometry.ContentMode { return v.mode }
func (v *fakeImageView) Hide()                             { v.hidden = true }
func (v *fakeImageView) Show()                             { v.hidden = false }

type fakeScreen struct {
	root fyne.CanvasObject
	iv   *fakeImageView
	host *spyHost
}

func (s *fakeScreen) Root() fyne.CanvasObject { return s.root }
func (s *fakeScreen) ImageView() ImageView {
	if s.iv == nil {
		return nil
	}
	return s.iv
}
func (s *fakeScreen) ChromeHost() chrome.Host { return s.host }

type fakeContext struct {
	layer     *spyHost
	from, to  *fakeScreen
	completed []bool
	cancelled bool
	events    []string
}

func (c *fakeContext) Container() chrome.Host { return c.layer }
func (c *fakeContext) From() Screen           { return c.from }
func (c *fakeContext) To() Screen             { return c.to }
func (c *fakeContext) CompleteTransition(ok bool) {
	c.completed = append(c.completed, ok)
	c.events = append(c.events, "complete")
}
func (c *fakeContext) CancelInteractiveTransition() {
	c.cancelled = true
	c.events = append(c.events, "cancel")
}
func (c *fakeContext) TransitionWasCancelled() bool { return c.cancelled }

var (
	thumbFrame  = geometry.NewRect(20, 300, 80, 60)
	viewerFrame = geometry.NewRect(0, 0, 320, 480)
)

func newScreen(iv *fakeImageView) *fakeScreen {
	return &fakeScreen{root: canvas.NewRectangle(nil), iv: iv, host: newSpyHost(320, 480)}
}

func gallerySide() *fakeScreen {
	return newScreen(&fakeImageView{
		frame: thumbFrame,
		img:   image.NewRGBA(image.Rect(0, 0, 40, 30)),
		mode:  geometry.ContentAspectFill,
	})
}

func viewerSide() *fakeScreen {
	return newScreen(&fakeImageView{frame: viewerFrame, mode: geometry.ContentAspectFit})
}

func newChrome() Chrome {
	s := config.DefaultSettings()
	m := anim.NewManual()
	return Chrome{
		Nav:     chrome.NewNavigationBar(config.New(), s, m),
		ToolBar: chrome.NewBottomToolBar(config.New(), s, m),
	}
}

func presentContext() *fakeContext {
	return &fakeContext{layer: newSpyHost(320, 480), from: gallerySide(), to: viewerSide()}
}

func dismissContext() *fakeContext {
	return &fakeContext{layer: newSpyHost(320, 480), from: viewerSide(), to: gallerySide()}
}

func assertChrome(t *testing.T, c Chrome, alpha, offset float32, host chrome.Host, role chrome.Attachment) {
	t.Helper()
	assert.InDelta(t, alpha, c.Nav.Alpha(), 1e-5)
	assert.InDelta(t, alpha, c.ToolBar.Alpha(), 1e-5)
	assert.InDelta(t, -offset, c.Nav.Offset(), 1e-4)
	assert.InDelta(t, offset, c.ToolBar.Offset(), 1e-4)
	assert.Equal(t, host, c.Nav.Host())
	assert.Equal(t, host, c.ToolBar.Host())
	assert.Equal(t, role, c.Nav.Attachment())
	assert.Equal(t, role, c.ToolBar.Attachment())
}

func TestPresentation(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	c := newChrome()
	ctx := presentContext()
	p := NewPresentation(c, config.DefaultSettings(), m)

	require.NoError(t, p.Animate(ctx))
	spec, ok := m.LastSpec()
	require.True(t, ok)
	assert.Equal(t, config.DefaultSettings().PresentDuration, spec.Duration)

	s, b := p.Surrogate(), p.Backdrop()
	assert.Equal(t, thumbFrame, s.Frame())
	assert.Equal(t, ctx.from.iv.img, s.Image())
	assert.Equal(t, ctx.from.iv.img, s.img.Image)
	assert.True(t, ctx.from.iv.hidden)
	assert.True(t, ctx.to.iv.hidden)
	assert.False(t, ctx.to.root.Visible())
	assert.True(t, ctx.layer.has(s.Object()))
	assert.InDelta(t, 0, b.Alpha(), 1e-6)
	assertChrome(t, c, 0, 200, ctx.layer, chrome.AttachedToContainer)

	m.Step(0.3)
	assert.NotEqual(t, thumbFrame, s.Frame())
	assert.Equal(t, Finishing, p.State())

	m.Finish()
	assert.Equal(t, Completed, p.State())
	assert.Equal(t, []bool{true}, ctx.completed)
	assert.Equal(t, viewerFrame, s.Frame())
	assert.Equal(t, geometry.ContentAspectFit, s.ContentMode())
	assert.True(t, ctx.to.root.Visible())
	assert.False(t, ctx.to.iv.hidden)
	assert.True(t, ctx.from.iv.hidden)
	assert.Equal(t, 1, ctx.layer.removed[s.Object()])
	assert.Equal(t, 1, ctx.layer.removed[b.Object()])
	assert.False(t, ctx.layer.has(b.Object()))
	assertChrome(t, c, 1, 0, ctx.to.host, chrome.AttachedToDestination)
	assert.False(t, ctx.layer.has(c.Nav))

	assert.ErrorIs(t, p.Animate(ctx), ErrAlreadyStarted)
}

func TestPresentationEndStateIgnoresSampling(t *testing.T) {
	test.NewTempApp(t)
	run := func(samples ...float32) (geometry.Rect, float32, float32) {
		m := anim.NewManual()
		c := newChrome()
		p := NewPresentation(c, config.DefaultSettings(), m)
		require.NoError(t, p.Animate(presentContext()))
		for _, v := range samples {
			m.Step(v)
		}
		m.Finish()
		return p.Surrogate().Frame(), c.Nav.Alpha(), c.ToolBar.Offset()
	}

	f1, a1, o1 := run()
	f2, a2, o2 := run(0.1, 0.45, 0.9)
	f3, a3, o3 := run(0.7, 0.2)
	assert.Equal(t, f1, f2)
	assert.Equal(t, f1, f3)
	assert.Equal(t, a1, a2)
	assert.Equal(t, a1, a3)
	assert.Equal(t, o1, o2)
	assert.Equal(t, o1, o3)
}

func TestPresentationFallsBackToDestinationImage(t *testing.T) {
	test.NewTempApp(t)
	ctx := presentContext()
	ctx.from.iv.img = nil
	ctx.to.iv.img = image.NewGray(image.Rect(0, 0, 8, 8))
	p := NewPresentation(newChrome(), config.DefaultSettings(), anim.NewManual())
	require.NoError(t, p.Animate(ctx))
	assert.Equal(t, ctx.to.iv.img, p.Surrogate().img.Image)
}

func TestSurrogateAspectFillCrops(t *testing.T) {
	test.NewTempApp(t)
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	s := NewSurrogate(img, geometry.NewRect(0, 0, 60, 60), geometry.ContentAspectFill)
	assert.Equal(t, canvas.ImageFillContain, s.img.FillMode)
	assert.Equal(t, image.Rect(5, 0, 35, 30), s.img.Image.Bounds())
	assert.Equal(t, img, s.Image())

	s.SetFrame(geometry.NewRect(0, 0, 80, 20))
	assert.Equal(t, image.Rect(0, 10, 40, 20), s.img.Image.Bounds())

	s.SetContentMode(geometry.ContentAspectFit)
	assert.Equal(t, img.Bounds(), s.img.Image.Bounds())
}

func TestDismissalUpdateInterpolates(t *testing.T) {
	test.NewTempApp(t)
	c := newChrome()
	ctx := dismissContext()
	d := NewDismissal(c, config.DefaultSettings(), anim.NewManual(), nil)
	require.NoError(t, d.Start(ctx))
	assert.Equal(t, Pending, d.State())
	assert.False(t, ctx.from.root.Visible())
	assertChrome(t, c, 1, 0, ctx.layer, chrome.AttachedToContainer)

	translation := geometry.Translate(15, 60)
	d.UpdateTransform(translation)
	for _, p := range []float32{0, 0.1, 0.25, 0.5, 0.9, 1} {
		d.Update(p)
		inv := 1 - p
		assert.Equal(t, InteractiveUpdating, d.State())
		assert.Equal(t, inv, d.Backdrop().Alpha())
		assert.Equal(t, inv, c.Nav.Alpha())
		assert.Equal(t, inv, c.ToolBar.Alpha())
		assert.InDelta(t, -(200 - inv*200), c.Nav.Offset(), 1e-4)
		assert.InDelta(t, 200-inv*200, c.ToolBar.Offset(), 1e-4)
		assert.Equal(t, geometry.Scale(inv, inv).Concat(translation), d.Surrogate().Transform())
	}
}

func TestDismissalFinish(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	c := newChrome()
	ctx := dismissContext()
	d := NewDismissal(c, config.DefaultSettings(), m, func() {
		ctx.events = append(ctx.events, "finish")
	})
	require.NoError(t, d.Start(ctx))
	d.Update(0.4)
	d.UpdateTransform(geometry.Translate(0, 120))
	require.NoError(t, d.Finish())
	assert.Equal(t, Finishing, d.State())
	spec, _ := m.LastSpec()
	assert.Equal(t, config.DefaultSettings().DismissDuration, spec.Duration)

	d.Update(0.1)
	assert.Equal(t, float32(0.4), d.Percentage())

	m.Finish()
	assert.Equal(t, Completed, d.State())
	assert.Equal(t, []bool{true}, ctx.completed)
	assert.Equal(t, []string{"complete", "finish"}, ctx.events)
	assert.InDelta(t, 0, d.Backdrop().Alpha(), 1e-6)
	assertChrome(t, c, 0, 200, ctx.to.host, chrome.AttachedToDestination)
	assert.Equal(t, thumbFrame, d.Surrogate().Frame())
	assert.True(t, d.Surrogate().Transform().IsIdentity())
	assert.Equal(t, geometry.ContentAspectFill, d.Surrogate().ContentMode())
	assert.False(t, ctx.to.iv.hidden)
	assert.False(t, ctx.from.root.Visible())
	assert.Equal(t, 1, ctx.layer.removed[d.Surrogate().Object()])
	assert.Equal(t, 1, ctx.layer.removed[d.Backdrop().Object()])
	assert.Zero(t, ctx.from.host.removed[c.Nav])

	assert.ErrorIs(t, d.Finish(), ErrCompleted)
	assert.ErrorIs(t, d.Cancel(), ErrCompleted)
	assert.Equal(t, 1, ctx.layer.removed[d.Surrogate().Object()])
}

func TestDismissalCancel(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	c := newChrome()
	ctx := dismissContext()
	finished := false
	d := NewDismissal(c, config.DefaultSettings(), m, func() { finished = true })
	require.NoError(t, d.Start(ctx))
	d.Update(0.2)
	d.UpdateTransform(geometry.Translate(-10, 40))
	require.NoError(t, d.Cancel())
	assert.Equal(t, Cancelling, d.State())
	assert.True(t, ctx.TransitionWasCancelled())
	assert.Empty(t, ctx.completed)

	m.Step(0.5)
	assert.Greater(t, d.Backdrop().Alpha(), float32(0.8))
	assert.Less(t, d.Backdrop().Alpha(), float32(1))

	m.Finish()
	assert.Equal(t, Completed, d.State())
	assert.Equal(t, []string{"cancel", "complete"}, ctx.events)
	assert.Equal(t, []bool{false}, ctx.completed)
	assert.False(t, finished)
	assert.Equal(t, float32(1), d.Backdrop().Alpha())
	assertChrome(t, c, 1, 0, ctx.from.host, chrome.AttachedToSource)
	assert.Equal(t, viewerFrame, d.Surrogate().Frame())
	assert.True(t, ctx.from.root.Visible())
	assert.True(t, ctx.to.iv.hidden)
	assert.Equal(t, 1, ctx.layer.removed[d.Surrogate().Object()])
	assert.Equal(t, 1, ctx.layer.removed[d.Backdrop().Object()])
	assert.False(t, ctx.layer.has(c.ToolBar))
}

func TestDismissalDragAfterTap(t *testing.T) {
	test.NewTempApp(t)
	s := config.DefaultSettings()
	s.FadeDuration = 2 * s.DismissDuration
	fades := anim.NewManual()
	c := Chrome{
		Nav:     chrome.NewNavigationBar(config.New(), s, fades),
		ToolBar: chrome.NewBottomToolBar(config.New(), s, fades),
	}
	ctx := dismissContext()
	c.attach(ctx.from.host, chrome.AttachedToSource)

	require.True(t, c.Nav.ToggleVisible())
	require.True(t, c.ToolBar.ToggleVisible())
	fades.Step(0.2)

	m := anim.NewManual()
	d := NewDismissal(c, s, m, nil)
	require.NoError(t, d.Start(ctx))
	d.Update(0.3)
	fades.Step(0.6)
	assert.InDelta(t, 0.7, c.Nav.Alpha(), 1e-6)
	assert.InDelta(t, 0.7, c.ToolBar.Alpha(), 1e-6)

	require.NoError(t, d.Cancel())
	m.Finish()
	fades.Finish()
	assertChrome(t, c, 1, 0, ctx.from.host, chrome.AttachedToSource)
}

func TestDismissalCancelWithoutUpdate(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	c := newChrome()
	ctx := dismissContext()
	d := NewDismissal(c, config.DefaultSettings(), m, nil)
	require.NoError(t, d.Start(ctx))
	require.NoError(t, d.Cancel())
	m.Finish()
	assert.Equal(t, []bool{false}, ctx.completed)
	assertChrome(t, c, 1, 0, ctx.from.host, chrome.AttachedToSource)
}

func TestDismissalAnimate(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	c := newChrome()
	ctx := dismissContext()
	d := NewDismissal(c, config.DefaultSettings(), m, nil)
	require.NoError(t, d.Animate(ctx))
	m.Finish()
	assert.Equal(t, []bool{true}, ctx.completed)
	assert.False(t, ctx.cancelled)
	assertChrome(t, c, 0, 200, ctx.to.host, chrome.AttachedToDestination)
}

func TestDismissalGuards(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	d := NewDismissal(newChrome(), config.DefaultSettings(), m, nil)
	assert.ErrorIs(t, d.Finish(), ErrNotStarted)
	assert.ErrorIs(t, d.Cancel(), ErrNotStarted)
	assert.NotPanics(t, func() {
		d.Update(0.5)
		d.UpdateTransform(geometry.Translate(1, 1))
	})
	assert.Equal(t, Idle, d.State())

	ctx := dismissContext()
	require.NoError(t, d.Start(ctx))
	assert.ErrorIs(t, d.Start(ctx), ErrAlreadyStarted)
	require.NoError(t, d.Cancel())
	assert.ErrorIs(t, d.Finish(), ErrCompleted)
	m.Finish()
	assert.Equal(t, []bool{false}, ctx.completed)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name   string
		ty, vy float32
		height float32
		want   bool
	}{
		{"fast long drag finishes", 150, 200, 400, true},
		{"short drag cancels", 20, -10, 400, false},
		{"upward fling finishes", -80, -300, 400, true},
		{"exactly at threshold cancels", 100, 0, 400, false},
		{"zero height cancels", 500, 500, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.ty, tt.vy, tt.height, 0.25))
		})
	}
}

func TestHandler(t *testing.T) {
	test.NewTempApp(t)
	h := NewHandler(newChrome(), config.DefaultSettings(), anim.NewManual(), nil)
	assert.IsType(t, &Presentation{}, h.PresentationAnimator())
	assert.Nil(t, h.InteractiveDismissal())

	a := h.DismissalAnimator()
	assert.Nil(t, h.InteractiveDismissal())
	h.SetInteractive(true)
	assert.True(t, h.IsInteractive())
	assert.Same(t, a, h.InteractiveDismissal())
	assert.NotSame(t, a, h.DismissalAnimator())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "interactive-updating", InteractiveUpdating.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "state(42)", State(42).String())
}
