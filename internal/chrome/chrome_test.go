package chrome

import (
	"testing"

	"fyviewer/internal/anim"
	"fyviewer/internal/config"
	"fyviewer/internal/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insetHost struct {
	*fyne.Container
	insets geometry.Insets
}

func (h insetHost) SafeArea() geometry.Insets { return h.insets }

func newHost(w, h float32) *fyne.Container {
	c := container.NewWithoutLayout()
	c.Resize(fyne.NewSize(w, h))
	return c
}

func contains(c *fyne.Container, obj fyne.CanvasObject) bool {
	for _, o := range c.Objects {
		if o == obj {
			return true
		}
	}
	return false
}

func TestAttachMovesBetweenHosts(t *testing.T) {
	test.NewTempApp(t)
	nav := NewNavigationBar(config.New(), config.DefaultSettings(), anim.NewManual())
	a, b := newHost(320, 480), newHost(320, 480)

	assert.Equal(t, Unattached, nav.Attachment())
	nav.Attach(a, AttachedToSource)
	assert.True(t, contains(a, nav))
	assert.Equal(t, AttachedToSource, nav.Attachment())

	nav.Attach(b, AttachedToContainer)
	assert.False(t, contains(a, nav))
	assert.True(t, contains(b, nav))
	assert.Equal(t, AttachedToContainer, nav.Attachment())

	nav.Detach()
	assert.False(t, contains(b, nav))
	assert.Nil(t, nav.Host())
	assert.Equal(t, Unattached, nav.Attachment())

	nav.Attach(a, AttachedToDestination)
	nav.Attach(nil, AttachedToSource)
	assert.False(t, contains(a, nav))
	assert.Equal(t, Unattached, nav.Attachment())
}

func TestFrameFollowsEdgeAndSafeArea(t *testing.T) {
	test.NewTempApp(t)
	s := config.DefaultSettings()
	nav := NewNavigationBar(config.New(), s, anim.NewManual())
	bar := NewBottomToolBar(config.New(), s, anim.NewManual())

	host := insetHost{Container: newHost(320, 480), insets: geometry.Insets{Top: 20, Bottom: 10}}
	nav.Attach(host, AttachedToDestination)
	bar.Attach(host, AttachedToDestination)

	assert.Equal(t, geometry.NewRect(0, 0, 320, navBarHeight+20), nav.Frame())
	h := bar.contentHeight() + 10
	assert.Equal(t, geometry.NewRect(0, 480-h, 320, h), bar.Frame())
	assert.Equal(t, fyne.NewPos(0, 480-h), bar.Position())

	nav.SetOffset(-200)
	assert.Equal(t, fyne.NewPos(0, -200), nav.Position())
	assert.Equal(t, float32(-200), nav.Offset())
}

func TestToggleIgnoredMidFade(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	nav := NewNavigationBar(config.New(), config.DefaultSettings(), m)
	nav.Attach(newHost(320, 480), AttachedToDestination)

	require.True(t, nav.ToggleVisible())
	m.Step(0.5)
	assert.Greater(t, nav.Alpha(), float32(0))
	assert.Less(t, nav.Alpha(), float32(1))
	assert.False(t, nav.ToggleVisible())
	assert.Equal(t, 1, m.Pending())

	m.Finish()
	assert.Equal(t, float32(0), nav.Alpha())
	assert.False(t, nav.Visible())

	require.True(t, nav.ToggleVisible())
	m.Finish()
	assert.Equal(t, float32(1), nav.Alpha())
	assert.True(t, nav.Visible())
}

func TestAttachStopsFade(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	nav := NewNavigationBar(config.New(), config.DefaultSettings(), m)
	nav.Attach(newHost(320, 480), AttachedToDestination)

	require.True(t, nav.ToggleVisible())
	m.Step(0.5)
	faded := nav.Alpha()
	other := newHost(320, 480)
	nav.Attach(other, AttachedToContainer)
	assert.False(t, nav.Fading())

	nav.SetAlpha(0.7)
	m.Step(0.9)
	assert.Equal(t, float32(0.7), nav.Alpha())
	m.Finish()
	assert.Equal(t, float32(0.7), nav.Alpha())
	assert.NotEqual(t, faded, nav.Alpha())

	nav.SetAlpha(1)
	require.True(t, nav.ToggleVisible())
	m.Finish()
	assert.Equal(t, float32(0), nav.Alpha())
}

func TestToggleIgnoredAtIntermediateAlpha(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	bar := NewBottomToolBar(config.New(), config.DefaultSettings(), m)
	bar.SetAlpha(0.5)
	assert.False(t, bar.ToggleVisible())
	assert.Equal(t, 0, m.Pending())
}

func TestNavigationBarButtonsFollowHooks(t *testing.T) {
	test.NewTempApp(t)
	var anchors []fyne.CanvasObject
	cfg := config.New(
		config.OnShare(func(a fyne.CanvasObject) { anchors = append(anchors, a) }),
		config.OnDelete(func(a fyne.CanvasObject) { anchors = append(anchors, a) }),
	)
	nav := NewNavigationBar(cfg, config.DefaultSettings(), anim.NewManual())
	assert.Nil(t, nav.action)
	assert.Nil(t, nav.download)
	require.NotNil(t, nav.share)
	require.NotNil(t, nav.delete)
	assert.Len(t, nav.right, 2)

	nav.SetActionEnabled(false)
	assert.False(t, nav.ActionEnabled())
	test.Tap(nav.share)
	assert.Empty(t, anchors)

	nav.SetActionEnabled(true)
	test.Tap(nav.share)
	test.Tap(nav.delete)
	assert.Equal(t, []fyne.CanvasObject{nav.share, nav.delete}, anchors)

	closed := false
	nav.OnClose = func() { closed = true }
	test.Tap(nav.close)
	assert.True(t, closed)
}

func TestCopyCallsHookBeforeSwapAndRevertsOnce(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	s := config.DefaultSettings()
	var events []string
	var bar *BottomToolBar
	cfg := config.New(
		config.WithCopyURL("https://example.com/a.png"),
		config.WithStyles([]string{"URL", "Markdown"}, 1),
		config.OnCopyURL(func(i int) {
			events = append(events, "copy")
			assert.Equal(t, 1, i)
			assert.Equal(t, 0, m.Pending())
		}),
	)
	bar = NewBottomToolBar(cfg, s, m)

	test.Tap(bar.copy)
	require.Equal(t, []string{"copy"}, events)
	m.Finish()
	assert.True(t, bar.ShowingCopyMessage())
	assert.Equal(t, "Copied", bar.url.message.Text)

	// A second copy inside the window replaces the pending revert.
	m.Advance(s.CopyRevertDelay / 2)
	bar.CopyURL()
	m.Finish()
	m.Advance(s.CopyRevertDelay / 2)
	assert.Equal(t, 0, m.Pending())
	assert.True(t, bar.ShowingCopyMessage())

	m.Advance(s.CopyRevertDelay / 2)
	require.Equal(t, 1, m.Pending())
	m.Finish()
	assert.False(t, bar.ShowingCopyMessage())
	assert.Equal(t, "https://example.com/a.png", bar.CopyURLText())
	assert.Equal(t, []string{"copy", "copy"}, events)
}

func TestCopyWithoutHookIsInert(t *testing.T) {
	test.NewTempApp(t)
	m := anim.NewManual()
	bar := NewBottomToolBar(config.New(config.WithCopyURL("x")), config.DefaultSettings(), m)
	bar.CopyURL()
	assert.Equal(t, 0, m.Pending())
	assert.False(t, bar.ShowingCopyMessage())
}

func TestDragToCopyFiresOncePerDrag(t *testing.T) {
	test.NewTempApp(t)
	copies := 0
	cfg := config.New(config.OnCopyURL(func(int) { copies++ }))
	bar := NewBottomToolBar(cfg, config.DefaultSettings(), anim.NewManual())

	drag := &fyne.DragEvent{Dragged: fyne.Delta{DX: 25}}
	bar.url.Dragged(drag)
	assert.Equal(t, 0, copies)
	bar.url.Dragged(drag)
	bar.url.Dragged(drag)
	assert.Equal(t, 1, copies)
	bar.url.DragEnd()

	bar.url.Dragged(&fyne.DragEvent{Dragged: fyne.Delta{DX: -50}})
	assert.Equal(t, 2, copies)
}

func TestStyleChangeForwardsIndex(t *testing.T) {
	test.NewTempApp(t)
	var got []int
	cfg := config.New(
		config.WithStyles([]string{"a", "b", "c"}, 0),
		config.OnStyleChange(func(i int) { got = append(got, i) }),
	)
	bar := NewBottomToolBar(cfg, config.DefaultSettings(), anim.NewManual())
	bar.styles.Resize(fyne.NewSize(300, 28))

	test.TapAt(bar.styles, fyne.NewPos(250, 10))
	test.TapAt(bar.styles, fyne.NewPos(260, 10))
	assert.Equal(t, []int{2}, got)
	assert.Equal(t, 2, bar.StyleIndex())
}

func TestFadeHidesAtZeroAlpha(t *testing.T) {
	test.NewTempApp(t)
	bar := NewBottomToolBar(config.New(), config.DefaultSettings(), anim.NewManual())
	bar.SetAlpha(0)
	assert.False(t, bar.Visible())
	bar.SetAlpha(0.3)
	assert.True(t, bar.Visible())
}
