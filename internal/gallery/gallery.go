package gallery

import (
	"errors"
	"fmt"
	"image"
	"net/url"
	"os"

	"fyviewer/internal/anim"
	"fyviewer/internal/config"
	"fyviewer/internal/loader"
	"fyviewer/internal/stage"
	"fyviewer/internal/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ErrViewerOpen is returned when opening an item while another is shown.
var ErrViewerOpen = errors.New("a viewer is already open")

const dateLayout = "02 Jan 2006 15:04"

// Gallery is a grid of thumbnails on a stage. Tapping a thumbnail presents
// the viewer for it.
type Gallery struct {
	window   fyne.Window
	settings config.Settings
	runner   anim.Runner
	loader   *loader.Loader
	thumbs   *loader.Thumbnails

	stage *stage.Stage
	base  *fyne.Container
	grid  *fyne.Container
	count *widget.Label
	logs  *StatusLog
	tiles []*tile

	current     *viewer.Controller
	currentTile *tile
	removing    *tile

	// Replaceable for tests.
	setClipboard func(string)
	openURL      func(*url.URL) error
	confirm      func(title, message string, callback func(bool))
	removeFile   func(string) error
}

// New builds a gallery of items for win. Loader options are applied after
// the gallery's own, so they can override the logger or dispatch.
func New(win fyne.Window, items []Item, settings config.Settings, runner anim.Runner, opts ...loader.Option) *Gallery {
	g := &Gallery{
		window:     win,
		settings:   settings,
		runner:     runner,
		count:      widget.NewLabel(""),
		logs:       NewStatusLog(DefaultStatusHistory),
		removeFile: os.Remove,
	}
	g.setClipboard = func(s string) { fyne.CurrentApp().Clipboard().SetContent(s) }
	g.openURL = fyne.CurrentApp().OpenURL
	g.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, g.window)
	}

	g.loader = loader.New(append([]loader.Option{loader.WithLogger(g.logs.Log)}, opts...)...)
	g.thumbs = loader.NewThumbnails(g.loader)

	g.grid = container.NewGridWrap(fyne.NewSize(tileSize, tileSize+labelHeight))
	g.base = container.NewBorder(nil, g.logs.Bar(g.count), nil, nil, container.NewVScroll(g.grid))

	var c fyne.Canvas
	if win != nil {
		c = win.Canvas()
	}
	g.stage = stage.New(g.base, c)
	g.stage.Logger = g.logs.Log

	for _, it := range items {
		g.addTile(it)
	}
	g.updateCount()
	return g
}

func (g *Gallery) addTile(it Item) {
	var t *tile
	placeholder := g.thumbs.Get(it.Ref(), func(th loader.Thumb) {
		if t != nil {
			t.setThumb(th)
		}
	})
	t = newTile(g, it, placeholder)
	if th, ok := g.thumbs.Lookup(it.Ref()); ok {
		t.setThumb(th)
	}
	g.tiles = append(g.tiles, t)
	g.grid.Add(t)
}

func (g *Gallery) removeTile(t *tile) {
	for i, other := range g.tiles {
		if other == t {
			g.tiles = append(g.tiles[:i], g.tiles[i+1:]...)
			break
		}
	}
	g.grid.Remove(t)
	g.updateCount()
}

func (g *Gallery) updateCount() {
	g.count.SetText(fmt.Sprintf("Count: %d", len(g.tiles)))
}

// Content is the object to put in the window.
func (g *Gallery) Content() fyne.CanvasObject {
	return g.stage.Content()
}

// Stage returns the stage the viewer is presented on.
func (g *Gallery) Stage() *stage.Stage {
	return g.stage
}

// Items returns the items currently in the grid.
func (g *Gallery) Items() []Item {
	items := make([]Item, len(g.tiles))
	for i, t := range g.tiles {
		items[i] = t.item
	}
	return items
}

// Current returns the open viewer, or nil.
func (g *Gallery) Current() *viewer.Controller {
	return g.current
}

// Logs returns the status log.
func (g *Gallery) Logs() *StatusLog {
	return g.logs
}

// Log adds a message to the status log from any goroutine.
func (g *Gallery) Log(message string) {
	g.logs.Log(message)
}

func (g *Gallery) logMessage(format string, args ...interface{}) {
	g.logs.Logf(format, args...)
}

// Open presents the viewer for the item at index.
func (g *Gallery) Open(index int) error {
	if index < 0 || index >= len(g.tiles) {
		return fmt.Errorf("no item at index %d", index)
	}
	return g.OpenItem(g.tiles[index])
}

// OpenItem presents the viewer for the item of t.
func (g *Gallery) OpenItem(t *tile) error {
	if g.current != nil || g.stage.Busy() {
		return ErrViewerOpen
	}
	it := t.item
	var ctrl *viewer.Controller
	opts := []config.Option{
		config.WithName(it.DisplayName()),
		config.WithCopyURL(it.CopyURLFor(0)),
		config.OnClose(func() { g.logMessage("Closing %s", it.DisplayName()) }),
		config.OnAction(func(anchor fyne.CanvasObject) { g.showActions(ctrl, it, anchor) }),
		config.OnShare(func(fyne.CanvasObject) { g.open(it.CopyURLFor(ctrl.ToolBar().StyleIndex())) }),
		config.OnDownload(func(fyne.CanvasObject) { g.open(it.Ref()) }),
		config.OnCopyURL(func(index int) {
			g.setClipboard(it.CopyURLFor(index))
			g.logMessage("Copied link for %s", it.DisplayName())
		}),
		config.OnStyleChange(func(index int) {
			ctrl.SetCopyURL(it.CopyURLFor(index))
			g.logMessage("Style of %s changed to %d", it.DisplayName(), index)
		}),
		config.OnFinish(g.finished),
	}
	if t.thumb != nil {
		opts = append(opts, config.WithImage(t.thumb))
	}
	if titles := it.StyleTitles(); len(titles) > 0 {
		opts = append(opts, config.WithStyles(titles, 0))
	}

	var ld viewer.Loader
	if loader.IsRemote(it.Ref()) {
		ld = g.loader
		opts = append(opts, config.WithImageRef(it.Ref()))
	} else {
		opts = append(opts, g.localOptions(it)...)
		opts = append(opts, config.OnDelete(func(fyne.CanvasObject) { g.confirmDelete(t) }))
	}

	ctrl = viewer.New(config.New(opts...), g.settings, g.runner, g.stage, ld)
	ctrl.Logger = g.logs.Log
	ctrl.SetSafeArea(g.stage.Layer().SafeArea)
	if err := g.stage.Present(ctrl, t.screen()); err != nil {
		ctrl.Release()
		return err
	}
	g.current, g.currentTile = ctrl, t
	return nil
}

// localOptions reads the file of it for the image and its details.
func (g *Gallery) localOptions(it Item) []config.Option {
	info, img, err := loader.Info(it.Path)
	if err != nil {
		// The viewer shows its error state for an empty block.
		g.logMessage("Failed to read %s: %v", it.Path, err)
		return []config.Option{config.WithImageBlock(func(done func(image.Image)) { done(nil) })}
	}
	date := info.ModTime.Format(dateLayout)
	if d, ok := info.EXIFData["DateTime"]; ok {
		date = d
	}
	return []config.Option{
		config.WithImage(img),
		config.WithDate(date),
		config.WithSize(fmt.Sprintf("%dx%d, %s", info.Width, info.Height, loader.FormatSize(info.Size))),
	}
}

func (g *Gallery) open(ref string) {
	u, err := url.Parse(ref)
	if err != nil {
		g.logMessage("Invalid link %s: %v", ref, err)
		return
	}
	if u.Scheme == "" {
		u = &url.URL{Scheme: "file", Path: ref}
	}
	if err := g.openURL(u); err != nil {
		g.logMessage("Failed to open %s: %v", u, err)
	}
}

func (g *Gallery) showActions(ctrl *viewer.Controller, it Item, anchor fyne.CanvasObject) {
	if g.window == nil {
		return
	}
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Copy link", func() { ctrl.ToolBar().CopyURL() }),
		fyne.NewMenuItem("Open original", func() { g.open(it.Ref()) }),
		fyne.NewMenuItem("Hide controls", ctrl.ToggleChrome),
	)
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(anchor).AddXY(0, anchor.Size().Height)
	widget.ShowPopUpMenuAtPosition(menu, g.window.Canvas(), pos)
}

func (g *Gallery) confirmDelete(t *tile) {
	g.confirm("Delete file!", "Are you sure?\n This action can't be undone.", func(ok bool) {
		if ok {
			g.deleteItem(t)
		}
	})
}

func (g *Gallery) deleteItem(t *tile) {
	if err := g.removeFile(t.item.Path); err != nil {
		g.logMessage("Error deleting file: %v", err)
		if g.window != nil {
			dialog.ShowError(err, g.window)
		}
		return
	}
	g.logMessage("Deleted %s", t.item.DisplayName())
	if g.current != nil && g.currentTile == t {
		// The tile goes once the viewer has flown back to it.
		g.removing = t
		g.current.Close()
		return
	}
	g.removeTile(t)
}

func (g *Gallery) finished() {
	g.logMessage("Viewer closed")
	g.current, g.currentTile = nil, nil
	if g.removing != nil {
		g.removeTile(g.removing)
		g.removing = nil
	}
}

// TypedKey forwards keys to the open viewer.
func (g *Gallery) TypedKey(ev *fyne.KeyEvent) {
	if g.current != nil {
		g.current.TypedKey(ev)
		return
	}
	if ev.Name == fyne.KeyReturn && len(g.tiles) > 0 {
		if err := g.Open(0); err != nil {
			g.logMessage("Cannot open: %v", err)
		}
	}
}
