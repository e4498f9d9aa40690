// Package config carries the parameters of one viewer session and the tunable
// settings of the viewer.
package config

import (
	"image"

	"fyne.io/fyne/v2"
)

// DefaultCopyMessage is shown after the URL was copied when no message is configured.
const DefaultCopyMessage = "Copied"

// DefaultErrorMessage is shown when the image could not be loaded.
const DefaultErrorMessage = "The image could not be loaded."

// ImageBlock asynchronously produces an image. It must call done exactly once.
type ImageBlock func(done func(image.Image))

// Configuration holds the presentation parameters and callback hooks of one
// viewer session. It is immutable once New returns.
type Configuration struct {
	image       image.Image
	imageView   fyne.CanvasObject
	imageRef    string
	imageBlock  ImageBlock
	name        string
	date        string
	size        string
	copyURL     string
	copyMessage string
	errorMsg    string
	styleTitles []string
	styleIndex  int

	onClose              func()
	onAction             func(anchor fyne.CanvasObject)
	onDelete             func(anchor fyne.CanvasObject)
	onShare              func(anchor fyne.CanvasObject)
	onDownload           func(anchor fyne.CanvasObject)
	onStyleChange        func(index int)
	onCopyURL            func(index int)
	onFinish             func()
	onCopyConfirmMessage func(index int) string
}

// Option sets one field of a Configuration.
type Option func(*Configuration)

// New builds a Configuration from opts.
func New(opts ...Option) *Configuration {
	c := &Configuration{}
	for _, opt := range opts {
		opt(c)
	}
	if c.styleIndex < 0 || c.styleIndex >= len(c.styleTitles) {
		c.styleIndex = 0
	}
	return c
}

// WithImage sets the image known before loading, usually the thumbnail's.
func WithImage(img image.Image) Option { return func(c *Configuration) { c.image = img } }

// WithImageView sets the on-screen thumbnail the viewer flies out of.
func WithImageView(obj fyne.CanvasObject) Option { return func(c *Configuration) { c.imageView = obj } }

// WithImageRef sets the path or URL of the full size image.
func WithImageRef(ref string) Option { return func(c *Configuration) { c.imageRef = ref } }

// WithImageBlock sets a callback producing the full size image.
func WithImageBlock(b ImageBlock) Option { return func(c *Configuration) { c.imageBlock = b } }

// WithName sets the display name.
func WithName(s string) Option { return func(c *Configuration) { c.name = s } }

// WithDate sets the display timestamp.
func WithDate(s string) Option { return func(c *Configuration) { c.date = s } }

// WithSize sets the display size description.
func WithSize(s string) Option { return func(c *Configuration) { c.size = s } }

// WithCopyURL sets the URL text shown in the toolbar.
func WithCopyURL(s string) Option { return func(c *Configuration) { c.copyURL = s } }

// WithCopyMessage sets the confirmation shown after copying.
func WithCopyMessage(s string) Option { return func(c *Configuration) { c.copyMessage = s } }

// WithErrorMessage sets the message shown when loading fails.
func WithErrorMessage(s string) Option { return func(c *Configuration) { c.errorMsg = s } }

// WithStyles sets the style control titles and the initially selected index.
func WithStyles(titles []string, index int) Option {
	return func(c *Configuration) {
		c.styleTitles = append([]string(nil), titles...)
		c.styleIndex = index
	}
}

// OnClose sets the hook run when the close button is pressed.
func OnClose(fn func()) Option { return func(c *Configuration) { c.onClose = fn } }

// OnAction sets the hook of the action button.
func OnAction(fn func(fyne.CanvasObject)) Option { return func(c *Configuration) { c.onAction = fn } }

// OnDelete sets the hook of the delete button.
func OnDelete(fn func(fyne.CanvasObject)) Option { return func(c *Configuration) { c.onDelete = fn } }

// OnShare sets the hook of the share button.
func OnShare(fn func(fyne.CanvasObject)) Option { return func(c *Configuration) { c.onShare = fn } }

// OnDownload sets the hook of the download button.
func OnDownload(fn func(fyne.CanvasObject)) Option { return func(c *Configuration) { c.onDownload = fn } }

// OnStyleChange sets the hook run when another style is selected.
func OnStyleChange(fn func(int)) Option { return func(c *Configuration) { c.onStyleChange = fn } }

// OnCopyURL sets the hook run when the URL is copied. It receives the selected style.
func OnCopyURL(fn func(int)) Option { return func(c *Configuration) { c.onCopyURL = fn } }

// OnFinish sets the hook run once the viewer has been dismissed.
func OnFinish(fn func()) Option { return func(c *Configuration) { c.onFinish = fn } }

// OnCopyConfirmMessage sets a hook producing the confirmation for a style.
func OnCopyConfirmMessage(fn func(int) string) Option {
	return func(c *Configuration) { c.onCopyConfirmMessage = fn }
}

// Image returns the image known before loading.
func (c *Configuration) Image() image.Image { return c.image }

// ImageView returns the thumbnail the viewer was opened from, or nil.
func (c *Configuration) ImageView() fyne.CanvasObject { return c.imageView }

// ImageRef returns the reference of the full size image.
func (c *Configuration) ImageRef() string { return c.imageRef }

// ImageBlock returns the image callback, or nil.
func (c *Configuration) ImageBlock() ImageBlock { return c.imageBlock }

// Name returns the display name.
func (c *Configuration) Name() string { return c.name }

// Date returns the display timestamp.
func (c *Configuration) Date() string { return c.date }

// Size returns the display size.
func (c *Configuration) Size() string { return c.size }

// CopyURL returns the URL text.
func (c *Configuration) CopyURL() string { return c.copyURL }

// StyleTitles returns a copy of the style titles.
func (c *Configuration) StyleTitles() []string { return append([]string(nil), c.styleTitles...) }

// StyleIndex returns the initially selected style.
func (c *Configuration) StyleIndex() int { return c.styleIndex }

// ErrorMessage returns the load failure message.
func (c *Configuration) ErrorMessage() string {
	if c.errorMsg == "" {
		return DefaultErrorMessage
	}
	return c.errorMsg
}

// CopyMessage returns the confirmation for the given style.
func (c *Configuration) CopyMessage(index int) string {
	if c.onCopyConfirmMessage != nil {
		if msg := c.onCopyConfirmMessage(index); msg != "" {
			return msg
		}
	}
	if c.copyMessage == "" {
		return DefaultCopyMessage
	}
	return c.copyMessage
}

// HasAction reports whether an action hook is set.
func (c *Configuration) HasAction() bool { return c.onAction != nil }

// HasDelete reports whether a delete hook is set.
func (c *Configuration) HasDelete() bool { return c.onDelete != nil }

// HasShare reports whether a share hook is set.
func (c *Configuration) HasShare() bool { return c.onShare != nil }

// HasDownload reports whether a download hook is set.
func (c *Configuration) HasDownload() bool { return c.onDownload != nil }

// HasCopy reports whether a copy hook is set.
func (c *Configuration) HasCopy() bool { return c.onCopyURL != nil }

// Close runs the close hook if set.
func (c *Configuration) Close() {
	if c.onClose != nil {
		c.onClose()
	}
}

// Action runs the action hook if set.
func (c *Configuration) Action(anchor fyne.CanvasObject) {
	if c.onAction != nil {
		c.onAction(anchor)
	}
}

// Delete runs the delete hook if set.
func (c *Configuration) Delete(anchor fyne.CanvasObject) {
	if c.onDelete != nil {
		c.onDelete(anchor)
	}
}

// Share runs the share hook if set.
func (c *Configuration) Share(anchor fyne.CanvasObject) {
	if c.onShare != nil {
		c.onShare(anchor)
	}
}

// Download runs the download hook if set.
func (c *Configuration) Download(anchor fyne.CanvasObject) {
	if c.onDownload != nil {
		c.onDownload(anchor)
	}
}

// StyleChanged runs the style hook if set.
func (c *Configuration) StyleChanged(index int) {
	if c.onStyleChange != nil {
		c.onStyleChange(index)
	}
}

// CopyURLFor runs the copy hook if set.
func (c *Configuration) CopyURLFor(index int) {
	if c.onCopyURL != nil {
		c.onCopyURL(index)
	}
}

// Finish runs the finish hook if set.
func (c *Configuration) Finish() {
	if c.onFinish != nil {
		c.onFinish()
	}
}
