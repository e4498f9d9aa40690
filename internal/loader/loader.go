package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
)

// ErrEmptyRef is returned when there is nothing to fetch.
var ErrEmptyRef = errors.New("empty image reference")

const (
	defaultTimeout = 30 * time.Second
	maxRemoteBytes = 64 << 20
)

// Loader fetches images from files or HTTP URLs, keeping the raw bytes of
// remote images in an optional Cache.
type Loader struct {
	cache    *Cache
	client   *http.Client
	logger   LoggerFunc
	dispatch func(func())
}

// Option configures a Loader.
type Option func(*Loader)

// WithCache stores fetched remote images in c.
func WithCache(c *Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// WithHTTPClient replaces the client used for remote images.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger.
func WithLogger(fn LoggerFunc) Option {
	return func(l *Loader) { l.logger = fn }
}

// WithDispatch sets how completions reach the UI goroutine. The default is
// fyne.Do.
func WithDispatch(fn func(func())) Option {
	return func(l *Loader) { l.dispatch = fn }
}

// New creates a loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: defaultTimeout},
		dispatch: fyne.Do,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) logMessage(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger(fmt.Sprintf(format, args...))
	} else {
		log.Printf(format, args...)
	}
}

// Load fetches ref in the background and calls done on the UI goroutine. The
// placeholder is what the caller shows meanwhile and is not used here.
func (l *Loader) Load(ref string, _ image.Image, done func(image.Image, error)) {
	go func() {
		img, err := l.Fetch(ref)
		l.dispatch(func() {
			done(img, err)
		})
	}()
}

// Fetch fetches and decodes ref synchronously.
func (l *Loader) Fetch(ref string) (image.Image, error) {
	data, err := l.FetchBytes(context.Background(), ref)
	if err != nil {
		return nil, err
	}
	img, _, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return img, nil
}

// IsRemote reports whether ref is an HTTP URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// FetchBytes returns the raw bytes of ref. Remote references are served from
// the cache when present and stored in it otherwise.
func (l *Loader) FetchBytes(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	if !IsRemote(ref) {
		return readFile(ref)
	}

	if l.cache != nil {
		data, ok, err := l.cache.Get(ref)
		if err != nil {
			l.logMessage("Cache read failed for %s: %v", ref, err)
		} else if ok {
			return data, nil
		}
	}

	data, err := l.download(ctx, ref)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		if err := l.cache.Put(ref, data); err != nil {
			l.logMessage("Cache write failed for %s: %v", ref, err)
		}
	}
	return data, nil
}

func readFile(ref string) ([]byte, error) {
	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("invalid file URL %s: %w", ref, err)
		}
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

func (l *Loader) download(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URL %s: %w", ref, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", ref, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: %s", ref, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return data, nil
}
