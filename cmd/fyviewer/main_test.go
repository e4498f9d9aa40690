package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyviewer/internal/loader"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommandC executes a cobra command and captures its output.
func executeCommandC(root *cobra.Command, args ...string) (string, string, error) {
	actualStdout := new(bytes.Buffer)
	actualStderr := new(bytes.Buffer)
	root.SetOut(actualStdout)
	root.SetErr(actualStderr)
	root.SetArgs(args)

	err := root.Execute()

	return actualStdout.String(), actualStderr.String(), err
}

// newTestRoot returns a root command that records the GUI session instead of
// opening a window.
func newTestRoot(t *testing.T) (*cobra.Command, **Session) {
	t.Helper()
	var got *Session
	quiet := func(dir string, _ loader.LoggerFunc) (*loader.Cache, error) {
		return loader.OpenCache(dir, func(string) {})
	}
	root := NewRootCmd(quiet, func(s *Session) error {
		got = s
		return nil
	})
	return root, &got
}

func writeImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, w, h))))
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestRootHelp(t *testing.T) {
	root, _ := newTestRoot(t)
	stdout, stderr, err := executeCommandC(root, "--help")
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "fyviewer [dir]")
	assert.Contains(t, stdout, "--pattern")
}

func TestRootScansDirectory(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "a.png", 4, 4)
	writeImage(t, dir, "nested/b.png", 4, 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	root, got := newTestRoot(t)
	stdout, stderr, err := executeCommandC(root, "--cache-dir", t.TempDir(), dir)
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	require.NotNil(t, *got)
	assert.Len(t, (*got).Items, 2)
	assert.Equal(t, "a.png", (*got).Items[0].Name)
	assert.NotNil(t, (*got).Cache)

	root, got = newTestRoot(t)
	_, _, err = executeCommandC(root, "--cache-dir", t.TempDir(), "--pattern", "nested/**", dir)
	require.NoError(t, err)
	require.Len(t, (*got).Items, 1)
	assert.Equal(t, "b.png", (*got).Items[0].Name)
}

func TestRootNoImages(t *testing.T) {
	root, got := newTestRoot(t)
	stdout, _, err := executeCommandC(root, "--cache-dir", t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No images found.")
	assert.Nil(t, *got)
}

func TestRootManifestAndSettings(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "m.png", 2, 2)
	manifest := filepath.Join(dir, "gallery.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("items:\n  - name: Mine\n    path: m.png\n"), 0644))
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("max_zoom: 4\ncopy_revert_delay: 2s\n"), 0644))

	root, got := newTestRoot(t)
	stdout, stderr, err := executeCommandC(root, "--cache-dir", t.TempDir(), "--manifest", manifest, "--settings", settings)
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	require.Len(t, (*got).Items, 1)
	assert.Equal(t, "Mine", (*got).Items[0].Name)
	assert.Equal(t, filepath.Join(dir, "m.png"), (*got).Items[0].Path)
	assert.Equal(t, float32(4), (*got).Settings.MaxZoom)
	assert.Equal(t, 2*time.Second, (*got).Settings.CopyRevertDelay)

	root, _ = newTestRoot(t)
	_, _, err = executeCommandC(root, "--manifest", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSettingsCommand(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("dismiss_threshold: 0.5\n"), 0644))

	root, _ := newTestRoot(t)
	stdout, _, err := executeCommandC(root, "settings", "--settings", settings)
	require.NoError(t, err)
	assert.Contains(t, stdout, "dismiss_threshold:     0.5")

	root, _ = newTestRoot(t)
	_, _, err = executeCommandC(root, "settings", "--settings", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestInfoCommand(t *testing.T) {
	path := writeImage(t, t.TempDir(), "info.png", 12, 7)
	root, _ := newTestRoot(t)
	stdout, stderr, err := executeCommandC(root, "info", path)
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "File:     info.png")
	assert.Contains(t, stdout, "Format:   png")
	assert.Contains(t, stdout, "Size:     12x7")

	root, _ = newTestRoot(t)
	_, _, err = executeCommandC(root, "info", filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestCacheCommands(t *testing.T) {
	cacheDir := t.TempDir()
	c, err := loader.OpenCache(cacheDir, func(string) {})
	require.NoError(t, err)
	require.NoError(t, c.Put("https://example.com/a.png", []byte("abcd")))
	require.NoError(t, c.Close())

	root, _ := newTestRoot(t)
	stdout, _, err := executeCommandC(root, "--cache-dir", cacheDir, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Entries: 1")
	assert.Contains(t, stdout, "Size:    4 B")

	root, _ = newTestRoot(t)
	stdout, _, err = executeCommandC(root, "--cache-dir", cacheDir, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed 1 cached images.")

	root, _ = newTestRoot(t)
	stdout, _, err = executeCommandC(root, "--cache-dir", cacheDir, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Entries: 0")
}
