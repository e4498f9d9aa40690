package main

import (
	"fmt"
	"log"
	"runtime"

	"fyviewer/internal/anim"
	"fyviewer/internal/gallery"
	"fyviewer/internal/loader"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runGUI(s *Session) error {
	a := app.NewWithID("com.github.fyviewer")
	a.Settings().SetTheme(gallery.NewTheme(a.Settings().Theme()))
	w := a.NewWindow("FyViewer")

	g := gallery.New(w, s.Items, s.Settings, anim.FyneRunner{}, loader.WithCache(s.Cache))
	w.SetContent(g.Content())
	w.Resize(fyne.NewSize(1024, 768))

	// set main mod key to super on darwin hosts, else set it to ctrl
	modKey := fyne.KeyModifierControl
	if runtime.GOOS == "darwin" {
		modKey = fyne.KeyModifierSuper
	}
	w.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: modKey,
	}, func(_ fyne.Shortcut) { a.Quit() })
	w.Canvas().SetOnTypedKey(g.TypedKey)

	w.SetCloseIntercept(func() {
		log.Println("Closing image cache...")
		if err := s.Cache.Close(); err != nil {
			log.Printf("Error closing image cache: %v", err)
		}
		w.Close()
	})

	g.Log(fmt.Sprintf("Loaded %d images", len(s.Items)))
	w.ShowAndRun()
	return nil
}
