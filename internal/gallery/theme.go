package gallery

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const compactPadding = 2

// viewerTheme wraps an existing theme with tighter padding for the grid and
// always uses the dark variant, which suits a black viewer backdrop.
type viewerTheme struct {
	fyne.Theme
}

var _ fyne.Theme = (*viewerTheme)(nil)

// Size reduces the padding and keeps every other size.
func (t *viewerTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return compactPadding
	}
	return t.Theme.Size(name)
}

// Color resolves every color in the dark variant.
func (t *viewerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, theme.VariantDark)
}

// NewTheme returns base with the gallery's adjustments.
func NewTheme(base fyne.Theme) fyne.Theme {
	return &viewerTheme{Theme: base}
}
