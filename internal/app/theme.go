package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ScrimDemoTheme provides a custom theme for the demo application.
type ScrimDemoTheme struct{}

var _ fyne.Theme = (*ScrimDemoTheme)(nil)

func (t *ScrimDemoTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x3F, G: 0x51, B: 0xB5, A: 0xFF} // Indigo accent
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x26, G: 0x2B, B: 0x33, A: 0xFF} // Slate buttons
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ScrimDemoTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ScrimDemoTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ScrimDemoTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6 // Roomier layout for the demo controls
	default:
		return theme.DefaultTheme().Size(name)
	}
}
