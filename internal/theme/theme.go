// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidetap/internal/logger"
	"github.com/bethropolis/tidetap/internal/style"
	"github.com/gdamore/tcell/v2"
)

// Style names the viewer looks up.
const (
	StyleDefault          = "Default"
	StyleLink             = "Link"
	StyleLinkHighlight    = "LinkHighlight"
	StyleAttachment       = "Attachment"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleToolbar          = "Toolbar"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks name up, falling back to the part before the first dot and
// then to the Default style.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Attributes returns the named style as document attributes, so run styles
// and action highlights can be taken from the theme.
func (t *Theme) Attributes(name string) style.Attributes {
	return style.FromTcell(t.GetStyle(name))
}

// Dark is the built-in dark theme.
var Dark Theme

// Light is the built-in light theme.
var Light Theme

type palette struct {
	bar, fg, muted, orange, yellow, green, cyan, blue, magenta tcell.Color
}

func (p palette) theme(name string, dark bool) Theme {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(p.fg)
	bar := tcell.StyleDefault.Background(p.bar).Foreground(p.fg)
	return Theme{
		Name:   name,
		IsDark: dark,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleLink:             base.Foreground(p.blue).Underline(true),
			StyleLinkHighlight:    base.Foreground(p.bar).Background(p.blue),
			StyleAttachment:       base.Foreground(p.magenta).Bold(true),
			StyleStatusBar:        bar,
			StyleStatusBarMessage: bar.Bold(true),
			StyleToolbar:          bar.Foreground(p.yellow),

			"keyword":          base.Foreground(p.blue).Bold(true),
			"string":           base.Foreground(p.green),
			"string.escape":    base.Foreground(p.magenta),
			"comment":          base.Foreground(p.muted).Italic(true),
			"number":           base.Foreground(p.orange),
			"constant":         base.Foreground(p.orange),
			"constant.builtin": base.Foreground(p.orange).Bold(true),
			"type":             base.Foreground(p.cyan),
			"type.builtin":     base.Foreground(p.cyan).Bold(true),
			"function":         base.Foreground(p.yellow),
			"function.method":  base.Foreground(p.yellow),
			"function.builtin": base.Foreground(p.cyan).Italic(true),
			"namespace":        base.Foreground(p.cyan),
			"operator":         base.Foreground(p.fg),
			"punctuation":      base.Foreground(p.muted),
			"variable":         base.Foreground(p.fg),
			"variable.member":  base.Foreground(p.fg),
			"property":         base.Foreground(p.fg),
			"label":            base.Foreground(p.fg),
		},
	}
}

func init() {
	Dark = palette{
		bar:     tcell.NewHexColor(0x2a2f38),
		fg:      tcell.NewHexColor(0xc5cdd9),
		muted:   tcell.NewHexColor(0x5c6370),
		orange:  tcell.NewHexColor(0xd19a66),
		yellow:  tcell.NewHexColor(0xe5c07b),
		green:   tcell.NewHexColor(0x98c379),
		cyan:    tcell.NewHexColor(0x56b6c2),
		blue:    tcell.NewHexColor(0x61afef),
		magenta: tcell.NewHexColor(0xc678dd),
	}.theme("Dark", true)

	Light = palette{
		bar:     tcell.NewHexColor(0xe5e5e6),
		fg:      tcell.NewHexColor(0x383a42),
		muted:   tcell.NewHexColor(0xa0a1a7),
		orange:  tcell.NewHexColor(0x986801),
		yellow:  tcell.NewHexColor(0xc18401),
		green:   tcell.NewHexColor(0x50a14f),
		cyan:    tcell.NewHexColor(0x0184bc),
		blue:    tcell.NewHexColor(0x4078f2),
		magenta: tcell.NewHexColor(0xa626a4),
	}.theme("Light", false)
}
