// Package theme holds named tcell styles for the editor UI and syntax highlighting.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/quicknotepad/internal/logger"
)

// Theme maps style names ("keyword", "StatusBar", ...) to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name. A dotted name such as
// "keyword.control" falls back to its base ("keyword"), then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, using Default", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': neither '%s' nor 'Default' defined, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// UI style names the renderer asks for.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleSearchHighlight   = "SearchHighlight"
	StyleSearchCurrent     = "SearchCurrent"
	StyleMargin            = "Margin"
	StyleMarginCurrent     = "MarginCurrent"
	StyleHeader            = "Header"
	StyleTabActive         = "TabActive"
	StyleTabInactive       = "TabInactive"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarPrompt   = "StatusBarPrompt"
)

// DevComfortDark is the built-in default theme.
var DevComfortDark = newDevComfortDark()

func newDevComfortDark() Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	// Terminal background, palette foreground.
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	bar := tcell.StyleDefault.Background(bg).Foreground(fg)

	return Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Reverse(true),
			StyleSearchHighlight:   tcell.StyleDefault.Background(orange).Foreground(tcell.ColorBlack),
			StyleSearchCurrent:     tcell.StyleDefault.Background(yellow).Foreground(tcell.ColorBlack).Bold(true),
			StyleMargin:            base.Foreground(muted),
			StyleMarginCurrent:     base.Foreground(fg).Bold(true),
			StyleHeader:            bar,
			StyleTabActive:         tcell.StyleDefault.Background(blue).Foreground(tcell.ColorBlack).Bold(true),
			StyleTabInactive:       bar.Foreground(muted),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(yellow),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarPrompt:   bar.Foreground(green).Bold(true),

			"keyword":       base.Foreground(blue).Bold(true),
			"string":        base.Foreground(green),
			"string.escape": base.Foreground(magenta),
			"comment":       base.Foreground(muted).Italic(true),
			"number":        base.Foreground(orange),
			"constant":      base.Foreground(orange),
			"type":          base.Foreground(cyan),
			"namespace":     base.Foreground(cyan),
			"function":      base.Foreground(yellow),
			"variable":      base,
			"operator":      base,
			"punctuation":   base.Foreground(muted),
		},
	}
}
