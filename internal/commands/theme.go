// Package commands holds editor commands that act on the application
// rather than on the document.
package commands

import (
	"strings"

	"github.com/bethropolis/quicknotepad/internal/theme"
)

// ThemeAPI is the part of the application the theme commands drive.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// CycleTheme activates the theme after the current one, in ListThemes
// order, wrapping at the end.
func CycleTheme(api ThemeAPI) error {
	themes := api.ListThemes()
	if len(themes) == 0 {
		api.SetStatusMessage("No themes available")
		return nil
	}
	current := api.GetTheme()
	next := themes[0]
	for i, name := range themes {
		if current != nil && strings.EqualFold(name, current.Name) {
			next = themes[(i+1)%len(themes)]
			break
		}
	}
	if err := api.SetTheme(next); err != nil {
		api.SetStatusMessage("Theme '%s' could not be set: %v", next, err)
		return err
	}
	api.SetStatusMessage("Theme set to: %s (%d of %d)", next, indexOf(themes, next)+1, len(themes))
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
