package app

import (
	"path/filepath"

	"github.com/bethropolis/quicknotepad/internal/config"
	"github.com/bethropolis/quicknotepad/internal/statusbar"
	"github.com/bethropolis/quicknotepad/internal/theme"
	"github.com/bethropolis/quicknotepad/internal/tui"
)

// draw redraws the whole screen.
func (a *App) draw() {
	a.updateStatusBarContent()
	th := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	if a.cfg.Editor.HeaderHeight > 0 {
		var labels []tui.TabLabel
		for _, t := range a.tabs.Tabs() {
			labels = append(labels, tui.TabLabel{Name: t.Name(), Modified: t.Modified()})
		}
		tui.DrawHeader(a.tuiManager, labels, a.tabs.ActiveIndex(), th)
	}
	tui.DrawBuffer(a.tuiManager, a.editor, th)

	statusY := height - a.cfg.Editor.StatusBarHeight
	if promptX, ok := a.statusBar.Draw(screen, width, statusY); ok {
		screen.ShowCursor(promptX, statusY)
	} else {
		tui.DrawCursor(a.tuiManager, a.editor)
	}
	a.tuiManager.Show()
}

// updateStatusBarContent pushes the live document state to the status bar.
func (a *App) updateStatusBarContent() {
	tab := a.tabs.Current()
	buf := a.editor.GetBuffer()
	name := ""
	if p := buf.FilePath(); p != "" {
		name = filepath.Base(p)
	}
	a.statusBar.SetFileInfo(name, tab.FileType, buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
}

// SetTheme activates a theme and restyles the screen and status bar.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	th := a.themeManager.Current()
	a.tuiManager.SetTheme(th)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th, config.MessageTimeout))
	return nil
}

// GetTheme returns the active theme.
func (a *App) GetTheme() *theme.Theme { return a.themeManager.Current() }

// ListThemes returns the names of the loaded themes.
func (a *App) ListThemes() []string { return a.themeManager.ListThemes() }

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
}
