package app

import (
	"github.com/bethropolis/quicknotepad/internal/event"
	"github.com/bethropolis/quicknotepad/internal/logger"
)

func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	a.eventManager.Subscribe(event.TypeBufferLoaded, a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.eventManager.Subscribe(event.TypeTabSwitched, a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMoved)
}

// handleBufferModified feeds the edits to the highlighter.
func (a *App) handleBufferModified(e event.Event) bool {
	data, ok := e.Data.(event.BufferModifiedData)
	if !ok {
		logger.Warnf("App: BufferModified event with unexpected data type: %T", e.Data)
		return false
	}
	a.highlightManager.OnBufferModified(data.Edits)
	return false
}

// handleDocumentChanged re-highlights after a different document became live.
func (a *App) handleDocumentChanged(event.Event) bool {
	a.rehighlight()
	return false
}

// handleBufferSaved re-highlights when Save As changed the file's language.
func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok && data.FilePath != a.highlightedPath {
		a.rehighlight()
	}
	return false
}

func (a *App) handleCursorMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) rehighlight() {
	a.highlightedPath = a.editor.GetBuffer().FilePath()
	a.highlightManager.Reset()
}
