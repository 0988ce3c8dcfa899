package core

import (
	"fmt"

	"github.com/bethropolis/quicknotepad/internal/core/find"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/core/text"
	"github.com/bethropolis/quicknotepad/internal/event"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// record pushes a change onto the history and announces it.
func (e *Editor) record(c text.Change, ok bool) bool {
	if !ok {
		return false
	}
	e.history.Push(c.Op)
	e.afterEdit(c.Edits)
	return true
}

func (e *Editor) afterEdit(edits []types.EditInfo) {
	e.buffer.SetModified(true)
	if e.findManager.Active() {
		e.findManager.Refresh(e.GetCursor())
	}
	e.dispatch(event.TypeBufferModified, event.BufferModifiedData{Edits: edits})
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		UndoLen: e.history.UndoLen(),
		RedoLen: e.history.RedoLen(),
	})
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
}

// InsertChar types one grapheme cluster at the cursor.
func (e *Editor) InsertChar(g string) bool { return e.record(e.textOps.InsertChar(g)) }

func (e *Editor) InsertTab() bool { return e.record(e.textOps.InsertChar("\t")) }

func (e *Editor) InsertNewline() bool { return e.record(e.textOps.InsertNewline()) }

func (e *Editor) Backspace() bool { return e.record(e.textOps.Backspace()) }

func (e *Editor) DeleteForward() bool { return e.record(e.textOps.DeleteForward()) }

func (e *Editor) DeleteSelection() bool { return e.record(e.textOps.DeleteSelection()) }

// InsertText inserts text at the cursor, replacing any selection.
func (e *Editor) InsertText(s string) bool { return e.record(e.textOps.InsertText(s)) }

// Copy puts the selection on the clipboard.
func (e *Editor) Copy() bool { return e.clipboardManager.Copy() }

func (e *Editor) Cut() bool { return e.record(e.clipboardManager.Cut()) }

func (e *Editor) Paste() bool { return e.record(e.clipboardManager.Paste()) }

// Undo reverts the most recent operation and restores the cursor and scroll
// observed before it. It reports false when there is nothing to undo.
func (e *Editor) Undo() bool {
	op, ok := e.history.Undo()
	if !ok {
		return false
	}
	edits := history.Reverse(e.buffer, op.Edit)
	e.selectionManager.ClearSelection()
	e.cursorManager.Restore(op.CursorBefore, op.ScrollBefore)
	logger.DebugTagf("core", "Editor: undo %s -> cursor %v", op.Edit.Kind(), e.GetCursor())
	e.afterEdit(edits)
	return true
}

// Redo re-applies the most recently undone operation.
func (e *Editor) Redo() bool {
	op, ok := e.history.Redo()
	if !ok {
		return false
	}
	edits := history.Apply(e.buffer, op.Edit)
	e.selectionManager.ClearSelection()
	e.cursorManager.Restore(op.CursorAfter, op.ScrollAfter)
	logger.DebugTagf("core", "Editor: redo %s -> cursor %v", op.Edit.Kind(), e.GetCursor())
	e.afterEdit(edits)
	return true
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// --- Movement ---

// Movement names a cursor motion.
type Movement int

const (
	MoveLeft Movement = iota
	MoveRight
	MoveUp
	MoveDown
	MovePageUp
	MovePageDown
	MoveLineStart
	MoveLineEnd
	MoveDocStart
	MoveDocEnd
)

// Move moves the cursor. With extend the selection grows from where the
// cursor was; without it any selection is dropped.
func (e *Editor) Move(m Movement, extend bool) {
	before := e.GetCursor()
	if !extend {
		e.selectionManager.ClearSelection()
	}

	switch m {
	case MoveLeft:
		e.cursorManager.MoveLeft()
	case MoveRight:
		e.cursorManager.MoveRight()
	case MoveUp:
		e.cursorManager.MoveUp()
	case MoveDown:
		e.cursorManager.MoveDown()
	case MovePageUp:
		e.cursorManager.PageMove(-1)
	case MovePageDown:
		e.cursorManager.PageMove(1)
	case MoveLineStart:
		e.cursorManager.MoveToLineStart()
	case MoveLineEnd:
		e.cursorManager.MoveToLineEnd()
	case MoveDocStart:
		e.cursorManager.MoveToTop()
	case MoveDocEnd:
		e.cursorManager.MoveToBottom()
	default:
		logger.Warnf("Editor.Move: unknown movement %d", m)
		return
	}

	if extend {
		e.selectionManager.StartOrUpdateSelection(before)
	}
	logger.DebugTagf("core", "Move: %d extend=%v %v -> %v", m, extend, before, e.GetCursor())
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
}

// ClickAt places the cursor under a screen cell and drops the selection.
func (e *Editor) ClickAt(x, y int) {
	e.selectionManager.ClearSelection()
	e.cursorManager.SetPosition(e.cursorManager.ScreenToBuffer(x, y))
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
}

// ScrollBy scrolls the view without moving the cursor.
func (e *Editor) ScrollBy(lines int) {
	e.cursorManager.SetScroll(e.GetScroll() + lines)
}

// --- Search ---

// Search finds query in the buffer and selects the match closest to the
// cursor. An empty query clears the search. It returns the match count.
func (e *Editor) Search(query string) int {
	if query == "" {
		e.ClearSearch()
		return 0
	}
	n := e.findManager.Search(query, e.GetCursor())
	if match, _, _, ok := e.findManager.Current(); ok {
		e.selectMatch(match)
	}
	return n
}

// FindNext selects the following match, wrapping at the end.
func (e *Editor) FindNext() bool {
	match, ok := e.findManager.Next()
	if ok {
		e.selectMatch(match)
	}
	return ok
}

// FindPrev selects the preceding match, wrapping at the start.
func (e *Editor) FindPrev() bool {
	match, ok := e.findManager.Prev()
	if ok {
		e.selectMatch(match)
	}
	return ok
}

func (e *Editor) selectMatch(m find.Match) {
	e.cursorManager.SetPosition(m.End())
	e.selectionManager.Set(m.Start(), m.End())
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
}

// SearchStatus describes the search state for the status bar.
func (e *Editor) SearchStatus() string {
	query := e.findManager.Query()
	if query == "" {
		return ""
	}
	_, index, total, ok := e.findManager.Current()
	if !ok || total == 0 {
		return fmt.Sprintf("No matches found for '%s'", query)
	}
	return fmt.Sprintf("Match %d of %d", index+1, total)
}

// ClearSearch drops the query and its highlights.
func (e *Editor) ClearSearch() {
	e.findManager.Clear()
}

// SearchActive reports whether a query is set.
func (e *Editor) SearchActive() bool {
	return e.findManager.Active()
}

// GetHighlights returns the search highlight regions for drawing.
func (e *Editor) GetHighlights() []types.HighlightRegion {
	return e.findManager.HighlightRegions()
}
