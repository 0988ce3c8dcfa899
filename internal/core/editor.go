// internal/core/editor.go
package core

import (
	"errors"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core/clipboard"
	"github.com/bethropolis/quicknotepad/internal/core/cursor"
	"github.com/bethropolis/quicknotepad/internal/core/find"
	"github.com/bethropolis/quicknotepad/internal/core/history"
	"github.com/bethropolis/quicknotepad/internal/core/selection"
	"github.com/bethropolis/quicknotepad/internal/core/text"
	"github.com/bethropolis/quicknotepad/internal/event"
	hl "github.com/bethropolis/quicknotepad/internal/highlighter"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// ErrNoFilePath is returned by Save when the buffer has never been bound to a file.
var ErrNoFilePath = errors.New("editor: buffer has no file path")

// Editor is one editing session: a buffer plus the cursor, selection,
// history, clipboard and search state that act on it.
type Editor struct {
	buffer buffer.Buffer

	cursorManager    *cursor.Manager
	selectionManager *selection.Manager
	history          *history.Manager
	textOps          *text.Operations
	clipboardManager *clipboard.Manager
	findManager      *find.Manager
	eventManager     *event.Manager

	syntaxHighlights hl.HighlightResult
	syntaxTree       *sitter.Tree
	highlightMutex   sync.RWMutex
}

// Option configures an Editor.
type Option func(*Editor)

// WithCursorSettings sets tab width, scroll-off and the screen layout constants.
func WithCursorSettings(s cursor.Settings) Option {
	return func(e *Editor) { e.cursorManager = cursor.NewManager(e, s) }
}

// WithHistory replaces the default history manager.
func WithHistory(h *history.Manager) Option {
	return func(e *Editor) {
		if h != nil {
			e.history = h
		}
	}
}

// WithClipboard sets the clipboard backend.
func WithClipboard(p clipboard.Provider) Option {
	return func(e *Editor) { e.clipboardManager.SetProvider(p) }
}

// WithEventManager sets the bus editor events are dispatched on.
func WithEventManager(m *event.Manager) Option {
	return func(e *Editor) { e.eventManager = m }
}

// NewEditor creates an Editor over buf.
func NewEditor(buf buffer.Buffer, opts ...Option) *Editor {
	if buf == nil {
		buf = buffer.NewSliceBuffer()
	}
	e := &Editor{
		buffer:           buf,
		history:          history.NewManager(history.DefaultMaxHistory),
		syntaxHighlights: make(hl.HighlightResult),
	}
	e.cursorManager = cursor.NewManager(e, cursor.DefaultSettings())
	e.selectionManager = selection.NewManager(e)
	e.textOps = text.NewOperations(e)
	e.clipboardManager = clipboard.NewManager(e, e.textOps, &clipboard.RegisterProvider{})
	e.findManager = find.NewManager(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event bus, which may be nil.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetHistory returns the undo/redo history of the current buffer.
func (e *Editor) GetHistory() *history.Manager {
	return e.history
}

// SetViewSize sets the number of text columns and rows on screen.
func (e *Editor) SetViewSize(width, height int) {
	e.cursorManager.SetViewSize(width, height)
}

// GetViewport returns the first visible line and the visible row count.
func (e *Editor) GetViewport() (int, int) {
	return e.cursorManager.GetViewport()
}

// Settings returns the cursor and layout settings.
func (e *Editor) Settings() cursor.Settings {
	return e.cursorManager.Settings()
}

func (e *Editor) GetCursor() types.Position {
	return e.cursorManager.GetPosition()
}

// SetCursor moves the cursor, clamped to the buffer.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursorManager.SetPosition(pos)
}

func (e *Editor) GetScroll() int {
	return e.cursorManager.ScrollTop()
}

func (e *Editor) ScrollDown(lines int) {
	e.cursorManager.ScrollDown(lines)
}

func (e *Editor) AtBottomRow() bool {
	return e.cursorManager.AtBottomRow()
}

// ScreenToBuffer converts a screen cell to a buffer position.
func (e *Editor) ScreenToBuffer(x, y int) types.Position {
	return e.cursorManager.ScreenToBuffer(x, y)
}

// BufferToScreen converts a buffer position to a screen cell.
func (e *Editor) BufferToScreen(pos types.Position) (int, int, bool) {
	return e.cursorManager.BufferToScreen(pos)
}

// --- Selection ---

func (e *Editor) GetSelection() (types.Position, types.Position, bool) {
	return e.selectionManager.GetSelection()
}

func (e *Editor) HasSelection() bool {
	return e.selectionManager.HasSelection()
}

func (e *Editor) ClearSelection() {
	e.selectionManager.ClearSelection()
}

// SelectAll selects the whole document and puts the cursor at its end.
func (e *Editor) SelectAll() {
	last := e.buffer.LineCount() - 1
	end := types.Position{Line: last, Col: e.buffer.LineLen(last)}
	e.cursorManager.SetPosition(end)
	e.selectionManager.Set(types.Position{}, e.GetCursor())
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.GetCursor()})
}

// --- Syntax highlight storage ---

// GetSyntaxHighlightsForLine returns the computed syntax styles for a given line number.
func (e *Editor) GetSyntaxHighlightsForLine(lineNum int) []types.StyledRange {
	e.highlightMutex.RLock()
	defer e.highlightMutex.RUnlock()
	return e.syntaxHighlights[lineNum]
}

// UpdateSyntaxHighlights replaces the highlights and the tree they came from.
func (e *Editor) UpdateSyntaxHighlights(newHighlights hl.HighlightResult, newTree *sitter.Tree) {
	e.highlightMutex.Lock()
	defer e.highlightMutex.Unlock()
	if e.syntaxTree != nil && e.syntaxTree != newTree {
		e.syntaxTree.Close()
	}
	if newHighlights == nil {
		newHighlights = make(hl.HighlightResult)
	}
	e.syntaxHighlights = newHighlights
	e.syntaxTree = newTree
}

// GetCurrentTree returns the last parsed tree, for incremental re-parsing.
func (e *Editor) GetCurrentTree() *sitter.Tree {
	e.highlightMutex.RLock()
	defer e.highlightMutex.RUnlock()
	return e.syntaxTree
}

// EditTree tells the stored tree about buffer edits so the next parse can reuse it.
func (e *Editor) EditTree(edits []types.EditInfo) {
	e.highlightMutex.Lock()
	defer e.highlightMutex.Unlock()
	if e.syntaxTree == nil {
		return
	}
	for _, info := range edits {
		e.syntaxTree.Edit(info.InputEdit())
	}
}

func (e *Editor) resetSyntax() {
	e.UpdateSyntaxHighlights(nil, nil)
}

// --- Session state ---

// State is the per-document part of an editor, handed over on tab switches.
type State struct {
	Buffer  buffer.Buffer
	Cursor  types.Position
	Scroll  int
	History *history.Manager
}

// State returns the live document state.
func (e *Editor) State() State {
	return State{
		Buffer:  e.buffer,
		Cursor:  e.GetCursor(),
		Scroll:  e.GetScroll(),
		History: e.history,
	}
}

// LoadState makes s the live document. Selection, search and syntax state are reset.
func (e *Editor) LoadState(s State) {
	if s.Buffer == nil {
		s.Buffer = buffer.NewSliceBuffer()
	}
	if s.History == nil {
		s.History = history.NewManager(e.history.MaxHistory())
	}
	e.buffer = s.Buffer
	e.history = s.History
	e.selectionManager.ClearSelection()
	e.findManager.Clear()
	e.resetSyntax()
	e.cursorManager.Restore(s.Cursor, s.Scroll)
	logger.DebugTagf("core", "Editor: loaded state for '%s' at %v", e.buffer.FilePath(), e.GetCursor())
}

// --- Files ---

// Load reads filePath into the buffer and starts a fresh history.
func (e *Editor) Load(filePath string) error {
	if err := e.buffer.Load(filePath); err != nil {
		return err
	}
	e.history.Clear()
	e.selectionManager.ClearSelection()
	e.findManager.Clear()
	e.resetSyntax()
	e.cursorManager.Restore(types.Position{}, 0)
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	return nil
}

// Save writes the buffer to its bound file path.
func (e *Editor) Save() error {
	if e.buffer.FilePath() == "" {
		return ErrNoFilePath
	}
	return e.SaveAs(e.buffer.FilePath())
}

// SaveAs writes the buffer to filePath and binds the buffer to it.
func (e *Editor) SaveAs(filePath string) error {
	if err := e.buffer.Save(filePath); err != nil {
		return err
	}
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	return nil
}

// IsModified reports unsaved changes.
func (e *Editor) IsModified() bool {
	return e.buffer.IsModified()
}
