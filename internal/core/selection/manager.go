package selection

import (
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// EditorInterface is what the selection manager needs from the editor.
type EditorInterface interface {
	GetCursor() types.Position
}

// Manager owns the selection state of one editor.
type Manager struct {
	editor    EditorInterface
	selecting bool
	sel       Selection
}

func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// HasSelection reports whether a non-empty selection is active.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.sel.IsActive()
}

// GetSelection returns the ordered selection range. ok is false when nothing is selected.
func (m *Manager) GetSelection() (start, end types.Position, ok bool) {
	if !m.HasSelection() {
		return types.Position{}, types.Position{}, false
	}
	start, end = m.sel.Range()
	return start, end, true
}

// Current returns the raw anchor/cursor pair and whether selecting is on.
func (m *Manager) Current() (Selection, bool) {
	return m.sel, m.selecting
}

// ClearSelection drops the selection.
func (m *Manager) ClearSelection() {
	if m.selecting {
		logger.DebugTagf("selection", "Selection: cleared")
	}
	m.selecting = false
	m.sel = Selection{}
}

// StartOrUpdateSelection anchors a selection at the cursor if none is active,
// then moves its live end to the cursor. Call it after a shift-movement.
func (m *Manager) StartOrUpdateSelection(anchorIfNew types.Position) {
	if !m.selecting {
		m.sel.Anchor = anchorIfNew
		m.selecting = true
		logger.DebugTagf("selection", "Selection: started at %v", anchorIfNew)
	}
	m.sel.Cursor = m.editor.GetCursor()
}

// Set replaces the selection outright, e.g. for select-all or a search match.
func (m *Manager) Set(anchor, cursor types.Position) {
	m.sel = Selection{Anchor: anchor, Cursor: cursor}
	m.selecting = true
}

// IsSelecting returns the raw selecting flag.
func (m *Manager) IsSelecting() bool {
	return m.selecting
}
