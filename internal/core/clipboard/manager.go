// Package clipboard implements copy, cut and paste on top of a clipboard Provider.
package clipboard

import (
	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/core/text"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
)

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetSelection() (start types.Position, end types.Position, ok bool)
}

// Mutator performs the buffer side of cut and paste.
type Mutator interface {
	DeleteSelection() (text.Change, bool)
	InsertText(s string) (text.Change, bool)
}

// Manager handles clipboard operations. Clipboard failures are logged and
// turn the operation into a no-op.
type Manager struct {
	editor   EditorInterface
	mutator  Mutator
	provider Provider
}

func NewManager(editor EditorInterface, mutator Mutator, provider Provider) *Manager {
	if provider == nil {
		provider = &RegisterProvider{}
	}
	return &Manager{editor: editor, mutator: mutator, provider: provider}
}

// SetProvider swaps the clipboard backend.
func (m *Manager) SetProvider(p Provider) {
	if p != nil {
		m.provider = p
	}
}

// Copy puts the selected text on the clipboard. It reports whether anything was copied.
func (m *Manager) Copy() bool {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false
	}
	content := m.editor.GetBuffer().Text(start, end)
	if err := m.provider.SetText(content); err != nil {
		logger.Warnf("ClipboardManager: copy failed: %v", err)
		return false
	}
	logger.Debugf("ClipboardManager: copied %d bytes", len(content))
	return true
}

// Cut copies the selection and then deletes it. Nothing is deleted if the copy fails.
func (m *Manager) Cut() (text.Change, bool) {
	if !m.Copy() {
		return text.Change{}, false
	}
	return m.mutator.DeleteSelection()
}

// Paste inserts the clipboard text at the cursor, replacing any selection.
func (m *Manager) Paste() (text.Change, bool) {
	content, err := m.provider.GetText()
	if err != nil {
		logger.Warnf("ClipboardManager: paste failed: %v", err)
		return text.Change{}, false
	}
	if content == "" {
		return text.Change{}, false
	}
	logger.Debugf("ClipboardManager: pasting %d bytes", len(content))
	return m.mutator.InsertText(content)
}
