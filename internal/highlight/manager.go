// Package highlight keeps an editor's syntax highlights current. Edits are
// forwarded to the stored tree immediately; the re-parse itself is
// debounced and then handed to the UI goroutine, so the buffer is only ever
// read from the goroutine that mutates it.
package highlight

import (
	"context"
	"time"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/highlighter"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCurrentTree() *sitter.Tree
	EditTree(edits []types.EditInfo)
	UpdateSyntaxHighlights(highlights highlighter.HighlightResult, tree *sitter.Tree)
}

// Manager handles debounced syntax highlighting.
type Manager struct {
	editor      EditorInterface
	highlighter *highlighter.Highlighter
	post        func(func()) // runs a function on the UI goroutine
	delay       time.Duration
	debouncer   utils.Debouncer
}

// NewManager creates a manager. post must arrange for its argument to run
// on the goroutine that owns the editor.
func NewManager(editor EditorInterface, h *highlighter.Highlighter, post func(func()), delay time.Duration) *Manager {
	return &Manager{editor: editor, highlighter: h, post: post, delay: delay}
}

// OnBufferModified records edits against the current tree and schedules a re-parse.
func (m *Manager) OnBufferModified(edits []types.EditInfo) {
	m.editor.EditTree(edits)
	logger.DebugTagf("highlight", "HighlightManager: %d edits, re-highlight in %v", len(edits), m.delay)
	m.debouncer.Debounce(m.delay, func() { m.post(m.Run) })
}

// Run highlights the editor's buffer now.
func (m *Manager) Run() {
	buf := m.editor.GetBuffer()
	start := time.Now()
	result, tree, err := m.highlighter.HighlightBuffer(context.Background(), buf, buf.FilePath(), m.editor.GetCurrentTree())
	if err != nil {
		logger.Warnf("HighlightManager: highlighting '%s' failed: %v", buf.FilePath(), err)
		m.editor.UpdateSyntaxHighlights(nil, nil)
		return
	}
	m.editor.UpdateSyntaxHighlights(result, tree)
	logger.DebugTagf("highlight", "HighlightManager: %d lines styled in %v", len(result), time.Since(start))
}

// Reset drops any pending re-parse and highlights from scratch, e.g. after
// a load or a tab switch.
func (m *Manager) Reset() {
	m.debouncer.Stop()
	m.editor.UpdateSyntaxHighlights(nil, nil)
	m.Run()
}

// Shutdown cancels a pending re-parse.
func (m *Manager) Shutdown() {
	m.debouncer.Stop()
}
