package history

import (
	"sync"
	"time"

	"github.com/bethropolis/quicknotepad/internal/logger"
)

const (
	DefaultMaxHistory     = 500
	DefaultGroupThreshold = 500 * time.Millisecond
)

// Clock supplies the time used for grouping decisions.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithGroupThreshold sets how close together two edits must be to merge.
func WithGroupThreshold(d time.Duration) Option {
	return func(m *Manager) {
		if d >= 0 {
			m.groupThreshold = d
		}
	}
}

// Manager holds the undo and redo stacks of one document.
// It never touches the buffer: callers apply Reverse on Undo and Apply on Redo.
type Manager struct {
	undo           stack
	redo           stack
	maxHistory     int
	groupThreshold time.Duration
	clock          Clock
	lastPush       time.Time
	mutex          sync.Mutex
}

// NewManager creates a history manager keeping at most maxHistory undo entries.
func NewManager(maxHistory int, opts ...Option) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	m := &Manager{
		maxHistory:     maxHistory,
		groupThreshold: DefaultGroupThreshold,
		clock:          systemClock{},
	}
	m.undo.limit = maxHistory
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Push records op, clearing the redo stack. Rapid contiguous typing or
// backspacing on one line is merged into the previous entry.
func (m *Manager) Push(op EditOperation) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.redo.reset()
	now := m.clock.Now()

	if top, ok := m.undo.top(); ok && now.Sub(m.lastPush) <= m.groupThreshold && groupable(top.Edit, op.Edit) {
		if merged, ok := tryMerge(*top, op); ok {
			*top = merged
			m.lastPush = now
			logger.DebugTagf("history", "History: merged %s into top entry: %+v", op.Edit.Kind(), merged.Edit)
			return
		}
	}

	if m.undo.push(op) {
		logger.DebugTagf("history", "History: evicted oldest entry (max %d)", m.maxHistory)
	}
	m.lastPush = now
	logger.DebugTagf("history", "History: pushed %s. Undo: %d", op.Edit.Kind(), m.undo.len())
}

// Undo pops the newest operation and moves it onto the redo stack.
func (m *Manager) Undo() (EditOperation, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	op, ok := m.undo.pop()
	if !ok {
		logger.DebugTagf("history", "History: nothing to undo")
		return EditOperation{}, false
	}
	m.redo.push(op)
	// The next push must not merge into whatever is now on top.
	m.lastPush = time.Time{}
	logger.DebugTagf("history", "History: undo %s. Undo: %d, Redo: %d", op.Edit.Kind(), m.undo.len(), m.redo.len())
	return op, true
}

// Redo pops the newest undone operation and moves it back onto the undo stack.
func (m *Manager) Redo() (EditOperation, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	op, ok := m.redo.pop()
	if !ok {
		logger.DebugTagf("history", "History: nothing to redo")
		return EditOperation{}, false
	}
	m.undo.push(op)
	m.lastPush = time.Time{}
	logger.DebugTagf("history", "History: redo %s. Undo: %d, Redo: %d", op.Edit.Kind(), m.undo.len(), m.redo.len())
	return op, true
}

// Clear empties both stacks. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.undo.reset()
	m.redo.reset()
	m.lastPush = time.Time{}
	logger.DebugTagf("history", "History: cleared")
}

func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.undo.len() > 0
}

func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.redo.len() > 0
}

// UndoLen returns the number of undo entries.
func (m *Manager) UndoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.undo.len()
}

// RedoLen returns the number of redo entries.
func (m *Manager) RedoLen() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.redo.len()
}

// UndoStack returns a copy of the undo stack, oldest first.
func (m *Manager) UndoStack() []EditOperation {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.undo.snapshot()
}

// MaxHistory returns the undo capacity.
func (m *Manager) MaxHistory() int { return m.maxHistory }
