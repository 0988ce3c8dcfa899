// Package cursor owns the cursor position and the vertical scroll offset,
// and converts between screen cells and buffer positions.
package cursor

import (
	"github.com/bethropolis/quicknotepad/internal/buffer"
	"github.com/bethropolis/quicknotepad/internal/logger"
	"github.com/bethropolis/quicknotepad/internal/types"
	"github.com/bethropolis/quicknotepad/internal/utils"
)

// Editor is the interface cursor manager expects from the editor
type Editor interface {
	GetBuffer() buffer.Buffer
}

// Settings are the presentation constants the manager works with.
type Settings struct {
	TabWidth     int
	ScrollOff    int
	MarginWidth  int // cells left of the text reserved for line numbers
	HeaderHeight int // rows above the text reserved for the tab line
}

// DefaultSettings matches the layout of the terminal front end.
func DefaultSettings() Settings {
	return Settings{TabWidth: 4, ScrollOff: 3, MarginWidth: 4, HeaderHeight: 1}
}

// Manager handles cursor positioning and viewport management
type Manager struct {
	editor       Editor
	settings     Settings
	position     types.Position
	preferredCol int // column kept across vertical moves through shorter lines
	viewportTop  int
	viewWidth    int
	viewHeight   int
}

func NewManager(editor Editor, settings Settings) *Manager {
	if settings.TabWidth <= 0 {
		settings.TabWidth = DefaultSettings().TabWidth
	}
	return &Manager{editor: editor, settings: settings}
}

// Settings returns the layout constants in use.
func (m *Manager) Settings() Settings { return m.settings }

// SetViewSize sets the number of text columns and rows on screen.
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
	m.ScrollToCursor()
}

// GetViewport returns the first visible line and the number of visible rows.
func (m *Manager) GetViewport() (int, int) {
	return m.viewportTop, m.viewHeight
}

// ScrollTop returns the first visible line.
func (m *Manager) ScrollTop() int { return m.viewportTop }

// SetScroll moves the viewport without touching the cursor.
func (m *Manager) SetScroll(top int) {
	if buf := m.editor.GetBuffer(); buf != nil && top >= buf.LineCount() {
		top = buf.LineCount() - 1
	}
	if top < 0 {
		top = 0
	}
	m.viewportTop = top
}

func (m *Manager) GetPosition() types.Position {
	return m.position
}

// clamp keeps pos within the buffer. Columns are grapheme indices.
func (m *Manager) clamp(pos types.Position) types.Position {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return types.Position{}
	}
	if pos.Line >= buf.LineCount() {
		pos.Line = buf.LineCount() - 1
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := buf.LineLen(pos.Line); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// SetPosition moves the cursor, clamped to the buffer, and scrolls it into view.
func (m *Manager) SetPosition(pos types.Position) {
	m.position = m.clamp(pos)
	m.preferredCol = m.position.Col
	m.ScrollToCursor()
}

// Restore puts back a cursor and scroll snapshot without applying scroll-off.
func (m *Manager) Restore(pos types.Position, scroll int) {
	m.position = m.clamp(pos)
	m.preferredCol = m.position.Col
	m.SetScroll(scroll)
	logger.DebugTagf("cursor", "Cursor: restored %v scroll %d", m.position, m.viewportTop)
}

// MoveLeft moves one grapheme left, wrapping to the end of the previous line.
func (m *Manager) MoveLeft() {
	pos := m.position
	if pos.Col > 0 {
		pos.Col--
	} else if pos.Line > 0 {
		pos.Line--
		pos.Col = m.editor.GetBuffer().LineLen(pos.Line)
	}
	m.SetPosition(pos)
}

// MoveRight moves one grapheme right, wrapping to the start of the next line.
func (m *Manager) MoveRight() {
	buf := m.editor.GetBuffer()
	pos := m.position
	if pos.Col < buf.LineLen(pos.Line) {
		pos.Col++
	} else if pos.Line < buf.LineCount()-1 {
		pos.Line++
		pos.Col = 0
	}
	m.SetPosition(pos)
}

// MoveVertical moves delta lines, keeping the preferred column when possible.
func (m *Manager) MoveVertical(delta int) {
	col := m.preferredCol
	m.position = m.clamp(types.Position{Line: m.position.Line + delta, Col: col})
	m.preferredCol = col
	m.ScrollToCursor()
}

func (m *Manager) MoveUp()   { m.MoveVertical(-1) }
func (m *Manager) MoveDown() { m.MoveVertical(1) }

// PageMove moves the cursor by whole screens.
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return
	}
	m.MoveVertical(deltaPages * m.viewHeight)
}

func (m *Manager) MoveToLineStart() {
	m.SetPosition(types.Position{Line: m.position.Line, Col: 0})
}

func (m *Manager) MoveToLineEnd() {
	m.SetPosition(types.Position{Line: m.position.Line, Col: m.editor.GetBuffer().LineLen(m.position.Line)})
}

func (m *Manager) MoveToTop() {
	m.SetPosition(types.Position{})
}

func (m *Manager) MoveToBottom() {
	buf := m.editor.GetBuffer()
	last := buf.LineCount() - 1
	m.SetPosition(types.Position{Line: last, Col: buf.LineLen(last)})
}

// ScrollToCursor keeps ScrollOff lines of context around the cursor.
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 {
		return
	}
	scrollOff := m.settings.ScrollOff
	if scrollOff*2 >= m.viewHeight {
		scrollOff = (m.viewHeight - 1) / 2
	}

	if m.position.Line < m.viewportTop+scrollOff {
		m.viewportTop = m.position.Line - scrollOff
	} else if m.position.Line >= m.viewportTop+m.viewHeight-scrollOff {
		m.viewportTop = m.position.Line - m.viewHeight + scrollOff + 1
	}
	if m.viewportTop < 0 {
		m.viewportTop = 0
	}
}

// AtBottomRow reports whether the cursor sits on the last visible text row.
func (m *Manager) AtBottomRow() bool {
	return m.viewHeight > 0 && m.position.Line-m.viewportTop >= m.viewHeight-1
}

// ScrollDown scrolls the view by n lines.
func (m *Manager) ScrollDown(n int) {
	m.SetScroll(m.viewportTop + n)
}

// ScreenToBuffer converts a screen cell to the buffer position under it.
// Cells in the margin map to column 0; cells in the header map to the first visible line.
func (m *Manager) ScreenToBuffer(x, y int) types.Position {
	row := y - m.settings.HeaderHeight
	if row < 0 {
		row = 0
	}
	line := m.viewportTop + row
	buf := m.editor.GetBuffer()
	if buf == nil {
		return types.Position{}
	}
	if line >= buf.LineCount() {
		line = buf.LineCount() - 1
	}
	text, _ := buf.Line(line)
	return types.Position{Line: line, Col: utils.ColumnAtVisual(text, x-m.settings.MarginWidth, m.settings.TabWidth)}
}

// BufferToScreen converts a buffer position to a screen cell.
// visible is false when the line is scrolled out of the view.
func (m *Manager) BufferToScreen(pos types.Position) (x, y int, visible bool) {
	buf := m.editor.GetBuffer()
	if buf == nil {
		return 0, 0, false
	}
	text, _ := buf.Line(pos.Line)
	x = m.settings.MarginWidth + utils.VisualWidth(text, pos.Col, m.settings.TabWidth)
	y = m.settings.HeaderHeight + pos.Line - m.viewportTop
	visible = pos.Line >= m.viewportTop && (m.viewHeight <= 0 || pos.Line < m.viewportTop+m.viewHeight)
	return x, y, visible
}
